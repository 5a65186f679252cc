// Package fixed implements signed 128-bit fixed-point scalars and 3-vectors
// with 96 integer bits and 32 fractional bits.
//
// Star positions span sub-metre offsets up to intergalactic distances
// (~2^92 m). A float64 cannot hold a galaxy-scale absolute position and a
// metre-scale offset at the same time without catastrophic precision loss,
// so all absolute coordinates use this representation. Derived quantities
// that tolerate relative error (distances for attenuation, screen
// projection) are converted to float64 at the point of use.
package fixed

import (
	"encoding/binary"
	"math"
	"math/big"
	"math/bits"
	"strconv"
)

// FracBits is the number of fractional bits in a Scalar.
const FracBits = 32

// Scalar is a signed fixed-point number: a two's-complement 128-bit integer
// holding value*2^32, stored as two 64-bit words. One unit is one metre.
//
// Addition, subtraction and multiplication wrap modulo 2^128 on overflow,
// like the machine integers they are built from. Conversions from float64
// saturate instead, since the input type cannot demand wrapping precision.
type Scalar struct {
	hi uint64
	lo uint64
}

// Common constants.
var (
	Zero = Scalar{}
	One  = FromInt64(1)

	// MaxScalar and MinScalar are the extreme representable values,
	// roughly ±2^95 metres.
	MaxScalar = Scalar{hi: math.MaxInt64, lo: math.MaxUint64}
	MinScalar = Scalar{hi: 1 << 63}
)

// FromBits assembles a Scalar from its raw two's-complement words.
func FromBits(hi, lo uint64) Scalar {
	return Scalar{hi: hi, lo: lo}
}

// Bits returns the raw two's-complement words of s.
func (s Scalar) Bits() (hi, lo uint64) {
	return s.hi, s.lo
}

// FromInt64 converts an integer number of units.
func FromInt64(v int64) Scalar {
	return Scalar{
		hi: uint64(v>>63)<<32 | uint64(v)>>32,
		lo: uint64(v) << 32,
	}
}

// FromFloat64 converts a float64 number of units, saturating at the
// representable extremes. NaN converts to zero.
func FromFloat64(f float64) Scalar {
	if math.IsNaN(f) {
		return Scalar{}
	}
	neg := math.Signbit(f)
	fr, exp := math.Frexp(math.Abs(f))
	if fr == 0 {
		return Scalar{}
	}
	if exp > 96 {
		if neg {
			return MinScalar
		}
		return MaxScalar
	}

	m := uint64(fr * (1 << 53)) // 53-bit mantissa, value = m * 2^(exp-53)
	shift := exp + FracBits - 53

	var s Scalar
	switch {
	case shift <= -64:
		// smaller than the finest fractional step
	case shift < 0:
		s.lo = m >> uint(-shift)
	case shift < 64:
		s.lo = m << uint(shift)
		if shift > 0 {
			s.hi = m >> uint(64-shift)
		}
	case shift < 128:
		s.hi = m << uint(shift-64)
	}
	if s.hi>>63 == 1 {
		// magnitude crossed into the sign bit
		if neg {
			return MinScalar
		}
		return MaxScalar
	}
	if neg {
		return s.Neg()
	}
	return s
}

// Float64 converts s to a float64 number of units. The conversion is lossy
// beyond 53 significant bits.
func (s Scalar) Float64() float64 {
	m := s
	neg := s.IsNeg()
	if neg {
		m = m.Neg()
	}
	f := math.Ldexp(float64(m.hi), 64-FracBits) + math.Ldexp(float64(m.lo), -FracBits)
	if neg {
		return -f
	}
	return f
}

// Int64 returns the integer part of s, rounding toward negative infinity.
// Magnitudes beyond the int64 range are truncated to their low 64 integer
// bits, like a narrowing integer conversion.
func (s Scalar) Int64() int64 {
	return int64(s.hi<<32 | s.lo>>32)
}

// IsNeg reports whether s is negative.
func (s Scalar) IsNeg() bool {
	return s.hi>>63 == 1
}

// IsZero reports whether s is zero.
func (s Scalar) IsZero() bool {
	return s.hi == 0 && s.lo == 0
}

// Add returns s+o, wrapping on overflow.
func (s Scalar) Add(o Scalar) Scalar {
	lo, carry := bits.Add64(s.lo, o.lo, 0)
	hi, _ := bits.Add64(s.hi, o.hi, carry)
	return Scalar{hi: hi, lo: lo}
}

// Sub returns s-o, wrapping on overflow.
func (s Scalar) Sub(o Scalar) Scalar {
	lo, borrow := bits.Sub64(s.lo, o.lo, 0)
	hi, _ := bits.Sub64(s.hi, o.hi, borrow)
	return Scalar{hi: hi, lo: lo}
}

// Neg returns -s.
func (s Scalar) Neg() Scalar {
	lo, borrow := bits.Sub64(0, s.lo, 0)
	hi, _ := bits.Sub64(0, s.hi, borrow)
	return Scalar{hi: hi, lo: lo}
}

// Abs returns the absolute value of s.
func (s Scalar) Abs() Scalar {
	if s.IsNeg() {
		return s.Neg()
	}
	return s
}

// Half returns s/2, rounding toward negative infinity. Used for region
// midpoints, where region extents are powers of two and the division is
// exact.
func (s Scalar) Half() Scalar {
	return Scalar{
		hi: uint64(int64(s.hi) >> 1),
		lo: s.lo>>1 | s.hi<<63,
	}
}

// Cmp compares s and o, returning -1, 0 or +1.
func (s Scalar) Cmp(o Scalar) int {
	sh := s.hi ^ 1<<63
	oh := o.hi ^ 1<<63
	switch {
	case sh < oh:
		return -1
	case sh > oh:
		return 1
	case s.lo < o.lo:
		return -1
	case s.lo > o.lo:
		return 1
	}
	return 0
}

// Max returns the larger of s and o.
func (s Scalar) Max(o Scalar) Scalar {
	if s.Cmp(o) >= 0 {
		return s
	}
	return o
}

// Min returns the smaller of s and o.
func (s Scalar) Min(o Scalar) Scalar {
	if s.Cmp(o) <= 0 {
		return s
	}
	return o
}

// Mul returns s*o, truncated toward zero, wrapping on overflow.
func (s Scalar) Mul(o Scalar) Scalar {
	neg := s.IsNeg() != o.IsNeg()
	a := s.Abs()
	b := o.Abs()

	// 128x128 -> 256-bit product of the magnitudes; only the three least
	// significant 64-bit limbs are needed after the >>32 rescale.
	h00, l00 := bits.Mul64(a.lo, b.lo)
	h01, l01 := bits.Mul64(a.lo, b.hi)
	h10, l10 := bits.Mul64(a.hi, b.lo)
	_, l11 := bits.Mul64(a.hi, b.hi)

	r0 := l00
	r1, c1 := bits.Add64(h00, l01, 0)
	r1, c2 := bits.Add64(r1, l10, 0)
	r2, _ := bits.Add64(h01, h10, 0)
	r2, _ = bits.Add64(r2, l11, 0)
	r2 += c1 + c2

	m := Scalar{
		hi: r1>>FracBits | r2<<(64-FracBits),
		lo: r0>>FracBits | r1<<(64-FracBits),
	}
	if neg {
		return m.Neg()
	}
	return m
}

// MulInt64 returns s*n.
func (s Scalar) MulInt64(n int64) Scalar {
	return s.Mul(FromInt64(n))
}

// Div returns s/o, truncated toward zero. Division is a cold path (region
// construction only) and goes through math/big. Panics on division by zero.
func (s Scalar) Div(o Scalar) Scalar {
	if o.IsZero() {
		panic("fixed: division by zero")
	}
	neg := s.IsNeg() != o.IsNeg()
	num := s.Abs().bigMag()
	num.Lsh(num, FracBits)
	num.Quo(num, o.Abs().bigMag())
	q := scalarFromBigMag(num)
	if neg {
		return q.Neg()
	}
	return q
}

// Sqrt returns the square root of s, truncated toward zero. Panics if s is
// negative.
func (s Scalar) Sqrt() Scalar {
	if s.IsNeg() {
		panic("fixed: square root of negative value")
	}
	v := s.bigMag()
	v.Lsh(v, FracBits)
	return scalarFromBigMag(v.Sqrt(v))
}

// String formats s as a decimal number of units.
func (s Scalar) String() string {
	return strconv.FormatFloat(s.Float64(), 'g', -1, 64)
}

// bigMag returns the magnitude of s (which must be non-negative, or the
// caller must have taken Abs first) as a big.Int.
func (s Scalar) bigMag() *big.Int {
	v := new(big.Int).SetUint64(s.hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(s.lo))
}

// scalarFromBigMag truncates a non-negative big.Int magnitude to the low
// 128 bits.
func scalarFromBigMag(v *big.Int) Scalar {
	var buf [16]byte
	if v.BitLen() > 128 {
		v = new(big.Int).And(v, maxU128)
	}
	v.FillBytes(buf[:])
	return Scalar{
		hi: binary.BigEndian.Uint64(buf[:8]),
		lo: binary.BigEndian.Uint64(buf[8:]),
	}
}

var maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
