package fixed

import (
	"math"
	"testing"
)

func TestFromInt64RoundTrip(t *testing.T) {
	tests := []int64{0, 1, -1, 2, -2, 7, 1000, -1000, 1 << 40, -(1 << 40)}

	for _, v := range tests {
		got := FromInt64(v).Int64()
		if got != v {
			t.Errorf("FromInt64(%d).Int64() = %d, want %d", v, got, v)
		}
	}
}

func TestInt64Floor(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{1.5, 1},
		{-1.5, -2},
		{0.25, 0},
		{-0.25, -1},
	}

	for _, tt := range tests {
		if got := FromFloat64(tt.in).Int64(); got != tt.want {
			t.Errorf("Int64(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestInt64Truncates(t *testing.T) {
	// Beyond the int64 range only the low 64 integer bits survive, like a
	// narrowing integer conversion.
	if got := FromFloat64(math.Ldexp(1, 70)).Int64(); got != 0 {
		t.Errorf("Int64(2^70) = %d, want 0", got)
	}
	if got := FromFloat64(math.Ldexp(1, 70) + math.Ldexp(1, 40)).Int64(); got != 1<<40 {
		t.Errorf("Int64(2^70+2^40) = %d, want 2^40", got)
	}
}

func TestFromFloat64RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   float64
	}{
		{"zero", 0},
		{"one", 1},
		{"negative one", -1},
		{"exact fraction", 1.5},
		{"negative fraction", -2.25},
		{"fine fraction", 1.0 / 4096},
		{"astronomical", 1.543e11},
		{"galactic", 9.46e20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromFloat64(tt.in).Float64()
			if tol := math.Abs(tt.in) * 1e-12; math.Abs(got-tt.in) > tol {
				t.Errorf("FromFloat64(%v).Float64() = %v, want %v (±%v)", tt.in, got, tt.in, tol)
			}
		})
	}
}

func TestFromFloat64Saturates(t *testing.T) {
	if got := FromFloat64(1e40); got != MaxScalar {
		t.Errorf("FromFloat64(1e40) = %v, want MaxScalar", got)
	}
	if got := FromFloat64(-1e40); got != MinScalar {
		t.Errorf("FromFloat64(-1e40) = %v, want MinScalar", got)
	}
	if got := FromFloat64(math.NaN()); !got.IsZero() {
		t.Errorf("FromFloat64(NaN) = %v, want zero", got)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name    string
		a, b    float64
		op      func(Scalar, Scalar) Scalar
		want    float64
	}{
		{"add", 1.5, 2.25, Scalar.Add, 3.75},
		{"add negative", 1.5, -3, Scalar.Add, -1.5},
		{"sub", 10, 4.5, Scalar.Sub, 5.5},
		{"sub to negative", 4.5, 10, Scalar.Sub, -5.5},
		{"mul", 1.5, 2, Scalar.Mul, 3},
		{"mul negatives", -1.5, -2, Scalar.Mul, 3},
		{"mul mixed sign", -1.5, 4, Scalar.Mul, -6},
		{"mul fractions", 0.5, 0.25, Scalar.Mul, 0.125},
		{"div", 3, 2, Scalar.Div, 1.5},
		{"div negative", 3, -2, Scalar.Div, -1.5},
		{"div fraction", 1, 8, Scalar.Div, 0.125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.op(FromFloat64(tt.a), FromFloat64(tt.b)).Float64()
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("%s(%v, %v) = %v, want %v", tt.name, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMulLargeByFraction(t *testing.T) {
	// Precision must hold when a huge magnitude meets a sub-unit factor.
	big := FromFloat64(math.Ldexp(1, 80)) // 2^80, exact in both representations
	half := FromFloat64(0.5)

	got := big.Mul(half).Float64()
	want := math.Ldexp(1, 79)
	if got != want {
		t.Errorf("2^80 * 0.5 = %v, want %v", got, want)
	}
}

func TestOverflowWraps(t *testing.T) {
	// Overflow wraps modulo 2^128, like the integers underneath.
	ulp := FromBits(0, 1)

	if got := MaxScalar.Add(ulp); got != MinScalar {
		t.Errorf("MaxScalar + ulp = %v, want MinScalar", got)
	}
	if got := MinScalar.Sub(ulp); got != MaxScalar {
		t.Errorf("MinScalar - ulp = %v, want MaxScalar", got)
	}
}

func TestCmp(t *testing.T) {
	tests := []struct {
		a, b float64
		want int
	}{
		{0, 0, 0},
		{1, 2, -1},
		{2, 1, 1},
		{-1, 1, -1},
		{1, -1, 1},
		{-2, -1, -1},
		{-1, -2, 1},
	}

	for _, tt := range tests {
		if got := FromFloat64(tt.a).Cmp(FromFloat64(tt.b)); got != tt.want {
			t.Errorf("Cmp(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestHalf(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{8, 4},
		{1, 0.5},
		{-8, -4},
		{0, 0},
	}

	for _, tt := range tests {
		if got := FromFloat64(tt.in).Half().Float64(); got != tt.want {
			t.Errorf("Half(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNegAbs(t *testing.T) {
	s := FromFloat64(-3.5)
	if got := s.Neg().Float64(); got != 3.5 {
		t.Errorf("Neg(-3.5) = %v, want 3.5", got)
	}
	if got := s.Abs().Float64(); got != 3.5 {
		t.Errorf("Abs(-3.5) = %v, want 3.5", got)
	}
	if got := FromFloat64(3.5).Abs().Float64(); got != 3.5 {
		t.Errorf("Abs(3.5) = %v, want 3.5", got)
	}
	if !s.IsNeg() {
		t.Error("IsNeg(-3.5) = false, want true")
	}
}

func TestSqrt(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{4, 2},
		{2.25, 1.5},
		{1e20, 1e10},
	}

	for _, tt := range tests {
		got := FromFloat64(tt.in).Sqrt().Float64()
		if tol := math.Max(tt.want*1e-9, 1e-9); math.Abs(got-tt.want) > tol {
			t.Errorf("Sqrt(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
