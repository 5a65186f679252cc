package fixed

import (
	"fmt"
	"math"
	"math/big"
)

// Vec3 is a 3-component fixed-point vector. The zero value is the zero
// vector.
type Vec3 struct {
	X, Y, Z Scalar
}

// V constructs a vector from its components.
func V(x, y, z Scalar) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Splat returns a vector with all three components set to s.
func Splat(s Scalar) Vec3 {
	return Vec3{X: s, Y: s, Z: s}
}

// FromFloat64s converts three float64 components, saturating like
// FromFloat64.
func FromFloat64s(x, y, z float64) Vec3 {
	return Vec3{X: FromFloat64(x), Y: FromFloat64(y), Z: FromFloat64(z)}
}

// Float64s returns the components converted to float64.
func (v Vec3) Float64s() (x, y, z float64) {
	return v.X.Float64(), v.Y.Float64(), v.Z.Float64()
}

// Add returns v+o componentwise.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X.Add(o.X), Y: v.Y.Add(o.Y), Z: v.Z.Add(o.Z)}
}

// Sub returns v-o componentwise.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X.Sub(o.X), Y: v.Y.Sub(o.Y), Z: v.Z.Sub(o.Z)}
}

// Mul returns the componentwise product of v and o.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{X: v.X.Mul(o.X), Y: v.Y.Mul(o.Y), Z: v.Z.Mul(o.Z)}
}

// Div returns the componentwise quotient of v and o.
func (v Vec3) Div(o Vec3) Vec3 {
	return Vec3{X: v.X.Div(o.X), Y: v.Y.Div(o.Y), Z: v.Z.Div(o.Z)}
}

// MulScalar returns v scaled by s.
func (v Vec3) MulScalar(s Scalar) Vec3 {
	return Vec3{X: v.X.Mul(s), Y: v.Y.Mul(s), Z: v.Z.Mul(s)}
}

// DivScalar returns v divided by s.
func (v Vec3) DivScalar(s Scalar) Vec3 {
	return Vec3{X: v.X.Div(s), Y: v.Y.Div(s), Z: v.Z.Div(s)}
}

// Half returns v/2 componentwise, rounding toward negative infinity.
func (v Vec3) Half() Vec3 {
	return Vec3{X: v.X.Half(), Y: v.Y.Half(), Z: v.Z.Half()}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{X: v.X.Neg(), Y: v.Y.Neg(), Z: v.Z.Neg()}
}

// Abs returns the componentwise absolute value.
func (v Vec3) Abs() Vec3 {
	return Vec3{X: v.X.Abs(), Y: v.Y.Abs(), Z: v.Z.Abs()}
}

// Dot returns the dot product of v and o, wrapping on overflow.
func (v Vec3) Dot(o Vec3) Scalar {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y)).Add(v.Z.Mul(o.Z))
}

// Cross returns the cross product of v and o, wrapping on overflow.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y.Mul(o.Z).Sub(v.Z.Mul(o.Y)),
		Y: v.Z.Mul(o.X).Sub(v.X.Mul(o.Z)),
		Z: v.X.Mul(o.Y).Sub(v.Y.Mul(o.X)),
	}
}

// MaxComponent returns the largest component of v.
func (v Vec3) MaxComponent() Scalar {
	return v.X.Max(v.Y).Max(v.Z)
}

// LenSq returns the squared magnitude of v, wrapping on overflow. Prefer
// Len or LenFloat for vectors of unconstrained magnitude.
func (v Vec3) LenSq() Scalar {
	return v.Dot(v)
}

// Len returns the magnitude of v, computed exactly through a 256-bit
// intermediate so that component squares cannot overflow.
func (v Vec3) Len() Scalar {
	sum := new(big.Int)
	for _, c := range [3]Scalar{v.X, v.Y, v.Z} {
		m := c.Abs().bigMag()
		sum.Add(sum, m.Mul(m, m))
	}
	// components carry 2^32 scaling, squares carry 2^64; the square root
	// lands back on 2^32.
	return scalarFromBigMag(sum.Sqrt(sum))
}

// LenFloat returns the magnitude of v as a float64. This is the fast path
// used by the visibility traversal; float64 comfortably spans the whole
// coordinate range, only relative precision is reduced.
func (v Vec3) LenFloat() float64 {
	x, y, z := v.Float64s()
	return math.Sqrt(x*x + y*y + z*z)
}

// IsZero reports whether all components are zero.
func (v Vec3) IsZero() bool {
	return v.X.IsZero() && v.Y.IsZero() && v.Z.IsZero()
}

// String formats v as "(x, y, z)" in units.
func (v Vec3) String() string {
	return fmt.Sprintf("(%s, %s, %s)", v.X, v.Y, v.Z)
}
