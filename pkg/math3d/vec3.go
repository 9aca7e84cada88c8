// Package math3d provides the geometry primitives of the prism kernel:
// immutable vectors, triangles, rays and affine matrices.
package math3d

import (
	"fmt"
	"math"
)

// Vec3 represents an immutable 3D vector or point.
type Vec3 struct {
	X, Y, Z float64
}

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Splat3 returns a vector with every component set to s.
func Splat3(s float64) Vec3 {
	return Vec3{s, s, s}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

// One3 returns (1, 1, 1).
func One3() Vec3 {
	return Vec3{1, 1, 1}
}

// XAxis returns the unit X axis.
func XAxis() Vec3 {
	return Vec3{1, 0, 0}
}

// YAxis returns the unit Y axis, which is world up.
func YAxis() Vec3 {
	return Vec3{0, 1, 0}
}

// ZAxis returns the unit Z axis.
func ZAxis() Vec3 {
	return Vec3{0, 0, 1}
}

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// AddScalar adds s to every component.
func (a Vec3) AddScalar(s float64) Vec3 {
	return Vec3{a.X + s, a.Y + s, a.Z + s}
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// SubScalar subtracts s from every component.
func (a Vec3) SubScalar(s float64) Vec3 {
	return Vec3{a.X - s, a.Y - s, a.Z - s}
}

// Mul returns the component-wise product a * b.
func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// DivVec returns the component-wise quotient a / b.
func (a Vec3) DivVec(b Vec3) Vec3 {
	return Vec3{a.X / b.X, a.Y / b.Y, a.Z / b.Z}
}

// Div returns the scalar division a / s.
func (a Vec3) Div(s float64) Vec3 {
	return Vec3{a.X / s, a.Y / s, a.Z / s}
}

// Negate returns the negated vector.
func (a Vec3) Negate() Vec3 {
	return Vec3{-a.X, -a.Y, -a.Z}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Triple returns the scalar triple product a · (b × c), the signed volume
// of the parallelepiped spanned by the three vectors.
func Triple(a, b, c Vec3) float64 {
	return (b.Y*c.Z-b.Z*c.Y)*a.X - (b.X*c.Z-b.Z*c.X)*a.Y + (b.X*c.Y-b.Y*c.X)*a.Z
}

// Magnitude returns the length of the vector.
func (a Vec3) Magnitude() float64 {
	return math.Sqrt(a.Dot(a))
}

// MagnitudeSq returns the squared length (no sqrt).
func (a Vec3) MagnitudeSq() float64 {
	return a.Dot(a)
}

// Distance returns the distance between two points.
func (a Vec3) Distance(b Vec3) float64 {
	return a.Sub(b).Magnitude()
}

// Normalized returns the unit vector in the same direction.
// The zero vector has no direction and yields NaN components.
func (a Vec3) Normalized() Vec3 {
	return a.Div(a.Magnitude())
}

// NormalizedCubic scales the vector so its largest absolute component is 1.
func (a Vec3) NormalizedCubic() Vec3 {
	m := math.Max(math.Abs(a.X), math.Max(math.Abs(a.Y), math.Abs(a.Z)))
	return a.Div(m)
}

// RotateX rotates the vector about the X axis.
func (a Vec3) RotateX(radians float64) Vec3 {
	s, c := math.Sincos(radians)
	return Vec3{
		a.X,
		a.Y*c - a.Z*s,
		a.Y*s + a.Z*c,
	}
}

// RotateY rotates the vector about the Y axis.
func (a Vec3) RotateY(radians float64) Vec3 {
	s, c := math.Sincos(radians)
	return Vec3{
		a.X*c + a.Z*s,
		a.Y,
		-a.X*s + a.Z*c,
	}
}

// RotateZ rotates the vector about the Z axis.
func (a Vec3) RotateZ(radians float64) Vec3 {
	s, c := math.Sincos(radians)
	return Vec3{
		a.X*c - a.Y*s,
		a.X*s + a.Y*c,
		a.Z,
	}
}

// Rotate applies RotateX(r1), then RotateY(r2), then RotateZ(r3).
// An angle of exactly zero skips its rotation entirely, so
// Rotate(0, r, 0) is bit-identical to RotateY(r).
func (a Vec3) Rotate(r1, r2, r3 float64) Vec3 {
	v := a
	if r1 != 0 {
		v = v.RotateX(r1)
	}
	if r2 != 0 {
		v = v.RotateY(r2)
	}
	if r3 != 0 {
		v = v.RotateZ(r3)
	}
	return v
}

// RotateAbout rotates the vector about a unit axis using Rodrigues'
// rotation formula.
func (a Vec3) RotateAbout(axis Vec3, radians float64) Vec3 {
	s, c := math.Sincos(radians)
	return a.Scale(c).
		Add(axis.Scale(axis.Dot(a) * (1 - c))).
		Add(axis.Cross(a).Scale(s))
}

// Angle returns the angle in radians between a and b.
// Epsilon-equal vectors return exactly 0 so rounding can never push the
// acos argument past 1.
func Angle(a, b Vec3) float64 {
	if a.Equal(b) {
		return 0
	}
	return math.Acos(a.Dot(b) / (a.Magnitude() * b.Magnitude()))
}

// Angle3 returns per-axis angles between a and b. Each angle is measured
// between projections onto the plane normal to that axis, after the
// previous axis' correction has been applied to a.
func Angle3(a, b Vec3) Vec3 {
	xr := Angle(Vec3{0, a.Y, a.Z}, Vec3{0, b.Y, b.Z})
	a2 := a.RotateX(xr)

	yr := Angle(Vec3{a2.X, 0, a2.Z}, Vec3{b.X, 0, b.Z})
	a3 := a2.RotateY(yr)

	zr := Angle(Vec3{a3.X, a3.Y, 0}, Vec3{b.X, b.Y, 0})
	return Vec3{xr, yr, zr}
}

// Parallel reports whether a and b point along the same line, in either
// direction. Comparison is on normalized directions, since a component-wise
// ratio breaks down when a component is zero.
func Parallel(a, b Vec3) bool {
	na := a.Normalized()
	nb := b.Normalized()
	return na.Equal(nb) || na.Equal(nb.Negate())
}

// Equal reports whether a and b are within Epsilon of each other.
// The relation is not transitive: a long enough chain of pairwise-equal
// vectors can connect two vectors that are not equal.
func (a Vec3) Equal(b Vec3) bool {
	return a.Sub(b).Magnitude() <= Epsilon
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return a.Scale(1 - t).Add(b.Scale(t))
}

// FromParameterization3 returns a(1-t-s) + b*t + c*s, the point with
// parameters (t, s) on the triangle abc.
func FromParameterization3(t, s float64, a, b, c Vec3) Vec3 {
	u := 1 - t - s
	return Vec3{
		a.X*u + b.X*t + c.X*s,
		a.Y*u + b.Y*t + c.Y*s,
		a.Z*u + b.Z*t + c.Z*s,
	}
}

// WithoutZ drops the Z component.
func (a Vec3) WithoutZ() Vec2 {
	return Vec2{a.X, a.Y}
}

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{
		math.Min(a.X, b.X),
		math.Min(a.Y, b.Y),
		math.Min(a.Z, b.Z),
	}
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{
		math.Max(a.X, b.X),
		math.Max(a.Y, b.Y),
		math.Max(a.Z, b.Z),
	}
}

// Abs returns the component-wise absolute value.
func (a Vec3) Abs() Vec3 {
	return Vec3{
		math.Abs(a.X),
		math.Abs(a.Y),
		math.Abs(a.Z),
	}
}

func (a Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", a.X, a.Y, a.Z)
}
