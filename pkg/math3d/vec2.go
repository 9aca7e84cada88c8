package math3d

import (
	"fmt"
	"math"
)

// Vec2 represents an immutable 2D vector, used for texture coordinates and
// viewport positions.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Zero2 returns the zero vector.
func Zero2() Vec2 {
	return Vec2{}
}

// One2 returns (1, 1).
func One2() Vec2 {
	return Vec2{1, 1}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Mul returns the component-wise product a * b.
func (a Vec2) Mul(b Vec2) Vec2 {
	return Vec2{a.X * b.X, a.Y * b.Y}
}

// Scale returns the scalar product a * s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// DivVec returns the component-wise quotient a / b.
func (a Vec2) DivVec(b Vec2) Vec2 {
	return Vec2{a.X / b.X, a.Y / b.Y}
}

// Div returns the scalar division a / s.
func (a Vec2) Div(s float64) Vec2 {
	return Vec2{a.X / s, a.Y / s}
}

// Negate returns the negated vector.
func (a Vec2) Negate() Vec2 {
	return Vec2{-a.X, -a.Y}
}

// Dot returns the dot product a · b.
func (a Vec2) Dot(b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the z component of the 3D cross product of a and b
// (the perp-dot product).
func (a Vec2) Cross(b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Magnitude returns the length of the vector.
func (a Vec2) Magnitude() float64 {
	return math.Sqrt(a.Dot(a))
}

// Normalized returns the unit vector; the zero vector yields NaN.
func (a Vec2) Normalized() Vec2 {
	return a.Div(a.Magnitude())
}

// Rotate rotates the vector counter-clockwise by radians.
func (a Vec2) Rotate(radians float64) Vec2 {
	s, c := math.Sincos(radians)
	return Vec2{a.X*c - a.Y*s, a.X*s + a.Y*c}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return a.Scale(1 - t).Add(b.Scale(t))
}

// Equal reports whether a and b are within Epsilon of each other.
func (a Vec2) Equal(b Vec2) bool {
	return a.Sub(b).Magnitude() <= Epsilon
}

func (a Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", a.X, a.Y)
}
