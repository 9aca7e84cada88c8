package math3d

import "math"

// Triangle3 is a mutable 3D triangle. Transform methods rewrite the
// vertices in place. Degenerate (collinear) triangles are allowed; they
// produce NaN or zero results and never meet a ray.
type Triangle3 struct {
	A, B, C Vec3
}

// NewTriangle3 creates a triangle from three vertices.
func NewTriangle3(a, b, c Vec3) *Triangle3 {
	return &Triangle3{A: a, B: b, C: c}
}

// Move translates every vertex by offset.
func (t *Triangle3) Move(offset Vec3) {
	t.A = t.A.Add(offset)
	t.B = t.B.Add(offset)
	t.C = t.C.Add(offset)
}

// Scale scales every vertex component-wise by factor about anchor.
func (t *Triangle3) Scale(factor, anchor Vec3) {
	t.A = scaleAbout(t.A, factor, anchor)
	t.B = scaleAbout(t.B, factor, anchor)
	t.C = scaleAbout(t.C, factor, anchor)
}

func scaleAbout(v, factor, anchor Vec3) Vec3 {
	return anchor.Add(v.Sub(anchor).Mul(factor))
}

// RotateX rotates the triangle about the X axis through anchor.
func (t *Triangle3) RotateX(radians float64, anchor Vec3) {
	t.rotate(anchor, func(v Vec3) Vec3 { return v.RotateX(radians) })
}

// RotateY rotates the triangle about the Y axis through anchor.
func (t *Triangle3) RotateY(radians float64, anchor Vec3) {
	t.rotate(anchor, func(v Vec3) Vec3 { return v.RotateY(radians) })
}

// RotateZ rotates the triangle about the Z axis through anchor.
func (t *Triangle3) RotateZ(radians float64, anchor Vec3) {
	t.rotate(anchor, func(v Vec3) Vec3 { return v.RotateZ(radians) })
}

// Rotate applies X, Y and Z rotations through anchor with the same
// skip-zero rule as Vec3.Rotate.
func (t *Triangle3) Rotate(r1, r2, r3 float64, anchor Vec3) {
	t.rotate(anchor, func(v Vec3) Vec3 { return v.Rotate(r1, r2, r3) })
}

func (t *Triangle3) rotate(anchor Vec3, fn func(Vec3) Vec3) {
	t.A = fn(t.A.Sub(anchor)).Add(anchor)
	t.B = fn(t.B.Sub(anchor)).Add(anchor)
	t.C = fn(t.C.Sub(anchor)).Add(anchor)
}

// Transform applies an affine matrix to every vertex.
func (t *Triangle3) Transform(m Mat4) {
	t.A = m.MulVec3(t.A)
	t.B = m.MulVec3(t.B)
	t.C = m.MulVec3(t.C)
}

// Invert swaps the second and third vertex, reversing the winding and so
// the direction of Normal.
func (t *Triangle3) Invert() {
	t.B, t.C = t.C, t.B
}

// Clone returns an independent copy of the triangle.
func (t *Triangle3) Clone() *Triangle3 {
	c := *t
	return &c
}

// Vertices returns the three vertices.
func (t *Triangle3) Vertices() (a, b, c Vec3) {
	return t.A, t.B, t.C
}

// Normal returns the unnormalized face normal AB × AC.
func (t *Triangle3) Normal() Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// Centroid returns the average of the three vertices.
func (t *Triangle3) Centroid() Vec3 {
	return t.A.Add(t.B).Add(t.C).Div(3)
}

// Parameterization returns (t, s) such that P = A + AB*t + AC*s for a point
// p on the triangle's plane. Points off the plane are projected onto it.
func (t *Triangle3) Parameterization(p Vec3) Vec2 {
	ab := t.B.Sub(t.A)
	ac := t.C.Sub(t.A)
	ap := p.Sub(t.A)

	d00 := ab.Dot(ab)
	d01 := ab.Dot(ac)
	d11 := ac.Dot(ac)
	d20 := ap.Dot(ab)
	d21 := ap.Dot(ac)
	den := d00*d11 - d01*d01

	return Vec2{
		X: (d11*d20 - d01*d21) / den,
		Y: (d00*d21 - d01*d20) / den,
	}
}

// Intersect intersects the ray with the triangle. It returns the ray
// parameter of the hit point and whether the ray meets the triangle.
// Rays parallel to the plane (within Epsilon of the angle cosine) and hits
// behind the ray origin do not count.
func (t *Triangle3) Intersect(ray Ray3) (float64, bool) {
	n := t.Normal()
	denom := n.Dot(ray.V)
	if math.Abs(denom) <= Epsilon*n.Magnitude()*ray.V.Magnitude() {
		return 0, false
	}

	dist := n.Dot(t.A.Sub(ray.P)) / denom
	if dist < 0 {
		return 0, false
	}

	if !insideParameters(t.Parameterization(ray.At(dist))) {
		return 0, false
	}
	return dist, true
}

// Meets reports whether the ray intersects the triangle.
func (t *Triangle3) Meets(ray Ray3) bool {
	_, ok := t.Intersect(ray)
	return ok
}
