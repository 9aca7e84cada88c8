package render

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

var _ Ray3Caster = (*Ray3Region)(nil)

// Ray3Region is a flat rectangular caster. Every ray leaves the rectangle
// spanned by W and H around D.P and travels along D.V, giving an
// orthographic view.
type Ray3Region struct {
	// D holds the center of the rectangle and the unit view direction.
	D math3d.Ray3
	// W and H span the full width and height of the rectangle.
	W, H math3d.Vec3
}

// NewRay3Region creates a region centered on d.P looking along d.V. W
// points to the viewer's right and H points up, with world Y as the up
// reference.
func NewRay3Region(d math3d.Ray3, width, height float64) *Ray3Region {
	v := d.V.Normalized()

	right := v.Cross(math3d.YAxis())
	if right.Equal(math3d.Zero3()) {
		// Looking straight up or down.
		right = math3d.XAxis()
	}
	w := right.Normalized().Scale(width)
	h := w.Cross(v).Normalized().Scale(height)

	return &Ray3Region{
		D: math3d.NewRay3(d.P, v),
		W: w,
		H: h,
	}
}

// RayAt returns the ray leaving the point (wAlpha, hAlpha) of the
// rectangle.
func (r *Ray3Region) RayAt(wAlpha, hAlpha float64) math3d.Ray3 {
	p := r.D.P.
		Add(r.W.Scale(wAlpha - 0.5)).
		Add(r.H.Scale(hAlpha - 0.5))
	return math3d.NewRay3(p, r.D.V)
}

// Projection returns the rectangle coordinates of the point's orthogonal
// projection onto the rectangle's plane.
func (r *Ray3Region) Projection(point math3d.Vec3) math3d.Vec2 {
	rel := point.Sub(r.D.P)
	return math3d.Vec2{
		X: rel.Dot(r.W)/r.W.MagnitudeSq() + 0.5,
		Y: rel.Dot(r.H)/r.H.MagnitudeSq() + 0.5,
	}
}

// Meets reports whether the point projects inside the rectangle and lies
// in front of it.
func (r *Ray3Region) Meets(point math3d.Vec3) bool {
	p := r.Projection(point)
	return p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1 && r.Distance(point) >= 0
}

// Distance returns the signed distance from the rectangle's plane to the
// point, positive in front.
func (r *Ray3Region) Distance(point math3d.Vec3) float64 {
	return point.Sub(r.D.P).Dot(r.D.V)
}

// RotateX rotates the view about the X axis through the center.
func (r *Ray3Region) RotateX(radians float64) {
	r.rotate(func(v math3d.Vec3) math3d.Vec3 { return v.RotateX(radians) })
}

// RotateY rotates the view about the Y axis through the center.
func (r *Ray3Region) RotateY(radians float64) {
	r.rotate(func(v math3d.Vec3) math3d.Vec3 { return v.RotateY(radians) })
}

// RotateZ rotates the view about the Z axis through the center.
func (r *Ray3Region) RotateZ(radians float64) {
	r.rotate(func(v math3d.Vec3) math3d.Vec3 { return v.RotateZ(radians) })
}

// Rotate applies X, Y and Z rotations, skipping any exactly zero angle.
func (r *Ray3Region) Rotate(r1, r2, r3 float64) {
	r.rotate(func(v math3d.Vec3) math3d.Vec3 { return v.Rotate(r1, r2, r3) })
}

// RotateTo turns the region by the smallest rotation that makes it look
// along direction. An opposite direction turns it half way around H.
func (r *Ray3Region) RotateTo(direction math3d.Vec3) {
	dir := direction.Normalized()
	switch {
	case r.D.V.Equal(dir):
		return
	case r.D.V.Equal(dir.Negate()):
		axis := r.H.Normalized()
		r.rotate(func(v math3d.Vec3) math3d.Vec3 { return v.RotateAbout(axis, math.Pi) })
	default:
		axis := r.D.V.Cross(dir).Normalized()
		angle := math3d.Angle(r.D.V, dir)
		r.rotate(func(v math3d.Vec3) math3d.Vec3 { return v.RotateAbout(axis, angle) })
	}
}

func (r *Ray3Region) rotate(fn func(math3d.Vec3) math3d.Vec3) {
	r.D.V = fn(r.D.V)
	r.W = fn(r.W)
	r.H = fn(r.H)
}
