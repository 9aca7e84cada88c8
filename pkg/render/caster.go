// Package render draws triangle collections into a framebuffer through a
// ray caster and presents the result on a terminal.
package render

import "github.com/taigrr/prism/pkg/math3d"

// Ray3Caster produces view rays for viewport coordinates and relates world
// points back to the viewport. Renderers depend only on this interface, so
// any caster shape can drive them.
//
// Viewport coordinates run over [0, 1] on both axes, with (0, 0) at the
// bottom-left corner.
type Ray3Caster interface {
	// RayAt returns the ray through viewport coordinate (wAlpha, hAlpha).
	RayAt(wAlpha, hAlpha float64) math3d.Ray3
	// Projection returns the viewport coordinates of a world point.
	Projection(point math3d.Vec3) math3d.Vec2
	// Meets reports whether the point falls inside the caster's volume.
	Meets(point math3d.Vec3) bool
	// Distance returns the depth of the point along the view direction.
	Distance(point math3d.Vec3) float64

	RotateX(radians float64)
	RotateY(radians float64)
	RotateZ(radians float64)
	Rotate(r1, r2, r3 float64)
	// RotateTo turns the caster to look along direction.
	RotateTo(direction math3d.Vec3)
}
