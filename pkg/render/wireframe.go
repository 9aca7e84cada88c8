package render

import (
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
)

// Wireframe draws 3D line work through a caster.
type Wireframe struct {
	caster Ray3Caster
	fb     *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(caster Ray3Caster, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		caster: caster,
		fb:     fb,
	}
}

// DrawLine3D draws a line in 3D space.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	// Only draw if at least one end is in view; the framebuffer clips the
	// rest.
	if !w.caster.Meets(p1) && !w.caster.Meets(p2) {
		return
	}

	s1 := screenPoint(w.caster, w.fb, p1)
	s2 := screenPoint(w.caster, w.fb, p2)
	w.fb.DrawLine(int(s1.X), int(s1.Y), int(s2.X), int(s2.Y), color)
}

// DrawCollection draws the edges of every triangle.
func (w *Wireframe) DrawCollection(c *models.MeshTriangle3Collection, color Color) {
	for _, t := range c.Triangles {
		w.DrawLine3D(t.A, t.B, color)
		w.DrawLine3D(t.B, t.C, color)
		w.DrawLine3D(t.C, t.A, color)
	}
}

// DrawBounds draws the 12 edges of an axis-aligned box.
func (w *Wireframe) DrawBounds(box math3d.AABB, color Color) {
	lo, hi := box.Min, box.Max

	vertices := [8]math3d.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z}, // 0: bottom-left-back
		{X: hi.X, Y: lo.Y, Z: lo.Z}, // 1: bottom-right-back
		{X: hi.X, Y: hi.Y, Z: lo.Z}, // 2: top-right-back
		{X: lo.X, Y: hi.Y, Z: lo.Z}, // 3: top-left-back
		{X: lo.X, Y: lo.Y, Z: hi.Z}, // 4: bottom-left-front
		{X: hi.X, Y: lo.Y, Z: hi.Z}, // 5: bottom-right-front
		{X: hi.X, Y: hi.Y, Z: hi.Z}, // 6: top-right-front
		{X: lo.X, Y: hi.Y, Z: hi.Z}, // 7: top-left-front
	}

	edges := [12][2]int{
		// Back face
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		// Front face
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		// Connecting edges
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}

	for _, edge := range edges {
		w.DrawLine3D(vertices[edge[0]], vertices[edge[1]], color)
	}
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}
