package render

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
)

// Tracer renders by casting one ray per pixel and shading the nearest
// triangle it hits. Every ray is tested against every triangle.
type Tracer struct {
	caster Ray3Caster
	fb     *Framebuffer

	// LightDir points toward a directional light.
	LightDir math3d.Vec3
	// Ambient is the minimum light level in [0, 1].
	Ambient float64
	// Background fills pixels whose ray hits nothing.
	Background Color
}

// NewTracer creates a tracer with the same default light as NewRasterizer.
func NewTracer(caster Ray3Caster, fb *Framebuffer) *Tracer {
	return &Tracer{
		caster:     caster,
		fb:         fb,
		LightDir:   math3d.V3(-1, 1, -1).Normalized(),
		Ambient:    0.3,
		Background: ColorBlack,
	}
}

// RayFor returns the ray through the center of pixel (x, y).
func (t *Tracer) RayFor(x, y int) math3d.Ray3 {
	wa := (float64(x) + 0.5) / float64(t.fb.Width)
	ha := 1 - (float64(y)+0.5)/float64(t.fb.Height)
	return t.caster.RayAt(wa, ha)
}

// Render overwrites every pixel of the framebuffer.
func (t *Tracer) Render(c *models.MeshTriangle3Collection, base Color) {
	for y := range t.fb.Height {
		for x := range t.fb.Width {
			t.fb.SetPixel(x, y, t.Trace(c, t.RayFor(x, y), base))
		}
	}
}

// Trace returns the color seen along ray. Surfaces are lit from both
// sides.
func (t *Tracer) Trace(c *models.MeshTriangle3Collection, ray math3d.Ray3, base Color) Color {
	idx, dist, ok := c.Nearest(ray)
	if !ok {
		return t.Background
	}

	tri := c.Triangles[idx]
	n := t.surfaceNormal(tri, ray.At(dist))
	if n.Dot(ray.V) > 0 {
		n = n.Negate()
	}
	return Shade(base, t.Ambient+(1-t.Ambient)*math.Max(0, n.Dot(t.LightDir)))
}

// surfaceNormal interpolates the vertex normals at p, falling back to the
// face normal when the triangle has none.
func (t *Tracer) surfaceNormal(tri *models.MeshTriangle3, p math3d.Vec3) math3d.Vec3 {
	if tri.NormalA.MagnitudeSq() == 0 {
		return tri.Normal().Normalized()
	}
	ts := tri.Parameterization(p)
	return math3d.FromParameterization3(ts.X, ts.Y, tri.NormalA, tri.NormalB, tri.NormalC).Normalized()
}
