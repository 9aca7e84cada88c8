package render

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
)

// Rasterizer fills mesh triangles into a framebuffer. Vertices are placed
// on screen through the caster's Projection and depth-tested by its
// Distance, so any caster shape works.
type Rasterizer struct {
	caster  Ray3Caster
	fb      *Framebuffer
	zbuffer []float64 // Depth buffer (1D array, row-major)

	// LightDir points toward a directional light.
	LightDir math3d.Vec3
	// Ambient is the minimum light level in [0, 1].
	Ambient float64
	// Texture, when set, replaces the base color with the texel at the
	// interpolated UV.
	Texture                *Texture
	DisableBackfaceCulling bool // If true, render both sides of triangles
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(caster Ray3Caster, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		caster:   caster,
		fb:       fb,
		LightDir: math3d.V3(-1, 1, -1).Normalized(),
		Ambient:  0.3,
	}
	r.Resize()
	return r
}

// Resize resizes the depth buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
	r.ClearDepth()
}

// ClearDepth resets the depth buffer to infinitely far away.
func (r *Rasterizer) ClearDepth() {
	for i := range r.zbuffer {
		r.zbuffer[i] = math.Inf(1)
	}
}

// Depth returns the depth buffer value at (x, y).
func (r *Rasterizer) Depth(x, y int) float64 {
	if x < 0 || x >= r.fb.Width || y < 0 || y >= r.fb.Height {
		return math.Inf(1)
	}
	return r.zbuffer[y*r.fb.Width+x]
}

// screenPoint maps a world point to framebuffer pixel coordinates, y down.
func screenPoint(c Ray3Caster, fb *Framebuffer, p math3d.Vec3) math3d.Vec2 {
	v := c.Projection(p)
	return math3d.V2(v.X*float64(fb.Width), (1-v.Y)*float64(fb.Height))
}

// DrawCollection draws every triangle in order with Gouraud shading.
func (r *Rasterizer) DrawCollection(c *models.MeshTriangle3Collection, base Color) {
	for _, t := range c.Triangles {
		r.DrawTriangle(t, base)
	}
}

// DrawTriangle rasterizes one mesh triangle. Lighting is computed at the
// vertices from their normals and interpolated across the face; vertices
// without a normal use the face normal.
func (r *Rasterizer) DrawTriangle(t *models.MeshTriangle3, base Color) {
	verts := [3]math3d.Vec3{t.A, t.B, t.C}
	normals := [3]math3d.Vec3{t.NormalA, t.NormalB, t.NormalC}
	uvs := [3]math3d.Vec2{t.TextureU, t.TextureV, t.TextureW}

	var screen [3]math3d.Vec2
	var depth, light [3]float64
	allBehind := true
	face := t.Normal().Normalized()
	for i, v := range verts {
		screen[i] = screenPoint(r.caster, r.fb, v)
		depth[i] = r.caster.Distance(v)
		if depth[i] >= 0 {
			allBehind = false
		}

		n := face
		if normals[i].MagnitudeSq() != 0 {
			n = normals[i].Normalized()
		}
		light[i] = r.Ambient + (1-r.Ambient)*math.Max(0, n.Dot(r.LightDir))
	}

	// Skip if entirely behind the caster
	if allBehind {
		return
	}

	tri := math3d.NewTriangle2(screen[0], screen[1], screen[2])

	// Screen y points down, which flips the sign: front faces are negative.
	area := screen[1].Sub(screen[0]).Cross(screen[2].Sub(screen[0]))
	if area == 0 || math.IsNaN(area) || (area > 0 && !r.DisableBackfaceCulling) {
		return
	}

	minX := int(math.Max(0, math.Floor(min3(screen[0].X, screen[1].X, screen[2].X))))
	maxX := int(math.Min(float64(r.fb.Width-1), math.Ceil(max3(screen[0].X, screen[1].X, screen[2].X))))
	minY := int(math.Max(0, math.Floor(min3(screen[0].Y, screen[1].Y, screen[2].Y))))
	maxY := int(math.Min(float64(r.fb.Height-1), math.Ceil(max3(screen[0].Y, screen[1].Y, screen[2].Y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			ts := tri.Parameterization(math3d.V2(float64(x)+0.5, float64(y)+0.5))
			if ts.X < 0 || ts.Y < 0 || ts.X+ts.Y > 1 {
				continue
			}

			z := math3d.FromParameterization3Scalar(ts.X, ts.Y, depth[0], depth[1], depth[2])
			if z < 0 || z >= r.zbuffer[y*r.fb.Width+x] {
				continue
			}

			c := base
			if r.Texture != nil {
				c = r.Texture.Sample(
					math3d.FromParameterization3Scalar(ts.X, ts.Y, uvs[0].X, uvs[1].X, uvs[2].X),
					math3d.FromParameterization3Scalar(ts.X, ts.Y, uvs[0].Y, uvs[1].Y, uvs[2].Y),
				)
			}
			intensity := math3d.FromParameterization3Scalar(ts.X, ts.Y, light[0], light[1], light[2])

			r.zbuffer[y*r.fb.Width+x] = z
			r.fb.SetPixel(x, y, Shade(c, intensity))
		}
	}
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
