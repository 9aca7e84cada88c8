package render

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
)

// facingTriangle returns a triangle at depth z that faces the test region
// and covers the middle of its viewport. On a 20x20 framebuffer its
// vertices land on the pixel centers (4, 16), (16, 16) and (10, 4).
func facingTriangle(z float64) *models.MeshTriangle3 {
	return models.NewMeshTriangle3(
		math3d.V3(2.75, -3.25, z),
		math3d.V3(-3.25, -3.25, z),
		math3d.V3(-0.25, 2.75, z),
	)
}

// createTestRasterizer creates a rasterizer for testing.
func createTestRasterizer(width, height int) (*Rasterizer, *Framebuffer) {
	fb := NewFramebuffer(width, height)
	return NewRasterizer(newTestRegion(), fb), fb
}

func TestRasterizerDrawsFrontFace(t *testing.T) {
	r, fb := createTestRasterizer(20, 20)
	r.DrawTriangle(facingTriangle(5), ColorWhite)

	if got := fb.GetPixel(10, 12); got == (Color{}) {
		t.Fatal("center pixel not drawn")
	}
	if got := r.Depth(10, 12); math.Abs(got-5) > 1e-9 {
		t.Errorf("depth = %v, want 5", got)
	}
	if got := fb.GetPixel(1, 1); got != (Color{}) {
		t.Errorf("corner pixel drawn: %v", got)
	}
	if got := r.Depth(1, 1); !math.IsInf(got, 1) {
		t.Errorf("corner depth = %v, want +Inf", got)
	}
}

func TestRasterizerShading(t *testing.T) {
	r, fb := createTestRasterizer(20, 20)
	r.LightDir = math3d.V3(0, 0, -1)
	r.Ambient = 0.25

	lit := facingTriangle(5)
	r.DrawTriangle(lit, ColorWhite)
	if got := fb.GetPixel(10, 12); got != ColorWhite {
		t.Errorf("fully lit pixel = %v, want white", got)
	}

	r.ClearDepth()
	dark := facingTriangle(4)
	dark.NormalA, dark.NormalB, dark.NormalC = math3d.XAxis(), math3d.XAxis(), math3d.XAxis()
	r.DrawTriangle(dark, ColorWhite)
	if got := fb.GetPixel(10, 12); got.R != 64 {
		t.Errorf("ambient-only pixel = %v, want R=64", got)
	}
}

func TestRasterizerBackfaceCulling(t *testing.T) {
	back := facingTriangle(5)
	back.Invert()

	r, fb := createTestRasterizer(20, 20)
	r.DrawTriangle(back, ColorWhite)
	if got := fb.GetPixel(10, 12); got != (Color{}) {
		t.Errorf("back face drawn: %v", got)
	}

	r.DisableBackfaceCulling = true
	r.DrawTriangle(back, ColorWhite)
	if got := fb.GetPixel(10, 12); got == (Color{}) {
		t.Error("back face not drawn with culling disabled")
	}
}

func TestRasterizerDepthTest(t *testing.T) {
	r, fb := createTestRasterizer(20, 20)
	r.LightDir = math3d.V3(0, 0, -1)

	c := models.NewMeshTriangle3Collection([]*models.MeshTriangle3{
		facingTriangle(5),
		facingTriangle(8),
	})
	r.DrawCollection(c, ColorBlue)
	r.DrawTriangle(facingTriangle(8), ColorRed)

	if got := fb.GetPixel(10, 12); got != ColorBlue {
		t.Errorf("pixel = %v, the nearer blue face should win", got)
	}
}

func TestRasterizerSkipsBehind(t *testing.T) {
	r, fb := createTestRasterizer(20, 20)
	r.DrawTriangle(facingTriangle(-5), ColorWhite)

	for i, p := range fb.Pixels {
		if p != (Color{}) {
			t.Fatalf("pixel %d drawn for a triangle behind the region", i)
		}
	}
}

func TestRasterizerTexture(t *testing.T) {
	r, fb := createTestRasterizer(20, 20)
	r.LightDir = math3d.V3(0, 0, -1)
	r.Texture = NewCheckerTexture(2, 2, 1, ColorRed, ColorGreen)

	tri := facingTriangle(5)
	tri.TextureU = math3d.V2(0.25, 0.75)
	tri.TextureV = math3d.V2(0.25, 0.75)
	tri.TextureW = math3d.V2(0.25, 0.75)
	r.DrawTriangle(tri, ColorWhite)

	// UV (0.25, 0.75) is the top-left texel.
	if got := fb.GetPixel(10, 12); got != ColorRed {
		t.Errorf("pixel = %v, want red", got)
	}
}

func TestRasterizerResize(t *testing.T) {
	r, fb := createTestRasterizer(4, 4)
	fb.Resize(8, 6)
	r.Resize()

	if len(r.zbuffer) != 48 {
		t.Errorf("zbuffer length = %d, want 48", len(r.zbuffer))
	}
	if !math.IsInf(r.Depth(7, 5), 1) {
		t.Error("resized depth buffer should start cleared")
	}
}

func BenchmarkRasterizeSphere(b *testing.B) {
	c, err := models.Sphere(math3d.V3(0, 0, 5), 3, 16)
	if err != nil {
		b.Fatal(err)
	}
	r, fb := createTestRasterizer(80, 48)

	for b.Loop() {
		fb.Clear(ColorBlack)
		r.ClearDepth()
		r.DrawCollection(c, ColorWhite)
	}
}
