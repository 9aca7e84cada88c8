package main

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/render"
)

func TestParseRenderMode(t *testing.T) {
	tests := []struct {
		in      string
		want    RenderMode
		wantErr bool
	}{
		{"fill", RenderModeFill, false},
		{"wire", RenderModeWireframe, false},
		{"trace", RenderModeTrace, false},
		{"xray", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRenderMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRenderMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRenderMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderModeNextWraps(t *testing.T) {
	m := RenderModeFill
	for range 3 {
		m = m.Next()
	}
	if m != RenderModeFill {
		t.Errorf("three steps from fill = %v, want fill", m)
	}
}

func TestRotationAxisSettles(t *testing.T) {
	a := NewRotationAxis(30)
	a.Velocity = 0.2

	first := a.Update()
	if first != 0.2 {
		t.Errorf("first step = %v, want 0.2", first)
	}

	for range 300 {
		a.Update()
	}
	if a.Velocity != 0 {
		t.Errorf("velocity after 300 frames = %v, want exactly 0", a.Velocity)
	}
	if a.Position <= 0.2 {
		t.Errorf("position = %v, want more than the first step", a.Position)
	}
}

func TestScreenToLightDir(t *testing.T) {
	center := ScreenToLightDir(40, 12, 80, 24)
	if !center.Equal(math3d.ZAxis()) {
		t.Errorf("center of screen = %v, want +Z", center)
	}

	corner := ScreenToLightDir(0, 0, 80, 24)
	if math.Abs(corner.Magnitude()-1) > 1e-9 {
		t.Errorf("corner light is not unit length: %v", corner)
	}
	if corner.X >= 0 || corner.Y <= 0 {
		t.Errorf("top-left corner = %v, want -X and +Y", corner)
	}
}

func TestFitScene(t *testing.T) {
	scene := models.NewMeshTriangle3Collection([]*models.MeshTriangle3{
		models.NewMeshTriangle3(math3d.V3(10, 10, 10), math3d.V3(14, 10, 10), math3d.V3(10, 12, 10)),
	})

	fitScene(scene)

	bounds := scene.Bounds()
	if !bounds.Center().Equal(math3d.Zero3()) {
		t.Errorf("center = %v, want origin", bounds.Center())
	}
	if size := bounds.Size(); math.Abs(size.X-2) > 1e-9 || math.Abs(size.Y-1) > 1e-9 {
		t.Errorf("size = %v, want (2, 1, 0)", size)
	}
}

func TestFrameDrawModes(t *testing.T) {
	scene, err := models.Cube(math3d.Zero3(), 2, 4)
	if err != nil {
		t.Fatalf("Cube: %v", err)
	}
	background := render.RGB(1, 2, 3)

	for _, mode := range []RenderMode{RenderModeFill, RenderModeWireframe, RenderModeTrace} {
		t.Run(mode.String(), func(t *testing.T) {
			fb := render.NewFramebuffer(32, 24)
			region := newRegion(math3d.V3(0, 0, -1), defaultViewSize, fb.Width, fb.Height)
			frame := NewFrame(region, fb, nil)

			frame.Draw(scene, NewViewState(mode), background)

			if got := fb.GetPixel(0, 0); got != background {
				t.Errorf("corner pixel = %v, want background", got)
			}
			drawn := 0
			for y := range fb.Height {
				for x := range fb.Width {
					if fb.GetPixel(x, y) != background {
						drawn++
					}
				}
			}
			if drawn == 0 {
				t.Error("nothing drawn")
			}
		})
	}
}

func TestTurnMatrixMatchesRotate(t *testing.T) {
	m, err := turnMatrix("-25,35,10")
	if err != nil {
		t.Fatalf("turnMatrix: %v", err)
	}

	v := math3d.V3(0.5, -1, 2)
	want := v.Rotate(math3d.DegreesToRadians(-25), math3d.DegreesToRadians(35), math3d.DegreesToRadians(10))
	if got := m.MulVec3(v); !got.Equal(want) {
		t.Errorf("MulVec3 = %v, want %v", got, want)
	}

	if _, err := turnMatrix("sideways"); err == nil {
		t.Error("turnMatrix accepted a malformed turn")
	}
}

func TestFitSceneKeepsNormals(t *testing.T) {
	tri := models.NewMeshTriangle3(math3d.V3(-4, 0, 3), math3d.V3(4, 0, 3), math3d.V3(0, 4, 3))
	tri.NormalA = math3d.ZAxis()
	scene := models.NewMeshTriangle3Collection([]*models.MeshTriangle3{tri})

	fitScene(scene)

	if !tri.NormalA.Equal(math3d.ZAxis()) {
		t.Errorf("NormalA = %v, want +Z", tri.NormalA)
	}
	if !tri.A.Equal(math3d.V3(-1, -0.5, 0)) {
		t.Errorf("A = %v, want (-1, -0.5, 0)", tri.A)
	}
}
