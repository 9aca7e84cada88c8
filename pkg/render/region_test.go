package render

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
)

func vecClose(a, b math3d.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func newTestRegion() *Ray3Region {
	return NewRay3Region(math3d.NewRay3(math3d.Zero3(), math3d.V3(0, 0, 3)), 10, 10)
}

func TestNewRay3RegionOrientation(t *testing.T) {
	r := newTestRegion()

	if r.D.V != math3d.ZAxis() {
		t.Errorf("direction = %v, want unit Z", r.D.V)
	}
	// Looking down +Z with Y up, the viewer's right is -X.
	if !vecClose(r.W, math3d.V3(-10, 0, 0), 1e-12) {
		t.Errorf("W = %v", r.W)
	}
	if !vecClose(r.H, math3d.V3(0, 10, 0), 1e-12) {
		t.Errorf("H = %v", r.H)
	}

	vertical := NewRay3Region(math3d.NewRay3(math3d.Zero3(), math3d.YAxis()), 4, 2)
	if vertical.W.Magnitude() != 4 || math.Abs(vertical.H.Magnitude()-2) > 1e-12 {
		t.Errorf("vertical region spans = %v, %v", vertical.W, vertical.H)
	}
	if math.Abs(vertical.W.Dot(vertical.D.V)) > 1e-12 || math.Abs(vertical.H.Dot(vertical.D.V)) > 1e-12 {
		t.Error("vertical region spans are not perpendicular to the view")
	}
}

func TestRay3RegionRayAtProjection(t *testing.T) {
	r := newTestRegion()

	tests := []struct {
		name   string
		wa, ha float64
		origin math3d.Vec3
	}{
		{"center", 0.5, 0.5, math3d.V3(0, 0, 0)},
		{"bottom left", 0, 0, math3d.V3(5, -5, 0)},
		{"top right", 1, 1, math3d.V3(-5, 5, 0)},
		{"off viewport", 1.5, -0.5, math3d.V3(-10, -10, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ray := r.RayAt(tc.wa, tc.ha)
			if !vecClose(ray.P, tc.origin, 1e-12) {
				t.Errorf("RayAt origin = %v, want %v", ray.P, tc.origin)
			}
			if ray.V != r.D.V {
				t.Errorf("RayAt direction = %v", ray.V)
			}

			// Any point down the ray projects back to where it started.
			p := r.Projection(ray.At(7))
			if math.Abs(p.X-tc.wa) > 1e-12 || math.Abs(p.Y-tc.ha) > 1e-12 {
				t.Errorf("Projection = %v, want (%v, %v)", p, tc.wa, tc.ha)
			}
		})
	}
}

func TestRay3RegionMeetsDistance(t *testing.T) {
	r := newTestRegion()

	tests := []struct {
		name  string
		p     math3d.Vec3
		meets bool
		dist  float64
	}{
		{"ahead", math3d.V3(1, 1, 4), true, 4},
		{"on corner", math3d.V3(5, 5, 2), true, 2},
		{"behind", math3d.V3(1, 1, -4), false, -4},
		{"outside", math3d.V3(6, 0, 4), false, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Meets(tc.p); got != tc.meets {
				t.Errorf("Meets = %v, want %v", got, tc.meets)
			}
			if got := r.Distance(tc.p); got != tc.dist {
				t.Errorf("Distance = %v, want %v", got, tc.dist)
			}
		})
	}
}

func TestRay3RegionRotate(t *testing.T) {
	r := newTestRegion()
	r.RotateY(math3d.HalfPi)

	if !vecClose(r.D.V, math3d.XAxis(), 1e-12) {
		t.Errorf("V = %v, want X", r.D.V)
	}
	if !vecClose(r.W, math3d.V3(0, 0, 10), 1e-12) {
		t.Errorf("W = %v, want (0, 0, 10)", r.W)
	}
	if r.D.P != math3d.Zero3() {
		t.Errorf("rotation moved the center to %v", r.D.P)
	}

	r.Rotate(0, -math3d.HalfPi, 0)
	if !vecClose(r.D.V, math3d.ZAxis(), 1e-12) {
		t.Errorf("V = %v after rotating back", r.D.V)
	}
}

func TestRay3RegionRotateTo(t *testing.T) {
	tests := []struct {
		name string
		dir  math3d.Vec3
	}{
		{"quarter", math3d.V3(5, 0, 0)},
		{"oblique", math3d.V3(1, 2, -3)},
		{"opposite", math3d.V3(0, 0, -1)},
		{"same", math3d.V3(0, 0, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRegion()
			r.RotateTo(tc.dir)

			if !vecClose(r.D.V, tc.dir.Normalized(), 1e-9) {
				t.Errorf("V = %v, want %v", r.D.V, tc.dir.Normalized())
			}
			// The spans stay a right-handed frame around the view.
			if math.Abs(r.W.Dot(r.D.V)) > 1e-9 || math.Abs(r.H.Dot(r.D.V)) > 1e-9 || math.Abs(r.W.Dot(r.H)) > 1e-9 {
				t.Errorf("frame not orthogonal: V=%v W=%v H=%v", r.D.V, r.W, r.H)
			}
			if !vecClose(r.W.Cross(r.D.V).Normalized(), r.H.Normalized(), 1e-9) {
				t.Errorf("frame handedness flipped: V=%v W=%v H=%v", r.D.V, r.W, r.H)
			}
		})
	}
}

func TestRay3RegionRotateToMatchesAxisRotation(t *testing.T) {
	a := newTestRegion()
	b := newTestRegion()
	a.RotateTo(math3d.XAxis())
	b.RotateY(math3d.HalfPi)

	if !vecClose(a.W, b.W, 1e-12) || !vecClose(a.H, b.H, 1e-12) {
		t.Errorf("RotateTo = %v %v, RotateY = %v %v", a.W, a.H, b.W, b.H)
	}
}
