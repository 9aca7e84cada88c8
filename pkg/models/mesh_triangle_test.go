package models

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
)

func vecClose(a, b math3d.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func texturedTriangle() *MeshTriangle3 {
	t := NewMeshTriangle3(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
	t.TextureU = math3d.V2(0, 0)
	t.TextureV = math3d.V2(1, 0)
	t.TextureW = math3d.V2(0, 1)
	t.NormalA = math3d.ZAxis()
	t.NormalB = math3d.ZAxis()
	t.NormalC = math3d.V3(0, 1, 1).Normalized()
	return t
}

func TestMeshTriangle3RotateCarriesNormals(t *testing.T) {
	tri := texturedTriangle()
	tri.RotateX(-math3d.HalfPi, math3d.V3(5, 5, 5))

	if !vecClose(tri.NormalA, math3d.V3(0, 1, 0), 1e-12) {
		t.Errorf("NormalA = %v, want (0, 1, 0)", tri.NormalA)
	}
	// Rotation is about the anchor for vertices but normals are directions.
	if !vecClose(tri.Normal().Normalized(), tri.NormalA, 1e-12) {
		t.Errorf("face normal %v and vertex normal %v diverged", tri.Normal().Normalized(), tri.NormalA)
	}
}

func TestMeshTriangle3RotateSkipsZero(t *testing.T) {
	tri := texturedTriangle()
	want := tri.NormalC.RotateY(0.4)
	tri.Rotate(0, 0.4, 0, math3d.Zero3())
	if tri.NormalC != want {
		t.Errorf("NormalC = %v, want %v", tri.NormalC, want)
	}
}

func TestMeshTriangle3ScaleKeepsNormalsPerpendicular(t *testing.T) {
	// A slanted triangle whose normal has x and z parts.
	tri := NewMeshTriangle3(math3d.V3(0, 0, 0), math3d.V3(1, 0, 1), math3d.V3(0, 1, 0))
	n := tri.Normal().Normalized()
	tri.NormalA, tri.NormalB, tri.NormalC = n, n, n

	tri.Scale(math3d.V3(4, 1, 1), math3d.Zero3())

	if !vecClose(tri.NormalA, tri.Normal().Normalized(), 1e-12) {
		t.Errorf("NormalA = %v, face normal = %v", tri.NormalA, tri.Normal().Normalized())
	}
	if math.Abs(tri.NormalB.Magnitude()-1) > 1e-12 {
		t.Errorf("normal not unit length: %v", tri.NormalB)
	}
}

func TestMeshTriangle3ScaleFlattening(t *testing.T) {
	tri := NewMeshTriangle3(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
	tri.NormalA = math3d.ZAxis()
	tri.NormalB = math3d.XAxis()
	tri.NormalC = math3d.V3(0, 3, 4)

	tri.Scale(math3d.V3(1, 1, 0), math3d.Zero3())

	tests := []struct {
		name string
		got  math3d.Vec3
		want math3d.Vec3
	}{
		{"normal across the flattened axis", tri.NormalA, math3d.ZAxis()},
		{"normal collapsed by the flattening", tri.NormalB, math3d.XAxis()},
		{"slanted normal", tri.NormalC, math3d.V3(0, 0, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecClose(tt.got, tt.want, 1e-12) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestMeshTriangle3ScaleRoundTripKeepsNormalLength(t *testing.T) {
	c := NewMeshTriangle3Collection([]*MeshTriangle3{texturedTriangle()})
	tri := c.Triangles[0]
	tri.NormalA = math3d.V3(0, 0, 2)
	tri.NormalC = math3d.V3(1, 2, 3)
	wantC := tri.NormalC

	c.SetScale(math3d.V3(2, 2, 2))
	c.SetScale(math3d.One3())

	if !vecClose(tri.NormalA, math3d.V3(0, 0, 2), 1e-12) {
		t.Errorf("NormalA = %v, want (0, 0, 2)", tri.NormalA)
	}

	c.SetScale(math3d.V3(2, 0.5, 3))
	c.SetScale(math3d.One3())

	if !vecClose(tri.NormalC, wantC, 1e-12) {
		t.Errorf("NormalC = %v, want %v", tri.NormalC, wantC)
	}
}

func TestMeshTriangle3MoveLeavesAttributes(t *testing.T) {
	tri := texturedTriangle()
	before := *tri
	tri.Move(math3d.V3(1, 2, 3))

	if tri.NormalC != before.NormalC || tri.TextureV != before.TextureV {
		t.Error("Move changed vertex attributes")
	}
	if tri.A != math3d.V3(1, 2, 3) {
		t.Errorf("A = %v", tri.A)
	}
}

func TestMeshTriangle3UnsetNormalsStayZero(t *testing.T) {
	tri := NewMeshTriangle3(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
	tri.Scale(math3d.V3(2, 3, 4), math3d.Zero3())
	tri.Transform(math3d.RotateY(1))

	if tri.NormalA != (math3d.Vec3{}) {
		t.Errorf("unset normal became %v", tri.NormalA)
	}
}

func TestMeshTriangle3Transform(t *testing.T) {
	tri := texturedTriangle()
	tri.Transform(math3d.Translate(math3d.V3(0, 0, 9)).Mul(math3d.RotateX(-math3d.HalfPi)))

	if !vecClose(tri.NormalA, math3d.YAxis(), 1e-12) {
		t.Errorf("NormalA = %v, want (0, 1, 0)", tri.NormalA)
	}
	if !vecClose(tri.B, math3d.V3(1, 0, 9), 1e-12) {
		t.Errorf("B = %v, want (1, 0, 9)", tri.B)
	}
}

func TestMeshTriangle3Invert(t *testing.T) {
	tri := texturedTriangle()
	before := *tri
	tri.Invert()

	if tri.B != before.C || tri.C != before.B {
		t.Error("vertices not swapped")
	}
	if tri.TextureV != before.TextureW || tri.TextureW != before.TextureV {
		t.Error("UVs did not follow their vertices")
	}
	if tri.NormalB != before.NormalC || tri.NormalC != before.NormalB {
		t.Error("normals did not follow their vertices")
	}
	if tri.TextureU != before.TextureU || tri.NormalA != before.NormalA {
		t.Error("first vertex attributes changed")
	}
}

func TestMeshTriangle3Clone(t *testing.T) {
	tri := texturedTriangle()
	clone := tri.Clone()
	tri.NormalA = math3d.XAxis()
	tri.Move(math3d.One3())

	if clone.NormalA != math3d.ZAxis() || clone.A != math3d.Zero3() {
		t.Errorf("clone shares state with original: %+v", clone)
	}
}

func TestMeshTriangle3Collection(t *testing.T) {
	tris := make([]*MeshTriangle3, 800)
	for i := range tris {
		tris[i] = texturedTriangle()
	}
	c := NewMeshTriangle3Collection(tris)
	c.RotateX(-math3d.HalfPi, math3d.Zero3())

	inv := c.Inverted()
	for i := range inv.Triangles {
		if !vecClose(c.Triangles[i].NormalA, math3d.YAxis(), 1e-12) {
			t.Fatalf("triangle %d NormalA = %v", i, c.Triangles[i].NormalA)
		}
		if inv.Triangles[i].NormalB != c.Triangles[i].NormalC {
			t.Fatalf("triangle %d: inverted clone did not swap normals", i)
		}
	}
}
