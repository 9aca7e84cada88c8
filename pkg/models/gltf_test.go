package models

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/prism/pkg/math3d"
)

// writeQuad saves a two-triangle unit quad in the z=0 plane as a GLB file.
func writeQuad(t *testing.T, withNormals bool) string {
	t.Helper()

	doc := gltf.NewDocument()
	attrs := map[string]int{
		gltf.POSITION: modeler.WritePosition(doc, [][3]float32{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		}),
		gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, [][2]float32{
			{0, 1}, {1, 1}, {1, 0}, {0, 0},
		}),
	}
	if withNormals {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, [][3]float32{
			{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1},
		})
	}
	indices := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})

	doc.Meshes = []*gltf.Mesh{{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: attrs,
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "quad", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "quad.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("save glb: %v", err)
	}
	return path
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Error("NewGLTFLoader returned nil")
		return
	}
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
	if !loader.SmoothNormals {
		t.Error("SmoothNormals should default to true")
	}
}

func TestLoadGLB(t *testing.T) {
	mesh, err := LoadGLB(writeQuad(t, true))
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}

	if mesh.Name != "quad.glb" {
		t.Errorf("Name = %q", mesh.Name)
	}
	if mesh.VertexCount() != 4 || mesh.TriangleCount() != 2 {
		t.Fatalf("got %d vertices, %d triangles", mesh.VertexCount(), mesh.TriangleCount())
	}
	if mesh.Faces[1].V != [3]int{0, 2, 3} {
		t.Errorf("face 1 = %v, winding must be preserved", mesh.Faces[1].V)
	}
	if mesh.Bounds.Min != math3d.V3(0, 0, 0) || mesh.Bounds.Max != math3d.V3(1, 1, 0) {
		t.Errorf("Bounds = %+v", mesh.Bounds)
	}
	// V is flipped to a bottom-left origin.
	if mesh.Vertices[0].UV != math3d.V2(0, 0) || mesh.Vertices[3].UV != math3d.V2(0, 1) {
		t.Errorf("UVs = %v, %v", mesh.Vertices[0].UV, mesh.Vertices[3].UV)
	}
	if mesh.Vertices[2].Normal != math3d.ZAxis() {
		t.Errorf("Normal = %v", mesh.Vertices[2].Normal)
	}
}

func TestLoadGLBCalculatesNormals(t *testing.T) {
	tests := []struct {
		name   string
		smooth bool
	}{
		{"flat", false},
		{"smooth", true},
	}

	path := writeQuad(t, false)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			loader := NewGLTFLoader()
			loader.SmoothNormals = tc.smooth
			mesh, err := loader.Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			for i, v := range mesh.Vertices {
				if !vecClose(v.Normal, math3d.ZAxis(), 1e-12) {
					t.Errorf("vertex %d normal = %v", i, v.Normal)
				}
			}
		})
	}
}

func TestLoadTriangles(t *testing.T) {
	c, err := LoadTriangles(writeQuad(t, true))
	if err != nil {
		t.Fatalf("LoadTriangles: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d", c.Len())
	}

	tri := c.Triangles[1]
	if tri.C != math3d.V3(0, 1, 0) || tri.TextureW != math3d.V2(0, 1) || tri.NormalC != math3d.ZAxis() {
		t.Errorf("triangle 1 = %+v", tri)
	}

	ray := math3d.NewRay3(math3d.V3(0.5, 0.5, 1), math3d.ZAxis().Negate())
	if !c.Meets(ray) {
		t.Error("ray through the quad should meet it")
	}
}

func TestDecodeNoGeometry(t *testing.T) {
	_, err := NewGLTFLoader().Decode(gltf.NewDocument(), "empty")
	if !errors.Is(err, ErrNoGeometry) {
		t.Errorf("err = %v, want ErrNoGeometry", err)
	}
}
