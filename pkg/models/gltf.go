package models

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/prism/pkg/math3d"
)

// ErrNoGeometry is returned when a source yields no triangles.
var ErrNoGeometry = errors.New("no triangle geometry")

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Options
	CalculateNormals bool
	SmoothNormals    bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		SmoothNormals:    true,
	}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	loader := NewGLTFLoader()
	return loader.Load(path)
}

// LoadTriangles loads a GLTF or GLB file straight into a collection.
func LoadTriangles(path string) (*MeshTriangle3Collection, error) {
	mesh, err := LoadGLB(path)
	if err != nil {
		return nil, err
	}
	return mesh.Triangles(), nil
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := l.Decode(doc, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return mesh, nil
}

// Decode converts every triangle primitive of an already parsed document
// into a single Mesh.
func (l *GLTFLoader) Decode(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	hasNormals := true
	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			withNormals, err := l.processPrimitive(doc, prim, mesh)
			if err != nil {
				return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
			}
			hasNormals = hasNormals && withNormals
		}
	}

	if len(mesh.Faces) == 0 {
		return nil, ErrNoGeometry
	}

	if l.CalculateNormals && !hasNormals {
		if l.SmoothNormals {
			mesh.CalculateSmoothNormals()
		} else {
			mesh.CalculateNormals()
		}
	}

	mesh.CalculateBounds()

	return mesh, nil
}

// processPrimitive appends the geometry of one primitive to mesh and
// reports whether it carried its own normals. Non-triangle primitives are
// skipped.
func (l *GLTFLoader) processPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) (bool, error) {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		return true, nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return true, nil
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return false, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
		if err != nil {
			return false, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
		if err != nil {
			return false, fmt.Errorf("read uvs: %w", err)
		}
	}

	// Base vertex index for this primitive
	baseVertex := len(mesh.Vertices)

	for i, p := range positions {
		v := MeshVertex{Position: vec3(p)}
		if i < len(normals) {
			v.Normal = vec3(normals[i])
		}
		if i < len(uvs) {
			// GLTF uses top-left origin (V=0 at top), flip V for bottom-left origin
			v.UV = math3d.V2(float64(uvs[i][0]), 1.0-float64(uvs[i][1]))
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return false, fmt.Errorf("read indices: %w", err)
		}
	} else {
		// No indices, assume sequential triangles
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	for i := 0; i+2 < len(indices); i += 3 {
		face := Face{V: [3]int{
			baseVertex + int(indices[i]),
			baseVertex + int(indices[i+1]),
			baseVertex + int(indices[i+2]),
		}}
		for _, vi := range face.V {
			if vi >= len(mesh.Vertices) {
				return false, fmt.Errorf("index %d out of range for %d vertices", vi-baseVertex, len(positions))
			}
		}
		mesh.Faces = append(mesh.Faces, face)
	}

	return len(normals) == len(positions), nil
}

func vec3(f [3]float32) math3d.Vec3 {
	return math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
}
