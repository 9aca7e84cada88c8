// Package models turns mesh data into the triangle collections the kernel
// transforms and intersects: indexed meshes, glTF loading and generated
// primitives.
package models

import (
	"github.com/taigrr/prism/pkg/math3d"
)

// Mesh is an indexed triangle mesh as it comes out of a loader.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	// Bounding box (calculated on load)
	Bounds math3d.AABB
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle referencing three vertices.
type Face struct {
	V [3]int // Indices into Mesh.Vertices
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
		Bounds:   math3d.EmptyAABB(),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	m.Bounds = math3d.EmptyAABB()
	for _, v := range m.Vertices {
		m.Bounds = m.Bounds.Extend(v.Position)
	}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// faceNormal returns the unnormalized normal of face f.
func (m *Mesh) faceNormal(f Face) math3d.Vec3 {
	v0 := m.Vertices[f.V[0]].Position
	v1 := m.Vertices[f.V[1]].Position
	v2 := m.Vertices[f.V[2]].Position
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// CalculateNormals assigns each face's normal to its vertices. Vertices
// shared between faces keep the normal of the last face.
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		normal := m.faceNormal(f).Normalized()
		for _, vi := range f.V {
			m.Vertices[vi].Normal = normal
		}
	}
}

// CalculateSmoothNormals computes area-weighted averaged normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	// Unnormalized face normals weight each face by its area.
	for _, f := range m.Faces {
		normal := m.faceNormal(f)
		for _, vi := range f.V {
			m.Vertices[vi].Normal = m.Vertices[vi].Normal.Add(normal)
		}
	}

	for i := range m.Vertices {
		if n := m.Vertices[i].Normal; n.MagnitudeSq() > 0 {
			m.Vertices[i].Normal = n.Normalized()
		}
	}
}

// Transform applies a transformation matrix to all vertices. Normals go
// through the normal matrix so non-uniform scaling keeps them
// perpendicular.
func (m *Mesh) Transform(mat math3d.Mat4) {
	nm := mat.NormalMatrix()
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = mat.MulVec3(v.Position)
		if v.Normal.MagnitudeSq() > 0 {
			v.Normal = nm.MulVec3Dir(v.Normal).Normalized()
		}
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:     m.Name,
		Vertices: make([]MeshVertex, len(m.Vertices)),
		Faces:    make([]Face, len(m.Faces)),
		Bounds:   m.Bounds,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// Triangles expands the indexed faces into independent mesh triangles,
// one per face in face order.
func (m *Mesh) Triangles() *MeshTriangle3Collection {
	tris := make([]*MeshTriangle3, len(m.Faces))
	for i, f := range m.Faces {
		a, b, c := m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]]
		tris[i] = &MeshTriangle3{
			Triangle3: math3d.Triangle3{A: a.Position, B: b.Position, C: c.Position},
			TextureU:  a.UV,
			TextureV:  b.UV,
			TextureW:  c.UV,
			NormalA:   a.Normal,
			NormalB:   b.Normal,
			NormalC:   c.Normal,
		}
	}
	return NewMeshTriangle3Collection(tris)
}
