package models

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// MeshTriangle3 is a Triangle3 carrying per-vertex texture coordinates and
// normals. TextureU, TextureV and TextureW belong to vertices A, B and C;
// likewise NormalA, NormalB and NormalC.
//
// Geometry queries use only the embedded vertices. Transforms keep the
// attributes consistent with them.
type MeshTriangle3 struct {
	math3d.Triangle3

	TextureU, TextureV, TextureW math3d.Vec2
	NormalA, NormalB, NormalC    math3d.Vec3
}

// NewMeshTriangle3 creates a mesh triangle with zero UVs and normals.
func NewMeshTriangle3(a, b, c math3d.Vec3) *MeshTriangle3 {
	return &MeshTriangle3{Triangle3: math3d.Triangle3{A: a, B: b, C: c}}
}

// Scale scales the vertices about anchor. Normals are carried by the
// cofactor of the scale, which keeps them perpendicular to the surface and
// stays finite when a factor component is zero. Each normal keeps its
// length.
func (t *MeshTriangle3) Scale(factor, anchor math3d.Vec3) {
	t.Triangle3.Scale(factor, anchor)
	cof := math3d.V3(factor.Y*factor.Z, factor.X*factor.Z, factor.X*factor.Y)
	t.mapNormals(func(n math3d.Vec3) math3d.Vec3 {
		return keepLength(n, n.Mul(cof))
	})
}

// RotateX rotates the triangle and its normals about the X axis.
func (t *MeshTriangle3) RotateX(radians float64, anchor math3d.Vec3) {
	t.Triangle3.RotateX(radians, anchor)
	t.mapNormals(func(n math3d.Vec3) math3d.Vec3 { return n.RotateX(radians) })
}

// RotateY rotates the triangle and its normals about the Y axis.
func (t *MeshTriangle3) RotateY(radians float64, anchor math3d.Vec3) {
	t.Triangle3.RotateY(radians, anchor)
	t.mapNormals(func(n math3d.Vec3) math3d.Vec3 { return n.RotateY(radians) })
}

// RotateZ rotates the triangle and its normals about the Z axis.
func (t *MeshTriangle3) RotateZ(radians float64, anchor math3d.Vec3) {
	t.Triangle3.RotateZ(radians, anchor)
	t.mapNormals(func(n math3d.Vec3) math3d.Vec3 { return n.RotateZ(radians) })
}

// Rotate applies X, Y and Z rotations to the triangle and its normals.
func (t *MeshTriangle3) Rotate(r1, r2, r3 float64, anchor math3d.Vec3) {
	t.Triangle3.Rotate(r1, r2, r3, anchor)
	t.mapNormals(func(n math3d.Vec3) math3d.Vec3 { return n.Rotate(r1, r2, r3) })
}

// Transform applies m to the vertices and its normal matrix to the normals.
func (t *MeshTriangle3) Transform(m math3d.Mat4) {
	t.Triangle3.Transform(m)
	nm := m.NormalMatrix()
	t.mapNormals(func(n math3d.Vec3) math3d.Vec3 {
		return keepLength(n, nm.MulVec3Dir(n))
	})
}

// Invert reverses the winding. The UV and normal of the second and third
// vertex travel with their vertex.
func (t *MeshTriangle3) Invert() {
	t.Triangle3.Invert()
	t.TextureV, t.TextureW = t.TextureW, t.TextureV
	t.NormalB, t.NormalC = t.NormalC, t.NormalB
}

// Clone returns an independent copy of the triangle and its attributes.
func (t *MeshTriangle3) Clone() *MeshTriangle3 {
	c := *t
	return &c
}

// Normals returns the three vertex normals.
func (t *MeshTriangle3) Normals() (a, b, c math3d.Vec3) {
	return t.NormalA, t.NormalB, t.NormalC
}

// keepLength returns dir scaled to the length of n. A zero or non-finite
// dir has no direction left, so n is returned unchanged.
func keepLength(n, dir math3d.Vec3) math3d.Vec3 {
	m := dir.Magnitude()
	if m == 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return n
	}
	return dir.Scale(n.Magnitude() / m)
}

// mapNormals applies fn to every normal that is set. Unset (zero) normals
// stay zero instead of turning into NaN.
func (t *MeshTriangle3) mapNormals(fn func(math3d.Vec3) math3d.Vec3) {
	for _, n := range []*math3d.Vec3{&t.NormalA, &t.NormalB, &t.NormalC} {
		if *n != (math3d.Vec3{}) {
			*n = fn(*n)
		}
	}
}
