package models

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/taigrr/prism/pkg/math3d"
)

// Cube tessellates an axis-aligned cube with the given edge length. The
// cube is built around the world origin and then moved to center, which is
// recorded as the collection's origin.
func Cube(center math3d.Vec3, size float64, cells int) (*MeshTriangle3Collection, error) {
	s, err := sdf.Box3D(v3.Vec{X: size, Y: size, Z: size}, 0)
	if err != nil {
		return nil, fmt.Errorf("cube: %w", err)
	}
	return tessellate(s, center, cells)
}

// Sphere tessellates a sphere of the given radius, recording center as the
// collection's origin.
func Sphere(center math3d.Vec3, radius float64, cells int) (*MeshTriangle3Collection, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	return tessellate(s, center, cells)
}

// tessellate runs marching cubes over s with the given number of cells
// along its longest side.
func tessellate(s sdf.SDF3, center math3d.Vec3, cells int) (*MeshTriangle3Collection, error) {
	if cells < 1 {
		return nil, fmt.Errorf("tessellate: %d cells", cells)
	}

	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	if len(triangles) == 0 {
		return nil, ErrNoGeometry
	}

	tris := make([]*MeshTriangle3, 0, len(triangles))
	for _, tri := range triangles {
		n := tri.Normal()
		normal := math3d.V3(n.X, n.Y, n.Z)

		mt := NewMeshTriangle3(point(tri[0]), point(tri[1]), point(tri[2]))
		if mt.Normal().MagnitudeSq() == 0 {
			// Marching cubes emits slivers where the surface grazes a cell.
			continue
		}
		mt.NormalA, mt.NormalB, mt.NormalC = normal, normal, normal
		tris = append(tris, mt)
	}

	c := NewMeshTriangle3Collection(tris)
	c.SetOrigin(center)
	return c, nil
}

func point(v v3.Vec) math3d.Vec3 {
	return math3d.V3(v.X, v.Y, v.Z)
}
