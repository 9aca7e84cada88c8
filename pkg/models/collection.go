package models

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/taigrr/prism/pkg/math3d"
)

// Primitive is a mutable triangle that a Collection can manage. T is the
// concrete pointer type, so Clone stays typed.
type Primitive[T any] interface {
	Move(offset math3d.Vec3)
	Scale(factor, anchor math3d.Vec3)
	RotateX(radians float64, anchor math3d.Vec3)
	RotateY(radians float64, anchor math3d.Vec3)
	RotateZ(radians float64, anchor math3d.Vec3)
	Rotate(r1, r2, r3 float64, anchor math3d.Vec3)
	Transform(m math3d.Mat4)
	Invert()
	Intersect(ray math3d.Ray3) (float64, bool)
	Vertices() (a, b, c math3d.Vec3)
	Clone() T
}

// Collection is an ordered list of triangles plus the cumulative origin and
// scale already baked into their vertices. Setting a new origin or scale
// applies only the difference from the recorded one.
//
// Bulk operations fan out over disjoint chunks of Triangles. A collection
// must not be mutated by more than one caller at a time.
type Collection[T Primitive[T]] struct {
	// Triangles in render order.
	Triangles []T

	origin math3d.Vec3
	scale  math3d.Vec3
}

// Triangle3Collection is a collection of plain triangles.
type Triangle3Collection = Collection[*math3d.Triangle3]

// MeshTriangle3Collection is a collection of textured mesh triangles.
type MeshTriangle3Collection = Collection[*MeshTriangle3]

// NewCollection wraps triangles with an identity origin and scale. The
// slice is used as is.
func NewCollection[T Primitive[T]](triangles []T) *Collection[T] {
	return &Collection[T]{
		Triangles: triangles,
		origin:    math3d.Zero3(),
		scale:     math3d.One3(),
	}
}

// NewTriangle3Collection wraps plain triangles.
func NewTriangle3Collection(triangles []*math3d.Triangle3) *Triangle3Collection {
	return NewCollection(triangles)
}

// NewMeshTriangle3Collection wraps mesh triangles.
func NewMeshTriangle3Collection(triangles []*MeshTriangle3) *MeshTriangle3Collection {
	return NewCollection(triangles)
}

// Len returns the number of triangles.
func (c *Collection[T]) Len() int {
	return len(c.Triangles)
}

// Origin returns the recorded origin.
func (c *Collection[T]) Origin() math3d.Vec3 {
	return c.origin
}

// SetOrigin moves every triangle by p minus the recorded origin and records
// p. Nothing happens when p equals the recorded origin within Epsilon.
func (c *Collection[T]) SetOrigin(p math3d.Vec3) {
	delta, ok := originDelta(c.origin, p)
	if !ok {
		return
	}
	MoveAll(c.Triangles, delta)
	c.origin = p
}

// Scale returns the recorded scale.
func (c *Collection[T]) Scale() math3d.Vec3 {
	return c.scale
}

// SetScale scales every triangle by s divided by the recorded scale,
// anchored at the current origin, and records s. Nothing happens when s
// equals the recorded scale within Epsilon.
func (c *Collection[T]) SetScale(s math3d.Vec3) {
	ratio, ok := scaleRatio(c.scale, s)
	if !ok {
		return
	}
	ScaleAll(c.Triangles, ratio, c.origin)
	c.scale = s
}

// originDelta returns the offset that carries old to p, and false when
// there is nothing to apply.
func originDelta(old, p math3d.Vec3) (math3d.Vec3, bool) {
	if old.Equal(p) {
		return math3d.Vec3{}, false
	}
	return p.Sub(old), true
}

// scaleRatio returns the component-wise factor that carries old to s, and
// false when there is nothing to apply.
func scaleRatio(old, s math3d.Vec3) (math3d.Vec3, bool) {
	if old.Equal(s) {
		return math3d.Vec3{}, false
	}
	return s.DivVec(old), true
}

// RotateX rotates every triangle about the X axis through external plus the
// recorded origin. The recorded origin and scale are not rotated.
func (c *Collection[T]) RotateX(radians float64, external math3d.Vec3) {
	anchor := external.Add(c.origin)
	c.apply(func(t T) { t.RotateX(radians, anchor) })
}

// RotateY rotates every triangle about the Y axis through external plus the
// recorded origin.
func (c *Collection[T]) RotateY(radians float64, external math3d.Vec3) {
	anchor := external.Add(c.origin)
	c.apply(func(t T) { t.RotateY(radians, anchor) })
}

// RotateZ rotates every triangle about the Z axis through external plus the
// recorded origin.
func (c *Collection[T]) RotateZ(radians float64, external math3d.Vec3) {
	anchor := external.Add(c.origin)
	c.apply(func(t T) { t.RotateZ(radians, anchor) })
}

// Rotate applies X, Y and Z rotations to every triangle through external
// plus the recorded origin, skipping any angle that is exactly zero.
func (c *Collection[T]) Rotate(r1, r2, r3 float64, external math3d.Vec3) {
	anchor := external.Add(c.origin)
	c.apply(func(t T) { t.Rotate(r1, r2, r3, anchor) })
}

// Transform bakes m into every triangle. The recorded origin and scale are
// left as they are.
func (c *Collection[T]) Transform(m math3d.Mat4) {
	c.apply(func(t T) { t.Transform(m) })
}

func (c *Collection[T]) apply(fn func(T)) {
	forEach(c.Triangles, fn)
}

// Clone returns a deep copy with the same vertices, origin and scale.
//
// The copies are taken with the collection reset to identity, and the clone
// reaches the recorded origin and scale through its own setters, so the
// original and the clone are transformed the same way exactly once.
func (c *Collection[T]) Clone() *Collection[T] {
	origin, scale := c.origin, c.scale

	c.SetScale(math3d.One3())
	c.SetOrigin(math3d.Zero3())

	copies := make([]T, len(c.Triangles))
	each(len(c.Triangles), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			copies[i] = c.Triangles[i].Clone()
		}
	})

	c.SetOrigin(origin)
	c.SetScale(scale)

	clone := NewCollection(copies)
	clone.SetOrigin(origin)
	clone.SetScale(scale)
	return clone
}

// Inverted returns a clone with the winding of every triangle reversed.
// The receiver is not modified.
func (c *Collection[T]) Inverted() *Collection[T] {
	clone := c.Clone()
	clone.apply(func(t T) { t.Invert() })
	return clone
}

// Meets reports whether the ray intersects any triangle. Workers stop
// scanning as soon as one of them finds a hit.
func (c *Collection[T]) Meets(ray math3d.Ray3) bool {
	var found atomic.Bool
	each(len(c.Triangles), func(lo, hi int) {
		for _, t := range c.Triangles[lo:hi] {
			if found.Load() {
				return
			}
			if _, ok := t.Intersect(ray); ok {
				found.Store(true)
				return
			}
		}
	})
	return found.Load()
}

// Nearest returns the index and ray parameter of the closest triangle the
// ray hits. Equal distances resolve to the lower index. ok is false when
// nothing is hit.
func (c *Collection[T]) Nearest(ray math3d.Ray3) (index int, dist float64, ok bool) {
	var mu sync.Mutex
	index, dist = -1, math.Inf(1)

	each(len(c.Triangles), func(lo, hi int) {
		best, bestDist := -1, math.Inf(1)
		for i := lo; i < hi; i++ {
			if d, hit := c.Triangles[i].Intersect(ray); hit && d < bestDist {
				best, bestDist = i, d
			}
		}
		if best < 0 {
			return
		}

		mu.Lock()
		if bestDist < dist || (bestDist == dist && best < index) {
			index, dist = best, bestDist
		}
		mu.Unlock()
	})

	if index < 0 {
		return -1, 0, false
	}
	return index, dist, true
}

// Bounds returns the box enclosing every vertex, or an empty box for an
// empty collection.
func (c *Collection[T]) Bounds() math3d.AABB {
	box := math3d.EmptyAABB()
	for _, t := range c.Triangles {
		a, b, cc := t.Vertices()
		box = box.Extend(a).Extend(b).Extend(cc)
	}
	return box
}

// MoveAll moves every triangle by offset. No origin is recorded.
func MoveAll[T Primitive[T]](triangles []T, offset math3d.Vec3) {
	forEach(triangles, func(t T) { t.Move(offset) })
}

// ScaleAll scales every triangle by factor about anchor. No scale is
// recorded.
func ScaleAll[T Primitive[T]](triangles []T, factor, anchor math3d.Vec3) {
	forEach(triangles, func(t T) { t.Scale(factor, anchor) })
}

func forEach[T any](items []T, fn func(T)) {
	each(len(items), func(lo, hi int) {
		for _, it := range items[lo:hi] {
			fn(it)
		}
	})
}
