package math3d

// Ray3 is a directed ray with origin point P and direction V.
// V need not be unit length; parameters returned by intersection tests are
// in units of V.
type Ray3 struct {
	P Vec3
	V Vec3
}

// NewRay3 creates a ray from an origin and a direction.
func NewRay3(origin, direction Vec3) Ray3 {
	return Ray3{P: origin, V: direction}
}

// At returns the point at parameter t along the ray.
func (r Ray3) At(t float64) Vec3 {
	return r.P.Add(r.V.Scale(t))
}
