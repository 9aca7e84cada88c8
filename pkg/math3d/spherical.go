package math3d

import "math"

// Spherical holds spherical coordinates: radius Rho, azimuth Theta measured
// in the ground (x-z) plane from +Z toward +X, and polar angle Phi measured
// from +Y.
type Spherical struct {
	Rho, Theta, Phi float64
}

// FromSpherical converts spherical coordinates to a rectangular vector.
// The ground plane is x-z and y is up, so the textbook formulas are
// permuted:
//
//	z = ρ sinϕ cosθ
//	x = ρ sinϕ sinθ
//	y = ρ cosϕ
func FromSpherical(s Spherical) Vec3 {
	sinPhi, cosPhi := math.Sincos(s.Phi)
	sinTheta, cosTheta := math.Sincos(s.Theta)
	return Vec3{
		X: s.Rho * sinPhi * sinTheta,
		Y: s.Rho * cosPhi,
		Z: s.Rho * sinPhi * cosTheta,
	}
}

// Spherical converts the vector to spherical coordinates. The zero vector
// has an undefined direction and yields NaN angles.
func (a Vec3) Spherical() Spherical {
	rho := a.Magnitude()
	return Spherical{
		Rho:   rho,
		Theta: math.Atan2(a.X, a.Z),
		Phi:   math.Acos(a.Y / rho),
	}
}
