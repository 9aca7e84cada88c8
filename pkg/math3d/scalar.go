package math3d

import "math"

// Epsilon is the tolerance for every geometric equality in the kernel.
// Two values are equal when their Euclidean distance is at most Epsilon.
const Epsilon = 1e-5

// Common angle constants.
const (
	HalfPi    = math.Pi / 2
	QuarterPi = math.Pi / 4
	TwoPi     = math.Pi * 2
)

// NearlyEqual reports whether |a-b| <= Epsilon.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Constrain clamps x to [lo, hi].
func Constrain(x, lo, hi float64) float64 {
	if x > hi {
		return hi
	}
	if x < lo {
		return lo
	}
	return x
}

// DegreesToRadians converts degrees to radians.
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadiansToDegrees converts radians to degrees.
func RadiansToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Average returns the arithmetic mean, or NaN for no values.
func Average(values ...float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// Bounds returns the smallest and largest of values, or NaN for both when
// values is empty.
func Bounds(values ...float64) (lo, hi float64) {
	if len(values) == 0 {
		return math.NaN(), math.NaN()
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// BoundsIndex returns the indices of the smallest and largest of values.
// Ties keep the first occurrence.
func BoundsIndex(values ...float64) (lo, hi int) {
	for i, v := range values {
		if v < values[lo] {
			lo = i
		}
		if v > values[hi] {
			hi = i
		}
	}
	return lo, hi
}

// MinIndex returns the index of the smallest value.
func MinIndex(values ...float64) int {
	lo, _ := BoundsIndex(values...)
	return lo
}

// MaxIndex returns the index of the largest value.
func MaxIndex(values ...float64) int {
	_, hi := BoundsIndex(values...)
	return hi
}

// FromParameterization3Scalar is the scalar form of FromParameterization3:
// a(1-t-s) + b*t + c*s. Renderers use it to interpolate per-vertex
// attributes such as depth.
func FromParameterization3Scalar(t, s, a, b, c float64) float64 {
	return a*(1-t-s) + b*t + c*s
}

// Integrate approximates the integral of f over [a, b] with a left Riemann
// sum of the given number of steps.
func Integrate(f func(float64) float64, a, b float64, steps int) float64 {
	dx := (b - a) / float64(steps)
	var sum float64
	for i := range steps {
		sum += f(Lerp(a, b, float64(i)/float64(steps)))
	}
	return sum * dx
}

// Cot returns the cotangent of radians.
func Cot(radians float64) float64 {
	return 1 / math.Tan(radians)
}

// Acot returns the inverse cotangent of d.
func Acot(d float64) float64 {
	return math.Atan(1 / d)
}
