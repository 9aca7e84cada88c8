package math3d

// Triangle2 is a 2D triangle used for containment tests.
type Triangle2 struct {
	A, B, C Vec2
}

// NewTriangle2 creates a triangle from three vertices.
func NewTriangle2(a, b, c Vec2) Triangle2 {
	return Triangle2{A: a, B: b, C: c}
}

// Parameterization expresses point p in the basis of the triangle's edges:
// it returns (t, s) such that AP = AB*t + AC*s.
//
// The system is solved by eliminating the axis ratios AC.x/AC.y and
// AB.x/AB.y:
//
//	t = (AP.x - AP.y*(AC.x/AC.y)) / (AB.x - AB.y*(AC.x/AC.y))
//	s = (AP.x - AP.y*(AB.x/AB.y)) / (AC.x - AC.y*(AB.x/AB.y))
//
// Those ratios are undefined for horizontal edges, so when either edge has
// a zero y component (or a denominator collapses) the same system is solved
// with Cramer's rule instead. A degenerate triangle yields NaN or Inf.
func (tri Triangle2) Parameterization(p Vec2) Vec2 {
	ab := tri.B.Sub(tri.A)
	ac := tri.C.Sub(tri.A)
	ap := p.Sub(tri.A)

	if ab.Y != 0 && ac.Y != 0 {
		abRatio := ab.X / ab.Y
		acRatio := ac.X / ac.Y
		tDen := ab.X - ab.Y*acRatio
		sDen := ac.X - ac.Y*abRatio
		if tDen != 0 && sDen != 0 {
			return Vec2{
				X: (ap.X - ap.Y*acRatio) / tDen,
				Y: (ap.X - ap.Y*abRatio) / sDen,
			}
		}
	}

	det := ab.Cross(ac)
	return Vec2{
		X: ap.Cross(ac) / det,
		Y: ab.Cross(ap) / det,
	}
}

// Meets reports whether p lies inside the triangle or on its boundary.
func (tri Triangle2) Meets(p Vec2) bool {
	return insideParameters(tri.Parameterization(p))
}

// insideParameters reports whether t >= 0, s >= 0 and t+s <= 1, each
// within Epsilon. NaN parameters are never inside.
func insideParameters(ts Vec2) bool {
	return ts.X >= -Epsilon && ts.Y >= -Epsilon && ts.X+ts.Y <= 1+Epsilon
}
