package carousel

import "math"

// Easing names a timing curve for track and fade animations.
type Easing string

const (
	Ease      Easing = "ease"
	Linear    Easing = "linear"
	EaseIn    Easing = "ease-in"
	EaseOut   Easing = "ease-out"
	EaseInOut Easing = "ease-in-out"
)

// Control points of the named curves, as cubic-bezier(x1, y1, x2, y2).
var easingCurves = map[Easing][4]float64{
	Ease:      {0.25, 0.1, 0.25, 1.0},
	Linear:    {0, 0, 1, 1},
	EaseIn:    {0.42, 0, 1, 1},
	EaseOut:   {0, 0, 0.58, 1},
	EaseInOut: {0.42, 0, 0.58, 1},
}

// Valid reports whether e is a known curve.
func (e Easing) Valid() bool {
	_, ok := easingCurves[e]
	return ok
}

// At returns eased progress for linear progress t in [0, 1].
// Unknown curves behave like ease-in-out.
func (e Easing) At(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	p, ok := easingCurves[e]
	if !ok {
		p = easingCurves[EaseInOut]
	}
	if e == Linear {
		return t
	}
	return bezierY(solveBezierX(t, p[0], p[2]), p[1], p[3])
}

func bezierCoord(s, p1, p2 float64) float64 {
	// B(s) for endpoints 0 and 1.
	u := 1 - s
	return 3*u*u*s*p1 + 3*u*s*s*p2 + s*s*s
}

func bezierSlope(s, p1, p2 float64) float64 {
	u := 1 - s
	return 3*u*u*p1 + 6*u*s*(p2-p1) + 3*s*s*(1-p2)
}

func bezierY(s, y1, y2 float64) float64 {
	return bezierCoord(s, y1, y2)
}

// solveBezierX finds the curve parameter whose x equals t.
func solveBezierX(t, x1, x2 float64) float64 {
	s := t
	for i := 0; i < 8; i++ {
		x := bezierCoord(s, x1, x2) - t
		if math.Abs(x) < 1e-6 {
			return s
		}
		d := bezierSlope(s, x1, x2)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= x / d
	}

	// Newton did not converge; bisect.
	lo, hi := 0.0, 1.0
	s = t
	for i := 0; i < 50; i++ {
		x := bezierCoord(s, x1, x2)
		if math.Abs(x-t) < 1e-6 {
			break
		}
		if x < t {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return s
}
