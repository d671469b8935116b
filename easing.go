package sheetfab

import (
	"fmt"
	"math"
	"sort"
)

// Interpolator maps the elapsed fraction of an animation, in [0, 1], to its eased progress.
type Interpolator func(t float32) float32

// Linear is the identity curve.
func Linear(t float32) float32 { return t }

// Accelerate starts slowly and speeds up.
func Accelerate(t float32) float32 { return t * t }

// Decelerate starts quickly and slows down.
func Decelerate(t float32) float32 { return 1 - (1-t)*(1-t) }

// AccelerateDecelerate starts and ends slowly, speeding up through the middle.
func AccelerateDecelerate(t float32) float32 {
	return float32(math.Cos(float64(t+1)*math.Pi)/2 + 0.5)
}

// FastOutSlowIn is the default theme curve used by the sheet transition.
var FastOutSlowIn = CubicBezier(0.4, 0, 0.2, 1)

var curves = map[string]Interpolator{
	"linear":                Linear,
	"accelerate":            Accelerate,
	"decelerate":            Decelerate,
	"accelerate-decelerate": AccelerateDecelerate,
	"fast-out-slow-in":      FastOutSlowIn,
}

// CurveByName returns one of the named interpolators.
func CurveByName(name string) (Interpolator, error) {
	if c, ok := curves[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown interpolation curve %q", name)
}

// CurveNames returns the sorted list of supported curve names.
func CurveNames() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CubicBezier returns a timing curve through (0,0), (x1,y1), (x2,y2) and (1,1).
// The control point abscissas are expected to lie in [0, 1].
func CubicBezier(x1, y1, x2, y2 float64) Interpolator {
	// Polynomial coefficients of the x and y components.
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	const epsilon = 1e-6

	solve := func(x float64) float64 {
		// Newton-Raphson first, it converges in a handful of steps for well formed curves.
		t := x
		for i := 0; i < 8; i++ {
			dx := sampleX(t) - x
			if math.Abs(dx) < epsilon {
				return t
			}
			d := slopeX(t)
			if math.Abs(d) < epsilon {
				break
			}
			t -= dx / d
		}
		// Fall back to bisection.
		lo, hi := 0.0, 1.0
		t = x
		for lo < hi {
			v := sampleX(t)
			if math.Abs(v-x) < epsilon {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			next := (lo + hi) / 2
			if next == t {
				break
			}
			t = next
		}
		return t
	}

	return func(t float32) float32 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return float32(sampleY(solve(float64(t))))
	}
}
