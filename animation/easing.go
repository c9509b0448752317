// Package animation drives the blend parameter of the mesh over time.
package animation

import (
	"fmt"
	"math"

	"github.com/fogleman/ease"
)

// A Curve remaps linear progress in [0, 1] to eased progress.
type Curve func(float64) float64

// CubicBezier is a timing curve from (0, 0) to (1, 1) shaped by two
// control points, as used by CSS and most UI toolkits.
type CubicBezier struct {
	X1, Y1 float64
	X2, Y2 float64
}

// DefaultBezier is the slow start, slow end curve of the mesh animation.
var DefaultBezier = CubicBezier{X1: 0.25, Y1: 0.1, X2: 0.25, Y2: 1}

// Validate reports whether the curve is a function of x. The x control
// coordinates must lie in [0, 1].
func (b CubicBezier) Validate() error {
	for _, v := range []float64{b.X1, b.Y1, b.X2, b.Y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("animation: bezier %v has non-finite control point", b)
		}
	}
	if b.X1 < 0 || b.X1 > 1 || b.X2 < 0 || b.X2 > 1 {
		return fmt.Errorf("animation: bezier %v x control points outside [0, 1]", b)
	}
	return nil
}

// Ease returns the curve's y for the given x.
func (b CubicBezier) Ease(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return bezier(b.Y1, b.Y2, b.solve(x))
}

// solve finds the curve parameter whose x coordinate is x.
func (b CubicBezier) solve(x float64) float64 {
	const epsilon = 1e-10

	s := x
	for i := 0; i < 8; i++ {
		err := bezier(b.X1, b.X2, s) - x
		if math.Abs(err) < epsilon {
			return s
		}
		d := bezierSlope(b.X1, b.X2, s)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= err / d
	}

	// Newton stalled on a flat section; bisect instead.
	lo, hi := 0.0, 1.0
	s = x
	for lo < hi {
		v := bezier(b.X1, b.X2, s)
		if math.Abs(v-x) < epsilon {
			return s
		}
		if x > v {
			lo = s
		} else {
			hi = s
		}
		next := (lo + hi) / 2
		if next == s {
			break
		}
		s = next
	}
	return s
}

// bezier evaluates one axis of the curve with end points 0 and 1.
func bezier(p1, p2, s float64) float64 {
	inv := 1 - s
	return 3*inv*inv*s*p1 + 3*inv*s*s*p2 + s*s*s
}

func bezierSlope(p1, p2, s float64) float64 {
	inv := 1 - s
	return 3*inv*inv*p1 + 6*inv*s*(p2-p1) + 3*s*s*(1-p2)
}

var named = map[string]Curve{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
}

// CurveByName looks up a named easing curve. "ease" and the empty name
// select DefaultBezier.
func CurveByName(name string) (Curve, bool) {
	if name == "" || name == "ease" {
		return DefaultBezier.Ease, true
	}
	c, ok := named[name]
	return c, ok
}
