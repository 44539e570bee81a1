package height

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"mapgen/internal/core"
)

// CurveSamples is the number of points sampled along the curve to build the
// lookup table.
const CurveSamples = 256

// BezierRemap is a cubic Bezier from (0, 0) through control points (X1, Y1)
// and (X2, Y2) to (1, A), used as a lookup y = f(x) on [0, 1].
type BezierRemap struct {
	X1, Y1, X2, Y2, A float64

	lut interp.PiecewiseLinear
}

// NewBezierRemap samples the curve and fits a piecewise linear lookup. The
// sampled x coordinates must be strictly increasing; otherwise the curve is
// not a function of x and a precondition error is returned.
func NewBezierRemap(x1, y1, x2, y2, a float64) (*BezierRemap, error) {
	b := &BezierRemap{X1: x1, Y1: y1, X2: x2, Y2: y2, A: a}
	ts := floats.Span(make([]float64, CurveSamples), 0, 1)
	xs := make([]float64, CurveSamples)
	ys := make([]float64, CurveSamples)
	for i, t := range ts {
		xs[i], ys[i] = b.Point(t)
	}
	if i := firstNonIncreasing(xs); i >= 0 {
		return nil, core.Preconditionf("height: bezier (%g,%g) (%g,%g) a=%g is not monotonic in x at t=%g",
			x1, y1, x2, y2, a, ts[i])
	}
	if err := b.lut.Fit(xs, ys); err != nil {
		return nil, core.Preconditionf("height: bezier lookup: %v", err)
	}
	return b, nil
}

// firstNonIncreasing returns the first index i with xs[i] <= xs[i-1], or -1.
// PiecewiseLinear.Fit panics on such input.
func firstNonIncreasing(xs []float64) int {
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return i
		}
	}
	return -1
}

// Point evaluates the curve at parameter t.
func (b *BezierRemap) Point(t float64) (x, y float64) {
	u := 1 - t
	w1, w2, w3 := 3*u*u*t, 3*u*t*t, t*t*t
	return w1*b.X1 + w2*b.X2 + w3, w1*b.Y1 + w2*b.Y2 + w3*b.A
}

// Apply remaps v, clipped to [0, 1].
func (b *BezierRemap) Apply(v float64) float64 {
	return b.lut.Predict(min(max(v, 0), 1))
}

// Map applies the curve to every cell of data.
func (b *BezierRemap) Map(data *core.ScalarGrid) *core.ScalarGrid {
	return core.Map(data, b.Apply)
}
