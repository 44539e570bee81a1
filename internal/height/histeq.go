// Package height reshapes scalar height fields: histogram equalization,
// banding, Gaussian smoothing and Bezier remapping.
package height

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"mapgen/internal/core"
)

// HistogramBins is the number of bins of the empirical distribution used by
// Equalize.
const HistogramBins = 256

// CDF is the empirical cumulative distribution of a grid, sampled at the
// centres of HistogramBins equal-width bins spanning [min, max].
type CDF struct {
	Centers []float64
	Values  []float64
	lut     interp.PiecewiseLinear
}

// NewCDF builds the cumulative distribution of data. A grid whose range is
// too narrow to separate the bin centres, constant grids included, gets a
// unit-wide range around its midpoint.
func NewCDF(data *core.ScalarGrid) (*CDF, error) {
	if data == nil || len(data.Cells()) == 0 {
		return nil, core.Preconditionf("height: empty grid")
	}
	vals := data.Cells()
	lo, hi := floats.Min(vals), floats.Max(vals)
	width := (hi - lo) / HistogramBins
	centers := floats.Span(make([]float64, HistogramBins), lo+width/2, hi-width/2)
	if firstNonIncreasing(centers) >= 0 {
		mid := lo + (hi-lo)/2
		lo, hi = mid-0.5, mid+0.5
		width = (hi - lo) / HistogramBins
		centers = floats.Span(centers, lo+width/2, hi-width/2)
		if firstNonIncreasing(centers) >= 0 {
			return nil, core.Preconditionf("height: cannot bin values around %g", mid)
		}
	}

	hist := make([]float64, HistogramBins)
	for _, v := range vals {
		b := int((v - lo) / width)
		hist[min(max(b, 0), HistogramBins-1)]++
	}
	cdf := floats.CumSum(make([]float64, HistogramBins), hist)
	floats.Scale(1/cdf[HistogramBins-1], cdf)

	c := &CDF{Centers: centers, Values: cdf}
	if err := c.lut.Fit(centers, cdf); err != nil {
		return nil, core.Preconditionf("height: cumulative distribution: %v", err)
	}
	return c, nil
}

// At returns the cumulative probability of v, clamped to the first and last
// bin centres.
func (c *CDF) At(v float64) float64 { return c.lut.Predict(v) }

// Equalize maps data through its own cumulative distribution, rescales the
// result from [0, 1] to [-1, 1] and mixes it with the input: alpha 1 is fully
// equalized, alpha 0 returns the input unchanged.
func Equalize(data *core.ScalarGrid, alpha float64) (*core.ScalarGrid, error) {
	cdf, err := NewCDF(data)
	if err != nil {
		return nil, err
	}
	return core.Map(data, func(v float64) float64 {
		eq := 2*cdf.At(v) - 1
		return alpha*eq + (1-alpha)*v
	}), nil
}
