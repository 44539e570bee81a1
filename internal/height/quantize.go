package height

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"mapgen/internal/core"
)

// Edges returns the n+1 equal-width bin edges spanning [-1, 1].
func Edges(n int) []float64 {
	return floats.Span(make([]float64, n+1), -1, 1)
}

// Band returns the index of the bin holding v, clipped to [0, n-1]. A value
// on an interior edge belongs to the upper bin.
func Band(edges []float64, v float64) int {
	n := len(edges) - 1
	i := sort.Search(len(edges), func(i int) bool { return edges[i] > v }) - 1
	return min(max(i, 0), n-1)
}

// Quantize buckets values in [-1, 1] into n equal-width bands.
func Quantize(data *core.ScalarGrid, n int) (*core.BandGrid, error) {
	if n < 1 {
		return nil, core.Preconditionf("height: quantize needs at least 1 bin, got %d", n)
	}
	if data == nil {
		return nil, core.Preconditionf("height: nil grid")
	}
	edges := Edges(n)
	return core.Map(data, func(v float64) int { return Band(edges, v) }), nil
}
