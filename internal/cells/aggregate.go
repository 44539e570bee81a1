// Package cells aggregates and broadcasts per-cell values over a CellGrid.
package cells

import (
	"gonum.org/v1/gonum/floats"

	"mapgen/internal/core"
)

// MaxID returns the largest cell id present in the grid.
func MaxID(cells *core.CellGrid) uint32 {
	var m uint32
	for _, id := range cells.Cells() {
		m = max(m, id)
	}
	return m
}

// Counts returns the number of pixels per cell id, indexed by id.
func Counts(cells *core.CellGrid) []float64 {
	counts := make([]float64, int(MaxID(cells))+1)
	for _, id := range cells.Cells() {
		counts[id]++
	}
	return counts
}

// Average returns the mean of data over the pixels of every cell, indexed by
// cell id from 0 to the largest id present. Cells without pixels average 0.
//
// Sums are taken relative to the first value seen in each cell, so a cell
// of constant value averages to exactly that value.
func Average(cells *core.CellGrid, data *core.ScalarGrid) ([]float64, error) {
	if _, err := core.SquareSize(cells, data); err != nil {
		return nil, err
	}
	counts := Counts(cells)
	ref := make([]float64, len(counts))
	seen := make([]bool, len(counts))
	sums := make([]float64, len(counts))
	vals := data.Cells()
	for i, id := range cells.Cells() {
		if !seen[id] {
			seen[id] = true
			ref[id] = vals[i]
		}
		sums[id] += vals[i] - ref[id]
	}
	for i, c := range counts {
		if c == 0 {
			counts[i] = 1
		}
	}
	avg := make([]float64, len(sums))
	floats.DivTo(avg, sums, counts)
	floats.Add(avg, ref)
	return avg, nil
}

// Fill broadcasts values[id] to every pixel of cell id.
func Fill(cells *core.CellGrid, values []float64, exec core.Exec) (*core.ScalarGrid, error) {
	return Broadcast(cells, values, exec)
}

// Color broadcasts colors[id] to every pixel of cell id, truncating each
// channel toward zero.
func Color(cells *core.CellGrid, colors [][3]float64, exec core.Exec) (*core.ColorGrid, error) {
	table := make([]core.RGB, len(colors))
	for i, c := range colors {
		table[i] = core.RGB{int(c[0]), int(c[1]), int(c[2])}
	}
	return Broadcast(cells, table, exec)
}

// Broadcast writes table[id] to every pixel of cell id. The table must
// cover every id present in cells.
func Broadcast[T any](cells *core.CellGrid, table []T, exec core.Exec) (*core.Grid[T], error) {
	if cells == nil {
		return nil, core.Preconditionf("cells: nil cell grid")
	}
	if m := MaxID(cells); int(m) >= len(table) {
		return nil, core.Preconditionf("cells: cell id %d out of range for table of %d values", m, len(table))
	}
	out := core.NewGrid[T](cells.W, cells.H)
	exec.Rows(cells.H, func(y int) {
		src, dst := cells.Row(y), out.Row(y)
		for x, id := range src {
			dst[x] = table[id]
		}
	})
	return out, nil
}
