// Package scatter places objects such as trees on a map.
package scatter

import (
	"image"

	"mapgen/internal/core"
	"mapgen/internal/voronoi"
)

// Constraints restrict where objects may land. Nil grids are not applied.
type Constraints struct {
	// Density keeps positions where Density > Threshold.
	Density   *core.ScalarGrid
	Threshold float64
	// Valid keeps positions where Valid is true.
	Valid *core.Mask
	// Height keeps positions where Height < MaxHeight.
	Height    *core.ScalarGrid
	MaxHeight float64
}

func (c Constraints) allows(x, y int) bool {
	if c.Density != nil && !(c.Density.At(x, y) > c.Threshold) {
		return false
	}
	if c.Valid != nil && !c.Valid.At(x, y) {
		return false
	}
	if c.Height != nil && !(c.Height.At(x, y) < c.MaxHeight) {
		return false
	}
	return true
}

func (c Constraints) check(size int) error {
	var grids []core.Sized
	if c.Density != nil {
		grids = append(grids, c.Density)
	}
	if c.Valid != nil {
		grids = append(grids, c.Valid)
	}
	if c.Height != nil {
		grids = append(grids, c.Height)
	}
	return core.CheckSize(size, grids...)
}

// Candidates draws n integer points in [0, size-1), spreads them with iters
// rounds of Lloyd relaxation and truncates them back to pixels. Pixels
// outside [0, size) are dropped.
func Candidates(rng *core.RNG, n, size, iters int) ([]image.Point, error) {
	if n == 0 {
		return nil, nil
	}
	pts, err := voronoi.Relax(rng.IntPoints(n, 0, size-1), size, iters)
	if err != nil {
		return nil, err
	}
	out := make([]image.Point, 0, len(pts))
	for _, p := range pts {
		q := image.Point{X: int(p.X), Y: int(p.Y)}
		if q.X < size && q.Y < size {
			out = append(out, q)
		}
	}
	return out, nil
}

// Place scatters n candidates and keeps those allowed by c. Placements are
// returned as (column, row) pixels in row-major order, together with the
// mask they were read from.
func Place(rng *core.RNG, n, size int, c Constraints, iters int) ([]image.Point, *core.Mask, error) {
	if n < 0 {
		return nil, nil, core.Preconditionf("scatter: negative object count %d", n)
	}
	if err := c.check(size); err != nil {
		return nil, nil, err
	}
	cand, err := Candidates(rng, n, size, iters)
	if err != nil {
		return nil, nil, err
	}

	mask := core.NewSquare[bool](size)
	for _, p := range cand {
		if c.allows(p.X, p.Y) {
			mask.Set(p.X, p.Y, true)
		}
	}

	placed := make([]image.Point, 0, core.Count(mask))
	for y := 0; y < size; y++ {
		for x, on := range mask.Row(y) {
			if on {
				placed = append(placed, image.Point{X: x, Y: y})
			}
		}
	}
	core.Logger().Debug("scatter: placed objects", "candidates", len(cand), "placed", len(placed))
	return placed, mask, nil
}
