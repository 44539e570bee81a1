package voronoi

import (
	"math"
	"sort"

	"mapgen/internal/core"
)

// RasterStats summarises a rasterization pass.
type RasterStats struct {
	// Painted counts regions that covered at least one pixel.
	Painted int
	// Skipped counts empty or unbounded regions.
	Skipped int
	// Overlaps counts pixels claimed by more than one region. A valid
	// tessellation yields zero; the lowest region id keeps the pixel.
	Overlaps int
}

type span struct {
	id         uint32
	poly       []core.Point
	rowLo      int
	rowHi      int
	paintedRow []bool
}

// Rasterize paints every bounded region of d into a size×size CellGrid.
//
// A pixel (x, y) belongs to a polygon under the half-open scanline rule:
// crossings are taken on row y and columns x0 <= x < x1 are filled between
// each pair. Regions are visited in ascending id order and a pixel is only
// painted while still 0, so the lowest id wins any tie. Pixels covered by no
// bounded region stay 0.
func Rasterize(d *Diagram, exec core.Exec) (*core.CellGrid, RasterStats) {
	size := d.Size
	grid := core.NewSquare[uint32](size)
	var stats RasterStats

	spans := make([]span, 0, len(d.Regions))
	for id := 1; id < len(d.Regions); id++ {
		poly := d.Polygon(id)
		if len(poly) < 3 {
			stats.Skipped++
			continue
		}
		minY, maxY := poly[0].Y, poly[0].Y
		for _, p := range poly[1:] {
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
		}
		lo := max(int(math.Ceil(minY)), 0)
		hi := min(int(math.Floor(maxY)), size-1)
		if lo > hi {
			stats.Skipped++
			continue
		}
		spans = append(spans, span{
			id:         uint32(id),
			poly:       poly,
			rowLo:      lo,
			rowHi:      hi,
			paintedRow: make([]bool, size),
		})
	}

	overlaps := make([]int, size)
	exec.Rows(size, func(y int) {
		row := grid.Row(y)
		fy := float64(y)
		xs := make([]float64, 0, 16)
		for si := range spans {
			sp := &spans[si]
			if y < sp.rowLo || y > sp.rowHi {
				continue
			}
			xs = crossings(sp.poly, fy, xs[:0])
			for i := 0; i+1 < len(xs); i += 2 {
				x0 := max(int(math.Ceil(xs[i])), 0)
				x1 := min(int(math.Ceil(xs[i+1])), size)
				for x := x0; x < x1; x++ {
					if row[x] != 0 {
						overlaps[y]++
						continue
					}
					row[x] = sp.id
					sp.paintedRow[y] = true
				}
			}
		}
	})

	for _, sp := range spans {
		painted := false
		for _, v := range sp.paintedRow {
			if v {
				painted = true
				break
			}
		}
		if painted {
			stats.Painted++
		} else {
			stats.Skipped++
		}
	}
	for _, n := range overlaps {
		stats.Overlaps += n
	}
	if stats.Overlaps > 0 {
		core.Logger().Warn("voronoi: overlapping regions during rasterization", "pixels", stats.Overlaps)
	}
	return grid, stats
}

// crossings appends the sorted x coordinates where the polygon boundary
// crosses row y. Edge endpoints are ordered before interpolating so that
// an edge shared by two regions yields the same x for both.
func crossings(poly []core.Point, y float64, xs []float64) []float64 {
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		if (a.Y <= y) == (b.Y <= y) {
			continue
		}
		if b.Y < a.Y || (b.Y == a.Y && b.X < a.X) {
			a, b = b, a
		}
		t := (y - a.Y) / (b.Y - a.Y)
		xs = append(xs, a.X+t*(b.X-a.X))
	}
	sort.Float64s(xs)
	return xs
}
