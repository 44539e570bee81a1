package voronoi

import (
	"gonum.org/v1/gonum/floats"

	"mapgen/internal/core"
)

// DefaultRelaxIterations is the iteration count used when none is configured.
const DefaultRelaxIterations = 10

// Relax applies k rounds of Lloyd relaxation. Each round tessellates the
// current points, replaces them with the vertex mean of every bounded region
// (in region order) and clips the result into [0, size].
//
// Regions that are empty or unbounded are dropped, so the returned set can be
// smaller than the input. Once fewer than 4 points remain no further round
// can be tessellated and the current set is returned early. The input itself
// must still hold at least 4 points when k > 0. With k == 0 a copy of the
// input is returned.
func Relax(points []core.Point, size, k int) ([]core.Point, error) {
	if k < 0 {
		return nil, core.Preconditionf("voronoi: negative relax iterations %d", k)
	}
	cur := append([]core.Point(nil), points...)
	s := float64(size)
	for it := 0; it < k; it++ {
		d, err := Build(cur, size)
		if err != nil {
			return nil, err
		}
		next := make([]core.Point, 0, len(cur))
		for id := 1; id < len(d.Regions); id++ {
			c, ok := d.Centroid(id)
			if !ok {
				continue
			}
			next = append(next, c.Clamp(0, s))
		}
		if len(next) < len(cur) {
			core.Logger().Debug("voronoi: relaxation dropped points",
				"iteration", it, "before", len(cur), "after", len(next))
		}
		cur = next
		if len(cur) < 4 && it+1 < k {
			core.Logger().Debug("voronoi: relaxation stopped early",
				"iteration", it, "points", len(cur))
			break
		}
	}
	return cur, nil
}

// Displacement returns the mean distance between each point and the vertex
// mean of its bounded region, over regions whose mean lies inside
// [0, size]². It measures how far a set is from a centroidal tessellation;
// Lloyd relaxation drives it down. Border regions whose mean would be
// clipped are left out.
func Displacement(points []core.Point, size int) (float64, error) {
	d, err := Build(points, size)
	if err != nil {
		return 0, err
	}
	s := float64(size)
	sum, n := 0.0, 0
	for i, p := range points {
		c, ok := d.Centroid(RegionOf(i))
		if !ok || c != c.Clamp(0, s) {
			continue
		}
		sum += p.Dist(c)
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

// Distortion returns the mean distance from every painted pixel to the
// generator of the region it was rasterized into. Lloyd relaxation keeps it
// roughly non-increasing while the point count is unchanged.
func Distortion(points []core.Point, size int, exec core.Exec) (float64, error) {
	d, err := Build(points, size)
	if err != nil {
		return 0, err
	}
	grid, _ := Rasterize(d, exec)
	sums := make([]float64, size)
	counts := make([]float64, size)
	exec.Rows(size, func(y int) {
		for x, id := range grid.Row(y) {
			if id == 0 {
				continue
			}
			sums[y] += d.Points[id-1].Dist(core.Point{X: float64(x), Y: float64(y)})
			counts[y]++
		}
	})
	n := floats.Sum(counts)
	if n == 0 {
		return 0, nil
	}
	return floats.Sum(sums) / n, nil
}
