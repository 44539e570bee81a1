package shading

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"mapgen/internal/core"
)

// NormalGrid holds one unit normal per pixel, remapped to [0, 1].
type NormalGrid = core.Grid[[3]float64]

// NormalMap turns a pair of derivative grids into a displayable normal map.
// Each pixel gets (gx/m, gy/m, 1/intensity) normalised to unit length and
// remapped from [-1, 1] to [0, 1], where m is the larger of the two grid
// maxima. A zero maximum leaves the x/y channels flat.
func NormalMap(gx, gy *core.ScalarGrid, intensity float64, exec core.Exec) (*NormalGrid, error) {
	size, err := core.SquareSize(gx, gy)
	if err != nil {
		return nil, err
	}
	if intensity <= 0 {
		return nil, core.Preconditionf("shading: intensity must be positive, got %g", intensity)
	}
	m := math.Max(floats.Max(gx.Cells()), floats.Max(gy.Cells()))
	inv := 0.0
	if m != 0 {
		inv = 1 / m
	}
	z := 1 / intensity

	out := core.NewSquare[[3]float64](size)
	exec.Rows(size, func(y int) {
		xr, yr, dst := gx.Row(y), gy.Row(y), out.Row(y)
		for x := range dst {
			n := [3]float64{xr[x] * inv, yr[x] * inv, z}
			l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
			for c := range n {
				dst[x][c] = n[c]/l*0.5 + 0.5
			}
		}
	})
	return out, nil
}

// NormalLight is a single directional lighting term in [-1, 1]: the mean of
// the x and y channels of the Sobel normal map of h.
func NormalLight(h *core.ScalarGrid, intensity float64, exec core.Exec) (*core.ScalarGrid, error) {
	gx, gy := Sobel(h, exec)
	nm, err := NormalMap(gx, gy, intensity, exec)
	if err != nil {
		return nil, err
	}
	return core.Map(nm, func(n [3]float64) float64 {
		return (n[0]+n[1])/2*2 - 1
	}), nil
}
