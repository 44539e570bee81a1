// Package shading derives relief lighting from a height field and
// composites it over a base color map.
package shading

import (
	"mapgen/internal/core"
	"mapgen/internal/height"
)

// Kernel is a dense 2D convolution kernel indexed [row][column]. Its origin
// is the centre element.
type Kernel [][]float64

// Transpose swaps rows and columns.
func (k Kernel) Transpose() Kernel {
	if len(k) == 0 {
		return nil
	}
	t := make(Kernel, len(k[0]))
	for j := range t {
		t[j] = make([]float64, len(k))
		for i := range k {
			t[j][i] = k[i][j]
		}
	}
	return t
}

// Convolve computes the true convolution of data with k (the kernel is
// flipped), reflecting samples that fall outside the grid about its edges.
func Convolve(data *core.ScalarGrid, k Kernel, exec core.Exec) *core.ScalarGrid {
	out := core.NewGrid[float64](data.W, data.H)
	if len(k) == 0 {
		return out
	}
	cy, cx := len(k)/2, len(k[0])/2
	exec.Rows(data.H, func(y int) {
		dst := out.Row(y)
		for x := range dst {
			acc := 0.0
			for i, row := range k {
				sy := height.Reflect(y+cy-i, data.H)
				src := data.Row(sy)
				for j, w := range row {
					if w == 0 {
						continue
					}
					acc += w * src[height.Reflect(x+cx-j, data.W)]
				}
			}
			dst[x] = acc
		}
	})
	return out
}
