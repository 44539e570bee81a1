package shading

import (
	"math"

	"mapgen/internal/core"
)

// Composite shades base with relief lighting. Land pixels use the normal
// light of h, other pixels half of smooth. The signal, clamped to [-1, 1],
// is scaled to [-offset, offset], truncated and added to every channel of
// base; channels are clipped to [0, 255].
//
// It returns the shaded colors and the per-pixel offset that was applied.
func Composite(base *core.ColorGrid, smooth, h *core.ScalarGrid, land *core.Mask, intensity, offset float64, exec core.Exec) (*core.ColorGrid, *core.ScalarGrid, error) {
	size, err := core.SquareSize(base, smooth, h, land)
	if err != nil {
		return nil, nil, err
	}
	light, err := NormalLight(h, intensity, exec)
	if err != nil {
		return nil, nil, err
	}

	out := core.NewSquare[core.RGB](size)
	shift := core.NewSquare[float64](size)
	exec.Rows(size, func(y int) {
		br, sr, lr, mr := base.Row(y), smooth.Row(y), light.Row(y), land.Row(y)
		dst, sh := out.Row(y), shift.Row(y)
		for x := range dst {
			v := sr[x] / 2
			if mr[x] {
				v = lr[x]
			}
			s := math.Max(-1, math.Min(1, v)) * offset
			sh[x] = s
			d := int(s)
			for c := range dst[x] {
				dst[x][c] = min(max(br[x][c]+d, 0), 255)
			}
		}
	})
	return out, shift, nil
}
