package height

import "mapgen/internal/core"

// Filter blends h with its smoothed version s using weight b (b·h + (1-b)·s),
// clips the blend to [0, 1] and passes it through the curve.
func Filter(h, s *core.ScalarGrid, curve *BezierRemap, b float64, exec core.Exec) (*core.ScalarGrid, error) {
	size, err := core.SquareSize(h, s)
	if err != nil {
		return nil, err
	}
	if curve == nil {
		return nil, core.Preconditionf("height: nil curve")
	}
	out := core.NewSquare[float64](size)
	exec.Rows(size, func(y int) {
		hr, sr, dst := h.Row(y), s.Row(y), out.Row(y)
		for x := range dst {
			dst[x] = curve.Apply(b*hr[x] + (1-b)*sr[x])
		}
	})
	return out, nil
}
