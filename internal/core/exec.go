package core

import "github.com/dgravesa/go-parallel/parallel"

// Exec selects how per-row loops run. Rows only read immutable inputs and
// write their own output cells, so serial and parallel execution produce
// identical grids.
type Exec struct {
	Parallel bool
}

// Serial runs every loop on the calling goroutine.
var Serial = Exec{}

// Rows calls fn once for each row in [0, h).
func (e Exec) Rows(h int, fn func(y int)) {
	if !e.Parallel || h < 2 {
		for y := 0; y < h; y++ {
			fn(y)
		}
		return
	}
	parallel.For(h, func(y, _ int) {
		fn(y)
	})
}
