package cells

import "mapgen/internal/core"

// Boundary flags pixels whose neighbourhood holds more than one cell id.
//
// For kernel >= 1 the neighbourhood is the (2·kernel+1)² window around the
// pixel, clipped to the grid. Kernel 0 compares the pixel with its four
// direct neighbours.
func Boundary(cells *core.CellGrid, kernel int, exec core.Exec) (*core.Mask, error) {
	if cells == nil {
		return nil, core.Preconditionf("cells: nil cell grid")
	}
	if kernel < 0 {
		return nil, core.Preconditionf("cells: negative boundary kernel %d", kernel)
	}
	out := core.NewGrid[bool](cells.W, cells.H)
	exec.Rows(cells.H, func(y int) {
		row := out.Row(y)
		for x := range row {
			if kernel == 0 {
				row[x] = differsFromNeighbours(cells, x, y)
			} else {
				row[x] = mixedWindow(cells, x, y, kernel)
			}
		}
	})
	return out, nil
}

var vonNeumann = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func differsFromNeighbours(cells *core.CellGrid, x, y int) bool {
	id := cells.At(x, y)
	for _, d := range vonNeumann {
		nx, ny := x+d[0], y+d[1]
		if cells.In(nx, ny) && cells.At(nx, ny) != id {
			return true
		}
	}
	return false
}

func mixedWindow(cells *core.CellGrid, x, y, k int) bool {
	id := cells.At(x, y)
	y0, y1 := max(y-k, 0), min(y+k, cells.H-1)
	x0, x1 := max(x-k, 0), min(x+k, cells.W-1)
	for ny := y0; ny <= y1; ny++ {
		row := cells.Row(ny)
		for nx := x0; nx <= x1; nx++ {
			if row[nx] != id {
				return true
			}
		}
	}
	return false
}
