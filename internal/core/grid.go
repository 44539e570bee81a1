package core

// Grid stores a 2D grid of cell values in row-major order.
type Grid[T any] struct {
	W, H int
	data []T
}

// RGB holds one pixel of a ColorGrid. Channels are not clamped.
type RGB [3]int

// Grid flavours shared by every stage of a run.
type (
	ScalarGrid = Grid[float64]
	CellGrid   = Grid[uint32]
	Mask       = Grid[bool]
	BandGrid   = Grid[int]
	ColorGrid  = Grid[RGB]
)

// NewGrid allocates a grid with the given dimensions.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// NewSquare allocates a size×size grid.
func NewSquare[T any](size int) *Grid[T] { return NewGrid[T](size, size) }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// At returns the value at column x, row y.
func (g *Grid[T]) At(x, y int) T { return g.data[y*g.W+x] }

// Set stores v at column x, row y.
func (g *Grid[T]) Set(x, y int, v T) { g.data[y*g.W+x] = v }

// Row exposes row y of the backing slice.
func (g *Grid[T]) Row(y int) []T { return g.data[y*g.W : (y+1)*g.W] }

// In reports whether (x, y) lies inside the grid.
func (g *Grid[T]) In(x, y int) bool { return x >= 0 && y >= 0 && x < g.W && y < g.H }

// Size reports the grid dimensions. A nil grid reports a zero Size.
func (g *Grid[T]) Size() Size {
	if g == nil {
		return Size{}
	}
	return Size{W: g.W, H: g.H}
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	c := &Grid[T]{W: g.W, H: g.H, data: make([]T, len(g.data))}
	copy(c.data, g.data)
	return c
}

// Map derives a new grid by applying fn to every value of src.
func Map[T, U any](src *Grid[T], fn func(T) U) *Grid[U] {
	out := NewGrid[U](src.W, src.H)
	for i, v := range src.data {
		out.data[i] = fn(v)
	}
	return out
}

// Count returns the number of true cells in the mask.
func Count(m *Mask) int {
	n := 0
	for _, v := range m.data {
		if v {
			n++
		}
	}
	return n
}

// And returns the elementwise conjunction of the masks.
func And(a, b *Mask) *Mask {
	out := NewGrid[bool](a.W, a.H)
	for i := range out.data {
		out.data[i] = a.data[i] && b.data[i]
	}
	return out
}

// Not returns the elementwise negation of the mask.
func Not(m *Mask) *Mask {
	return Map(m, func(v bool) bool { return !v })
}
