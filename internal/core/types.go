package core

import "math"

// Size describes the dimensions of a grid.
type Size struct {
	W int
	H int
}

// Square reports whether the size describes a square grid.
func (s Size) Square() bool { return s.W == s.H }

// Point is a real-valued position in grid space. X runs along columns and Y
// along rows.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(s float64) Point   { return Point{p.X * s, p.Y * s} }
func (p Point) Dist(q Point) float64  { return math.Hypot(p.X-q.X, p.Y-q.Y) }
func (p Point) Eq(q Point) bool       { return p.X == q.X && p.Y == q.Y }
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }
func (p Point) Clamp(lo, hi float64) Point {
	return Point{X: clamp(p.X, lo, hi), Y: clamp(p.Y, lo, hi)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sized is implemented by every grid flavour.
type Sized interface {
	Size() Size
}

// CheckSize verifies that every grid is size×size.
func CheckSize(size int, grids ...Sized) error {
	if size <= 0 {
		return Preconditionf("grid size must be positive, got %d", size)
	}
	for i, g := range grids {
		if g == nil {
			return Preconditionf("grid %d is nil", i)
		}
		s := g.Size()
		if s == (Size{}) {
			return Preconditionf("grid %d is nil", i)
		}
		if s.W != size || s.H != size {
			return Preconditionf("grid %d is %dx%d, want %dx%d", i, s.W, s.H, size, size)
		}
	}
	return nil
}

// SquareSize returns the edge length shared by all grids, which must be
// square and equal.
func SquareSize(first Sized, rest ...Sized) (int, error) {
	if first == nil {
		return 0, Preconditionf("grid 0 is nil")
	}
	s := first.Size()
	if s == (Size{}) {
		return 0, Preconditionf("grid 0 is nil")
	}
	if !s.Square() {
		return 0, Preconditionf("grid is %dx%d, want a square grid", s.W, s.H)
	}
	if err := CheckSize(s.W, rest...); err != nil {
		return 0, err
	}
	return s.W, nil
}
