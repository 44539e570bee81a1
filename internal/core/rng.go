package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Float64 returns a random float in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// UniformPoints draws n points with real coordinates in [0, size).
func (r *RNG) UniformPoints(n int, size float64) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{X: r.r.Float64() * size, Y: r.r.Float64() * size}
	}
	return pts
}

// IntPoints draws n points with integer coordinates in [lo, hi).
func (r *RNG) IntPoints(n, lo, hi int) []Point {
	pts := make([]Point, n)
	span := hi - lo
	for i := range pts {
		pts[i] = Point{X: float64(lo + r.IntN(span)), Y: float64(lo + r.IntN(span))}
	}
	return pts
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
