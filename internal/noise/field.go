// Package noise synthesizes multi-octave coherent noise grids.
package noise

import (
	"github.com/ojrac/opensimplex-go"

	"mapgen/internal/core"
)

// permutationSeed fixes the simplex lattice. Layers are told apart by the
// third sampling coordinate, not by reseeding the lattice.
const permutationSeed = 0

// xOffset shifts every sample off the lattice origin, where simplex noise
// degenerates to exactly zero along the first row.
const xOffset = 0.1

// Params configures one noise layer.
type Params struct {
	// Res is the number of noise periods across the grid.
	Res float64
	// Seed identifies the layer; MapSeed identifies the map. Their sum is
	// the third sampling coordinate.
	Seed    int64
	MapSeed int64

	Octaves     int
	Persistence float64
	Lacunarity  float64
}

// DefaultParams returns a single-octave layer at resolution 2.
func DefaultParams() Params {
	return Params{Res: 2, Octaves: 1, Persistence: 0.5, Lacunarity: 2}
}

// Validate reports precondition violations in p.
func (p Params) Validate() error {
	if p.Res <= 0 {
		return core.Preconditionf("noise: resolution must be positive, got %g", p.Res)
	}
	if p.Octaves < 1 {
		return core.Preconditionf("noise: octaves must be at least 1, got %d", p.Octaves)
	}
	return nil
}

// Sampler evaluates fractal simplex noise. It is immutable and safe for
// concurrent use.
type Sampler struct {
	src opensimplex.Noise
	p   Params
}

// NewSampler builds a Sampler for p.
func NewSampler(p Params) (*Sampler, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Sampler{src: opensimplex.New(permutationSeed), p: p}, nil
}

// At returns the octave sum at (x, y, z), normalised by the total amplitude
// so the result stays within the range of a single octave.
func (s *Sampler) At(x, y, z float64) float64 {
	total, amp, freq, norm := 0.0, 1.0, 1.0, 0.0
	for o := 0; o < s.p.Octaves; o++ {
		total += s.src.Eval3(x*freq, y*freq, z*freq) * amp
		norm += amp
		amp *= s.p.Persistence
		freq *= s.p.Lacunarity
	}
	if norm == 0 {
		return 0
	}
	return total / norm
}

// Field fills a size×size grid where cell (x, y) holds the noise sampled at
// ((x+0.1)/scale, y/scale, Seed+MapSeed) with scale = size/Res. The result is
// a pure function of size and p.
func Field(size int, p Params, exec core.Exec) (*core.ScalarGrid, error) {
	if size <= 0 {
		return nil, core.Preconditionf("noise: size must be positive, got %d", size)
	}
	s, err := NewSampler(p)
	if err != nil {
		return nil, err
	}
	scale := float64(size) / p.Res
	z := float64(p.Seed + p.MapSeed)
	grid := core.NewSquare[float64](size)
	exec.Rows(size, func(y int) {
		row := grid.Row(y)
		fy := float64(y) / scale
		for x := range row {
			row[x] = s.At((float64(x)+xOffset)/scale, fy, z)
		}
	})
	return grid, nil
}
