package scatter

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapgen/internal/core"
	"mapgen/internal/voronoi"
)

func TestPlaceWithoutConstraintsKeepsCandidates(t *testing.T) {
	const size = 64
	placed, mask, err := Place(core.NewRNG(1), 40, size, Constraints{}, voronoi.DefaultRelaxIterations)
	require.NoError(t, err)
	require.NotEmpty(t, placed)
	assert.Equal(t, core.Count(mask), len(placed))

	for i, p := range placed {
		require.True(t, p.In(image.Rect(0, 0, size, size)))
		require.True(t, mask.At(p.X, p.Y))
		if i > 0 {
			prev := placed[i-1]
			require.True(t, prev.Y < p.Y || (prev.Y == p.Y && prev.X < p.X), "placements must be row-major")
		}
	}
}

func TestPlaceHonoursConstraints(t *testing.T) {
	const size = 48
	density := core.NewSquare[float64](size)
	valid := core.NewSquare[bool](size)
	height := core.NewSquare[float64](size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			density.Set(x, y, float64(x)/size)
			valid.Set(x, y, y < size/2)
			height.Set(x, y, float64(y%4)/4)
		}
	}
	c := Constraints{Density: density, Threshold: 0.25, Valid: valid, Height: height, MaxHeight: 0.5}

	placed, _, err := Place(core.NewRNG(7), 200, size, c, 10)
	require.NoError(t, err)
	require.NotEmpty(t, placed)
	for _, p := range placed {
		assert.Greater(t, density.At(p.X, p.Y), 0.25)
		assert.True(t, valid.At(p.X, p.Y))
		assert.Less(t, height.At(p.X, p.Y), 0.5)
	}
}

func TestPlaceOnTinyGrid(t *testing.T) {
	for _, size := range []int{2, 3} {
		placed, mask, err := Place(core.NewRNG(1), 10, size, Constraints{}, voronoi.DefaultRelaxIterations)
		require.NoError(t, err, "size %d", size)
		require.NotEmpty(t, placed)
		assert.Equal(t, core.Count(mask), len(placed))
		for _, p := range placed {
			assert.True(t, mask.In(p.X, p.Y), "placement %v outside %dx%d", p, size, size)
		}
	}
}

func TestPlaceIsDeterministic(t *testing.T) {
	a, _, err := Place(core.NewRNG(5), 30, 32, Constraints{}, 10)
	require.NoError(t, err)
	b, _, err := Place(core.NewRNG(5), 30, 32, Constraints{}, 10)
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("placements differ (-first +second):\n%s", diff)
	}
}

func TestPlaceRejectsMismatchedConstraint(t *testing.T) {
	_, _, err := Place(core.NewRNG(1), 10, 16, Constraints{Valid: core.NewSquare[bool](8)}, 10)
	assert.ErrorIs(t, err, core.ErrPrecondition)
}

func TestPlaceZeroObjects(t *testing.T) {
	placed, mask, err := Place(core.NewRNG(1), 0, 16, Constraints{}, 10)
	require.NoError(t, err)
	assert.Empty(t, placed)
	assert.Zero(t, core.Count(mask))
}
