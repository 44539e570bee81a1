package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapgen/internal/core"
)

func TestHeightHistogramWritesPNG(t *testing.T) {
	t.Parallel()
	const size = 16
	heights := core.NewSquare[float64](size)
	land := core.NewSquare[bool](size)
	for i := range heights.Cells() {
		v := float64(i%32)/16 - 1
		heights.Cells()[i] = v
		land.Cells()[i] = v > 0
	}

	path := filepath.Join(t.TempDir(), "height.png")
	require.NoError(t, HeightHistogram(heights, land, 20, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestHeightHistogramAllSea(t *testing.T) {
	t.Parallel()
	heights := core.NewSquare[float64](4)
	for i := range heights.Cells() {
		heights.Cells()[i] = -float64(i) / 16
	}
	path := filepath.Join(t.TempDir(), "sea.png")
	require.NoError(t, HeightHistogram(heights, core.NewSquare[bool](4), 5, path))
}

func TestHeightHistogramRejectsBadInput(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	err := HeightHistogram(core.NewSquare[float64](4), core.NewSquare[bool](5), 5, filepath.Join(dir, "x.png"))
	assert.ErrorIs(t, err, core.ErrPrecondition)

	err = HeightHistogram(core.NewSquare[float64](4), core.NewSquare[bool](4), 0, filepath.Join(dir, "x.png"))
	assert.ErrorIs(t, err, core.ErrPrecondition)
}
