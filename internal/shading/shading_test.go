package shading

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapgen/internal/core"
)

// plane returns f(x, y) = ax·x + ay·y.
func plane(size int, ax, ay float64) *core.ScalarGrid {
	g := core.NewSquare[float64](size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			g.Set(x, y, ax*float64(x)+ay*float64(y))
		}
	}
	return g
}

func TestGradientSignAndEdges(t *testing.T) {
	gx, gy := Gradient(plane(6, 1, 0), core.Serial)
	for y := 0; y < 6; y++ {
		assert.Equal(t, 0.5, gx.At(0, y), "reflected left edge")
		for x := 1; x < 5; x++ {
			assert.Equal(t, 1.0, gx.At(x, y))
		}
		assert.Equal(t, 0.5, gx.At(5, y), "reflected right edge")
	}
	for _, v := range gy.Cells() {
		assert.Zero(t, v)
	}

	_, gy = Gradient(plane(6, 0, 2), core.Serial)
	assert.Equal(t, 2.0, gy.At(3, 3))
}

func TestSobelFlipsKernel(t *testing.T) {
	gx, gy := Sobel(plane(8, 1, 0), core.Serial)
	assert.Equal(t, -8.0, gx.At(4, 4))
	assert.Zero(t, gy.At(4, 4))

	gx, gy = Sobel(plane(8, 0, 1), core.Serial)
	assert.Zero(t, gx.At(4, 4))
	assert.Equal(t, -8.0, gy.At(4, 4))
}

func TestConvolveParallelMatchesSerial(t *testing.T) {
	g := core.NewSquare[float64](33)
	rng := core.NewRNG(4)
	for i := range g.Cells() {
		g.Cells()[i] = rng.Float64()
	}
	a := Convolve(g, sobelX, core.Serial)
	b := Convolve(g, sobelX, core.Exec{Parallel: true})
	assert.Equal(t, a.Cells(), b.Cells())
}

func TestNormalMapFlatSurface(t *testing.T) {
	zero := core.NewSquare[float64](4)
	nm, err := NormalMap(zero, zero.Clone(), 1, core.Serial)
	require.NoError(t, err)
	for _, n := range nm.Cells() {
		assert.Equal(t, [3]float64{0.5, 0.5, 1}, n)
	}
}

func TestNormalMapUnitLength(t *testing.T) {
	h := core.NewSquare[float64](16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			h.Set(x, y, math.Sin(float64(x)/3)*math.Cos(float64(y)/4))
		}
	}
	gx, gy := Sobel(h, core.Serial)
	nm, err := NormalMap(gx, gy, 2, core.Serial)
	require.NoError(t, err)
	for _, n := range nm.Cells() {
		l := 0.0
		for _, c := range n {
			require.GreaterOrEqual(t, c, 0.0)
			require.LessOrEqual(t, c, 1.0)
			l += (2*c - 1) * (2*c - 1)
		}
		require.InDelta(t, 1, l, 1e-9)
	}

	_, err = NormalMap(gx, gy, 0, core.Serial)
	assert.ErrorIs(t, err, core.ErrPrecondition)
}

func TestNormalLightRange(t *testing.T) {
	light, err := NormalLight(plane(12, 0.3, -0.2), 1, core.Serial)
	require.NoError(t, err)
	for _, v := range light.Cells() {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestCompositeFlatMapKeepsBase(t *testing.T) {
	const size = 4
	base := core.NewSquare[core.RGB](size)
	for i := range base.Cells() {
		base.Cells()[i] = core.RGB{10, 100, 250}
	}
	land := core.NewSquare[bool](size)
	for x := 0; x < size; x++ {
		land.Set(x, 0, true)
	}
	flat := core.NewSquare[float64](size)

	out, shift, err := Composite(base, flat, flat.Clone(), land, 1, 192, core.Serial)
	require.NoError(t, err)
	assert.Equal(t, base.Cells(), out.Cells())
	for _, v := range shift.Cells() {
		assert.Zero(t, v)
	}
}

func TestCompositeOceanUsesHalfSmoothAndClips(t *testing.T) {
	const size = 3
	base := core.NewSquare[core.RGB](size)
	for i := range base.Cells() {
		base.Cells()[i] = core.RGB{0, 128, 250}
	}
	smooth := core.NewSquare[float64](size)
	for i := range smooth.Cells() {
		smooth.Cells()[i] = 0.5
	}
	smooth.Set(0, 0, -4)
	land := core.NewSquare[bool](size)

	out, shift, err := Composite(base, smooth, core.NewSquare[float64](size), land, 1, 192, core.Serial)
	require.NoError(t, err)
	assert.Equal(t, 48.0, shift.At(1, 1))
	assert.Equal(t, core.RGB{48, 176, 255}, out.At(1, 1))
	assert.Equal(t, -192.0, shift.At(0, 0), "signal is clamped to [-1, 1]")
	assert.Equal(t, core.RGB{0, 0, 58}, out.At(0, 0))

	for _, px := range out.Cells() {
		for _, c := range px {
			assert.GreaterOrEqual(t, c, 0)
			assert.LessOrEqual(t, c, 255)
		}
	}
}

func TestCompositeRejectsSizeMismatch(t *testing.T) {
	g := core.NewSquare[float64](4)
	_, _, err := Composite(core.NewSquare[core.RGB](5), g, g, core.NewSquare[bool](4), 1, 192, core.Serial)
	assert.ErrorIs(t, err, core.ErrPrecondition)
}
