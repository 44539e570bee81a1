package height

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapgen/internal/core"
)

func ramp(size int) *core.ScalarGrid {
	g := core.NewSquare[float64](size)
	for i := range g.Cells() {
		g.Cells()[i] = math.Sin(float64(i)*0.37) * float64(i%7) / 7
	}
	return g
}

func TestEqualizeAlphaZeroIsIdentity(t *testing.T) {
	in := ramp(16)
	out, err := Equalize(in, 0)
	require.NoError(t, err)
	assert.Equal(t, in.Cells(), out.Cells())
}

func TestEqualizeFlattensAndPreservesOrder(t *testing.T) {
	in := ramp(16)
	out, err := Equalize(in, 1)
	require.NoError(t, err)

	vals, eq := in.Cells(), out.Cells()
	for i := range vals {
		require.GreaterOrEqual(t, eq[i], -1.0)
		require.LessOrEqual(t, eq[i], 1.0)
		for j := range vals {
			if vals[i] < vals[j] {
				require.LessOrEqual(t, eq[i], eq[j], "equalization must be monotonic")
			}
		}
	}
	assert.InDelta(t, 1.0, maxOf(eq), 1e-12, "maximum maps to the top of the range")
}

func TestEqualizeConstantGrid(t *testing.T) {
	in := core.NewSquare[float64](4)
	out, err := Equalize(in, 1)
	require.NoError(t, err)
	for _, v := range out.Cells() {
		assert.False(t, math.IsNaN(v))
	}
}

func TestEqualizeNearlyConstantGrid(t *testing.T) {
	in := core.NewSquare[float64](2)
	copy(in.Cells(), []float64{0.5, 0.5, 0.5, math.Nextafter(0.5, 1)})
	out, err := Equalize(in, 1)
	require.NoError(t, err)
	for _, v := range out.Cells() {
		assert.False(t, math.IsNaN(v))
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestEqualizeRejectsNaN(t *testing.T) {
	in := core.NewSquare[float64](2)
	copy(in.Cells(), []float64{math.NaN(), 0, 1, 2})
	_, err := Equalize(in, 1)
	assert.ErrorIs(t, err, core.ErrPrecondition)
}

func maxOf(v []float64) float64 {
	m := math.Inf(-1)
	for _, x := range v {
		m = math.Max(m, x)
	}
	return m
}

func TestQuantizeRangeAndMonotonic(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8} {
		edges := Edges(n)
		prev := 0
		for i := 0; i <= 400; i++ {
			v := -1 + float64(i)/200
			b := Band(edges, v)
			require.GreaterOrEqual(t, b, 0)
			require.LessOrEqual(t, b, n-1)
			require.GreaterOrEqual(t, b, prev, "band must not decrease at %g (n=%d)", v, n)
			prev = b
		}
		assert.Equal(t, 0, Band(edges, -1))
		assert.Equal(t, n-1, Band(edges, 1))
	}
}

func TestQuantizeEdgesGoUp(t *testing.T) {
	g := core.NewGrid[float64](4, 1)
	copy(g.Cells(), []float64{-0.75, -0.5, 0, 0.49})
	out, err := Quantize(g, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 2}, out.Cells())

	_, err = Quantize(g, 0)
	assert.ErrorIs(t, err, core.ErrPrecondition)
}

func TestBezierEndpoints(t *testing.T) {
	b, err := NewBezierRemap(0.75, 0.2, 0.95, 0.2, 0.24)
	require.NoError(t, err)
	assert.InDelta(t, 0, b.Apply(0), 1e-12)
	assert.InDelta(t, 0.24, b.Apply(1), 1e-12)
	assert.Equal(t, b.Apply(0), b.Apply(-3), "input is clipped")
	assert.Equal(t, b.Apply(1), b.Apply(7), "input is clipped")
}

func TestBezierIdentityLine(t *testing.T) {
	b, err := NewBezierRemap(1.0/3, 1.0/3, 2.0/3, 2.0/3, 1)
	require.NoError(t, err)
	for _, v := range []float64{0, 0.1, 0.5, 0.93, 1} {
		assert.InDelta(t, v, b.Apply(v), 1e-9)
	}
}

func TestBezierRejectsNonMonotonicCurve(t *testing.T) {
	for _, c := range [][4]float64{{2, 0.5, -1, 0.5}, {1.5, 0, -0.5, 1}} {
		var (
			b   *BezierRemap
			err error
		)
		require.NotPanics(t, func() { b, err = NewBezierRemap(c[0], c[1], c[2], c[3], 1) }, "curve %v", c)
		assert.Nil(t, b)
		assert.ErrorIs(t, err, core.ErrPrecondition, "curve %v", c)
	}
}

func TestFilterBlendsAndClips(t *testing.T) {
	curve, err := NewBezierRemap(1.0/3, 1.0/3, 2.0/3, 2.0/3, 1)
	require.NoError(t, err)
	h := core.NewGrid[float64](3, 3)
	s := core.NewGrid[float64](3, 3)
	copy(h.Cells(), []float64{0.2, 0.8, 2, -1, 0.5, 0.5, 0, 1, 0.4})
	copy(s.Cells(), []float64{0.4, 0.0, 2, -1, 0.1, 0.9, 1, 0, 0.4})

	out, err := Filter(h, s, curve, 0.5, core.Serial)
	require.NoError(t, err)
	want := []float64{0.3, 0.4, 1, 0, 0.3, 0.7, 0.5, 0.5, 0.4}
	for i, w := range want {
		assert.InDelta(t, w, out.Cells()[i], 1e-9, "cell %d", i)
	}

	_, err = Filter(h, core.NewGrid[float64](4, 4), curve, 0.5, core.Serial)
	assert.ErrorIs(t, err, core.ErrPrecondition)
}

func TestGaussianKernelNormalised(t *testing.T) {
	k := GaussianKernel(1.5)
	require.Len(t, k, 2*6+1)
	sum := 0.0
	for i, v := range k {
		sum += v
		assert.InDelta(t, v, k[len(k)-1-i], 1e-15, "kernel is symmetric")
	}
	assert.InDelta(t, 1, sum, 1e-12)
	assert.Equal(t, []float64{1}, GaussianKernel(0))
}

func TestReflect(t *testing.T) {
	got := make([]int, 0, 12)
	for i := -4; i < 8; i++ {
		got = append(got, Reflect(i, 4))
	}
	assert.Equal(t, []int{3, 2, 1, 0, 0, 1, 2, 3, 3, 2, 1, 0}, got)
}

func TestSmoothKeepsConstantAndReducesSpread(t *testing.T) {
	c := core.NewSquare[float64](10)
	for i := range c.Cells() {
		c.Cells()[i] = 0.25
	}
	for _, v := range Smooth(c, 2, core.Serial).Cells() {
		assert.InDelta(t, 0.25, v, 1e-12)
	}

	in := ramp(24)
	out := Smooth(in, 1, core.Serial)
	assert.Less(t, spread(out.Cells()), spread(in.Cells()))

	par := Smooth(in, 1, core.Exec{Parallel: true})
	assert.Equal(t, out.Cells(), par.Cells())

	same := Smooth(in, 0, core.Serial)
	assert.Equal(t, in.Cells(), same.Cells())
	same.Cells()[0] = 99
	assert.NotEqual(t, 99.0, in.Cells()[0])
}

func spread(v []float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range v {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	return hi - lo
}
