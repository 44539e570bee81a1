package voronoi

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapgen/internal/core"
)

func randomPoints(seed int64, n, size int) []core.Point {
	return core.NewRNG(seed).UniformPoints(n, float64(size))
}

func TestBuildRejectsTooFewPoints(t *testing.T) {
	_, err := Build([]core.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 1}}, 16)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrPrecondition))

	_, err = Build(randomPoints(1, 8, 16), 0)
	assert.True(t, errors.Is(err, core.ErrPrecondition))
}

func TestBuildBoundsRealRegionsOnly(t *testing.T) {
	const size = 64
	pts := randomPoints(7, 24, size)
	d, err := Build(pts, size)
	require.NoError(t, err)

	require.Len(t, d.Points, len(pts)+GuardCount)
	require.Len(t, d.Regions, len(d.Points)+1)
	assert.Empty(t, d.Regions[0])

	for i := range pts {
		assert.True(t, d.Bounded(RegionOf(i)), "point %d should have a bounded region", i)
	}
	for g := 0; g < GuardCount; g++ {
		id := RegionOf(len(pts) + g)
		assert.False(t, d.Bounded(id), "guard %d must be unbounded", g)
		assert.Contains(t, d.Regions[id], Unbounded)
	}
}

func TestDuplicatePointGetsEmptyRegion(t *testing.T) {
	pts := []core.Point{{X: 4, Y: 4}, {X: 12, Y: 5}, {X: 5, Y: 12}, {X: 11, Y: 11}, {X: 4, Y: 4}}
	d, err := Build(pts, 16)
	require.NoError(t, err)
	assert.True(t, d.Bounded(RegionOf(0)))
	assert.Empty(t, d.Regions[RegionOf(4)])
	assert.False(t, d.Bounded(RegionOf(4)))
}

func TestDelaunayEmptyCircumcircle(t *testing.T) {
	pts := randomPoints(3, 40, 100)
	tri := Delaunay(pts)
	require.NotEmpty(t, tri.Triangles)
	for _, tr := range tri.Triangles {
		a, b, c := pts[tr.A], pts[tr.B], pts[tr.C]
		assert.Greater(t, orientation(a, b, c), 0.0, "triangle %v is not counter-clockwise", tr)
		for i, p := range pts {
			if i == tr.A || i == tr.B || i == tr.C {
				continue
			}
			assert.False(t, inCircumcircle(a, b, c, p), "point %d inside circumcircle of %v", i, tr)
		}
	}
}

// insideConvex reports whether p lies in the counter-clockwise convex polygon,
// allowing for points that sit on an edge.
func insideConvex(poly []core.Point, p core.Point) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		if orientation(a, b, p) < -1e-6*a.Dist(b) {
			return false
		}
	}
	return true
}

func TestRasterizedPixelsLieInTheirRegion(t *testing.T) {
	const size = 64
	d, err := Build(randomPoints(11, 32, size), size)
	require.NoError(t, err)

	grid, stats := Rasterize(d, core.Serial)
	assert.Zero(t, stats.Overlaps)
	assert.Positive(t, stats.Painted)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			id := int(grid.At(x, y))
			if id == 0 {
				continue
			}
			poly := d.Polygon(id)
			require.NotNil(t, poly, "pixel (%d,%d) painted with unbounded region %d", x, y, id)
			require.True(t, insideConvex(poly, core.Point{X: float64(x), Y: float64(y)}),
				"pixel (%d,%d) outside region %d", x, y, id)
		}
	}
}

func TestRasterizeCoversGrid(t *testing.T) {
	const size = 48
	d, err := Build(randomPoints(5, 20, size), size)
	require.NoError(t, err)
	grid, _ := Rasterize(d, core.Serial)
	for _, id := range grid.Cells() {
		require.NotZero(t, id, "guard points should leave no background inside the grid")
	}
}

func TestRasterizeParallelMatchesSerial(t *testing.T) {
	const size = 80
	d, err := Build(randomPoints(9, 50, size), size)
	require.NoError(t, err)

	serial, s1 := Rasterize(d, core.Serial)
	par, s2 := Rasterize(d, core.Exec{Parallel: true})
	if diff := cmp.Diff(serial.Cells(), par.Cells()); diff != "" {
		t.Fatalf("parallel rasterization differs (-serial +parallel):\n%s", diff)
	}
	assert.Equal(t, s1, s2)
}

func TestRelaxZeroIterationsIsIdentity(t *testing.T) {
	pts := randomPoints(2, 16, 32)
	out, err := Relax(pts, 32, 0)
	require.NoError(t, err)
	assert.Equal(t, pts, out)

	out[0].X = -1
	assert.NotEqual(t, pts[0], out[0], "relax must not alias its input")
}

func TestRelaxReducesDisplacement(t *testing.T) {
	const size = 256
	pts := randomPoints(42, 100, size)
	before, err := Displacement(pts, size)
	require.NoError(t, err)

	relaxed, err := Relax(pts, size, DefaultRelaxIterations)
	require.NoError(t, err)
	require.NotEmpty(t, relaxed)
	after, err := Displacement(relaxed, size)
	require.NoError(t, err)

	assert.Less(t, after, before/2, "displacement before %.3f after %.3f", before, after)
	for _, p := range relaxed {
		assert.Equal(t, p, p.Clamp(0, size))
	}
}

func TestRelaxDistortionNonIncreasing(t *testing.T) {
	const size = 128
	pts := randomPoints(42, 60, size)
	prev, err := Distortion(pts, size, core.Serial)
	require.NoError(t, err)
	first := prev

	for k := 1; k <= DefaultRelaxIterations; k++ {
		next, err := Relax(pts, size, 1)
		require.NoError(t, err)
		if len(next) != len(pts) {
			break
		}
		cur, err := Distortion(next, size, core.Serial)
		require.NoError(t, err)
		// Vertex means only approximate centroids.
		assert.LessOrEqual(t, cur, prev*1.01, "iteration %d: distortion %.4f after %.4f", k, cur, prev)
		pts, prev = next, cur
	}
	assert.Less(t, prev, first)
}

func TestRelaxStopsWhenTooFewPointsRemain(t *testing.T) {
	pts := []core.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 1}}
	out, err := Relax(pts, 2, DefaultRelaxIterations)
	require.NoError(t, err)
	assert.Less(t, len(out), 4)
	for _, p := range out {
		assert.Equal(t, p, p.Clamp(0, 2))
	}

	_, err = Relax(pts[:3], 2, 1)
	assert.ErrorIs(t, err, core.ErrPrecondition, "the caller's own input still needs 4 points")
}

func TestRelaxIsDeterministic(t *testing.T) {
	pts := randomPoints(8, 30, 64)
	a, err := Relax(pts, 64, 5)
	require.NoError(t, err)
	b, err := Relax(pts, 64, 5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRelaxRejectsNegativeIterations(t *testing.T) {
	_, err := Relax(randomPoints(1, 8, 16), 16, -1)
	assert.ErrorIs(t, err, core.ErrPrecondition)
}
