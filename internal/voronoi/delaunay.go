package voronoi

import (
	"math"

	"mapgen/internal/core"
)

// Triangle references three point indices in counter-clockwise order.
type Triangle struct{ A, B, C int }

// Triangulation is the Delaunay triangulation of a point set.
type Triangulation struct {
	Points    []core.Point
	Triangles []Triangle
	// Hull marks points that touched the enclosing super-triangle, i.e. whose
	// Voronoi region is unbounded.
	Hull []bool
	// Duplicate marks points that coincide with an earlier point and were not
	// inserted.
	Duplicate []bool
}

type workTri struct {
	a, b, c int
}

// edgeKey is a canonical representation of an edge (smaller index first).
type edgeKey struct{ a, b int }

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Delaunay triangulates points with the Bowyer-Watson algorithm. Points are
// inserted in slice order, so the result is a pure function of the input.
func Delaunay(points []core.Point) *Triangulation {
	n := len(points)
	t := &Triangulation{
		Points:    points,
		Hull:      make([]bool, n),
		Duplicate: make([]bool, n),
	}
	if n < 3 {
		return t
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	deltaMax := math.Max(maxX-minX, maxY-minY)
	if deltaMax == 0 {
		deltaMax = 1
	}
	midX := (minX + maxX) / 2
	midY := (minY + maxY) / 2

	// Super-triangle vertices, large enough that its influence on the hull
	// of the real points is negligible.
	all := make([]core.Point, n+3)
	copy(all, points)
	all[n] = core.Point{X: midX - 100*deltaMax, Y: midY - 100*deltaMax}
	all[n+1] = core.Point{X: midX + 100*deltaMax, Y: midY - 100*deltaMax}
	all[n+2] = core.Point{X: midX, Y: midY + 100*deltaMax}

	tris := []workTri{{a: n, b: n + 1, c: n + 2}}
	seen := make(map[core.Point]struct{}, n)

	for pi := 0; pi < n; pi++ {
		p := all[pi]
		if _, dup := seen[p]; dup {
			t.Duplicate[pi] = true
			continue
		}
		seen[p] = struct{}{}

		bad := make([]bool, len(tris))
		nbad := 0
		for ti, tr := range tris {
			if inCircumcircle(all[tr.a], all[tr.b], all[tr.c], p) {
				bad[ti] = true
				nbad++
			}
		}
		if nbad == 0 {
			// Only reachable through rounding; fall back to the containing triangle.
			for ti, tr := range tris {
				if pointInTriangle(all[tr.a], all[tr.b], all[tr.c], p) {
					bad[ti] = true
					nbad++
					break
				}
			}
		}

		// Cavity boundary: edges that belong to exactly one bad triangle, kept
		// in discovery order.
		type polyEdge struct{ a, b int }
		count := make(map[edgeKey]int, nbad*3)
		edges := make([]polyEdge, 0, nbad*3)
		for ti, tr := range tris {
			if !bad[ti] {
				continue
			}
			for _, e := range [3]polyEdge{{tr.a, tr.b}, {tr.b, tr.c}, {tr.c, tr.a}} {
				count[makeEdgeKey(e.a, e.b)]++
				edges = append(edges, e)
			}
		}

		next := make([]workTri, 0, len(tris)+2)
		for ti, tr := range tris {
			if !bad[ti] {
				next = append(next, tr)
			}
		}
		for _, e := range edges {
			if count[makeEdgeKey(e.a, e.b)] != 1 {
				continue
			}
			next = append(next, ccw(all, e.a, e.b, pi))
		}
		tris = next
	}

	t.Triangles = make([]Triangle, 0, len(tris))
	for _, tr := range tris {
		if tr.a >= n || tr.b >= n || tr.c >= n {
			for _, v := range [3]int{tr.a, tr.b, tr.c} {
				if v < n {
					t.Hull[v] = true
				}
			}
			continue
		}
		t.Triangles = append(t.Triangles, Triangle{A: tr.a, B: tr.b, C: tr.c})
	}
	return t
}

// orientation returns positive if p is left of a->b, negative if right, zero
// if collinear.
func orientation(a, b, p core.Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

func pointInTriangle(a, b, c, p core.Point) bool {
	o1 := orientation(a, b, p)
	o2 := orientation(b, c, p)
	o3 := orientation(c, a, p)
	return (o1 >= 0 && o2 >= 0 && o3 >= 0) || (o1 <= 0 && o2 <= 0 && o3 <= 0)
}

// inCircumcircle reports whether p lies strictly inside the circumcircle of
// triangle (a, b, c), for either winding.
func inCircumcircle(a, b, c, p core.Point) bool {
	ax, ay := a.X-p.X, a.Y-p.Y
	bx, by := b.X-p.X, b.Y-p.Y
	cx, cy := c.X-p.X, c.Y-p.Y

	det := (ax*ax+ay*ay)*(bx*cy-cx*by) -
		(bx*bx+by*by)*(ax*cy-cx*ay) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)

	if orientation(a, b, c) < 0 {
		return det < 0
	}
	return det > 0
}

func ccw(pts []core.Point, a, b, c int) workTri {
	if orientation(pts[a], pts[b], pts[c]) < 0 {
		return workTri{a: a, b: c, c: b}
	}
	return workTri{a: a, b: b, c: c}
}

// circumcenter returns the circumcenter of triangle (a, b, c). ok is false
// when the triangle is degenerate.
func circumcenter(a, b, c core.Point) (cc core.Point, ok bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	const eps = 1e-12
	if math.Abs(d) < eps {
		return core.Point{}, false
	}

	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y

	ux := (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d
	uy := (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d
	return core.Point{X: ux, Y: uy}, true
}
