package voronoi

import (
	"math"
	"sort"

	"mapgen/internal/core"
)

// Unbounded marks a region vertex at infinity. Regions containing it are
// never rasterized nor used for relaxation.
const Unbounded = -1

// GuardCount is the number of guard points appended by Build.
const GuardCount = 4

// Diagram is a Voronoi tessellation over a point set plus four guard points.
//
// Region ids are 1-based: Regions[i+1] belongs to Points[i], and Regions[0]
// is always empty so that id 0 can mean "background" in a CellGrid.
type Diagram struct {
	Size int
	// Points holds the caller's points followed by the guard points.
	Points []core.Point
	// Vertices holds one circumcenter per Delaunay triangle.
	Vertices []core.Point
	// Regions lists, per region id, the vertex indices of its polygon in
	// counter-clockwise order.
	Regions [][]int
}

// Build appends four guard points far outside [0, size] and tessellates the
// combined set, so that every caller point gets a bounded region.
func Build(points []core.Point, size int) (*Diagram, error) {
	if size <= 0 {
		return nil, core.Preconditionf("voronoi: size must be positive, got %d", size)
	}
	if len(points) < 4 {
		return nil, core.Preconditionf("voronoi: need at least 4 points, got %d", len(points))
	}

	s := float64(size)
	all := make([]core.Point, 0, len(points)+GuardCount)
	all = append(all, points...)
	all = append(all,
		core.Point{X: -s, Y: -s},
		core.Point{X: -s, Y: 2 * s},
		core.Point{X: 2 * s, Y: -s},
		core.Point{X: 2 * s, Y: 2 * s},
	)

	tri := Delaunay(all)
	d := &Diagram{
		Size:     size,
		Points:   all,
		Vertices: make([]core.Point, len(tri.Triangles)),
		Regions:  make([][]int, len(all)+1),
	}

	incident := make([][]int, len(all))
	for ti, t := range tri.Triangles {
		a, b, c := all[t.A], all[t.B], all[t.C]
		cc, ok := circumcenter(a, b, c)
		if !ok {
			cc = core.Point{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
		}
		d.Vertices[ti] = cc
		incident[t.A] = append(incident[t.A], ti)
		incident[t.B] = append(incident[t.B], ti)
		incident[t.C] = append(incident[t.C], ti)
	}

	eps := 1e-9 * s
	for pi := range all {
		if tri.Duplicate[pi] || len(incident[pi]) == 0 {
			continue
		}
		ring := sortAround(all[pi], incident[pi], d.Vertices)
		ring = dedupeRing(ring, d.Vertices, eps)
		if tri.Hull[pi] {
			ring = append(ring, Unbounded)
		}
		d.Regions[pi+1] = ring
	}
	return d, nil
}

// RegionOf returns the region id of point i.
func RegionOf(i int) int { return i + 1 }

// Bounded reports whether region id is non-empty and has no vertex at
// infinity.
func (d *Diagram) Bounded(id int) bool {
	if id <= 0 || id >= len(d.Regions) {
		return false
	}
	r := d.Regions[id]
	if len(r) == 0 {
		return false
	}
	for _, v := range r {
		if v == Unbounded {
			return false
		}
	}
	return true
}

// Polygon returns the vertices of a bounded region, or nil.
func (d *Diagram) Polygon(id int) []core.Point {
	if !d.Bounded(id) {
		return nil
	}
	poly := make([]core.Point, len(d.Regions[id]))
	for i, v := range d.Regions[id] {
		poly[i] = d.Vertices[v]
	}
	return poly
}

// Centroid returns the unweighted mean of a bounded region's vertices.
func (d *Diagram) Centroid(id int) (core.Point, bool) {
	poly := d.Polygon(id)
	if len(poly) == 0 {
		return core.Point{}, false
	}
	var c core.Point
	for _, p := range poly {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(poly))), true
}

func sortAround(center core.Point, tris []int, verts []core.Point) []int {
	type item struct {
		v int
		a float64
	}
	items := make([]item, len(tris))
	for i, t := range tris {
		dv := verts[t].Sub(center)
		items[i] = item{v: t, a: math.Atan2(dv.Y, dv.X)}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].a < items[j].a })
	out := make([]int, len(items))
	for i := range items {
		out[i] = items[i].v
	}
	return out
}

// dedupeRing merges consecutive vertices closer than eps, which arise when
// four or more generators are cocircular.
func dedupeRing(ring []int, verts []core.Point, eps float64) []int {
	if len(ring) < 2 {
		return ring
	}
	out := ring[:1]
	for _, v := range ring[1:] {
		if verts[v].Dist(verts[out[len(out)-1]]) <= eps {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && verts[out[len(out)-1]].Dist(verts[out[0]]) <= eps {
		out = out[:len(out)-1]
	}
	return out
}
