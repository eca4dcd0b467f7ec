// Package spatial provides the distance queries the overhang processor runs
// against the previous layer.
//
// Boundary answers signed distance and segment crossing queries against the
// outline of the previous layer. CurledLines answers radius queries over
// previous-layer segments that were detected as curling up. Both bin their
// segments into a uniform grid and are safe for concurrent readers once
// built.
package spatial

import (
	"math"
	"slices"

	"github.com/gogpu/toolpath"
)

// Boundary is the outline of a set of expolygons, in millimetres.
type Boundary struct {
	grid  *grid
	areas toolpath.ExPolygons
	boxes []toolpath.BoundingBox
}

// NewBoundary indexes the contours and holes of eps.
func NewBoundary(eps toolpath.ExPolygons) *Boundary {
	var lines []toolpath.Linef
	for _, ep := range eps {
		for _, pg := range ep.Polygons() {
			for _, l := range pg.Lines() {
				lines = append(lines, l.Unscaled())
			}
		}
	}
	b := &Boundary{grid: newGrid(lines), areas: eps}
	for _, ep := range eps {
		b.boxes = append(b.boxes, ep.BoundingBox())
	}
	return b
}

// Empty reports whether the boundary has no segment.
func (b *Boundary) Empty() bool { return b.grid.empty() }

// Lines returns the indexed segments.
func (b *Boundary) Lines() []toolpath.Linef { return b.grid.lines }

// Distance returns the distance from p to the nearest boundary segment.
// An empty boundary is infinitely far.
func (b *Boundary) Distance(p toolpath.Vec2) float64 {
	_, d := b.grid.nearest(p)
	return d
}

// Inside reports whether p lies within the indexed area.
func (b *Boundary) Inside(p toolpath.Vec2) bool {
	sp := p.Scaled()
	for i, ep := range b.areas {
		if b.boxes[i].Contains(sp) && ep.Contains(sp) {
			return true
		}
	}
	return false
}

// SignedDistance returns the distance to the boundary, negative inside the
// area.
func (b *Boundary) SignedDistance(p toolpath.Vec2) float64 {
	d := b.Distance(p)
	if b.Inside(p) {
		return -d
	}
	return d
}

// Intersections returns the points where l crosses the boundary, ordered
// from l.A to l.B.
func (b *Boundary) Intersections(l toolpath.Linef) []toolpath.Vec2 {
	lo := toolpath.V2(math.Min(l.A.X, l.B.X), math.Min(l.A.Y, l.B.Y))
	hi := toolpath.V2(math.Max(l.A.X, l.B.X), math.Max(l.A.Y, l.B.Y))
	type hit struct {
		p toolpath.Vec2
		t float64
	}
	var hits []hit
	for _, idx := range b.grid.candidates(lo, hi) {
		if p, t, ok := l.Intersection(b.grid.lines[idx]); ok {
			hits = append(hits, hit{p, t})
		}
	}
	slices.SortFunc(hits, func(a, b hit) int {
		switch {
		case a.t < b.t:
			return -1
		case a.t > b.t:
			return 1
		}
		return 0
	})
	out := make([]toolpath.Vec2, 0, len(hits))
	for i, h := range hits {
		// A crossing through a vertex is reported by both adjacent segments.
		if i > 0 && h.p.Approx(hits[i-1].p, 1e-9) {
			continue
		}
		out = append(out, h.p)
	}
	return out
}
