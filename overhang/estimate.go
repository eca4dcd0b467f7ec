package overhang

import (
	"math"

	"github.com/gogpu/toolpath"
)

// point is a path vertex with its distance to the supported area, in mm.
type point struct {
	pos  toolpath.Vec2
	dist float64
}

// estimate samples the distance to the previous layer along pts. Points
// are added where the path crosses the previous layer boundary, around
// the boundary on long segments, and so that no segment is longer than
// maxLen.
func (p *Processor) estimate(pts []toolpath.Point, width, maxLen float64) []point {
	if len(pts) == 0 {
		return nil
	}
	offset := 0.5 * width
	at := func(v toolpath.Vec2) point {
		return point{pos: v, dist: p.prev.SignedDistance(v)}
	}
	out := make([]point, 0, len(pts)+len(pts)/2)
	out = append(out, at(pts[0].Unscaled()))
	for _, sp := range pts[1:] {
		next := at(sp.Unscaled())
		prev := out[len(out)-1]
		if (prev.dist > crossEpsilon) != (next.dist > crossEpsilon) {
			for _, x := range p.prev.Intersections(toolpath.Linef{A: prev.pos, B: next.pos}) {
				out = append(out, point{pos: x})
			}
		}
		out = append(out, next)
	}

	out = refine(out, offset, at)
	if maxLen > 0 {
		out = subdivide(out, maxLen, at)
	}
	return out
}

// refine adds samples on long segments with an end near the boundary, one
// on each side at a few half-widths from the boundary.
func refine(pts []point, offset float64, at func(toolpath.Vec2) point) []point {
	near := func(d float64) bool { return d > -offset && d < offset+refineReach }
	out := make([]point, 0, len(pts)*2)
	out = append(out, pts[0])
	for i := 0; i+1 < len(pts); i++ {
		cur, next := pts[i], pts[i+1]
		if near(cur.dist) || near(next.dist) {
			if l := cur.pos.Distance(next.pos); l > refineLength {
				a0 := clamp01((cur.dist + 3*offset) / l)
				a1 := clamp01(1 - (next.dist+3*offset)/l)
				t0, t1 := math.Min(a0, a1), math.Max(a0, a1)
				if t0 < 1 {
					out = append(out, at(cur.pos.Lerp(next.pos, t0)))
				}
				if t1 > 0 {
					out = append(out, at(cur.pos.Lerp(next.pos, t1)))
				}
			}
		}
		out = append(out, next)
	}
	return out
}

// subdivide splits segments longer than maxLen into equal parts.
func subdivide(pts []point, maxLen float64, at func(toolpath.Vec2) point) []point {
	out := make([]point, 0, len(pts)*2)
	for i := 0; i+1 < len(pts); i++ {
		cur, next := pts[i], pts[i+1]
		out = append(out, cur)
		l := cur.pos.Distance(next.pos)
		if l <= maxLen {
			continue
		}
		n := int(math.Ceil(l / maxLen))
		for j := 1; j < n; j++ {
			out = append(out, at(cur.pos.Lerp(next.pos, float64(j)/float64(n))))
		}
	}
	return append(out, pts[len(pts)-1])
}

func clamp01(v float64) float64 { return math.Min(1, math.Max(0, v)) }
