// Package overhang modulates perimeters printed over the previous layer's
// edge.
//
// A Processor splits every path carrying overhang attributes into runs of
// homogeneous distance to the previous layer and proximity to curled
// lines. Speed and ApplyFlow then turn those attributes into a speed ratio,
// a fan speed and a blended bridging flow.
package overhang

import (
	"fmt"
	"math"

	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/extrusion"
	"github.com/gogpu/toolpath/spatial"
)

// DistanceField answers distance queries against the area the previous
// layer supports. A path point at distance 0 or less is fully supported;
// any allowance for the extrusion width is part of the field. An empty
// field reports +Inf.
type DistanceField interface {
	// SignedDistance is negative inside the supported area.
	SignedDistance(p toolpath.Vec2) float64
	// Intersections returns the boundary crossings of l, from l.A to l.B.
	Intersections(l toolpath.Linef) []toolpath.Vec2
}

// CurledIndex answers radius queries over curled previous-layer segments.
type CurledIndex interface {
	LinesInRadius(p toolpath.Vec2, radius float64) []spatial.CurledLine
}

// Processor splits paths against one previous layer. It only reads its
// indices and may be shared by concurrent callers.
type Processor struct {
	prev   DistanceField
	curled CurledIndex
	nozzle float64
	opts   options
}

// NewProcessor returns a processor for the layer above prev. curled may be
// nil when no curled lines are known.
func NewProcessor(prev DistanceField, curled CurledIndex, nozzle float64, opts ...Option) *Processor {
	p := &Processor{prev: prev, curled: curled, nozzle: nozzle, opts: defaultOptions()}
	for _, o := range opts {
		o(&p.opts)
	}
	return p
}

type segmentProps struct {
	dist float64
	curl float64
}

type split struct {
	pts []toolpath.Point
	oh  extrusion.OverhangAttributes
}

// SplitPath cuts path where its overhang distance or curled line proximity
// changes. Paths without overhang attributes, or with both full overhang
// speed and flow, are returned as is. The outputs chain exactly from the
// first to the last point of path and no longer carry the bridge role.
func (p *Processor) SplitPath(path *extrusion.Path) []*extrusion.Path {
	base, ok := path.Attributes.Overhang()
	if !ok || base.IsFull() {
		return []*extrusion.Path{path}
	}
	attrs := path.Attributes
	pts := p.estimate(path.Polyline.Points, attrs.Width, p.nozzle)
	if len(pts) < 2 {
		return []*extrusion.Path{path}
	}
	for i := range pts {
		if pts[i].dist < crossEpsilon {
			pts[i].dist = 0
		}
	}
	props := make([]segmentProps, len(pts))
	for i, cur := range pts {
		next := pts[min(i+1, len(pts)-1)]
		props[i] = segmentProps{
			dist: math.Max(cur.dist, next.dist),
			curl: p.curlProximity(cur.pos, next.pos, attrs.Width, attrs.Height),
		}
	}

	runAttrs := func(s segmentProps) extrusion.OverhangAttributes {
		oh := base
		oh.StartDistance, oh.EndDistance = s.dist, s.dist
		oh.ProximityToCurledLines = s.curl
		return oh
	}
	distTol := p.opts.distanceTolerance * p.nozzle
	runs := []split{{pts: []toolpath.Point{pts[0].pos.Scaled()}, oh: runAttrs(props[0])}}
	start := 0
	for i := 1; i < len(pts); i++ {
		cur := &runs[len(runs)-1]
		sp := pts[i].pos.Scaled()
		if !cur.pts[len(cur.pts)-1].CoincidesWithEpsilon(sp) {
			cur.pts = append(cur.pts, sp)
			cur.oh.EndDistance = pts[i].dist
		}
		if within(props[start].dist, props[i].dist, distTol) &&
			within(props[start].curl, props[i].curl, p.opts.curlTolerance) {
			continue
		}
		if i+1 == len(pts) {
			break
		}
		start = i
		if len(cur.pts) > 1 {
			runs = append(runs, split{pts: []toolpath.Point{cur.pts[len(cur.pts)-1]}, oh: runAttrs(props[i])})
		} else {
			cur.oh = runAttrs(props[i])
		}
	}
	if len(runs[len(runs)-1].pts) == 1 {
		runs = runs[:len(runs)-1]
	}
	if len(runs) == 0 {
		return []*extrusion.Path{path}
	}
	runs[0].pts[0] = path.FirstPoint()
	last := runs[len(runs)-1].pts
	last[len(last)-1] = path.LastPoint()

	role := attrs.Role.WithoutBridge()
	out := make([]*extrusion.Path, len(runs))
	for i, r := range runs {
		out[i] = extrusion.NewPath(r.pts, attrs.WithRole(role).WithOverhang(r.oh))
	}
	return out
}

// within reports whether b is less than tol away from a. Equal values,
// infinite ones included, are always within.
func within(a, b, tol float64) bool {
	return a == b || math.Abs(a-b) < tol
}

// curlProximity rates how close the segment a-b runs to curled lines, from
// 0 (none near) to 1.
func (p *Processor) curlProximity(a, b toolpath.Vec2, width, height float64) float64 {
	if p.curled == nil || height <= 0 {
		return 0
	}
	limit := p.opts.curlRadiusFactor * width
	mid := a.Lerp(b, 0.5)
	lines := p.curled.LinesInRadius(mid, limit)
	if len(lines) == 0 {
		return 0
	}
	if l := a.Distance(b); l > longSegment {
		// A long segment only slows down when curled lines run along a
		// good part of it.
		dir := b.Sub(a).Div(l)
		side := dir.Perp().Mul(limit)
		band := []toolpath.Vec2{a.Add(side), b.Add(side), b.Sub(side), a.Sub(side)}
		var covered float64
		for _, cl := range lines {
			if in, ok := toolpath.ClipLineConvex(cl.Linef, band); ok {
				covered += math.Abs(dir.Dot(in.B.Sub(in.A)))
			}
		}
		if covered < bandAcceptance*l {
			return 0
		}
	}
	var prox float64
	for _, cl := range lines {
		f := 1 - cl.DistanceTo(mid)/limit
		prox = math.Max(prox, f*f*cl.CurledHeight/(height*curlHeightFactor))
	}
	return clamp01(prox)
}

// SplitCollection splits every path of the tree under c. Collections,
// loops and multipaths keep their structure and flags; only their paths
// are replaced.
func (p *Processor) SplitCollection(c *extrusion.Collection) (*extrusion.Collection, error) {
	out := &extrusion.Collection{CanSort: c.CanSort, CanReverse: c.CanReverse}
	for _, e := range c.Entities {
		switch e := e.(type) {
		case *extrusion.Collection:
			sub, err := p.SplitCollection(e)
			if err != nil {
				return nil, err
			}
			out.Append(sub)
		case *extrusion.Loop:
			out.Append(&extrusion.Loop{
				Paths:         p.splitPaths(e.Paths),
				Role:          e.Role,
				SteepOverhang: e.SteepOverhang,
				Fuzzify:       e.Fuzzify,
			})
		case *extrusion.MultiPath:
			out.Append(&extrusion.MultiPath{Paths: p.splitPaths(e.Paths)})
		case *extrusion.Path:
			for _, sp := range p.SplitPath(e) {
				out.Append(sp)
			}
		default:
			return nil, fmt.Errorf("overhang: %w: %T", extrusion.ErrUnknownEntity, e)
		}
	}
	return out, nil
}

func (p *Processor) splitPaths(paths []*extrusion.Path) []*extrusion.Path {
	out := make([]*extrusion.Path, 0, len(paths))
	for _, path := range paths {
		out = append(out, p.SplitPath(path)...)
	}
	return out
}
