package perimeter

import (
	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/extrusion"
)

// attributes returns the flow of a regular loop at the given depth.
func (g *Generator) attributes(external bool) extrusion.Attributes {
	f := g.params.Perimeter
	role := extrusion.RolePerimeter
	if external {
		f = g.params.ExternalPerimeter
		role = extrusion.RoleExternalPerimeter
	}
	return extrusion.NewAttributes(role, f.MM3PerMM(), f.Width, f.Height)
}

type run struct {
	supported bool
	pts       []toolpath.Point
}

// extrusionPaths converts a polyline into paths, splitting it where it
// leaves the supported area. A closed polyline (first point equal to the
// last) stays closed and starts at a split point when there is one.
func (g *Generator) extrusionPaths(pts []toolpath.Point, external bool) []*extrusion.Path {
	base := g.attributes(external)
	if g.support == nil {
		return []*extrusion.Path{extrusion.NewPath(pts, base)}
	}
	closed := len(pts) > 2 && pts[0] == pts[len(pts)-1]
	runs := g.classify(pts)
	if closed && len(runs) > 1 && runs[0].supported == runs[len(runs)-1].supported {
		last := runs[len(runs)-1]
		runs[0].pts = append(last.pts, runs[0].pts[1:]...)
		runs = runs[:len(runs)-1]
	}

	dynamic := g.params.dynamicOverhangs()
	ow := g.params.OverhangsWidth()
	out := make([]*extrusion.Path, 0, len(runs))
	for _, r := range runs {
		attrs := base
		switch {
		case !r.supported:
			f := g.params.Overhang
			attrs = extrusion.NewAttributes(base.Role.WithBridge(), f.MM3PerMM(), f.Width, f.Height).
				WithOverhang(extrusion.OverhangAttributes{
					StartDistance:     ow,
					EndDistance:       ow,
					FullOverhangSpeed: true,
					FullOverhangFlow:  true,
				})
		case dynamic:
			attrs = base.WithOverhang(extrusion.OverhangAttributes{})
		}
		out = append(out, extrusion.NewPath(r.pts, attrs))
	}
	return out
}

// classify cuts pts at every crossing of the support boundary and groups
// the pieces into supported and unsupported runs.
func (g *Generator) classify(pts []toolpath.Point) []run {
	var runs []run
	add := func(a, b toolpath.Point) {
		if a.CoincidesWithEpsilon(b) && len(runs) > 0 {
			// Too short to classify: extend the current run.
			cur := &runs[len(runs)-1]
			cur.pts[len(cur.pts)-1] = b
			return
		}
		mid := a.Unscaled().Lerp(b.Unscaled(), 0.5)
		sup := g.support.Inside(mid)
		if len(runs) == 0 || runs[len(runs)-1].supported != sup {
			runs = append(runs, run{supported: sup, pts: []toolpath.Point{a}})
		}
		cur := &runs[len(runs)-1]
		cur.pts = append(cur.pts, b)
	}
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		prev := a
		for _, x := range g.support.Intersections(toolpath.Linef{A: a.Unscaled(), B: b.Unscaled()}) {
			sx := x.Scaled()
			if sx.CoincidesWithEpsilon(prev) || sx.CoincidesWithEpsilon(b) {
				continue
			}
			add(prev, sx)
			prev = sx
		}
		add(prev, b)
	}
	return runs
}
