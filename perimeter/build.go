package perimeter

import (
	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/config"
)

// Build creates the loop forest of ep by successive inward offsets: the
// external perimeter sits half an external width inside the slice and each
// further loop one spacing deeper. It also returns the area left inside the
// innermost loops.
func (g *Generator) Build(ep toolpath.ExPolygon, extraPerimeters int) (*Hierarchy, toolpath.ExPolygons) {
	p := g.params
	levels := p.Perimeters + extraPerimeters
	h := &Hierarchy{}
	if levels <= 0 {
		return h, toolpath.ExPolygons{ep}
	}
	spacing := p.PerimeterSpacing()
	contours := make([][]NodeID, levels)
	holes := make([][]NodeID, levels)
	last := toolpath.ExPolygons{ep}
	built := 0
	for i := range levels {
		var offsets toolpath.ExPolygons
		if i == 0 {
			offsets = toolpath.OffsetEx(last, -p.ExternalPerimeter.ScaledWidth()/2)
		} else {
			d := spacing
			if i == 1 {
				d = p.ExternalSpacing()
			}
			// Shrinking past the target and growing back removes parts too
			// thin to hold a loop.
			shrink := d + spacing/2
			offsets = toolpath.OffsetEx(toolpath.OffsetEx(last, -shrink), spacing/2)
		}
		if len(offsets) == 0 {
			break
		}
		for _, o := range offsets {
			contours[i] = append(contours[i], h.Add(Node{Polygon: o.Contour, IsContour: true, Depth: i}))
			for _, hole := range o.Holes {
				holes[i] = append(holes[i], h.Add(Node{Polygon: hole, Depth: i}))
			}
		}
		last = offsets
		built++
	}
	h.nest(contours[:built], holes[:built])
	g.markNodes(h)

	var fill toolpath.ExPolygons
	if built > 0 {
		inner := spacing
		if built == 1 {
			inner = p.ExternalSpacing()
		}
		fill = toolpath.OffsetEx(last, -inner/2)
	}
	return h, fill
}

// ExtrusionLine is a closed loop produced by a variable-width perimeter
// strategy.
type ExtrusionLine struct {
	Polygon   toolpath.Polygon
	Depth     int
	IsContour bool
}

// FromExtrusionLines nests externally produced loops into a Hierarchy of
// the same shape as Build produces.
func (g *Generator) FromExtrusionLines(lines []ExtrusionLine) *Hierarchy {
	h := &Hierarchy{}
	levels := 0
	for _, l := range lines {
		levels = max(levels, l.Depth+1)
	}
	contours := make([][]NodeID, levels)
	holes := make([][]NodeID, levels)
	for _, l := range lines {
		if l.Polygon.Empty() || l.Depth < 0 {
			continue
		}
		pg := l.Polygon.Clone()
		if l.IsContour {
			pg.MakeCounterClockwise()
			contours[l.Depth] = append(contours[l.Depth], h.Add(Node{Polygon: pg, IsContour: true, Depth: l.Depth}))
		} else {
			pg.MakeClockwise()
			holes[l.Depth] = append(holes[l.Depth], h.Add(Node{Polygon: pg, Depth: l.Depth}))
		}
	}
	h.nest(contours, holes)
	g.markNodes(h)
	return h
}

// markNodes sets the steep overhang and fuzzify flags.
func (g *Generator) markNodes(h *Hierarchy) {
	mode := g.params.Config.FuzzySkin
	for i := range h.Len() {
		n := h.Node(NodeID(i)) //nolint:gosec // bounded by Len
		switch mode {
		case config.FuzzySkinExternal:
			n.Fuzzify = n.IsExternal() && n.IsContour
		case config.FuzzySkinAll:
			n.Fuzzify = n.IsExternal()
		}
		n.SteepOverhang = g.isSteep(n.Polygon)
	}
}

// isSteep reports whether part of pg lies beyond the lower slices grown by
// one external perimeter width.
func (g *Generator) isSteep(pg toolpath.Polygon) bool {
	if g.steep == nil {
		return false
	}
	for _, l := range pg.Lines() {
		lf := l.Unscaled()
		if !g.steep.Inside(lf.A) || len(g.steep.Intersections(lf)) > 0 {
			return true
		}
	}
	return false
}
