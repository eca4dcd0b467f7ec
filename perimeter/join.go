package perimeter

import (
	"cmp"
	"slices"

	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/extrusion"
)

// segment is one path of a joined loop. own marks paths running along the
// loop's own ring, the only places where children may be spliced in.
type segment struct {
	path *extrusion.Path
	own  bool
}

type joinedChain []segment

func (c joinedChain) paths() []*extrusion.Path {
	out := make([]*extrusion.Path, len(c))
	for i, s := range c {
		out[i] = s.path
	}
	return out
}

func (c joinedChain) length() float64 {
	var l float64
	for _, s := range c {
		l += s.path.Polyline.Length()
	}
	return l
}

// traverseJoined emits root with as many descendants as possible spliced
// into a single loop. Descendants that cannot be joined follow the inner
// first order of independent traversal.
func (g *Generator) traverseJoined(h *Hierarchy, root NodeID, entry toolpath.Point) []extrusion.Entity {
	ch, loose := g.join(h, root, entry)
	n := h.Node(root)
	loop := g.loop(n, ch.paths())
	if n.IsContour {
		return append(loose, loop)
	}
	return append([]extrusion.Entity{loop}, loose...)
}

// join builds the chain of node id starting near entry and splices its
// children into it. Children whose connectors would exceed the join bound
// are returned as separate loops.
func (g *Generator) join(h *Hierarchy, id NodeID, entry toolpath.Point) (joinedChain, []extrusion.Entity) {
	n := h.Node(id)
	var ch joinedChain
	for _, p := range g.extrusionPaths(closedPoints(orientedRing(n), &entry), n.IsExternal()) {
		ch = append(ch, segment{path: p, own: true})
	}
	start := ch[0].path.FirstPoint()
	var loose []extrusion.Entity
	for _, cid := range g.chain(h, n.Children, start) {
		child, childLoose := g.join(h, cid, start)
		if !g.splice(&ch, child, start) {
			c := h.Node(cid)
			toolpath.Logger().Warn("perimeter: loop join rejected",
				"layer", g.params.LayerID, "depth", c.Depth, "contour", c.IsContour)
			loose = append(loose, g.loop(c, child.paths()))
		}
		loose = append(loose, childLoose...)
	}
	return ch, loose
}

type cut struct {
	seg     int            // index of the parent segment
	edge    int            // edge of the parent path holding outer
	outer   toolpath.Point // cut point on the parent
	cseg    int            // index of the child segment
	cvertex int            // vertex of the child path holding inner
	inner   toolpath.Point // cut point on the child
	dist    float64
}

// splice inserts the closed chain child into the closed chain parent. The
// parent is cut at the point closest to the child, the child is run in the
// opposite direction and both connectors must be shorter than the join
// bound. Ties within the tolerance prefer the cut nearest to entry.
func (g *Generator) splice(parent *joinedChain, child joinedChain, entry toolpath.Point) bool {
	distCut := float64(g.params.Perimeter.ScaledWidth())
	maxDist := distCut * g.opts.joinMaxDistanceFactor
	if child.length() <= 2*distCut {
		return false
	}
	for _, c := range g.cuts(*parent, child, entry, distCut, maxDist) {
		if out, ok := g.cutAt(*parent, child, c, distCut, maxDist); ok {
			*parent = out
			return true
		}
	}
	return false
}

// cutAt builds the spliced chain for one cut. It fails without touching
// either chain when the exit connector is too long.
func (g *Generator) cutAt(parent, child joinedChain, c cut, distCut, maxDist float64) (joinedChain, bool) {
	pp := parent[c.seg].path
	pts := pp.Polyline.Points
	after, next := walk(pts, c.edge, c.outer, distCut)

	inner := cloneChain(rotateChain(child, c.cseg, c.cvertex))
	reverseChain(inner)
	clipChainEnd(&inner, distCut)
	if len(inner) == 0 {
		return nil, false
	}
	innerEnd := inner[len(inner)-1].path.LastPoint()
	if innerEnd.DistanceTo(after) > maxDist {
		return nil, false
	}

	head := append(slices.Clone(pts[:c.edge+1]), c.outer)
	tail := append([]toolpath.Point{after}, pts[next:]...)
	conn := g.attributes(false)
	out := make(joinedChain, 0, len(parent)+len(inner)+4)
	out = append(out, parent[:c.seg]...)
	out = appendPath(out, head, pp.Attributes, true)
	out = appendPath(out, []toolpath.Point{c.outer, c.inner}, conn, false)
	for _, s := range inner {
		out = append(out, segment{path: s.path})
	}
	out = appendPath(out, []toolpath.Point{innerEnd, after}, conn, false)
	out = appendPath(out, tail, pp.Attributes, true)
	out = append(out, parent[c.seg+1:]...)
	return out, true
}

// cuts lists the connectors from child vertices to parent edges no longer
// than maxDist that leave room for the exit cut. Candidates within the tie
// tolerance of the shortest come first, nearest to entry first; the rest
// follow by length.
func (g *Generator) cuts(parent, child joinedChain, entry toolpath.Point, distCut, maxDist float64) []cut {
	var out []cut
	for si, s := range parent {
		if !s.own {
			continue
		}
		pts := s.path.Polyline.Points
		remaining := remainingLengths(pts)
		for ci, cs := range child {
			if !cs.own {
				continue
			}
			cpts := cs.path.Polyline.Points
			for vi := 0; vi+1 < len(cpts); vi++ {
				v := cpts[vi]
				for e := 0; e+1 < len(pts); e++ {
					o := toolpath.Line{A: pts[e], B: pts[e+1]}.Projection(v)
					d := o.DistanceTo(v)
					if d > maxDist {
						continue
					}
					if remaining[e+1]+o.DistanceTo(pts[e+1]) <= distCut+float64(toolpath.ScaledEpsilon) {
						continue
					}
					out = append(out, cut{seg: si, edge: e, outer: o, cseg: ci, cvertex: vi, inner: v, dist: d})
				}
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	best := slices.MinFunc(out, func(a, b cut) int { return cmp.Compare(a.dist, b.dist) }).dist
	limit := best + distCut*g.opts.tieFraction
	slices.SortStableFunc(out, func(a, b cut) int {
		ta, tb := a.dist <= limit, b.dist <= limit
		switch {
		case ta && tb:
			return cmp.Compare(a.outer.DistanceSq(entry), b.outer.DistanceSq(entry))
		case ta:
			return -1
		case tb:
			return 1
		}
		return cmp.Compare(a.dist, b.dist)
	})
	return out
}

// remainingLengths returns, per vertex, the path length left after it.
func remainingLengths(pts []toolpath.Point) []float64 {
	out := make([]float64, len(pts))
	for i := len(pts) - 2; i >= 0; i-- {
		out[i] = out[i+1] + pts[i].DistanceTo(pts[i+1])
	}
	return out
}

// walk advances dist along pts from p on edge e. It returns the reached
// point and the index of the first vertex after it.
func walk(pts []toolpath.Point, e int, p toolpath.Point, dist float64) (toolpath.Point, int) {
	cur := p
	for i := e + 1; i < len(pts); i++ {
		d := cur.DistanceTo(pts[i])
		if d >= dist {
			q := cur.Lerp(pts[i], dist/d)
			if q == pts[i] {
				return q, i + 1
			}
			return q, i
		}
		dist -= d
		cur = pts[i]
	}
	return pts[len(pts)-1], len(pts)
}

// rotateChain reopens a closed chain at vertex v of segment s.
func rotateChain(c joinedChain, s, v int) joinedChain {
	p := c[s].path
	pts := p.Polyline.Points
	var out joinedChain
	out = appendPath(out, slices.Clone(pts[v:]), p.Attributes, c[s].own)
	out = append(out, c[s+1:]...)
	out = append(out, c[:s]...)
	return appendPath(out, slices.Clone(pts[:v+1]), p.Attributes, c[s].own)
}

// cloneChain deep copies the paths of c so that it can be edited.
func cloneChain(c joinedChain) joinedChain {
	out := make(joinedChain, len(c))
	for i, s := range c {
		out[i] = segment{path: s.path.Clone(), own: s.own}
	}
	return out
}

func reverseChain(c joinedChain) {
	slices.Reverse(c)
	for _, s := range c {
		s.path.Reverse()
	}
}

// clipChainEnd removes dist of length from the end of the chain.
func clipChainEnd(c *joinedChain, dist float64) {
	for dist > 0 && len(*c) > 0 {
		last := (*c)[len(*c)-1].path
		l := last.Polyline.Length()
		if l > dist {
			last.Polyline.ClipEnd(dist)
			return
		}
		dist -= l
		*c = (*c)[:len(*c)-1]
	}
}

// appendPath adds a path over pts unless it is degenerate. Near duplicate
// points left by the cut are dropped; both ends are kept exactly.
func appendPath(c joinedChain, pts []toolpath.Point, attrs extrusion.Attributes, own bool) joinedChain {
	pl := toolpath.Polyline{Points: slices.Compact(pts)}
	pl.Simplify()
	if len(pl.Points) < 2 {
		return c
	}
	return append(c, segment{path: extrusion.NewPath(pl.Points, attrs), own: own})
}
