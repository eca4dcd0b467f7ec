package perimeter

import (
	"slices"

	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/extrusion"
)

// Traverse serializes the forest into one collection per island, starting
// the search for the first loop at entry. Island collections keep their
// order and direction; the returned collection may be sorted.
func (g *Generator) Traverse(h *Hierarchy, entry toolpath.Point) *extrusion.Collection {
	out := &extrusion.Collection{CanSort: true}
	pos := entry
	for _, root := range g.chain(h, h.Roots(), pos) {
		var entities []extrusion.Entity
		if g.params.Config.PerimeterLoop {
			entities = g.traverseJoined(h, root, pos)
		} else {
			entities = g.traverseIndependent(h, []NodeID{root}, &pos)
		}
		if len(entities) == 0 {
			continue
		}
		if g.params.Config.ExternalPerimetersFirst {
			slices.Reverse(entities)
		}
		if g.params.Config.PerimeterHolesFirst {
			holesFirst(entities)
		}
		island := &extrusion.Collection{Entities: entities}
		pos = island.LastPoint()
		out.Append(island)
	}
	return out
}

// traverseIndependent emits each loop on its own: inner contours before
// their parent, holes before their inner loops.
func (g *Generator) traverseIndependent(h *Hierarchy, ids []NodeID, pos *toolpath.Point) []extrusion.Entity {
	var out []extrusion.Entity
	for _, id := range g.chain(h, ids, *pos) {
		n := h.Node(id)
		loop := g.loop(n, nil)
		if n.IsContour {
			out = append(out, g.traverseIndependent(h, n.Children, pos)...)
			out = append(out, loop)
		} else {
			out = append(out, loop)
			*pos = loop.LastPoint()
			out = append(out, g.traverseIndependent(h, n.Children, pos)...)
		}
		*pos = out[len(out)-1].LastPoint()
	}
	return out
}

// orientedRing returns the loop polygon wound as printed: contours
// counter-clockwise, holes clockwise.
func orientedRing(n *Node) toolpath.Polygon {
	pg := n.Polygon.Clone()
	if n.IsContour {
		pg.MakeCounterClockwise()
	} else {
		pg.MakeClockwise()
	}
	return pg
}

// closedPoints returns the ring as a closed point list starting at the
// vertex nearest to start, or at the first vertex when start is nil.
func closedPoints(pg toolpath.Polygon, start *toolpath.Point) []toolpath.Point {
	first := 0
	if start != nil {
		first = toolpath.Polyline{Points: pg.Points}.ClosestPointIndex(*start)
	}
	pts := make([]toolpath.Point, 0, pg.Len()+1)
	pts = append(pts, pg.Points[first:]...)
	pts = append(pts, pg.Points[:first]...)
	return append(pts, pts[0])
}

// loop builds the extrusion loop of n. paths overrides the loop geometry
// when the loop was joined with its children.
func (g *Generator) loop(n *Node, paths []*extrusion.Path) *extrusion.Loop {
	if paths == nil {
		paths = g.extrusionPaths(closedPoints(orientedRing(n), nil), n.IsExternal())
	}
	l := &extrusion.Loop{
		Paths:         paths,
		Role:          loopRole(n),
		SteepOverhang: n.SteepOverhang,
		Fuzzify:       n.Fuzzify,
	}
	if n.SteepOverhang && g.params.Config.OverhangsReverse && g.params.LayerID%2 == 1 {
		l.Reverse()
	}
	return l
}

func loopRole(n *Node) extrusion.LoopRole {
	switch {
	case !n.IsContour:
		return extrusion.LoopHole
	case n.IsInternalContour():
		return extrusion.LoopInternal
	}
	return extrusion.LoopDefault
}

// chain orders sibling loops by greedy nearest neighbour from pos.
func (g *Generator) chain(h *Hierarchy, ids []NodeID, pos toolpath.Point) []NodeID {
	if len(ids) < 2 {
		return ids
	}
	left := slices.Clone(ids)
	out := make([]NodeID, 0, len(ids))
	for len(left) > 0 {
		best, bestDist := 0, -1.0
		for i, id := range left {
			d := pos.DistanceSq(h.Node(id).Polygon.FirstPoint())
			if bestDist < 0 || d < bestDist {
				best, bestDist = i, d
			}
		}
		id := left[best]
		out = append(out, id)
		left = slices.Delete(left, best, best+1)
		pos = h.Node(id).Polygon.FirstPoint()
	}
	return out
}

// holesFirst moves hole loops before the other entities, keeping the order
// within each group.
func holesFirst(entities []extrusion.Entity) {
	slices.SortStableFunc(entities, func(a, b extrusion.Entity) int {
		return holeRank(a) - holeRank(b)
	})
}

func holeRank(e extrusion.Entity) int {
	if l, ok := e.(*extrusion.Loop); ok && l.Role == extrusion.LoopHole {
		return 0
	}
	return 1
}
