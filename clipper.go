package toolpath

import (
	clipper "github.com/ctessum/go.clipper"
)

// Polygon boolean operations and offsetting, delegated to the Clipper port.
// All operations use the non-zero fill rule and return contours
// counter-clockwise and holes clockwise.

// miterLimit matches the join behaviour expected by perimeter offsets.
const miterLimit = 3

func toPath(pg Polygon) clipper.Path {
	path := make(clipper.Path, len(pg.Points))
	for i, p := range pg.Points {
		path[i] = &clipper.IntPoint{X: clipper.CInt(p.X), Y: clipper.CInt(p.Y)}
	}
	return path
}

func toPaths(pp Polygons) clipper.Paths {
	paths := make(clipper.Paths, 0, len(pp))
	for _, pg := range pp {
		if len(pg.Points) >= 3 {
			paths = append(paths, toPath(pg))
		}
	}
	return paths
}

func fromPath(path clipper.Path) Polygon {
	pts := make([]Point, len(path))
	for i, ip := range path {
		pts[i] = Point{X: Coord(ip.X), Y: Coord(ip.Y)}
	}
	return Polygon{Points: pts}
}

func fromPaths(paths clipper.Paths) Polygons {
	out := make(Polygons, 0, len(paths))
	for _, path := range paths {
		if len(path) >= 3 {
			out = append(out, fromPath(path))
		}
	}
	return out
}

// fromPolyTree walks outer nodes and their direct hole children; islands
// inside holes start new expolygons.
func fromPolyTree(tree *clipper.PolyTree) ExPolygons {
	if tree == nil {
		return nil
	}
	var out ExPolygons
	var walk func(nodes []*clipper.PolyNode)
	walk = func(nodes []*clipper.PolyNode) {
		for _, outer := range nodes {
			if len(outer.Contour()) < 3 {
				continue
			}
			ep := ExPolygon{Contour: fromPath(outer.Contour())}
			ep.Contour.MakeCounterClockwise()
			for _, hole := range outer.Childs() {
				if len(hole.Contour()) >= 3 {
					h := fromPath(hole.Contour())
					h.MakeClockwise()
					ep.Holes = append(ep.Holes, h)
				}
				walk(hole.Childs())
			}
			out = append(out, ep)
		}
	}
	walk(tree.Childs())
	return out
}

func execute(op clipper.ClipType, subject, clip Polygons) ExPolygons {
	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(toPaths(subject), clipper.PtSubject, true)
	if len(clip) > 0 {
		c.AddPaths(toPaths(clip), clipper.PtClip, true)
	}
	tree, ok := c.Execute2(op, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		Logger().Warn("toolpath: clipper operation failed", "op", op, "subject", len(subject), "clip", len(clip))
		return nil
	}
	return fromPolyTree(tree)
}

// UnionEx merges all rings into disjoint expolygons.
func UnionEx(pp Polygons) ExPolygons {
	if len(pp) == 0 {
		return nil
	}
	return execute(clipper.CtUnion, pp, nil)
}

// IntersectionEx returns the area common to subject and clip.
func IntersectionEx(subject, clip Polygons) ExPolygons {
	if len(subject) == 0 || len(clip) == 0 {
		return nil
	}
	return execute(clipper.CtIntersection, subject, clip)
}

// DiffEx returns the area of subject not covered by clip.
func DiffEx(subject, clip Polygons) ExPolygons {
	if len(subject) == 0 {
		return nil
	}
	if len(clip) == 0 {
		return UnionEx(subject)
	}
	return execute(clipper.CtDifference, subject, clip)
}

func newOffsetter(pp Polygons) *clipper.ClipperOffset {
	co := clipper.NewClipperOffset()
	co.MiterLimit = miterLimit
	co.AddPaths(toPaths(pp), clipper.JtMiter, clipper.EtClosedPolygon)
	return co
}

// Offset grows (delta > 0) or shrinks (delta < 0) closed rings.
func Offset(pp Polygons, delta Coord) Polygons {
	if len(pp) == 0 {
		return nil
	}
	if delta == 0 {
		return UnionEx(pp).Polygons()
	}
	return fromPaths(newOffsetter(pp).Execute(float64(delta)))
}

// OffsetEx grows or shrinks expolygons, holes included.
func OffsetEx(eps ExPolygons, delta Coord) ExPolygons {
	pp := eps.Polygons()
	if len(pp) == 0 {
		return nil
	}
	if delta == 0 {
		return UnionEx(pp)
	}
	return fromPolyTree(newOffsetter(pp).Execute2(float64(delta)))
}

// ClipToBoundingBox keeps the part of ep inside bb.
func ClipToBoundingBox(ep ExPolygon, bb BoundingBox) ExPolygons {
	if !bb.Defined || ep.Empty() {
		return nil
	}
	if !ep.BoundingBox().Overlap(bb) {
		return nil
	}
	return IntersectionEx(ep.Polygons(), Polygons{bb.Polygon()})
}
