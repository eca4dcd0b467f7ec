package toolpath

// ExPolygon is an outer contour with zero or more holes.
type ExPolygon struct {
	Contour Polygon
	Holes   []Polygon
}

// ExPolygons is a set of disjoint expolygons.
type ExPolygons []ExPolygon

// Empty reports whether the contour is degenerate.
func (ep ExPolygon) Empty() bool { return ep.Contour.Empty() }

// Area returns the unsigned area: contour minus holes.
func (ep ExPolygon) Area() float64 {
	a := abs64(ep.Contour.Area())
	for _, h := range ep.Holes {
		a -= abs64(h.Area())
	}
	return a
}

// Contains reports whether p lies inside the contour and outside every hole.
func (ep ExPolygon) Contains(p Point) bool {
	if !ep.Contour.Contains(p) {
		return false
	}
	for _, h := range ep.Holes {
		if h.Contains(p) && !onBoundary(h, p) {
			return false
		}
	}
	return true
}

// Polygons returns the contour followed by the holes.
func (ep ExPolygon) Polygons() Polygons {
	out := make(Polygons, 0, len(ep.Holes)+1)
	out = append(out, ep.Contour)
	return append(out, ep.Holes...)
}

// BoundingBox returns the box enclosing the contour.
func (ep ExPolygon) BoundingBox() BoundingBox {
	return ep.Contour.BoundingBox()
}

// Clone returns a deep copy.
func (ep ExPolygon) Clone() ExPolygon {
	out := ExPolygon{Contour: ep.Contour.Clone()}
	for _, h := range ep.Holes {
		out.Holes = append(out.Holes, h.Clone())
	}
	return out
}

// Polygons flattens the set into contours and holes.
func (eps ExPolygons) Polygons() Polygons {
	var out Polygons
	for _, ep := range eps {
		out = append(out, ep.Polygons()...)
	}
	return out
}

// Area returns the summed unsigned area.
func (eps ExPolygons) Area() float64 {
	var a float64
	for _, ep := range eps {
		a += ep.Area()
	}
	return a
}

// BoundingBox returns the box enclosing every contour.
func (eps ExPolygons) BoundingBox() BoundingBox {
	var bb BoundingBox
	for _, ep := range eps {
		bb.Merge(ep.BoundingBox())
	}
	return bb
}

func onBoundary(pg Polygon, p Point) bool {
	for _, l := range pg.Lines() {
		if l.DistanceTo(p) < 1 {
			return true
		}
	}
	return false
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
