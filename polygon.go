package toolpath

import (
	"slices"

	clipper "github.com/ctessum/go.clipper"
)

// Polygon is a closed ring. The first point is not repeated at the end.
// Contours are counter-clockwise, holes clockwise.
type Polygon struct {
	Points []Point
}

// NewScaledPolygon builds a polygon from millimetre coordinates
// given as x0, y0, x1, y1, ...
func NewScaledPolygon(coords ...float64) Polygon {
	pts := make([]Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, NewScaledPoint(coords[i], coords[i+1]))
	}
	return Polygon{Points: pts}
}

// NewRectangle returns the counter-clockwise ring of an axis-aligned
// rectangle given in millimetres.
func NewRectangle(minX, minY, maxX, maxY float64) Polygon {
	return NewScaledPolygon(minX, minY, maxX, minY, maxX, maxY, minX, maxY)
}

// Len returns the number of vertices.
func (pg Polygon) Len() int { return len(pg.Points) }

// Empty reports whether the ring has fewer than three vertices.
func (pg Polygon) Empty() bool { return len(pg.Points) < 3 }

// FirstPoint returns the first vertex.
func (pg Polygon) FirstPoint() Point { return pg.Points[0] }

// Clone returns a deep copy.
func (pg Polygon) Clone() Polygon {
	return Polygon{Points: slices.Clone(pg.Points)}
}

// Area returns the signed area in squared Coord units. Counter-clockwise
// rings are positive.
func (pg Polygon) Area() float64 {
	n := len(pg.Points)
	if n < 3 {
		return 0
	}
	var a float64
	for i := range n {
		p := pg.Points[i]
		q := pg.Points[(i+1)%n]
		a += float64(p.X)*float64(q.Y) - float64(q.X)*float64(p.Y)
	}
	return a / 2
}

// IsCounterClockwise reports the winding of the ring.
func (pg Polygon) IsCounterClockwise() bool {
	return pg.Area() > 0
}

// Reverse flips the winding in place.
func (pg *Polygon) Reverse() {
	slices.Reverse(pg.Points)
}

// MakeCounterClockwise reverses the ring if needed and reports whether it did.
func (pg *Polygon) MakeCounterClockwise() bool {
	if !pg.IsCounterClockwise() {
		pg.Reverse()
		return true
	}
	return false
}

// MakeClockwise reverses the ring if needed and reports whether it did.
func (pg *Polygon) MakeClockwise() bool {
	if pg.IsCounterClockwise() {
		pg.Reverse()
		return true
	}
	return false
}

// Length returns the perimeter in Coord units.
func (pg Polygon) Length() float64 {
	n := len(pg.Points)
	if n < 2 {
		return 0
	}
	var l float64
	for i := range n {
		l += pg.Points[i].DistanceTo(pg.Points[(i+1)%n])
	}
	return l
}

// Lines returns the ring edges, including the closing one.
func (pg Polygon) Lines() []Line {
	n := len(pg.Points)
	if n < 2 {
		return nil
	}
	lines := make([]Line, 0, n)
	for i := range n {
		lines = append(lines, Line{A: pg.Points[i], B: pg.Points[(i+1)%n]})
	}
	return lines
}

// Contains reports whether p is inside the ring or on its boundary.
// Winding is ignored.
func (pg Polygon) Contains(p Point) bool {
	return clipper.PointInPolygon(&clipper.IntPoint{X: clipper.CInt(p.X), Y: clipper.CInt(p.Y)}, toPath(pg)) != 0
}

// ClosestPoint returns the boundary point nearest to p and the index of the
// edge it lies on.
func (pg Polygon) ClosestPoint(p Point) (Point, int) {
	best, bestIdx, bestDist := Point{}, -1, 0.0
	for i, l := range pg.Lines() {
		q := l.Projection(p)
		if d := p.DistanceSq(q); bestIdx < 0 || d < bestDist {
			best, bestIdx, bestDist = q, i, d
		}
	}
	return best, bestIdx
}

// SplitAtIndex opens the ring at vertex idx. The result starts and ends there.
func (pg Polygon) SplitAtIndex(idx int) Polyline {
	n := len(pg.Points)
	pts := make([]Point, 0, n+1)
	pts = append(pts, pg.Points[idx:]...)
	pts = append(pts, pg.Points[:idx]...)
	pts = append(pts, pg.Points[idx])
	return Polyline{Points: pts}
}

// SplitAtPoint opens the ring at the boundary point closest to p, inserting
// it as a vertex when it falls inside an edge.
func (pg Polygon) SplitAtPoint(p Point) Polyline {
	q, edge := pg.ClosestPoint(p)
	if edge < 0 {
		return Polyline{}
	}
	n := len(pg.Points)
	switch q {
	case pg.Points[edge]:
		return pg.SplitAtIndex(edge)
	case pg.Points[(edge+1)%n]:
		return pg.SplitAtIndex((edge + 1) % n)
	}
	pts := make([]Point, 0, n+2)
	pts = append(pts, q)
	for i := 1; i <= n; i++ {
		pts = append(pts, pg.Points[(edge+i)%n])
	}
	pts = append(pts, q)
	return Polyline{Points: pts}
}

// BoundingBox returns the box enclosing the ring.
func (pg Polygon) BoundingBox() BoundingBox {
	return NewBoundingBox(pg.Points)
}

// Polygons is a set of rings.
type Polygons []Polygon

// TotalArea returns the sum of signed areas.
func (pp Polygons) TotalArea() float64 {
	var a float64
	for _, pg := range pp {
		a += pg.Area()
	}
	return a
}
