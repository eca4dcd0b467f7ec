package toolpath

// BoundingBox is an axis-aligned box in scaled coordinates.
// The zero value is an undefined (empty) box.
type BoundingBox struct {
	Min, Max Point
	Defined  bool
}

// NewBoundingBox returns the box enclosing all points.
func NewBoundingBox(points []Point) BoundingBox {
	var bb BoundingBox
	for _, p := range points {
		bb.MergePoint(p)
	}
	return bb
}

// MergePoint grows the box to include p.
func (bb *BoundingBox) MergePoint(p Point) {
	if !bb.Defined {
		bb.Min, bb.Max, bb.Defined = p, p, true
		return
	}
	bb.Min.X = min(bb.Min.X, p.X)
	bb.Min.Y = min(bb.Min.Y, p.Y)
	bb.Max.X = max(bb.Max.X, p.X)
	bb.Max.Y = max(bb.Max.Y, p.Y)
}

// Merge grows the box to include other.
func (bb *BoundingBox) Merge(other BoundingBox) {
	if !other.Defined {
		return
	}
	bb.MergePoint(other.Min)
	bb.MergePoint(other.Max)
}

// Offset grows the box by delta on every side. Negative values shrink it.
func (bb *BoundingBox) Offset(delta Coord) {
	if !bb.Defined {
		return
	}
	bb.Min.X -= delta
	bb.Min.Y -= delta
	bb.Max.X += delta
	bb.Max.Y += delta
}

// Overlap reports whether the two boxes share any point, borders included.
func (bb BoundingBox) Overlap(other BoundingBox) bool {
	if !bb.Defined || !other.Defined {
		return false
	}
	return bb.Min.X <= other.Max.X && other.Min.X <= bb.Max.X &&
		bb.Min.Y <= other.Max.Y && other.Min.Y <= bb.Max.Y
}

// Contains reports whether p lies inside the box, borders included.
func (bb BoundingBox) Contains(p Point) bool {
	return bb.Defined && p.X >= bb.Min.X && p.X <= bb.Max.X && p.Y >= bb.Min.Y && p.Y <= bb.Max.Y
}

// Size returns the width and height of the box.
func (bb BoundingBox) Size() Point {
	return bb.Max.Sub(bb.Min)
}

// Polygon returns the box as a counter-clockwise ring.
func (bb BoundingBox) Polygon() Polygon {
	return Polygon{Points: []Point{
		bb.Min,
		{X: bb.Max.X, Y: bb.Min.Y},
		bb.Max,
		{X: bb.Min.X, Y: bb.Max.Y},
	}}
}
