package toolpath

import "math"

// Line is a segment in scaled coordinates.
type Line struct {
	A, B Point
}

// Length returns the segment length in Coord units.
func (l Line) Length() float64 {
	return l.A.DistanceTo(l.B)
}

// Projection returns the point of the segment closest to p.
// A zero-length segment projects everything onto its endpoint.
func (l Line) Projection(p Point) Point {
	dx := float64(l.B.X - l.A.X)
	dy := float64(l.B.Y - l.A.Y)
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return l.A
	}
	t := (float64(p.X-l.A.X)*dx + float64(p.Y-l.A.Y)*dy) / lenSq
	switch {
	case t <= 0:
		return l.A
	case t >= 1:
		return l.B
	}
	return l.A.Lerp(l.B, t)
}

// DistanceTo returns the distance from p to the segment in Coord units.
func (l Line) DistanceTo(p Point) float64 {
	return p.DistanceTo(l.Projection(p))
}

// Unscaled converts the segment to millimetres.
func (l Line) Unscaled() Linef {
	return Linef{A: l.A.Unscaled(), B: l.B.Unscaled()}
}

// Linef is a segment in millimetres.
type Linef struct {
	A, B Vec2
}

// Endpoints returns both ends of the segment.
func (l Linef) Endpoints() (Vec2, Vec2) {
	return l.A, l.B
}

// Length returns the segment length.
func (l Linef) Length() float64 {
	return l.A.Distance(l.B)
}

// ClosestPoint returns the point of the segment closest to p.
func (l Linef) ClosestPoint(p Vec2) Vec2 {
	d := l.B.Sub(l.A)
	lenSq := d.Dot(d)
	if lenSq == 0 {
		return l.A
	}
	t := p.Sub(l.A).Dot(d) / lenSq
	switch {
	case t <= 0:
		return l.A
	case t >= 1:
		return l.B
	}
	return l.A.Add(d.Mul(t))
}

// DistanceTo returns the distance from p to the segment.
func (l Linef) DistanceTo(p Vec2) float64 {
	return p.Distance(l.ClosestPoint(p))
}

// Side returns a positive value when p lies left of the directed segment,
// negative when right and zero when collinear.
func (l Linef) Side(p Vec2) float64 {
	return l.B.Sub(l.A).Cross(p.Sub(l.A))
}

// Intersection returns the crossing point of two segments and the parameter
// of that point along l. Parallel segments never intersect.
func (l Linef) Intersection(o Linef) (Vec2, float64, bool) {
	r := l.B.Sub(l.A)
	s := o.B.Sub(o.A)
	denom := r.Cross(s)
	if math.Abs(denom) < 1e-12 {
		return Vec2{}, 0, false
	}
	qp := o.A.Sub(l.A)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vec2{}, 0, false
	}
	return l.A.Add(r.Mul(t)), t, true
}
