package toolpath

import "slices"

// Polyline is an open chain of points.
type Polyline struct {
	Points []Point
}

// Len returns the number of points.
func (pl Polyline) Len() int { return len(pl.Points) }

// Empty reports whether the polyline has no points.
func (pl Polyline) Empty() bool { return len(pl.Points) == 0 }

// FirstPoint returns the first point. The polyline must not be empty.
func (pl Polyline) FirstPoint() Point { return pl.Points[0] }

// LastPoint returns the last point. The polyline must not be empty.
func (pl Polyline) LastPoint() Point { return pl.Points[len(pl.Points)-1] }

// Clone returns a deep copy.
func (pl Polyline) Clone() Polyline {
	return Polyline{Points: slices.Clone(pl.Points)}
}

// Reverse reverses the point order in place.
func (pl *Polyline) Reverse() {
	slices.Reverse(pl.Points)
}

// Append adds points at the end.
func (pl *Polyline) Append(pts ...Point) {
	pl.Points = append(pl.Points, pts...)
}

// SetFirst replaces the first point.
func (pl *Polyline) SetFirst(p Point) { pl.Points[0] = p }

// SetLast replaces the last point.
func (pl *Polyline) SetLast(p Point) { pl.Points[len(pl.Points)-1] = p }

// Length returns the total length in Coord units.
func (pl Polyline) Length() float64 {
	var l float64
	for i := 1; i < len(pl.Points); i++ {
		l += pl.Points[i-1].DistanceTo(pl.Points[i])
	}
	return l
}

// Lines returns the segments of the polyline.
func (pl Polyline) Lines() []Line {
	if len(pl.Points) < 2 {
		return nil
	}
	lines := make([]Line, 0, len(pl.Points)-1)
	for i := 1; i < len(pl.Points); i++ {
		lines = append(lines, Line{A: pl.Points[i-1], B: pl.Points[i]})
	}
	return lines
}

// ClosestPointIndex returns the index of the vertex nearest to p, or -1.
func (pl Polyline) ClosestPointIndex(p Point) int {
	best, bestDist := -1, 0.0
	for i, q := range pl.Points {
		if d := p.DistanceSq(q); best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// ClipEnd removes distance Coord units from the end of the polyline.
// A polyline shorter than distance collapses to its first point.
func (pl *Polyline) ClipEnd(distance float64) {
	for distance > 0 && len(pl.Points) > 1 {
		last := pl.Points[len(pl.Points)-1]
		prev := pl.Points[len(pl.Points)-2]
		segLen := last.DistanceTo(prev)
		if segLen > distance {
			pl.Points[len(pl.Points)-1] = last.Lerp(prev, distance/segLen)
			return
		}
		distance -= segLen
		pl.Points = pl.Points[:len(pl.Points)-1]
	}
}

// ClipStart removes distance Coord units from the start of the polyline.
func (pl *Polyline) ClipStart(distance float64) {
	pl.Reverse()
	pl.ClipEnd(distance)
	pl.Reverse()
}

// SplitAt cuts the polyline at the point of segment idx closest to p.
// Both halves contain the cut point.
func (pl Polyline) SplitAt(idx int, p Point) (Polyline, Polyline) {
	cut := Line{A: pl.Points[idx], B: pl.Points[idx+1]}.Projection(p)
	first := Polyline{Points: slices.Clone(pl.Points[:idx+1])}
	if first.LastPoint() != cut {
		first.Append(cut)
	}
	second := Polyline{Points: []Point{cut}}
	rest := pl.Points[idx+1:]
	if len(rest) > 0 && rest[0] == cut {
		rest = rest[1:]
	}
	second.Append(rest...)
	return first, second
}

// Simplify drops consecutive points closer than ScaledEpsilon, keeping both ends.
func (pl *Polyline) Simplify() {
	if len(pl.Points) < 3 {
		return
	}
	out := pl.Points[:1]
	for i := 1; i < len(pl.Points)-1; i++ {
		if !pl.Points[i].CoincidesWithEpsilon(out[len(out)-1]) {
			out = append(out, pl.Points[i])
		}
	}
	last := pl.Points[len(pl.Points)-1]
	if len(out) > 1 && out[len(out)-1].CoincidesWithEpsilon(last) {
		out[len(out)-1] = last
	} else {
		out = append(out, last)
	}
	pl.Points = out
}
