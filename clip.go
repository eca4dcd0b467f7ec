package toolpath

import "math"

// ClipLineConvex clips a segment against a convex ring given in either
// winding, using the Cyrus-Beck parametric test. It returns false when the
// segment lies entirely outside.
func ClipLineConvex(l Linef, ring []Vec2) (Linef, bool) {
	n := len(ring)
	if n < 3 {
		return Linef{}, false
	}
	sign := 1.0
	if ringArea(ring) < 0 {
		sign = -1
	}
	d := l.B.Sub(l.A)
	tEnter, tLeave := 0.0, 1.0
	for i := range n {
		a := ring[i]
		b := ring[(i+1)%n]
		// Inward normal of edge a->b for a counter-clockwise ring.
		normal := b.Sub(a).Perp().Mul(sign)
		num := normal.Dot(a.Sub(l.A))
		den := normal.Dot(d)
		if math.Abs(den) < 1e-15 {
			if num > 0 {
				// Parallel and outside this edge.
				return Linef{}, false
			}
			continue
		}
		t := num / den
		if den > 0 {
			tEnter = math.Max(tEnter, t)
		} else {
			tLeave = math.Min(tLeave, t)
		}
		if tEnter > tLeave {
			return Linef{}, false
		}
	}
	return Linef{A: l.A.Add(d.Mul(tEnter)), B: l.A.Add(d.Mul(tLeave))}, true
}

func ringArea(ring []Vec2) float64 {
	var a float64
	for i := range ring {
		a += ring[i].Cross(ring[(i+1)%len(ring)])
	}
	return a / 2
}
