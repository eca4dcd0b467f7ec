package spatial

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/toolpath"
)

func square(x0, y0, x1, y1 float64) toolpath.ExPolygon {
	return toolpath.ExPolygon{Contour: toolpath.NewRectangle(x0, y0, x1, y1)}
}

func TestBoundarySignedDistance(t *testing.T) {
	b := NewBoundary(toolpath.ExPolygons{square(0, 0, 10, 10)})
	tests := []struct {
		name string
		p    toolpath.Vec2
		want float64
	}{
		{"centre", toolpath.V2(5, 5), -5},
		{"near edge inside", toolpath.V2(1, 5), -1},
		{"outside right", toolpath.V2(12, 5), 2},
		{"outside corner", toolpath.V2(13, 14), 5},
		{"far away", toolpath.V2(-100, 5), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.SignedDistance(tt.p); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("SignedDistance(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBoundaryHole(t *testing.T) {
	ep := square(0, 0, 20, 20)
	h := toolpath.NewRectangle(5, 5, 15, 15)
	h.MakeClockwise()
	ep.Holes = []toolpath.Polygon{h}
	b := NewBoundary(toolpath.ExPolygons{ep})

	if got := b.SignedDistance(toolpath.V2(10, 10)); math.Abs(got-5) > 1e-6 {
		t.Errorf("distance in hole = %v, want 5", got)
	}
	if got := b.SignedDistance(toolpath.V2(2, 10)); math.Abs(got+2) > 1e-6 {
		t.Errorf("distance in ring = %v, want -2", got)
	}
}

func TestBoundaryNearestMatchesBruteForce(t *testing.T) {
	star := make([]float64, 0, 64)
	for i := range 32 {
		a := float64(i) * 2 * math.Pi / 32
		r := 10.0
		if i%2 == 1 {
			r = 4
		}
		star = append(star, 20+r*math.Cos(a), 20+r*math.Sin(a))
	}
	b := NewBoundary(toolpath.ExPolygons{{Contour: toolpath.NewScaledPolygon(star...)}})
	rng := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		p := toolpath.V2(rng.Float64()*60-10, rng.Float64()*60-10)
		want := math.Inf(1)
		for _, l := range b.Lines() {
			want = math.Min(want, l.DistanceTo(p))
		}
		if got := b.Distance(p); math.Abs(got-want) > 1e-9 {
			t.Fatalf("Distance(%v) = %v, brute force %v", p, got, want)
		}
	}
}

func TestBoundaryIntersections(t *testing.T) {
	b := NewBoundary(toolpath.ExPolygons{square(0, 0, 10, 10)})
	got := b.Intersections(toolpath.Linef{A: toolpath.V2(-5, 5), B: toolpath.V2(15, 5)})
	if len(got) != 2 {
		t.Fatalf("got %d intersections, want 2", len(got))
	}
	if !got[0].Approx(toolpath.V2(0, 5), 1e-9) || !got[1].Approx(toolpath.V2(10, 5), 1e-9) {
		t.Errorf("Intersections() = %v", got)
	}
	if got := b.Intersections(toolpath.Linef{A: toolpath.V2(2, 2), B: toolpath.V2(8, 8)}); len(got) != 0 {
		t.Errorf("inner segment intersections = %v", got)
	}
}

func TestEmptyBoundary(t *testing.T) {
	b := NewBoundary(nil)
	if !b.Empty() {
		t.Error("boundary should be empty")
	}
	if d := b.SignedDistance(toolpath.V2(0, 0)); !math.IsInf(d, 1) {
		t.Errorf("SignedDistance() = %v, want +Inf", d)
	}
}

func TestCurledLinesInRadius(t *testing.T) {
	c := NewCurledLines([]CurledLine{
		{Linef: toolpath.Linef{A: toolpath.V2(0, 0), B: toolpath.V2(10, 0)}, CurledHeight: 0.1},
		{Linef: toolpath.Linef{A: toolpath.V2(0, 5), B: toolpath.V2(10, 5)}, CurledHeight: 0.2},
		{Linef: toolpath.Linef{A: toolpath.V2(50, 50), B: toolpath.V2(60, 50)}, CurledHeight: 0.3},
	})
	tests := []struct {
		p      toolpath.Vec2
		radius float64
		want   int
	}{
		{toolpath.V2(5, 1), 2, 1},
		{toolpath.V2(5, 2.5), 3, 2},
		{toolpath.V2(30, 30), 5, 0},
		{toolpath.V2(55, 51), 1, 1},
	}
	for _, tt := range tests {
		if got := c.LinesInRadius(tt.p, tt.radius); len(got) != tt.want {
			t.Errorf("LinesInRadius(%v, %v) = %d lines, want %d", tt.p, tt.radius, len(got), tt.want)
		}
	}
	if got := c.LinesInRadius(toolpath.V2(55, 51), 1); got[0].CurledHeight != 0.3 {
		t.Errorf("CurledHeight = %v, want 0.3", got[0].CurledHeight)
	}
}

func BenchmarkBoundarySignedDistance(b *testing.B) {
	var eps toolpath.ExPolygons
	for i := range 10 {
		for j := range 10 {
			x, y := float64(i)*12, float64(j)*12
			eps = append(eps, square(x, y, x+10, y+10))
		}
	}
	bd := NewBoundary(eps)
	rng := rand.New(rand.NewPCG(1, 2))
	b.ReportAllocs()
	for b.Loop() {
		bd.SignedDistance(toolpath.V2(rng.Float64()*120, rng.Float64()*120))
	}
}
