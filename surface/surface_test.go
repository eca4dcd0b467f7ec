package surface

import (
	"testing"

	"github.com/gogpu/toolpath"
)

func rect(x0, y0, x1, y1 float64) toolpath.ExPolygon {
	return toolpath.ExPolygon{Contour: toolpath.NewRectangle(x0, y0, x1, y1)}
}

func TestNewDefaults(t *testing.T) {
	s := New(Internal, rect(0, 0, 10, 10))
	if s.Thickness != -1 || s.ThicknessLayers != 1 || s.BridgeAngle != -1 {
		t.Errorf("New() defaults = %v/%v/%v", s.Thickness, s.ThicknessLayers, s.BridgeAngle)
	}
	if s.Empty() {
		t.Error("surface should not be empty")
	}
	want := toolpath.Scale(10) * toolpath.Scale(10)
	if got := s.Area(); got != float64(want) {
		t.Errorf("Area() = %v, want %v", got, want)
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		typ                                  Type
		top, bottom, bridge, external, solid bool
	}{
		{Top, true, false, false, true, true},
		{Bottom, false, true, false, true, true},
		{BottomBridge, false, true, true, true, true},
		{Internal, false, false, false, false, false},
		{InternalSolid, false, false, false, false, true},
		{InternalBridge, false, false, true, false, true},
		{InternalVoid, false, false, false, false, false},
		{SolidOverBridge, false, false, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			s := Surface{Type: tt.typ}
			if s.IsTop() != tt.top {
				t.Errorf("IsTop() = %v", s.IsTop())
			}
			if s.IsBottom() != tt.bottom {
				t.Errorf("IsBottom() = %v", s.IsBottom())
			}
			if s.IsBridge() != tt.bridge {
				t.Errorf("IsBridge() = %v", s.IsBridge())
			}
			if s.IsExternal() != tt.external || s.IsInternal() == tt.external {
				t.Errorf("IsExternal() = %v", s.IsExternal())
			}
			if s.IsSolid() != tt.solid {
				t.Errorf("IsSolid() = %v", s.IsSolid())
			}
		})
	}
}

func TestCouldMerge(t *testing.T) {
	a := New(Top, rect(0, 0, 1, 1))
	b := a.WithExPolygon(rect(5, 5, 6, 6))
	if !CouldMerge(a, b) {
		t.Error("surfaces differing only in geometry should merge")
	}
	b.BridgeAngle = 0.5
	if CouldMerge(a, b) {
		t.Error("different bridge angles should not merge")
	}
}

func TestSurfaces(t *testing.T) {
	var ss Surfaces
	ss.Append(Internal, toolpath.ExPolygons{rect(0, 0, 1, 1), rect(2, 0, 3, 1)})
	holed := rect(10, 10, 20, 20)
	h := toolpath.NewRectangle(12, 12, 14, 14)
	h.MakeClockwise()
	holed.Holes = append(holed.Holes, h)
	ss.AppendLike(New(Top, toolpath.ExPolygon{}), toolpath.ExPolygons{holed})

	if got := ss.NumberPolygons(); got != 4 {
		t.Errorf("NumberPolygons() = %d, want 4", got)
	}
	if got := len(ss.ToPolygons()); got != 4 {
		t.Errorf("len(ToPolygons()) = %d, want 4", got)
	}
	if got := len(ss.Filter(Top)); got != 1 {
		t.Errorf("len(Filter(Top)) = %d, want 1", got)
	}
	bb := ss.Extents()
	if bb.Min != toolpath.NewScaledPoint(0, 0) || bb.Max != toolpath.NewScaledPoint(20, 20) {
		t.Errorf("Extents() = %v", bb)
	}
	if got := Type(42).String(); got != "Type(42)" {
		t.Errorf("String() = %q", got)
	}
}
