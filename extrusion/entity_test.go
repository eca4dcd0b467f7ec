package extrusion

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/toolpath"
)

func testAttrs() Attributes {
	return NewAttributes(RolePerimeter, 0.08, 0.45, 0.2)
}

func TestRole(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleExternalPerimeter, "external-perimeter"},
		{RoleExternalOverhangPerimeter.WithoutBridge(), "external-perimeter"},
		{RoleBridgeInfill.WithoutBridge(), "solid-infill"},
		{ModPerimeter | ModGapFill, "perimeter+gap-fill"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.role.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
	if !RoleExternalOverhangPerimeter.IsBridge() || !RoleExternalOverhangPerimeter.IsExternal() {
		t.Error("external overhang perimeter should be external and bridge")
	}
	if RolePerimeter.WithBridge() != RoleOverhangPerimeter {
		t.Error("WithBridge() should produce the overhang perimeter role")
	}
}

func TestAttributesImmutable(t *testing.T) {
	a := testAttrs()
	b := a.WithOverhang(OverhangAttributes{StartDistance: 0.1, EndDistance: 0.3})
	if _, ok := a.Overhang(); ok {
		t.Error("original attributes should stay without overhang")
	}
	o, ok := b.Overhang()
	if !ok || o.MaxDistance() != 0.3 {
		t.Errorf("Overhang() = %+v, %v", o, ok)
	}
	if _, ok := b.WithoutOverhang().Overhang(); ok {
		t.Error("WithoutOverhang() should clear overhang data")
	}
	c := b.WithFlow(0.1, 0.5, 0.25).WithRole(RoleExternalPerimeter)
	if b.MM3PerMM != 0.08 || c.MM3PerMM != 0.1 || c.Role != RoleExternalPerimeter {
		t.Errorf("WithFlow/WithRole mutated the source: %+v -> %+v", b, c)
	}
}

func TestLoop(t *testing.T) {
	pg := toolpath.NewRectangle(0, 0, 10, 10)
	l := NewLoop(pg, testAttrs(), LoopDefault)
	if l.FirstPoint() != l.LastPoint() {
		t.Fatal("loop not closed")
	}
	if got := l.Length(); math.Abs(got-40) > 1e-9 {
		t.Errorf("Length() = %v, want 40", got)
	}
	if !l.IsCounterClockwise() {
		t.Error("loop should keep the contour winding")
	}
	l.Reverse()
	if l.IsCounterClockwise() {
		t.Error("Reverse() should flip the winding")
	}
	if l.FirstPoint() != l.LastPoint() {
		t.Error("reversed loop not closed")
	}
	if got := l.Polygon().Len(); got != 4 {
		t.Errorf("Polygon().Len() = %d, want 4", got)
	}
}

func TestCollectionReverse(t *testing.T) {
	a := NewPath([]toolpath.Point{toolpath.Pt(0, 0), toolpath.Pt(10, 0)}, testAttrs())
	b := NewPath([]toolpath.Point{toolpath.Pt(20, 0), toolpath.Pt(30, 0)}, testAttrs())
	c := NewCollection()
	c.Append(a, &MultiPath{Paths: []*Path{b}})
	c.Reverse()
	if got := c.FirstPoint(); got != toolpath.Pt(30, 0) {
		t.Errorf("FirstPoint() = %v, want (30,0)", got)
	}
	if got := c.LastPoint(); got != toolpath.Pt(0, 0) {
		t.Errorf("LastPoint() = %v, want (0,0)", got)
	}
	if got := Count(c); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
}

type foreign struct{ *Path }

func TestWalk(t *testing.T) {
	p := NewPath([]toolpath.Point{toolpath.Pt(0, 0), toolpath.Pt(1, 0)}, testAttrs())
	loop := NewLoop(toolpath.NewRectangle(0, 0, 1, 1), testAttrs(), LoopHole)
	inner := NewCollection()
	inner.Append(loop)
	root := NewCollection()
	root.Append(p, inner)

	paths, err := Flatten(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 || paths[0] != p || paths[1] != loop.Paths[0] {
		t.Errorf("Flatten() = %v", paths)
	}

	root.Append(foreign{p})
	if _, err := Flatten(root); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("Flatten() error = %v, want ErrUnknownEntity", err)
	}
}
