//go:build !debug

package regions

import (
	"testing"

	"github.com/gogpu/toolpath/config"
)

func TestSettingsValueCompare(t *testing.T) {
	a := config.DefaultRegion()
	b := config.DefaultRegion()
	group := []config.OptionID{config.OptPerimeterExtrusionWidth, config.OptExternalPerimeterExtrusionWidth}

	va := NewSettingsValue(&a, group)
	vb := NewSettingsValue(&b, group)
	if !va.Equal(vb) {
		t.Fatal("values from distinct snapshots with equal content should be equal")
	}

	b.ExternalPerimeterExtrusionWidth = config.Abs(0.5)
	vb = NewSettingsValue(&b, group)
	if va.Equal(vb) {
		t.Error("values with different widths should differ")
	}
	if va.Compare(vb) != -vb.Compare(va) {
		t.Error("Compare is not antisymmetric")
	}

	short := NewSettingsValue(&a, group[:1])
	if got := short.Compare(va); got != -1 {
		t.Errorf("mismatched Compare() = %d, want -1 (by size)", got)
	}
	if short.Equal(va) {
		t.Error("mismatched Equal() should be false")
	}

	if v := NewSettingsValue(&a, []config.OptionID{"unknown"}); !v.Empty() {
		t.Errorf("unknown options should be skipped, got %s", v)
	}
}
