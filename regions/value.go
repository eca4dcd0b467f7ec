package regions

import (
	"cmp"
	"fmt"

	"github.com/gogpu/toolpath/config"
)

// SettingsValue is the resolved value of one option group in one region.
// It is a composite key: two values are equal when every option value is
// deeply equal, whatever config snapshot they were read from.
type SettingsValue struct {
	keys   []config.OptionID
	values []config.Value
}

// NewSettingsValue reads the options of group from cfg. Options unknown to
// the region config are skipped.
func NewSettingsValue(cfg *config.RegionConfig, group []config.OptionID) SettingsValue {
	sv := SettingsValue{
		keys:   make([]config.OptionID, 0, len(group)),
		values: make([]config.Value, 0, len(group)),
	}
	for _, id := range group {
		v, ok := cfg.Option(id)
		if !ok {
			continue
		}
		sv.keys = append(sv.keys, id)
		sv.values = append(sv.values, v)
	}
	return sv
}

// Len returns the number of options in the value.
func (sv SettingsValue) Len() int { return len(sv.values) }

// Empty reports whether the value holds no option.
func (sv SettingsValue) Empty() bool { return len(sv.values) == 0 }

// Keys returns the option ids in group order.
func (sv SettingsValue) Keys() []config.OptionID { return sv.keys }

// Value returns the value of option id. An empty id selects the first
// option of the group.
func (sv SettingsValue) Value(id config.OptionID) (config.Value, bool) {
	if id == "" && len(sv.values) > 0 {
		return sv.values[0], true
	}
	for i, k := range sv.keys {
		if k == id {
			return sv.values[i], true
		}
	}
	return config.Value{}, false
}

// Compare orders two values of the same group. Values with a different
// number of options are a programming error: debug builds panic, release
// builds order them by size.
func (sv SettingsValue) Compare(o SettingsValue) int {
	if len(sv.values) != len(o.values) {
		violated(fmt.Sprintf("regions: comparing settings of %d and %d options", len(sv.values), len(o.values)))
		return cmp.Compare(len(sv.values), len(o.values))
	}
	for i := range sv.values {
		if c := sv.values[i].Compare(o.values[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Equal reports deep equality.
func (sv SettingsValue) Equal(o SettingsValue) bool {
	if len(sv.values) != len(o.values) {
		violated(fmt.Sprintf("regions: comparing settings of %d and %d options", len(sv.values), len(o.values)))
		return false
	}
	return sv.Compare(o) == 0
}

// String lists the options as id=value pairs.
func (sv SettingsValue) String() string {
	s := "{"
	for i, k := range sv.keys {
		if i > 0 {
			s += " "
		}
		s += string(k) + "=" + sv.values[i].String()
	}
	return s + "}"
}
