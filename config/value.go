package config

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/toolpath/graph"
)

// FloatOrPercent is an absolute value or a percentage of a reference value.
// Its text form is "0.45" or "110%".
type FloatOrPercent struct {
	Value   float64
	Percent bool
}

// Abs returns an absolute value for a millimetre value.
func Abs(v float64) FloatOrPercent { return FloatOrPercent{Value: v} }

// Percent returns a percentage value.
func Percent(v float64) FloatOrPercent { return FloatOrPercent{Value: v, Percent: true} }

// AbsValue resolves the value against ratio. Percentages are relative to
// ratio, so 50% of 0.4 is 0.2.
func (f FloatOrPercent) AbsValue(ratio float64) float64 {
	if f.Percent {
		return f.Value * ratio / 100
	}
	return f.Value
}

// MarshalText implements encoding.TextMarshaler.
func (f FloatOrPercent) MarshalText() ([]byte, error) {
	s := strconv.FormatFloat(f.Value, 'g', -1, 64)
	if f.Percent {
		s += "%"
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FloatOrPercent) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	pct := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return fmt.Errorf("config: invalid float or percent %q: %w", s, err)
	}
	*f = FloatOrPercent{Value: v, Percent: pct}
	return nil
}

// Switch is an option that can be disabled while keeping its value.
type Switch[T any] struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
	Value   T    `yaml:"value" toml:"value"`
}

// On returns an enabled switch.
func On[T any](v T) Switch[T] { return Switch[T]{Enabled: true, Value: v} }

// Off returns a disabled switch that still remembers v.
func Off[T any](v T) Switch[T] { return Switch[T]{Value: v} }

// Kind is the type carried by a Value.
type Kind int

// Value kinds.
const (
	KindFloat Kind = iota
	KindInt
	KindBool
	KindString
	KindGraph
)

// Value is a resolved option value that can be compared deeply with another
// value of the same option. Values are immutable.
type Value struct {
	kind    Kind
	num     float64
	percent bool
	enabled bool
	str     string
	graph   graph.Data
}

// FloatValue wraps a float-or-percent option.
func FloatValue(f FloatOrPercent, enabled bool) Value {
	return Value{kind: KindFloat, num: f.Value, percent: f.Percent, enabled: enabled}
}

// IntValue wraps an integer option.
func IntValue(i int) Value {
	return Value{kind: KindInt, num: float64(i), enabled: true}
}

// BoolValue wraps a boolean option.
func BoolValue(b bool) Value {
	v := Value{kind: KindBool, enabled: true}
	if b {
		v.num = 1
	}
	return v
}

// StringValue wraps an enum or string option.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s, enabled: true}
}

// GraphValue wraps a response curve option.
func GraphValue(g graph.Data, enabled bool) Value {
	return Value{kind: KindGraph, graph: g.Clone(), enabled: enabled}
}

// Kind returns the carried type.
func (v Value) Kind() Kind { return v.kind }

// IsEnabled reports whether the option is switched on.
func (v Value) IsEnabled() bool { return v.enabled }

// IsPercent reports whether a float value is a percentage.
func (v Value) IsPercent() bool { return v.percent }

// Float returns the numeric value.
func (v Value) Float() float64 { return v.num }

// AbsValue resolves a float value against ratio.
func (v Value) AbsValue(ratio float64) float64 {
	return v.FloatOrPercent().AbsValue(ratio)
}

// FloatOrPercent returns a float value in its option form.
func (v Value) FloatOrPercent() FloatOrPercent {
	return FloatOrPercent{Value: v.num, Percent: v.percent}
}

// Int returns the integer value.
func (v Value) Int() int { return int(v.num) }

// Bool returns the boolean value.
func (v Value) Bool() bool { return v.num != 0 }

// String returns the string value, or a readable form for other kinds.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindGraph:
		b, _ := v.graph.MarshalText()
		return string(b)
	case KindBool:
		return strconv.FormatBool(v.Bool())
	}
	b, _ := FloatOrPercent{Value: v.num, Percent: v.percent}.MarshalText()
	return string(b)
}

// Graph returns the curve value.
func (v Value) Graph() graph.Data { return v.graph.Clone() }

// Compare orders two values deeply: kind, enabled flag, then payload.
func (v Value) Compare(o Value) int {
	if c := cmp.Compare(v.kind, o.kind); c != 0 {
		return c
	}
	if v.enabled != o.enabled {
		if !v.enabled {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(v.num, o.num); c != 0 {
		return c
	}
	if v.percent != o.percent {
		if !v.percent {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(v.str, o.str); c != 0 {
		return c
	}
	return v.graph.Compare(o.graph)
}

// Equal reports deep equality.
func (v Value) Equal(o Value) bool { return v.Compare(o) == 0 }
