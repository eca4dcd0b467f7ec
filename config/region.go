package config

import (
	"github.com/gogpu/toolpath/graph"
)

// OptionID is the stable identity of a configuration option.
type OptionID string

// Region options.
const (
	OptPerimeters                      OptionID = "perimeters"
	OptPerimeterExtrusionWidth         OptionID = "perimeter_extrusion_width"
	OptExternalPerimeterExtrusionWidth OptionID = "external_perimeter_extrusion_width"
	OptPerimeterLoop                   OptionID = "perimeter_loop"
	OptExternalPerimetersFirst         OptionID = "external_perimeters_first"
	OptPerimeterHolesFirst             OptionID = "perimeter_holes_first"
	OptFuzzySkin                       OptionID = "fuzzy_skin"
	OptOverhangsWidth                  OptionID = "overhangs_width"
	OptOverhangsWidthSpeed             OptionID = "overhangs_width_speed"
	OptOverhangsDynamicSpeed           OptionID = "overhangs_dynamic_speed"
	OptOverhangsDynamicFlow            OptionID = "overhangs_dynamic_flow"
	OptOverhangsFlowRatio              OptionID = "overhangs_flow_ratio"
	OptOverhangsReverse                OptionID = "overhangs_reverse"
	OptBridgeFlowRatio                 OptionID = "bridge_flow_ratio"
)

// FuzzySkin selects which perimeters get surface perturbation.
type FuzzySkin string

// Fuzzy skin modes.
const (
	FuzzySkinNone     FuzzySkin = "none"
	FuzzySkinExternal FuzzySkin = "external"
	FuzzySkinAll      FuzzySkin = "all"
)

// RegionConfig is the resolved parameter snapshot of one print region.
type RegionConfig struct {
	Perimeters                      int            `yaml:"perimeters" toml:"perimeters"`
	PerimeterExtrusionWidth         FloatOrPercent `yaml:"perimeter_extrusion_width" toml:"perimeter_extrusion_width"`
	ExternalPerimeterExtrusionWidth FloatOrPercent `yaml:"external_perimeter_extrusion_width" toml:"external_perimeter_extrusion_width"`
	// PerimeterLoop joins nested perimeters into one continuous extrusion.
	PerimeterLoop           bool      `yaml:"perimeter_loop" toml:"perimeter_loop"`
	ExternalPerimetersFirst bool      `yaml:"external_perimeters_first" toml:"external_perimeters_first"`
	PerimeterHolesFirst     bool      `yaml:"perimeter_holes_first" toml:"perimeter_holes_first"`
	FuzzySkin               FuzzySkin `yaml:"fuzzy_skin" toml:"fuzzy_skin"`

	// OverhangsWidth is the overhang distance at which dynamic flow saturates.
	OverhangsWidth FloatOrPercent `yaml:"overhangs_width" toml:"overhangs_width"`
	// OverhangsWidthSpeed overrides OverhangsWidth for dynamic speed.
	OverhangsWidthSpeed   Switch[FloatOrPercent] `yaml:"overhangs_width_speed" toml:"overhangs_width_speed"`
	OverhangsDynamicSpeed Switch[graph.Data]     `yaml:"overhangs_dynamic_speed" toml:"overhangs_dynamic_speed"`
	OverhangsDynamicFlow  Switch[graph.Data]     `yaml:"overhangs_dynamic_flow" toml:"overhangs_dynamic_flow"`
	OverhangsFlowRatio    Switch[FloatOrPercent] `yaml:"overhangs_flow_ratio" toml:"overhangs_flow_ratio"`
	OverhangsReverse      bool                   `yaml:"overhangs_reverse" toml:"overhangs_reverse"`
	// BridgeFlowRatio scales the bridging cross-section, in percent.
	BridgeFlowRatio FloatOrPercent `yaml:"bridge_flow_ratio" toml:"bridge_flow_ratio"`
}

// DefaultRegion returns the baseline region configuration.
func DefaultRegion() RegionConfig {
	return RegionConfig{
		Perimeters:                      3,
		PerimeterExtrusionWidth:         Percent(112.5),
		ExternalPerimeterExtrusionWidth: Percent(105),
		ExternalPerimetersFirst:         true,
		FuzzySkin:                       FuzzySkinNone,
		OverhangsWidth:                  Percent(75),
		OverhangsWidthSpeed:             On(Percent(55)),
		OverhangsDynamicSpeed: On(graph.New(
			graph.Point{X: 0, Y: 0},
			graph.Point{X: 50, Y: 40},
			graph.Point{X: 100, Y: 100},
		)),
		OverhangsDynamicFlow: Off(graph.New(
			graph.Point{X: 0, Y: 0},
			graph.Point{X: 100, Y: 100},
		)),
		OverhangsFlowRatio: On(Percent(100)),
		BridgeFlowRatio:    Percent(100),
	}
}

var regionOptions = map[OptionID]func(c *RegionConfig) Value{
	OptPerimeters:                      func(c *RegionConfig) Value { return IntValue(c.Perimeters) },
	OptPerimeterExtrusionWidth:         func(c *RegionConfig) Value { return FloatValue(c.PerimeterExtrusionWidth, true) },
	OptExternalPerimeterExtrusionWidth: func(c *RegionConfig) Value { return FloatValue(c.ExternalPerimeterExtrusionWidth, true) },
	OptPerimeterLoop:                   func(c *RegionConfig) Value { return BoolValue(c.PerimeterLoop) },
	OptExternalPerimetersFirst:         func(c *RegionConfig) Value { return BoolValue(c.ExternalPerimetersFirst) },
	OptPerimeterHolesFirst:             func(c *RegionConfig) Value { return BoolValue(c.PerimeterHolesFirst) },
	OptFuzzySkin:                       func(c *RegionConfig) Value { return StringValue(string(c.FuzzySkin)) },
	OptOverhangsWidth:                  func(c *RegionConfig) Value { return FloatValue(c.OverhangsWidth, true) },
	OptOverhangsWidthSpeed: func(c *RegionConfig) Value {
		return FloatValue(c.OverhangsWidthSpeed.Value, c.OverhangsWidthSpeed.Enabled)
	},
	OptOverhangsDynamicSpeed: func(c *RegionConfig) Value {
		return GraphValue(c.OverhangsDynamicSpeed.Value, c.OverhangsDynamicSpeed.Enabled)
	},
	OptOverhangsDynamicFlow: func(c *RegionConfig) Value {
		return GraphValue(c.OverhangsDynamicFlow.Value, c.OverhangsDynamicFlow.Enabled)
	},
	OptOverhangsFlowRatio: func(c *RegionConfig) Value {
		return FloatValue(c.OverhangsFlowRatio.Value, c.OverhangsFlowRatio.Enabled)
	},
	OptOverhangsReverse: func(c *RegionConfig) Value { return BoolValue(c.OverhangsReverse) },
	OptBridgeFlowRatio:  func(c *RegionConfig) Value { return FloatValue(c.BridgeFlowRatio, true) },
}

// Option returns the value of the option with the given id.
func (c *RegionConfig) Option(id OptionID) (Value, bool) {
	get, ok := regionOptions[id]
	if !ok {
		return Value{}, false
	}
	return get(c), true
}

// Has reports whether id names a region option.
func Has(id OptionID) bool {
	_, ok := regionOptions[id]
	return ok
}

// DefaultGroups is the catalog of option groups tracked by settings
// segregation. Options in one group always vary together.
func DefaultGroups() [][]OptionID {
	return [][]OptionID{
		{OptPerimeterExtrusionWidth, OptExternalPerimeterExtrusionWidth},
		{OptPerimeters},
		{OptFuzzySkin},
		{OptOverhangsWidth, OptOverhangsWidthSpeed, OptOverhangsDynamicSpeed},
		{OptOverhangsDynamicFlow, OptOverhangsFlowRatio},
	}
}
