package config

import "github.com/gogpu/toolpath/graph"

// PrintConfig holds the machine-wide parameters.
type PrintConfig struct {
	// NozzleDiameter is indexed by extruder id.
	NozzleDiameter []float64 `yaml:"nozzle_diameter" toml:"nozzle_diameter"`
	LayerHeight    float64   `yaml:"layer_height" toml:"layer_height"`
	// OverhangsDynamicFanSpeed is indexed by extruder id.
	OverhangsDynamicFanSpeed []Switch[graph.Data] `yaml:"overhangs_dynamic_fan_speed" toml:"overhangs_dynamic_fan_speed"`
}

// DefaultPrint returns a single 0.4 mm extruder setup.
func DefaultPrint() PrintConfig {
	return PrintConfig{
		NozzleDiameter: []float64{0.4},
		LayerHeight:    0.2,
		OverhangsDynamicFanSpeed: []Switch[graph.Data]{
			Off(graph.New(graph.Point{X: 0, Y: 0}, graph.Point{X: 100, Y: 100})),
		},
	}
}

// Nozzle returns the nozzle diameter of an extruder. Out of range ids use
// the first extruder.
func (c *PrintConfig) Nozzle(extruder int) float64 {
	if extruder >= 0 && extruder < len(c.NozzleDiameter) {
		return c.NozzleDiameter[extruder]
	}
	if len(c.NozzleDiameter) > 0 {
		return c.NozzleDiameter[0]
	}
	return 0.4
}

// FanGraph returns the dynamic fan curve of an extruder and whether it is
// enabled.
func (c *PrintConfig) FanGraph(extruder int) (graph.Data, bool) {
	if extruder < 0 || extruder >= len(c.OverhangsDynamicFanSpeed) {
		return graph.Data{}, false
	}
	s := c.OverhangsDynamicFanSpeed[extruder]
	return s.Value, s.Enabled
}
