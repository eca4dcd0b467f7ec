package perimeter

import (
	"fmt"
	"math"

	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/config"
	"github.com/gogpu/toolpath/flow"
	"github.com/gogpu/toolpath/regions"
)

// Parameters are the resolved inputs of perimeter generation for one
// layer region.
type Parameters struct {
	LayerID  int
	Extruder int
	Config   *config.RegionConfig
	Print    *config.PrintConfig

	// Perimeters is the number of loops around each island.
	Perimeters int

	Perimeter         flow.Flow
	ExternalPerimeter flow.Flow
	// Overhang is the flow of perimeters printed over air.
	Overhang flow.Flow

	// LowerSlices are the slices of the layer below, nil on the first
	// layer.
	LowerSlices toolpath.ExPolygons
}

// NewParameters resolves flows for a layer from the region and print
// configuration.
func NewParameters(layerID int, region *config.RegionConfig, print *config.PrintConfig, extruder int) (Parameters, error) {
	nozzle := print.Nozzle(extruder)
	p := Parameters{
		LayerID:    layerID,
		Extruder:   extruder,
		Config:     region,
		Print:      print,
		Perimeters: region.Perimeters,
	}
	var err error
	if p.Perimeter, err = flow.FromWidth(region.PerimeterExtrusionWidth, nozzle, print.LayerHeight); err != nil {
		return Parameters{}, fmt.Errorf("perimeter: perimeter width: %w", err)
	}
	if p.ExternalPerimeter, err = flow.FromWidth(region.ExternalPerimeterExtrusionWidth, nozzle, print.LayerHeight); err != nil {
		return Parameters{}, fmt.Errorf("perimeter: external perimeter width: %w", err)
	}
	p.Overhang = flow.Bridging(nozzle, region.BridgeFlowRatio.AbsValue(1))
	return p, nil
}

// WithSettings returns a copy with the perimeter count and widths taken
// from a segregated settings value, when it carries them.
func (p Parameters) WithSettings(sv regions.SettingsValue) Parameters {
	nozzle := p.Print.Nozzle(p.Extruder)
	if v, ok := sv.Value(config.OptPerimeters); ok {
		p.Perimeters = v.Int()
	}
	if v, ok := sv.Value(config.OptPerimeterExtrusionWidth); ok {
		if f, err := flow.FromWidth(v.FloatOrPercent(), nozzle, p.Perimeter.Height); err == nil {
			p.Perimeter = f
		}
	}
	if v, ok := sv.Value(config.OptExternalPerimeterExtrusionWidth); ok {
		if f, err := flow.FromWidth(v.FloatOrPercent(), nozzle, p.ExternalPerimeter.Height); err == nil {
			p.ExternalPerimeter = f
		}
	}
	return p
}

// PerimeterSpacing is the distance between two inner perimeters.
func (p Parameters) PerimeterSpacing() toolpath.Coord { return p.Perimeter.ScaledSpacing() }

// ExternalSpacing is the distance between the external perimeter and the
// first inner one.
func (p Parameters) ExternalSpacing() toolpath.Coord {
	return toolpath.Scale(p.ExternalPerimeter.SpacingTo(p.Perimeter))
}

// OverhangsWidth is the distance beyond the lower slices up to which a
// perimeter still counts as supported, in mm.
func (p Parameters) OverhangsWidth() float64 {
	return math.Max(0, p.Config.OverhangsWidth.AbsValue(p.Print.Nozzle(p.Extruder)))
}

// dynamicOverhangs reports whether loops need per-segment overhang data.
func (p Parameters) dynamicOverhangs() bool {
	return p.Config.OverhangsDynamicSpeed.Enabled ||
		(p.Config.OverhangsDynamicFlow.Enabled && p.Config.OverhangsFlowRatio.Enabled)
}
