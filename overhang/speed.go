package overhang

import (
	"math"

	"github.com/gogpu/toolpath/config"
	"github.com/gogpu/toolpath/extrusion"
	"github.com/gogpu/toolpath/flow"
)

// Values returned by Speed when a curve does not apply.
const (
	NoSpeed = -1.0
	NoFan   = -1.0
)

// Speed derives the dynamic speed ratio and fan speed of a path from its
// overhang attributes. The ratio is 1 for fully supported paths and falls
// towards 0 over air; it is 0 when dynamic speed is off, leaving the
// choice to the static overhang speed. Paths without overhang attributes
// get NoSpeed and NoFan. The fan speed is a percentage, or NoFan.
func Speed(attrs extrusion.Attributes, region *config.RegionConfig, print *config.PrintConfig, extruder int) (ratio, fan float64) {
	oh, ok := attrs.Overhang()
	if !ok {
		return NoSpeed, NoFan
	}
	if region.OverhangsDynamicSpeed.Enabled {
		ratio = speedRatio(oh, region, print.Nozzle(extruder))
	}
	fan = NoFan
	if g, ok := print.FanGraph(extruder); ok && oh.StartDistance > 0 && oh.EndDistance > 0 {
		at := func(d float64) float64 { return g.Interpolate(100 - 100*math.Min(1, d)) }
		fan = math.Min(100, math.Max(0, math.Min(at(oh.StartDistance), at(oh.EndDistance))))
	}
	return ratio, fan
}

func speedRatio(oh extrusion.OverhangAttributes, region *config.RegionConfig, nozzle float64) float64 {
	if oh.StartDistance == 0 && oh.EndDistance == 0 {
		return 1
	}
	maxDist := region.OverhangsWidth.AbsValue(nozzle)
	if region.OverhangsWidthSpeed.Enabled {
		maxDist = region.OverhangsWidthSpeed.Value.AbsValue(nozzle)
	}
	g := region.OverhangsDynamicSpeed.Value.Normalized()
	at := func(d float64) float64 { return g.Interpolate(100 - 100*relative(d, maxDist)) }
	r := math.Min(at(oh.StartDistance), at(oh.EndDistance))
	r = math.Min(r, g.Interpolate(100-100*oh.ProximityToCurledLines))
	return clamp01(r / 100)
}

// relative maps a distance onto [0, 1] of maxDist.
func relative(d, maxDist float64) float64 {
	if maxDist <= 0 {
		if d > 0 {
			return 1
		}
		return 0
	}
	return math.Min(1, d/maxDist)
}

// ApplyFlow returns path with its flow blended towards the overhang
// bridging flow by the dynamic flow curve. Already bridged paths and
// regions without dynamic flow are returned unchanged. Paths overhanging
// by more than their width switch to a round cross-section; the others
// keep their width and get thinner.
func ApplyFlow(path *extrusion.Path, region *config.RegionConfig, print *config.PrintConfig, extruder int) *extrusion.Path {
	attrs := path.Attributes
	oh, ok := attrs.Overhang()
	if !ok || oh.FullOverhangFlow || !region.OverhangsFlowRatio.Enabled || !region.OverhangsDynamicFlow.Enabled {
		return path
	}
	nozzle := print.Nozzle(extruder)
	maxDist := region.OverhangsWidth.AbsValue(nozzle)
	g := region.OverhangsDynamicFlow.Value.Normalized()
	at := func(d float64) float64 { return g.Interpolate(100 * relative(d, maxDist)) }
	ratio := clamp01((at(oh.StartDistance) + at(oh.EndDistance)) / 200)

	bridge := flow.Bridging(nozzle, region.OverhangsFlowRatio.Value.AbsValue(1))
	mm3 := attrs.MM3PerMM*(1-ratio) + bridge.MM3PerMM()*ratio
	switch {
	case oh.MaxDistance() > attrs.Width:
		d := flow.CircleDiameter(mm3)
		attrs = attrs.WithFlow(mm3, d, d)
	case ratio > 0:
		h, ok := flow.HeightFor(attrs.Width, mm3)
		if !ok {
			return path
		}
		attrs = attrs.WithFlow(mm3, attrs.Width, h)
	default:
		return path
	}
	return extrusion.NewPath(path.Polyline.Clone().Points, attrs)
}
