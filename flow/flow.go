// Package flow models the cross-section of an extruded line.
//
// A regular extrusion is a rectangle with semicircular ends: its
// cross-section area is h*(w - h*(1 - π/4)). A bridge extrusion hangs in the
// air and is treated as a circle of diameter w.
package flow

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/config"
)

// BridgeExtraSpacing is added between neighbouring bridge lines, in mm.
const BridgeExtraSpacing = 0.05

// AutoWidthFactor is the nozzle multiple used when a width option is zero.
const AutoWidthFactor = 1.125

// roundFactor is the area lost by rounding both ends of a unit square.
const roundFactor = 1 - math.Pi/4

// ErrInvalid is returned for flows with non-positive dimensions.
var ErrInvalid = errors.New("flow: invalid dimensions")

// Flow is the cross-section of an extrusion, in mm.
type Flow struct {
	Width          float64
	Height         float64
	NozzleDiameter float64
	Bridge         bool
}

// New returns a regular flow.
func New(width, height, nozzle float64) Flow {
	return Flow{Width: width, Height: height, NozzleDiameter: nozzle}
}

// FromWidth resolves a float-or-percent width option. Percentages are
// relative to the nozzle diameter and zero selects an automatic width.
func FromWidth(width config.FloatOrPercent, nozzle, height float64) (Flow, error) {
	w := width.AbsValue(nozzle)
	if w == 0 {
		w = AutoWidthFactor * nozzle
	}
	if w <= 0 || height <= 0 || nozzle <= 0 {
		return Flow{}, fmt.Errorf("%w: width %g, height %g, nozzle %g", ErrInvalid, w, height, nozzle)
	}
	return New(w, height, nozzle), nil
}

// FromSpacing returns the regular flow whose spacing equals spacing.
func FromSpacing(spacing, height, nozzle float64) Flow {
	return New(spacing+height*roundFactor, height, nozzle)
}

// Bridging returns a circular flow for unsupported spans. The diameter is
// the nozzle diameter scaled so the area follows ratio.
func Bridging(nozzle, ratio float64) Flow {
	d := nozzle * math.Sqrt(ratio)
	return Flow{Width: d, Height: d, NozzleDiameter: nozzle, Bridge: true}
}

// MM3PerMM returns the volume extruded per mm of travel.
func (f Flow) MM3PerMM() float64 {
	if f.Bridge {
		return f.Width * f.Width * math.Pi / 4
	}
	return f.Height * (f.Width - f.Height*roundFactor)
}

// Spacing returns the distance between the centre lines of two touching
// extrusions of this flow.
func (f Flow) Spacing() float64 {
	if f.Bridge {
		return f.Width + BridgeExtraSpacing
	}
	return f.Width - f.Height*roundFactor
}

// SpacingTo returns the centre line distance to a neighbouring extrusion of
// another flow with the same height.
func (f Flow) SpacingTo(o Flow) float64 {
	if f.Bridge {
		return 0.5*f.Width + 0.5*o.Width + BridgeExtraSpacing
	}
	return 0.5*f.Spacing() + 0.5*o.Spacing()
}

// ScaledWidth returns the width in scaled units.
func (f Flow) ScaledWidth() toolpath.Coord { return toolpath.Scale(f.Width) }

// ScaledSpacing returns the spacing in scaled units.
func (f Flow) ScaledSpacing() toolpath.Coord { return toolpath.Scale(f.Spacing()) }

// WithWidth returns a copy with another width.
func (f Flow) WithWidth(w float64) Flow {
	f.Width = w
	return f
}

// WithHeight returns a copy with another height.
func (f Flow) WithHeight(h float64) Flow {
	f.Height = h
	return f
}

// HeightFor solves the flat-bottom cross-section for the height that gives
// mm3PerMM at the given width. ok is false when no such height exists.
func HeightFor(width, mm3PerMM float64) (h float64, ok bool) {
	disc := width*width/(4*roundFactor*roundFactor) - mm3PerMM/roundFactor
	if disc < 0 {
		return 0, false
	}
	return width/(2*roundFactor) - math.Sqrt(disc), true
}

// CircleDiameter returns the diameter of the circle of area mm3PerMM.
func CircleDiameter(mm3PerMM float64) float64 {
	return math.Sqrt(mm3PerMM / (math.Pi / 4))
}
