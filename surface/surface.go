// Package surface classifies the slice areas of a layer region.
//
// A Surface couples one ExPolygon with its role in the layer (top skin,
// bridge, sparse infill and so on) and a few thickness attributes computed
// by the slicing step. Surfaces are created once per layer region and are
// read-only afterwards.
package surface

import (
	"strconv"

	"github.com/gogpu/toolpath"
)

// Type is the role of a surface within its layer.
type Type uint8

const (
	// Top is a horizontal surface visible from above.
	Top Type = iota
	// Bottom is a horizontal surface visible from below, printed with normal flow.
	Bottom
	// BottomBridge is an unsupported bottom surface printed with bridging flow.
	BottomBridge
	// Internal is sparse infill.
	Internal
	// InternalSolid is solid infill supporting top surfaces or walls.
	InternalSolid
	// InternalBridge is the first dense layer over sparse infill.
	InternalBridge
	// InternalVoid is sparse infill that produces no extrusion.
	InternalVoid
	// Perimeter is the area covered by perimeters.
	Perimeter
	// SolidOverBridge is solid infill directly above a bottom bridge.
	SolidOverBridge
)

var typeNames = [...]string{
	Top:             "top",
	Bottom:          "bottom",
	BottomBridge:    "bottom-bridge",
	Internal:        "internal",
	InternalSolid:   "internal-solid",
	InternalBridge:  "internal-bridge",
	InternalVoid:    "internal-void",
	Perimeter:       "perimeter",
	SolidOverBridge: "solid-over-bridge",
}

// String returns the name of the type.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Surface is a typed polygon with holes.
type Surface struct {
	Type      Type
	ExPolygon toolpath.ExPolygon
	// Thickness in mm, -1 when unknown.
	Thickness float64
	// ThicknessLayers is the number of layers the surface spans.
	ThicknessLayers int
	// BridgeAngle in radians, counter-clockwise from east. Negative means
	// undefined.
	BridgeAngle     float64
	ExtraPerimeters int
}

// New returns a surface with default thickness attributes.
func New(t Type, ep toolpath.ExPolygon) Surface {
	return Surface{
		Type:            t,
		ExPolygon:       ep,
		Thickness:       -1,
		ThicknessLayers: 1,
		BridgeAngle:     -1,
	}
}

// WithExPolygon returns a copy of s covering ep instead.
func (s Surface) WithExPolygon(ep toolpath.ExPolygon) Surface {
	s.ExPolygon = ep
	return s
}

// Area returns the area in scaled units squared.
func (s Surface) Area() float64 { return s.ExPolygon.Area() }

// Empty reports whether the surface has no geometry.
func (s Surface) Empty() bool { return s.ExPolygon.Empty() }

// The predicates below ignore Perimeter.

// IsTop reports whether the surface is visible from above.
func (s Surface) IsTop() bool { return s.Type == Top }

// IsBottom reports whether the surface is visible from below.
func (s Surface) IsBottom() bool { return s.Type == Bottom || s.Type == BottomBridge }

// IsBridge reports whether the surface is printed with bridging flow.
func (s Surface) IsBridge() bool { return s.Type == BottomBridge || s.Type == InternalBridge }

// IsExternal reports whether the surface is a top or bottom skin.
func (s Surface) IsExternal() bool { return s.IsTop() || s.IsBottom() }

// IsInternal reports whether the surface is not a skin.
func (s Surface) IsInternal() bool { return !s.IsExternal() }

// IsSolid reports whether the surface is filled densely.
func (s Surface) IsSolid() bool {
	return s.IsExternal() ||
		s.Type == InternalSolid ||
		s.Type == SolidOverBridge ||
		s.Type == InternalBridge
}

// CouldMerge reports whether two surfaces share every attribute except
// geometry.
func CouldMerge(a, b Surface) bool {
	return a.Type == b.Type &&
		a.Thickness == b.Thickness &&
		a.ThicknessLayers == b.ThicknessLayers &&
		a.BridgeAngle == b.BridgeAngle
}
