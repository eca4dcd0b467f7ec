// Package perimeter turns layer slices into perimeter loops.
//
// Generation runs in two steps. Build (or FromExtrusionLines for
// variable-width input) produces a Hierarchy: a forest of loops where every
// node's children lie inside it. Traverse then serializes the forest into an
// extrusion tree, either emitting every loop on its own or splicing nested
// loops into one continuous extrusion when perimeter_loop is set.
//
// When the slices of the layer below are known, every loop is annotated
// with overhang information: parts hanging further than overhangs_width
// beyond the lower slices become bridge-flow overhang perimeters, and the
// rest is marked for dynamic processing by package overhang.
package perimeter

import (
	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/config"
	"github.com/gogpu/toolpath/extrusion"
	"github.com/gogpu/toolpath/regions"
	"github.com/gogpu/toolpath/spatial"
	"github.com/gogpu/toolpath/surface"
)

// Generator builds and traverses perimeters for one layer region.
type Generator struct {
	params Parameters
	opts   options
	// support is the lower slices grown by overhangs_width.
	support *spatial.Boundary
	// steep is the lower slices grown by one external perimeter width.
	steep *spatial.Boundary
}

// NewGenerator returns a generator for p. The lower-slice indices are built
// once here.
func NewGenerator(p Parameters, opts ...Option) *Generator {
	g := &Generator{params: p, opts: defaultOptions()}
	for _, o := range opts {
		o(&g.opts)
	}
	if p.LowerSlices != nil {
		g.support = spatial.NewBoundary(toolpath.OffsetEx(p.LowerSlices, toolpath.Scale(p.OverhangsWidth())))
		g.steep = spatial.NewBoundary(toolpath.OffsetEx(p.LowerSlices, p.ExternalPerimeter.ScaledWidth()))
	}
	return g
}

// Parameters returns the generator inputs.
func (g *Generator) Parameters() Parameters { return g.params }

// Result is the output of Generate.
type Result struct {
	// Loops holds one collection per island, in print order.
	Loops *extrusion.Collection
	// FillArea is the area left for infill inside the perimeters.
	FillArea toolpath.ExPolygons
}

// SettingsFunc returns the settings index segregated for a surface, or nil
// when one configuration applies to all of it.
type SettingsFunc func(surface.Surface) *regions.RegionSettings

// Generate builds perimeters for every surface. When rs is not nil, each
// surface is first split by the perimeter count and width values that
// apply to its parts.
func (g *Generator) Generate(srfs surface.Surfaces, rs SettingsFunc) Result {
	res := Result{Loops: &extrusion.Collection{CanSort: true}}
	var pos toolpath.Point
	for _, srf := range srfs {
		var settings *regions.RegionSettings
		if rs != nil {
			settings = rs(srf)
		}
		for _, part := range g.parts(srf.ExPolygon, settings) {
			pg := g.with(part.params)
			h, fill := pg.Build(part.area, srf.ExtraPerimeters)
			res.FillArea = append(res.FillArea, fill...)
			if h.Len() == 0 {
				continue
			}
			islands := pg.Traverse(h, pos)
			if islands.Empty() {
				continue
			}
			pos = islands.LastPoint()
			res.Loops.Append(islands.Entities...)
			toolpath.Logger().Debug("perimeter: surface done",
				"layer", part.params.LayerID, "loops", h.Len(), "islands", len(islands.Entities))
		}
	}
	return res
}

// with returns a generator sharing the lower-slice indices of g.
func (g *Generator) with(p Parameters) *Generator {
	c := *g
	c.params = p
	return &c
}

type part struct {
	area   toolpath.ExPolygon
	params Parameters
}

// parts splits ep by the segregated perimeter settings.
func (g *Generator) parts(ep toolpath.ExPolygon, rs *regions.RegionSettings) []part {
	if rs == nil {
		return []part{{area: ep, params: g.params}}
	}
	widths := rs.Areas(config.OptPerimeterExtrusionWidth)
	counts := rs.Areas(config.OptPerimeters)
	if len(widths) == 0 {
		widths = []regions.Entry{{}}
	}
	if len(counts) == 0 {
		counts = []regions.Entry{{}}
	}
	var out []part
	for _, w := range widths {
		byWidth := w.Area.Intersections(toolpath.ExPolygons{ep})
		for _, c := range counts {
			p := g.params.WithSettings(w.Value).WithSettings(c.Value)
			for _, area := range c.Area.Intersections(byWidth) {
				out = append(out, part{area: area, params: p})
			}
		}
	}
	return out
}
