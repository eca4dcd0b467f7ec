package layer

import (
	"math"

	"github.com/gogpu/toolpath/config"
	"github.com/gogpu/toolpath/extrusion"
	"github.com/gogpu/toolpath/overhang"
)

// Stats summarizes the perimeters of a layer.
type Stats struct {
	Islands int
	Loops   int
	Paths   int
	// Length is the total extrusion length in mm.
	Length float64
	// Volume is the extruded volume in mm³.
	Volume float64
	// OverhangPaths counts paths slowed down by dynamic overhang speed.
	OverhangPaths int
	// MinSpeedRatio is the lowest dynamic speed ratio, 1 without
	// overhangs.
	MinSpeedRatio float64
}

// Collect computes the statistics of a perimeter tree.
func Collect(c *extrusion.Collection, region *config.RegionConfig, print *config.PrintConfig, extruder int) (Stats, error) {
	s := Stats{Islands: len(c.Entities), MinSpeedRatio: 1}
	for _, e := range c.Entities {
		if island, ok := e.(*extrusion.Collection); ok {
			for _, ie := range island.Entities {
				if _, ok := ie.(*extrusion.Loop); ok {
					s.Loops++
				}
			}
		}
	}
	err := extrusion.Walk(c, func(p *extrusion.Path) error {
		s.Paths++
		l := p.Length()
		s.Length += l
		s.Volume += l * p.Attributes.MM3PerMM
		if _, ok := p.Attributes.Overhang(); !ok || !region.OverhangsDynamicSpeed.Enabled {
			return nil
		}
		ratio, _ := overhang.Speed(p.Attributes, region, print, extruder)
		if ratio < 1 {
			s.OverhangPaths++
		}
		s.MinSpeedRatio = math.Min(s.MinSpeedRatio, ratio)
		return nil
	})
	return s, err
}
