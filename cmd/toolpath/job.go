package main

import (
	"errors"
	"fmt"

	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/config"
	"github.com/gogpu/toolpath/layer"
	"github.com/gogpu/toolpath/spatial"
	"github.com/gogpu/toolpath/surface"
)

// jobFile is the on-disk description of a job. Layers are listed bottom
// first and numbered from 0.
type jobFile struct {
	Print    config.PrintConfig  `yaml:"print" toml:"print"`
	Extruder int                 `yaml:"extruder" toml:"extruder"`
	Region   config.RegionConfig `yaml:"region" toml:"region"`
	Layers   []layerFile         `yaml:"layers" toml:"layers"`
}

type layerFile struct {
	Regions     []regionFile `yaml:"regions" toml:"regions"`
	CurledLines []curledLine `yaml:"curled_lines" toml:"curled_lines"`
}

// regionFile overrides options of the job region for one part of a layer.
type regionFile struct {
	Config map[string]any `yaml:"config" toml:"config"`
	Slices []shape        `yaml:"slices" toml:"slices"`
}

// shape is an expolygon with coordinates in mm.
type shape struct {
	Contour [][2]float64   `yaml:"contour" toml:"contour"`
	Holes   [][][2]float64 `yaml:"holes" toml:"holes"`
}

type curledLine struct {
	A      [2]float64 `yaml:"a" toml:"a"`
	B      [2]float64 `yaml:"b" toml:"b"`
	Height float64    `yaml:"height" toml:"height"`
}

var errNoLayers = errors.New("job has no layers")

// loadJob reads a YAML or TOML job file.
func loadJob(path string) (*layer.Job, error) {
	f := jobFile{
		Print:  config.DefaultPrint(),
		Region: config.DefaultRegion(),
	}
	if err := config.Load(path, &f); err != nil {
		return nil, err
	}
	return f.job()
}

func (f *jobFile) job() (*layer.Job, error) {
	if len(f.Layers) == 0 {
		return nil, errNoLayers
	}
	job := &layer.Job{
		Print:    f.Print,
		Extruder: f.Extruder,
		Layers:   make([]layer.Layer, len(f.Layers)),
	}
	for i, lf := range f.Layers {
		l := layer.Layer{ID: i}
		for j, rf := range lf.Regions {
			cfg, err := f.Region.WithOverrides(rf.Config)
			if err != nil {
				return nil, fmt.Errorf("layer %d region %d: %w", i, j, err)
			}
			r := layer.Region{Config: cfg}
			for k, s := range rf.Slices {
				ep, err := s.exPolygon()
				if err != nil {
					return nil, fmt.Errorf("layer %d region %d slice %d: %w", i, j, k, err)
				}
				r.Slices = append(r.Slices, surface.New(surface.Internal, ep))
			}
			l.Regions = append(l.Regions, r)
		}
		for _, c := range lf.CurledLines {
			l.CurledLines = append(l.CurledLines, spatial.CurledLine{
				Linef:        toolpath.Linef{A: toolpath.V2(c.A[0], c.A[1]), B: toolpath.V2(c.B[0], c.B[1])},
				CurledHeight: c.Height,
			})
		}
		job.Layers[i] = l
	}
	return job, nil
}

func (s shape) exPolygon() (toolpath.ExPolygon, error) {
	ep := toolpath.ExPolygon{Contour: polygon(s.Contour)}
	if ep.Contour.Empty() {
		return ep, fmt.Errorf("contour has %d points, need 3", len(s.Contour))
	}
	ep.Contour.MakeCounterClockwise()
	for i, h := range s.Holes {
		pg := polygon(h)
		if pg.Empty() {
			return ep, fmt.Errorf("hole %d has %d points, need 3", i, len(h))
		}
		pg.MakeClockwise()
		ep.Holes = append(ep.Holes, pg)
	}
	return ep, nil
}

func polygon(pts [][2]float64) toolpath.Polygon {
	pg := toolpath.Polygon{Points: make([]toolpath.Point, len(pts))}
	for i, p := range pts {
		pg.Points[i] = toolpath.NewScaledPoint(p[0], p[1])
	}
	return pg
}
