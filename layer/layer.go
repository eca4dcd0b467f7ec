// Package layer runs perimeter generation and overhang processing over the
// layers of an object.
//
// Layers only depend on the read-only slices of the layer below, so
// Process handles them concurrently. The previous-layer indices are built
// once per layer before any layer is processed.
package layer

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/config"
	"github.com/gogpu/toolpath/extrusion"
	"github.com/gogpu/toolpath/flow"
	"github.com/gogpu/toolpath/internal/parallel"
	"github.com/gogpu/toolpath/overhang"
	"github.com/gogpu/toolpath/perimeter"
	"github.com/gogpu/toolpath/regions"
	"github.com/gogpu/toolpath/spatial"
	"github.com/gogpu/toolpath/surface"
)

// ErrNoRegion is returned for a layer without any region.
var ErrNoRegion = errors.New("layer: no region")

// Region is the part of a layer printed with one configuration.
type Region struct {
	Config config.RegionConfig
	Slices surface.Surfaces
}

// Layer is one slice of the object, bottom first.
type Layer struct {
	ID      int
	Regions []Region
	// CurledLines are segments of this layer expected to lift, read by the
	// layer above.
	CurledLines []spatial.CurledLine
}

// Slices returns the union of all region slices.
func (l *Layer) Slices() toolpath.ExPolygons {
	var pp toolpath.Polygons
	for i := range l.Regions {
		pp = append(pp, l.Regions[i].Slices.ToPolygons()...)
	}
	return toolpath.UnionEx(pp)
}

// Job is the input of Process.
type Job struct {
	Print    config.PrintConfig
	Extruder int
	Layers   []Layer
}

// Result holds the perimeters of one layer.
type Result struct {
	LayerID    int
	Perimeters *extrusion.Collection
	FillArea   toolpath.ExPolygons
	Stats      Stats
}

// below are the read-only indices of a layer, used by the layer above.
// boundary measures distances to the supported area, nil on the top layer.
type below struct {
	slices   toolpath.ExPolygons
	boundary *spatial.Boundary
	curled   *spatial.CurledLines
}

// Process generates the perimeters of every layer. Cancellation is checked
// between layers.
func Process(ctx context.Context, job *Job, opts ...Option) ([]Result, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	pool := parallel.NewWorkerPool(o.workers)
	defer pool.Close()

	n := len(job.Layers)
	lower := make([]below, n)
	err := pool.Run(ctx, n, func(_ context.Context, i int) error {
		l := &job.Layers[i]
		b := below{slices: l.Slices()}
		if i+1 < n {
			b.boundary = spatial.NewBoundary(supportArea(b.slices, &job.Layers[i+1], &job.Print, job.Extruder))
		}
		if len(l.CurledLines) > 0 {
			b.curled = spatial.NewCurledLines(l.CurledLines)
		}
		lower[i] = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	results := make([]Result, n)
	err = pool.Run(ctx, n, func(_ context.Context, i int) error {
		var prev *below
		if i > 0 {
			prev = &lower[i-1]
		}
		res, err := processLayer(job, &job.Layers[i], prev, &o)
		if err != nil {
			return fmt.Errorf("layer %d: %w", job.Layers[i].ID, err)
		}
		results[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	toolpath.Logger().Info("layer: job done", "layers", n)
	return results, nil
}

func processLayer(job *Job, l *Layer, prev *below, o *options) (Result, error) {
	if len(l.Regions) == 0 {
		return Result{}, ErrNoRegion
	}
	base := &l.Regions[0].Config
	params, err := perimeter.NewParameters(l.ID, base, &job.Print, job.Extruder)
	if err != nil {
		return Result{}, err
	}
	if prev != nil {
		params.LowerSlices = prev.slices
	}

	var srfs surface.Surfaces
	var settings perimeter.SettingsFunc
	if len(l.Regions) == 1 {
		srfs = l.Regions[0].Slices
	} else {
		srfs.Append(surface.Internal, l.Slices())
		settings = segregator(base, l.Regions)
	}

	gen := perimeter.NewGenerator(params, o.perimeter...)
	out := gen.Generate(srfs, settings)
	loops := out.Loops
	if prev != nil {
		nozzle := job.Print.Nozzle(job.Extruder)
		var curled overhang.CurledIndex
		if prev.curled != nil {
			curled = prev.curled
		}
		proc := overhang.NewProcessor(prev.boundary, curled, nozzle, o.overhang...)
		if loops, err = proc.SplitCollection(loops); err != nil {
			return Result{}, err
		}
		err = extrusion.Walk(loops, func(p *extrusion.Path) error {
			*p = *overhang.ApplyFlow(p, base, &job.Print, job.Extruder)
			return nil
		})
		if err != nil {
			return Result{}, err
		}
	}

	res := Result{LayerID: l.ID, Perimeters: loops, FillArea: out.FillArea}
	res.Stats, err = Collect(loops, base, &job.Print, job.Extruder)
	if err != nil {
		return Result{}, err
	}
	toolpath.Logger().Debug("layer: done", "layer", l.ID,
		"paths", res.Stats.Paths, "overhangs", res.Stats.OverhangPaths)
	return res, nil
}

// supportArea shrinks the slices below by half the external perimeter width
// of the layer above, so a distance of 0 means the extrusion edge is flush
// with the layer below. An invalid width leaves the slices as they are;
// processLayer reports it.
func supportArea(slices toolpath.ExPolygons, above *Layer, print *config.PrintConfig, extruder int) toolpath.ExPolygons {
	if len(above.Regions) == 0 {
		return slices
	}
	f, err := flow.FromWidth(above.Regions[0].Config.ExternalPerimeterExtrusionWidth, print.Nozzle(extruder), print.LayerHeight)
	if err != nil {
		return slices
	}
	return toolpath.OffsetEx(slices, -toolpath.Scale(f.Width/2))
}

// layerRegion exposes a Region to settings segregation.
type layerRegion struct{ r *Region }

func (lr layerRegion) Config() *config.RegionConfig { return &lr.r.Config }
func (lr layerRegion) Slices() surface.Surfaces     { return lr.r.Slices }

// segregator indexes the region settings of each merged surface.
func segregator(base *config.RegionConfig, rs []Region) perimeter.SettingsFunc {
	lrs := make([]regions.LayerRegion, len(rs))
	for i := range rs {
		lrs[i] = layerRegion{&rs[i]}
	}
	return func(srf surface.Surface) *regions.RegionSettings {
		s := regions.New(base, config.DefaultGroups())
		s.SegregateRegions(srf.ExPolygon, lrs)
		return s
	}
}
