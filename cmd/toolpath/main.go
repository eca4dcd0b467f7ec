// Command toolpath generates perimeters for a sliced object and reports
// per-layer statistics.
//
// Usage:
//
//	toolpath [flags] job.yaml
//
// The job file lists the machine settings, the default region settings and
// the slices of every layer. Optionally one layer is rendered to a PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/extrusion"
	"github.com/gogpu/toolpath/layer"
	"github.com/gogpu/toolpath/overhang"
	"github.com/gogpu/toolpath/preview"
)

func main() {
	var (
		workers = flag.Int("workers", 0, "layers processed concurrently (0: one per CPU)")
		output  = flag.String("png", "", "write a preview of one layer to this file")
		index   = flag.Int("layer", -1, "layer to preview (-1: topmost)")
		scale   = flag.Float64("scale", 20, "preview resolution in pixels per mm")
		lang    = flag.String("lang", "en", "language used to format numbers")
		verbose = flag.Bool("v", false, "log per-layer details")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] job.yaml|job.toml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	toolpath.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	tag, err := language.Parse(*lang)
	if err != nil {
		log.Fatalf("Invalid language %q: %v", *lang, err)
	}
	opts := runOptions{workers: *workers, output: *output, layer: *index, scale: *scale}
	if err := run(flag.Arg(0), message.NewPrinter(tag), opts); err != nil {
		log.Fatal(err)
	}
}

type runOptions struct {
	workers int
	output  string
	layer   int
	scale   float64
}

func run(path string, p *message.Printer, o runOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	job, err := loadJob(path)
	if err != nil {
		return fmt.Errorf("load job: %w", err)
	}
	results, err := layer.Process(ctx, job, layer.WithWorkers(o.workers))
	if err != nil {
		return fmt.Errorf("process job: %w", err)
	}
	report(p, os.Stdout, results)

	if o.output == "" {
		return nil
	}
	i := o.layer
	if i < 0 {
		i = len(results) - 1
	}
	if i >= len(results) {
		return fmt.Errorf("layer %d out of range, job has %d layers", i, len(results))
	}
	if err := writePreview(o.output, job, &results[i], o.scale); err != nil {
		return fmt.Errorf("save preview: %w", err)
	}
	log.Printf("Layer %d saved to %s\n", results[i].LayerID, o.output)
	return nil
}

// report prints one line per layer followed by the totals.
func report(p *message.Printer, w io.Writer, results []layer.Result) {
	var total layer.Stats
	for _, r := range results {
		s := r.Stats
		p.Fprintf(w, "layer %d: %d islands, %d loops, %d paths, %.2f mm, %.2f mm³", r.LayerID, s.Islands, s.Loops, s.Paths, s.Length, s.Volume)
		if s.OverhangPaths > 0 {
			p.Fprintf(w, ", %d overhang paths, min speed %.0f%%", s.OverhangPaths, s.MinSpeedRatio*100)
		}
		p.Fprintln(w)
		total.Islands += s.Islands
		total.Loops += s.Loops
		total.Paths += s.Paths
		total.Length += s.Length
		total.Volume += s.Volume
		total.OverhangPaths += s.OverhangPaths
	}
	p.Fprintf(w, "total: %d layers, %d loops, %.2f mm, %.2f mm³, %d overhang paths\n",
		len(results), total.Loops, total.Length, total.Volume, total.OverhangPaths)
}

// writePreview renders the perimeters of r shaded by their overhang speed.
func writePreview(path string, job *layer.Job, r *layer.Result, scale float64) error {
	bb, err := preview.Bounds(r.Perimeters)
	if err != nil {
		return err
	}
	var l *layer.Layer
	for i := range job.Layers {
		if job.Layers[i].ID == r.LayerID {
			l = &job.Layers[i]
		}
	}
	speed := func(p *extrusion.Path) float64 {
		if _, ok := p.Attributes.Overhang(); !ok || l == nil || len(l.Regions) == 0 {
			return 1
		}
		ratio, _ := overhang.Speed(p.Attributes, &l.Regions[0].Config, &job.Print, job.Extruder)
		return ratio
	}
	img, err := preview.Render(r.Perimeters, bb, preview.WithScale(scale), preview.WithSpeed(speed))
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
