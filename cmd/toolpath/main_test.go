package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/config"
	"github.com/gogpu/toolpath/layer"
)

const yamlJob = `
print:
  nozzle_diameter: [0.4]
region:
  perimeters: 3
layers:
  - regions:
      - slices:
          - contour: [[0, 0], [20, 0], [20, 20], [0, 20]]
  - regions:
      - config:
          perimeters: 2
          overhangs_width: "60%"
        slices:
          - contour: [[0, 0], [30, 0], [30, 20], [0, 20]]
            holes:
              - [[10, 5], [10, 15], [15, 15], [15, 5]]
    curled_lines:
      - {a: [0, 0], b: [1, 1], height: 0.1}
`

const tomlJob = `
extruder = 0

[region]
perimeters = 3

[[layers]]
[[layers.regions]]
[[layers.regions.slices]]
contour = [[0.0, 0.0], [20.0, 0.0], [20.0, 20.0], [0.0, 20.0]]

[[layers]]
[[layers.regions]]
config = { perimeters = 2, overhangs_width = "60%" }
[[layers.regions.slices]]
contour = [[0.0, 0.0], [30.0, 0.0], [30.0, 20.0], [0.0, 20.0]]
holes = [[[10.0, 5.0], [10.0, 15.0], [15.0, 15.0], [15.0, 5.0]]]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadJob(t *testing.T) {
	tests := []struct {
		name, file, content string
		curled              int
	}{
		{"yaml", "job.yaml", yamlJob, 1},
		{"toml", "job.toml", tomlJob, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := loadJob(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			require.Len(t, job.Layers, 2)
			assert.Equal(t, []float64{0.4}, job.Print.NozzleDiameter)

			bottom, top := job.Layers[0], job.Layers[1]
			assert.Equal(t, 0, bottom.ID)
			assert.Equal(t, 1, top.ID)
			require.Len(t, bottom.Regions, 1)
			require.Len(t, top.Regions, 1)
			assert.Equal(t, 3, bottom.Regions[0].Config.Perimeters)
			assert.Equal(t, config.Percent(75), bottom.Regions[0].Config.OverhangsWidth)
			assert.Equal(t, 2, top.Regions[0].Config.Perimeters)
			assert.Equal(t, config.Percent(60), top.Regions[0].Config.OverhangsWidth)

			require.Len(t, top.Regions[0].Slices, 1)
			ep := top.Regions[0].Slices[0].ExPolygon
			assert.True(t, ep.Contour.IsCounterClockwise())
			require.Len(t, ep.Holes, 1)
			assert.False(t, ep.Holes[0].IsCounterClockwise())
			assert.InDelta(t, 600-50, ep.Area()*toolpath.ScalingFactor*toolpath.ScalingFactor, 1e-3)
			assert.Len(t, top.CurledLines, tt.curled)
		})
	}
}

func TestLoadJobErrors(t *testing.T) {
	tests := []struct {
		name, content, want string
	}{
		{"no layers", "region:\n  perimeters: 2\n", "no layers"},
		{"unknown option", `
layers:
  - regions:
      - config: {infill_density: "20%"}
`, "layer 0 region 0"},
		{"short contour", `
layers:
  - regions:
      - slices:
          - contour: [[0, 0], [1, 0]]
`, "layer 0 region 0 slice 0"},
		{"unknown key", "layerz: []\n", "layerz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadJob(writeFile(t, "job.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunJob(t *testing.T) {
	job, err := loadJob(writeFile(t, "job.yaml", yamlJob))
	require.NoError(t, err)
	results, err := layer.Process(context.Background(), job)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 3, results[0].Stats.Loops)
	assert.Equal(t, 4, results[1].Stats.Loops)
	assert.Positive(t, results[1].Stats.OverhangPaths)

	var out bytes.Buffer
	report(message.NewPrinter(language.English), &out, results)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "layer 0: 1 islands, 3 loops"), lines[0])
	assert.NotContains(t, lines[0], "overhang")
	assert.Contains(t, lines[1], "overhang paths")
	assert.True(t, strings.HasPrefix(lines[2], "total: 2 layers, 7 loops"), lines[2])

	path := filepath.Join(t.TempDir(), "layer.png")
	require.NoError(t, writePreview(path, job, &results[1], 5))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 30*5)
	assert.Greater(t, img.Bounds().Dy(), 20*5)
}

func TestReportGrouping(t *testing.T) {
	results := []layer.Result{{LayerID: 3, Stats: layer.Stats{Islands: 1, Loops: 1234, Paths: 1234, Length: 10, Volume: 1}}}
	var out bytes.Buffer
	report(message.NewPrinter(language.English), &out, results)
	assert.Contains(t, out.String(), "layer 3: 1 islands, 1,234 loops")
}

func TestRun(t *testing.T) {
	job := writeFile(t, "job.yaml", yamlJob)
	out := filepath.Join(t.TempDir(), "top.png")
	p := message.NewPrinter(language.English)

	require.NoError(t, run(job, p, runOptions{workers: 2, output: out, layer: -1, scale: 4}))
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	err = run(job, p, runOptions{output: out, layer: 5, scale: 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	err = run(filepath.Join(t.TempDir(), "job.json"), p, runOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrUnknownFormat)
}
