package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/toolpath/graph"
)

func TestFloatOrPercent(t *testing.T) {
	tests := []struct {
		in    string
		want  FloatOrPercent
		ratio float64
		abs   float64
	}{
		{"0.45", Abs(0.45), 0.4, 0.45},
		{"110%", Percent(110), 0.4, 0.44},
		{" 50% ", Percent(50), 0.4, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f FloatOrPercent
			require.NoError(t, f.UnmarshalText([]byte(tt.in)))
			assert.Equal(t, tt.want, f)
			assert.InDelta(t, tt.abs, f.AbsValue(tt.ratio), 1e-12)
		})
	}

	var f FloatOrPercent
	assert.Error(t, f.UnmarshalText([]byte("wide")))
}

func TestValueCompare(t *testing.T) {
	a := FloatValue(Abs(0.4), true)
	b := FloatValue(Abs(0.4), true)
	assert.True(t, a.Equal(b))
	assert.Equal(t, 0, a.Compare(b))

	assert.Equal(t, -1, FloatValue(Abs(0.4), false).Compare(a))
	assert.Equal(t, -1, FloatValue(Abs(0.3), true).Compare(a))
	assert.NotEqual(t, 0, FloatValue(Percent(0.4), true).Compare(a))
	assert.NotEqual(t, 0, IntValue(1).Compare(BoolValue(true)))

	g1 := GraphValue(graph.New(graph.Point{X: 0, Y: 0}, graph.Point{X: 100, Y: 100}), true)
	g2 := GraphValue(graph.New(graph.Point{X: 0, Y: 0}, graph.Point{X: 100, Y: 90}), true)
	assert.False(t, g1.Equal(g2))
	assert.Equal(t, -g1.Compare(g2), g2.Compare(g1))
}

func TestRegionOptions(t *testing.T) {
	c := DefaultRegion()
	for _, group := range DefaultGroups() {
		for _, id := range group {
			_, ok := c.Option(id)
			assert.True(t, ok, "option %s", id)
			assert.True(t, Has(id))
		}
	}
	_, ok := c.Option("infill_density")
	assert.False(t, ok)

	v, _ := c.Option(OptPerimeters)
	assert.Equal(t, 3, v.Int())

	other := c
	other.Perimeters = 5
	v2, _ := other.Option(OptPerimeters)
	assert.False(t, v.Equal(v2))
}

func TestPrintConfig(t *testing.T) {
	p := PrintConfig{NozzleDiameter: []float64{0.4, 0.6}}
	assert.Equal(t, 0.6, p.Nozzle(1))
	assert.Equal(t, 0.4, p.Nozzle(7))
	_, ok := p.FanGraph(0)
	assert.False(t, ok)

	d := DefaultPrint()
	_, ok = d.FanGraph(0)
	assert.False(t, ok)
}

type document struct {
	Print  PrintConfig  `yaml:"print" toml:"print"`
	Region RegionConfig `yaml:"region" toml:"region"`
}

func TestDecodeYAML(t *testing.T) {
	src := `
print:
  nozzle_diameter: [0.4]
  layer_height: 0.2
region:
  perimeters: 2
  perimeter_extrusion_width: "110%"
  overhangs_width: 0.3
  overhangs_dynamic_speed:
    enabled: true
    value: "0:0,50:40,100:100"
`
	var doc document
	require.NoError(t, Decode(strings.NewReader(src), FormatYAML, &doc))
	assert.Equal(t, []float64{0.4}, doc.Print.NozzleDiameter)
	assert.Equal(t, 2, doc.Region.Perimeters)
	assert.Equal(t, Percent(110), doc.Region.PerimeterExtrusionWidth)
	assert.Equal(t, Abs(0.3), doc.Region.OverhangsWidth)
	assert.True(t, doc.Region.OverhangsDynamicSpeed.Enabled)
	assert.Len(t, doc.Region.OverhangsDynamicSpeed.Value.Points, 3)

	err := Decode(strings.NewReader("region:\n  infill: 3\n"), FormatYAML, &doc)
	assert.Error(t, err)
}

func TestLoadTOML(t *testing.T) {
	src := `
[print]
nozzle_diameter = [0.6]
layer_height = 0.3

[region]
perimeters = 4
external_perimeter_extrusion_width = "0.65"
fuzzy_skin = "external"

[region.overhangs_flow_ratio]
enabled = false
value = "80%"
`
	path := filepath.Join(t.TempDir(), "job.toml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	var doc document
	require.NoError(t, Load(path, &doc))
	assert.Equal(t, 0.6, doc.Print.Nozzle(0))
	assert.Equal(t, 4, doc.Region.Perimeters)
	assert.Equal(t, Abs(0.65), doc.Region.ExternalPerimeterExtrusionWidth)
	assert.Equal(t, FuzzySkinExternal, doc.Region.FuzzySkin)
	assert.False(t, doc.Region.OverhangsFlowRatio.Enabled)
	assert.Equal(t, Percent(80), doc.Region.OverhangsFlowRatio.Value)
}

func TestLoadUnknownExtension(t *testing.T) {
	var doc document
	assert.ErrorIs(t, Load("job.ini", &doc), ErrUnknownFormat)
}

func TestWithOverrides(t *testing.T) {
	base := DefaultRegion()
	got, err := base.WithOverrides(map[string]any{
		"perimeters":      int64(5),
		"overhangs_width": "60%",
		"overhangs_dynamic_flow": map[string]any{
			"enabled": true,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, got.Perimeters)
	assert.Equal(t, Percent(60), got.OverhangsWidth)
	assert.True(t, got.OverhangsDynamicFlow.Enabled)
	assert.True(t, got.OverhangsDynamicFlow.Value.Equal(base.OverhangsDynamicFlow.Value))
	assert.Equal(t, base.PerimeterExtrusionWidth, got.PerimeterExtrusionWidth)
	assert.Equal(t, 3, base.Perimeters)

	same, err := base.WithOverrides(nil)
	require.NoError(t, err)
	assert.Equal(t, base.Perimeters, same.Perimeters)

	_, err = base.WithOverrides(map[string]any{"infill_density": "20%"})
	assert.Error(t, err)
}
