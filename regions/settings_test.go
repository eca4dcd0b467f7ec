package regions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/config"
	"github.com/gogpu/toolpath/surface"
)

type fakeRegion struct {
	cfg    config.RegionConfig
	slices surface.Surfaces
}

func (r *fakeRegion) Config() *config.RegionConfig { return &r.cfg }
func (r *fakeRegion) Slices() surface.Surfaces     { return r.slices }

func region(cfg config.RegionConfig, rects ...[4]float64) *fakeRegion {
	r := &fakeRegion{cfg: cfg}
	for _, b := range rects {
		r.slices = append(r.slices, surface.New(surface.Internal,
			toolpath.ExPolygon{Contour: toolpath.NewRectangle(b[0], b[1], b[2], b[3])}))
	}
	return r
}

func mm2(a float64) float64 { return a * toolpath.ScalingFactor * toolpath.ScalingFactor }

func withPerimeters(n int) config.RegionConfig {
	c := config.DefaultRegion()
	c.Perimeters = n
	return c
}

func target() toolpath.ExPolygon {
	return toolpath.ExPolygon{Contour: toolpath.NewRectangle(0, 0, 20, 10)}
}

func TestSegregateDefaultEverywhere(t *testing.T) {
	def := config.DefaultRegion()
	rs := New(&def, config.DefaultGroups())
	rs.SegregateRegions(target(), []LayerRegion{
		region(def, [4]float64{0, 0, 10, 10}),
		region(def, [4]float64{10, 0, 20, 10}),
	})
	for _, group := range config.DefaultGroups() {
		entries := rs.Areas(group[0])
		require.Len(t, entries, 1, "group %s", group[0])
		assert.True(t, entries[0].Area.Empty())
		assert.False(t, rs.HasManyConfig(group[0]))
		solo, ok := rs.SoloConfig(group[0])
		require.True(t, ok)
		assert.True(t, solo.Equal(NewSettingsValue(&def, group)))
	}
}

func TestSegregateNoRegions(t *testing.T) {
	def := config.DefaultRegion()
	rs := New(&def, config.DefaultGroups())
	rs.SegregateRegions(target(), nil)
	entries := rs.Areas(config.OptPerimeters)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Area.Empty())
	assert.Nil(t, rs.Areas(config.OptBridgeFlowRatio))
}

func TestSegregateTwoValues(t *testing.T) {
	def := config.DefaultRegion()
	rs := New(&def, config.DefaultGroups())
	rs.SegregateRegions(target(), []LayerRegion{
		region(def, [4]float64{0, 0, 10, 10}),
		region(withPerimeters(5), [4]float64{10, 0, 20, 10}),
	})

	require.True(t, rs.HasManyConfig(config.OptPerimeters))
	entries := rs.Areas(config.OptPerimeters)
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.Len(t, e.Area.ExPolygons, 1)
		require.Len(t, e.Area.BoundingBoxes, 1)
		assert.InDelta(t, 100, mm2(e.Area.ExPolygons.Area()), 0.01)
	}
	// sorted by value
	v0, _ := entries[0].Value.Value(config.OptPerimeters)
	v1, _ := entries[1].Value.Value("")
	assert.Equal(t, 3, v0.Int())
	assert.Equal(t, 5, v1.Int())

	_, ok := rs.SoloConfig(config.OptPerimeters)
	assert.False(t, ok)
	assert.False(t, rs.HasManyConfig(config.OptFuzzySkin))
}

func TestSegregateDropsDisjoint(t *testing.T) {
	def := config.DefaultRegion()
	tests := []struct {
		name    string
		regions []LayerRegion
		want    int
		cleared bool
	}{
		{
			name: "other value outside bounding box",
			regions: []LayerRegion{
				region(withPerimeters(5), [4]float64{0, 0, 10, 10}),
				region(def, [4]float64{50, 50, 60, 60}),
			},
			want:    1,
			cleared: true,
		},
		{
			name: "shared value split across regions",
			regions: []LayerRegion{
				region(withPerimeters(5), [4]float64{0, 0, 5, 10}),
				region(withPerimeters(5), [4]float64{15, 0, 20, 10}),
				region(def, [4]float64{5, 0, 15, 10}),
			},
			want: 2,
		},
		{
			name: "bounding boxes overlap but polygons do not",
			regions: []LayerRegion{
				region(withPerimeters(5), [4]float64{0, 0, 20, 10}),
				&fakeRegion{cfg: def, slices: surface.Surfaces{surface.New(surface.Internal,
					toolpath.ExPolygon{Contour: toolpath.NewScaledPolygon(15, 30, 40, 5, 40, 30)})}},
			},
			want:    1,
			cleared: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := New(&def, config.DefaultGroups())
			rs.SegregateRegions(target(), tt.regions)
			entries := rs.Areas(config.OptPerimeters)
			require.Len(t, entries, tt.want)
			for _, e := range entries {
				assert.Equal(t, tt.cleared, e.Area.Empty())
			}
		})
	}
}

func TestClipExpolyIntersections(t *testing.T) {
	input := toolpath.ExPolygons{{Contour: toolpath.NewRectangle(0, 0, 10, 10)}}

	var empty ClipExpoly
	assert.Equal(t, input, empty.Intersections(input))
	assert.Equal(t, input, empty.IntersectionsOffset(toolpath.Scale(1), input))

	c := ClipExpoly{ExPolygons: toolpath.ExPolygons{
		{Contour: toolpath.NewRectangle(5, 5, 15, 15)},
		{Contour: toolpath.NewRectangle(40, 40, 50, 50)},
	}}
	c.ComputeBoundingBoxes()
	require.Len(t, c.BoundingBoxes, 2)

	got := c.Intersections(input)
	require.Len(t, got, 1)
	assert.InDelta(t, 25, mm2(got.Area()), 1e-6)

	grown := c.IntersectionsOffset(toolpath.Scale(1), input)
	require.Len(t, grown, 1)
	assert.InDelta(t, 36, mm2(grown.Area()), 0.01)

	c.Clear()
	assert.True(t, c.Empty())
}
