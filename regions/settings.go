// Package regions partitions a shared surface by the configuration values
// that apply to each part of it.
//
// When several print regions overlap one layer surface, a tracked option
// group (for example the perimeter widths) may take different values in
// different places. RegionSettings computes, once per surface, which value
// applies where so later stages can clip their geometry instead of
// re-evaluating every region.
package regions

import (
	"slices"

	"github.com/gogpu/toolpath"
	"github.com/gogpu/toolpath/config"
	"github.com/gogpu/toolpath/surface"
)

const (
	bboxMargin  = toolpath.ScaledEpsilon * 3
	seamClosing = toolpath.ScaledEpsilon * 10
)

// LayerRegion is one print region on the current layer.
type LayerRegion interface {
	Config() *config.RegionConfig
	Slices() surface.Surfaces
}

// Entry is the area where a settings value applies.
type Entry struct {
	Value SettingsValue
	Area  ClipExpoly
}

// RegionSettings indexes the areas of each tracked option group.
type RegionSettings struct {
	config *config.RegionConfig
	groups [][]config.OptionID
	// areas is keyed by the first option of each group; entries are sorted
	// by value.
	areas map[config.OptionID][]Entry
}

// New returns an index for the given baseline config and option groups.
func New(defaults *config.RegionConfig, groups [][]config.OptionID) *RegionSettings {
	return &RegionSettings{
		config: defaults,
		groups: groups,
		areas:  make(map[config.OptionID][]Entry),
	}
}

type surfaceKey struct{ region, surface int }

// SegregateRegions recomputes the index for srf covered by regions.
func (rs *RegionSettings) SegregateRegions(srf toolpath.ExPolygon, regions []LayerRegion) {
	clear(rs.areas)
	bb := toolpath.NewBoundingBox(srf.Contour.Points)
	bb.Offset(bboxMargin)

	overlap := make(map[surfaceKey]toolpath.ExPolygons)
	clipped := func(ri, si int, s surface.Surface) toolpath.ExPolygons {
		key := surfaceKey{ri, si}
		if eps, ok := overlap[key]; ok {
			return eps
		}
		var eps toolpath.ExPolygons
		if s.ExPolygon.BoundingBox().Overlap(bb) {
			eps = toolpath.OffsetEx(toolpath.ClipToBoundingBox(s.ExPolygon, bb), seamClosing)
		}
		overlap[key] = eps
		return eps
	}

	for _, group := range rs.groups {
		if len(group) == 0 {
			continue
		}
		def := NewSettingsValue(rs.config, group)
		var entries []Entry
		if rs.manyValues(def, group, regions) {
			for ri, r := range regions {
				key := NewSettingsValue(r.Config(), group)
				idx := findOrInsert(&entries, key)
				for si, s := range r.Slices() {
					if eps := clipped(ri, si, s); len(eps) > 0 {
						entries[idx].Area.ExPolygons = append(entries[idx].Area.ExPolygons, eps...)
					}
				}
			}
			entries = dropEmpty(entries)
			if len(entries) > 1 {
				for i := range entries {
					area := &entries[i].Area
					area.ExPolygons = toolpath.OffsetEx(toolpath.UnionEx(area.ExPolygons.Polygons()), -seamClosing)
					area.ComputeBoundingBoxes()
				}
				entries = dropEmpty(entries)
			}
			if len(entries) == 1 {
				entries[0].Area.Clear()
			}
		}
		if len(entries) == 0 {
			entries = []Entry{{Value: def}}
		}
		rs.areas[group[0]] = entries
		toolpath.Logger().Debug("regions: segregated option group",
			"group", string(group[0]), "values", len(entries))
	}
}

func (rs *RegionSettings) manyValues(def SettingsValue, group []config.OptionID, regions []LayerRegion) bool {
	for _, r := range regions {
		if !NewSettingsValue(r.Config(), group).Equal(def) {
			return true
		}
	}
	return false
}

func dropEmpty(entries []Entry) []Entry {
	return slices.DeleteFunc(entries, func(e Entry) bool { return e.Area.Empty() })
}

func findOrInsert(entries *[]Entry, key SettingsValue) int {
	idx, found := slices.BinarySearchFunc(*entries, key, func(e Entry, k SettingsValue) int {
		return e.Value.Compare(k)
	})
	if !found {
		*entries = slices.Insert(*entries, idx, Entry{Value: key})
	}
	return idx
}

// HasManyConfig reports whether the group led by id takes more than one
// value over the surface.
func (rs *RegionSettings) HasManyConfig(id config.OptionID) bool {
	return len(rs.areas[id]) > 1
}

// Areas returns the entries of the group led by id, sorted by value. The
// result is nil for untracked groups.
func (rs *RegionSettings) Areas(id config.OptionID) []Entry {
	return rs.areas[id]
}

// SoloConfig returns the single value of the group led by id. ok is false
// when the group is partitioned or untracked.
func (rs *RegionSettings) SoloConfig(id config.OptionID) (SettingsValue, bool) {
	entries := rs.areas[id]
	if len(entries) != 1 {
		return SettingsValue{}, false
	}
	return entries[0].Value, true
}
