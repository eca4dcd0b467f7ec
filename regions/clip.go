package regions

import "github.com/gogpu/toolpath"

// ClipExpoly is the area over which one settings value applies, with one
// bounding box per expolygon. An empty ClipExpoly applies everywhere.
type ClipExpoly struct {
	ExPolygons toolpath.ExPolygons
	// BoundingBoxes has one box per entry of ExPolygons.
	BoundingBoxes []toolpath.BoundingBox
}

// Empty reports whether the area is unrestricted.
func (c *ClipExpoly) Empty() bool { return len(c.ExPolygons) == 0 }

// ComputeBoundingBoxes rebuilds the per-expolygon boxes.
func (c *ClipExpoly) ComputeBoundingBoxes() {
	c.BoundingBoxes = c.BoundingBoxes[:0]
	for _, ep := range c.ExPolygons {
		c.BoundingBoxes = append(c.BoundingBoxes, ep.BoundingBox())
	}
}

// Clear drops the area, making it unrestricted.
func (c *ClipExpoly) Clear() {
	c.ExPolygons = nil
	c.BoundingBoxes = nil
}

// Intersections clips toClip to the area. An empty area returns toClip
// unchanged.
func (c *ClipExpoly) Intersections(toClip toolpath.ExPolygons) toolpath.ExPolygons {
	if c.Empty() {
		return toClip
	}
	var out toolpath.ExPolygons
	for _, ep := range toClip {
		bb := ep.BoundingBox()
		for i, area := range c.ExPolygons {
			if !bb.Overlap(c.BoundingBoxes[i]) {
				continue
			}
			out = append(out, toolpath.IntersectionEx(ep.Polygons(), area.Polygons())...)
		}
	}
	return out
}

// IntersectionsOffset clips toClip to the area grown by offset.
func (c *ClipExpoly) IntersectionsOffset(offset toolpath.Coord, toClip toolpath.ExPolygons) toolpath.ExPolygons {
	if c.Empty() {
		return toClip
	}
	var out toolpath.ExPolygons
	for _, ep := range toClip {
		bb := ep.BoundingBox()
		for i, area := range c.ExPolygons {
			grown := c.BoundingBoxes[i]
			grown.Offset(offset)
			if !grown.Overlap(bb) {
				continue
			}
			clip := toolpath.OffsetEx(toolpath.ExPolygons{area}, offset)
			out = append(out, toolpath.IntersectionEx(ep.Polygons(), clip.Polygons())...)
		}
	}
	return out
}
