package surface

import "github.com/gogpu/toolpath"

// Surfaces is an ordered set of surfaces.
type Surfaces []Surface

// Append adds one surface of type t per expolygon.
func (ss *Surfaces) Append(t Type, eps toolpath.ExPolygons) {
	for _, ep := range eps {
		*ss = append(*ss, New(t, ep))
	}
}

// AppendLike adds one surface per expolygon, copying the attributes of tmpl.
func (ss *Surfaces) AppendLike(tmpl Surface, eps toolpath.ExPolygons) {
	for _, ep := range eps {
		*ss = append(*ss, tmpl.WithExPolygon(ep))
	}
}

// NumberPolygons counts contours and holes.
func (ss Surfaces) NumberPolygons() int {
	n := 0
	for _, s := range ss {
		n += len(s.ExPolygon.Holes) + 1
	}
	return n
}

// ToPolygons flattens the surfaces into contours and holes.
func (ss Surfaces) ToPolygons() toolpath.Polygons {
	out := make(toolpath.Polygons, 0, ss.NumberPolygons())
	for _, s := range ss {
		out = append(out, s.ExPolygon.Polygons()...)
	}
	return out
}

// ToExPolygons returns the geometry of every surface.
func (ss Surfaces) ToExPolygons() toolpath.ExPolygons {
	out := make(toolpath.ExPolygons, 0, len(ss))
	for _, s := range ss {
		out = append(out, s.ExPolygon)
	}
	return out
}

// Filter returns the surfaces of type t.
func (ss Surfaces) Filter(t Type) Surfaces {
	var out Surfaces
	for _, s := range ss {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}

// Extents returns the box enclosing every surface.
func (ss Surfaces) Extents() toolpath.BoundingBox {
	var bb toolpath.BoundingBox
	for _, s := range ss {
		bb.Merge(s.ExPolygon.BoundingBox())
	}
	return bb
}
