// Package extrusion defines the tree of extrusion entities produced by
// perimeter generation and consumed by seam placement and G-code emission.
//
// The tree is a closed set of variants:
//
//   - *Path: an open polyline with one set of Attributes
//   - *Loop: a closed chain of paths
//   - *MultiPath: an open chain of paths
//   - *Collection: an ordered group of entities
//
// Code that walks the tree switches on these four types and reports
// anything else with ErrUnknownEntity.
package extrusion

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/toolpath"
)

// ErrUnknownEntity is returned when a tree contains a value that is not one
// of the known entity variants.
var ErrUnknownEntity = errors.New("extrusion: unknown entity")

// Entity is one node of an extrusion tree.
type Entity interface {
	FirstPoint() toolpath.Point
	LastPoint() toolpath.Point
	// Length returns the travelled length in mm.
	Length() float64
	// Reverse inverts the print direction in place.
	Reverse()
	isEntity()
}

// Path is an open polyline extruded with constant attributes.
type Path struct {
	Polyline   toolpath.Polyline
	Attributes Attributes
}

// NewPath returns a path over pts.
func NewPath(pts []toolpath.Point, attrs Attributes) *Path {
	return &Path{Polyline: toolpath.Polyline{Points: pts}, Attributes: attrs}
}

func (*Path) isEntity() {}

// FirstPoint returns the start of the path.
func (p *Path) FirstPoint() toolpath.Point { return p.Polyline.FirstPoint() }

// LastPoint returns the end of the path.
func (p *Path) LastPoint() toolpath.Point { return p.Polyline.LastPoint() }

// Length returns the polyline length in mm.
func (p *Path) Length() float64 { return p.Polyline.Length() * toolpath.ScalingFactor }

// Reverse inverts the point order.
func (p *Path) Reverse() { p.Polyline.Reverse() }

// Role returns the role of the path.
func (p *Path) Role() Role { return p.Attributes.Role }

// Clone returns a deep copy.
func (p *Path) Clone() *Path {
	return &Path{Polyline: p.Polyline.Clone(), Attributes: p.Attributes}
}

// LoopRole classifies a closed loop within its island.
type LoopRole uint8

const (
	// LoopDefault is an outer contour loop.
	LoopDefault LoopRole = iota
	// LoopInternal is a loop that is neither contour nor hole boundary.
	LoopInternal
	// LoopHole runs around a hole.
	LoopHole
)

// Loop is a closed chain of paths. The last point of the last path equals
// the first point of the first path.
type Loop struct {
	Paths []*Path
	Role  LoopRole
	// SteepOverhang marks loops whose lower neighbour is far outside.
	SteepOverhang bool
	// Fuzzify requests surface perturbation downstream.
	Fuzzify bool
}

// NewLoop returns a loop made of a single path around pg, starting and
// ending at the first vertex.
func NewLoop(pg toolpath.Polygon, attrs Attributes, role LoopRole) *Loop {
	pts := make([]toolpath.Point, 0, pg.Len()+1)
	pts = append(pts, pg.Points...)
	pts = append(pts, pg.FirstPoint())
	return &Loop{Paths: []*Path{NewPath(pts, attrs)}, Role: role}
}

func (*Loop) isEntity() {}

// FirstPoint returns the loop start.
func (l *Loop) FirstPoint() toolpath.Point { return l.Paths[0].FirstPoint() }

// LastPoint returns the loop end, which equals FirstPoint for closed loops.
func (l *Loop) LastPoint() toolpath.Point { return l.Paths[len(l.Paths)-1].LastPoint() }

// Length returns the loop length in mm.
func (l *Loop) Length() float64 { return pathsLength(l.Paths) }

// Reverse inverts the direction of the loop.
func (l *Loop) Reverse() { reversePaths(l.Paths) }

// Polygon returns the loop as a ring.
func (l *Loop) Polygon() toolpath.Polygon {
	var pts []toolpath.Point
	for _, p := range l.Paths {
		n := len(p.Polyline.Points)
		if n == 0 {
			continue
		}
		pts = append(pts, p.Polyline.Points[:n-1]...)
	}
	return toolpath.Polygon{Points: pts}
}

// IsCounterClockwise reports the winding of the loop.
func (l *Loop) IsCounterClockwise() bool { return l.Polygon().IsCounterClockwise() }

// ExtrusionRole returns the role of the first path.
func (l *Loop) ExtrusionRole() Role { return l.Paths[0].Role() }

// MultiPath is an open chain of paths. Consecutive paths share endpoints.
type MultiPath struct {
	Paths []*Path
}

func (*MultiPath) isEntity() {}

// FirstPoint returns the chain start.
func (m *MultiPath) FirstPoint() toolpath.Point { return m.Paths[0].FirstPoint() }

// LastPoint returns the chain end.
func (m *MultiPath) LastPoint() toolpath.Point { return m.Paths[len(m.Paths)-1].LastPoint() }

// Length returns the chain length in mm.
func (m *MultiPath) Length() float64 { return pathsLength(m.Paths) }

// Reverse inverts the direction of the chain.
func (m *MultiPath) Reverse() { reversePaths(m.Paths) }

// Collection is an ordered group of entities. CanSort and CanReverse tell
// downstream sequencing whether it may reorder the children or flip them.
type Collection struct {
	Entities   []Entity
	CanSort    bool
	CanReverse bool
}

// NewCollection returns an empty collection with both permissions set.
func NewCollection() *Collection {
	return &Collection{CanSort: true, CanReverse: true}
}

func (*Collection) isEntity() {}

// Append adds entities at the end.
func (c *Collection) Append(es ...Entity) { c.Entities = append(c.Entities, es...) }

// Empty reports whether the collection has no children.
func (c *Collection) Empty() bool { return len(c.Entities) == 0 }

// FirstPoint returns the start of the first child.
func (c *Collection) FirstPoint() toolpath.Point { return c.Entities[0].FirstPoint() }

// LastPoint returns the end of the last child.
func (c *Collection) LastPoint() toolpath.Point { return c.Entities[len(c.Entities)-1].LastPoint() }

// Length returns the summed length of the children in mm.
func (c *Collection) Length() float64 {
	var l float64
	for _, e := range c.Entities {
		l += e.Length()
	}
	return l
}

// Reverse inverts the order of the children and each child.
func (c *Collection) Reverse() {
	slices.Reverse(c.Entities)
	for _, e := range c.Entities {
		e.Reverse()
	}
}

func pathsLength(paths []*Path) float64 {
	var l float64
	for _, p := range paths {
		l += p.Length()
	}
	return l
}

func reversePaths(paths []*Path) {
	slices.Reverse(paths)
	for _, p := range paths {
		p.Reverse()
	}
}

// Walk calls fn for every path of the tree in print order.
func Walk(e Entity, fn func(*Path) error) error {
	switch v := e.(type) {
	case *Path:
		return fn(v)
	case *Loop:
		return walkPaths(v.Paths, fn)
	case *MultiPath:
		return walkPaths(v.Paths, fn)
	case *Collection:
		for _, child := range v.Entities {
			if err := Walk(child, fn); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %T", ErrUnknownEntity, e)
}

func walkPaths(paths []*Path, fn func(*Path) error) error {
	for _, p := range paths {
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

// Flatten returns every path of the tree in print order.
func Flatten(e Entity) ([]*Path, error) {
	var out []*Path
	err := Walk(e, func(p *Path) error {
		out = append(out, p)
		return nil
	})
	return out, err
}

// Count returns the number of leaf entities (paths, loops and multipaths).
func Count(e Entity) int {
	if c, ok := e.(*Collection); ok {
		n := 0
		for _, child := range c.Entities {
			n += Count(child)
		}
		return n
	}
	return 1
}
