// Package toolpath provides the geometry core of a perimeter generator for
// fused filament 3D printing.
//
// # Overview
//
// A sliced layer is a set of expolygons: outer contours with holes. The
// packages of this module turn those slices into extrusion paths for the
// perimeter walls, split wherever the wall hangs over the layer below so
// speed and flow can follow the amount of support.
//
// # Coordinates
//
// Geometry is stored in scaled integer coordinates (Coord, one unit is
// ScalingFactor millimetres) so boolean operations are exact. Vec2 holds
// unscaled millimetre values for the floating point stages.
//
//	square := toolpath.NewRectangle(0, 0, 20, 20)
//	inner := toolpath.Offset(toolpath.Polygons{square}, toolpath.Scale(-0.45))
//
// # Architecture
//
// The module is organized into:
//   - toolpath: points, polygons, expolygons, offsets and clipping
//   - graph, config: parameter curves and region/print settings
//   - surface, regions: typed slices and per-area settings segregation
//   - flow, extrusion: extrusion cross-sections and the path tree
//   - perimeter: loop hierarchy, ordering and loop joining
//   - spatial, overhang: lower-layer indices and overhang splitting
//   - layer: the per-layer pipeline, run concurrently
//   - preview: raster previews of a path tree
//
// # Logging
//
// Diagnostics are written to a log/slog logger that discards everything by
// default. Use SetLogger to enable it.
package toolpath
