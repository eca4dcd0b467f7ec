package toolpath

import "math"

// Coord is a scaled integer coordinate. One unit is ScalingFactor millimetres.
type Coord = int64

// ScalingFactor is the size of one Coord unit in millimetres.
const ScalingFactor = 1e-6

// Epsilon is the geometric tolerance in millimetres.
const Epsilon = 1e-4

// ScaledEpsilon is Epsilon expressed in Coord units.
const ScaledEpsilon Coord = 100

// Scale converts millimetres to Coord units, rounding to the nearest unit.
func Scale(mm float64) Coord {
	return Coord(math.Round(mm / ScalingFactor))
}

// Unscale converts Coord units to millimetres.
func Unscale(c Coord) float64 {
	return float64(c) * ScalingFactor
}

// Point is a position in scaled integer coordinates.
// Y increases up, so counter-clockwise rings have positive area.
type Point struct {
	X, Y Coord
}

// Pt is a convenience function to create a Point.
func Pt(x, y Coord) Point {
	return Point{X: x, Y: y}
}

// NewScaledPoint converts a millimetre position to a Point.
func NewScaledPoint(x, y float64) Point {
	return Point{X: Scale(x), Y: Scale(y)}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// DistanceTo returns the euclidean distance in Coord units.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

// DistanceSq returns the squared distance in Coord units.
func (p Point) DistanceSq(q Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return dx*dx + dy*dy
}

// CoincidesWithEpsilon reports whether both coordinates differ by less than
// ScaledEpsilon.
func (p Point) CoincidesWithEpsilon(q Point) bool {
	return abs(p.X-q.X) < ScaledEpsilon && abs(p.Y-q.Y) < ScaledEpsilon
}

// Unscaled returns the position in millimetres.
func (p Point) Unscaled() Vec2 {
	return Vec2{X: Unscale(p.X), Y: Unscale(p.Y)}
}

// Lerp interpolates between p and q, rounding to the nearest unit.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + Coord(math.Round(float64(q.X-p.X)*t)),
		Y: p.Y + Coord(math.Round(float64(q.Y-p.Y)*t)),
	}
}

func abs(c Coord) Coord {
	if c < 0 {
		return -c
	}
	return c
}

// Vec2 is an unscaled position or displacement in millimetres.
type Vec2 struct {
	X, Y float64
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Div returns the vector divided by a scalar.
func (v Vec2) Div(s float64) Vec2 {
	return Vec2{X: v.X / s, Y: v.Y / s}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the 2D cross product (scalar).
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Length returns the length of the vector.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the distance between two positions.
func (v Vec2) Distance(w Vec2) float64 {
	return v.Sub(w).Length()
}

// Perp returns the perpendicular vector (rotated 90 degrees counter-clockwise).
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Lerp performs linear interpolation between two vectors.
func (v Vec2) Lerp(w Vec2, t float64) Vec2 {
	return Vec2{
		X: v.X + (w.X-v.X)*t,
		Y: v.Y + (w.Y-v.Y)*t,
	}
}

// Approx returns true if two vectors are approximately equal within epsilon.
func (v Vec2) Approx(w Vec2, epsilon float64) bool {
	return math.Abs(v.X-w.X) < epsilon && math.Abs(v.Y-w.Y) < epsilon
}

// Scaled converts a millimetre position to a Point.
func (v Vec2) Scaled() Point {
	return NewScaledPoint(v.X, v.Y)
}
