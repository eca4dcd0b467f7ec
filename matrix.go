package toolpath

import "math"

// Matrix is a 2D affine transform over millimetre coordinates, stored as
// the top two rows of a 3x3 matrix:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translation returns a transform moving points by (x, y).
func Translation(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scaling returns a transform scaling the axes by sx and sy.
func Scaling(sx, sy float64) Matrix {
	return Matrix{A: sx, E: sy}
}

// Rotation returns a counter-clockwise rotation by angle radians about
// the origin.
func Rotation(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{A: cos, B: -sin, D: sin, E: cos}
}

// Multiply returns m * o, the transform applying o first.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.B*o.D,
		B: m.A*o.B + m.B*o.E,
		C: m.A*o.C + m.B*o.F + m.C,
		D: m.D*o.A + m.E*o.D,
		E: m.D*o.B + m.E*o.E,
		F: m.D*o.C + m.E*o.F + m.F,
	}
}

// Apply transforms a point.
func (m Matrix) Apply(v Vec2) Vec2 {
	return Vec2{
		X: m.A*v.X + m.B*v.Y + m.C,
		Y: m.D*v.X + m.E*v.Y + m.F,
	}
}

// Invert returns the inverse transform. ok is false for singular
// matrices.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}
	r := 1 / det
	return Matrix{
		A: m.E * r,
		B: -m.B * r,
		C: (m.B*m.F - m.C*m.E) * r,
		D: -m.D * r,
		E: m.A * r,
		F: (m.C*m.D - m.A*m.F) * r,
	}, true
}

// IsIdentity reports whether m leaves every point unchanged.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}
