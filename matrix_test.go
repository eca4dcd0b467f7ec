package toolpath

import (
	"math"
	"testing"
)

func TestMatrixApply(t *testing.T) {
	const epsilon = 1e-9

	tests := []struct {
		name string
		m    Matrix
		in   Vec2
		want Vec2
	}{
		{"identity", Identity(), V2(3, 4), V2(3, 4)},
		{"translation", Translation(10, -2), V2(3, 4), V2(13, 2)},
		{"scaling", Scaling(2, -1), V2(3, 4), V2(6, -4)},
		{"rotation 90deg", Rotation(math.Pi / 2), V2(1, 0), V2(0, 1)},
		{"scale after translate", Scaling(2, 2).Multiply(Translation(1, 1)), V2(0, 0), V2(2, 2)},
		{"translate after scale", Translation(1, 1).Multiply(Scaling(2, 2)), V2(0, 0), V2(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Apply(tt.in)
			if !got.Approx(tt.want, epsilon) {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translation(5, 7).Multiply(Rotation(0.3)).Multiply(Scaling(2, 3))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert() reported a singular matrix")
	}
	p := V2(1.5, -2)
	if got := inv.Apply(m.Apply(p)); !got.Approx(p, 1e-9) {
		t.Errorf("round trip = %v, want %v", got, p)
	}
	if id := m.Multiply(inv); !id.Apply(p).Approx(p, 1e-9) {
		t.Errorf("m * inv is not the identity: %+v", id)
	}

	if _, ok := Scaling(0, 1).Invert(); ok {
		t.Error("Invert() of a singular matrix reported ok")
	}
}

func TestMatrixIsIdentity(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
	if !Scaling(1, 1).IsIdentity() {
		t.Error("Scaling(1, 1).IsIdentity() = false")
	}
	if Translation(0, 1).IsIdentity() {
		t.Error("Translation(0, 1).IsIdentity() = true")
	}
}
