package blit

import (
	"math"
	"testing"
)

func matNear(a, b float64) bool { return math.Abs(a-b) < 1e-12 }

func TestIdentity(t *testing.T) {
	m := Identity()
	x, y := m.Apply(3.5, -2)
	if x != 3.5 || y != -2 {
		t.Errorf("Identity.Apply(3.5, -2) = (%g, %g)", x, y)
	}
}

func TestTranslateScale(t *testing.T) {
	tests := []struct {
		name     string
		m        Matrix
		x, y     float64
		wantX    float64
		wantY    float64
	}{
		{"translate", Translate(10, 20), 1, 2, 11, 22},
		{"scale", Scale(2, 3), 1, 2, 2, 6},
		{"scale zero", Scale(0, 0), 5, 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx, gy := tt.m.Apply(tt.x, tt.y)
			if !matNear(gx, tt.wantX) || !matNear(gy, tt.wantY) {
				t.Errorf("Apply(%g, %g) = (%g, %g), want (%g, %g)",
					tt.x, tt.y, gx, gy, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestQuarterCCW(t *testing.T) {
	// The quarter turn maps the unit square onto itself:
	// (0,0)->(0,1), (1,0)->(0,0), (1,1)->(1,0), (0,1)->(1,1).
	m := QuarterCCW()
	tests := []struct {
		x, y, wantX, wantY float64
	}{
		{0, 0, 0, 1},
		{1, 0, 0, 0},
		{1, 1, 1, 0},
		{0, 1, 1, 1},
		{0.5, 0.5, 0.5, 0.5}, // center is a fixed point
	}
	for _, tt := range tests {
		gx, gy := m.Apply(tt.x, tt.y)
		if !matNear(gx, tt.wantX) || !matNear(gy, tt.wantY) {
			t.Errorf("QuarterCCW.Apply(%g, %g) = (%g, %g), want (%g, %g)",
				tt.x, tt.y, gx, gy, tt.wantX, tt.wantY)
		}
	}
}

func TestMultiplyOrder(t *testing.T) {
	// m.Multiply(other) applies other first. Scaling then translating a
	// point must differ from translating then scaling.
	scaleThenTranslate := Translate(10, 0).Multiply(Scale(2, 2))
	x, y := scaleThenTranslate.Apply(1, 1)
	if !matNear(x, 12) || !matNear(y, 2) {
		t.Errorf("translate(10,0) * scale(2,2) applied to (1,1) = (%g, %g), want (12, 2)", x, y)
	}

	translateThenScale := Scale(2, 2).Multiply(Translate(10, 0))
	x, y = translateThenScale.Apply(1, 1)
	if !matNear(x, 22) || !matNear(y, 2) {
		t.Errorf("scale(2,2) * translate(10,0) applied to (1,1) = (%g, %g), want (22, 2)", x, y)
	}
}

func TestMultiplyAssociative(t *testing.T) {
	a := Translate(3, 4)
	b := Scale(2, 0.5)
	c := QuarterCCW()

	ab_c := a.Multiply(b).Multiply(c)
	a_bc := a.Multiply(b.Multiply(c))
	if ab_c != a_bc {
		t.Errorf("(a*b)*c = %+v, a*(b*c) = %+v", ab_c, a_bc)
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(1, 2).Multiply(Scale(3, 3))
	p := m.TransformPoint(Point{X: 2, Y: 2})
	if !matNear(p.X, 7) || !matNear(p.Y, 8) {
		t.Errorf("TransformPoint = %+v, want (7, 8)", p)
	}
}
