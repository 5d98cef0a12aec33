package blit

import "testing"

func TestRect(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("Right/Bottom = %g/%g, want 40/60", r.Right(), r.Bottom())
	}
	if r.IsEmpty() {
		t.Error("non-degenerate rect reported empty")
	}
	if (Rect{W: 0, H: 5}).IsEmpty() != true {
		t.Error("zero-width rect should be empty")
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{5, 5, true},
		{10, 10, false}, // right/bottom edges are exclusive
		{-1, 5, false},
		{9.99, 9.99, true},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%g, %g) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectScaled(t *testing.T) {
	r := NewRect(1, 2, 3, 4).Scaled(2)
	if r != (Rect{X: 2, Y: 4, W: 6, H: 8}) {
		t.Errorf("Scaled = %+v", r)
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Point{X: 1, Y: 2}.Add(Point{X: 3, Y: 4})
	if p != (Point{X: 4, Y: 6}) {
		t.Errorf("Add = %+v", p)
	}
	p = p.Sub(Point{X: 4, Y: 4})
	if p != (Point{X: 0, Y: 2}) {
		t.Errorf("Sub = %+v", p)
	}
	if p.Scaled(3) != (Point{X: 0, Y: 6}) {
		t.Errorf("Scaled = %+v", p.Scaled(3))
	}
}
