package blit

// Point represents a 2D point with float64 coordinates.
type Point struct {
	X, Y float64
}

// Add returns the point translated by p2.
func (p Point) Add(p2 Point) Point {
	return Point{X: p.X + p2.X, Y: p.Y + p2.Y}
}

// Sub returns the point translated by the negation of p2.
func (p Point) Sub(p2 Point) Point {
	return Point{X: p.X - p2.X, Y: p.Y - p2.Y}
}

// Scaled returns the point with both coordinates multiplied by f.
func (p Point) Scaled(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}
