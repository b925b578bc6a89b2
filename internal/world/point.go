// Package world provides the arena geometry fighters move in.
package world

// Point is a position in arena distance units.
type Point struct {
	X, Y float64
}

// Add returns the point offset by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}
