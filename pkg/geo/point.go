package geo

import "fmt"

// Point is a grid cell coordinate. X grows east, Y grows south,
// with (0,0) at the top-left corner of the grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Origin is the zero point.
var Origin = Point{0, 0}

// Pt is a shorthand constructor for Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Step returns the 4-adjacent neighbor of p in direction d.
func (p Point) Step(d Direction) Point {
	dx, dy := d.Offset()
	return Point{p.X + dx, p.Y + dy}
}

// Neighbors4 returns the four axis-aligned neighbors of p in
// canonical direction order (north, south, east, west).
func (p Point) Neighbors4() [4]Point {
	var out [4]Point
	for i, d := range Directions {
		out[i] = p.Step(d)
	}
	return out
}

// Manhattan returns the L1 distance between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Toward returns the direction from p to its 4-adjacent neighbor q,
// and false if q is not exactly one axis-aligned step away.
func (p Point) Toward(q Point) (Direction, bool) {
	d := q.Sub(p)
	switch {
	case d.X == 0 && d.Y == -1:
		return North, true
	case d.X == 0 && d.Y == 1:
		return South, true
	case d.X == 1 && d.Y == 0:
		return East, true
	case d.X == -1 && d.Y == 0:
		return West, true
	}
	return North, false
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
