package roads

import "github.com/wozhendeai/generative-town/pkg/geo"

// BuildRoute returns the Manhattan route between two cells: the
// horizontal leg runs first, to to.X at from.Y, then the vertical leg
// to to.Y. The fixed horizontal-before-vertical tie-break makes the
// route deterministic, an L shape with a single bend. Identical
// endpoints yield a one-cell route.
func BuildRoute(from, to geo.Point) []geo.Point {
	route := make([]geo.Point, 0, abs(to.X-from.X)+abs(to.Y-from.Y)+1)
	route = append(route, from)

	x, y := from.X, from.Y
	for x != to.X {
		x += sign(to.X - x)
		route = append(route, geo.Pt(x, y))
	}
	for y != to.Y {
		y += sign(to.Y - y)
		route = append(route, geo.Pt(x, y))
	}
	return route
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
