package network

import (
	"github.com/wozhendeai/generative-town/pkg/geo"
	"github.com/wozhendeai/generative-town/pkg/grid"
)

// Island is a maximal connected component of road tiles under
// 4-directional adjacency, with its axis-aligned bounding box. Islands
// are ephemeral: recomputed whenever connectivity is checked, never
// cached across grid mutations.
type Island struct {
	Tiles  []geo.Point `json:"tiles"`
	Bounds geo.Rect    `json:"bounds"`
}

// Size returns the number of road tiles in the island.
func (i Island) Size() int { return len(i.Tiles) }

// Report is the connectivity verdict for a grid's road network. The
// network is connected iff at most one island exists; an empty network
// is trivially connected.
type Report struct {
	Connected   bool     `json:"connected"`
	TotalTiles  int      `json:"total_tiles"`
	IslandCount int      `json:"island_count"`
	Islands     []Island `json:"islands"`
}

// RoadPositions returns every ground-layer position holding a road
// tile, in row-major order.
func RoadPositions(g *grid.Grid) []geo.Point {
	var out []geo.Point
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if p := geo.Pt(x, y); g.RoadAt(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// Islands flood-fills the road network into connected components.
// Seeds are visited in row-major order, so island order is
// deterministic for a given grid; tiles within an island appear in
// breadth-first traversal order.
func Islands(g *grid.Grid) []Island {
	w, h := g.Width(), g.Height()
	seen := make([]bool, w*h)

	var islands []Island
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			seed := geo.Pt(x, y)
			if seen[y*w+x] || !g.RoadAt(seed) {
				continue
			}

			// Breadth-first walk from the seed.
			tiles := []geo.Point{seed}
			bounds := geo.RectAt(seed)
			seen[y*w+x] = true
			for qi := 0; qi < len(tiles); qi++ {
				for _, d := range geo.Directions {
					q := tiles[qi].Step(d)
					if !g.InBounds(q) || seen[q.Y*w+q.X] || !g.RoadAt(q) {
						continue
					}
					seen[q.Y*w+q.X] = true
					tiles = append(tiles, q)
					bounds = bounds.Extend(q)
				}
			}

			islands = append(islands, Island{Tiles: tiles, Bounds: bounds})
		}
	}
	return islands
}

// Validate computes the full connectivity report for the grid.
func Validate(g *grid.Grid) *Report {
	islands := Islands(g)
	total := 0
	for _, is := range islands {
		total += is.Size()
	}
	return &Report{
		Connected:   len(islands) <= 1,
		TotalTiles:  total,
		IslandCount: len(islands),
		Islands:     islands,
	}
}
