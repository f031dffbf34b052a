package analytics

import (
	"github.com/wozhendeai/generative-town/pkg/grid"
	"github.com/wozhendeai/generative-town/pkg/network"
)

// Stats holds the computed statistics for an assembled map.
type Stats struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Cells         int     `json:"cells"`
	GroundTiles   int     `json:"ground_tiles"`
	ObjectTiles   int     `json:"object_tiles"`
	GroundRatio   float64 `json:"ground_ratio"`
	WalkableRatio float64 `json:"walkable_ratio"`
	RoadTiles     int     `json:"road_tiles"`
	RoadRatio     float64 `json:"road_ratio"`
	Islands       int     `json:"islands"`
	Connected     bool    `json:"connected"`

	Categories []CategoryCount `json:"categories"`
	Tiles      []TileCount     `json:"tiles"`
}

// Collect computes statistics for a grid. The grid is read only; all
// derived values are recomputed on every call.
func Collect(g *grid.Grid) *Stats {
	cells := g.Width() * g.Height()

	// 1. Layer occupancy and walkability
	cover := resolveCoverage(g)

	// 2. Per-category and per-tile census
	categories, tiles := resolveCensus(g)

	// 3. Road network shape
	net := network.Validate(g)

	stats := &Stats{
		Width:       g.Width(),
		Height:      g.Height(),
		Cells:       cells,
		GroundTiles: cover.Ground,
		ObjectTiles: cover.Object,
		RoadTiles:   net.TotalTiles,
		Islands:     net.IslandCount,
		Connected:   net.Connected,
		Categories:  categories,
		Tiles:       tiles,
	}
	if cells > 0 {
		stats.GroundRatio = float64(cover.Ground) / float64(cells)
		stats.WalkableRatio = float64(cover.Walkable) / float64(cells)
		stats.RoadRatio = float64(net.TotalTiles) / float64(cells)
	}
	return stats
}
