package analytics

import (
	"sort"

	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/geo"
	"github.com/wozhendeai/generative-town/pkg/grid"
)

// CategoryCount is the number of placed cells holding tiles of one
// category, across both layers.
type CategoryCount struct {
	Category catalog.Category `json:"category"`
	Count    int              `json:"count"`
}

// TileCount is the number of placed cells holding one tile id.
type TileCount struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// resolveCensus tallies placed cells by category and by tile id.
// Output is sorted by count descending, ties broken by name, so two
// identical grids always produce identical reports.
func resolveCensus(g *grid.Grid) ([]CategoryCount, []TileCount) {
	byCategory := make(map[catalog.Category]int)
	byID := make(map[string]int)

	count := func(p geo.Point, ref catalog.Ref) {
		def := g.Catalog().Tile(ref)
		byCategory[def.Category]++
		byID[def.ID]++
	}
	g.EachCell(catalog.LayerGround, count)
	g.EachCell(catalog.LayerObject, count)

	categories := make([]CategoryCount, 0, len(byCategory))
	for c, n := range byCategory {
		categories = append(categories, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}
		return categories[i].Category < categories[j].Category
	})

	tiles := make([]TileCount, 0, len(byID))
	for id, n := range byID {
		tiles = append(tiles, TileCount{ID: id, Count: n})
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Count != tiles[j].Count {
			return tiles[i].Count > tiles[j].Count
		}
		return tiles[i].ID < tiles[j].ID
	})

	return categories, tiles
}
