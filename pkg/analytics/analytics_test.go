package analytics

import (
	"math"
	"testing"

	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/geo"
	"github.com/wozhendeai/generative-town/pkg/grid"
)

func statsCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	f := &catalog.File{
		TileSize: 16,
		Theme:    "test hamlet",
		Tiles: []catalog.TileDefinition{
			{
				ID: "grass", Category: catalog.CategoryGround,
				Footprint: catalog.Footprint{W: 1, H: 1},
				Placement: catalog.Placement{Layer: catalog.LayerGround, Walkable: true},
			},
			{
				ID: "road_ew", Category: catalog.CategoryGround,
				Footprint:    catalog.Footprint{W: 1, H: 1},
				Placement:    catalog.Placement{Layer: catalog.LayerGround, Walkable: true},
				Connectivity: catalog.Connectivity{Type: catalog.ConnPath, Connects: []string{"east", "west"}},
			},
			{
				ID: "house", Category: catalog.CategoryBuilding,
				Footprint: catalog.Footprint{W: 1, H: 1},
				Placement: catalog.Placement{Layer: catalog.LayerObject},
			},
			{
				ID: "oak_tree", Category: catalog.CategoryProp,
				Footprint: catalog.Footprint{W: 1, H: 1},
				Placement: catalog.Placement{Layer: catalog.LayerObject},
			},
		},
	}
	c, err := catalog.New(f)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

// villageGrid builds a 4x3 map: a grass row with a 2-tile road, one
// house over grass, one tree over empty ground.
func villageGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(statsCatalog(t), 4, 3)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	set := func(x, y int, id string, l catalog.Layer) {
		t.Helper()
		if err := g.SetTile(geo.Pt(x, y), id, l); err != nil {
			t.Fatalf("set %s at (%d,%d): %v", id, x, y, err)
		}
	}
	set(0, 0, "grass", catalog.LayerGround)
	set(1, 0, "grass", catalog.LayerGround)
	set(2, 0, "grass", catalog.LayerGround)
	set(0, 1, "road_ew", catalog.LayerGround)
	set(1, 1, "road_ew", catalog.LayerGround)
	set(0, 0, "house", catalog.LayerObject)
	set(3, 2, "oak_tree", catalog.LayerObject)
	return g
}

func TestCollectVillage(t *testing.T) {
	stats := Collect(villageGrid(t))

	if stats.Width != 4 || stats.Height != 3 || stats.Cells != 12 {
		t.Errorf("unexpected dimensions: %+v", stats)
	}
	if stats.GroundTiles != 5 {
		t.Errorf("expected 5 ground tiles, got %d", stats.GroundTiles)
	}
	if stats.ObjectTiles != 2 {
		t.Errorf("expected 2 object tiles, got %d", stats.ObjectTiles)
	}
	if stats.RoadTiles != 2 {
		t.Errorf("expected 2 road tiles, got %d", stats.RoadTiles)
	}
	if stats.Islands != 1 || !stats.Connected {
		t.Errorf("expected one connected island, got %d (connected=%v)", stats.Islands, stats.Connected)
	}
}

func TestCollectRatios(t *testing.T) {
	stats := Collect(villageGrid(t))

	if math.Abs(stats.GroundRatio-5.0/12.0) > 1e-9 {
		t.Errorf("ground ratio: got %f", stats.GroundRatio)
	}
	// Grass at (1,0) and (2,0) plus both road tiles. The house blocks
	// (0,0); the tree stands on empty ground.
	if math.Abs(stats.WalkableRatio-4.0/12.0) > 1e-9 {
		t.Errorf("walkable ratio: got %f", stats.WalkableRatio)
	}
	if math.Abs(stats.RoadRatio-2.0/12.0) > 1e-9 {
		t.Errorf("road ratio: got %f", stats.RoadRatio)
	}
}

func TestCollectCensus(t *testing.T) {
	stats := Collect(villageGrid(t))

	wantCategories := []CategoryCount{
		{Category: catalog.CategoryGround, Count: 5},
		{Category: catalog.CategoryBuilding, Count: 1},
		{Category: catalog.CategoryProp, Count: 1},
	}
	if len(stats.Categories) != len(wantCategories) {
		t.Fatalf("expected %d categories, got %v", len(wantCategories), stats.Categories)
	}
	for i, want := range wantCategories {
		if stats.Categories[i] != want {
			t.Errorf("categories[%d]: got %+v, want %+v", i, stats.Categories[i], want)
		}
	}

	wantTiles := []TileCount{
		{ID: "grass", Count: 3},
		{ID: "road_ew", Count: 2},
		{ID: "house", Count: 1},
		{ID: "oak_tree", Count: 1},
	}
	if len(stats.Tiles) != len(wantTiles) {
		t.Fatalf("expected %d tile counts, got %v", len(wantTiles), stats.Tiles)
	}
	for i, want := range wantTiles {
		if stats.Tiles[i] != want {
			t.Errorf("tiles[%d]: got %+v, want %+v", i, stats.Tiles[i], want)
		}
	}
}

func TestCollectEmptyGrid(t *testing.T) {
	g, err := grid.New(statsCatalog(t), 3, 3)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}

	stats := Collect(g)

	if stats.GroundTiles != 0 || stats.ObjectTiles != 0 || stats.RoadTiles != 0 {
		t.Errorf("empty grid should have no tiles: %+v", stats)
	}
	if stats.WalkableRatio != 0 {
		t.Errorf("empty grid walkable ratio should be 0, got %f", stats.WalkableRatio)
	}
	if !stats.Connected {
		t.Error("empty network counts as connected")
	}
	if len(stats.Categories) != 0 || len(stats.Tiles) != 0 {
		t.Errorf("empty grid census should be empty: %+v", stats)
	}
}
