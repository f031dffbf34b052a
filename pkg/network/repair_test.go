package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/geo"
	"github.com/wozhendeai/generative-town/pkg/grid"
	"github.com/wozhendeai/generative-town/pkg/network"
	"github.com/wozhendeai/generative-town/pkg/roads"
)

func placeSegment(t *testing.T, g *grid.Grid, from, to geo.Point) {
	t.Helper()
	res, err := roads.PlacePath(g, from, to)
	require.NoError(t, err)
	require.Empty(t, res.Unresolved)
}

func tileID(t *testing.T, g *grid.Grid, p geo.Point) string {
	t.Helper()
	def, ok := g.TileAt(p, catalog.LayerGround)
	require.True(t, ok, "expected a tile at %s", p)
	return def.ID
}

func TestRepairConnectedNetworkIsNoop(t *testing.T) {
	g := roadGrid(t, 8, 8)
	placeSegment(t, g, geo.Pt(1, 2), geo.Pt(5, 2))

	res := network.Repair(g)

	assert.True(t, res.Success)
	assert.Equal(t, 1, res.IslandsBefore)
	assert.Empty(t, res.Bridges)
	assert.Zero(t, res.TilesPlaced)
	assert.Equal(t, 5, res.Final.TotalTiles)
}

func TestRepairBridgesTwoSegments(t *testing.T) {
	g := roadGrid(t, 8, 8)
	placeSegment(t, g, geo.Pt(1, 2), geo.Pt(3, 2))
	placeSegment(t, g, geo.Pt(4, 5), geo.Pt(6, 5))
	require.Equal(t, 2, network.Validate(g).IslandCount)

	res := network.Repair(g)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.IslandsBefore)
	require.Len(t, res.Bridges, 1)
	assert.Equal(t, geo.Pt(3, 2), res.Bridges[0].From)
	assert.Equal(t, geo.Pt(4, 5), res.Bridges[0].To)
	assert.Equal(t, 3, res.TilesPlaced)
	assert.Equal(t, 2, res.TilesUpgraded)
	assert.Equal(t, 1, res.Final.IslandCount)
	assert.Equal(t, 9, res.Final.TotalTiles)

	// Interior tiles of the original segments keep their identity; only
	// the bridge junctions widen.
	assert.Equal(t, "road_ew", tileID(t, g, geo.Pt(2, 2)))
	assert.Equal(t, "road_ew", tileID(t, g, geo.Pt(5, 5)))
	assert.Equal(t, "road_ew", tileID(t, g, geo.Pt(3, 2)))
	assert.Equal(t, "road_corner_ne", tileID(t, g, geo.Pt(4, 5)))
	assert.Equal(t, "road_corner_sw", tileID(t, g, geo.Pt(4, 2)))
	assert.Equal(t, "road_ns", tileID(t, g, geo.Pt(4, 3)))
	assert.Equal(t, "road_ns", tileID(t, g, geo.Pt(4, 4)))
}

func TestRepairChainsConsecutivePairs(t *testing.T) {
	g := roadGrid(t, 8, 3)
	setRoad(t, g, "road_cross", geo.Pt(0, 1))
	setRoad(t, g, "road_cross", geo.Pt(3, 1))
	setRoad(t, g, "road_cross", geo.Pt(6, 1))

	res := network.Repair(g)

	assert.True(t, res.Success)
	assert.Equal(t, 3, res.IslandsBefore)
	assert.Len(t, res.Bridges, 2)
	assert.Equal(t, 4, res.TilesPlaced)
	assert.Equal(t, 1, res.Final.IslandCount)
	assert.Equal(t, 7, res.Final.TotalTiles)
}

func TestRepairPicksClosestTilePair(t *testing.T) {
	g := roadGrid(t, 9, 9)
	placeSegment(t, g, geo.Pt(1, 1), geo.Pt(1, 5))
	placeSegment(t, g, geo.Pt(3, 5), geo.Pt(7, 5))

	res := network.Repair(g)

	require.Len(t, res.Bridges, 1)
	assert.Equal(t, geo.Pt(1, 5), res.Bridges[0].From)
	assert.Equal(t, geo.Pt(3, 5), res.Bridges[0].To)
	assert.Equal(t, 1, res.TilesPlaced)
	assert.True(t, res.Success)
}

func TestRepairBestEffortWhenCatalogLacksShapes(t *testing.T) {
	// Straights only: the bridge needs a corner the catalog cannot
	// provide, so repair reports failure instead of guessing.
	f := &catalog.File{
		TileSize: 16,
		Tiles: []catalog.TileDefinition{
			roadDef("road_ew", catalog.ConnPath, "east", "west"),
			roadDef("road_ns", catalog.ConnPath, "north", "south"),
		},
	}
	c, err := catalog.New(f)
	require.NoError(t, err)
	g, err := grid.New(c, 8, 8)
	require.NoError(t, err)

	setRoad(t, g, "road_ew", geo.Pt(1, 1))
	setRoad(t, g, "road_ew", geo.Pt(4, 3))

	res := network.Repair(g)

	assert.False(t, res.Success)
	require.Len(t, res.Unresolved, 1)
	assert.Equal(t, geo.Pt(4, 1), res.Unresolved[0].Pos)
	assert.Equal(t, 2, res.Final.IslandCount)
}
