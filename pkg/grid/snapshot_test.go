package grid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/geo"
)

func buildSampleGrid(t *testing.T, c *catalog.Catalog) *Grid {
	t.Helper()
	g, err := New(c, 6, 4)
	require.NoError(t, err)
	for x := 0; x < 6; x++ {
		require.NoError(t, g.SetTile(geo.Pt(x, 0), "grass", catalog.LayerGround))
	}
	require.NoError(t, g.SetTile(geo.Pt(0, 2), "road_ew", catalog.LayerGround))
	require.NoError(t, g.SetTile(geo.Pt(1, 2), "road_ew", catalog.LayerGround))
	require.NoError(t, g.SetTile(geo.Pt(3, 1), "hut", catalog.LayerObject))
	require.NoError(t, g.SetTile(geo.Pt(5, 3), "oak", catalog.LayerObject))
	return g
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := testCatalog(t)
	g := buildSampleGrid(t, c)

	snap := g.Snapshot()
	restored, err := Restore(c, snap)
	require.NoError(t, err)

	assert.True(t, g.Equal(restored), "restored grid must match cell for cell")
}

func TestSnapshotThroughJSON(t *testing.T) {
	c := testCatalog(t)
	g := buildSampleGrid(t, c)

	data, err := json.Marshal(g.Snapshot())
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))

	restored, err := Restore(c, &snap)
	require.NoError(t, err)
	assert.True(t, g.Equal(restored))
}

func TestSnapshotShape(t *testing.T) {
	c := testCatalog(t)
	g := buildSampleGrid(t, c)

	snap := g.Snapshot()
	assert.Equal(t, 6, snap.Width)
	assert.Equal(t, 4, snap.Height)
	require.Len(t, snap.Layers.Ground, 4)
	require.Len(t, snap.Layers.Ground[0], 6)
	require.Len(t, snap.Layers.Object, 4)

	cell := snap.Layers.Object[1][3]
	require.NotNil(t, cell)
	assert.Equal(t, "hut", cell.TileID)
	assert.Equal(t, catalog.LayerObject, cell.Layer)

	assert.Nil(t, snap.Layers.Ground[3][0], "empty cells serialize as null")
	assert.NotEmpty(t, snap.Metadata.GeneratedAt)
}

func TestRestoreRejectsRaggedRows(t *testing.T) {
	c := testCatalog(t)
	g := buildSampleGrid(t, c)

	snap := g.Snapshot()
	snap.Layers.Ground[1] = snap.Layers.Ground[1][:3]

	_, err := Restore(c, snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestRestoreRejectsUnknownID(t *testing.T) {
	c := testCatalog(t)
	g := buildSampleGrid(t, c)

	snap := g.Snapshot()
	snap.Layers.Ground[0][0] = &Cell{TileID: "lava", Layer: catalog.LayerGround}

	_, err := Restore(c, snap)
	require.Error(t, err)
	var unknown *catalog.UnknownTileError
	assert.ErrorAs(t, err, &unknown)
}

func TestRestoreRejectsLayerMismatch(t *testing.T) {
	c := testCatalog(t)
	g := buildSampleGrid(t, c)

	snap := g.Snapshot()
	snap.Layers.Ground[0][0] = &Cell{TileID: "grass", Layer: catalog.LayerObject}

	_, err := Restore(c, snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tagged")
}

func TestDumpGround(t *testing.T) {
	c := testCatalog(t)
	g := buildSampleGrid(t, c)

	want := "" +
		",,,,,,\n" +
		"......\n" +
		"##....\n" +
		"......\n"
	assert.Equal(t, want, g.Dump(catalog.LayerGround))
}

func TestDumpObject(t *testing.T) {
	c := testCatalog(t)
	g := buildSampleGrid(t, c)

	want := "" +
		"......\n" +
		"...B..\n" +
		"......\n" +
		".....o\n"
	assert.Equal(t, want, g.Dump(catalog.LayerObject))
}
