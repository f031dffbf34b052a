package render_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/geo"
	"github.com/wozhendeai/generative-town/pkg/grid"
	"github.com/wozhendeai/generative-town/pkg/render"
)

const tileSize = 4

var (
	grassGreen = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	roadGray   = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	treeGreen  = color.NRGBA{R: 0, G: 100, B: 0, A: 255}
	houseBrown = color.NRGBA{R: 139, G: 69, B: 19, A: 255}
)

// testAtlas is a 4x4-tile sheet of solid-color sprites: grass, road and
// tree on the first row, a 2x2 house below them.
func testAtlas(t *testing.T) *render.Atlas {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4*tileSize, 4*tileSize))
	fill := func(col, row, w, h int, c color.NRGBA) {
		for y := row * tileSize; y < (row+h)*tileSize; y++ {
			for x := col * tileSize; x < (col+w)*tileSize; x++ {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	fill(0, 0, 1, 1, grassGreen)
	fill(1, 0, 1, 1, roadGray)
	fill(2, 0, 1, 1, treeGreen)
	fill(0, 1, 2, 2, houseBrown)

	a, err := render.NewAtlas(img, tileSize)
	require.NoError(t, err)
	return a
}

func renderCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	f := &catalog.File{
		TileSize: tileSize,
		Tiles: []catalog.TileDefinition{
			{
				ID: "grass", Category: catalog.CategoryGround,
				Footprint: catalog.Footprint{W: 1, H: 1},
				Placement: catalog.Placement{Layer: catalog.LayerGround, Walkable: true},
				Atlas:     catalog.AtlasPos{Col: 0, Row: 0},
			},
			{
				ID: "road_ew", Category: catalog.CategoryGround,
				Footprint:    catalog.Footprint{W: 1, H: 1},
				Placement:    catalog.Placement{Layer: catalog.LayerGround, Walkable: true},
				Connectivity: catalog.Connectivity{Type: catalog.ConnPath, Connects: []string{"east", "west"}},
				Atlas:        catalog.AtlasPos{Col: 1, Row: 0},
			},
			{
				ID: "oak_tree", Category: catalog.CategoryProp,
				Footprint: catalog.Footprint{W: 1, H: 1},
				Placement: catalog.Placement{Layer: catalog.LayerObject},
				Atlas:     catalog.AtlasPos{Col: 2, Row: 0},
			},
			{
				ID: "house", Category: catalog.CategoryBuilding,
				Footprint: catalog.Footprint{W: 2, H: 2},
				Placement: catalog.Placement{Layer: catalog.LayerObject, Anchor: "top_left"},
				Atlas:     catalog.AtlasPos{Col: 0, Row: 1},
			},
			{
				ID: "ghost", Category: catalog.CategoryMarker,
				Footprint: catalog.Footprint{W: 1, H: 1},
				Placement: catalog.Placement{Layer: catalog.LayerObject},
				Atlas:     catalog.AtlasPos{Col: 9, Row: 9},
			},
		},
	}
	c, err := catalog.New(f)
	require.NoError(t, err)
	return c
}

func renderGrid(t *testing.T, w, h int) *grid.Grid {
	t.Helper()
	g, err := grid.New(renderCatalog(t), w, h)
	require.NoError(t, err)
	return g
}

func TestRenderBackgroundOnly(t *testing.T) {
	g := renderGrid(t, 2, 2)
	opts := render.DefaultOptions()
	opts.Background = "#102030"

	res, err := render.Render(g, testAtlas(t), opts)
	require.NoError(t, err)

	assert.Equal(t, 8, res.Width)
	assert.Equal(t, 8, res.Height)
	assert.Zero(t, res.GroundTiles)
	assert.Zero(t, res.ObjectTiles)
	assert.Zero(t, res.SpritesExtracted)
	want := color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}
	assert.Equal(t, want, res.Image.NRGBAAt(0, 0))
	assert.Equal(t, want, res.Image.NRGBAAt(7, 7))
}

func TestRenderLayersAndCache(t *testing.T) {
	g := renderGrid(t, 2, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			require.NoError(t, g.SetTile(geo.Pt(x, y), "grass", catalog.LayerGround))
		}
	}
	require.NoError(t, g.SetTile(geo.Pt(1, 1), "oak_tree", catalog.LayerObject))

	res, err := render.Render(g, testAtlas(t), render.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 4, res.GroundTiles)
	assert.Equal(t, 1, res.ObjectTiles)
	assert.Equal(t, 5, res.TilesDrawn())
	// Grass appears four times but is extracted once.
	assert.Equal(t, 2, res.SpritesExtracted)
	assert.Equal(t, grassGreen, res.Image.NRGBAAt(0, 0))
	assert.Equal(t, grassGreen, res.Image.NRGBAAt(7, 3))
	// The tree draws over the grass in its cell.
	assert.Equal(t, treeGreen, res.Image.NRGBAAt(4, 4))
	assert.Equal(t, treeGreen, res.Image.NRGBAAt(7, 7))
}

func TestRenderIntegerScale(t *testing.T) {
	g := renderGrid(t, 2, 1)
	require.NoError(t, g.SetTile(geo.Pt(0, 0), "road_ew", catalog.LayerGround))
	opts := render.DefaultOptions()
	opts.Scale = 3

	res, err := render.Render(g, testAtlas(t), opts)
	require.NoError(t, err)

	assert.Equal(t, 24, res.Width)
	assert.Equal(t, 12, res.Height)
	assert.Equal(t, 3, res.Scale)
	assert.Equal(t, roadGray, res.Image.NRGBAAt(0, 0))
	assert.Equal(t, roadGray, res.Image.NRGBAAt(11, 11))
	// Second cell is empty: background shows through.
	assert.Equal(t, color.NRGBA{A: 0xff}, res.Image.NRGBAAt(12, 0))
}

func TestRenderMultiCellSprite(t *testing.T) {
	g := renderGrid(t, 3, 3)
	require.NoError(t, g.SetTile(geo.Pt(0, 0), "house", catalog.LayerObject))

	res, err := render.Render(g, testAtlas(t), render.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, res.ObjectTiles)
	assert.Zero(t, res.GroundTiles)
	assert.Equal(t, 1, res.SpritesExtracted)
	// The 2x2 footprint covers four cells from the anchor.
	assert.Equal(t, houseBrown, res.Image.NRGBAAt(0, 0))
	assert.Equal(t, houseBrown, res.Image.NRGBAAt(7, 7))
	assert.Equal(t, color.NRGBA{A: 0xff}, res.Image.NRGBAAt(8, 8))
}

func TestRenderGroundLayerOnly(t *testing.T) {
	g := renderGrid(t, 2, 1)
	require.NoError(t, g.SetTile(geo.Pt(0, 0), "grass", catalog.LayerGround))
	require.NoError(t, g.SetTile(geo.Pt(0, 0), "oak_tree", catalog.LayerObject))
	opts := render.DefaultOptions()
	opts.Layers = []catalog.Layer{catalog.LayerGround}

	res, err := render.Render(g, testAtlas(t), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, res.GroundTiles)
	assert.Zero(t, res.ObjectTiles)
	assert.Equal(t, grassGreen, res.Image.NRGBAAt(0, 0))
}

func TestRenderMissingAtlasRegion(t *testing.T) {
	g := renderGrid(t, 2, 1)
	require.NoError(t, g.SetTile(geo.Pt(0, 0), "ghost", catalog.LayerObject))

	_, err := render.Render(g, testAtlas(t), render.DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, render.ErrMissingRegion)
	assert.Contains(t, err.Error(), "ghost")
}

func TestRenderTileSizeMismatch(t *testing.T) {
	g := renderGrid(t, 2, 1)
	a, err := render.NewAtlas(image.NewNRGBA(image.Rect(0, 0, 32, 32)), 8)
	require.NoError(t, err)

	_, err = render.Render(g, a, render.DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tile size")
}

func TestRenderRejectsBadOptions(t *testing.T) {
	g := renderGrid(t, 1, 1)

	opts := render.DefaultOptions()
	opts.Scale = 0
	_, err := render.Render(g, testAtlas(t), opts)
	assert.ErrorIs(t, err, render.ErrBadScale)

	opts = render.DefaultOptions()
	opts.Format = "bmp"
	_, err = render.Render(g, testAtlas(t), opts)
	assert.ErrorIs(t, err, render.ErrBadFormat)

	opts = render.DefaultOptions()
	opts.Background = "102030"
	_, err = render.Render(g, testAtlas(t), opts)
	assert.Error(t, err)
}

func TestEncodePNGRoundTrip(t *testing.T) {
	g := renderGrid(t, 2, 1)
	require.NoError(t, g.SetTile(geo.Pt(0, 0), "grass", catalog.LayerGround))
	res, err := render.Render(g, testAtlas(t), render.DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, render.Encode(&buf, res.Image, render.FormatPNG))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, res.Width, decoded.Bounds().Dx())
	assert.Equal(t, res.Height, decoded.Bounds().Dy())
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := render.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 1, 1)), "webp")
	assert.ErrorIs(t, err, render.ErrBadFormat)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", render.ContentType(render.FormatPNG))
	assert.Equal(t, "image/jpeg", render.ContentType(render.FormatJPEG))
	assert.Equal(t, "image/gif", render.ContentType(render.FormatGIF))
}
