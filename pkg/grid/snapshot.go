package grid

import (
	"fmt"
	"time"

	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/geo"
)

// Snapshot is the serializable form of a Grid: the sole contract
// handed to the renderer, the store, and any downstream visualization.
// Cells are nullable; empty cells serialize as null.
type Snapshot struct {
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Layers   LayerCells   `json:"layers"`
	Metadata SnapshotMeta `json:"metadata"`
}

// LayerCells holds both layers as rectangular row-major arrays.
type LayerCells struct {
	Ground [][]*Cell `json:"ground"`
	Object [][]*Cell `json:"object"`
}

// Cell is one serialized grid cell.
type Cell struct {
	TileID string        `json:"tile_id"`
	Layer  catalog.Layer `json:"layer"`
}

// SnapshotMeta carries map-level summary data.
type SnapshotMeta struct {
	Theme       string `json:"theme,omitempty"`
	GeneratedAt string `json:"generated_at"`
}

// Snapshot assembles the serializable form of the grid. The grid is
// not mutated after this point in a generation run; the snapshot is a
// deep copy and stays valid regardless.
func (g *Grid) Snapshot() *Snapshot {
	s := &Snapshot{
		Width:  g.width,
		Height: g.height,
		Layers: LayerCells{
			Ground: g.snapshotLayer(catalog.LayerGround),
			Object: g.snapshotLayer(catalog.LayerObject),
		},
		Metadata: SnapshotMeta{
			Theme:       g.cat.Theme(),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
	return s
}

func (g *Grid) snapshotLayer(l catalog.Layer) [][]*Cell {
	rows := make([][]*Cell, g.height)
	for y := 0; y < g.height; y++ {
		row := make([]*Cell, g.width)
		for x := 0; x < g.width; x++ {
			if ref, ok := g.RefAt(geo.Pt(x, y), l); ok {
				row[x] = &Cell{TileID: g.cat.Tile(ref).ID, Layer: l}
			}
		}
		rows[y] = row
	}
	return rows
}

// Restore rebuilds a Grid from a snapshot against the given catalog.
// Every non-null cell's id must resolve and its layer tag must match
// the layer it sits in; rows must be rectangular.
func Restore(cat *catalog.Catalog, s *Snapshot) (*Grid, error) {
	g, err := New(cat, s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	if err := g.restoreLayer(s.Layers.Ground, catalog.LayerGround, s.Width, s.Height); err != nil {
		return nil, err
	}
	if err := g.restoreLayer(s.Layers.Object, catalog.LayerObject, s.Width, s.Height); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) restoreLayer(rows [][]*Cell, l catalog.Layer, w, h int) error {
	if len(rows) != h {
		return fmt.Errorf("grid: %s layer has %d rows, want %d", l, len(rows), h)
	}
	for y, row := range rows {
		if len(row) != w {
			return fmt.Errorf("grid: %s layer row %d has %d cells, want %d", l, y, len(row), w)
		}
		for x, cell := range row {
			if cell == nil {
				continue
			}
			if cell.Layer != "" && cell.Layer != l {
				return fmt.Errorf("grid: cell (%d,%d) tagged %q inside %s layer", x, y, cell.Layer, l)
			}
			ref, err := g.cat.Resolve(cell.TileID)
			if err != nil {
				return fmt.Errorf("grid: cell (%d,%d): %w", x, y, err)
			}
			g.layer(l)[y*w+x] = ref
		}
	}
	return nil
}

// Equal reports whether two grids share dimensions and an identical
// cell-by-cell layout.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.ground {
		if g.ground[i] != other.ground[i] || g.object[i] != other.object[i] {
			return false
		}
	}
	return true
}
