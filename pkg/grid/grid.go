package grid

import (
	"errors"
	"fmt"

	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/geo"
)

// ErrBadDimensions is returned when a grid is created with a
// non-positive width or height.
var ErrBadDimensions = errors.New("grid: width and height must be positive")

// ErrOutOfBounds is returned by writes outside [0,width) x [0,height).
var ErrOutOfBounds = errors.New("grid: coordinates out of bounds")

// empty marks an unoccupied cell in a layer slab.
const empty catalog.Ref = -1

// Grid is the two-layer tile map: a ground layer and an object layer
// over the same width x height, each cell either empty or holding a
// catalog ref. The grid is owned by exactly one writer at a time; it
// does no locking of its own.
type Grid struct {
	width  int
	height int
	cat    *catalog.Catalog
	ground []catalog.Ref
	object []catalog.Ref
}

// New creates an empty grid over the given catalog.
func New(cat *catalog.Catalog, width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBadDimensions, width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		cat:    cat,
		ground: make([]catalog.Ref, width*height),
		object: make([]catalog.Ref, width*height),
	}
	for i := range g.ground {
		g.ground[i] = empty
		g.object[i] = empty
	}
	return g, nil
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// Catalog returns the catalog this grid's refs resolve against.
func (g *Grid) Catalog() *catalog.Catalog { return g.cat }

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p geo.Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// index assumes p is in bounds.
func (g *Grid) index(p geo.Point) int {
	return p.Y*g.width + p.X
}

func (g *Grid) layer(l catalog.Layer) []catalog.Ref {
	if l == catalog.LayerObject {
		return g.object
	}
	return g.ground
}

// SetTile resolves id and writes it at p, overwriting whatever is
// there (last write wins). A failed call leaves the grid unchanged:
// out-of-bounds coordinates and unknown ids are reported before any
// cell is touched.
func (g *Grid) SetTile(p geo.Point, id string, l catalog.Layer) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %s outside %dx%d", ErrOutOfBounds, p, g.width, g.height)
	}
	ref, err := g.cat.Resolve(id)
	if err != nil {
		return err
	}
	g.layer(l)[g.index(p)] = ref
	return nil
}

// SetRef writes an already-resolved ref at p. Used by the placement
// algorithms, which run entirely on refs.
func (g *Grid) SetRef(p geo.Point, ref catalog.Ref, l catalog.Layer) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %s outside %dx%d", ErrOutOfBounds, p, g.width, g.height)
	}
	g.layer(l)[g.index(p)] = ref
	return nil
}

// RefAt returns the ref at p, or false for an empty or out-of-bounds
// cell. Reads never fail.
func (g *Grid) RefAt(p geo.Point, l catalog.Layer) (catalog.Ref, bool) {
	if !g.InBounds(p) {
		return 0, false
	}
	ref := g.layer(l)[g.index(p)]
	if ref == empty {
		return 0, false
	}
	return ref, true
}

// TileAt returns the resolved definition at p, or false for an empty
// or out-of-bounds cell.
func (g *Grid) TileAt(p geo.Point, l catalog.Layer) (catalog.TileDefinition, bool) {
	ref, ok := g.RefAt(p, l)
	if !ok {
		return catalog.TileDefinition{}, false
	}
	return g.cat.Tile(ref), true
}

// ClearTile empties the cell at p. Out of bounds is a no-op.
func (g *Grid) ClearTile(p geo.Point, l catalog.Layer) {
	if !g.InBounds(p) {
		return
	}
	g.layer(l)[g.index(p)] = empty
}

// RoadAt reports whether the ground cell at p holds a road tile.
func (g *Grid) RoadAt(p geo.Point) bool {
	ref, ok := g.RefAt(p, catalog.LayerGround)
	return ok && g.cat.Tile(ref).Road()
}

// HasRoads reports whether any ground cell holds a road tile.
// Computed fresh on every call: placements can change tiles
// underneath, so road state is never cached.
func (g *Grid) HasRoads() bool {
	for _, ref := range g.ground {
		if ref != empty && g.cat.Tile(ref).Road() {
			return true
		}
	}
	return false
}

// CountLayer returns the number of occupied cells on a layer.
func (g *Grid) CountLayer(l catalog.Layer) int {
	n := 0
	for _, ref := range g.layer(l) {
		if ref != empty {
			n++
		}
	}
	return n
}

// EachCell calls fn for every occupied cell on the layer, in row-major
// order.
func (g *Grid) EachCell(l catalog.Layer, fn func(p geo.Point, ref catalog.Ref)) {
	slab := g.layer(l)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if ref := slab[y*g.width+x]; ref != empty {
				fn(geo.Pt(x, y), ref)
			}
		}
	}
}
