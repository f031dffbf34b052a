package analytics

import (
	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/geo"
	"github.com/wozhendeai/generative-town/pkg/grid"
)

type coverage struct {
	Ground   int
	Object   int
	Walkable int
}

// resolveCoverage counts occupied cells per layer and the cells an
// agent could stand on. A cell is walkable when its ground tile is
// walkable and any object above it is walkable too; an empty ground
// cell is never walkable.
func resolveCoverage(g *grid.Grid) coverage {
	var c coverage
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := geo.Pt(x, y)

			ground, hasGround := g.TileAt(p, catalog.LayerGround)
			if hasGround {
				c.Ground++
			}
			object, hasObject := g.TileAt(p, catalog.LayerObject)
			if hasObject {
				c.Object++
			}

			if hasGround && ground.Placement.Walkable &&
				(!hasObject || object.Placement.Walkable) {
				c.Walkable++
			}
		}
	}
	return c
}
