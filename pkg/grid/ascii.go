package grid

import (
	"strings"

	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/geo"
)

// Dump characters, one per cell.
const (
	charEmpty    = '.'
	charGround   = ','
	charRoad     = '#'
	charBuilding = 'B'
	charProp     = 'o'
	charWall     = 'W'
	charMarker   = '*'
)

// Dump renders one layer as ASCII art, one character per cell and one
// row per line: '.' empty, ',' plain ground, '#' road, 'B' building,
// 'o' prop, 'W' wall, '*' marker. Intended for debugging and for
// callers that want a textual view of grid state.
func (g *Grid) Dump(l catalog.Layer) string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			b.WriteRune(g.dumpChar(geo.Pt(x, y), l))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *Grid) dumpChar(p geo.Point, l catalog.Layer) rune {
	def, ok := g.TileAt(p, l)
	if !ok {
		return charEmpty
	}
	switch def.Category {
	case catalog.CategoryGround:
		if def.Road() {
			return charRoad
		}
		return charGround
	case catalog.CategoryBuilding:
		return charBuilding
	case catalog.CategoryProp:
		return charProp
	case catalog.CategoryWall:
		return charWall
	case catalog.CategoryMarker:
		return charMarker
	}
	return charGround
}
