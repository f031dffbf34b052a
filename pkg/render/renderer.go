package render

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/geo"
	"github.com/wozhendeai/generative-town/pkg/grid"
)

// Result is a finished render plus its pass statistics. Sprite
// extraction is counted per unique tile, not per placement.
type Result struct {
	Image            *image.NRGBA `json:"-"`
	Width            int          `json:"width"`
	Height           int          `json:"height"`
	Scale            int          `json:"scale"`
	GroundTiles      int          `json:"ground_tiles"`
	ObjectTiles      int          `json:"object_tiles"`
	SpritesExtracted int          `json:"sprites_extracted"`
}

// TilesDrawn is the total across layers.
func (r *Result) TilesDrawn() int {
	return r.GroundTiles + r.ObjectTiles
}

// Render composites the grid onto a fresh canvas: background fill,
// then each requested layer in order, ground under objects. Sprites
// larger than one cell draw down-right from their anchor and clip at
// the canvas edge.
func Render(g *grid.Grid, atlas *Atlas, opts Options) (*Result, error) {
	opts, bg, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	if atlas.TileSize() != g.Catalog().TileSize() {
		return nil, fmt.Errorf("render: atlas tile size %d does not match catalog tile size %d",
			atlas.TileSize(), g.Catalog().TileSize())
	}

	cell := atlas.TileSize() * opts.Scale
	canvas := image.NewNRGBA(image.Rect(0, 0, g.Width()*cell, g.Height()*cell))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	cache := newSpriteCache(atlas, opts.Scale)
	res := &Result{
		Image:  canvas,
		Width:  canvas.Bounds().Dx(),
		Height: canvas.Bounds().Dy(),
		Scale:  opts.Scale,
	}
	for _, layer := range opts.Layers {
		drawn := 0
		var failed error
		g.EachCell(layer, func(p geo.Point, ref catalog.Ref) {
			if failed != nil {
				return
			}
			s, err := cache.sprite(g.Catalog(), ref)
			if err != nil {
				failed = err
				return
			}
			target := s.Bounds().Add(image.Pt(p.X*cell, p.Y*cell))
			draw.Draw(canvas, target, s, s.Bounds().Min, draw.Over)
			drawn++
		})
		if failed != nil {
			return nil, failed
		}
		switch layer {
		case catalog.LayerGround:
			res.GroundTiles += drawn
		case catalog.LayerObject:
			res.ObjectTiles += drawn
		}
	}

	res.SpritesExtracted = cache.extractions
	return res, nil
}
