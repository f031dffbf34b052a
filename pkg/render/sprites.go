package render

import (
	"fmt"
	"image"

	"github.com/wozhendeai/generative-town/pkg/catalog"
)

// spriteCache holds one scaled sprite per tile ref, so each tile is
// extracted and scaled exactly once per render no matter how often it
// appears on the grid.
type spriteCache struct {
	atlas       *Atlas
	scale       int
	sprites     map[catalog.Ref]*image.NRGBA
	extractions int
}

func newSpriteCache(atlas *Atlas, scale int) *spriteCache {
	return &spriteCache{
		atlas:   atlas,
		scale:   scale,
		sprites: make(map[catalog.Ref]*image.NRGBA),
	}
}

func (c *spriteCache) sprite(cat *catalog.Catalog, ref catalog.Ref) (*image.NRGBA, error) {
	if s, ok := c.sprites[ref]; ok {
		return s, nil
	}

	def := cat.Tile(ref)
	region, err := c.atlas.Region(def.Atlas, def.Footprint)
	if err != nil {
		return nil, fmt.Errorf("tile %q: %w", def.ID, err)
	}
	s := scaleNearest(region, c.scale)
	c.extractions++
	c.sprites[ref] = s
	return s, nil
}

// scaleNearest blows up src by an integer factor using nearest
// neighbor, which keeps pixel art edges crisp.
func scaleNearest(src image.Image, scale int) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx()*scale, b.Dy()*scale
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(x, y, src.At(b.Min.X+x/scale, b.Min.Y+y/scale))
		}
	}
	return dst
}
