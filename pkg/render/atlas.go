package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/wozhendeai/generative-town/pkg/catalog"
)

// ErrMissingRegion reports a tile whose atlas position falls outside
// the loaded sheet.
var ErrMissingRegion = errors.New("render: atlas region out of bounds")

// Atlas is a sprite sheet cut on a fixed tile size. Positions in the
// catalog are expressed in tile units against this sheet.
type Atlas struct {
	img      image.Image
	tileSize int
}

// LoadAtlas decodes a sheet from disk. PNG, JPEG and GIF are accepted.
func LoadAtlas(path string, tileSize int) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open atlas: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode atlas %s: %w", path, err)
	}
	return NewAtlas(img, tileSize)
}

// NewAtlas wraps an already-decoded sheet.
func NewAtlas(img image.Image, tileSize int) (*Atlas, error) {
	if img == nil {
		return nil, errors.New("render: nil atlas image")
	}
	if tileSize < 1 {
		return nil, fmt.Errorf("render: tile size must be at least 1, got %d", tileSize)
	}
	return &Atlas{img: img, tileSize: tileSize}, nil
}

// TileSize returns the tile edge length in pixels.
func (a *Atlas) TileSize() int { return a.tileSize }

// Columns returns the sheet width in tile units.
func (a *Atlas) Columns() int { return a.img.Bounds().Dx() / a.tileSize }

// Rows returns the sheet height in tile units.
func (a *Atlas) Rows() int { return a.img.Bounds().Dy() / a.tileSize }

// Region extracts the footprint-sized sprite for one tile definition.
// The region spans fp.W x fp.H tiles starting at pos.
func (a *Atlas) Region(pos catalog.AtlasPos, fp catalog.Footprint) (image.Image, error) {
	b := a.img.Bounds()
	r := image.Rect(
		pos.Col*a.tileSize,
		pos.Row*a.tileSize,
		(pos.Col+fp.W)*a.tileSize,
		(pos.Row+fp.H)*a.tileSize,
	).Add(b.Min)
	if !r.In(b) {
		return nil, fmt.Errorf("%w: col=%d row=%d span=%dx%d sheet=%dx%d tiles",
			ErrMissingRegion, pos.Col, pos.Row, fp.W, fp.H, a.Columns(), a.Rows())
	}

	if si, ok := a.img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return si.SubImage(r), nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), a.img, r.Min, draw.Src)
	return dst, nil
}
