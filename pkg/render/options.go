package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/wozhendeai/generative-town/pkg/catalog"
)

// Format selects the output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
)

var (
	ErrBadScale  = errors.New("render: scale must be at least 1")
	ErrBadFormat = errors.New("render: unknown format")
)

// Options control a render pass. The zero value is not usable; start
// from DefaultOptions.
type Options struct {
	// Scale multiplies each source pixel into an NxN block. Integer
	// scaling only, so pixel art stays crisp.
	Scale int
	// Format selects the encoder used by Encode and WriteFile.
	Format Format
	// Background is a hex color ("#1a1a2e") painted under the layers.
	Background string
	// Layers lists the layers to composite, in order. Empty means
	// ground then object.
	Layers []catalog.Layer
}

// DefaultOptions renders both layers at 1:1 on black, encoded as PNG.
func DefaultOptions() Options {
	return Options{
		Scale:      1,
		Format:     FormatPNG,
		Background: "#000000",
	}
}

// normalize validates the options and resolves derived values.
func (o Options) normalize() (Options, color.Color, error) {
	if o.Scale < 1 {
		return o, nil, fmt.Errorf("%w: got %d", ErrBadScale, o.Scale)
	}
	switch o.Format {
	case FormatPNG, FormatJPEG, FormatGIF:
	case "":
		o.Format = FormatPNG
	default:
		return o, nil, fmt.Errorf("%w: %q", ErrBadFormat, o.Format)
	}
	if o.Background == "" {
		o.Background = "#000000"
	}
	bg, err := colorful.Hex(o.Background)
	if err != nil {
		return o, nil, fmt.Errorf("render: background color: %w", err)
	}
	if len(o.Layers) == 0 {
		o.Layers = catalog.Layers
	}
	return o, bg, nil
}
