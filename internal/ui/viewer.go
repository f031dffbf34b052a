package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/geo"
	"github.com/wozhendeai/generative-town/pkg/grid"
)

// layerMode selects which grid layers the viewer projects.
type layerMode int

const (
	modeBoth layerMode = iota
	modeGround
	modeObject
)

func (m layerMode) String() string {
	switch m {
	case modeGround:
		return "ground"
	case modeObject:
		return "object"
	default:
		return "both"
	}
}

func (m layerMode) next() layerMode {
	return (m + 1) % 3
}

// Viewer pans a colored ASCII projection of a grid around the
// terminal. It is read-only: all mutation goes through the API or CLI.
type Viewer struct {
	screen  *Screen
	grid    *grid.Grid
	cam     geo.Point
	mode    layerMode
	running bool
}

// NewViewer creates a viewer over an existing grid. The viewer owns
// the screen and closes it when Run returns.
func NewViewer(g *grid.Grid) (*Viewer, error) {
	screen, err := NewScreen()
	if err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return &Viewer{screen: screen, grid: g, running: true}, nil
}

// Run executes the viewer loop until the user quits.
func (v *Viewer) Run() error {
	defer v.screen.Close()
	for v.running {
		v.draw()
		v.handleInput()
	}
	return nil
}

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	// Bottom row is the status bar; everything above is map viewport.
	for sy := 0; sy < h-1; sy++ {
		for sx := 0; sx < w; sx++ {
			p := geo.Pt(v.cam.X+sx, v.cam.Y+sy)
			if !v.grid.InBounds(p) {
				continue
			}
			r, style := v.cell(p)
			v.screen.SetContent(sx, sy, r, style)
		}
	}
	v.drawStatus(w, h-1)
	v.screen.Show()
}

// cell projects one grid position. In both mode the object layer draws
// over the ground layer.
func (v *Viewer) cell(p geo.Point) (rune, tcell.Style) {
	if v.mode != modeGround {
		if def, ok := v.grid.TileAt(p, catalog.LayerObject); ok {
			return glyphFor(def), styleFor(def)
		}
	}
	if v.mode != modeObject {
		if def, ok := v.grid.TileAt(p, catalog.LayerGround); ok {
			return glyphFor(def), styleFor(def)
		}
	}
	return '.', tcell.StyleDefault.Foreground(tcell.ColorDimGray)
}

func (v *Viewer) drawStatus(w, y int) {
	msg := fmt.Sprintf(" %dx%d  cam (%d,%d)  layer %s  |  arrows/hjkl pan, tab layer, q quit",
		v.grid.Width(), v.grid.Height(), v.cam.X, v.cam.Y, v.mode)
	style := tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(msg) {
			r = rune(msg[x])
		}
		v.screen.SetContent(x, y, r, style)
	}
}

// handleInput processes a single input event.
func (v *Viewer) handleInput() {
	switch ev := v.screen.PollEvent().(type) {
	case *tcell.EventKey:
		v.handleKeyEvent(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
}

func (v *Viewer) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false

	case tcell.KeyUp:
		v.pan(0, -1)
	case tcell.KeyDown:
		v.pan(0, 1)
	case tcell.KeyLeft:
		v.pan(-1, 0)
	case tcell.KeyRight:
		v.pan(1, 0)

	case tcell.KeyTab:
		v.mode = v.mode.next()

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		case 'h':
			v.pan(-1, 0)
		case 'j':
			v.pan(0, 1)
		case 'k':
			v.pan(0, -1)
		case 'l':
			v.pan(1, 0)
		}
	}
}

func (v *Viewer) pan(dx, dy int) {
	vw, vh := v.screen.Size()
	v.cam = clampCam(geo.Pt(v.cam.X+dx, v.cam.Y+dy), v.grid.Width(), v.grid.Height(), vw, vh-1)
}

// clampCam keeps the viewport over the map: the camera stops where the
// last visible row or column would leave the view. Maps smaller than
// the viewport pin to the origin.
func clampCam(cam geo.Point, gridW, gridH, viewW, viewH int) geo.Point {
	maxX := gridW - viewW
	maxY := gridH - viewH
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	if cam.X > maxX {
		cam.X = maxX
	}
	if cam.Y > maxY {
		cam.Y = maxY
	}
	if cam.X < 0 {
		cam.X = 0
	}
	if cam.Y < 0 {
		cam.Y = 0
	}
	return cam
}

// glyphFor mirrors the ASCII dump alphabet so the viewer and the dump
// read the same.
func glyphFor(def catalog.TileDefinition) rune {
	switch def.Category {
	case catalog.CategoryGround:
		if def.Road() {
			return '#'
		}
		return ','
	case catalog.CategoryBuilding:
		return 'B'
	case catalog.CategoryProp:
		return 'o'
	case catalog.CategoryWall:
		return 'W'
	case catalog.CategoryMarker:
		return '*'
	default:
		return '?'
	}
}

func styleFor(def catalog.TileDefinition) tcell.Style {
	switch def.Category {
	case catalog.CategoryGround:
		if def.Road() {
			return tcell.StyleDefault.Foreground(tcell.ColorLightGray).Bold(true)
		}
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case catalog.CategoryBuilding:
		return tcell.StyleDefault.Foreground(tcell.ColorRosyBrown)
	case catalog.CategoryProp:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	case catalog.CategoryWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case catalog.CategoryMarker:
		return tcell.StyleDefault.Foreground(tcell.ColorPurple)
	default:
		return tcell.StyleDefault
	}
}
