package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pipes/constant"
	"github.com/lixenwraith/pipes/playback"
)

// Palette cycles per pipe index
var Palette = []tcell.Color{
	tcell.ColorRed,
	tcell.ColorGreen,
	tcell.ColorYellow,
	tcell.ColorBlue,
	tcell.ColorFuchsia,
	tcell.ColorAqua,
	tcell.ColorOrange,
	tcell.ColorSilver,
}

// Renderer draws placements onto a tcell screen with an oblique projection.
// Drawn cells persist until Clear; a depth buffer keeps nearer elements on top.
type Renderer struct {
	screen        tcell.Screen
	width, height int
	originX       int
	originY       int
	depth         []float64
}

// NewRenderer creates a renderer sized to the screen
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen}
	r.Resize()
	return r
}

// Resize adopts the current screen size and clears everything drawn
func (r *Renderer) Resize() {
	r.width, r.height = r.screen.Size()
	r.originX = r.width / 2
	r.originY = (r.height - constant.HUDRows) / 2
	size := r.width * r.height
	if cap(r.depth) < size {
		r.depth = make([]float64, size)
	} else {
		r.depth = r.depth[:size]
	}
	r.Clear()
}

// Clear wipes the screen and depth buffer
func (r *Renderer) Clear() {
	r.screen.Clear()
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}
}

// Size returns the drawable area
func (r *Renderer) Size() (int, int) {
	return r.width, r.height - constant.HUDRows
}

// Project maps a centered position to a screen cell and a depth (smaller is nearer).
// +X runs right, +Y up, and +Z recedes up and to the right.
func (r *Renderer) Project(pos [3]float64) (x, y int, depth float64) {
	x = r.originX + int(math.Round((pos[0]+constant.DepthShear*pos[2])*constant.CellAspect))
	y = r.originY - int(math.Round(pos[1]+constant.DepthShear*pos[2]))
	return x, y, pos[2]
}

// Draw projects placements and writes the visible ones
func (r *Renderer) Draw(placements []playback.Placement) {
	for _, pl := range placements {
		x, y, d := r.Project(pl.Pos)
		style := tcell.StyleDefault.Foreground(Palette[pl.Pipe%len(Palette)])
		r.set(x, y, d, Glyph(pl.Element, pl.Kind), style)
		if opensRight(pl.Element) {
			r.set(x+1, y, d, constant.GlyphStraightX, style)
		}
	}
}

func (r *Renderer) set(x, y int, depth float64, ch rune, style tcell.Style) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height-constant.HUDRows {
		return
	}
	idx := y*r.width + x
	if depth > r.depth[idx] {
		return
	}
	r.depth[idx] = depth
	r.screen.SetContent(x, y, ch, nil, style)
}

// DrawHUD writes a status line across the reserved bottom row
func (r *Renderer) DrawHUD(text string) {
	if r.height < constant.HUDRows {
		return
	}
	y := r.height - constant.HUDRows
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	x := 0
	for _, ch := range text {
		if x >= r.width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	for ; x < r.width; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// Show flushes pending changes to the terminal
func (r *Renderer) Show() {
	r.screen.Show()
}
