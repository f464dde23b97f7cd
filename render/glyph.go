package render

import (
	"github.com/lixenwraith/pipes/constant"
	"github.com/lixenwraith/pipes/geometry"
	"github.com/lixenwraith/pipes/voxel"
)

// screenDir is a face direction flattened onto the terminal plane
type screenDir int

const (
	right screenDir = iota
	left
	up
	down
)

// corners indexed by the two flattened faces a curve opens onto
var corners = map[[2]screenDir]rune{
	{right, up}:   '┗',
	{left, up}:    '┛',
	{right, down}: '┏',
	{left, down}:  '┓',
}

// Glyph returns the terminal rune drawn for an element id
func Glyph(element int, kind geometry.Kind) rune {
	switch {
	case kind == geometry.KindStart:
		return constant.GlyphCap
	case element == geometry.ElementStraightX:
		return constant.GlyphStraightX
	case element == geometry.ElementStraightY:
		return constant.GlyphStraightY
	case element == geometry.ElementStraightZ:
		return constant.GlyphStraightZ
	case geometry.IsSphere(element):
		return constant.GlyphSphere
	case geometry.IsCurve(element):
		return curveGlyph(element)
	}
	return constant.GlyphUnknown
}

// curveGlyph maps a bend onto a box corner.
// Depth has no screen axis of its own: it stands in for vertical on X-Z bends
// and for horizontal on Y-Z bends.
func curveGlyph(id int) rune {
	a, b, ok := geometry.CurveFaces(id)
	if !ok {
		return constant.GlyphUnknown
	}
	other := a.Axis
	if other == voxel.AxisZ {
		other = b.Axis
	}

	h, v := flatten(a, other), flatten(b, other)
	if h == up || h == down {
		h, v = v, h
	}
	if r, ok := corners[[2]screenDir{h, v}]; ok {
		return r
	}
	return constant.GlyphUnknown
}

// flatten projects a face onto the screen given the other axis of its bend
func flatten(d voxel.Dir, other voxel.Axis) screenDir {
	pos := d.Sign == voxel.Positive
	axis := d.Axis
	if axis == voxel.AxisZ {
		if other == voxel.AxisX {
			axis = voxel.AxisY
		} else {
			axis = voxel.AxisX
		}
	}
	switch {
	case axis == voxel.AxisX && pos:
		return right
	case axis == voxel.AxisX:
		return left
	case pos:
		return up
	}
	return down
}

// opensRight reports whether an element connects toward +X on screen,
// which needs a second column to close the gap left by CellAspect
func opensRight(element int) bool {
	if element == geometry.ElementStraightX {
		return true
	}
	a, b, ok := geometry.CurveFaces(element)
	if !ok {
		return false
	}
	px := voxel.Dir{Axis: voxel.AxisX, Sign: voxel.Positive}
	return a == px || b == px
}
