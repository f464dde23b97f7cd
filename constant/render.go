package constant

// Projection
const (
	// CellAspect compensates for terminal cells being about twice as tall as wide
	CellAspect = 2

	// DepthShear is the screen offset per unit of depth (oblique projection)
	DepthShear = 0.5

	// HUDRows reserved at the bottom of the screen
	HUDRows = 1
)

// Glyphs
const (
	GlyphStraightX = '━'
	GlyphStraightY = '┃'
	GlyphStraightZ = '╱'
	GlyphSphere    = '●'
	GlyphCap       = '◉'
	GlyphUnknown   = '+'
)
