package voxel

// Cell states
const (
	Free     uint8 = 0
	Occupied uint8 = 1
)

// Grid is a 3D occupancy volume. Cells only ever go from Free to Occupied;
// a grid lives for one PathSet generation and is then discarded.
// Not safe for concurrent use.
type Grid struct {
	dims     Dims
	cells    []uint8
	occupied int
}

// NewGrid creates a grid with every cell free
func NewGrid(d Dims) (*Grid, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Grid{
		dims:  d,
		cells: make([]uint8, d.Volume()),
	}, nil
}

// Dims returns the grid extent
func (g *Grid) Dims() Dims {
	return g.dims
}

func (g *Grid) index(c Cell) int {
	return (c.X*g.dims.Y+c.Y)*g.dims.Z + c.Z
}

// InBounds reports whether c addresses a cell of this grid
func (g *Grid) InBounds(c Cell) bool {
	return InBounds(c, g.dims)
}

// IsFree reports whether c is unoccupied.
// Callers bounds-check first; out-of-range cells report false.
func (g *Grid) IsFree(c Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.cells[g.index(c)] == Free
}

// MarkOccupied claims c permanently. Idempotent; out-of-range cells are ignored.
func (g *Grid) MarkOccupied(c Cell) {
	if !g.InBounds(c) {
		return
	}
	i := g.index(c)
	if g.cells[i] == Free {
		g.cells[i] = Occupied
		g.occupied++
	}
}

// Eligible reports whether a walk may enter c: in bounds and free
func (g *Grid) Eligible(c Cell) bool {
	return g.InBounds(c) && g.cells[g.index(c)] == Free
}

// Occupied returns the number of claimed cells
func (g *Grid) Occupied() int {
	return g.occupied
}

// FreeCount returns the number of unclaimed cells
func (g *Grid) FreeCount() int {
	return len(g.cells) - g.occupied
}

// Saturated reports whether no cell remains free
func (g *Grid) Saturated() bool {
	return g.occupied == len(g.cells)
}

// FreeCells appends every free cell to dst in index order
func (g *Grid) FreeCells(dst []Cell) []Cell {
	for x := 0; x < g.dims.X; x++ {
		for y := 0; y < g.dims.Y; y++ {
			for z := 0; z < g.dims.Z; z++ {
				c := Cell{x, y, z}
				if g.cells[g.index(c)] == Free {
					dst = append(dst, c)
				}
			}
		}
	}
	return dst
}
