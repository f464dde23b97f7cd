package playback

import (
	"github.com/lixenwraith/pipes/geometry"
	"github.com/lixenwraith/pipes/pipe"
	"github.com/lixenwraith/pipes/voxel"
)

// Placement is one element to draw, positioned relative to the grid center
type Placement struct {
	Pipe    int
	Index   int
	Cell    voxel.Cell
	Element int
	Kind    geometry.Kind
	Dir     voxel.Dir
	Pos     [3]float64
}

// Cursor reveals a PathSet one index at a time across all pipes in parallel
type Cursor struct {
	set    *pipe.PathSet
	center [3]float64
	index  int
	length int
}

// NewCursor starts a cursor at index 0
func NewCursor(ps *pipe.PathSet) *Cursor {
	return &Cursor{
		set:    ps,
		center: ps.Config.Dims.Center(),
		length: ps.Len(),
	}
}

// PathSet returns the scene being revealed
func (c *Cursor) PathSet() *pipe.PathSet {
	return c.set
}

// Index returns the next reveal index
func (c *Cursor) Index() int {
	return c.index
}

// Exhausted reports whether every index has been revealed
func (c *Cursor) Exhausted() bool {
	return c.index >= c.length
}

// Tick reveals the current index of every pipe and moves on.
// Padding and pipes shorter than the index contribute nothing.
func (c *Cursor) Tick() []Placement {
	if c.Exhausted() {
		return nil
	}
	var out []Placement
	for p := range c.set.Pipes {
		if pl, ok := c.at(p, c.index); ok {
			out = append(out, pl)
		}
	}
	c.index++
	return out
}

// Revealed returns every placement shown so far, in reveal order
func (c *Cursor) Revealed() []Placement {
	var out []Placement
	for i := 0; i < c.index; i++ {
		for p := range c.set.Pipes {
			if pl, ok := c.at(p, i); ok {
				out = append(out, pl)
			}
		}
	}
	return out
}

func (c *Cursor) at(p, i int) (Placement, bool) {
	s := c.set.Pipes[p].At(i)
	if s.IsSentinel() {
		return Placement{}, false
	}
	return Placement{
		Pipe:    p,
		Index:   i,
		Cell:    s.Cell,
		Element: s.Element,
		Kind:    s.Kind,
		Dir:     s.Dir,
		Pos:     Center(s.Cell, c.center),
	}, true
}

// Center offsets a cell so the grid's middle sits at the origin
func Center(c voxel.Cell, center [3]float64) [3]float64 {
	return [3]float64{
		float64(c.X) - center[0],
		float64(c.Y) - center[1],
		float64(c.Z) - center[2],
	}
}
