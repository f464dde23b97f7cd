package pipe

import (
	"errors"

	"github.com/lixenwraith/pipes/geometry"
	"github.com/lixenwraith/pipes/voxel"
)

// Sentinel errors
var (
	ErrGridSaturated  = errors.New("no free cell can start a pipe")
	ErrAlreadyStarted = errors.New("walker already started")
	ErrInvalidConfig  = errors.New("invalid generation config")
	ErrInvalidPath    = errors.New("path set violates walk invariants")
)

// Step is one placement in a pipe.
// Dir is the direction the pipe leaves the cell by; the next step's cell is Cell.Step(Dir).
type Step struct {
	Cell    voxel.Cell    `json:"cell"`
	Element int           `json:"element"`
	Kind    geometry.Kind `json:"kind"`
	Dir     voxel.Dir     `json:"dir"`
}

// Sentinel returns a padding step that draws nothing
func Sentinel() Step {
	return Step{
		Cell:    voxel.InvalidCell,
		Element: geometry.ElementNone,
		Kind:    geometry.KindNone,
	}
}

// IsSentinel reports whether s is padding
func (s Step) IsSentinel() bool {
	return s.Element == geometry.ElementNone
}

// Pipe is an ordered run of steps including leading and trailing padding
type Pipe []Step

// Lead returns the number of leading sentinel steps
func (p Pipe) Lead() int {
	for i, s := range p {
		if !s.IsSentinel() {
			return i
		}
	}
	return len(p)
}

// Real returns the steps carrying geometry, in walk order
func (p Pipe) Real() []Step {
	lead := p.Lead()
	end := lead
	for end < len(p) && !p[end].IsSentinel() {
		end++
	}
	return p[lead:end]
}

// At returns the step at reveal index i; out-of-range indices yield a sentinel
func (p Pipe) At(i int) Step {
	if i < 0 || i >= len(p) {
		return Sentinel()
	}
	return p[i]
}

// Slot is the reduced (cell, element) form of a step
type Slot struct {
	Cell    voxel.Cell `json:"cell"`
	Element int        `json:"element"`
}
