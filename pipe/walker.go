package pipe

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/lixenwraith/pipes/constant"
	"github.com/lixenwraith/pipes/geometry"
	"github.com/lixenwraith/pipes/voxel"
)

// State of a pipe walk
type State int

const (
	StateUninitialized State = iota
	StateWalking
	StateBlocked
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateWalking:
		return "walking"
	case StateBlocked:
		return "blocked"
	case StateComplete:
		return "complete"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Outcome of a single Advance
type Outcome int

const (
	Extended Outcome = iota // A step was appended
	Blocked                 // No eligible direction; nothing appended
)

func (o Outcome) String() string {
	if o == Blocked {
		return "blocked"
	}
	return "extended"
}

// WalkConfig tunes the random walk
type WalkConfig struct {
	StartAttempts int                `json:"start_attempts"` // Random start samples before the exhaustive scan
	TurnAttempts  int                `json:"turn_attempts"`  // Direction samples per turn before blocking
	TurnOdds      int                `json:"turn_odds"`      // 1-in-N chance to turn on a free straight
	JunctionOdds  int                `json:"junction_odds"`  // 1-in-N chance a turn becomes a junction sphere
	CurveMode     geometry.CurveMode `json:"curve_mode"`
}

// DefaultWalkConfig returns the classic screensaver tuning
func DefaultWalkConfig() WalkConfig {
	return WalkConfig{
		StartAttempts: constant.StartAttempts,
		TurnAttempts:  constant.TurnAttempts,
		TurnOdds:      constant.TurnOdds,
		JunctionOdds:  constant.JunctionOdds,
		CurveMode:     geometry.CurvePair,
	}
}

// Validate rejects budgets and odds that would stall or panic the walk
func (c WalkConfig) Validate() error {
	if c.StartAttempts < 0 {
		return fmt.Errorf("%w: start attempts %d", ErrInvalidConfig, c.StartAttempts)
	}
	if c.TurnAttempts < 1 {
		return fmt.Errorf("%w: turn attempts %d", ErrInvalidConfig, c.TurnAttempts)
	}
	if c.TurnOdds < 1 || c.JunctionOdds < 1 {
		return fmt.Errorf("%w: odds must be at least 1 (turn %d, junction %d)",
			ErrInvalidConfig, c.TurnOdds, c.JunctionOdds)
	}
	return nil
}

// Walker grows one pipe through a shared grid.
// Uninitialized -> Walking on Start; Walking -> Blocked when no direction fits;
// Walking -> Complete when Walk reaches its target length.
type Walker struct {
	grid  *voxel.Grid
	rng   *rand.Rand
	cfg   WalkConfig
	steps []Step
	state State
}

// NewWalker creates a walker drawing randomness from rng
func NewWalker(grid *voxel.Grid, rng *rand.Rand, cfg WalkConfig) *Walker {
	return &Walker{
		grid: grid,
		rng:  rng,
		cfg:  cfg,
	}
}

// State returns the walk state
func (w *Walker) State() State {
	return w.state
}

// Steps returns the steps walked so far
func (w *Walker) Steps() []Step {
	return w.steps
}

// Start claims a random free cell whose neighbour along a random direction is also free.
// Random sampling is bounded by StartAttempts, then every free cell is scanned from a random
// offset. ErrGridSaturated means no (cell, direction) pair exists at all.
func (w *Walker) Start() (Step, error) {
	if w.state != StateUninitialized {
		return Step{}, ErrAlreadyStarted
	}

	cell, dir, ok := w.sampleStart()
	if !ok {
		cell, dir, ok = w.scanStart()
	}
	if !ok {
		w.state = StateBlocked
		return Step{}, ErrGridSaturated
	}

	w.grid.MarkOccupied(cell)
	s := Step{
		Cell:    cell,
		Element: geometry.ElementSphere,
		Kind:    geometry.KindStart,
		Dir:     dir,
	}
	w.steps = append(w.steps, s)
	w.state = StateWalking
	return s, nil
}

func (w *Walker) sampleStart() (voxel.Cell, voxel.Dir, bool) {
	d := w.grid.Dims()
	for i := 0; i < w.cfg.StartAttempts; i++ {
		if w.grid.Saturated() {
			break
		}
		c := voxel.Cell{X: w.rng.Intn(d.X), Y: w.rng.Intn(d.Y), Z: w.rng.Intn(d.Z)}
		if !w.grid.IsFree(c) {
			continue
		}
		dir := w.randomDir()
		if w.grid.Eligible(c.Step(dir)) {
			return c, dir, true
		}
	}
	return voxel.Cell{}, voxel.Dir{}, false
}

func (w *Walker) scanStart() (voxel.Cell, voxel.Dir, bool) {
	free := w.grid.FreeCells(nil)
	if len(free) == 0 {
		return voxel.Cell{}, voxel.Dir{}, false
	}
	cellOffset := w.rng.Intn(len(free))
	dirOffset := w.rng.Intn(len(voxel.Dirs))
	for i := range free {
		c := free[(cellOffset+i)%len(free)]
		for j := range voxel.Dirs {
			dir := voxel.Dirs[(dirOffset+j)%len(voxel.Dirs)]
			if w.grid.Eligible(c.Step(dir)) {
				return c, dir, true
			}
		}
	}
	return voxel.Cell{}, voxel.Dir{}, false
}

func (w *Walker) randomDir() voxel.Dir {
	axis := voxel.Axis(w.rng.Intn(len(voxel.Axes)))
	sign := voxel.Sign(w.rng.Intn(2))
	return voxel.Dir{Axis: axis, Sign: sign}
}

// Advance moves one cell along the current direction and decides the direction to leave by.
// A turn is rolled 1-in-TurnOdds and forced when the cell beyond is not eligible.
// Blocked leaves the pipe unchanged.
func (w *Walker) Advance() (Step, Outcome) {
	if w.state != StateWalking {
		return Step{}, Blocked
	}

	last := w.steps[len(w.steps)-1]
	next := last.Cell.Step(last.Dir)
	if !w.grid.Eligible(next) {
		w.state = StateBlocked
		return Step{}, Blocked
	}

	turn := w.rng.Intn(w.cfg.TurnOdds) == 0
	if !w.grid.Eligible(next.Step(last.Dir)) {
		turn = true
	}

	s := Step{
		Cell:    next,
		Element: geometry.StraightFor(last.Dir.Axis),
		Kind:    geometry.KindStraight,
		Dir:     last.Dir,
	}

	if turn {
		dir, ok := w.pickTurn(next, last.Dir)
		if !ok {
			w.state = StateBlocked
			return Step{}, Blocked
		}
		s.Dir = dir
		s.Kind = geometry.KindCurve
		if w.rng.Intn(w.cfg.JunctionOdds) == 0 && !geometry.IsSphere(last.Element) {
			s.Kind = geometry.KindJunction
		}

		element, err := geometry.Classify(w.cfg.CurveMode, s.Kind, last.Dir, dir)
		if err != nil {
			log.Printf("pipe: classify %v at %v: %v", s.Kind, next, err)
		}
		s.Element = element
	}

	w.grid.MarkOccupied(next)
	w.steps = append(w.steps, s)
	return s, Extended
}

// pickTurn samples a direction off the current axis whose next cell is eligible
func (w *Walker) pickTurn(at voxel.Cell, cur voxel.Dir) (voxel.Dir, bool) {
	for tries := 0; tries < w.cfg.TurnAttempts; tries++ {
		dir := w.randomDir()
		if dir.Axis == cur.Axis {
			continue
		}
		if w.grid.Eligible(at.Step(dir)) {
			return dir, true
		}
	}
	return voxel.Dir{}, false
}

// Walk starts the pipe and advances until it holds length steps or blocks
func (w *Walker) Walk(length int) ([]Step, error) {
	if _, err := w.Start(); err != nil {
		return nil, err
	}
	for len(w.steps) < length {
		if _, out := w.Advance(); out == Blocked {
			return w.steps, nil
		}
	}
	w.state = StateComplete
	return w.steps, nil
}
