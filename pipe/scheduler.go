package pipe

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/lixenwraith/pipes/constant"
	"github.com/lixenwraith/pipes/voxel"
)

// Policy decides what a blocked pipe means for the rest of the scene
type Policy int

const (
	// PolicyTruncatePipe keeps the short pipe and continues with the next one
	PolicyTruncatePipe Policy = iota

	// PolicyStopGeneration keeps the short pipe and ends the scene there
	PolicyStopGeneration
)

func (p Policy) String() string {
	switch p {
	case PolicyTruncatePipe:
		return "truncate"
	case PolicyStopGeneration:
		return "stop"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy accepts "truncate" or "stop"
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "truncate":
		return PolicyTruncatePipe, nil
	case "stop":
		return PolicyStopGeneration, nil
	}
	return PolicyTruncatePipe, fmt.Errorf("%w: unknown block policy %q", ErrInvalidConfig, s)
}

// Config describes one scene generation
type Config struct {
	Dims         voxel.Dims `json:"dims"`
	StepsPerPipe int        `json:"steps_per_pipe"`
	PipeCount    int        `json:"pipe_count"`
	WaitSlots    int        `json:"wait_slots"`
	Seed         int64      `json:"seed"` // Optional (0 = Random)
	Policy       Policy     `json:"policy"`
	Walk         WalkConfig `json:"walk"`
}

// DefaultConfig returns a terminal-sized scene with classic tuning
func DefaultConfig() Config {
	return Config{
		Dims:         voxel.Cube(constant.DefaultGridSize),
		StepsPerPipe: constant.DefaultStepsPerPipe,
		PipeCount:    constant.DefaultPipeCount,
		WaitSlots:    constant.DefaultWaitSlots,
		Policy:       PolicyTruncatePipe,
		Walk:         DefaultWalkConfig(),
	}
}

// Validate checks every field Generate relies on
func (c Config) Validate() error {
	if err := c.Dims.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.StepsPerPipe < 1 {
		return fmt.Errorf("%w: steps per pipe %d", ErrInvalidConfig, c.StepsPerPipe)
	}
	if c.PipeCount < 1 {
		return fmt.Errorf("%w: pipe count %d", ErrInvalidConfig, c.PipeCount)
	}
	if c.WaitSlots < 0 {
		return fmt.Errorf("%w: wait slots %d", ErrInvalidConfig, c.WaitSlots)
	}
	if c.Policy != PolicyTruncatePipe && c.Policy != PolicyStopGeneration {
		return fmt.Errorf("%w: policy %d", ErrInvalidConfig, int(c.Policy))
	}
	return c.Walk.Validate()
}

// PipeLength is the padded length every pipe in the scene shares
func (c Config) PipeLength() int {
	return c.StepsPerPipe + c.PipeCount*c.WaitSlots
}

// Report records how one pipe's walk ended
type Report struct {
	Index  int   `json:"index"`
	Length int   `json:"length"` // Real steps
	State  State `json:"state"`
}

// PathSet is one scene: equal-length padded pipes ready for frame-indexed playback.
// Read-only once returned.
type PathSet struct {
	Seed     int64    `json:"seed"`
	Config   Config   `json:"config"`
	Pipes    []Pipe   `json:"pipes"`
	Reports  []Report `json:"reports"`
	Occupied int      `json:"occupied"`

	// Saturated is set when a pipe could not start and the scene ended early
	Saturated bool `json:"saturated"`
}

// Len returns the longest pipe length; reveal indices at or past it are exhausted
func (ps *PathSet) Len() int {
	n := 0
	for _, p := range ps.Pipes {
		if len(p) > n {
			n = len(p)
		}
	}
	return n
}

// Compact reduces every step to its (cell, element) pair
func (ps *PathSet) Compact() [][]Slot {
	out := make([][]Slot, len(ps.Pipes))
	for i, p := range ps.Pipes {
		slots := make([]Slot, len(p))
		for j, s := range p {
			slots[j] = Slot{Cell: s.Cell, Element: s.Element}
		}
		out[i] = slots
	}
	return out
}

// Generate builds a scene seeded from cfg.Seed; a zero seed picks one from the clock
// and records it on the result.
func Generate(cfg Config) (*PathSet, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ps, err := GenerateWith(rand.New(rand.NewSource(seed)), cfg)
	if err != nil {
		return nil, err
	}
	ps.Seed = seed
	return ps, nil
}

// GenerateWith builds a scene drawing all randomness from rng.
// The only error is an invalid config; saturation and blocking shorten the result instead.
func GenerateWith(rng *rand.Rand, cfg Config) (*PathSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid, err := voxel.NewGrid(cfg.Dims)
	if err != nil {
		return nil, err
	}

	ps := &PathSet{
		Seed:    cfg.Seed,
		Config:  cfg,
		Pipes:   make([]Pipe, 0, cfg.PipeCount),
		Reports: make([]Report, 0, cfg.PipeCount),
	}

	for i := 0; i < cfg.PipeCount; i++ {
		w := NewWalker(grid, rng, cfg.Walk)
		steps, err := w.Walk(cfg.StepsPerPipe)
		if errors.Is(err, ErrGridSaturated) {
			log.Printf("pipe: scene stopped at pipe %d/%d: %v", i, cfg.PipeCount, err)
			ps.Saturated = true
			break
		}

		ps.Pipes = append(ps.Pipes, pad(steps, i, cfg))
		ps.Reports = append(ps.Reports, Report{Index: i, Length: len(steps), State: w.State()})

		if w.State() == StateBlocked && cfg.Policy == PolicyStopGeneration {
			break
		}
	}

	ps.Occupied = grid.Occupied()
	return ps, nil
}

// pad surrounds a walk with sentinels: i*WaitSlots before it, and enough after it that every
// pipe is exactly PipeLength long whether or not it blocked.
func pad(steps []Step, i int, cfg Config) Pipe {
	lead := i * cfg.WaitSlots
	trail := (cfg.PipeCount-i)*cfg.WaitSlots + cfg.StepsPerPipe - len(steps)

	p := make(Pipe, 0, lead+len(steps)+trail)
	for j := 0; j < lead; j++ {
		p = append(p, Sentinel())
	}
	p = append(p, steps...)
	for j := 0; j < trail; j++ {
		p = append(p, Sentinel())
	}
	return p
}
