package playback

import (
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/pipes/pipe"
)

// Source produces the next scene when the current one is exhausted
type Source func() (*pipe.PathSet, error)

// GeneratorSource generates scenes from cfg. A fixed seed makes the sequence repeatable:
// scene n uses Seed+n. A zero seed draws each scene's seed from the clock.
func GeneratorSource(cfg pipe.Config) Source {
	n := int64(0)
	return func() (*pipe.PathSet, error) {
		c := cfg
		if c.Seed != 0 {
			c.Seed += n
		}
		n++
		return pipe.Generate(c)
	}
}

// Frame is the result of one Update
type Frame struct {
	Placements  []Placement
	Regenerated bool // Scene was replaced; previously drawn placements are stale
	Exhausted   bool
}

// Player drives a cursor from a pausable clock and swaps scenes on exhaustion
type Player struct {
	source  Source
	clock   *PausableClock
	stepper *Stepper
	cursor  *Cursor
	scenes  int
}

// NewPlayer generates the first scene and starts revealing at rate indices per second
func NewPlayer(source Source, base Clock, rate int) (*Player, error) {
	clock := NewPausableClock(base)
	stepper, err := NewStepper(clock, rate)
	if err != nil {
		return nil, err
	}
	p := &Player{
		source:  source,
		clock:   clock,
		stepper: stepper,
	}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Player) load() error {
	ps, err := p.source()
	if err != nil {
		return fmt.Errorf("generate scene %d: %w", p.scenes, err)
	}
	p.cursor = NewCursor(ps)
	p.scenes++
	log.Printf("playback: scene %d seed=%d pipes=%d length=%d saturated=%v",
		p.scenes, ps.Seed, len(ps.Pipes), ps.Len(), ps.Saturated)
	return nil
}

// Update reveals every tick due since the last call.
// An exhausted scene is replaced on its next tick.
func (p *Player) Update() (Frame, error) {
	var f Frame
	for due := p.stepper.Due(); due > 0; due-- {
		if p.cursor.Exhausted() {
			if err := p.load(); err != nil {
				return f, err
			}
			f.Placements = f.Placements[:0]
			f.Regenerated = true
		}
		f.Placements = append(f.Placements, p.cursor.Tick()...)
	}
	f.Exhausted = p.cursor.Exhausted()
	return f, nil
}

// Regenerate replaces the scene immediately
func (p *Player) Regenerate() error {
	if err := p.load(); err != nil {
		return err
	}
	p.stepper.Reset()
	return nil
}

// TogglePause pauses or resumes the reveal and reports the new state
func (p *Player) TogglePause() bool {
	paused := p.clock.Toggle()
	if !paused {
		p.stepper.Reset()
	}
	return paused
}

// Paused reports whether the reveal is paused
func (p *Player) Paused() bool {
	return p.clock.IsPaused()
}

// Cursor returns the cursor over the current scene
func (p *Player) Cursor() *Cursor {
	return p.cursor
}

// Scenes returns how many scenes have been loaded
func (p *Player) Scenes() int {
	return p.scenes
}

// Elapsed returns unpaused playback time
func (p *Player) Elapsed() time.Duration {
	return p.clock.Elapsed()
}
