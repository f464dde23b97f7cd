package playback

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/pipes/constant"
)

// ErrInvalidRate is returned for a non-positive reveal rate
var ErrInvalidRate = errors.New("reveal rate must be positive")

// Stepper converts elapsed clock time into whole reveal ticks.
// Driven by a PausableClock it yields nothing while paused.
type Stepper struct {
	clock      Clock
	interval   time.Duration
	last       time.Time
	maxCatchUp int
}

// NewStepper creates a stepper revealing rate indices per second
func NewStepper(clock Clock, rate int) (*Stepper, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, rate)
	}
	return &Stepper{
		clock:      clock,
		interval:   time.Second / time.Duration(rate),
		last:       clock.Now(),
		maxCatchUp: constant.MaxCatchUpTicks,
	}, nil
}

// Interval returns the time between reveal ticks
func (s *Stepper) Interval() time.Duration {
	return s.interval
}

// Due returns how many ticks elapsed since the last call.
// A long stall is capped at MaxCatchUpTicks and the backlog is dropped.
func (s *Stepper) Due() int {
	now := s.clock.Now()
	n := int(now.Sub(s.last) / s.interval)
	if n <= 0 {
		return 0
	}
	if n > s.maxCatchUp {
		s.last = now
		return s.maxCatchUp
	}
	s.last = s.last.Add(time.Duration(n) * s.interval)
	return n
}

// Reset discards any pending ticks
func (s *Stepper) Reset() {
	s.last = s.clock.Now()
}
