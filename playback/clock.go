package playback

import (
	"sync"
	"sync/atomic"
	"time"
)

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real monotonic clock
type SystemClock struct{}

// Now returns the current time with monotonic clock reading
func (SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock provides a controllable time source for testing
type MockClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMockClock creates a mock clock starting at start
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{current: start}
}

// Now returns the current mocked time
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set sets the current time
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance moves the current time forward by d
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

// PausableClock provides scene time that stands still while paused
type PausableClock struct {
	mu sync.RWMutex

	base  Clock
	epoch time.Time // Base time when the clock was created

	paused      atomic.Bool
	pauseStart  time.Time     // Base time the current pause began
	totalPaused time.Duration // Cumulative pause duration
}

// NewPausableClock wraps base; nil uses the system clock
func NewPausableClock(base Clock) *PausableClock {
	if base == nil {
		base = SystemClock{}
	}
	return &PausableClock{
		base:  base,
		epoch: base.Now(),
	}
}

// Now returns scene time (frozen during a pause)
func (pc *PausableClock) Now() time.Time {
	return pc.epoch.Add(pc.Elapsed())
}

// Elapsed returns scene time since creation, excluding pauses
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused.Load() {
		return pc.pauseStart.Sub(pc.epoch) - pc.totalPaused
	}
	return pc.base.Now().Sub(pc.epoch) - pc.totalPaused
}

// Pause stops scene time
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused.Load() {
		pc.pauseStart = pc.base.Now()
		pc.paused.Store(true)
	}
}

// Resume continues scene time
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused.Load() {
		pc.totalPaused += pc.base.Now().Sub(pc.pauseStart)
		pc.pauseStart = time.Time{}
		pc.paused.Store(false)
	}
}

// Toggle flips the pause state and reports whether the clock is now paused
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.paused.Load()
}

// TotalPaused returns cumulative pause time, including a pause in progress
func (pc *PausableClock) TotalPaused() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPaused
	if pc.paused.Load() && !pc.pauseStart.IsZero() {
		total += pc.base.Now().Sub(pc.pauseStart)
	}
	return total
}
