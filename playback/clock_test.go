package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestMockClock(t *testing.T) {
	m := NewMockClock(epoch)
	m.Advance(3 * time.Second)
	assert.Equal(t, epoch.Add(3*time.Second), m.Now())

	m.Set(epoch)
	assert.Equal(t, epoch, m.Now())
}

func TestPausableClock_FreezesWhilePaused(t *testing.T) {
	m := NewMockClock(epoch)
	pc := NewPausableClock(m)

	m.Advance(2 * time.Second)
	assert.Equal(t, 2*time.Second, pc.Elapsed())

	pc.Pause()
	assert.True(t, pc.IsPaused())
	m.Advance(5 * time.Second)
	assert.Equal(t, 2*time.Second, pc.Elapsed(), "paused time must not advance")
	assert.Equal(t, 5*time.Second, pc.TotalPaused())

	pc.Resume()
	m.Advance(time.Second)
	assert.Equal(t, 3*time.Second, pc.Elapsed())
	assert.Equal(t, epoch.Add(3*time.Second), pc.Now())
	assert.Equal(t, 5*time.Second, pc.TotalPaused())
}

func TestPausableClock_RepeatedCallsAreIdempotent(t *testing.T) {
	m := NewMockClock(epoch)
	pc := NewPausableClock(m)

	pc.Pause()
	m.Advance(time.Second)
	pc.Pause()
	m.Advance(time.Second)
	pc.Resume()
	pc.Resume()

	assert.Equal(t, 2*time.Second, pc.TotalPaused())
	assert.Equal(t, time.Duration(0), pc.Elapsed())
}

func TestPausableClock_Toggle(t *testing.T) {
	pc := NewPausableClock(NewMockClock(epoch))
	assert.True(t, pc.Toggle())
	assert.True(t, pc.IsPaused())
	assert.False(t, pc.Toggle())
	assert.False(t, pc.IsPaused())
}

func TestStepper(t *testing.T) {
	m := NewMockClock(epoch)
	s, err := NewStepper(m, 10)
	if err != nil {
		t.Fatalf("NewStepper: %v", err)
	}
	assert.Equal(t, 100*time.Millisecond, s.Interval())

	assert.Equal(t, 0, s.Due())

	m.Advance(250 * time.Millisecond)
	assert.Equal(t, 2, s.Due())

	// The 50ms remainder carries into the next tick
	m.Advance(50 * time.Millisecond)
	assert.Equal(t, 1, s.Due())

	m.Advance(10 * time.Second)
	assert.Equal(t, 8, s.Due(), "stalls are capped")
	assert.Equal(t, 0, s.Due(), "capped backlog is dropped")
}

func TestStepper_InvalidRate(t *testing.T) {
	_, err := NewStepper(NewMockClock(epoch), 0)
	assert.ErrorIs(t, err, ErrInvalidRate)
}
