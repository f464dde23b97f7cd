package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/pipes/constant"
)

// envelope applies attack/release shaping to a stream and ends it after the total length
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope of the given duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if rest := e.totalSamples - e.position; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; math.Log2(0) is -Inf, so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// ChimeFrequency returns the pitch for a pipe: the base note raised ChimeSemitoneStep
// semitones per pipe index, folded into two octaves
func ChimeFrequency(pipe int) float64 {
	if pipe < 0 {
		pipe = -pipe
	}
	semitones := (pipe * constant.ChimeSemitoneStep) % 24
	return constant.ChimeBaseFreq * math.Pow(2, float64(semitones)/12)
}

// CreateChime builds the short tone played when a pipe starts
func CreateChime(cfg *AudioConfig, pipe int) (beep.Streamer, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	tone, err := generators.SineTone(rate, ChimeFrequency(pipe))
	if err != nil {
		return nil, fmt.Errorf("chime tone: %w", err)
	}
	shaped := NewEnvelope(tone, constant.ChimeDuration, 5*time.Millisecond, constant.ChimeDuration/2, rate)
	return newVolume(shaped, cfg.MasterVolume*0.3), nil
}
