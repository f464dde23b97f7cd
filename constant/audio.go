package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Chime Sound
const (
	ChimeDuration = 60 * time.Millisecond
	ChimeBaseFreq = 440.0

	// ChimeSemitoneStep raises pitch per pipe index so staggered starts form a scale
	ChimeSemitoneStep = 2

	// ChimeMinGap between consecutive chimes
	ChimeMinGap = 50 * time.Millisecond
)
