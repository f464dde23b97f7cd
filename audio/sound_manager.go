package audio

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/pipes/constant"
)

// ErrDisabled is returned by Initialize when audio is switched off
var ErrDisabled = errors.New("audio disabled")

// SoundManager plays pipe chimes through a shared mixer on the speaker
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool
	lastChime   time.Time
	now         func() time.Time
}

// NewSoundManager creates a sound manager; nil uses the environment configuration
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = LoadAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize sets up the speaker. Safe to call twice.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return ErrDisabled
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(constant.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and releases the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// PlayChime sounds the start of a pipe. Chimes closer together than ChimeMinGap
// are dropped; reports whether the chime was queued.
func (sm *SoundManager) PlayChime(pipe int) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || !sm.allow() {
		return false
	}

	chime, err := CreateChime(sm.cfg, pipe)
	if err != nil {
		log.Printf("audio: %v", err)
		return false
	}

	speaker.Lock()
	sm.mixer.Add(chime)
	speaker.Unlock()
	return true
}

// allow applies the minimum gap between chimes; caller holds mu
func (sm *SoundManager) allow() bool {
	now := sm.now()
	if !sm.lastChime.IsZero() && now.Sub(sm.lastChime) < constant.ChimeMinGap {
		return false
	}
	sm.lastChime = now
	return true
}

// Initialized reports whether the speaker is running
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}
