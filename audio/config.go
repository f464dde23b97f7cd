package audio

import (
	"os"
	"strconv"

	"github.com/lixenwraith/pipes/constant"
)

// AudioConfig holds chime settings
type AudioConfig struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
}

// DefaultAudioConfig returns a silent configuration; chimes are opt-in for a screensaver
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      false,
		MasterVolume: 0.5,
		SampleRate:   constant.AudioSampleRate,
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides fields from PIPES_* environment variables; malformed values are ignored
func (cfg *AudioConfig) ApplyEnv() {
	if enabled := os.Getenv("PIPES_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume (0-100 converted to 0.0-1.0)
	if volume := os.Getenv("PIPES_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampVolume(float64(val) / 100.0)
		}
	}

	if sampleRate := os.Getenv("PIPES_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
