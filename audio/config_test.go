package audio

import (
	"testing"

	"github.com/lixenwraith/pipes/constant"
)

// TestDefaultAudioConfig verifies default configuration
func TestDefaultAudioConfig(t *testing.T) {
	cfg := DefaultAudioConfig()

	if cfg.Enabled {
		t.Error("Expected chimes disabled by default")
	}
	if cfg.MasterVolume != 0.5 {
		t.Errorf("Expected default master volume 0.5, got %f", cfg.MasterVolume)
	}
	if cfg.SampleRate != constant.AudioSampleRate {
		t.Errorf("Expected default sample rate %d, got %d", constant.AudioSampleRate, cfg.SampleRate)
	}
}

// TestLoadAudioConfigFromEnv verifies environment overrides
func TestLoadAudioConfigFromEnv(t *testing.T) {
	t.Setenv("PIPES_AUDIO_ENABLED", "true")
	t.Setenv("PIPES_MASTER_VOLUME", "80")
	t.Setenv("PIPES_SAMPLE_RATE", "48000")

	cfg := LoadAudioConfig()

	if !cfg.Enabled {
		t.Error("Expected Enabled=true from env")
	}
	if cfg.MasterVolume != 0.8 {
		t.Errorf("Expected master volume 0.8, got %f", cfg.MasterVolume)
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("Expected sample rate 48000, got %d", cfg.SampleRate)
	}
}

// TestLoadAudioConfigClampsVolume verifies out-of-range volumes are clamped
func TestLoadAudioConfigClampsVolume(t *testing.T) {
	tests := []struct {
		env  string
		want float64
	}{
		{"150", 1.0},
		{"-20", 0.0},
		{"0", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("PIPES_MASTER_VOLUME", tt.env)
			cfg := LoadAudioConfig()
			if cfg.MasterVolume != tt.want {
				t.Errorf("Expected volume %f for %q, got %f", tt.want, tt.env, cfg.MasterVolume)
			}
		})
	}
}

// TestLoadAudioConfigIgnoresMalformed verifies bad values keep defaults
func TestLoadAudioConfigIgnoresMalformed(t *testing.T) {
	t.Setenv("PIPES_AUDIO_ENABLED", "maybe")
	t.Setenv("PIPES_MASTER_VOLUME", "loud")
	t.Setenv("PIPES_SAMPLE_RATE", "-1")

	cfg := LoadAudioConfig()
	def := DefaultAudioConfig()

	if *cfg != *def {
		t.Errorf("Expected defaults for malformed env, got %+v", *cfg)
	}
}
