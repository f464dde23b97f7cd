package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/pipes/constant"
)

// TestSoundManagerGracefulDegradation verifies chimes are no-ops without initialization
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(DefaultAudioConfig())

	if sm.PlayChime(0) {
		t.Error("Expected chime to be dropped before initialization")
	}
	sm.Cleanup()
}

// TestSoundManagerDisabled verifies a disabled config never touches the speaker
func TestSoundManagerDisabled(t *testing.T) {
	sm := NewSoundManager(DefaultAudioConfig())

	if err := sm.Initialize(); !errors.Is(err, ErrDisabled) {
		t.Errorf("Expected ErrDisabled, got %v", err)
	}
	if sm.Initialized() {
		t.Error("Expected manager to stay uninitialized")
	}
}

// TestSoundManagerMinGap verifies chimes closer than the minimum gap are dropped
func TestSoundManagerMinGap(t *testing.T) {
	sm := NewSoundManager(DefaultAudioConfig())
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return now }

	if !sm.allow() {
		t.Fatal("Expected first chime to be allowed")
	}

	now = now.Add(constant.ChimeMinGap / 2)
	if sm.allow() {
		t.Error("Expected chime inside the gap to be dropped")
	}

	now = now.Add(constant.ChimeMinGap)
	if !sm.allow() {
		t.Error("Expected chime after the gap to be allowed")
	}
}

// TestChimeFrequency verifies pitch steps and octave folding
func TestChimeFrequency(t *testing.T) {
	if f := ChimeFrequency(0); f != constant.ChimeBaseFreq {
		t.Errorf("Expected base frequency for pipe 0, got %f", f)
	}

	want := constant.ChimeBaseFreq * math.Pow(2, float64(constant.ChimeSemitoneStep)/12)
	if f := ChimeFrequency(1); math.Abs(f-want) > 1e-9 {
		t.Errorf("Expected %f for pipe 1, got %f", want, f)
	}

	fold := 24 / constant.ChimeSemitoneStep
	if ChimeFrequency(fold) != ChimeFrequency(0) {
		t.Errorf("Expected pipe %d to fold back to the base note", fold)
	}
}

// TestCreateChime verifies the chime is finite, bounded and the expected length
func TestCreateChime(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.MasterVolume = 1

	chime, err := CreateChime(cfg, 2)
	if err != nil {
		t.Fatalf("CreateChime: %v", err)
	}

	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := chime.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			break
		}
	}

	want := beep.SampleRate(cfg.SampleRate).N(constant.ChimeDuration)
	if total != want {
		t.Errorf("Expected %d samples, got %d", want, total)
	}
	if peak == 0 || peak > 1 {
		t.Errorf("Expected audible peak within [0,1], got %f", peak)
	}
}

// TestCreateChimeSilent verifies zero volume produces silence
func TestCreateChimeSilent(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.MasterVolume = 0

	chime, err := CreateChime(cfg, 0)
	if err != nil {
		t.Fatalf("CreateChime: %v", err)
	}
	buf := make([][2]float64, 256)
	n, _ := chime.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != 0 || buf[i][1] != 0 {
			t.Fatalf("Expected silence at sample %d, got %v", i, buf[i])
		}
	}
}
