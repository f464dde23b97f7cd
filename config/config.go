package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/pipes/audio"
	"github.com/lixenwraith/pipes/constant"
	"github.com/lixenwraith/pipes/geometry"
	"github.com/lixenwraith/pipes/pipe"
	"github.com/lixenwraith/pipes/voxel"
)

// ErrInvalidConfig wraps every validation and decoding failure
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full application configuration.
// Precedence: defaults, then file, then PIPES_* environment, then command-line flags.
type Config struct {
	Scene  SceneConfig  `toml:"scene"`
	Walk   WalkConfig   `toml:"walk"`
	Player PlayerConfig `toml:"player"`
	Audio  AudioConfig  `toml:"audio"`
	Store  StoreConfig  `toml:"store"`
}

// SceneConfig sizes one generation
type SceneConfig struct {
	Grid   int    `toml:"grid"`   // Cube edge
	GridX  int    `toml:"grid_x"` // Optional per-axis override (0 = Grid)
	GridY  int    `toml:"grid_y"`
	GridZ  int    `toml:"grid_z"`
	Steps  int    `toml:"steps"`
	Pipes  int    `toml:"pipes"`
	Wait   int    `toml:"wait"`
	Seed   int64  `toml:"seed"` // 0 = from clock
	Policy string `toml:"policy"`
}

// WalkConfig tunes the random walk
type WalkConfig struct {
	StartAttempts int    `toml:"start_attempts"`
	TurnAttempts  int    `toml:"turn_attempts"`
	TurnOdds      int    `toml:"turn_odds"`
	JunctionOdds  int    `toml:"junction_odds"`
	CurveMode     string `toml:"curve_mode"`
}

// PlayerConfig controls the terminal screensaver
type PlayerConfig struct {
	FPS        int  `toml:"fps"`
	RevealRate int  `toml:"reveal_rate"` // Reveal ticks per second
	Frames     int  `toml:"frames"`      // Stop after this many frames (0 = run until quit)
	HUD        bool `toml:"hud"`
	Debug      bool `toml:"debug"`
}

// AudioConfig toggles the pipe-start chime
type AudioConfig struct {
	Enabled bool `toml:"enabled"`
	Volume  int  `toml:"volume"` // 0-100
}

// StoreConfig points at the scene archive
type StoreConfig struct {
	Path   string `toml:"path"`
	Record bool   `toml:"record"`
}

// Default returns the built-in configuration
func Default() Config {
	walk := pipe.DefaultWalkConfig()
	return Config{
		Scene: SceneConfig{
			Grid:   constant.DefaultGridSize,
			Steps:  constant.DefaultStepsPerPipe,
			Pipes:  constant.DefaultPipeCount,
			Wait:   constant.DefaultWaitSlots,
			Policy: pipe.PolicyTruncatePipe.String(),
		},
		Walk: WalkConfig{
			StartAttempts: walk.StartAttempts,
			TurnAttempts:  walk.TurnAttempts,
			TurnOdds:      walk.TurnOdds,
			JunctionOdds:  walk.JunctionOdds,
			CurveMode:     walk.CurveMode.String(),
		},
		Player: PlayerConfig{
			FPS:        int(1000 / constant.FrameUpdateInterval.Milliseconds()),
			RevealRate: constant.DefaultRevealRate,
			HUD:        true,
		},
		Audio: AudioConfig{
			Volume: 50,
		},
		Store: StoreConfig{
			Path: "pipes.db",
		},
	}
}

// Load reads a TOML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile decodes a TOML file over c; keys absent from the file keep their values
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), c)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: %s: unknown keys %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	return nil
}

// Save writes c as TOML
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Dims resolves the grid extents
func (c Config) Dims() voxel.Dims {
	d := voxel.Cube(c.Scene.Grid)
	if c.Scene.GridX > 0 {
		d.X = c.Scene.GridX
	}
	if c.Scene.GridY > 0 {
		d.Y = c.Scene.GridY
	}
	if c.Scene.GridZ > 0 {
		d.Z = c.Scene.GridZ
	}
	return d
}

// Generation converts the scene and walk sections into a generator config
func (c Config) Generation() (pipe.Config, error) {
	policy, err := pipe.ParsePolicy(c.Scene.Policy)
	if err != nil {
		return pipe.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	mode, err := geometry.ParseCurveMode(c.Walk.CurveMode)
	if err != nil {
		return pipe.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	gen := pipe.Config{
		Dims:         c.Dims(),
		StepsPerPipe: c.Scene.Steps,
		PipeCount:    c.Scene.Pipes,
		WaitSlots:    c.Scene.Wait,
		Seed:         c.Scene.Seed,
		Policy:       policy,
		Walk: pipe.WalkConfig{
			StartAttempts: c.Walk.StartAttempts,
			TurnAttempts:  c.Walk.TurnAttempts,
			TurnOdds:      c.Walk.TurnOdds,
			JunctionOdds:  c.Walk.JunctionOdds,
			CurveMode:     mode,
		},
	}
	if err := gen.Validate(); err != nil {
		return pipe.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return gen, nil
}

// AudioSettings builds the chime configuration; PIPES_AUDIO_* variables still take precedence
func (c Config) AudioSettings() *audio.AudioConfig {
	a := audio.DefaultAudioConfig()
	a.Enabled = c.Audio.Enabled
	a.MasterVolume = float64(c.Audio.Volume) / 100.0
	a.ApplyEnv()
	return a
}

// Validate checks every section
func (c Config) Validate() error {
	if _, err := c.Generation(); err != nil {
		return err
	}
	if c.Player.FPS < 1 {
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.Player.FPS)
	}
	if c.Player.RevealRate < 1 {
		return fmt.Errorf("%w: reveal rate %d", ErrInvalidConfig, c.Player.RevealRate)
	}
	if c.Player.Frames < 0 {
		return fmt.Errorf("%w: frames %d", ErrInvalidConfig, c.Player.Frames)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("%w: volume %d not in 0-100", ErrInvalidConfig, c.Audio.Volume)
	}
	if c.Store.Record && c.Store.Path == "" {
		return fmt.Errorf("%w: recording needs a store path", ErrInvalidConfig)
	}
	return nil
}
