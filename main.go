package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pipes/audio"
	"github.com/lixenwraith/pipes/config"
	"github.com/lixenwraith/pipes/playback"
	"github.com/lixenwraith/pipes/store"
)

var (
	configFlag = flag.String("config", "", "TOML config file")
	seedFlag   = flag.Int64("seed", 0, "Scene seed (0 = random); later scenes use seed+n")
	gridFlag   = flag.Int("grid", 0, "Grid edge length")
	pipesFlag  = flag.Int("pipes", 0, "Pipes per scene")
	stepsFlag  = flag.Int("steps", 0, "Target steps per pipe")
	waitFlag   = flag.Int("wait", -1, "Reveal ticks between pipe starts")
	curveFlag  = flag.String("curve", "", "Curve mapping: pair or traversal")
	policyFlag = flag.String("policy", "", "Blocked pipe policy: truncate or stop")
	fpsFlag    = flag.Int("fps", 0, "Frame rate cap")
	rateFlag   = flag.Int("rate", 0, "Reveal ticks per second")
	framesFlag = flag.Int("frames", 0, "Exit after this many frames (0 = run until quit)")
	hudFlag    = flag.Bool("hud", true, "Show the status line")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/pipes.log")
	audioFlag  = flag.Bool("audio", false, "Chime when a pipe starts")
	recordFlag = flag.Bool("record", false, "Archive every scene to the store")
	dbFlag     = flag.String("db", "", "Scene archive path")
	replayFlag = flag.String("replay", "", "Replay an archived scene id")
)

// loadConfig layers defaults, file, environment, then any flags given explicitly
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		if err := cfg.LoadFile(*configFlag); err != nil {
			return cfg, err
		}
	}
	cfg.ApplyEnv()

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Scene.Seed = *seedFlag
		case "grid":
			cfg.Scene.Grid = *gridFlag
			cfg.Scene.GridX, cfg.Scene.GridY, cfg.Scene.GridZ = 0, 0, 0
		case "pipes":
			cfg.Scene.Pipes = *pipesFlag
		case "steps":
			cfg.Scene.Steps = *stepsFlag
		case "wait":
			cfg.Scene.Wait = *waitFlag
		case "curve":
			cfg.Walk.CurveMode = *curveFlag
		case "policy":
			cfg.Scene.Policy = *policyFlag
		case "fps":
			cfg.Player.FPS = *fpsFlag
		case "rate":
			cfg.Player.RevealRate = *rateFlag
		case "frames":
			cfg.Player.Frames = *framesFlag
		case "hud":
			cfg.Player.HUD = *hudFlag
		case "debug":
			cfg.Player.Debug = *debugFlag
		case "audio":
			cfg.Audio.Enabled = *audioFlag
		case "record":
			cfg.Store.Record = *recordFlag
		case "db":
			cfg.Store.Path = *dbFlag
		}
	})

	return cfg, cfg.Validate()
}

// buildSource picks the scene source: a replayed archive entry or fresh generation,
// optionally recording each scene
func buildSource(cfg config.Config, scenes *store.SceneStore) (playback.Source, error) {
	gen, err := cfg.Generation()
	if err != nil {
		return nil, err
	}

	if *replayFlag != "" {
		if scenes == nil {
			return nil, errors.New("replay needs a scene archive")
		}
		scene, err := scenes.GetScene(*replayFlag)
		if err != nil {
			return nil, err
		}
		if gen, err = scene.Config(); err != nil {
			return nil, err
		}
		gen.Seed = scene.Seed
		log.Printf("pipes: replaying scene %s seed %d", scene.SceneID, scene.Seed)
	}

	source := playback.GeneratorSource(gen)
	if cfg.Store.Record && scenes != nil {
		source = recordingSource(source, scenes)
	}
	return source, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if logFile := setupLogging(cfg.Player.Debug); logFile != nil {
		defer logFile.Close()
	}

	var scenes *store.SceneStore
	if cfg.Store.Record || *replayFlag != "" {
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		scenes = store.NewSceneStore(db.DB)
	}

	source, err := buildSource(cfg, scenes)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	// Restore the terminal before the panic reaches stderr
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "pipes crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()
	screen.HideCursor()

	app, err := NewApp(screen, cfg, source, playback.SystemClock{})
	if err != nil {
		return err
	}

	sound := audio.NewSoundManager(cfg.AudioSettings())
	if err := sound.Initialize(); err == nil {
		defer sound.Cleanup()
		app.SetSound(sound)
	} else if !errors.Is(err, audio.ErrDisabled) {
		// Non-fatal, the screensaver runs silent
		log.Printf("Audio initialization failed: %v", err)
	}

	return app.Run()
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pipes: %v\n", err)
		os.Exit(1)
	}
}
