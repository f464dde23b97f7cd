package config

import (
	"log"
	"os"
	"strconv"
)

// ApplyEnv overrides fields from PIPES_* environment variables.
// Malformed numbers are logged and ignored.
func (c *Config) ApplyEnv() {
	envInt("PIPES_GRID", &c.Scene.Grid)
	envInt("PIPES_STEPS", &c.Scene.Steps)
	envInt("PIPES_PIPES", &c.Scene.Pipes)
	envInt("PIPES_WAIT", &c.Scene.Wait)
	envString("PIPES_POLICY", &c.Scene.Policy)
	envString("PIPES_CURVE_MODE", &c.Walk.CurveMode)
	envInt("PIPES_FPS", &c.Player.FPS)
	envInt("PIPES_REVEAL_RATE", &c.Player.RevealRate)
	envString("PIPES_DB", &c.Store.Path)

	if seed := os.Getenv("PIPES_SEED"); seed != "" {
		if val, err := strconv.ParseInt(seed, 10, 64); err == nil {
			c.Scene.Seed = val
		} else {
			log.Printf("config: ignoring PIPES_SEED=%q: %v", seed, err)
		}
	}
}

func envInt(name string, dst *int) {
	s := os.Getenv(name)
	if s == "" {
		return
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("config: ignoring %s=%q: %v", name, s, err)
		return
	}
	*dst = val
}

func envString(name string, dst *string) {
	if s := os.Getenv(name); s != "" {
		*dst = s
	}
}
