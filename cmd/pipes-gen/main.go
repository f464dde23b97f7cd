package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lixenwraith/pipes/analysis"
	"github.com/lixenwraith/pipes/config"
	"github.com/lixenwraith/pipes/geometry"
	"github.com/lixenwraith/pipes/pipe"
	"github.com/lixenwraith/pipes/store"
)

type options struct {
	configPath string
	seed       int64
	grid       int
	pipes      int
	steps      int
	wait       int
	curve      string
	policy     string

	count      int
	check      bool
	draw       bool
	jsonPath   string
	compact    bool
	plotPath   string
	curvesPath string

	dbPath string
	record bool
	list   int
	replay string
}

func parseFlags(args []string) (*options, *flag.FlagSet, error) {
	o := &options{}
	fs := flag.NewFlagSet("pipes-gen", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "TOML config file")
	fs.Int64Var(&o.seed, "seed", 0, "Scene seed (0 = random)")
	fs.IntVar(&o.grid, "grid", 0, "Grid edge length")
	fs.IntVar(&o.pipes, "pipes", 0, "Pipes per scene")
	fs.IntVar(&o.steps, "steps", 0, "Target steps per pipe")
	fs.IntVar(&o.wait, "wait", 0, "Reveal ticks between pipe starts")
	fs.StringVar(&o.curve, "curve", "", "Curve mapping: pair or traversal")
	fs.StringVar(&o.policy, "policy", "", "Blocked pipe policy: truncate or stop")

	fs.IntVar(&o.count, "count", 1, "Scenes to generate; scene n uses seed+n")
	fs.BoolVar(&o.check, "check", false, "Validate every scene against the walk invariants")
	fs.BoolVar(&o.draw, "draw", false, "Print each Z layer with pipe indices")
	fs.StringVar(&o.jsonPath, "json", "", "Write the last scene as JSON (- for stdout)")
	fs.BoolVar(&o.compact, "compact", false, "JSON holds only (cell, element) per step")
	fs.StringVar(&o.plotPath, "plot", "", "Save a pipe length chart (.png, .svg, .pdf)")
	fs.StringVar(&o.curvesPath, "curves", "", "Save a curve usage chart")

	fs.StringVar(&o.dbPath, "db", "", "Scene archive path")
	fs.BoolVar(&o.record, "record", false, "Archive every generated scene")
	fs.IntVar(&o.list, "list", 0, "List the N most recent archived scenes and exit")
	fs.StringVar(&o.replay, "replay", "", "Regenerate an archived scene id")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return o, fs, nil
}

// resolveConfig layers defaults, file, environment, then flags given explicitly
func resolveConfig(o *options, fs *flag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		if err := cfg.LoadFile(o.configPath); err != nil {
			return cfg, err
		}
	}
	cfg.ApplyEnv()

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Scene.Seed = o.seed
		case "grid":
			cfg.Scene.Grid = o.grid
			cfg.Scene.GridX, cfg.Scene.GridY, cfg.Scene.GridZ = 0, 0, 0
		case "pipes":
			cfg.Scene.Pipes = o.pipes
		case "steps":
			cfg.Scene.Steps = o.steps
		case "wait":
			cfg.Scene.Wait = o.wait
		case "curve":
			cfg.Walk.CurveMode = o.curve
		case "policy":
			cfg.Scene.Policy = o.policy
		case "db":
			cfg.Store.Path = o.dbPath
		case "record":
			cfg.Store.Record = o.record
		}
	})
	return cfg, cfg.Validate()
}

func run(args []string, out io.Writer) error {
	o, fs, err := parseFlags(args)
	if err != nil {
		return err
	}
	if o.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", o.count)
	}

	cfg, err := resolveConfig(o, fs)
	if err != nil {
		return err
	}

	var scenes *store.SceneStore
	if cfg.Store.Record || o.list > 0 || o.replay != "" {
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		scenes = store.NewSceneStore(db.DB)
	}

	if o.list > 0 {
		return listScenes(scenes, o.list, out)
	}

	gen, err := cfg.Generation()
	if err != nil {
		return err
	}
	if o.replay != "" {
		scene, err := scenes.GetScene(o.replay)
		if err != nil {
			return err
		}
		if gen, err = scene.Config(); err != nil {
			return err
		}
		gen.Seed = scene.Seed
		o.count = 1
	}

	var last *pipe.PathSet
	for n := 0; n < o.count; n++ {
		c := gen
		if c.Seed != 0 {
			c.Seed += int64(n)
		}

		fmt.Fprintln(out, "\nGenerating...")
		start := time.Now()
		ps, err := pipe.Generate(c)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Done in %v\n", time.Since(start))
		fmt.Fprintf(out, "Grid Dimensions: %v\n", ps.Config.Dims)

		if err := analysis.Summarize(ps).Write(out); err != nil {
			return err
		}

		if o.check {
			if err := pipe.Validate(ps); err != nil {
				return fmt.Errorf("seed %d: %w", ps.Seed, err)
			}
			fmt.Fprintln(out, "check:      ok")
		}
		if o.draw {
			draw(ps, out)
		}
		if cfg.Store.Record {
			scene, err := scenes.Record(ps, "pipes-gen")
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "recorded:   %s\n", scene.SceneID)
		}
		last = ps
	}

	if o.jsonPath != "" {
		if err := writeJSON(last, o.compact, o.jsonPath, out); err != nil {
			return err
		}
	}
	if o.plotPath != "" {
		if err := analysis.PlotLengths(last, o.plotPath); err != nil {
			return err
		}
	}
	if o.curvesPath != "" {
		if err := analysis.PlotCurveUse(analysis.Summarize(last), o.curvesPath); err != nil {
			return err
		}
	}
	return nil
}

func listScenes(scenes *store.SceneStore, limit int, out io.Writer) error {
	list, err := scenes.ListScenes(limit)
	if err != nil {
		return err
	}
	for _, s := range list {
		created := time.Unix(0, s.CreatedAtNs).Format(time.RFC3339)
		fmt.Fprintf(out, "%s  %s  seed %-20d pipes %-3d steps %-6d fill %5.1f%%  %s\n",
			s.SceneID, created, s.Seed, s.Pipes, s.Steps, s.FillRatio*100, s.Description)
	}
	return nil
}

func writeJSON(ps *pipe.PathSet, compact bool, path string, out io.Writer) error {
	var v any = ps
	if compact {
		v = struct {
			Seed  int64         `json:"seed"`
			Pipes [][]pipe.Slot `json:"pipes"`
		}{ps.Seed, ps.Compact()}
	}

	w := out
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// draw prints one block per Z layer: pipe index digits, '*' for spheres, '.' for free cells
func draw(ps *pipe.PathSet, out io.Writer) {
	d := ps.Config.Dims
	layers := make([][][]byte, d.Z)
	for z := range layers {
		layers[z] = make([][]byte, d.Y)
		for y := range layers[z] {
			layers[z][y] = []byte(strings.Repeat(".", d.X))
		}
	}

	for i, p := range ps.Pipes {
		mark := byte('0' + i%10)
		for _, s := range p.Real() {
			ch := mark
			if geometry.IsSphere(s.Element) {
				ch = '*'
			}
			layers[s.Cell.Z][d.Y-1-s.Cell.Y][s.Cell.X] = ch
		}
	}

	for z, rows := range layers {
		fmt.Fprintf(out, "\nz=%d\n", z)
		for _, row := range rows {
			fmt.Fprintln(out, string(row))
		}
	}
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "pipes-gen: %v\n", err)
		os.Exit(1)
	}
}
