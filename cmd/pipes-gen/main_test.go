package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pipes/pipe"
	"github.com/lixenwraith/pipes/store"
)

func TestRun_GenerateAndCheck(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-grid", "6", "-pipes", "3", "-steps", "15", "-wait", "2", "-seed", "9", "-check"}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Generating...")
	assert.Contains(t, text, "Done in")
	assert.Contains(t, text, "check:      ok")
}

func TestRun_CountGeneratesSequentialSeeds(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-grid", "4", "-pipes", "1", "-steps", "5", "-seed", "3", "-count", "3"}, &out)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out.String(), "Generating..."))

	err = run([]string{"-count", "0"}, &out)
	assert.Error(t, err)
}

func TestRun_JSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	var out bytes.Buffer
	require.NoError(t, run([]string{"-grid", "5", "-pipes", "2", "-steps", "8", "-seed", "12", "-json", path}, &out))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var ps pipe.PathSet
	require.NoError(t, json.Unmarshal(data, &ps))
	assert.Equal(t, int64(12), ps.Seed)
	assert.NoError(t, pipe.Validate(&ps))
}

func TestRun_CompactJSONToStdout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-grid", "4", "-pipes", "1", "-steps", "4", "-seed", "2", "-json", "-", "-compact"}, &out))
	assert.Contains(t, out.String(), `"pipes": [`)
	assert.Contains(t, out.String(), `"seed": 2`)
}

func TestRun_RecordListReplay(t *testing.T) {
	db := filepath.Join(t.TempDir(), "scenes.db")

	var out bytes.Buffer
	require.NoError(t, run([]string{"-db", db, "-record", "-grid", "5", "-pipes", "2", "-steps", "6", "-seed", "30", "-count", "2"}, &out))

	out.Reset()
	require.NoError(t, run([]string{"-db", db, "-list", "5"}, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	h, err := store.Open(db)
	require.NoError(t, err)
	found, err := store.NewSceneStore(h.DB).FindBySeed(31)
	h.Close()
	require.NoError(t, err)
	require.Len(t, found, 1)

	out.Reset()
	require.NoError(t, run([]string{"-db", db, "-replay", found[0].SceneID, "-check"}, &out))
	assert.Contains(t, out.String(), "check:      ok")

	err = run([]string{"-db", db, "-replay", "missing"}, &out)
	assert.ErrorIs(t, err, store.ErrSceneNotFound)
}

func TestRun_Plots(t *testing.T) {
	dir := t.TempDir()
	lengths := filepath.Join(dir, "lengths.png")
	curves := filepath.Join(dir, "curves.svg")

	var out bytes.Buffer
	require.NoError(t, run([]string{"-grid", "8", "-pipes", "3", "-steps", "30", "-seed", "4", "-plot", lengths, "-curves", curves}, &out))

	for _, p := range []string{lengths, curves} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestDraw_LayersAndMarks(t *testing.T) {
	cfg := pipe.DefaultConfig()
	cfg.Dims.X, cfg.Dims.Y, cfg.Dims.Z = 3, 2, 2
	cfg.StepsPerPipe = 4
	cfg.PipeCount = 1
	cfg.WaitSlots = 0
	cfg.Seed = 6

	ps, err := pipe.Generate(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	draw(ps, &out)
	text := out.String()

	assert.Contains(t, text, "z=0")
	assert.Contains(t, text, "z=1")
	// The start cap is always a sphere
	assert.Contains(t, text, "*")

	marks := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "z=") {
			continue
		}
		marks += strings.Count(line, "*") + strings.Count(line, "0")
	}
	assert.Equal(t, ps.Reports[0].Length, marks)
}
