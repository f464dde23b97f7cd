package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pipes/geometry"
	"github.com/lixenwraith/pipes/pipe"
	"github.com/lixenwraith/pipes/voxel"
)

func sceneConfig(d voxel.Dims, steps, pipes, wait int, seed int64) pipe.Config {
	cfg := pipe.DefaultConfig()
	cfg.Dims = d
	cfg.StepsPerPipe = steps
	cfg.PipeCount = pipes
	cfg.WaitSlots = wait
	cfg.Seed = seed
	return cfg
}

func TestCursor_StaggeredReveal(t *testing.T) {
	ps, err := pipe.Generate(sceneConfig(voxel.Cube(3), 5, 3, 2, 21))
	require.NoError(t, err)
	require.Len(t, ps.Pipes, 3)

	c := NewCursor(ps)

	// Pipes 1 and 2 are still waiting at index 0
	first := c.Tick()
	require.Len(t, first, 1)
	assert.Equal(t, 0, first[0].Pipe)
	assert.Equal(t, geometry.KindStart, first[0].Kind)

	total := len(first)
	for !c.Exhausted() {
		for _, pl := range c.Tick() {
			assert.NotEqual(t, geometry.ElementNone, pl.Element)
			total++
		}
	}

	walked := 0
	for _, r := range ps.Reports {
		walked += r.Length
	}
	assert.Equal(t, walked, total, "every real step is revealed exactly once")
	assert.Equal(t, ps.Len(), c.Index())
	assert.Nil(t, c.Tick(), "exhausted cursor reveals nothing")
	assert.Len(t, c.Revealed(), walked)
}

func TestCursor_PositionsAreCentered(t *testing.T) {
	ps, err := pipe.Generate(sceneConfig(voxel.Cube(5), 10, 1, 0, 3))
	require.NoError(t, err)

	c := NewCursor(ps)
	for _, pl := range c.Tick() {
		assert.Equal(t, float64(pl.Cell.X)-2, pl.Pos[0])
		assert.Equal(t, float64(pl.Cell.Y)-2, pl.Pos[1])
		assert.Equal(t, float64(pl.Cell.Z)-2, pl.Pos[2])
	}

	assert.Equal(t, [3]float64{-2, 2, 0}, Center(voxel.Cell{X: 0, Y: 4, Z: 2}, [3]float64{2, 2, 2}))
}

func TestGeneratorSource_SeedSequence(t *testing.T) {
	src := GeneratorSource(sceneConfig(voxel.Cube(4), 5, 1, 0, 5))

	a, err := src()
	require.NoError(t, err)
	b, err := src()
	require.NoError(t, err)

	assert.Equal(t, int64(5), a.Seed)
	assert.Equal(t, int64(6), b.Seed)
}

func TestPlayer_RevealsAtRate(t *testing.T) {
	m := NewMockClock(epoch)
	p, err := NewPlayer(GeneratorSource(sceneConfig(voxel.Cube(6), 20, 1, 0, 9)), m, 10)
	require.NoError(t, err)

	m.Advance(250 * time.Millisecond)
	f, err := p.Update()
	require.NoError(t, err)
	assert.Len(t, f.Placements, 2)
	assert.False(t, f.Regenerated)
	assert.Equal(t, 2, p.Cursor().Index())
}

func TestPlayer_PauseStopsReveal(t *testing.T) {
	m := NewMockClock(epoch)
	p, err := NewPlayer(GeneratorSource(sceneConfig(voxel.Cube(6), 20, 1, 0, 9)), m, 10)
	require.NoError(t, err)

	assert.True(t, p.TogglePause())
	m.Advance(time.Second)
	f, err := p.Update()
	require.NoError(t, err)
	assert.Empty(t, f.Placements)
	assert.Equal(t, 0, p.Cursor().Index())

	assert.False(t, p.TogglePause())
	m.Advance(100 * time.Millisecond)
	f, err = p.Update()
	require.NoError(t, err)
	assert.Len(t, f.Placements, 1)
	assert.Equal(t, 100*time.Millisecond, p.Elapsed())
}

func TestPlayer_RegeneratesWhenExhausted(t *testing.T) {
	m := NewMockClock(epoch)
	p, err := NewPlayer(GeneratorSource(sceneConfig(voxel.Cube(3), 2, 1, 0, 4)), m, 10)
	require.NoError(t, err)
	require.Equal(t, 2, p.Cursor().PathSet().Len())

	// Two ticks drain the scene, the third starts the next one
	m.Advance(300 * time.Millisecond)
	f, err := p.Update()
	require.NoError(t, err)

	assert.True(t, f.Regenerated)
	require.Len(t, f.Placements, 1)
	assert.Equal(t, geometry.KindStart, f.Placements[0].Kind)
	assert.Equal(t, 2, p.Scenes())
	assert.Equal(t, int64(5), p.Cursor().PathSet().Seed)
}

func TestPlayer_Regenerate(t *testing.T) {
	m := NewMockClock(epoch)
	p, err := NewPlayer(GeneratorSource(sceneConfig(voxel.Cube(6), 20, 2, 3, 1)), m, 10)
	require.NoError(t, err)

	m.Advance(300 * time.Millisecond)
	_, err = p.Update()
	require.NoError(t, err)

	require.NoError(t, p.Regenerate())
	assert.Equal(t, 0, p.Cursor().Index())
	assert.Equal(t, 2, p.Scenes())
}

func TestPlayer_SourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewPlayer(func() (*pipe.PathSet, error) { return nil, boom }, NewMockClock(epoch), 10)
	assert.ErrorIs(t, err, boom)
}
