package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pipes/audio"
	"github.com/lixenwraith/pipes/config"
	"github.com/lixenwraith/pipes/constant"
	"github.com/lixenwraith/pipes/geometry"
	"github.com/lixenwraith/pipes/pipe"
	"github.com/lixenwraith/pipes/playback"
	"github.com/lixenwraith/pipes/render"
	"github.com/lixenwraith/pipes/store"
)

// App is the interactive screensaver: playback driven by a frame ticker, drawn with tcell
type App struct {
	screen   tcell.Screen
	renderer *render.Renderer
	player   *playback.Player
	sound    *audio.SoundManager
	cfg      config.Config

	frames int
	scene  int // Scene number last drawn
}

// NewApp wires a player and renderer onto an initialized screen
func NewApp(screen tcell.Screen, cfg config.Config, source playback.Source, clock playback.Clock) (*App, error) {
	player, err := playback.NewPlayer(source, clock, cfg.Player.RevealRate)
	if err != nil {
		return nil, err
	}

	a := &App{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		player:   player,
		cfg:      cfg,
		scene:    player.Scenes(),
	}
	return a, nil
}

// SetSound attaches a chime player; nil disables chimes
func (a *App) SetSound(sm *audio.SoundManager) {
	a.sound = sm
}

// recordingSource archives every scene produced by src
func recordingSource(src playback.Source, scenes *store.SceneStore) playback.Source {
	return func() (*pipe.PathSet, error) {
		ps, err := src()
		if err != nil {
			return nil, err
		}
		if scene, err := scenes.Record(ps, "player"); err != nil {
			log.Printf("store: record seed %d: %v", ps.Seed, err)
		} else {
			log.Printf("store: recorded scene %s seed %d", scene.SceneID, scene.Seed)
		}
		return ps, nil
	}
}

// step advances playback and draws whatever was revealed
func (a *App) step() error {
	frame, err := a.player.Update()
	if err != nil {
		return err
	}

	if frame.Regenerated || a.player.Scenes() != a.scene {
		a.renderer.Clear()
		a.scene = a.player.Scenes()
	}

	a.renderer.Draw(frame.Placements)
	if a.sound != nil {
		for _, pl := range frame.Placements {
			if pl.Kind == geometry.KindStart {
				a.sound.PlayChime(pl.Pipe)
			}
		}
	}

	if a.cfg.Player.HUD {
		a.renderer.DrawHUD(a.status())
	}
	a.renderer.Show()
	a.frames++
	return nil
}

func (a *App) status() string {
	c := a.player.Cursor()
	ps := c.PathSet()
	state := "playing"
	if a.player.Paused() {
		state = "paused"
	}
	return fmt.Sprintf(" scene %d  seed %d  pipes %d  %d/%d  %s   [space] pause  [r] new  [q] quit",
		a.player.Scenes(), ps.Seed, len(ps.Pipes), c.Index(), ps.Len(), state)
}

// redraw repaints the revealed part of the current scene after a resize
func (a *App) redraw() {
	a.renderer.Resize()
	a.renderer.Draw(a.player.Cursor().Revealed())
	if a.cfg.Player.HUD {
		a.renderer.DrawHUD(a.status())
	}
	a.renderer.Show()
}

// handleInput applies one terminal event; false means quit
func (a *App) handleInput(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false, nil
		}
		if ev.Key() != tcell.KeyRune {
			return true, nil
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return false, nil
		case ' ':
			paused := a.player.TogglePause()
			log.Printf("pipes: paused=%v", paused)
		case 'r', 'R':
			if err := a.player.Regenerate(); err != nil {
				return false, err
			}
			a.renderer.Clear()
			a.scene = a.player.Scenes()
		}

	case *tcell.EventResize:
		a.redraw()
	}
	return true, nil
}

// done reports whether the frame budget is spent
func (a *App) done() bool {
	return a.cfg.Player.Frames > 0 && a.frames >= a.cfg.Player.Frames
}

// Run loops until quit, a frame budget is reached, or playback fails
func (a *App) Run() error {
	interval := time.Second / time.Duration(a.cfg.Player.FPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, constant.EventQueueSize)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	a.redraw()
	for {
		select {
		case ev := <-eventChan:
			cont, err := a.handleInput(ev)
			if err != nil || !cont {
				return err
			}

		case <-ticker.C:
			if err := a.step(); err != nil {
				return err
			}
			if a.done() {
				return nil
			}
		}
	}
}
