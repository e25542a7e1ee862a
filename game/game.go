// Package game runs the interactive viewer. It animates a pattern at a fixed
// rate, colouring each group, and can run a search in the background; when
// the animation settles into a still life the search's best pattern is
// swapped in.
package game

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/lifesoup/camera"
	"github.com/pthm-cable/lifesoup/config"
	"github.com/pthm-cable/lifesoup/evolve"
	"github.com/pthm-cable/lifesoup/scene"
	"github.com/pthm-cable/lifesoup/telemetry"
	"github.com/pthm-cable/lifesoup/ui"
)

// maxStepsPerFrame bounds catch-up after a slow frame.
const maxStepsPerFrame = 10

// Options configures the viewer.
type Options struct {
	Pattern string               // RLE shown first; empty draws a random candidate
	Initial *evolve.Population   // population the first search starts from
	Search  evolve.SearchOptions // passed to every background search
}

// Game holds the viewer state.
type Game struct {
	cfg    *config.Config
	engine *evolve.Engine
	opts   Options

	scene  *scene.Scene
	camera *camera.Camera
	perf   *telemetry.PerfCollector

	uiHUD      *ui.HUD
	uiSearch   *ui.SearchPanel
	uiPattern  *ui.PatternPanel
	uiControls *ui.ControlsPanel

	// Background search. The engine belongs to the worker while running.
	searcher *evolve.Searcher
	group    *errgroup.Group
	cancel   context.CancelFunc
	running  bool
	resume   *evolve.Population
	shownKey string // candidate key of the last best pattern swapped in

	paused  bool
	accum   float32
	pending ui.Action
	message string

	screenWidth, screenHeight float32
}

// NewGame creates the viewer. The engine must not be used elsewhere while
// the game is alive.
func NewGame(cfg *config.Config, engine *evolve.Engine, opts Options) *Game {
	w, h := cfg.Derived.ScreenW32, cfg.Derived.ScreenH32
	g := &Game{
		cfg:          cfg,
		engine:       engine,
		opts:         opts,
		scene:        scene.New(),
		camera:       camera.New(w, h, float32(cfg.Viewer.CellSize)),
		perf:         telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		uiHUD:        ui.NewHUD(),
		uiSearch:     ui.NewSearchPanel(int32(w)-270, 100, 260),
		uiPattern:    ui.NewPatternPanel(10, 110, 300),
		uiControls:   ui.NewControlsPanel(int32(w)-270, 10, 260),
		resume:       opts.Initial,
		screenWidth:  w,
		screenHeight: h,
	}

	if err := g.scene.Load(opts.Pattern); err != nil {
		c := engine.NewCandidate()
		g.scene.Set(c.Cells, c.Rule)
	}
	g.fitCamera()

	if cfg.Viewer.Simulate {
		g.startSearch()
	}
	return g
}

// Update advances the animation and applies input.
func (g *Game) Update() {
	g.handleInput()
	g.applyAction(g.pending)
	g.pending = ui.ActionNone
	g.perf.RecordFrame()

	if g.paused {
		return
	}
	step := 1 / float32(g.cfg.Viewer.FPS)
	g.accum += rl.GetFrameTime()
	for n := 0; g.accum >= step; n++ {
		if n == maxStepsPerFrame {
			g.accum = 0
			break
		}
		g.accum -= step
		if g.scene.Step() {
			g.accum = 0
			g.showBest(false)
			break
		}
	}
}

// applyAction carries out a control panel request.
func (g *Game) applyAction(a ui.Action) {
	switch a {
	case ui.ActionRun:
		g.startSearch()
	case ui.ActionStop:
		g.stopSearch()
	case ui.ActionPaste:
		g.paste(rl.GetClipboardText())
	case ui.ActionBest:
		g.showBest(true)
	case ui.ActionPause:
		g.paused = !g.paused
	}
}

// paste loads an RLE pattern, keeping the current one if it has no cells.
func (g *Game) paste(text string) {
	if err := g.scene.Load(text); err != nil {
		g.message = "Paste: " + err.Error()
		slog.Warn("paste rejected", "error", err)
		return
	}
	g.message = ""
	g.shownKey = ""
	g.accum = 0
	g.fitCamera()
}

// showBest swaps in the search's best pattern. Unless force is set, a
// pattern already shown is not restarted.
func (g *Game) showBest(force bool) {
	if g.searcher == nil {
		return
	}
	best, ok := g.searcher.Best()
	if !ok {
		return
	}
	key := best.Key()
	if key == g.shownKey && !force {
		return
	}
	g.shownKey = key
	g.scene.Set(best.Cells, best.Rule)
	g.fitCamera()
	slog.Info("showing best pattern", "fitness", best.Fitness, "cells", best.Cells.Len(), "rule", best.Rule.String())
}

// fitCamera frames the current pattern.
func (g *Game) fitCamera() {
	lo, hi, ok := g.scene.Cells().Bounds()
	if !ok {
		g.camera.Reset()
		return
	}
	g.camera.Fit(lo, hi)
}

// Unload stops the background search and waits for it to finish.
func (g *Game) Unload() {
	g.stopSearch()
	g.perf.Stats().LogStats()
}
