// Package hauntmaze adapts the haunted maze simulation to the platform's
// game contract: it turns input frames into a desired direction, steps the
// simulation once per frame and draws snapshots into a character screen.
package hauntmaze

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hauntmaze/internal/config"
	"github.com/vovakirdan/hauntmaze/internal/core"
	"github.com/vovakirdan/hauntmaze/internal/games/hauntmaze/sim"
)

const (
	gameID    = "hauntmaze"
	gameTitle = "Haunted Maze"
)

// FrameFunc observes every simulated tick.
type FrameFunc func(snap sim.Snapshot, events []sim.Event)

// configPath stores the custom config path set via CLI.
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the haunted maze for the platform.
type Game struct {
	sim      *sim.Sim
	cfg      config.HauntConfig
	fixedCfg bool
	paused   bool
	tooSmall bool
	events   []sim.Event
	onFrame  FrameFunc
	logger   *log.Logger
}

// New creates a game that loads its configuration on Reset.
func New() *Game {
	return &Game{logger: log.New(io.Discard)}
}

// NewWithConfig creates a game that always uses cfg.
func NewWithConfig(cfg config.HauntConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true, logger: log.New(io.Discard)}
}

// SetLogger sets where configuration fallbacks are reported.
func (g *Game) SetLogger(logger *log.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// OnFrame registers fn to receive a snapshot after every tick.
func (g *Game) OnFrame(fn FrameFunc) {
	g.onFrame = fn
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return gameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return gameTitle
}

// Reset builds a fresh session on the title screen.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if !g.fixedCfg {
		cfg, err := config.LoadHaunt(configPath)
		if err != nil {
			g.logger.Warn("using default config", "path", configPath, "error", err)
			cfg = config.DefaultHauntConfig()
		}
		g.cfg = cfg
	}

	var best int
	if g.sim != nil {
		best = g.sim.HighScore()
	}
	g.sim = sim.New(g.cfg, rand.New(rand.NewSource(rc.Seed)))
	g.sim.SeedHighScore(best)
	g.paused = false
	g.events = nil
	g.Resize(rc.ScreenW, rc.ScreenH)
}

// Resize records the screen size. The simulation holds while the board
// does not fit.
func (g *Game) Resize(width, height int) {
	g.tooSmall = width < g.minWidth() || height < g.minHeight()
}

// Step applies one frame of input and advances the simulation one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	phase := g.sim.Phase()

	switch {
	case in.Has(core.ActionBack) && phase != sim.PhaseStart:
		g.sim.QuitToTitle()
		g.paused = false
	case in.Has(core.ActionPause) && phase == sim.PhasePlaying:
		g.paused = !g.paused
	case phase == sim.PhaseStart && in.Has(core.ActionConfirm),
		phase == sim.PhaseGameOver && (in.Has(core.ActionConfirm) || in.Has(core.ActionRestart)):
		g.sim.SetDesiredDirection(sim.DirNone)
		g.sim.StartRun()
	}

	if d := directionOf(in); d != sim.DirNone {
		g.sim.SetDesiredDirection(d)
	}

	if g.paused || g.tooSmall {
		g.events = nil
		return g.result()
	}

	g.events = g.sim.Tick()
	if g.onFrame != nil {
		g.onFrame(g.sim.Snapshot(), g.events)
	}
	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{
		State:  g.State(),
		Events: sim.EventNames(g.events),
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	phase := g.sim.Phase()
	return core.GameState{
		Score:    g.sim.Score(),
		Stage:    g.sim.Stage(),
		GameOver: phase == sim.PhaseGameOver,
		Paused:   g.paused,
		OnTitle:  phase == sim.PhaseStart,
	}
}

// Snapshot returns the simulation snapshot.
func (g *Game) Snapshot() sim.Snapshot {
	return g.sim.Snapshot()
}

// Events returns the events of the last tick.
func (g *Game) Events() []sim.Event {
	return g.events
}

// HighScore returns the best score of this session.
func (g *Game) HighScore() int {
	return g.sim.HighScore()
}

// SeedHighScore raises the displayed high score, e.g. from a leaderboard.
func (g *Game) SeedHighScore(n int) {
	g.sim.SeedHighScore(n)
}

// directionOf maps the first held arrow action to a heading.
func directionOf(in core.InputFrame) sim.Direction {
	switch {
	case in.Has(core.ActionUp):
		return sim.DirUp
	case in.Has(core.ActionDown):
		return sim.DirDown
	case in.Has(core.ActionLeft):
		return sim.DirLeft
	case in.Has(core.ActionRight):
		return sim.DirRight
	default:
		return sim.DirNone
	}
}
