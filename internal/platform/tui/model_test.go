package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hauntmaze/internal/core"
	"github.com/vovakirdan/hauntmaze/internal/storage"
)

// fakeGame records what the model asks of it.
type fakeGame struct {
	resets int
	steps  int
	last   core.InputFrame
	state  core.GameState
	high   int
	width  int
	height int
}

func (g *fakeGame) ID() string                   { return "fake" }
func (g *fakeGame) Title() string                { return "Fake Game" }
func (g *fakeGame) Reset(cfg core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Resize(width, height int)    { g.width, g.height = width, height }
func (g *fakeGame) Render(dst *core.Screen)      { dst.DrawText(0, 0, "fake board") }
func (g *fakeGame) HighScore() int               { return g.high }
func (g *fakeGame) SeedHighScore(n int)          { g.high = max(g.high, n) }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = in.Clone()
	return core.StepResult{State: g.state}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Expected Model, got %T", next)
	}
	return nm, cmd
}

func memoryStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(storage.MemoryPath)
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestModelTickForwardsInput(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig(), "ann")
	m.Init()

	if g.resets != 1 {
		t.Fatalf("Expected one reset on init, got %d", g.resets)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("Expected the tick loop to continue")
	}
	if !g.last.Has(core.ActionLeft) {
		t.Error("Expected Left to reach the game")
	}

	update(t, m, TickMsg{})
	if g.last.Has(core.ActionLeft) {
		t.Error("Expected input to be cleared after a tick")
	}
	if g.steps != 2 {
		t.Errorf("Expected 2 steps, got %d", g.steps)
	}
}

func TestModelSavesRunOncePerGameOver(t *testing.T) {
	store := memoryStore(t)
	g := &fakeGame{}
	m := NewModel(g, store, testConfig(), "ann")
	m.Init()

	g.state = core.GameState{Score: 500, Stage: 2, GameOver: true}
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, TickMsg{})
	}

	runs, err := store.TopRuns("fake", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run saved, got %d", len(runs))
	}
	if runs[0].Player != "ann" || runs[0].Score != 500 || runs[0].Stage != 2 {
		t.Errorf("Unexpected run: %+v", runs[0])
	}

	// A new run that ends again is recorded separately.
	g.state = core.GameState{Score: 10, Stage: 1}
	m, _ = update(t, m, TickMsg{})
	g.state = core.GameState{Score: 700, Stage: 3, GameOver: true}
	update(t, m, TickMsg{})

	runs, _ = store.TopRuns("fake", 10)
	if len(runs) != 2 {
		t.Errorf("Expected 2 runs saved, got %d", len(runs))
	}
}

func TestModelSkipsZeroScoreRuns(t *testing.T) {
	store := memoryStore(t)
	g := &fakeGame{state: core.GameState{GameOver: true, Stage: 1}}
	m := NewModel(g, store, testConfig(), "ann")

	update(t, m, TickMsg{})

	runs, _ := store.TopRuns("fake", 10)
	if len(runs) != 0 {
		t.Errorf("Expected zero-score run to be skipped, got %d", len(runs))
	}
}

func TestModelSeedsHighScoreFromStore(t *testing.T) {
	store := memoryStore(t)
	store.SaveRun(storage.RunEntry{GameID: "fake", Score: 900})

	g := &fakeGame{}
	m := NewModel(g, store, testConfig(), "ann")
	m.Init()

	if g.high != 900 {
		t.Errorf("Expected high score 900, got %d", g.high)
	}
}

func TestModelScoreboardHoldsSimulation(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, memoryStore(t), testConfig(), "ann")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("Expected Tab to open the scoreboard")
	}

	m, _ = update(t, m, TickMsg{})
	if g.steps != 0 {
		t.Errorf("Expected no steps while the scoreboard is open, got %d", g.steps)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !strings.Contains(m.View(), "fake board") {
		t.Error("Expected Esc to return to the game")
	}
	update(t, m, TickMsg{})
	if g.steps != 1 {
		t.Errorf("Expected ticking to resume, got %d steps", g.steps)
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&fakeGame{}, nil, testConfig(), "ann")

	m, cmd := update(t, m, runeKey("q"))

	if cmd == nil {
		t.Error("Expected a quit command")
	}
	if m.View() != "" {
		t.Error("Expected empty view after quitting")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig(), "ann")
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if g.resets != 1 {
		t.Errorf("Expected resize not to reset the game, got %d resets", g.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40-helpHeight {
		t.Errorf("Expected screen 100x%d, got %dx%d", 40-helpHeight, m.screen.Width(), m.screen.Height())
	}
	if g.width != 100 || g.height != 40-helpHeight {
		t.Errorf("Expected game resized to 100x%d, got %dx%d", 40-helpHeight, g.width, g.height)
	}
}

func TestModelViewShowsHelp(t *testing.T) {
	m := NewModel(&fakeGame{}, nil, testConfig(), "ann")

	view := m.View()

	if !strings.Contains(view, "fake board") {
		t.Error("Expected the game board in the view")
	}
	if !strings.Contains(view, "pause") {
		t.Error("Expected the help line in the view")
	}
}
