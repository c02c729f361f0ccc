package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// stubGame ends as soon as it sees a Confirm action.
type stubGame struct {
	resets  int
	resized bool
	state   core.GameState
	last    core.InputFrame
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.last = core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			g.last.Set(a)
		}
	}
	if in.Has(core.ActionConfirm) {
		g.state = core.GameState{Score: 128, MaxTile: 64, GameOver: true}
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState { return g.state }

func (g *stubGame) Resize(w, h int) { g.resized = true }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return got
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestModelPassesKeysToGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	m = update(t, m, runeKey("h"))
	m = update(t, m, TickMsg{})

	if !g.last.Has(core.ActionLeft) {
		t.Error("game did not see Left")
	}

	m = update(t, m, TickMsg{})
	if !g.last.Empty() {
		t.Error("input should be cleared after a tick")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openStore(t)
	g := &stubGame{}
	m := NewModel(g, store, testConfig())
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if !m.State().GameOver {
		t.Fatal("stub game should be over")
	}

	scores, err := store.AllScores("stub")
	if err != nil {
		t.Fatalf("AllScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, want 1", len(scores))
	}
	if scores[0].Score != 128 || scores[0].MaxTile != 64 {
		t.Errorf("saved %+v, want score 128 max tile 64", scores[0])
	}
}

func TestModelRestart(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	m = update(t, m, runeKey("r"))
	update(t, m, TickMsg{})

	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if !g.resized {
		t.Error("Resize was not called")
	}
	if g.resets != 1 {
		t.Errorf("resize reset the game (%d resets)", g.resets)
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{}, nil, testConfig())

	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !next.(Model).IsQuitting() {
		t.Error("model should be quitting")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestEmbeddedModelBackAfterGameOver(t *testing.T) {
	m := newEmbeddedModel(&stubGame{}, nil, testConfig())
	m.Init()

	// Back is ignored while playing.
	m = update(t, m, runeKey("b"))
	if m.BackToMenu() {
		t.Fatal("back should be ignored during play")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey("b"))

	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("back = %v quitting = %v, want true false", m.BackToMenu(), m.IsQuitting())
	}
}

func TestModelRuns2048(t *testing.T) {
	g := t2048.New(t2048.Presets[0])
	m := NewModel(g, nil, testConfig())
	m.Init()

	m = update(t, m, TickMsg{})
	view := m.View()
	if !strings.Contains(view, "Score") {
		t.Errorf("view does not show the HUD:\n%s", view)
	}
}
