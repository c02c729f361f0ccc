package t2048

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
	}
}

// newTestGame resets a game for the named preset and, when values is
// non-nil, replaces its board with those row-major values.
func newTestGame(t *testing.T, preset string, values []int) *Game {
	t.Helper()

	p, err := LookupPreset(preset)
	if err != nil {
		t.Fatalf("LookupPreset(%q): %v", preset, err)
	}
	g := New(p)
	g.Reset(testRuntime())

	if values != nil {
		b, err := board.FromValues(g.preset.Width, g.preset.Height, values,
			board.WithSeed(1),
			board.WithCeiling(g.preset.Ceiling),
			board.WithFourProbability(g.preset.FourProbability),
		)
		if err != nil {
			t.Fatalf("FromValues: %v", err)
		}
		g.board = b
		g.current = b.Snapshot()
		g.checkEnd()
	}
	return g
}

// withConfig installs cfg for the duration of the test.
func withConfig(t *testing.T, cfg config.T2048Config) {
	t.Helper()
	prev := CurrentConfig()
	SetConfig(cfg)
	t.Cleanup(func() { SetConfig(prev) })
}

func step(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

// idle steps the game until no animation is running.
func idle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; g.Animating(); i++ {
		if i > 1000 {
			t.Fatal("animation never finished")
		}
		step(g)
	}
}

func TestDeterministicReset(t *testing.T) {
	g1 := newTestGame(t, "classic", nil)
	g2 := newTestGame(t, "classic", nil)

	moves := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown, core.ActionLeft}
	for _, a := range moves {
		step(g1, a)
		step(g2, a)
		idle(t, g1)
		idle(t, g2)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Score != s2.Score || s1.Moves != s2.Moves {
		t.Errorf("same seed diverged: %+v vs %+v", s1, s2)
	}
	for y := range s1.Grid {
		for x := range s1.Grid[y] {
			if s1.Grid[y][x] != s2.Grid[y][x] {
				t.Fatalf("grids differ at (%d,%d):\n%v\n%v", x, y, s1.Grid, s2.Grid)
			}
		}
	}
}

func TestResetSpawnsInitialTiles(t *testing.T) {
	g := newTestGame(t, "classic", nil)
	if n := len(g.Board().Elements); n != 1 {
		t.Errorf("classic start tiles = %d, want 1", n)
	}

	cfg := config.DefaultT2048Config()
	cfg.Board.InitialTiles = 2
	withConfig(t, cfg)

	g = newTestGame(t, "original", nil)
	if n := len(g.Board().Elements); n != 2 {
		t.Errorf("start tiles with config = %d, want 2", n)
	}
	if g.Snapshot().Width != 8 {
		t.Errorf("original preset width = %d, want 8", g.Snapshot().Width)
	}
}

func TestResetWithoutInitialTilesStillStarts(t *testing.T) {
	cfg := config.DefaultT2048Config()
	cfg.Board.InitialTiles = 0
	withConfig(t, cfg)

	g := newTestGame(t, "classic", nil)
	if n := len(g.Board().Elements); n != 1 {
		t.Fatalf("start tiles = %d, want 1", n)
	}

	dirs := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown}
	for i := 0; i < 40 && g.Moves() == 0; i++ {
		step(g, dirs[i%len(dirs)])
		idle(t, g)
	}
	if g.Moves() == 0 {
		t.Error("no move changed the board")
	}
}

func TestMoveAnimatesThenSettles(t *testing.T) {
	g := newTestGame(t, "classic", []int{
		2, 2, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	})

	step(g, core.ActionLeft)
	if !g.Animating() || g.animationPhase != PhaseSlide {
		t.Fatal("move should start a slide animation")
	}
	if g.Snapshot().State != StateAnimating {
		t.Errorf("state = %s, want animating", g.Snapshot().State)
	}
	if g.Board().Score != 4 {
		t.Errorf("settled score changed before the slide ended: %d", g.Board().Score)
	}

	for range g.anim.SlideTicks {
		step(g)
	}
	if g.animationPhase != PhasePop {
		t.Fatalf("phase after slide = %v, want pop", g.animationPhase)
	}

	snap := g.Snapshot()
	if snap.Grid[0][0] != 4 {
		t.Errorf("merged tile = %d, want 4 at (0,0)\n%v", snap.Grid[0][0], snap.Grid)
	}
	if n := len(g.Board().Elements); n != 2 {
		t.Errorf("tiles after turn = %d, want merged tile plus spawn", n)
	}
	if len(g.flash) != 1 {
		t.Errorf("flashing tiles = %d, want 1", len(g.flash))
	}

	idle(t, g)
	if g.Moves() != 1 {
		t.Errorf("Moves() = %d, want 1", g.Moves())
	}
}

func TestNoOpMoveIgnored(t *testing.T) {
	g := newTestGame(t, "classic", []int{
		4, 2, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	})

	step(g, core.ActionLeft)
	if g.Animating() {
		t.Error("move that changes nothing should not animate")
	}
	if g.Moves() != 0 {
		t.Errorf("Moves() = %d, want 0", g.Moves())
	}
	if n := len(g.Board().Elements); n != 2 {
		t.Errorf("no-op move spawned a tile: %d tiles", n)
	}
}

func TestMoveDuringAnimationSettlesFirst(t *testing.T) {
	g := newTestGame(t, "classic", []int{
		2, 2, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	})

	step(g, core.ActionLeft)
	step(g, core.ActionRight)

	// The first turn completed (merge committed, tile spawned) before the
	// second move started.
	settled := g.Board()
	if n := len(settled.Elements); n != 2 {
		t.Errorf("tiles after interrupted turn = %d, want 2", n)
	}
	if settled.Score < 6 {
		t.Errorf("score after interrupted turn = %d, want at least 6", settled.Score)
	}

	idle(t, g)
	if g.Moves() < 1 {
		t.Errorf("Moves() = %d, want at least 1", g.Moves())
	}
}

func TestGameOverAfterSpawn(t *testing.T) {
	cfg := config.DefaultT2048Config()
	cfg.Board.SpawnFourProbability = 1 // Every spawn is a 4
	withConfig(t, cfg)

	g := newTestGame(t, "tiny", []int{
		2, 4,
		8, 0,
	})

	step(g, core.ActionRight)
	idle(t, g)

	// [2 4 / 4 8] has no equal neighbours.
	if !g.State().GameOver {
		t.Fatalf("expected game over, grid %v", g.Snapshot().Grid)
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("state = %s, want game_over", g.Snapshot().State)
	}

	// Further input is ignored.
	before := g.Snapshot().Grid
	step(g, core.ActionLeft)
	if g.Snapshot().Grid[1][0] != before[1][0] {
		t.Error("board changed after game over")
	}
}

func TestStuckAtCeilingEndsGame(t *testing.T) {
	g := newTestGame(t, "tiny", []int{
		64, 64,
		32, 16,
	})

	if !g.State().GameOver {
		t.Fatal("a board that no direction can change should end the game")
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("state = %s, want game_over", g.Snapshot().State)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if out := screen.String(); !strings.Contains(out, "NO MOVES LEFT") {
		t.Errorf("render missing stuck overlay:\n%s", out)
	}
}

func TestMoveIntoStuckBoard(t *testing.T) {
	cfg := config.DefaultT2048Config()
	cfg.Board.SpawnFourProbability = 1
	withConfig(t, cfg)

	g := newTestGame(t, "tiny", []int{
		64, 64,
		32, 0,
	})
	if g.State().GameOver {
		t.Fatal("an empty cell leaves a move")
	}

	step(g, core.ActionRight)
	idle(t, g)

	// [64 64 / 4 32]: the only pair sits at the ceiling.
	if !g.State().GameOver {
		t.Fatalf("expected the game to end, grid %v", g.Snapshot().Grid)
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, "classic", []int{
		2, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	})

	step(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("pause should pause")
	}

	step(g, core.ActionRight)
	if g.Moves() != 0 {
		t.Error("moves should be ignored while paused")
	}

	step(g, core.ActionPause)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestTooSmallWindow(t *testing.T) {
	p, _ := LookupPreset("original")
	g := New(p)
	cfg := testRuntime()
	cfg.ScreenW, cfg.ScreenH = 40, 12
	g.Reset(cfg)

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("state = %s, want paused_small_window", g.Snapshot().State)
	}

	screen := core.NewScreen(40, 12)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small message not rendered")
	}

	tiles := len(g.Board().Elements)
	g.Resize(80, 24)
	if g.Snapshot().State == StatePausedSmall {
		t.Error("resize to 80x24 should fit the 8x8 board")
	}
	if len(g.Board().Elements) != tiles {
		t.Error("resize should not restart the game")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, "classic", []int{
		2, 4, 8, 16,
		32, 64, 128, 256,
		512, 1024, 2048, 4,
		8, 16, 32, 64,
	})

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Score:", "GAME OVER", "Max tile: 2048", "Press R to restart"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderShowsTiles(t *testing.T) {
	g := newTestGame(t, "classic", []int{
		2, 0, 0, 0,
		0, 1024, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 128,
	})

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"1024", "128", "Max: 1024", g.Controls()} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "GAME OVER") {
		t.Error("game over overlay on a playable board")
	}
}

func TestRenderColorsTiles(t *testing.T) {
	g := newTestGame(t, "classic", []int{
		2048, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	})

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	found := false
	for y := 0; y < screen.Height() && !found; y++ {
		for x := 0; x < screen.Width(); x++ {
			c := screen.GetCell(x, y)
			if c.Rune == '2' && c.Color == core.TileColor(2048) {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("2048 tile not drawn in its colour")
	}
}

func TestScoreIsTileSum(t *testing.T) {
	g := newTestGame(t, "classic", []int{
		2, 2, 4, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		8, 0, 0, 0,
	})

	if got := g.State().Score; got != 16 {
		t.Fatalf("Score = %d, want 16", got)
	}

	step(g, core.ActionLeft)
	idle(t, g)

	// Merging keeps the sum; the spawn adds 2 or 4.
	got := g.State().Score
	if got != 18 && got != 20 {
		t.Errorf("Score after turn = %d, want 18 or 20", got)
	}
}

func TestCustomPresetFromConfig(t *testing.T) {
	cfg := config.DefaultT2048Config()
	cfg.Board.Width = 5
	cfg.Board.Height = 3
	cfg.Board.MergeCeiling = 512
	withConfig(t, cfg)

	g := newTestGame(t, "custom", nil)
	p := g.Preset()
	if p.Width != 5 || p.Height != 3 || p.Ceiling != 512 {
		t.Errorf("custom preset = %+v, want 5x3 ceiling 512", p)
	}
}

func TestInvalidCustomConfigRendersError(t *testing.T) {
	cfg := config.DefaultT2048Config()
	cfg.Board.Width = 0
	withConfig(t, cfg)

	g := newTestGame(t, "custom", nil)
	if g.Snapshot().State != StateError {
		t.Fatalf("state = %s, want error", g.Snapshot().State)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Cannot start game") {
		t.Error("error overlay not rendered")
	}
	step(g, core.ActionLeft) // Must not panic
}
