package t2048

import (
	"sync"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Package-level settings shared by games created through the registry.
var (
	settingsMu sync.RWMutex
	settings   = config.DefaultT2048Config()
)

// SetConfig sets the configuration used by games reset after this call.
func SetConfig(cfg config.T2048Config) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

// CurrentConfig returns the configuration new games will use.
func CurrentConfig() config.T2048Config {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// Game implements the 2048 puzzle on top of a board.Board.
type Game struct {
	base    Preset // Preset as registered
	preset  Preset // Preset with config applied
	anim    config.AnimationConfig
	tick    uint64
	runtime core.RuntimeConfig

	board   *board.Board
	current board.Snapshot // Last settled state
	moves   int

	// Animation state
	animating      bool
	animationPhase AnimationPhase
	animationTicks int
	animations     []TileAnimation
	moveSnap       board.Snapshot // Result of the move being animated
	pendingSpawn   *board.Tile
	flash          map[int]int // Survivor id -> remaining flash ticks

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver bool
	stuck    bool // Over because only tiles at the ceiling are left to pair
	paused   bool
	tooSmall bool
	boardErr error // Set when the preset cannot build a board
}

// New creates a game for the given preset.
func New(p Preset) *Game {
	return &Game{base: p, preset: p}
}

func init() {
	for _, p := range Presets {
		p := p
		registry.Register(p.ID, func() registry.Game {
			return New(p)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.base.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.base.Title
}

// Preset returns the preset the current game runs with.
func (g *Game) Preset() Preset {
	return g.preset
}

// Reset starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	settings := CurrentConfig()

	g.runtime = cfg
	g.preset = g.base.WithConfig(settings)
	g.anim = settings.Animation
	g.tick = 0
	g.moves = 0
	g.gameOver = false
	g.stuck = false
	g.paused = false
	g.boardErr = nil
	g.clearAnimation()
	g.flash = make(map[int]int)

	b, err := g.preset.NewBoard(cfg.Seed)
	if err != nil {
		// Only reachable with an invalid custom config; render the error.
		g.boardErr = err
		g.board = nil
		g.current = board.Snapshot{}
		g.Resize(cfg.ScreenW, cfg.ScreenH)
		return
	}
	g.board = b

	for range g.preset.InitialTiles {
		g.board.Spawn()
	}
	g.current = g.board.Snapshot()
	g.checkEnd()

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h

	minW, minH := g.minScreenSize()
	g.tooSmall = w < minW || h < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.board == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.updateFlash()
	g.updateAnimation()

	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if dir, ok := directionFrom(in); ok {
		// A new move settles whatever is still animating.
		if g.animating {
			g.finishAll()
		}
		if !g.gameOver {
			g.processMove(dir)
		}
	}

	return core.StepResult{State: g.State()}
}

func directionFrom(in core.InputFrame) (board.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return board.Up, true
	case in.Has(core.ActionDown):
		return board.Down, true
	case in.Has(core.ActionLeft):
		return board.Left, true
	case in.Has(core.ActionRight):
		return board.Right, true
	}
	return 0, false
}

// processMove runs the move half of a turn. The rest of the turn
// happens when the slide animation ends.
func (g *Game) processMove(dir board.Direction) {
	before := g.current
	moved := g.board.Move(dir)
	if moved.Equal(before) {
		return
	}

	g.moves++
	g.startSlideAnimation(before, moved)
}

// settle commits the merges of the last move, spawns a tile and checks for
// the end of the game.
func (g *Game) settle() {
	committed := g.board.CommitMerges()
	for _, m := range g.moveSnap.Merges {
		g.flash[m.SurvivorID] = g.anim.MergeFlashTicks
	}
	g.current = committed

	spawned := g.board.Spawn()
	g.current = spawned
	g.pendingSpawn = spawned.Spawned

	g.checkEnd()
}

// checkEnd ends the game when the board is over, or when no direction can
// change it because the only equal neighbours have reached the ceiling.
func (g *Game) checkEnd() {
	over := g.board.IsGameOver()
	g.stuck = !over && !g.board.CanMove()
	g.gameOver = over || g.stuck
}

func (g *Game) updateFlash() {
	for id, left := range g.flash {
		if left <= 1 {
			delete(g.flash, id)
		} else {
			g.flash[id] = left - 1
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.current.Score,
		MaxTile:  g.current.MaxTile(),
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// Moves returns the number of moves that changed the board.
func (g *Game) Moves() int {
	return g.moves
}

// Board returns the settled board state.
func (g *Game) Board() board.Snapshot {
	return g.current
}
