package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
	StateError       GameStateType = "error"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Preset  string // Preset name
	Width   int
	Height  int
	Score   int
	MaxTile int
	Moves   int
	Grid    [][]int // Settled tile values, rows of columns
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.boardErr != nil:
		state = StateError
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.animating:
		state = StateAnimating
	}

	return Snapshot{
		Tick:    g.tick,
		Preset:  g.preset.Name,
		Width:   g.preset.Width,
		Height:  g.preset.Height,
		Score:   g.current.Score,
		MaxTile: g.current.MaxTile(),
		Moves:   g.moves,
		Grid:    g.current.Grid(),
		State:   state,
	}
}
