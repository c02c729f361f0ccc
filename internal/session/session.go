// Package session drives boards through whole turns for remote clients
// and keeps the live sessions of a server process.
package session

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// Turn is the outcome of one full turn.
type Turn struct {
	Moved    bool           `json:"moved"`
	Move     board.Snapshot `json:"move"`  // After the move, before doubling
	Final    board.Snapshot `json:"final"` // After doubling and spawning
	Spawned  *board.Tile    `json:"spawned,omitempty"`
	GameOver bool           `json:"game_over"`
}

// Session owns one board. All methods are safe for concurrent use.
type Session struct {
	ID        string
	Preset    t2048.Preset
	Seed      int64
	CreatedAt time.Time

	mu       sync.Mutex
	board    *board.Board
	last     board.Snapshot // State the client has seen
	moves    int
	gameOver bool
	recorded bool
	updated  time.Time
}

// New starts a session for the preset and spawns its initial tiles.
// A zero seed picks one from the clock.
func New(p t2048.Preset, seed int64) (*Session, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	b, err := p.NewBoard(seed)
	if err != nil {
		return nil, err
	}

	initial := max(p.InitialTiles, 1)
	for range initial {
		b.Spawn()
	}

	now := time.Now()
	return &Session{
		Preset:    p,
		Seed:      seed,
		CreatedAt: now,
		board:     b,
		last:      b.Snapshot(),
		gameOver:  ended(b),
		updated:   now,
	}, nil
}

// ended reports whether the game is over or no direction can change the
// board because the only equal neighbours sit at the merge ceiling.
func ended(b *board.Board) bool {
	return b.IsGameOver() || !b.CanMove()
}

// Move applies a raw move and reports whether the layout changed.
// Merged survivors keep their old value until Commit.
func (s *Session) Move(dir board.Direction) (board.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.board.Move(dir)
	moved := !snap.Equal(s.last)
	if moved {
		s.moves++
	}
	s.last = snap
	s.updated = time.Now()
	return snap, moved
}

// Commit doubles the survivors of the last move.
func (s *Session) Commit() board.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = s.board.CommitMerges()
	return s.last
}

// Spawn places a new tile and re-evaluates the end of the game.
func (s *Session) Spawn() board.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = s.board.Spawn()
	s.gameOver = ended(s.board)
	return s.last
}

// GameOver reports whether no move can change the board.
func (s *Session) GameOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver
}

// Snapshot returns the current state including uncommitted merges.
func (s *Session) Snapshot() board.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Snapshot()
}

// Moves returns how many moves changed the board.
func (s *Session) Moves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves
}

// ClaimResult reports true exactly once, on the first call after the game
// has ended. Callers use it to store each final score a single time.
func (s *Session) ClaimResult() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gameOver || s.recorded {
		return false
	}
	s.recorded = true
	return true
}

// UpdatedAt returns the time of the last move.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updated
}

// Play runs a full turn: move, then, if anything changed, commit, spawn and
// check for the end of the game. A move that changes nothing spawns nothing.
func (s *Session) Play(dir board.Direction) Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameOver {
		return Turn{Move: s.last, Final: s.last, GameOver: true}
	}

	// Merges left pending by a raw Move are settled before the next turn.
	s.last = s.board.CommitMerges()

	moved := s.board.Move(dir)
	s.updated = time.Now()
	if moved.Equal(s.last) {
		return Turn{Move: moved, Final: moved}
	}
	s.moves++

	s.board.CommitMerges()
	final := s.board.Spawn()
	s.gameOver = ended(s.board)
	s.last = final

	return Turn{
		Moved:    true,
		Move:     moved,
		Final:    final,
		Spawned:  final.Spawned,
		GameOver: s.gameOver,
	}
}
