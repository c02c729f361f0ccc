package board

import (
	"math/rand"
	"sync/atomic"
)

// DefaultFourProbability is the chance that a freshly created tile holds 4 instead of 2.
const DefaultFourProbability = 0.3

// lastTileID is shared by every board in the process so ids never repeat,
// even across concurrent sessions.
var lastTileID atomic.Int64

// Tile is one numbered piece on the board.
type Tile struct {
	X   int `json:"x"`
	Y   int `json:"y"`
	ID  int `json:"id"`
	Val int `json:"val"`
}

// NewTile creates a tile at (x, y) with the next process-wide id.
// The value is 4 with probability DefaultFourProbability, otherwise 2.
// A nil rng falls back to the global source.
func NewTile(x, y int, rng *rand.Rand) *Tile {
	return newTile(x, y, rng, DefaultFourProbability)
}

func newTile(x, y int, rng *rand.Rand, fourProb float64) *Tile {
	val := 2
	if roll(rng) < fourProb {
		val = 4
	}
	return &Tile{X: x, Y: y, ID: int(lastTileID.Add(1)), Val: val}
}

func roll(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}

// UpdatePosition recomputes the coordinates from a row-major linear index.
func (t *Tile) UpdatePosition(index, width int) {
	t.X = index % width
	t.Y = index / width
}

// Clone returns an independent copy with the same id and value.
func (t *Tile) Clone() *Tile {
	c := *t
	return &c
}

// IsSame reports whether both tiles sit on the same cell with the same value.
// Ids are ignored.
func (t *Tile) IsSame(other *Tile) bool {
	if other == nil {
		return false
	}
	return t.X == other.X && t.Y == other.Y && t.Val == other.Val
}
