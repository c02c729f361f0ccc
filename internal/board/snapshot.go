package board

// Position is a cell coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Merge describes one merge performed by the most recent move.
// The survivor keeps its pre-merge value until CommitMerges is called.
type Merge struct {
	SurvivorID int      `json:"survivor_id"`
	AbsorbedID int      `json:"absorbed_id"`
	Value      int      `json:"value"` // Absorbed tile value before the move
	From       Position `json:"from"`  // Absorbed tile position before the move
	To         Position `json:"to"`    // Survivor position after the move
}

// Snapshot is the state returned by every board operation.
type Snapshot struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Elements []Tile  `json:"elements"` // Tiles on the board, ascending id
	Alts     []Tile  `json:"alts"`     // Absorbed tiles, placed on their survivor
	Merges   []Merge `json:"merges"`
	Spawned  *Tile   `json:"spawned,omitempty"` // Set only by Spawn
	Score    int     `json:"score"`
}

// Equal reports whether both snapshots hold the same tiles at the same
// positions with the same values. Callers use it to detect a move that
// changed nothing.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.Elements) != len(other.Elements) {
		return false
	}
	for i, a := range s.Elements {
		b := other.Elements[i]
		if a.ID != b.ID || a.X != b.X || a.Y != b.Y || a.Val != b.Val {
			return false
		}
	}
	return true
}

// MaxTile returns the highest tile value, or 0 on an empty board.
func (s Snapshot) MaxTile() int {
	maxVal := 0
	for _, t := range s.Elements {
		if t.Val > maxVal {
			maxVal = t.Val
		}
	}
	return maxVal
}

// Grid returns tile values as rows of columns; empty cells are 0.
func (s Snapshot) Grid() [][]int {
	grid := make([][]int, s.Height)
	for y := range grid {
		grid[y] = make([]int, s.Width)
	}
	for _, t := range s.Elements {
		if t.Y >= 0 && t.Y < s.Height && t.X >= 0 && t.X < s.Width {
			grid[t.Y][t.X] = t.Val
		}
	}
	return grid
}

// Tile returns the element with the given id.
func (s Snapshot) Tile(id int) (Tile, bool) {
	for _, t := range s.Elements {
		if t.ID == id {
			return t, true
		}
	}
	return Tile{}, false
}
