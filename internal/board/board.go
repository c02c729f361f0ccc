// Package board implements the 2048 board state machine: a fixed grid of
// cells, directional moves that merge at most one pair per line, tile
// spawning, and game-over detection.
//
// A Board is not safe for concurrent use. Callers serialize
// move → (animate) → CommitMerges → Spawn → IsGameOver.
package board

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultCeiling is the value at or above which tiles stop merging.
const DefaultCeiling = 2048

// ErrInvalidDimensions is returned when a board is built with a non-positive size.
var ErrInvalidDimensions = errors.New("board: invalid dimensions")

// Cell is one slot of the grid. A nil Tile marks the slot empty.
type Cell struct {
	Tile *Tile
}

// Empty reports whether the cell holds no tile.
func (c Cell) Empty() bool {
	return c.Tile == nil
}

// Board owns a width×height grid stored in row-major order.
type Board struct {
	width    int
	height   int
	cells    []Cell
	ceiling  int
	fourProb float64
	rng      *rand.Rand
	pending  []Merge // Merges of the last move, not yet committed
}

// Option customizes a Board at construction.
type Option func(*Board)

// WithCeiling sets the merge ceiling.
func WithCeiling(ceiling int) Option {
	return func(b *Board) { b.ceiling = ceiling }
}

// WithSeed makes spawning deterministic.
func WithSeed(seed int64) Option {
	return func(b *Board) { b.rng = rand.New(rand.NewSource(seed)) }
}

// WithFourProbability sets the chance that a spawned tile is a 4.
func WithFourProbability(p float64) Option {
	return func(b *Board) { b.fourProb = p }
}

// New creates an empty board. Call Spawn to place the first tile.
func New(width, height int, opts ...Option) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	b := &Board{
		width:    width,
		height:   height,
		cells:    make([]Cell, width*height),
		ceiling:  DefaultCeiling,
		fourProb: DefaultFourProbability,
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.ceiling <= 0 {
		return nil, fmt.Errorf("board: invalid merge ceiling %d", b.ceiling)
	}
	if b.fourProb < 0 || b.fourProb > 1 {
		return nil, fmt.Errorf("board: four probability %v outside [0, 1]", b.fourProb)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return b, nil
}

// FromValues builds a board from row-major values, 0 meaning empty.
// Every non-zero value becomes a new tile with a fresh id.
func FromValues(width, height int, values []int, opts ...Option) (*Board, error) {
	b, err := New(width, height, opts...)
	if err != nil {
		return nil, err
	}
	if len(values) != width*height {
		return nil, fmt.Errorf("board: got %d values for a %dx%d board", len(values), width, height)
	}

	for i, v := range values {
		switch {
		case v == 0:
			continue
		case v < 0:
			return nil, fmt.Errorf("board: negative value %d at index %d", v, i)
		}
		x, y := b.coords(i)
		t := newTile(x, y, b.rng, 0)
		t.Val = v
		b.cells[i] = Cell{Tile: t}
	}
	return b, nil
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// Ceiling returns the merge ceiling.
func (b *Board) Ceiling() int { return b.ceiling }

func (b *Board) index(x, y int) int {
	return y*b.width + x
}

func (b *Board) coords(index int) (x, y int) {
	return index % b.width, index / b.width
}

// rebase makes every tile's coordinates match its slot.
func (b *Board) rebase() {
	for i, c := range b.cells {
		if !c.Empty() {
			c.Tile.UpdatePosition(i, b.width)
		}
	}
}

// Spawn places a new tile on a uniformly chosen empty cell.
// On a full board it returns the unchanged state.
func (b *Board) Spawn() Snapshot {
	b.rebase()

	empty := make([]int, 0, len(b.cells))
	for i, c := range b.cells {
		if c.Empty() {
			empty = append(empty, i)
		}
	}
	if len(empty) == 0 {
		return b.snapshot(false)
	}

	idx := empty[b.rng.Intn(len(empty))]
	x, y := b.coords(idx)
	t := newTile(x, y, b.rng, b.fourProb)
	b.cells[idx] = Cell{Tile: t}

	snap := b.snapshot(false)
	spawned := *t
	snap.Spawned = &spawned
	return snap
}

// MoveLeft slides and merges every row toward column 0.
func (b *Board) MoveLeft() Snapshot { return b.Move(Left) }

// MoveRight slides and merges every row toward the last column.
func (b *Board) MoveRight() Snapshot { return b.Move(Right) }

// MoveUp slides and merges every column toward row 0.
func (b *Board) MoveUp() Snapshot { return b.Move(Up) }

// MoveDown slides and merges every column toward the last row.
func (b *Board) MoveDown() Snapshot { return b.Move(Down) }

// Move applies one directional move. Merged survivors keep their pre-merge
// value until CommitMerges; merges left uncommitted by the previous move are
// dropped. No tile is spawned.
func (b *Board) Move(dir Direction) Snapshot {
	b.rebase()
	b.pending = nil

	horizontal := dir.horizontal()
	length := b.height
	if horizontal {
		length = b.width
	}

	lines := b.lines(horizontal)
	var pairs []pair
	for i, line := range lines {
		var merged *pair
		if dir.forward() {
			lines[i], merged = mergeForward(line, length, b.ceiling)
		} else {
			lines[i], merged = mergeBackward(line, length, b.ceiling)
		}
		if merged != nil {
			pairs = append(pairs, *merged)
		}
	}

	b.reassemble(lines, horizontal)

	for _, p := range pairs {
		b.pending = append(b.pending, Merge{
			SurvivorID: p.survivor.ID,
			AbsorbedID: p.absorbed.ID,
			Value:      p.absorbed.Val,
			From:       Position{X: p.absorbed.X, Y: p.absorbed.Y},
			To:         Position{X: p.survivor.X, Y: p.survivor.Y},
		})
	}

	return b.snapshot(true)
}

// CommitMerges doubles every survivor of the last move once and clears the
// pending merges.
func (b *Board) CommitMerges() Snapshot {
	b.rebase()
	for _, m := range b.pending {
		if t := b.tileByID(m.SurvivorID); t != nil {
			t.Val += m.Value
		}
	}
	b.pending = nil
	return b.snapshot(false)
}

// IsGameOver reports whether the board is full and no row or column holds
// two adjacent equal values.
func (b *Board) IsGameOver() bool {
	b.rebase()
	for _, c := range b.cells {
		if c.Empty() {
			return false
		}
	}
	for _, row := range b.lines(true) {
		if hasAdjacentPair(row) {
			return false
		}
	}
	for _, col := range b.lines(false) {
		if hasAdjacentPair(col) {
			return false
		}
	}
	return true
}

// CanMove reports whether some direction would change the board: a tile
// can slide into an empty cell or two adjacent tiles below the ceiling
// can merge. Unlike IsGameOver it honours the ceiling, so a full board
// whose only pairs sit at the ceiling cannot move.
func (b *Board) CanMove() bool {
	b.rebase()
	tiles := 0
	for _, c := range b.cells {
		if !c.Empty() {
			tiles++
		}
	}
	if tiles == 0 {
		return false
	}
	if tiles < len(b.cells) {
		return true
	}
	for _, horizontal := range []bool{true, false} {
		for _, line := range b.lines(horizontal) {
			if hasMergeablePair(line, b.ceiling) {
				return true
			}
		}
	}
	return false
}

// Score returns the sum of all tile values on the board.
func (b *Board) Score() int {
	score := 0
	for _, c := range b.cells {
		if !c.Empty() {
			score += c.Tile.Val
		}
	}
	return score
}

// Snapshot returns the current state, including merges of the last move that
// have not been committed yet.
func (b *Board) Snapshot() Snapshot {
	b.rebase()
	return b.snapshot(true)
}

// Values returns tile values in row-major order; empty cells are 0.
func (b *Board) Values() []int {
	values := make([]int, len(b.cells))
	for i, c := range b.cells {
		if !c.Empty() {
			values[i] = c.Tile.Val
		}
	}
	return values
}

// String renders the grid one row per line, "." marking empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			c := b.cells[b.index(x, y)]
			if c.Empty() {
				sb.WriteByte('.')
			} else {
				sb.WriteString(strconv.Itoa(c.Tile.Val))
			}
		}
	}
	return sb.String()
}

// lines groups clones of the tiles by row (horizontal) or column, each line
// ordered by position along it. Lines contain tiles only, no empty slots.
func (b *Board) lines(horizontal bool) [][]*Tile {
	count := b.width
	if horizontal {
		count = b.height
	}

	lines := make([][]*Tile, count)
	for _, c := range b.cells {
		if c.Empty() {
			continue
		}
		key := c.Tile.X
		if horizontal {
			key = c.Tile.Y
		}
		lines[key] = append(lines[key], c.Tile.Clone())
	}

	for _, line := range lines {
		sort.Slice(line, func(i, j int) bool {
			if horizontal {
				return line[i].X < line[j].X
			}
			return line[i].Y < line[j].Y
		})
	}
	return lines
}

// reassemble replaces the grid with processed lines and rebases.
// Row k position p lands on k*width+p; column k position p on p*width+k.
func (b *Board) reassemble(lines [][]*Tile, horizontal bool) {
	cells := make([]Cell, len(b.cells))
	for k, line := range lines {
		for p, t := range line {
			if t == nil {
				continue
			}
			if horizontal {
				cells[b.index(p, k)] = Cell{Tile: t}
			} else {
				cells[b.index(k, p)] = Cell{Tile: t}
			}
		}
	}
	b.cells = cells
	b.rebase()
}

func (b *Board) tileByID(id int) *Tile {
	for _, c := range b.cells {
		if !c.Empty() && c.Tile.ID == id {
			return c.Tile
		}
	}
	return nil
}

func (b *Board) snapshot(withMerges bool) Snapshot {
	snap := Snapshot{
		Width:    b.width,
		Height:   b.height,
		Elements: make([]Tile, 0, len(b.cells)),
		Alts:     []Tile{},
		Merges:   []Merge{},
		Score:    b.Score(),
	}

	for _, c := range b.cells {
		if !c.Empty() {
			snap.Elements = append(snap.Elements, *c.Tile)
		}
	}
	sort.Slice(snap.Elements, func(i, j int) bool {
		return snap.Elements[i].ID < snap.Elements[j].ID
	})

	if withMerges {
		for _, m := range b.pending {
			snap.Merges = append(snap.Merges, m)
			snap.Alts = append(snap.Alts, Tile{X: m.To.X, Y: m.To.Y, ID: m.AbsorbedID, Val: m.Value})
		}
	}
	return snap
}
