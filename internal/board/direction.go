package board

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists every move direction.
var Directions = []Direction{Up, Down, Left, Right}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// ParseDirection converts a name such as "left" or "UP" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	}
	return 0, fmt.Errorf("board: unknown direction %q", s)
}

// horizontal reports whether the move runs along rows.
func (d Direction) horizontal() bool {
	return d == Left || d == Right
}

// forward reports whether tiles travel toward index 0 of each line.
func (d Direction) forward() bool {
	return d == Left || d == Up
}
