package mcp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/session"
)

// formatGrid draws the board with right-aligned values and dots for
// empty cells.
func formatGrid(snap board.Snapshot) string {
	grid := snap.Grid()

	width := 1
	for _, row := range grid {
		for _, v := range row {
			width = max(width, len(strconv.Itoa(v)))
		}
	}

	var b strings.Builder
	for _, row := range grid {
		for x, v := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			cell := "."
			if v != 0 {
				cell = strconv.Itoa(v)
			}
			fmt.Fprintf(&b, "%*s", width, cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func writeState(b *strings.Builder, sess *session.Session) {
	snap := sess.Snapshot()
	fmt.Fprintf(b, "Score: %d  Max tile: %d  Moves: %d\n\n", snap.Score, snap.MaxTile(), sess.Moves())
	b.WriteString(formatGrid(snap))
	if sess.GameOver() {
		b.WriteString("\nGAME OVER: no move can change the board.\n")
	}
}

func formatTurn(dir board.Direction, turn session.Turn, sess *session.Session) string {
	var b strings.Builder

	switch {
	case turn.GameOver && !turn.Moved:
		fmt.Fprintf(&b, "The game is over; %s changed nothing.\n\n", dir)
	case !turn.Moved:
		fmt.Fprintf(&b, "Moving %s changed nothing. No tile was added.\n\n", dir)
	default:
		fmt.Fprintf(&b, "Moved %s.", dir)
		if n := len(turn.Move.Merges); n > 0 {
			fmt.Fprintf(&b, " %d merge(s):", n)
			for _, m := range turn.Move.Merges {
				fmt.Fprintf(&b, " %d+%d=%d", m.Value, m.Value, 2*m.Value)
			}
		}
		if t := turn.Spawned; t != nil {
			fmt.Fprintf(&b, " New %d at (%d,%d).", t.Val, t.X, t.Y)
		}
		b.WriteString("\n\n")
	}

	writeState(&b, sess)
	return b.String()
}
