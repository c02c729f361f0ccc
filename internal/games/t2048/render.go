package t2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including the left border)
	cellHeight = 2 // Height of each cell (including the top border)
	hudHeight  = 3
)

// boardSize returns the on-screen size of the grid including borders.
func (g *Game) boardSize() (w, h int) {
	return g.preset.Width*cellWidth + 1, g.preset.Height*cellHeight + 1
}

// minScreenSize returns the smallest screen the preset fits on.
func (g *Game) minScreenSize() (w, h int) {
	boardW, boardH := g.boardSize()
	return boardW + 2, hudHeight + 1 + boardH + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.boardErr != nil {
		g.drawOverlay(dst, g.screenW/2, g.screenH/2, "Cannot start game", g.boardErr.Error())
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardSize()
	area := core.CenteredRect(g.screenW, boardH, boardW, boardH)
	area.Y = hudHeight + 1

	g.renderHUD(dst, area.X, area.W)
	g.renderGrid(dst, area.X, area.Y)
	g.renderTiles(dst, area.X, area.Y)
	g.renderOverlays(dst, area)

	controls := g.Controls()
	dst.DrawTextColored((g.screenW-len(controls))/2, area.Bottom()+1, controls, core.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.minScreenSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d", minW, minH))
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and max tile.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.preset.Title
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.current.Score))

	maxStr := fmt.Sprintf("Max: %d", g.current.MaxTile())
	dst.DrawText(max(boardX+boardW-len(maxStr), boardX), 1, maxStr)

	info := fmt.Sprintf("%dx%d  moves %d  merges below %d",
		g.preset.Width, g.preset.Height, g.moves, g.preset.Ceiling)
	dst.DrawTextColored(boardX+(boardW-len(info))/2, 2, info, core.ColorGray)
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	w, h := g.preset.Width, g.preset.Height

	for y := range h + 1 {
		for x := range w + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == w:
				corner = '┐'
			case y == h && x == 0:
				corner = '└'
			case y == h && x == w:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == h:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == w:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < w {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < h {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderTiles draws settled tiles, or the tiles in flight while animating.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	if g.animating && g.animationPhase == PhaseSlide {
		// Absorbed tiles first so survivors end up on top.
		for _, absorbed := range []bool{true, false} {
			for i := range g.animations {
				a := &g.animations[i]
				if a.Absorbed != absorbed {
					continue
				}
				x, y := a.interpolatePosition()
				g.drawTile(dst, boardX, boardY, x, y, strconv.Itoa(a.Value), core.TileColor(a.Value))
			}
		}
		return
	}

	popID := -1
	if g.animating && g.animationPhase == PhasePop && len(g.animations) > 0 {
		popID = g.animations[0].ID
	}

	for _, t := range g.current.Elements {
		if t.ID == popID {
			continue
		}
		label := strconv.Itoa(t.Val)
		if g.flash[t.ID] > 0 {
			label = "*" + label + "*"
		}
		g.drawTile(dst, boardX, boardY, float64(t.X), float64(t.Y), label, core.TileColor(t.Val))
	}

	if popID >= 0 {
		a := g.animations[0]
		label := "·"
		if a.Progress >= 0.5 {
			label = strconv.Itoa(a.Value)
		}
		g.drawTile(dst, boardX, boardY, float64(a.ToX), float64(a.ToY), label, core.TileColor(a.Value))
	}
}

// drawTile centers a label inside the cell at fractional grid position (cx, cy).
func (g *Game) drawTile(dst *core.Screen, boardX, boardY int, cx, cy float64, label string, c core.Color) {
	inner := cellWidth - 1
	n := len([]rune(label))
	px := boardX + int(math.Round(cx*cellWidth)) + 1 + core.Clamp((inner-n)/2, 0, inner)
	py := boardY + int(math.Round(cy*cellHeight)) + 1
	dst.DrawTextColored(px, py, label, c)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, area core.Rect) {
	centerX, centerY := area.Center()

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.stuck && !g.animating {
		g.drawOverlay(dst, centerX, centerY,
			"NO MOVES LEFT",
			fmt.Sprintf("%ds do not merge", g.preset.Ceiling),
			fmt.Sprintf("Score: %d", g.current.Score),
			"Press R to restart")
		return
	}

	if g.gameOver && !g.animating {
		g.drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			fmt.Sprintf("Score: %d", g.current.Score),
			fmt.Sprintf("Max tile: %d", g.current.MaxTile()),
			"Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBoxColored(box, core.ColorBrightWhite)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl: Move | P: Pause | R: Restart | Q: Quit"
}
