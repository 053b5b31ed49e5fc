package wordris

import (
	"fmt"

	"github.com/vovakirdan/wordris/internal/core"
	"github.com/vovakirdan/wordris/internal/games/wordris/engine"
)

const (
	cellWidth    = 3  // "[A]"
	sidebarWidth = 22 // Next letter, target words
	hudHeight    = 2
)

func (g *Game) boardWidth() int {
	return g.base.Columns*cellWidth + 2
}

func (g *Game) boardHeight() int {
	return g.base.Rows + 2
}

func (g *Game) minWidth() int {
	return g.boardWidth() + 2 + sidebarWidth
}

func (g *Game) minHeight() int {
	return hudHeight + g.boardHeight()
}

// Resize implements registry.Resizer; the board keeps running.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	if g.err == nil {
		g.tooSmall = width < g.minWidth() || height < g.minHeight()
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.drawOverlay(dst, g.screenW/2, g.screenH/2, "Cannot start Wordris", truncate(g.err.Error(), g.screenW-6))
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.board == nil {
		return
	}

	totalW := g.boardWidth() + 2 + sidebarWidth
	boardX := (g.screenW - totalW) / 2
	boardY := hudHeight

	g.renderHUD(dst)
	g.renderBoard(dst, boardX, boardY)
	g.renderSidebar(dst, boardX+g.boardWidth()+2, boardY)
	g.renderOverlays(dst, boardX+g.boardWidth()/2, boardY+g.boardHeight()/2)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", g.minWidth(), g.minHeight()))
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	var hud string
	if g.mode == ModeEndless {
		hud = fmt.Sprintf(" Wordris (Endless) | Score: %d | Words: %d | %s", g.score, g.wordsTotal, g.Pack().Name)
	} else {
		hud = fmt.Sprintf(" Wordris | Score: %d | Pack %d/%d: %s", g.score, g.packIndex+1, len(g.packs), g.Pack().Name)
	}
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// slotX returns the screen x of a column's cell. Column 1 is rightmost.
func (g *Game) slotX(boardX, column int) int {
	return boardX + 1 + (g.base.Columns-column)*cellWidth
}

// renderBoard draws the frame, the empty cells and every live tile.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	dst.DrawBox(core.Rect{X: boardX, Y: boardY, W: g.boardWidth(), H: g.boardHeight()})

	middle := g.base.MiddleColumn()
	for row := 0; row < g.base.Rows; row++ {
		for col := 1; col <= g.base.Columns; col++ {
			mark := '·'
			if col == middle && row == 0 {
				mark = '▼' // Spawn point and the column that decides game over
			}
			dst.SetColored(g.slotX(boardX, col)+1, boardY+1+row, mark, core.ColorGray)
		}
	}

	for _, t := range g.board.Tiles() {
		x := g.slotX(boardX, t.Column)
		y := boardY + g.base.RowAt(t.Top) // Falling tiles snap to the nearest line
		dst.DrawTextColored(x, y, tileGlyph(t, g.paused), t.Color)
	}
}

// tileGlyph draws a tile according to its state. Removal fades the tile out.
func tileGlyph(t *engine.Tile, paused bool) string {
	l := string(t.Letter)
	switch t.State {
	case engine.StateFalling, engine.StateFastForwarding:
		if paused {
			return "(" + l + ")"
		}
		return "[" + l + "]"
	case engine.StateMatchedPendingRemoval:
		if t.Opacity > 0.5 {
			return "*" + l + "*"
		}
		return " * "
	default:
		return " " + l + " "
	}
}

// renderSidebar draws the next-letter preview and the target words.
func (g *Game) renderSidebar(dst *core.Screen, x, y int) {
	next := g.board.Next()
	dst.DrawText(x, y, "Next")
	if next.Rune != 0 {
		dst.DrawTextColored(x, y+1, "["+string(next.Rune)+"]", next.Color)
	}

	dst.DrawText(x, y+3, "Words")
	line := y + 4
	for _, w := range g.Pack().Words {
		if line >= dst.Height() {
			break
		}
		mark := "  "
		if g.matched[w] > 0 {
			mark = "✓ "
		}
		dst.DrawText(x, line, mark)
		for i, r := range w {
			dst.SetColored(x+2+i, line, r, g.board.ColorOf(r))
		}
		if n := g.matched[w]; n > 1 {
			dst.DrawText(x+3+len([]rune(w)), line, fmt.Sprintf("x%d", n))
		}
		line++
	}

	if line+1 < dst.Height() {
		dst.DrawTextColored(x, line+1, "Rows read left to right,", core.ColorGray)
		dst.DrawTextColored(x, line+2, "columns either way", core.ColorGray)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	switch {
	case g.won:
		g.drawOverlay(dst, centerX, centerY, "ALL PACKS CLEARED!", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.gameOver:
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.packCleared:
		next := "Last pack done"
		if g.packIndex+1 < len(g.packs) {
			next = "Next: " + g.packs[g.packIndex+1].Name
		}
		g.drawOverlay(dst, centerX, centerY, "PACK CLEAR!", next)
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	dst.DrawRect(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH}, ' ')
	dst.DrawBox(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH})

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawText(x, boxY+1+i, line)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 4 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
