package crush

import (
	"fmt"
	"math"

	platformcore "github.com/vovakirdan/tui-crush/internal/core"
	"github.com/vovakirdan/tui-crush/internal/games/crush/core"
)

const (
	cellWidth    = 3 // Columns per board cell: padding, glyph, padding
	hudHeight    = 2
	footerHeight = 2
	minHUDWidth  = 44
)

// glyphs gives each candy color a distinct shape as well as a hue.
var glyphs = map[core.Color]rune{
	core.ColorRed:    '♥',
	core.ColorYellow: '★',
	core.ColorGreen:  '♣',
	core.ColorOrange: '◆',
	core.ColorBlue:   '●',
	core.ColorPurple: '♠',
}

var screenColors = map[core.Color]platformcore.Color{
	core.ColorRed:    platformcore.ColorRed,
	core.ColorYellow: platformcore.ColorYellow,
	core.ColorGreen:  platformcore.ColorGreen,
	core.ColorOrange: platformcore.ColorOrange,
	core.ColorBlue:   platformcore.ColorBlue,
	core.ColorPurple: platformcore.ColorPurple,
}

// boardExtent returns the on-screen size of a board including its frame.
func boardExtent(size int) (w, h int) {
	return size*cellWidth + 2, size + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := boardExtent(g.grid.Size())
	box := platformcore.CenteredRect(g.screenW, boardH, boardW, boardH)
	box.Y = hudHeight

	g.renderHUD(dst)
	dst.DrawBox(box, platformcore.ColorGray)
	g.renderTokens(dst, box)
	g.renderHint(dst, box)
	g.renderCursor(dst, box)
	g.renderOverlays(dst, box)
	g.renderFooter(dst, box.Bottom())
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and status line.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	scoreColor := platformcore.ColorBrightWhite
	if g.hasLast {
		scoreColor = screenColors[g.lastColor]
	}

	line := fmt.Sprintf("%s   Score %d   Moves %d", g.Title(), g.grid.Score(), g.moves)
	if g.bestChain > 1 {
		line += fmt.Sprintf("   Best chain x%d", g.bestChain)
	}
	dst.DrawTextCenteredColored(0, line, scoreColor)

	if g.message != "" {
		dst.DrawTextCenteredColored(1, g.message, platformcore.ColorBrightYellow)
	}
}

// cellOrigin returns the screen position of a board cell's glyph.
func cellOrigin(box platformcore.Rect, row, col int) (x, y int) {
	return box.X + 1 + col*cellWidth + 1, box.Y + 1 + row
}

// renderTokens draws every token, interpolating those in motion.
func (g *Game) renderTokens(dst *platformcore.Screen, box platformcore.Rect) {
	progress := g.stageProgress()
	flashing := g.stage == StageCrushing && (g.stageTicks/2)%2 == 1

	for _, t := range g.grid.AllTokens() {
		pos, _ := t.Location()
		row, col := float64(pos.Row), float64(pos.Col)
		if m, ok := g.motions[t]; ok {
			row = lerp(m.fromRow, m.toRow, progress)
			col = lerp(m.fromCol, m.toCol, progress)
		}

		r, c := int(math.Round(row)), int(math.Round(col))
		if r < 0 {
			// Still above the board
			continue
		}

		cell := platformcore.Cell{Rune: glyphs[t.Color()], Color: screenColors[t.Color()]}
		if g.stage == StageCrushing && g.isPending(t) {
			cell.Rune = '✶'
			cell.Attr = platformcore.AttrBold
			if flashing {
				cell.Color = platformcore.ColorBrightWhite
			}
		}

		x, y := cellOrigin(box, r, c)
		dst.SetCell(x, y, cell)

		if t == g.selected {
			dst.SetColored(x-1, y, '[', platformcore.ColorBrightWhite)
			dst.SetColored(x+1, y, ']', platformcore.ColorBrightWhite)
		}
	}
}

func (g *Game) renderHint(dst *platformcore.Screen, box platformcore.Rect) {
	if g.hintTicks == 0 || g.hint.Token == nil || g.stage != StageIdle {
		return
	}
	from, ok := g.hint.Token.Location()
	if !ok {
		return
	}
	to := from.Step(g.hint.Direction)

	for _, p := range []core.Position{from, to} {
		x, y := cellOrigin(box, p.Row, p.Col)
		dst.SetColored(x-1, y, '‹', platformcore.ColorBrightYellow)
		dst.SetColored(x+1, y, '›', platformcore.ColorBrightYellow)
	}
}

func (g *Game) renderCursor(dst *platformcore.Screen, box platformcore.Rect) {
	if g.mode == ModeAuto || g.gameOver {
		return
	}
	x, y := cellOrigin(box, g.cursor.Row, g.cursor.Col)
	cell := dst.GetCell(x, y)
	if cell.Rune == ' ' {
		cell.Rune = '·'
	}
	cell.Attr |= platformcore.AttrReverse
	dst.SetCell(x, y, cell)
}

// renderOverlays draws pause and game over banners over the board.
func (g *Game) renderOverlays(dst *platformcore.Screen, box platformcore.Rect) {
	midY := box.Y + box.H/2

	switch {
	case g.paused:
		dst.DrawTextCenteredColored(midY, " PAUSED ", platformcore.ColorBrightWhite)
		dst.DrawTextCentered(midY+1, " Press P to resume ")
	case g.gameOver:
		dst.DrawTextCenteredColored(midY-1, " NO MOVES LEFT ", platformcore.ColorRed)
		dst.DrawTextCenteredColored(midY, fmt.Sprintf(" Final score: %d ", g.grid.Score()), platformcore.ColorBrightWhite)
		dst.DrawTextCentered(midY+1, " R restart · N new board · Q quit ")
	}
}

func (g *Game) renderFooter(dst *platformcore.Screen, y int) {
	help := "arrows move · enter select · ? hint · n new · p pause · q quit"
	if g.mode == ModeAuto {
		help = "n new board · p pause · q quit"
	}
	dst.DrawTextCenteredColored(y, help, platformcore.ColorGray)
}

func (g *Game) isPending(t *core.Token) bool {
	for _, group := range g.pending {
		if group.Contains(t) {
			return true
		}
	}
	return false
}

func lerp(from, to int, p float64) float64 {
	return float64(from) + float64(to-from)*p
}
