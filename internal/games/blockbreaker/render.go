package blockbreaker

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/blockbreaker/internal/core"
	"github.com/vovakirdan/blockbreaker/internal/session"
)

// printer groups digits in HUD numbers.
var printer = message.NewPrinter(language.English)

const helpLine = "click/space remove  arrows move  r restart  p pause  q quit"

// Render draws the board, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.sess == nil {
		return
	}
	if !g.layout.fits {
		g.renderTooSmall(dst)
		return
	}

	dst.DrawBox(g.layout.frame(), core.ColorGray)
	g.renderBlocks(dst)
	if g.cursorActive && g.sess.State() == session.StatePlaying {
		g.renderCursor(dst)
	}
	g.renderHUD(dst)

	switch {
	case g.sess.State() == session.StateGameOver:
		g.renderGameOver(dst)
	case g.paused:
		g.renderBanner(dst, []string{"PAUSED", "press p to resume"})
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, printer.Sprintf("Need room for %d×%d blocks", g.cfg.Board.Cols, g.cfg.Board.Rows), core.ColorGray)
}

// renderBlocks draws every block at its animated position. Hovered blocks
// are highlighted; a paused board is dimmed under the banner.
// A block is filled with its glyph, leaving a one-cell gutter on the right
// and bottom when it is large enough to spare one.
func (g *Game) renderBlocks(dst *core.Screen) {
	b := g.sess.Board()
	clip := g.layout.inner

	for _, c := range b.Coordinates() {
		blk, _ := b.Block(c)
		pos, ok := g.sess.DrawPosition(c)
		if !ok {
			continue
		}

		cell := core.Cell{Rune: blk.Type.Glyph(), Color: blk.Type.Color()}
		if g.paused {
			cell.Color = cell.Color.Dim()
		} else if _, hot := g.hovered[c]; hot {
			cell.Highlight = true
		}

		r := g.layout.blockRect(pos)
		w := r.W - 1
		h := r.H
		if r.H > 1 {
			h--
		}
		for y := r.Y; y < r.Y+h; y++ {
			for x := r.X; x < r.X+w; x++ {
				if clip.Contains(x, y) {
					dst.SetCell(x, y, cell)
				}
			}
		}
	}
}

// renderCursor marks the cursor's row and column on the frame.
func (g *Game) renderCursor(dst *core.Screen) {
	r := g.layout.blockRect(g.sess.Board().GridToWorld(g.cursor))
	frame := g.layout.frame()
	dst.SetCell(frame.X, r.Y, core.Cell{Rune: '▶', Color: core.ColorBrightWhite})
	dst.SetCell(frame.Right()-1, r.Y, core.Cell{Rune: '◀', Color: core.ColorBrightWhite})
	dst.SetCell(r.X, frame.Y, core.Cell{Rune: '▼', Color: core.ColorBrightWhite})
	dst.SetCell(r.X, frame.Bottom()-1, core.Cell{Rune: '▲', Color: core.ColorBrightWhite})
}

// renderHUD draws the score line and a status line under the board.
func (g *Game) renderHUD(dst *core.Screen) {
	x := g.layout.frame().X
	y := g.layout.hudY
	st := g.State()

	status := printer.Sprintf("Score: %d  Blocks: %d  %s", st.Score, st.BlocksRemaining, st.Phase)
	if g.puzzle != nil && g.puzzle.Par > 0 {
		status += printer.Sprintf("  Par: %d", g.puzzle.Par)
	}
	dst.DrawText(x, y, status)

	if g.cfg.Layout.HUDRows < 2 {
		return
	}

	switch {
	case g.sess.OnlySingles():
		dst.DrawTextColor(x, y+1, "Only singles left", core.ColorYellow)
	case g.lastPoints > 0:
		dst.DrawTextColor(x, y+1, printer.Sprintf("+%d", g.lastPoints), core.ColorGreen)
	default:
		dst.DrawTextColor(x, y+1, helpLine, core.ColorGray)
	}
}

// renderGameOver draws the final score banner.
func (g *Game) renderGameOver(dst *core.Screen) {
	lines := []string{
		"BOARD CLEARED",
		printer.Sprintf("Final score: %d", g.sess.Score()),
		printer.Sprintf("Clicks: %d", g.sess.Clicks()),
	}
	if g.puzzle != nil && g.puzzle.Par > 0 {
		if g.sess.Score() >= g.puzzle.Par {
			lines = append(lines, printer.Sprintf("Par %d beaten!", g.puzzle.Par))
		} else {
			lines = append(lines, printer.Sprintf("Par: %d", g.puzzle.Par))
		}
	}
	lines = append(lines, "press r to play again")
	g.renderBanner(dst, lines)
}

// renderBanner draws centered lines in a box over the board.
func (g *Game) renderBanner(dst *core.Screen, lines []string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2

	frame := g.layout.frame()
	box := core.NewRect(frame.X+(frame.W-w)/2, frame.Y+(frame.H-h)/2, w, h)
	dst.FillRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box, core.ColorBrightWhite)

	for i, l := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorBrightYellow
		}
		lx := box.X + (w-len([]rune(l)))/2
		dst.DrawTextColor(lx, box.Y+1+i, l, color)
	}
}
