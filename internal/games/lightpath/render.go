package lightpath

import (
	"fmt"

	"github.com/vovakirdan/tui-lightpath/internal/core"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/board"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/puzzle"
)

// borderGlyphs are box-drawing sets: horizontal, vertical, then the four
// corners clockwise from the top-left.
type borderGlyphs [6]rune

var (
	heavyBorder  = borderGlyphs{'━', '┃', '┏', '┓', '┛', '┗'}
	lightBorder  = borderGlyphs{'─', '│', '┌', '┐', '┘', '└'}
	dashedBorder = borderGlyphs{'╌', '╎', '┌', '┐', '┘', '└'}
)

func glyphsFor(width int) borderGlyphs {
	switch {
	case width >= board.ValveClosedBorder:
		return heavyBorder
	case width >= board.ValveOpenBorder:
		return lightBorder
	default:
		return dashedBorder
	}
}

// layout picks a bead size that fits the canvas on screen and centers it.
func (g *Game) layout() {
	if g.mgr == nil {
		return
	}
	w, h := g.mgr.CanvasSize()
	availH := g.screenH - hudHeight - 1

	g.tooSmall = false
	g.beadW, g.beadH = g.cfg.View.BeadWidth, g.cfg.View.BeadHeight
	if w*g.beadW > g.screenW || h*g.beadH > availH {
		g.beadW, g.beadH = 2, 1
	}
	if w*g.beadW > g.screenW || h*g.beadH > availH {
		g.tooSmall = true
		return
	}

	g.originX = (g.screenW - w*g.beadW) / 2
	g.originY = hudHeight + (availH-h*g.beadH)/2

	if g.beads == nil {
		g.beads = puzzle.NewBeads(w, h)
	} else {
		g.beads.Resize(w, h)
	}
}

// screenToCanvas hit-tests a terminal cell against the bead canvas.
func (g *Game) screenToCanvas(x, y int) (board.Coord, bool) {
	if g.tooSmall || g.beadW == 0 || g.beadH == 0 {
		return board.Coord{}, false
	}
	w, h := g.mgr.CanvasSize()
	canvas := core.NewRect(g.originX, g.originY, w*g.beadW, h*g.beadH)
	col, row, ok := canvas.Cell(x, y, g.beadW, g.beadH)
	return board.C(col, row), ok
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	switch {
	case g.loadErr != nil:
		g.renderOverlay(dst, "No levels loaded", g.loadErr.Error())
		return
	case g.mgr == nil:
		return
	case g.tooSmall:
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.beads.Resize(g.mgr.CanvasSize())
	g.mgr.Paint(g.beads)
	g.renderBeads(dst)
	g.renderStatus(dst)
}

// fadeAmount returns how far the solved fade has progressed, in [0, 1].
func (g *Game) fadeAmount() float64 {
	if !g.mgr.Solved() || g.cfg.Completion.FadeTicks <= 0 {
		return 0
	}
	return core.Clamp(float64(g.fade)/float64(g.cfg.Completion.FadeTicks), 0, 1)
}

func (g *Game) renderBeads(dst *core.Screen) {
	t := g.fadeAmount()
	solved := g.palette.Solved

	for by := 0; by < g.beads.H; by++ {
		for bx := 0; bx < g.beads.W; bx++ {
			bead := g.beads.At(board.C(bx, by))
			fill := bead.Color.Lerp(solved, t)
			edge := bead.BorderColor.Lerp(solved, t)
			glyphs := glyphsFor(bead.BorderWidth)

			sx, sy := g.originX+bx*g.beadW, g.originY+by*g.beadH
			for cy := 0; cy < g.beadH; cy++ {
				for cx := 0; cx < g.beadW; cx++ {
					r := borderRune(bead.Border, glyphs, cx, cy, g.beadW, g.beadH)
					cell := core.Cell{Rune: ' ', Bg: fill, HasBg: true}
					if r != 0 {
						cell.Rune, cell.Fg = r, edge
					}
					dst.SetCell(sx+cx, sy+cy, cell)
				}
			}
		}
	}

	cur := g.cursor
	cx := g.originX + cur.X*g.beadW + g.beadW/2
	cy := g.originY + cur.Y*g.beadH + g.beadH/2
	under := dst.GetCell(cx, cy)
	dst.SetCell(cx, cy, core.Cell{Rune: '◆', Fg: g.palette.Cursor, Bg: under.Bg, HasBg: under.HasBg})
}

// borderRune picks the border glyph for cell (cx, cy) of a w x h bead, or 0
// when the cell is interior or its side has no border.
func borderRune(sides board.Side, gl borderGlyphs, cx, cy, w, h int) rune {
	top := cy == 0 && sides.Has(board.SideTop)
	bottom := cy == h-1 && sides.Has(board.SideBottom)
	left := cx == 0 && sides.Has(board.SideLeft)
	right := cx == w-1 && sides.Has(board.SideRight)

	switch {
	case top && left:
		return gl[2]
	case top && right:
		return gl[3]
	case bottom && right:
		return gl[4]
	case bottom && left:
		return gl[5]
	case top || bottom:
		return gl[0]
	case left || right:
		return gl[1]
	}
	return 0
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := " " + g.title
	if g.mgr != nil && g.loadErr == nil {
		switch g.mode {
		case puzzle.ModeWorld:
			o := g.mgr.Origin()
			hud += fmt.Sprintf(" | View: %d,%d | Lit: %d", o.X, o.Y, g.mgr.LastResult().Lit)
		default:
			hud += fmt.Sprintf(" | Level %d/%d: %s | Lit: %d",
				g.mgr.Index()+1, g.mgr.Count(), g.mgr.LevelName(), g.mgr.LastResult().Lit)
		}
	}
	dst.DrawTextWithColor(0, 0, hud, core.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	controls := " ←↑↓→: Move | Space/Click: Use | R: Restart | N/P: Level | Q: Quit"
	if g.mode == puzzle.ModeWorld {
		controls = " ←↑↓→: Move/Scroll | Space/Click: Use | R: Restart | Q: Quit"
	}
	dst.DrawTextWithColor(0, 2, controls, core.ColorGray)
}

// renderStatus draws a line under the board once the level is solved.
func (g *Game) renderStatus(dst *core.Screen) {
	y := g.originY + g.beads.H*g.beadH
	switch {
	case g.mgr.GameOver():
		dst.DrawTextCenteredWithColor(y, "Every path is lit! Press R to play again", g.palette.Goal)
	case g.mgr.Solved():
		msg := "Solved!"
		if g.mode != puzzle.ModeSequence {
			msg = "Solved! Follow the arrows onward"
		}
		dst.DrawTextCenteredWithColor(y, msg, g.palette.Goal)
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(boxW, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCenteredWithColor(box.Y+3, line2, core.ColorGray)
}
