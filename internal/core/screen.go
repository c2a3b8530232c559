package core

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is one character position of a Screen. HasBg is false when the
// terminal background shows through.
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	HasBg bool
}

var blankCell = Cell{Rune: ' ', Fg: ColorWhite}

// Screen is the off-terminal frame buffer games draw into.
// Cells are stored row-major; writes outside the buffer are dropped.
type Screen struct {
	width, height int
	cells         []Cell
}

// NewScreen returns a blank width x height buffer.
func NewScreen(width, height int) *Screen {
	s := &Screen{width: max(width, 0), height: max(height, 0)}
	s.cells = make([]Cell, s.width*s.height)
	s.Clear()
	return s
}

func (s *Screen) Width() int  { return s.width }
func (s *Screen) Height() int { return s.height }

// Resize changes the buffer size. The overlapping top-left region survives.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	next := NewScreen(width, height)
	for y := range min(s.height, next.height) {
		w := min(s.width, next.width)
		copy(next.row(y)[:w], s.row(y)[:w])
	}
	*s = *next
}

func (s *Screen) row(y int) []Cell {
	return s.cells[y*s.width : (y+1)*s.width]
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return 0, false
	}
	return y*s.width + x, true
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

// Set writes r in the default color.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, Cell{Rune: r, Fg: ColorWhite})
}

func (s *Screen) SetWithColor(x, y int, r rune, fg RGB) {
	s.SetCell(x, y, Cell{Rune: r, Fg: fg})
}

func (s *Screen) SetCell(x, y int, c Cell) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = c
	}
}

// Get returns the rune at (x, y), or a space outside the buffer.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blankCell
}

// DrawText writes text left to right from (x, y), one rune per cell.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextWithColor(x, y, text, ColorWhite)
}

func (s *Screen) DrawTextWithColor(x, y int, text string, fg RGB) {
	for i, r := range []rune(text) {
		s.SetWithColor(x+i, y, r, fg)
	}
}

func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawTextCenteredWithColor(y, text, ColorWhite)
}

// DrawTextCenteredWithColor centers text on row y by display width.
func (s *Screen) DrawTextCenteredWithColor(y int, text string, fg RGB) {
	s.DrawTextWithColor((s.width-runewidth.StringWidth(text))/2, y, text, fg)
}

// DrawRect fills r with fill.
func (s *Screen) DrawRect(r Rect, fill rune) {
	for y := r.Y; y < r.Bottom(); y++ {
		s.DrawHLine(r.X, y, r.W, fill)
	}
}

// DrawBox outlines r with single-line box runes.
func (s *Screen) DrawBox(r Rect) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	s.DrawHLine(r.X+1, r.Y, r.W-2, '─')
	s.DrawHLine(r.X+1, bottom, r.W-2, '─')
	for y := r.Y + 1; y < bottom; y++ {
		s.Set(r.X, y, '│')
		s.Set(right, y, '│')
	}
	s.Set(r.X, r.Y, '┌')
	s.Set(right, r.Y, '┐')
	s.Set(r.X, bottom, '└')
	s.Set(right, bottom, '┘')
}

func (s *Screen) DrawHLine(x, y, length int, r rune) {
	for i := range length {
		s.Set(x+i, y, r)
	}
}

// String returns the buffer's runes without color, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(len(s.cells) + s.height)
	for y := range s.height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range s.row(y) {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}
