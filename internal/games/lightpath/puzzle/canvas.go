package puzzle

import (
	"github.com/vovakirdan/tui-lightpath/internal/core"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/board"
)

// Canvas is the paint target for a view. Positions are canvas coordinates,
// including the frame around the playable area. A canvas never holds tile
// state; that is always read back from the Manager.
type Canvas interface {
	SetColor(pos board.Coord, c core.RGB)
	SetBorder(pos board.Coord, sides board.Side, width int)
	SetBorderColor(pos board.Coord, c core.RGB)
}

// Theme holds every color the manager paints with.
type Theme struct {
	Board    board.Palette
	Frame    core.RGB // Ring around the playable area
	Arrow    core.RGB // Navigation affordance that can be taken
	ArrowOff core.RGB // Navigation affordance that is blocked
	Goal     core.RGB // Goal marker border
	Solved   core.RGB // Uniform color of a solved level
}

// DefaultTheme returns the classic colors.
func DefaultTheme() Theme {
	return Theme{
		Board:    board.DefaultPalette(),
		Frame:    0x303030,
		Arrow:    core.ColorYellow,
		ArrowOff: 0x303030,
		Goal:     core.ColorGreen,
		Solved:   core.ColorWhite,
	}
}

// Bead is one painted canvas cell.
type Bead struct {
	Color       core.RGB
	Border      board.Side
	BorderWidth int
	BorderColor core.RGB
}

// Beads is an in-memory Canvas. The game renders it to the terminal and
// tests inspect it directly.
type Beads struct {
	W, H  int
	Cells []Bead
}

// NewBeads creates a w x h bead buffer.
func NewBeads(w, h int) *Beads {
	return &Beads{W: w, H: h, Cells: make([]Bead, w*h)}
}

// Resize changes the buffer dimensions, discarding content when they change.
func (b *Beads) Resize(w, h int) {
	if b.W == w && b.H == h {
		return
	}
	b.W, b.H = w, h
	b.Cells = make([]Bead, w*h)
}

func (b *Beads) inBounds(p board.Coord) bool {
	return p.X >= 0 && p.X < b.W && p.Y >= 0 && p.Y < b.H
}

// At returns the bead at p; out-of-bounds positions return the zero bead.
func (b *Beads) At(p board.Coord) Bead {
	if !b.inBounds(p) {
		return Bead{}
	}
	return b.Cells[p.Y*b.W+p.X]
}

// SetColor implements Canvas.
func (b *Beads) SetColor(p board.Coord, c core.RGB) {
	if b.inBounds(p) {
		b.Cells[p.Y*b.W+p.X].Color = c
	}
}

// SetBorder implements Canvas.
func (b *Beads) SetBorder(p board.Coord, sides board.Side, width int) {
	if b.inBounds(p) {
		cell := &b.Cells[p.Y*b.W+p.X]
		cell.Border = sides
		cell.BorderWidth = width
	}
}

// SetBorderColor implements Canvas.
func (b *Beads) SetBorderColor(p board.Coord, c core.RGB) {
	if b.inBounds(p) {
		b.Cells[p.Y*b.W+p.X].BorderColor = c
	}
}
