package board

import (
	"fmt"
	"strings"
)

// RenderOptions configures ASCII rendering behavior.
type RenderOptions struct {
	ShowCoords bool // Include coordinate axes in output
	EmptyChar  rune // Character for walls (default '.')

	// Decorate, when set, wraps each glyph (e.g. with terminal colors).
	// t is nil for walls.
	Decorate func(c Coord, t *Tile, glyph rune) string
}

// DefaultRenderOptions returns sensible default rendering options.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		ShowCoords: false,
		EmptyChar:  '.',
	}
}

// Glyph returns the ASCII character for a tile.
// Lit tiles use upper case, unlit ones lower case; closed valves are '|'
// (player valve) and '!' (powered valve); forks show their channel pair.
func Glyph(t *Tile, empty rune) rune {
	if t == nil {
		return empty
	}
	switch t.Kind {
	case KindLight:
		return 'L'
	case KindPowerSource:
		if t.Powered {
			return 'S'
		}
		return 's'
	case KindValve:
		if !t.Open {
			return '|'
		}
	case KindPoweredValve:
		if !t.Open {
			return '!'
		}
	case KindFork:
		switch t.Channels & SideAll {
		case SideTop | SideRight:
			return '└'
		case SideRight | SideBottom:
			return '┌'
		case SideBottom | SideLeft:
			return '┐'
		case SideLeft | SideTop:
			return '┘'
		}
	}
	if t.Lit() {
		return t.Kind.Char()
	}
	return t.Kind.Char() + ('a' - 'A')
}

// RenderASCII converts the grid to a string, one row per line.
// This is UI-library-agnostic and can be used for testing, debugging, or the CLI.
func RenderASCII(g *Grid, opt RenderOptions) string {
	if opt.EmptyChar == 0 {
		opt.EmptyChar = '.'
	}

	var sb strings.Builder

	if opt.ShowCoords {
		sb.WriteString("   ")
		for x := 0; x < g.W; x++ {
			sb.WriteString(fmt.Sprintf("%d", x%10))
		}
		sb.WriteString("\n")
	}

	for y := 0; y < g.H; y++ {
		if opt.ShowCoords {
			sb.WriteString(fmt.Sprintf("%2d ", y%100))
		}
		for x := 0; x < g.W; x++ {
			c := C(x, y)
			t := g.Get(c)
			glyph := Glyph(t, opt.EmptyChar)
			if opt.Decorate != nil {
				sb.WriteString(opt.Decorate(c, t, glyph))
			} else {
				sb.WriteRune(glyph)
			}
		}
		if y < g.H-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
