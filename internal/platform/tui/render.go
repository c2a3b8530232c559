package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lightpath/internal/core"
)

// cellStyle is the styling key of a run of cells.
type cellStyle struct {
	fg    core.RGB
	bg    core.RGB
	hasBg bool
}

func (c cellStyle) style() lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(c.fg.Hex()))
	if c.hasBg {
		s = s.Background(lipgloss.Color(c.bg.Hex()))
	}
	return s
}

func styleOf(c core.Cell) cellStyle {
	return cellStyle{fg: c.Fg, bg: c.Bg, hasBg: c.HasBg}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	styles := make(map[cellStyle]lipgloss.Style)
	var run strings.Builder

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := styleOf(s.GetCell(x, y))

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if styleOf(cell) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			st, ok := styles[start]
			if !ok {
				st = start.style()
				styles[start] = st
			}
			sb.WriteString(st.Render(run.String()))
		}
	}
	return sb.String()
}
