package formats

import (
	"bytes"
	"errors"
	"strings"

	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/board"
)

// ErrEmptyMap is returned when a map has no rows.
var ErrEmptyMap = errors.New("empty map")

// ParseText parses a character map into a grid.
// Line index is Y and character index is X. The grid is as wide as the
// longest line; short rows and unknown characters become walls.
// Lights start at maxStrength.
func ParseText(data []byte, maxStrength int) (*board.Grid, error) {
	lines := splitLines(data)
	if len(lines) == 0 {
		return nil, ErrEmptyMap
	}

	rows := make([][]rune, len(lines))
	w := 0
	for i, line := range lines {
		rows[i] = []rune(line)
		if len(rows[i]) > w {
			w = len(rows[i])
		}
	}
	if w == 0 {
		return nil, ErrEmptyMap
	}

	g := board.NewGrid(w, len(rows))
	for y, row := range rows {
		for x, ch := range row {
			kind := board.KindFromChar(ch)
			if kind == board.KindWall {
				continue
			}
			pos := board.C(x, y)
			g.Set(pos, board.NewTile(pos, kind, maxStrength))
		}
	}
	return g, nil
}

// EncodeText writes the grid back in the map format. Player state (valve
// and fork orientation) is not part of the format.
func EncodeText(g *board.Grid) string {
	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			sb.WriteRune(g.Kind(board.C(x, y)).Char())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// splitLines splits on \n or \r\n and drops trailing blank lines.
func splitLines(data []byte) []string {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	lines := strings.Split(string(data), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
