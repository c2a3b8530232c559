package board_test

import (
	"testing"

	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/board"
)

// testMax keeps strengths small enough to reason about by hand.
const testMax = 7

// gridFrom builds a grid from map rows (same characters as world files).
// Rows may have different lengths; missing cells are walls.
func gridFrom(t *testing.T, rows ...string) *board.Grid {
	t.Helper()
	w := 0
	for _, r := range rows {
		if n := len([]rune(r)); n > w {
			w = n
		}
	}
	g := board.NewGrid(w, len(rows))
	for y, r := range rows {
		for x, ch := range []rune(r) {
			kind := board.KindFromChar(ch)
			if kind == board.KindWall {
				continue
			}
			g.Set(board.C(x, y), board.NewTile(board.C(x, y), kind, testMax))
		}
	}
	return g
}

func engine() board.Engine {
	return board.Engine{MaxStrength: testMax}
}

// strengths returns the strength at each coordinate (0 for walls).
func strengths(g *board.Grid, coords ...board.Coord) []int {
	out := make([]int, len(coords))
	for i, c := range coords {
		if t := g.Get(c); t != nil {
			out[i] = t.Strength
		}
	}
	return out
}

// distances runs a plain BFS over conductive tiles (paths and open valves)
// from every light; it is the reference for the decay property.
func distances(g *board.Grid) map[board.Coord]int {
	dist := make(map[board.Coord]int)
	queue := make([]board.Coord, 0)
	for _, l := range g.Lights() {
		dist[l] = 0
		queue = append(queue, l)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors4(cur) {
			t := g.Get(n)
			if t == nil {
				continue
			}
			if t.Kind != board.KindPath && !(t.Kind == board.KindValve && t.Open) {
				continue
			}
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return dist
}
