package puzzle_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/board"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/levels"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/levels/formats"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/puzzle"
)

type event struct{ name, value string }

type recorder struct{ events []event }

func (r *recorder) ReportEvent(name, value string) {
	r.events = append(r.events, event{name, value})
}

func (r *recorder) count(name string) int {
	n := 0
	for _, e := range r.events {
		if e.name == name {
			n++
		}
	}
	return n
}

func mkLevel(t *testing.T, id string, goal *board.Coord, rows ...string) levels.Level {
	t.Helper()
	g, err := formats.ParseText([]byte(strings.Join(rows, "\n")), 252)
	require.NoError(t, err)
	return levels.Level{ID: id, Name: id, Grid: g, Goal: goal, Links: map[board.Dir]string{}}
}

func goalAt(x, y int) *board.Coord {
	c := board.C(x, y)
	return &c
}

// canvas converts a board position in a non-world level to a canvas position.
func canvas(x, y int) board.Coord {
	return board.C(x+2, y+2)
}

func newSequence(t *testing.T, rec *recorder) *puzzle.Manager {
	t.Helper()
	opts := puzzle.DefaultOptions(puzzle.ModeSequence)
	opts.Reporter = rec
	m := puzzle.NewManager(opts)
	m.SetLevels([]levels.Level{
		mkLevel(t, "one", goalAt(3, 0), "LPVP"),
		mkLevel(t, "two", goalAt(2, 1), "LPG", "..P", ".S."),
	})
	require.NoError(t, m.Start())
	return m
}

func TestSequenceSolveFlipsOnce(t *testing.T) {
	rec := &recorder{}
	m := newSequence(t, rec)

	assert.False(t, m.Solved())
	assert.Equal(t, 4, m.Grid().W)

	require.True(t, m.HandleClick(canvas(2, 0)), "valve toggles")
	assert.True(t, m.Solved())
	assert.Equal(t, []event{{puzzle.EventLevelComplete, "one"}}, rec.events)

	// Deferred checks never report twice.
	assert.False(t, m.Recheck())
	assert.False(t, m.Recheck())
	assert.Equal(t, 1, rec.count(puzzle.EventLevelComplete))

	// Input is ignored once solved.
	assert.False(t, m.HandleClick(canvas(2, 0)))
	tile, ok := m.TileAt(canvas(2, 0))
	require.True(t, ok)
	assert.True(t, tile.Open)
	assert.False(t, m.GameOver())
}

func TestSequenceGameCompleteOnLastLevel(t *testing.T) {
	rec := &recorder{}
	m := newSequence(t, rec)

	require.True(t, m.Next())
	assert.Equal(t, "two", m.LevelID())
	assert.False(t, m.Next(), "no level after the last")

	// The powered valve cannot be clicked and there is no way to power it.
	assert.False(t, m.HandleClick(canvas(2, 0)))
	assert.False(t, m.Solved())
	assert.Empty(t, rec.events)

	require.True(t, m.Prev())
	require.True(t, m.HandleClick(canvas(2, 0)))
	assert.Equal(t, 0, rec.count(puzzle.EventGameComplete), "level two is still dark")
}

func TestSequenceGameCompleteNeedsEveryLevel(t *testing.T) {
	rec := &recorder{}
	opts := puzzle.DefaultOptions(puzzle.ModeSequence)
	opts.Reporter = rec
	m := puzzle.NewManager(opts)
	m.SetLevels([]levels.Level{
		mkLevel(t, "a", goalAt(2, 0), "LVP"),
		mkLevel(t, "b", goalAt(2, 0), "LVP"),
		mkLevel(t, "free", nil, "LP"),
	})
	require.NoError(t, m.Start())

	require.True(t, m.Next())
	require.True(t, m.HandleClick(canvas(1, 0)))
	assert.False(t, m.GameOver(), "skipped level a is unsolved")
	assert.Equal(t, 0, rec.count(puzzle.EventGameComplete))

	require.True(t, m.Prev())
	require.True(t, m.HandleClick(canvas(1, 0)))
	assert.True(t, m.GameOver(), "levels without a goal do not count")
	assert.Equal(t, event{puzzle.EventGameComplete, "a"}, rec.events[len(rec.events)-1])
}

func TestSequenceLastLevelReportsGameComplete(t *testing.T) {
	rec := &recorder{}
	opts := puzzle.DefaultOptions(puzzle.ModeSequence)
	opts.Reporter = rec
	m := puzzle.NewManager(opts)
	m.SetLevels([]levels.Level{mkLevel(t, "only", goalAt(2, 0), "LVP")})
	require.NoError(t, m.Start())

	require.True(t, m.HandleClick(canvas(1, 0)))
	assert.Equal(t, []event{
		{puzzle.EventLevelComplete, "only"},
		{puzzle.EventGameComplete, "only"},
	}, rec.events)
	assert.True(t, m.GameOver())
}

func TestClickOutsideBoardIsIgnored(t *testing.T) {
	m := newSequence(t, &recorder{})

	assert.False(t, m.HandleClick(board.C(0, 0)), "frame")
	assert.False(t, m.HandleClick(canvas(0, 0)), "light")
	assert.False(t, m.HandleClick(canvas(1, 0)), "path")
	assert.False(t, m.HandleClick(canvas(9, 9)), "outside")

	_, ok := m.TileAt(board.C(1, 1))
	assert.False(t, ok)
}

func TestRestartDiscardsChanges(t *testing.T) {
	m := newSequence(t, &recorder{})
	require.True(t, m.HandleClick(canvas(2, 0)))
	require.True(t, m.Solved())

	require.NoError(t, m.Restart())

	assert.False(t, m.Solved())
	tile, _ := m.TileAt(canvas(2, 0))
	assert.False(t, tile.Open)
	assert.Equal(t, 0, m.Grid().Get(board.C(3, 0)).Strength)
}

func TestReloadKeepsActiveLevel(t *testing.T) {
	m := newSequence(t, &recorder{})
	require.True(t, m.Next())

	err := m.Reload([]levels.Level{
		mkLevel(t, "zero", nil, "LP"),
		mkLevel(t, "two", goalAt(1, 0), "LP"),
	})
	require.NoError(t, err)

	assert.Equal(t, "two", m.LevelID())
	assert.Equal(t, 1, m.Index())
	assert.True(t, m.Solved(), "reloaded level is propagated and checked")

	assert.ErrorIs(t, m.Reload(nil), puzzle.ErrNoLevels)
}

func TestPaintSequence(t *testing.T) {
	m := newSequence(t, &recorder{})
	th := puzzle.DefaultTheme()

	w, h := m.CanvasSize()
	require.Equal(t, 8, w)
	require.Equal(t, 5, h)
	beads := puzzle.NewBeads(w, h)
	m.Paint(beads)

	assert.Equal(t, th.Board.Wall, beads.At(board.C(0, 0)).Color)
	assert.Equal(t, th.Frame, beads.At(board.C(1, 1)).Color)
	assert.Equal(t, th.Board.Light, beads.At(canvas(0, 0)).Color)

	valve := beads.At(canvas(2, 0))
	assert.Equal(t, board.SideAll, valve.Border)
	assert.Equal(t, board.ValveClosedBorder, valve.BorderWidth)

	goal := beads.At(canvas(3, 0))
	assert.Equal(t, th.Goal, goal.BorderColor)
	assert.Equal(t, puzzle.GoalBorder, goal.BorderWidth)

	// Lit path is brighter than the unlit goal behind the valve.
	lr, _, _ := beads.At(canvas(1, 0)).Color.Channels()
	gr, _, _ := goal.Color.Channels()
	assert.Greater(t, lr, gr)
}

func TestLoadModeMismatch(t *testing.T) {
	m := puzzle.NewManager(puzzle.DefaultOptions(puzzle.ModeSequence))
	assert.ErrorIs(t, m.Start(), puzzle.ErrNoLevels)
	assert.Error(t, m.LoadRegion(0, 0))

	w := puzzle.NewManager(puzzle.DefaultOptions(puzzle.ModeWorld))
	assert.Error(t, w.LoadLevel(0))
}
