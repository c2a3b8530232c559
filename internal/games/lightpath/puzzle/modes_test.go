package puzzle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/board"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/levels"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/puzzle"
)

func newWorld(t *testing.T, rec *recorder) *puzzle.Manager {
	t.Helper()
	g, err := levels.BuiltinWorld(252)
	require.NoError(t, err)

	opts := puzzle.DefaultOptions(puzzle.ModeWorld)
	opts.Reporter = rec
	m := puzzle.NewManager(opts)
	m.SetWorld(g)
	require.NoError(t, m.Start())
	return m
}

// worldCanvas converts a world position to a canvas position for the
// current view.
func worldCanvas(m *puzzle.Manager, x, y int) board.Coord {
	o := m.Origin()
	return board.C(x-o.X+2, y-o.Y+2)
}

func TestWorldStartView(t *testing.T) {
	m := newWorld(t, &recorder{})

	assert.Equal(t, board.C(0, 24), m.Origin())
	w, h := m.CanvasSize()
	assert.Equal(t, 16, w)
	assert.Equal(t, 16, h)

	assert.False(t, m.CanNavigate(board.DirLeft))
	assert.False(t, m.CanNavigate(board.DirDown))
	assert.True(t, m.CanNavigate(board.DirUp))
	assert.True(t, m.CanNavigate(board.DirRight))

	assert.False(t, m.Navigate(board.DirLeft))
	assert.Equal(t, board.C(0, 24), m.Origin(), "blocked move changes nothing")

	tile, ok := m.TileAt(worldCanvas(m, 2, 30))
	require.True(t, ok)
	assert.Equal(t, board.KindLight, tile.Kind)
}

func TestWorldArrowsPaintAndClick(t *testing.T) {
	m := newWorld(t, &recorder{})
	th := puzzle.DefaultTheme()

	beads := puzzle.NewBeads(m.CanvasSize())
	m.Paint(beads)
	assert.Equal(t, th.Arrow, beads.At(board.C(15, 7)).Color, "right is open")
	assert.Equal(t, th.Arrow, beads.At(board.C(8, 0)).Color, "up is open")
	assert.Equal(t, th.ArrowOff, beads.At(board.C(0, 7)).Color, "left is blocked")

	require.True(t, m.HandleClick(board.C(15, 8)))
	assert.Equal(t, board.C(12, 24), m.Origin())
}

func TestWorldValveStatePersistsAcrossScroll(t *testing.T) {
	m := newWorld(t, &recorder{})

	require.True(t, m.HandleClick(worldCanvas(m, 6, 30)))
	require.True(t, m.Navigate(board.DirUp))
	require.True(t, m.Navigate(board.DirDown))

	tile, ok := m.TileAt(worldCanvas(m, 6, 30))
	require.True(t, ok)
	assert.True(t, tile.Open)
	assert.True(t, tile.Lit())
}

func TestWorldRestartKeepsView(t *testing.T) {
	m := newWorld(t, &recorder{})
	require.True(t, m.HandleClick(worldCanvas(m, 6, 30)))
	require.True(t, m.Navigate(board.DirUp))
	require.Equal(t, board.C(0, 12), m.Origin())

	require.NoError(t, m.Restart())
	assert.Equal(t, board.C(0, 12), m.Origin())

	require.True(t, m.Navigate(board.DirDown))
	tile, ok := m.TileAt(worldCanvas(m, 6, 30))
	require.True(t, ok)
	assert.False(t, tile.Open, "restart closes every valve in the world")
}

func TestWorldSolve(t *testing.T) {
	rec := &recorder{}
	m := newWorld(t, rec)

	// Valve next to the light.
	require.True(t, m.HandleClick(worldCanvas(m, 6, 30)))

	// Fork at the top of the first climb: needs one quarter turn.
	require.True(t, m.Navigate(board.DirRight))
	require.True(t, m.Navigate(board.DirRight))
	require.True(t, m.Navigate(board.DirUp))
	require.Equal(t, board.C(24, 12), m.Origin())
	require.True(t, m.HandleClick(worldCanvas(m, 30, 18)))
	assert.False(t, m.Solved())

	// Valve feeding the power source of the last gate.
	require.True(t, m.Navigate(board.DirDown))
	require.True(t, m.Navigate(board.DirRight))
	require.Equal(t, board.C(36, 24), m.Origin())
	require.True(t, m.HandleClick(worldCanvas(m, 42, 31)))

	assert.True(t, m.Solved())
	assert.True(t, m.GameOver())
	assert.True(t, m.LastResult().Powered.Has(board.C(43, 31)))
	assert.Equal(t, []event{
		{puzzle.EventLevelComplete, "world"},
		{puzzle.EventGameComplete, "world"},
	}, rec.events)
	assert.False(t, m.HandleClick(worldCanvas(m, 42, 31)), "solved world ignores clicks")
}

func TestWorldReloadKeepsOrigin(t *testing.T) {
	m := newWorld(t, &recorder{})
	require.True(t, m.Navigate(board.DirUp))

	g, err := levels.BuiltinWorld(252)
	require.NoError(t, err)
	require.NoError(t, m.ReloadWorld(g))
	assert.Equal(t, board.C(0, 12), m.Origin())

	tall := board.NewGrid(20, 30)
	require.NoError(t, m.ReloadWorld(tall))
	assert.Equal(t, board.C(0, 12), m.Origin())

	small := board.NewGrid(20, 10)
	require.NoError(t, m.ReloadWorld(small))
	assert.Equal(t, board.C(0, 0), m.Origin(), "start does not fit either")
}

func newChain(t *testing.T, rec *recorder) *puzzle.Manager {
	t.Helper()
	lvls, err := levels.Builtin(levels.PackChain, 252)
	require.NoError(t, err)

	opts := puzzle.DefaultOptions(puzzle.ModeChain)
	opts.Reporter = rec
	m := puzzle.NewManager(opts)
	m.SetLevels(lvls)
	require.NoError(t, m.Start())
	return m
}

func TestChainSeedsAndSolves(t *testing.T) {
	rec := &recorder{}
	m := newChain(t, rec)
	require.Equal(t, "c01", m.LevelID())

	assert.True(t, m.CanNavigate(board.DirRight))
	assert.False(t, m.CanNavigate(board.DirLeft))

	// Open the valve; light reaches the right border at (9,4).
	require.True(t, m.HandleClick(canvas(4, 3)))
	require.True(t, m.Grid().Get(board.C(9, 4)).Lit())

	require.True(t, m.Navigate(board.DirRight))
	require.Equal(t, "c02", m.LevelID())
	seed, ok := m.TileAt(canvas(0, 4))
	require.True(t, ok)
	assert.Equal(t, board.KindLight, seed.Kind, "border light seeded")

	// Default fork channels send light down; rotate once to send it up.
	require.True(t, m.HandleClick(canvas(3, 4)))
	assert.True(t, m.Grid().Get(board.C(9, 1)).Lit())

	require.True(t, m.Navigate(board.DirRight))
	require.Equal(t, "c03", m.LevelID())
	assert.Equal(t, board.KindLight, m.Grid().Kind(board.C(0, 1)))
	assert.Equal(t, board.KindLight, m.Grid().Kind(board.C(0, 6)), "earlier seed is permanent")
	assert.False(t, m.Solved())

	require.True(t, m.HandleClick(canvas(4, 1)))
	assert.True(t, m.Solved())
	assert.True(t, m.GameOver())
	assert.Equal(t, []event{
		{puzzle.EventLevelComplete, "c03"},
		{puzzle.EventGameComplete, "c03"},
	}, rec.events)
}

func TestChainSeedPlacedOnce(t *testing.T) {
	m := newChain(t, &recorder{})
	require.True(t, m.HandleClick(canvas(4, 3)))
	require.True(t, m.Navigate(board.DirRight))

	// Restarting c02 drops its seed; revisiting c01 places it again.
	require.NoError(t, m.Restart())
	assert.Equal(t, board.KindPath, m.Grid().Kind(board.C(0, 4)), "restart clears the seed")

	require.True(t, m.Navigate(board.DirLeft))
	require.Equal(t, "c01", m.LevelID())
	require.True(t, m.Navigate(board.DirRight))
	assert.Equal(t, board.KindLight, m.Grid().Kind(board.C(0, 4)), "re-seeded after restart")
	assert.Len(t, m.Grid().Lights(), 1)
}
