package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-lightpath/internal/core"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath"
	"github.com/vovakirdan/tui-lightpath/internal/storage"
)

// fakeGame records the calls the platform makes.
type fakeGame struct {
	resets   int
	steps    int
	rechecks int
	reloads  int
	resized  [2]int
	last     core.InputFrame
	solved   bool
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState { return core.GameState{Level: "1", Solved: g.solved} }
func (g *fakeGame) Resize(width, height int) { g.resized = [2]int{width, height} }

func (g *fakeGame) Reload() error {
	g.reloads++
	return nil
}

func (g *fakeGame) Recheck() core.StepResult {
	g.rechecks++
	g.solved = true
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = in.Clone()
	res := core.StepResult{State: g.State()}
	if in.Has(core.ActionConfirm) || len(in.Clicks) > 0 {
		res.Recheck = true
		res.RecheckAfter = time.Millisecond
	}
	return res
}

type recordingReporter struct {
	events []string
}

func (r *recordingReporter) ReportEvent(name, value string) {
	r.events = append(r.events, name+":"+value)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestMapKey(t *testing.T) {
	k := DefaultKeyMap()
	cases := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{keyRunes("a"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{keyRunes(" "), core.ActionConfirm, false},
		{keyRunes("r"), core.ActionRestart, false},
		{keyRunes("n"), core.ActionNextLevel, false},
		{keyRunes("p"), core.ActionPrevLevel, false},
		{keyRunes("q"), core.ActionQuit, true},
		{keyRunes("z"), core.ActionNone, false},
	}
	for _, c := range cases {
		action, quit := k.MapKey(c.msg)
		assert.Equal(t, c.action, action, c.msg.String())
		assert.Equal(t, c.quit, quit, c.msg.String())
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	assert.Equal(t, MenuActionProgress, MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Equal(t, MenuActionBack, MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, MenuActionSelect, MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, MenuActionNone, MapKeyToMenuAction(keyRunes("x")))
}

func TestMapMouseToFrame(t *testing.T) {
	frame := core.NewInputFrame()
	MapMouseToFrame(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	MapMouseToFrame(tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionMotion}, &frame)
	MapMouseToFrame(tea.MouseMsg{X: 7, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, &frame)

	require.Len(t, frame.Clicks, 1)
	assert.Equal(t, core.Point{X: 3, Y: 4}, frame.Clicks[0])
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "ab")
	s.SetWithColor(2, 0, 'c', core.NewRGB(255, 0, 0))
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "ab")
	assert.Contains(t, lines[0], "c")
	assert.Contains(t, lines[1], "xyz")
}

func TestModelTickAndRecheck(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 30}, ModelOptions{})
	require.NotNil(t, m.Init())
	assert.Equal(t, 1, g.resets)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := update(t, m, TickMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.True(t, g.last.Has(core.ActionConfirm))
	assert.False(t, m.State().Solved)

	m, _ = update(t, m, RecheckMsg{})
	assert.Equal(t, 1, g.rechecks)
	assert.True(t, m.State().Solved)

	// Input is consumed by the tick.
	_, _ = update(t, m, TickMsg(time.Now()))
	assert.False(t, g.last.Has(core.ActionConfirm))
}

func TestModelMouseClickReachesGame(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 20}, ModelOptions{})
	m.Init()

	m, _ = update(t, m, tea.MouseMsg{X: 2, Y: 9, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	_, _ = update(t, m, TickMsg(time.Now()))
	require.Len(t, g.last.Clicks, 1)
	assert.Equal(t, core.Point{X: 2, Y: 9}, g.last.Clicks[0])
}

func TestModelResizeReservesHelpLine(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 20}, ModelOptions{})
	m.Init()

	_, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 50})
	assert.Equal(t, [2]int{100, 49}, g.resized)
	assert.Equal(t, 1, g.resets, "resizer keeps progress")
}

func TestModelReload(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 20}, ModelOptions{})
	m.Init()

	_, _ = update(t, m, ReloadMsg{})
	assert.Equal(t, 1, g.reloads)
}

func TestModelQuitReportsShutdown(t *testing.T) {
	rep := &recordingReporter{}
	m := NewModel(&fakeGame{}, core.RuntimeConfig{ScreenW: 40, ScreenH: 20}, ModelOptions{Reporter: rep})
	m.Init()

	m, cmd := update(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.True(t, m.IsQuitting())
	assert.Equal(t, []string{"shutdown:fake"}, rep.events)
	assert.Empty(t, m.View())
}

func TestModelBackOnlyWhenAllowed(t *testing.T) {
	m := NewModel(&fakeGame{}, core.RuntimeConfig{ScreenW: 40, ScreenH: 20}, ModelOptions{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.BackToMenu())

	m = NewModel(&fakeGame{}, core.RuntimeConfig{ScreenW: 40, ScreenH: 20}, ModelOptions{AllowBack: true})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
}

func TestModelView(t *testing.T) {
	m := NewModel(&fakeGame{}, core.RuntimeConfig{ScreenW: 40, ScreenH: 5}, ModelOptions{})
	view := m.View()
	assert.Contains(t, view, "fake")
	assert.Contains(t, view, "restart")
	assert.Len(t, strings.Split(view, "\n"), 5)
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	require.True(t, ok)
	return sm
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 120, ScreenH: 48, TickRate: 60}, "tester", nil)
	assert.Equal(t, stateMenu, m.state)
	assert.Contains(t, m.View(), "L I G H T P A T H")

	// The first mode is the level sequence, which opens the level picker.
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stateLevels, m.state)
	require.NotNil(t, m.pending)
	assert.Equal(t, lightpath.IDSequence, m.pending.GameID)

	// Pick level 2.
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stateGame, m.state)
	require.NotNil(t, m.game)

	m = sessionUpdate(t, m, TickMsg(time.Now()))
	assert.Equal(t, "lvl02", m.game.State().Level)

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateMenu, m.state)
	assert.Nil(t, m.game)
}

func TestSessionProgressBoard(t *testing.T) {
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 120, ScreenH: 48}, "tester", nil)

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, stateProgress, m.state)

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateMenu, m.state)
}

func TestSessionWorldSkipsLevelPicker(t *testing.T) {
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 120, ScreenH: 48}, "tester", nil)

	// Modes are listed by ID: lightpath, lightpath_chain, lightpath_world.
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateGame, m.state)
}

func TestProgressBoardMergesLevels(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.MarkSolved(lightpath.IDSequence, "lvl02"))
	require.NoError(t, store.MarkSolved(lightpath.IDSequence, "retired"))

	m := NewProgressModel(store, core.RuntimeConfig{ScreenW: 120, ScreenH: 40})
	require.Equal(t, lightpath.IDSequence, m.modes[0].ID)
	require.Greater(t, len(m.rows), 2)

	assert.Nil(t, m.rows[0].progress)
	require.NotNil(t, m.rows[1].progress)
	assert.Equal(t, 1, m.rows[1].progress.Completions)

	last := m.rows[len(m.rows)-1]
	assert.Equal(t, "retired", last.id, "solved levels missing from the pack are kept")
	assert.Contains(t, m.summary(), "Lit: 2/")

	// The world mode has no level list; only stored rows appear.
	m.step(-1)
	assert.Equal(t, lightpath.IDWorld, m.modes[m.cursor].ID)
	assert.Empty(t, m.rows)
	assert.Contains(t, m.View(), "No levels solved yet")
}

func TestMenuShowsLitBadge(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.MarkSolved(lightpath.IDChain, "room1"))

	m := NewSessionModel(store, core.RuntimeConfig{ScreenW: 120, ScreenH: 48}, "tester", nil)
	assert.Contains(t, m.View(), "★ 1 lit")
	assert.Empty(t, m.menu.items[0].Badge)
}

func TestLevelMenuScrollsAndMarksSolved(t *testing.T) {
	levels := []lightpath.LevelInfo{
		{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Beta"}, {ID: "c", Name: "Gamma"},
		{ID: "d", Name: "Delta"}, {ID: "e", Name: "Epsilon"},
	}
	solved := func(_, id string) bool { return id == "d" }
	m := NewLevelMenuModel("lightpath", "Lightpath", levels, solved, 80, 13)

	for range 4 {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(LevelMenuModel)
	}
	assert.Equal(t, 4, m.cursor)
	assert.Equal(t, 2, m.offset)

	view := m.View()
	assert.Contains(t, view, "more above")
	assert.Contains(t, view, "more below")
	assert.NotContains(t, view, "Alpha")
	assert.Contains(t, view, "> "+" 4. Delta")
	assert.Contains(t, view, "●")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(LevelMenuModel)
	require.NotNil(t, m.Selected())
	assert.Equal(t, 4, m.Selected().Level)
}
