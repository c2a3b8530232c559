// Package puzzle runs lightpath levels: it owns the live level state, maps
// the view onto it, applies clicks and navigation, and decides completion.
// It has no terminal dependencies.
package puzzle

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lightpath/internal/core"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/board"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/levels"
)

// Mode selects how levels are laid out and navigated.
type Mode int

const (
	ModeSequence Mode = iota // Independent levels, one goal each
	ModeWorld                // One large map seen through a scrolling viewport
	ModeChain                // Linked levels; light leaving a border seeds the next
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSequence:
		return "sequence"
	case ModeWorld:
		return "world"
	case ModeChain:
		return "chain"
	default:
		return "unknown"
	}
}

// GoalBorder is the border width used to mark a goal tile.
const GoalBorder = 3

// worldID is the level ID reported for the world map.
const worldID = "world"

// ErrNoLevels is returned when a manager has nothing to play.
var ErrNoLevels = errors.New("puzzle: no levels loaded")

// Options configures a Manager.
type Options struct {
	Mode        Mode
	MaxStrength int

	// World viewport geometry.
	LevelSize   int // Playable window edge in tiles
	LevelOffset int // Canvas cells between the canvas edge and the window
	Stride      int // Tiles moved per navigation step
	WorldStart  board.Coord
	WorldGoal   *board.Coord

	Theme    Theme
	Reporter core.EventReporter
	Logger   *log.Logger
}

// DefaultOptions returns the classic geometry for mode.
func DefaultOptions(mode Mode) Options {
	goal := board.C(55, 31)
	return Options{
		Mode:        mode,
		MaxStrength: 252,
		LevelSize:   12,
		LevelOffset: 2,
		Stride:      12,
		WorldStart:  board.C(0, 24),
		WorldGoal:   &goal,
		Theme:       DefaultTheme(),
	}
}

// Manager owns the live levels and the active view.
type Manager struct {
	opts    Options
	engine  board.Engine
	checker *Checker
	log     *log.Logger

	source []levels.Level // Pristine level data
	states []*levelState
	index  int

	pristineWorld *board.Grid
	origin        board.Coord // World coordinate of the view's top-left tile

	last board.Result
}

// NewManager creates a manager. Levels or a world must be supplied before
// the first LoadLevel or LoadRegion.
func NewManager(opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Reporter == nil {
		opts.Reporter = core.NopReporter{}
	}
	if opts.LevelOffset < 0 {
		opts.LevelOffset = 0
	}
	return &Manager{
		opts:    opts,
		engine:  board.Engine{MaxStrength: opts.MaxStrength},
		checker: NewChecker(opts.Reporter, opts.Logger, opts.MaxStrength),
		log:     opts.Logger,
	}
}

// SetLevels installs level data for sequence and chain modes and resets all
// progress.
func (m *Manager) SetLevels(lvls []levels.Level) {
	m.source = lvls
	m.states = make([]*levelState, len(lvls))
	for i, lvl := range lvls {
		m.states[i] = newLevelState(lvl)
	}
	m.checker.Reset()
	m.index = 0
}

// SetWorld installs the world map for world mode and resets all progress.
func (m *Manager) SetWorld(g *board.Grid) {
	m.pristineWorld = g
	m.states = []*levelState{{
		id:   worldID,
		name: "World",
		grid: g.Clone(),
		goal: m.opts.WorldGoal,
	}}
	m.checker.Reset()
	m.index = 0
	m.origin = m.opts.WorldStart
}

func newLevelState(lvl levels.Level) *levelState {
	return &levelState{
		id:    lvl.ID,
		name:  lvl.Name,
		grid:  lvl.Grid.Clone(),
		goal:  lvl.Goal,
		links: lvl.Links,
	}
}

func (m *Manager) active() *levelState {
	if m.index < 0 || m.index >= len(m.states) {
		return nil
	}
	return m.states[m.index]
}

func (m *Manager) resolve(id string) *levelState {
	for _, st := range m.states {
		if st.id == id {
			return st
		}
	}
	return nil
}

// LoadLevel activates the level at index and propagates it.
func (m *Manager) LoadLevel(index int) error {
	if m.opts.Mode == ModeWorld {
		return fmt.Errorf("puzzle: LoadLevel in %s mode", m.opts.Mode)
	}
	if len(m.states) == 0 {
		return ErrNoLevels
	}
	if index < 0 || index >= len(m.states) {
		return fmt.Errorf("puzzle: level index %d out of range [0,%d)", index, len(m.states))
	}
	m.index = index
	m.origin = board.C(0, 0)
	m.log.Debug("level loaded", "level", m.states[index].id, "index", index)
	m.propagate()
	return nil
}

// LoadRegion points the world view at the given world offset and propagates.
func (m *Manager) LoadRegion(offsetX, offsetY int) error {
	if m.opts.Mode != ModeWorld {
		return fmt.Errorf("puzzle: LoadRegion in %s mode", m.opts.Mode)
	}
	st := m.active()
	if st == nil {
		return ErrNoLevels
	}
	o := board.C(offsetX, offsetY)
	if !st.grid.InBounds(o) {
		return fmt.Errorf("puzzle: region %v outside world %dx%d", o, st.grid.W, st.grid.H)
	}
	m.origin = o
	m.log.Debug("region loaded", "origin", o)
	m.propagate()
	return nil
}

// Start loads the first level, or the world start region.
func (m *Manager) Start() error {
	if m.opts.Mode == ModeWorld {
		if len(m.states) == 0 {
			return ErrNoLevels
		}
		return m.LoadRegion(m.opts.WorldStart.X, m.opts.WorldStart.Y)
	}
	return m.LoadLevel(0)
}

// propagate recomputes the active level, carries chain seeds and checks
// completion.
func (m *Manager) propagate() {
	st := m.active()
	if st == nil {
		return
	}
	m.last = m.engine.Run(st.grid)
	if m.opts.Mode == ModeChain {
		m.checker.Seed(st, m.resolve)
	}
	m.checker.Check(st, m.isFinal)
}

// isFinal reports whether the game is complete once the active level is
// solved: every level with a goal has been lit.
func (m *Manager) isFinal() bool {
	if m.opts.Mode == ModeWorld {
		return true
	}
	for _, st := range m.states {
		if st.goal != nil && !st.solved {
			return false
		}
	}
	return true
}

// Recheck re-evaluates completion of the active level from current tile
// state. It is safe to call any number of times.
func (m *Manager) Recheck() bool {
	return m.checker.Check(m.active(), m.isFinal)
}

// HandleClick applies a click at a canvas position. Navigation affordances
// move the view; tiles apply their kind's interaction. Returns true when
// anything changed.
func (m *Manager) HandleClick(viewPos board.Coord) bool {
	if d, ok := m.arrowAt(viewPos); ok {
		return m.Navigate(d)
	}
	st := m.active()
	if st == nil || st.solved {
		return false
	}
	pos, ok := m.ToBoard(viewPos)
	if !ok {
		return false
	}
	if !board.Click(st.grid.Get(pos)) {
		return false
	}
	m.propagate()
	return true
}

// CanNavigate reports whether Navigate(d) would move the view.
func (m *Manager) CanNavigate(d board.Dir) bool {
	st := m.active()
	if st == nil {
		return false
	}
	switch m.opts.Mode {
	case ModeWorld:
		return st.grid.InBounds(m.regionStep(d))
	case ModeChain:
		id, ok := st.links[d]
		return ok && m.resolve(id) != nil
	default:
		return false
	}
}

// Navigate moves the view one step in d: a world stride, or the linked level.
// Blocked moves return false and change nothing.
func (m *Manager) Navigate(d board.Dir) bool {
	if !m.CanNavigate(d) {
		return false
	}
	switch m.opts.Mode {
	case ModeWorld:
		next := m.regionStep(d)
		return m.LoadRegion(next.X, next.Y) == nil
	case ModeChain:
		target := m.active().links[d]
		for i, st := range m.states {
			if st.id == target {
				return m.LoadLevel(i) == nil
			}
		}
	}
	return false
}

func (m *Manager) regionStep(d board.Dir) board.Coord {
	dx, dy := d.Delta()
	return m.origin.Add(dx*m.opts.Stride, dy*m.opts.Stride)
}

// Next activates the following level in sequence and chain modes.
func (m *Manager) Next() bool {
	if m.opts.Mode == ModeWorld || m.index+1 >= len(m.states) {
		return false
	}
	return m.LoadLevel(m.index+1) == nil
}

// Prev activates the preceding level in sequence and chain modes.
func (m *Manager) Prev() bool {
	if m.opts.Mode == ModeWorld || m.index == 0 {
		return false
	}
	return m.LoadLevel(m.index-1) == nil
}

// Restart discards player changes to the active level (the whole world in
// world mode, keeping the current view) and propagates again.
func (m *Manager) Restart() error {
	st := m.active()
	if st == nil {
		return ErrNoLevels
	}
	if m.opts.Mode == ModeWorld {
		origin := m.origin
		m.SetWorld(m.pristineWorld)
		if err := m.LoadRegion(origin.X, origin.Y); err != nil {
			return fmt.Errorf("restart world: %w", err)
		}
		return nil
	}
	fresh := newLevelState(m.source[m.index])
	m.states[m.index] = fresh
	m.checker.Forget(fresh.id)
	m.log.Debug("level restarted", "level", fresh.id)
	m.propagate()
	return nil
}

// Reload replaces all level data, keeping the active level by ID when it
// still exists. Progress is reset.
func (m *Manager) Reload(lvls []levels.Level) error {
	if len(lvls) == 0 {
		return ErrNoLevels
	}
	current := ""
	if st := m.active(); st != nil {
		current = st.id
	}
	m.SetLevels(lvls)
	idx := levels.IndexOf(lvls, current)
	if idx < 0 {
		idx = 0
	}
	m.log.Info("levels reloaded", "count", len(lvls))
	return m.LoadLevel(idx)
}

// ReloadWorld replaces the world map, keeping the view where it was when
// it still fits, else the configured start, else the top-left corner.
func (m *Manager) ReloadWorld(g *board.Grid) error {
	origin := m.origin
	m.SetWorld(g)
	if !g.InBounds(origin) {
		origin = m.opts.WorldStart
	}
	if !g.InBounds(origin) {
		origin = board.C(0, 0)
	}
	m.log.Info("world reloaded", "w", g.W, "h", g.H)
	return m.LoadRegion(origin.X, origin.Y)
}

// ViewSize returns the playable window size in tiles.
func (m *Manager) ViewSize() (w, h int) {
	if m.opts.Mode == ModeWorld {
		return m.opts.LevelSize, m.opts.LevelSize
	}
	if st := m.active(); st != nil {
		return st.grid.W, st.grid.H
	}
	return 0, 0
}

// CanvasSize returns the full canvas size, frame included.
func (m *Manager) CanvasSize() (w, h int) {
	w, h = m.ViewSize()
	return w + 2*m.opts.LevelOffset, h + 2*m.opts.LevelOffset
}

// ToBoard converts a canvas position into a board position of the active
// grid. ok is false for frame cells and positions outside the view.
func (m *Manager) ToBoard(viewPos board.Coord) (board.Coord, bool) {
	w, h := m.ViewSize()
	local := viewPos.Add(-m.opts.LevelOffset, -m.opts.LevelOffset)
	if local.X < 0 || local.Y < 0 || local.X >= w || local.Y >= h {
		return board.Coord{}, false
	}
	return m.origin.AddCoord(local), true
}

// TileAt returns a copy of the tile under a canvas position.
func (m *Manager) TileAt(viewPos board.Coord) (board.Tile, bool) {
	st := m.active()
	pos, ok := m.ToBoard(viewPos)
	if st == nil || !ok {
		return board.Tile{}, false
	}
	t := st.grid.Get(pos)
	if t == nil {
		return board.Tile{Pos: pos, Kind: board.KindWall}, true
	}
	return *t, true
}

// arrowCells returns the canvas cells of the navigation affordance for d.
func (m *Manager) arrowCells(d board.Dir) []board.Coord {
	cw, ch := m.CanvasSize()
	if cw == 0 || ch == 0 || m.opts.LevelOffset == 0 {
		return nil
	}
	mid := func(n int) []int {
		if n%2 == 0 {
			return []int{n/2 - 1, n / 2}
		}
		return []int{n / 2}
	}
	var out []board.Coord
	switch d {
	case board.DirLeft, board.DirRight:
		x := 0
		if d == board.DirRight {
			x = cw - 1
		}
		for _, y := range mid(ch) {
			out = append(out, board.C(x, y))
		}
	case board.DirUp, board.DirDown:
		y := 0
		if d == board.DirDown {
			y = ch - 1
		}
		for _, x := range mid(cw) {
			out = append(out, board.C(x, y))
		}
	}
	return out
}

func (m *Manager) arrowAt(p board.Coord) (board.Dir, bool) {
	if m.opts.Mode == ModeSequence {
		return 0, false
	}
	for _, d := range board.Dirs() {
		for _, c := range m.arrowCells(d) {
			if c == p {
				return d, true
			}
		}
	}
	return 0, false
}

// Paint draws the current view: walls everywhere, the frame, navigation
// affordances, then every visible tile.
func (m *Manager) Paint(c Canvas) {
	th := m.opts.Theme
	cw, ch := m.CanvasSize()
	off := m.opts.LevelOffset

	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			p := board.C(x, y)
			c.SetColor(p, th.Board.Wall)
			c.SetBorder(p, board.SideNone, 0)
			c.SetBorderColor(p, th.Board.Wall)
		}
	}

	if off > 0 {
		ring := off - 1
		for y := ring; y < ch-ring; y++ {
			for x := ring; x < cw-ring; x++ {
				if x == ring || y == ring || x == cw-ring-1 || y == ch-ring-1 {
					c.SetColor(board.C(x, y), th.Frame)
				}
			}
		}
	}

	if m.opts.Mode != ModeSequence {
		for _, d := range board.Dirs() {
			color := th.ArrowOff
			if m.CanNavigate(d) {
				color = th.Arrow
			}
			for _, p := range m.arrowCells(d) {
				c.SetColor(p, color)
			}
		}
	}

	st := m.active()
	if st == nil {
		return
	}
	w, h := m.ViewSize()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := board.C(x+off, y+off)
			pos := m.origin.Add(x, y)
			v := board.Decorate(st.grid.Get(pos), th.Board, m.opts.MaxStrength)
			if st.goal != nil && *st.goal == pos && v.Border == board.SideNone {
				v.Border, v.BorderWidth, v.BorderColor = board.SideAll, GoalBorder, th.Goal
			}
			c.SetColor(p, v.Color)
			c.SetBorder(p, v.Border, v.BorderWidth)
			c.SetBorderColor(p, v.BorderColor)
		}
	}
}

// Mode returns the manager's mode.
func (m *Manager) Mode() Mode { return m.opts.Mode }

// Index returns the active level index.
func (m *Manager) Index() int { return m.index }

// Count returns the number of levels (1 in world mode).
func (m *Manager) Count() int { return len(m.states) }

// LevelID returns the active level ID.
func (m *Manager) LevelID() string {
	if st := m.active(); st != nil {
		return st.id
	}
	return ""
}

// LevelName returns the active level name.
func (m *Manager) LevelName() string {
	if st := m.active(); st != nil {
		return st.name
	}
	return ""
}

// Solved reports whether the active level is solved.
func (m *Manager) Solved() bool {
	st := m.active()
	return st != nil && st.solved
}

// GameOver reports whether game_complete has been reached.
func (m *Manager) GameOver() bool { return m.checker.Finished() }

// Origin returns the world position of the view's top-left tile.
func (m *Manager) Origin() board.Coord { return m.origin }

// Grid returns the active live grid. Callers must not mutate it.
func (m *Manager) Grid() *board.Grid {
	if st := m.active(); st != nil {
		return st.grid
	}
	return nil
}

// Goal returns the active goal, if any.
func (m *Manager) Goal() (board.Coord, bool) {
	if st := m.active(); st != nil && st.goal != nil {
		return *st.goal, true
	}
	return board.Coord{}, false
}

// LastResult returns the result of the most recent propagation.
func (m *Manager) LastResult() board.Result { return m.last }
