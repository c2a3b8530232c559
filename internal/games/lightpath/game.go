// Package lightpath provides the Lightpath light propagation puzzle.
package lightpath

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lightpath/internal/config"
	"github.com/vovakirdan/tui-lightpath/internal/core"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/board"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/levels"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/puzzle"
	"github.com/vovakirdan/tui-lightpath/internal/registry"
)

// Registered game IDs, one per puzzle mode.
const (
	IDSequence = "lightpath"
	IDWorld    = "lightpath_world"
	IDChain    = "lightpath_chain"
)

const hudHeight = 3

// Game adapts a puzzle.Manager to the platform game interface.
type Game struct {
	id    string
	title string
	mode  puzzle.Mode

	cfg     config.LightpathConfig
	palette config.Palette
	mgr     *puzzle.Manager
	beads   *puzzle.Beads

	reporter core.EventReporter
	log      *log.Logger

	configPath string
	levelsPath string

	// Screen layout
	screenW, screenH int
	beadW, beadH     int
	originX, originY int
	tooSmall         bool

	cursor     board.Coord // Canvas position
	fade       int         // Ticks since the active level was solved
	wasSolved  bool        // Active level was already solved on arrival
	startLevel int         // 1-indexed level for the next Reset, 0 = first
	loadErr    error
}

func init() {
	registry.Register(IDSequence, func() registry.Game { return New(puzzle.ModeSequence) })
	registry.Register(IDWorld, func() registry.Game { return New(puzzle.ModeWorld) })
	registry.Register(IDChain, func() registry.Game { return New(puzzle.ModeChain) })
}

// New creates a game for mode.
func New(mode puzzle.Mode) *Game {
	g := &Game{
		mode:     mode,
		reporter: core.NopReporter{},
		log:      log.New(io.Discard),
	}
	switch mode {
	case puzzle.ModeWorld:
		g.id, g.title = IDWorld, "Lightpath: World"
	case puzzle.ModeChain:
		g.id, g.title = IDChain, "Lightpath: Chain"
	default:
		g.id, g.title = IDSequence, "Lightpath"
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// SetReporter sets the progress event sink. Takes effect on the next Reset.
func (g *Game) SetReporter(r core.EventReporter) {
	if r == nil {
		r = core.NopReporter{}
	}
	g.reporter = r
}

// SetLogger sets the logger. Takes effect on the next Reset.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.log = l.WithPrefix(g.id)
}

// SetStartLevel sets the starting level (1-indexed) used by the next Reset.
// 0 means start from the beginning.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = level
}

// Resize adapts the layout to a new screen size, keeping progress.
func (g *Game) Resize(width, height int) {
	g.screenW, g.screenH = width, height
	g.layout()
}

// Manager exposes the underlying puzzle manager.
func (g *Game) Manager() *puzzle.Manager { return g.mgr }

// Err returns the error that stopped the last Reset, if any.
func (g *Game) Err() error { return g.loadErr }

// Palette returns the colors in effect since the last Reset.
func (g *Game) Palette() config.Palette { return g.palette }

// MaxStrength returns the configured light strength.
func (g *Game) MaxStrength() int { return g.cfg.Engine.MaxStrength }

// Reset loads configuration and level data and starts from the first level.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.screenW, g.screenH = rc.ScreenW, rc.ScreenH
	g.configPath, g.levelsPath = rc.ConfigPath, rc.LevelsPath
	g.fade, g.wasSolved = 0, false
	g.loadErr = nil

	cfg, err := config.LoadLightpath(g.configPath)
	if err != nil {
		g.log.Warn("config rejected, using defaults", "err", err)
		cfg = config.DefaultLightpathConfig()
	}
	palette, err := cfg.Palette.Parse()
	if err != nil {
		g.log.Warn("palette rejected, using defaults", "err", err)
		cfg = config.DefaultLightpathConfig()
		palette, _ = cfg.Palette.Parse()
	}
	g.cfg, g.palette = cfg, palette

	g.mgr = puzzle.NewManager(g.options())
	if err := g.load(); err != nil {
		g.fail(err)
		return
	}

	if g.mode != puzzle.ModeWorld && g.startLevel > 0 && g.startLevel <= g.mgr.Count() {
		if err := g.mgr.LoadLevel(g.startLevel - 1); err != nil {
			g.fail(err)
			return
		}
	}
	g.startLevel = 0

	g.centerCursor()
	g.layout()
}

func (g *Game) fail(err error) {
	g.loadErr = err
	g.log.Error("cannot start", "err", err)
}

// options builds manager options from the loaded configuration.
func (g *Game) options() puzzle.Options {
	opts := puzzle.DefaultOptions(g.mode)
	opts.MaxStrength = g.cfg.Engine.MaxStrength
	opts.LevelSize = g.cfg.View.LevelSize
	opts.LevelOffset = g.cfg.View.LevelOffset
	opts.Stride = g.cfg.View.Stride
	opts.WorldStart = board.C(g.cfg.World.StartX, g.cfg.World.StartY)
	if gp := g.cfg.World.Goal; gp != nil {
		goal := board.C(gp.X, gp.Y)
		opts.WorldGoal = &goal
	}
	opts.Theme = ThemeFromPalette(g.palette)
	opts.Reporter = g.reporter
	opts.Logger = g.log
	return opts
}

// ThemeFromPalette converts configured colors into a puzzle theme.
func ThemeFromPalette(p config.Palette) puzzle.Theme {
	return puzzle.Theme{
		Board: board.Palette{
			Wall:               p.Wall,
			Unlit:              p.Unlit,
			PowerSource:        p.PowerSource,
			PoweredSource:      p.PoweredSource,
			Light:              p.Light,
			ValveBorder:        p.ValveBorder,
			PoweredValveBorder: p.PoweredValveBorder,
			ForkBorder:         p.ForkBorder,
		},
		Frame:    p.Frame,
		Arrow:    p.Arrow,
		ArrowOff: p.ArrowOff,
		Goal:     p.Goal,
		Solved:   p.Solved,
	}
}

// load installs level data into a fresh manager and starts it.
func (g *Game) load() error {
	if g.mode == puzzle.ModeWorld {
		world, err := g.loadWorld()
		if err != nil {
			return err
		}
		g.mgr.SetWorld(world)
	} else {
		lvls, err := g.loadLevels()
		if err != nil {
			return err
		}
		g.mgr.SetLevels(lvls)
	}
	return g.mgr.Start()
}

func (g *Game) loadLevels() ([]levels.Level, error) {
	strength := g.cfg.Engine.MaxStrength
	if g.levelsPath != "" {
		return levels.LoadPack(g.levelsPath, strength)
	}
	pack := levels.PackSequence
	if g.mode == puzzle.ModeChain {
		pack = levels.PackChain
	}
	return levels.Builtin(pack, strength)
}

func (g *Game) loadWorld() (*board.Grid, error) {
	strength := g.cfg.Engine.MaxStrength
	switch {
	case g.levelsPath != "":
		return levels.LoadWorld(g.levelsPath, strength)
	case g.cfg.World.Map != "":
		return levels.LoadWorld(g.cfg.World.Map, strength)
	default:
		return levels.BuiltinWorld(strength)
	}
}

// LevelInfo names one level of a pack.
type LevelInfo struct {
	ID   string
	Name string
}

// ListLevels returns the levels the game registered as id plays under rc.
// The world mode has a single map and returns nil.
func ListLevels(id string, rc core.RuntimeConfig) ([]LevelInfo, error) {
	var g *Game
	switch id {
	case IDSequence:
		g = New(puzzle.ModeSequence)
	case IDChain:
		g = New(puzzle.ModeChain)
	case IDWorld:
		return nil, nil
	default:
		return nil, fmt.Errorf("lightpath: unknown game %q", id)
	}

	cfg, err := config.LoadLightpath(rc.ConfigPath)
	if err != nil {
		cfg = config.DefaultLightpathConfig()
	}
	g.cfg = cfg
	g.levelsPath = rc.LevelsPath

	lvls, err := g.loadLevels()
	if err != nil {
		return nil, err
	}
	out := make([]LevelInfo, len(lvls))
	for i, l := range lvls {
		out[i] = LevelInfo{ID: l.ID, Name: l.Name}
	}
	return out, nil
}

// Reload re-reads level data from disk, keeping the current level or view.
func (g *Game) Reload() error {
	if g.mgr == nil {
		return puzzle.ErrNoLevels
	}
	var err error
	if g.mode == puzzle.ModeWorld {
		var world *board.Grid
		if world, err = g.loadWorld(); err == nil {
			err = g.mgr.ReloadWorld(world)
		}
	} else {
		var lvls []levels.Level
		if lvls, err = g.loadLevels(); err == nil {
			err = g.mgr.Reload(lvls)
		}
	}
	if err != nil {
		return fmt.Errorf("lightpath: reload: %w", err)
	}
	g.loadErr = nil
	g.arrive()
	g.layout()
	return nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.mgr == nil || g.loadErr != nil {
		return core.StepResult{State: g.State()}
	}

	changed := false
	wasID := g.mgr.LevelID()

	if in.Has(core.ActionRestart) {
		if err := g.mgr.Restart(); err != nil {
			g.log.Warn("restart failed", "level", wasID, "err", err)
		}
		changed = true
	}
	if in.Has(core.ActionNextLevel) && g.mode != puzzle.ModeWorld {
		changed = g.mgr.Next() || changed
	}
	if in.Has(core.ActionPrevLevel) && g.mode != puzzle.ModeWorld {
		changed = g.mgr.Prev() || changed
	}

	for _, d := range []struct {
		action core.Action
		dir    board.Dir
	}{
		{core.ActionUp, board.DirUp},
		{core.ActionDown, board.DirDown},
		{core.ActionLeft, board.DirLeft},
		{core.ActionRight, board.DirRight},
	} {
		if in.Has(d.action) {
			changed = g.moveCursor(d.dir) || changed
		}
	}

	if in.Has(core.ActionConfirm) {
		changed = g.mgr.HandleClick(g.cursor) || changed
	}
	for _, p := range in.Clicks {
		if pos, ok := g.screenToCanvas(p.X, p.Y); ok {
			g.cursor = pos
			changed = g.mgr.HandleClick(pos) || changed
		}
	}

	if g.mgr.LevelID() != wasID {
		g.arrive()
		g.layout()
		g.clampCursor()
	}

	g.advanceFade()

	res := core.StepResult{State: g.State()}
	if changed {
		res.Recheck = true
		res.RecheckAfter = g.cfg.Completion.Delay()
	}
	return res
}

// Recheck runs the deferred completion check.
func (g *Game) Recheck() core.StepResult {
	if g.mgr != nil {
		g.mgr.Recheck()
	}
	return core.StepResult{State: g.State()}
}

// arrive resets the fade for a newly active level.
func (g *Game) arrive() {
	g.fade = 0
	g.wasSolved = g.mgr.Solved()
}

// advanceFade counts solved ticks and moves to the next sequence level once
// the fade has finished. Levels that were solved before this visit fade but
// stay put.
func (g *Game) advanceFade() {
	if !g.mgr.Solved() {
		g.fade = 0
		g.wasSolved = false
		return
	}
	if g.fade < g.cfg.Completion.FadeTicks {
		g.fade++
		return
	}
	if g.mode == puzzle.ModeSequence && !g.wasSolved && !g.mgr.GameOver() && g.mgr.Next() {
		g.arrive()
		g.layout()
		g.clampCursor()
	}
}

// moveCursor moves the cursor one bead. Pushing past the playable window in
// world and chain modes scrolls the view instead. Returns true when the view
// changed.
func (g *Game) moveCursor(d board.Dir) bool {
	w, h := g.mgr.CanvasSize()
	next := g.cursor.Step(d)
	if next.X >= 0 && next.Y >= 0 && next.X < w && next.Y < h {
		g.cursor = next
		return false
	}
	if g.mode == puzzle.ModeSequence {
		return false
	}
	return g.mgr.Navigate(d)
}

func (g *Game) centerCursor() {
	w, h := g.mgr.CanvasSize()
	g.cursor = board.C(w/2, h/2)
}

func (g *Game) clampCursor() {
	w, h := g.mgr.CanvasSize()
	g.cursor = board.C(core.Clamp(g.cursor.X, 0, w-1), core.Clamp(g.cursor.Y, 0, h-1))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.mgr == nil || g.loadErr != nil {
		return core.GameState{}
	}
	label := g.mgr.LevelID()
	if g.mode == puzzle.ModeWorld {
		o := g.mgr.Origin()
		label = fmt.Sprintf("%d,%d", o.X, o.Y)
	}
	return core.GameState{
		Level:    label,
		Solved:   g.mgr.Solved(),
		GameOver: g.mgr.GameOver(),
	}
}
