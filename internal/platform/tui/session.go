package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lightpath/internal/core"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath"
	"github.com/vovakirdan/tui-lightpath/internal/registry"
	"github.com/vovakirdan/tui-lightpath/internal/storage"
)

type sessionState int

const (
	stateMenu sessionState = iota
	stateLevels
	stateProgress
	stateGame
)

// SessionModel manages the full session flow: menu -> level picker -> game
// -> menu, with the progress board one key away. It is the top-level model
// for SSH sessions and for local play without a game argument.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	log      *log.Logger

	state    sessionState
	menu     MenuModel
	levels   LevelMenuModel
	progress ProgressModel
	game     *Model

	pending  *MenuItem // Mode chosen in the menu, waiting for a level
	quitting bool
}

// NewSessionModel creates a new session model. store and logger may be nil.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		log:      logger,
	}.withMenu()
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.state {
	case stateGame:
		return m.updateGame(msg)
	case stateLevels:
		return m.updateLevels(msg)
	case stateProgress:
		return m.updateProgress(msg)
	default:
		return m.updateMenu(msg)
	}
}

// toMenu returns to a fresh menu.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.state = stateMenu
	m.game = nil
	m.pending = nil
	m = m.withMenu()
	return m, m.menu.Init()
}

func (m SessionModel) withMenu() SessionModel {
	m.menu = NewMenuModel(m.config, m.litBadge)
	return m
}

// litBadge summarizes stored progress for the mode picker.
func (m SessionModel) litBadge(gameID string) string {
	if m.store == nil {
		return ""
	}
	stats, err := m.store.GetGameStats(gameID)
	if err != nil || stats.Solved == 0 {
		return ""
	}
	return fmt.Sprintf("★ %d lit", stats.Solved)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsProgress():
		m.state = stateProgress
		m.progress = NewProgressModel(m.store, m.config)
		return m, m.progress.Init()

	case m.menu.Selected() != nil:
		selected := *m.menu.Selected()
		infos, err := lightpath.ListLevels(selected.GameID, m.config)
		if err != nil {
			m.log.Warn("cannot list levels", "game", selected.GameID, "err", err)
		}
		if len(infos) == 0 {
			return m.startGame(selected.GameID, 0)
		}
		m.pending = &selected
		m.state = stateLevels
		m.levels = NewLevelMenuModel(selected.GameID, selected.Title, infos, m.solvedFunc(),
			m.config.ScreenW, m.config.ScreenH)
		return m, m.levels.Init()
	}

	return m, cmd
}

func (m SessionModel) solvedFunc() SolvedFunc {
	if m.store == nil {
		return nil
	}
	return func(gameID, levelID string) bool {
		ok, err := m.store.IsSolved(gameID, levelID)
		return err == nil && ok
	}
}

// updateLevels handles updates when in the level picker.
func (m SessionModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.levels.Update(msg)
	if lm, ok := newModel.(LevelMenuModel); ok {
		m.levels = lm
	}

	switch {
	case m.levels.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.levels.WantsBack():
		return m.toMenu()
	case m.levels.Selected() != nil && m.pending != nil:
		return m.startGame(m.pending.GameID, m.levels.Selected().Level)
	}
	return m, cmd
}

// updateProgress handles updates when on the progress board.
func (m SessionModel) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.progress.Update(msg)
	if pm, ok := newModel.(ProgressModel); ok {
		m.progress = pm
	}

	switch {
	case m.progress.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.progress.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// startGame creates the game and switches to it.
func (m SessionModel) startGame(gameID string, level int) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID)
	if err != nil {
		m.log.Error("cannot create game", "game", gameID, "err", err)
		return m.toMenu()
	}
	if sl, ok := game.(registry.StartLevelSetter); ok {
		sl.SetStartLevel(level)
	}

	logger := m.log.With("user", m.username)
	model := NewModel(game, m.config, ModelOptions{
		Reporter:  storage.NewRecorder(m.store, gameID, logger),
		Logger:    logger,
		AllowBack: true,
	})
	m.game = &model
	m.state = stateGame
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.game = &gm
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateGame:
		return m.game.View()
	case stateLevels:
		return m.levels.View()
	case stateProgress:
		return m.progress.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	_, err := NewProgram(NewSessionModel(store, cfg, "local", logger)).Run()
	return err
}
