package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lightpath/internal/core"
	"github.com/vovakirdan/tui-lightpath/internal/registry"
)

// EventShutdown is reported when the player quits.
const EventShutdown = "shutdown"

// helpHeight is the number of rows reserved under the game for the help line.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// ModelOptions configures a game Model.
type ModelOptions struct {
	Reporter  core.EventReporter // Progress sink; nil discards events
	Logger    *log.Logger        // nil discards logs
	AllowBack bool               // Esc leaves the game instead of being ignored
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	reporter   core.EventReporter
	log        *log.Logger
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	allowBack  bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	if opts.Reporter == nil {
		opts.Reporter = core.NopReporter{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		config:     cfg,
		reporter:   opts.Reporter,
		log:        opts.Logger,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		allowBack:  opts.AllowBack,
	}
}

func gameHeight(h int) int {
	return max(h-helpHeight, 1)
}

// gameConfig is the runtime config the game sees, minus the help line.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	return cfg
}

// Init wires optional capabilities and starts the game.
func (m Model) Init() tea.Cmd {
	if rs, ok := m.game.(registry.ReporterSetter); ok {
		rs.SetReporter(m.reporter)
	}
	if ls, ok := m.game.(registry.LoggerSetter); ok {
		ls.SetLogger(m.log)
	}
	m.game.Reset(m.gameConfig())
	m.log.Info("game started", "game", m.game.ID())

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case RecheckMsg:
		if rc, ok := m.game.(registry.Rechecker); ok {
			m.gameState = rc.Recheck().State
		}
		return m, nil

	case ReloadMsg:
		if rl, ok := m.game.(registry.Reloader); ok {
			if err := rl.Reload(); err != nil {
				m.log.Warn("reload failed", "game", m.game.ID(), "err", err)
			} else {
				m.log.Info("reloaded", "game", m.game.ID())
			}
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.allowBack {
			m.backToMenu = true
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.reporter.ReportEvent(EventShutdown, m.game.ID())
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width

	if rs, ok := m.game.(registry.Resizer); ok {
		rs.Resize(msg.Width, gameHeight(msg.Height))
	} else {
		m.game.Reset(m.gameConfig())
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if result.Recheck {
		cmds = append(cmds, recheckCmd(result.RecheckAfter))
	}
	return m, tea.Batch(cmds...)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".lightpath", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("screenshot failed", "err", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the last known game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// NewProgram wraps a model in a full-screen program with mouse support.
// Callers may Send ReloadMsg to it from other goroutines.
func NewProgram(model tea.Model, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}, opts...)
	return tea.NewProgram(model, opts...)
}
