package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lightpath/internal/core"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath"
	"github.com/vovakirdan/tui-lightpath/internal/registry"
	"github.com/vovakirdan/tui-lightpath/internal/storage"
)

const (
	sidebarMinWidth = 80
	sidebarWidth    = 24
	stampLayout     = "Jan 02 15:04"
)

// ProgressKeyMap holds the progress board bindings.
type ProgressKeyMap struct {
	Up, Down   key.Binding
	Next, Prev key.Binding
	Back, Quit key.Binding
}

func (k ProgressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

func (k ProgressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Back, k.Quit}}
}

func DefaultProgressKeyMap() ProgressKeyMap {
	return ProgressKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next mode")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev mode")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// levelRow is one line of the board: a known level, merged with its
// stored progress when it has been solved.
type levelRow struct {
	id, name string
	progress *storage.LevelProgress
}

// ProgressModel shows, per mode, which levels have been lit.
type ProgressModel struct {
	modes    []registry.GameInfo
	cursor   int
	store    *storage.Store
	config   core.RuntimeConfig
	rows     []levelRow
	stats    *storage.GameStats
	table    table.Model
	help     help.Model
	keys     ProgressKeyMap
	theme    Theme
	quitting bool
	back     bool
}

// NewProgressModel builds the board for the first mode. store may be nil.
func NewProgressModel(store *storage.Store, cfg core.RuntimeConfig) ProgressModel {
	m := ProgressModel{
		modes:  registry.List(),
		store:  store,
		config: cfg,
		keys:   DefaultProgressKeyMap(),
		help:   help.New(),
		theme:  CurrentTheme(),
	}
	m.help.Width = cfg.ScreenW
	m.table = m.newTable()
	m.load()
	return m
}

func (m *ProgressModel) newTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "", Width: 2},
			{Title: "Level", Width: 20},
			{Title: "Solves", Width: 6},
			{Title: "Last lit", Width: 13},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.config.ScreenH-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// load merges the mode's level list with its stored progress. Solved
// levels that no longer exist in the pack are listed after the known ones.
func (m *ProgressModel) load() {
	m.rows, m.stats = nil, nil
	if len(m.modes) == 0 {
		m.table.SetRows(nil)
		return
	}
	id := m.modes[m.cursor].ID

	solved := map[string]*storage.LevelProgress{}
	var order []string
	if m.store != nil {
		if progress, err := m.store.Progress(id); err == nil {
			for i := range progress {
				p := &progress[i]
				solved[p.LevelID] = p
				order = append(order, p.LevelID)
			}
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}

	levels, _ := lightpath.ListLevels(id, m.config)
	seen := map[string]bool{}
	for _, l := range levels {
		m.rows = append(m.rows, levelRow{id: l.ID, name: l.Name, progress: solved[l.ID]})
		seen[l.ID] = true
	}
	for _, lid := range order {
		if !seen[lid] {
			m.rows = append(m.rows, levelRow{id: lid, name: lid, progress: solved[lid]})
		}
	}

	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		mark, count, last := "·", "", ""
		if r.progress != nil {
			mark = "★"
			count = strconv.Itoa(r.progress.Completions)
			last = r.progress.LastSolved.Local().Format(stampLayout)
		}
		rows[i] = table.Row{mark, r.name, count, last}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m ProgressModel) Init() tea.Cmd {
	return nil
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ProgressModel) step(delta int) {
	if n := len(m.modes); n > 0 {
		m.cursor = (m.cursor + delta + n) % n
		m.load()
	}
}

func (m ProgressModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	title := "PROGRESS"
	if len(m.modes) > 0 {
		title += " - " + m.modes[m.cursor].Title
	}

	var body string
	if len(m.rows) == 0 {
		body = m.theme.BoardEmpty.Render("No levels solved yet.\nLight a goal to record progress!")
	} else {
		body = m.table.View()
	}
	body = m.theme.BoardBorder.Render(body)
	if m.config.ScreenW >= sidebarMinWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", body)
	} else {
		body = centerText(body, m.config.ScreenW)
	}

	return strings.Join([]string{
		centerText(m.theme.BoardTitle.Render(title), m.config.ScreenW),
		"",
		body,
		m.theme.MenuDescription.Render(m.summary()),
		helpStyle.Render(m.help.View(m.keys)),
	}, "\n")
}

func (m ProgressModel) sidebar() string {
	lines := []string{"Modes", strings.Repeat("-", sidebarWidth-4)}
	for i, g := range m.modes {
		name := []rune(g.Title)
		if limit := sidebarWidth - 6; len(name) > limit {
			name = append(name[:limit-1], '.')
		}
		if i == m.cursor {
			lines = append(lines, m.theme.MenuItemActive.Render("> "+string(name)))
		} else {
			lines = append(lines, m.theme.MenuItemNormal.Render("  "+string(name)))
		}
	}
	return m.theme.BoardBorder.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

// summary reports lit levels against the pack size and the run counters.
func (m ProgressModel) summary() string {
	lit := 0
	for _, r := range m.rows {
		if r.progress != nil {
			lit++
		}
	}
	parts := []string{"Lit: " + strconv.Itoa(lit) + "/" + strconv.Itoa(len(m.rows))}
	if m.stats != nil {
		parts = append(parts,
			"Runs: "+strconv.Itoa(m.stats.Runs),
			"Finished: "+strconv.Itoa(m.stats.Finished))
		if !m.stats.LastPlayed.IsZero() {
			parts = append(parts, "Last played: "+m.stats.LastPlayed.Local().Format(stampLayout))
		}
	}
	return strings.Join(parts, "  |  ")
}

func (m ProgressModel) IsGoingBack() bool { return m.back }
func (m ProgressModel) IsQuitting() bool  { return m.quitting }
