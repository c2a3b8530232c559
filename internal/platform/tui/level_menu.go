package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath"
)

const levelControls = "↑/↓: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit"

// LevelSelection is the picked start level. 0 plays from the first level.
type LevelSelection struct {
	Level int
}

// SolvedFunc reports whether levelID of gameID has been lit before.
type SolvedFunc func(gameID, levelID string) bool

// LevelMenuModel picks the start level of a pack mode. Row 0 starts from
// the beginning; row i starts at level i.
type LevelMenuModel struct {
	gameID   string
	title    string
	levels   []lightpath.LevelInfo
	solved   SolvedFunc
	theme    Theme
	width    int
	height   int
	cursor   int
	offset   int // first visible row
	picked   *LevelSelection
	quitting bool
	back     bool
}

// NewLevelMenuModel builds the picker. solved may be nil.
func NewLevelMenuModel(gameID, title string, levels []lightpath.LevelInfo, solved SolvedFunc, width, height int) LevelMenuModel {
	if solved == nil {
		solved = func(string, string) bool { return false }
	}
	return LevelMenuModel{
		gameID: gameID,
		title:  title,
		levels: levels,
		solved: solved,
		theme:  CurrentTheme(),
		width:  width,
		height: height,
	}
}

func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionBack:
			m.back = true
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, len(m.levels))
		case MenuActionSelect:
			m.picked = &LevelSelection{Level: m.cursor}
		}
	}
	m.scroll()
	return m, nil
}

// rows is the number of rows the window shows, the start row included.
func (m LevelMenuModel) rows() int {
	return max(m.height-10, 3)
}

// scroll keeps the cursor inside the visible window.
func (m *LevelMenuModel) scroll() {
	n := m.rows()
	m.offset = min(m.offset, m.cursor)
	if m.cursor >= m.offset+n {
		m.offset = m.cursor - n + 1
	}
}

func (m LevelMenuModel) row(i int) string {
	label := "Start from the beginning"
	mark := ""
	if i > 0 {
		lvl := m.levels[i-1]
		label = fmt.Sprintf("%2d. %s", i, lvl.Name)
		mark = " " + m.theme.Unsolved.Render("○")
		if m.solved(m.gameID, lvl.ID) {
			mark = " " + m.theme.Solved.Render("●")
		}
	}
	if i == m.cursor {
		return m.theme.MenuItemActive.Render("> "+label) + mark
	}
	return m.theme.MenuItemNormal.Render("  "+label) + mark
}

func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	center := func(s string) string { return centerText(s, m.width) }
	hint := func(s string) string { return center(m.theme.MenuDescription.Render(s)) }

	lines := []string{
		"",
		center(m.theme.MenuTitle.Render(strings.ToUpper(m.title))),
		"",
		hint("Select a level:"),
		"",
	}
	if len(m.levels) == 0 {
		lines = append(lines, hint("No levels found"))
	}

	end := min(m.offset+m.rows(), len(m.levels)+1)
	if m.offset > 0 {
		lines = append(lines, hint("... more above ..."))
	}
	for i := m.offset; i < end; i++ {
		lines = append(lines, center(m.row(i)))
	}
	if end <= len(m.levels) {
		lines = append(lines, hint("... more below ..."))
	}

	lines = append(lines, "", center(m.theme.MenuControls.Render(levelControls)), "")
	return strings.Join(lines, "\n")
}

// Selected returns the pick, or nil while still choosing.
func (m LevelMenuModel) Selected() *LevelSelection { return m.picked }

func (m LevelMenuModel) IsQuitting() bool { return m.quitting }
func (m LevelMenuModel) WantsBack() bool  { return m.back }
