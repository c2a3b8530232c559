package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lightpath/internal/core"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath"
	"github.com/vovakirdan/tui-lightpath/internal/registry"
)

const (
	menuTitle    = "L I G H T P A T H"
	menuTagline  = "Guide the light to the goal"
	menuControls = "↑/↓: Navigate  |  Enter: Select  |  Tab: Progress  |  Q: Quit"
)

// MenuItem is one playable mode.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Badge       string // e.g. "3 lit"; empty without progress
}

var modeDescriptions = map[string]string{
	lightpath.IDSequence: "Independent puzzles, one goal each",
	lightpath.IDWorld:    "One large map seen through a scrolling window",
	lightpath.IDChain:    "Linked rooms; light leaving one enters the next",
}

// MenuModel picks a mode. Selecting or asking for the progress board
// only records the choice; the session reacts to it.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	theme    Theme
	quitting bool
	selected *MenuItem
	progress bool
}

// NewMenuModel lists every registered mode. badge may be nil.
func NewMenuModel(cfg core.RuntimeConfig, badge func(gameID string) string) MenuModel {
	m := MenuModel{width: cfg.ScreenW, theme: CurrentTheme()}
	for _, g := range registry.List() {
		item := MenuItem{GameID: g.ID, Title: g.Title, Description: modeDescriptions[g.ID]}
		if badge != nil {
			item.Badge = badge(g.ID)
		}
		m.items = append(m.items, item)
	}
	return m
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		n := len(m.items)
		switch MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, max(n-1, 0))
		case MenuActionSelect:
			if n > 0 {
				item := m.items[m.cursor]
				m.selected = &item
			}
		case MenuActionProgress:
			m.progress = true
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	center := func(s string) string { return centerText(s, m.width) }
	lines := []string{
		"",
		center(m.theme.MenuTitle.Render(menuTitle)),
		"",
		center(m.theme.MenuDescription.Render(menuTagline)),
		"",
	}
	for i, item := range m.items {
		style, cursor := m.theme.MenuItemNormal, "  "
		if i == m.cursor {
			style, cursor = m.theme.MenuItemActive, "> "
		}
		line := style.Render(cursor + item.Title)
		if item.Badge != "" {
			line += "  " + m.theme.Solved.Render(item.Badge)
		}
		lines = append(lines, center(line))
		if i == m.cursor && item.Description != "" {
			lines = append(lines, center(m.theme.MenuDescription.Render(item.Description)))
		}
	}
	lines = append(lines, "", center(m.theme.MenuControls.Render(menuControls)), "")
	return strings.Join(lines, "\n")
}

// Selected returns the chosen mode, or nil.
func (m MenuModel) Selected() *MenuItem { return m.selected }

func (m MenuModel) IsQuitting() bool    { return m.quitting }
func (m MenuModel) WantsProgress() bool { return m.progress }

// centerText pads text to the middle of width by display width.
func centerText(text string, width int) string {
	if pad := (width - lipgloss.Width(text)) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + text
	}
	return text
}
