package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles of the menus and the progress board.
type Theme struct {
	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuControls    lipgloss.Style

	// Level picker markers
	Solved   lipgloss.Style
	Unsolved lipgloss.Style

	// Progress board
	BoardTitle  lipgloss.Style
	BoardBorder lipgloss.Style
	BoardEmpty  lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuControls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		Solved:   lipgloss.NewStyle().Foreground(lipgloss.Color("83")), // Goal green
		Unsolved: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

		BoardTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true).MarginBottom(1),
		BoardBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		BoardEmpty:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Bold(true).Underline(true)
	theme.Solved = lipgloss.NewStyle().Bold(true)
	return theme
}

// Global theme variable (can be changed at runtime)
var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// CurrentTheme returns the current global theme.
func CurrentTheme() Theme {
	return currentTheme
}
