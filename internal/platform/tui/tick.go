// Package tui provides the Bubble Tea integration for the lightpath platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// RecheckMsg asks the game to run its deferred completion check.
type RecheckMsg struct{}

// ReloadMsg asks the game to reload its data files.
// Sent by file watchers from outside the update loop.
type ReloadMsg struct{}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// recheckCmd delivers a RecheckMsg after d.
func recheckCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return RecheckMsg{}
	})
}
