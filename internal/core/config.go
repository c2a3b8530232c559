package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Simulation ticks per second (default 60)
	ConfigPath string // Optional path to a game config YAML
	LevelsPath string // Optional level pack or world file overriding the built-in data
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Level    string // Current level or region label
	Solved   bool   // Whether the current level is solved
	GameOver bool   // Whether every level has been solved
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Recheck asks the platform to call the game's deferred completion
	// check after RecheckAfter. Set when the board changed this tick.
	Recheck      bool
	RecheckAfter time.Duration
}

// EventReporter receives fire-and-forget progress signals such as
// "level_complete", "game_complete" and "shutdown".
// Implementations must never fail gameplay; errors are theirs to swallow.
type EventReporter interface {
	ReportEvent(name, value string)
}

// NopReporter discards every event.
type NopReporter struct{}

// ReportEvent implements EventReporter.
func (NopReporter) ReportEvent(string, string) {}
