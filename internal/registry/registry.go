// Package registry maps mode IDs to game factories. Modes register from
// init so the platform can list and start them by name.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lightpath/internal/core"
)

// Game is a puzzle mode driven by the platform at a fixed tick.
// Implementations hold pure state; input mapping, timing and drawing to
// the terminal belong to the platform.
type Game interface {
	// ID is the stable mode name used on the command line and in storage.
	ID() string
	Title() string

	// Reset (re)loads the mode for the given runtime configuration.
	Reset(cfg core.RuntimeConfig)

	// Step consumes one tick of input.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Optional capabilities. The platform type-asserts for these.
type (
	// Rechecker runs the completion check deferred by StepResult.RecheckAfter.
	Rechecker interface {
		Recheck() core.StepResult
	}

	// Reloader rereads level data in place, keeping the current level.
	Reloader interface {
		Reload() error
	}

	// Resizer adapts to a new screen without a Reset.
	Resizer interface {
		Resize(width, height int)
	}

	// StartLevelSetter picks the 1-indexed level the next Reset loads.
	// Zero means the first level.
	StartLevelSetter interface {
		SetStartLevel(level int)
	}

	ReporterSetter interface {
		SetReporter(r core.EventReporter)
	}

	LoggerSetter interface {
		SetLogger(l *log.Logger)
	}
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("unknown game")

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory returns a fresh game instance.
type Factory func() Game

type entry struct {
	title   string
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a mode. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{title: f().Title(), factory: f}
}

// List returns every registered mode ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create builds a new instance of the mode id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
