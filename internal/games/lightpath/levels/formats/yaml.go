// Package formats provides pluggable level file format parsers.
package formats

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/board"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Goal     *board.Coord      `yaml:"goal,omitempty"`
	Links    map[string]string `yaml:"links,omitempty"` // Direction -> level ID
	Map      string            `yaml:"map"`
	Open     []board.Coord     `yaml:"open,omitempty"` // Valves that start open
	Forks    []YAMLFork        `yaml:"forks,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLFork overrides the starting channels of a fork.
type YAMLFork struct {
	X        int      `yaml:"x"`
	Y        int      `yaml:"y"`
	Channels []string `yaml:"channels"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Grid     *board.Grid
	Goal     *board.Coord
	Links    map[board.Dir]string
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte, maxStrength int) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if strings.TrimSpace(yl.ID) == "" {
		return Level{}, errors.New("missing id")
	}

	grid, err := ParseText([]byte(yl.Map), maxStrength)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Grid:     grid,
		Goal:     yl.Goal,
		Links:    make(map[board.Dir]string, len(yl.Links)),
		Metadata: yl.Metadata,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}

	if g := level.Goal; g != nil && grid.Get(*g) == nil {
		return Level{}, fmt.Errorf("level %s: goal %v is not a tile", yl.ID, *g)
	}

	for name, target := range yl.Links {
		d, ok := board.ParseDir(strings.ToLower(name))
		if !ok {
			return Level{}, fmt.Errorf("level %s: unknown link direction %q", yl.ID, name)
		}
		level.Links[d] = target
	}

	for _, c := range yl.Open {
		t := grid.Get(c)
		if t == nil || t.Kind != board.KindValve {
			return Level{}, fmt.Errorf("level %s: open %v is not a valve", yl.ID, c)
		}
		t.Open = true
	}

	for _, f := range yl.Forks {
		t := grid.Get(board.C(f.X, f.Y))
		if t == nil || t.Kind != board.KindFork {
			return Level{}, fmt.Errorf("level %s: fork (%d,%d) is not a fork", yl.ID, f.X, f.Y)
		}
		mask, err := parseChannels(f.Channels)
		if err != nil {
			return Level{}, fmt.Errorf("level %s: fork (%d,%d): %w", yl.ID, f.X, f.Y, err)
		}
		t.Channels = mask
	}

	return level, nil
}

func parseChannels(names []string) (board.Side, error) {
	var mask board.Side
	for _, n := range names {
		d, ok := board.ParseDir(strings.ToLower(strings.TrimSpace(n)))
		if !ok {
			return 0, fmt.Errorf("unknown channel %q", n)
		}
		mask |= d.Side()
	}
	return mask, nil
}

// FormatExtensions returns supported level file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
