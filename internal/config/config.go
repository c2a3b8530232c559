// Package config provides YAML-based configuration loading for lightpath.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-lightpath/internal/core"
)

// LightpathConfig contains all configuration for the lightpath game.
type LightpathConfig struct {
	Engine     EngineConfig     `yaml:"engine"`
	View       ViewConfig       `yaml:"view"`
	Completion CompletionConfig `yaml:"completion"`
	World      WorldConfig      `yaml:"world"`
	Palette    PaletteConfig    `yaml:"palette"`
}

// EngineConfig defines propagation parameters.
type EngineConfig struct {
	MaxStrength int `yaml:"max_strength"` // Strength of every placed light
}

// ViewConfig defines the bead canvas geometry.
type ViewConfig struct {
	GridSize    int `yaml:"grid_size"`    // World canvas edge in beads
	LevelSize   int `yaml:"level_size"`   // Playable window edge in beads
	LevelOffset int `yaml:"level_offset"` // Beads between canvas edge and window
	Stride      int `yaml:"stride"`       // Tiles scrolled per navigation step
	BeadWidth   int `yaml:"bead_width"`   // Terminal columns per bead
	BeadHeight  int `yaml:"bead_height"`  // Terminal rows per bead
}

// CompletionConfig defines the deferred check and the solved fade.
type CompletionConfig struct {
	DelayMS   int `yaml:"delay_ms"`   // Delay before the deferred completion check
	FadeTicks int `yaml:"fade_ticks"` // Ticks to fade a solved level to white
}

// Delay returns the deferred check delay as a duration.
func (c CompletionConfig) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// WorldConfig defines the world map start view and goal.
type WorldConfig struct {
	StartX int         `yaml:"start_x"`
	StartY int         `yaml:"start_y"`
	Goal   *core.Point `yaml:"goal,omitempty"`
	Map    string      `yaml:"map,omitempty"` // Optional world file replacing the built-in map
}

// PaletteConfig holds colors as "#rrggbb" strings.
type PaletteConfig struct {
	Wall               string `yaml:"wall"`
	Unlit              string `yaml:"unlit"`
	PowerSource        string `yaml:"power_source"`
	PoweredSource      string `yaml:"powered_source"`
	Light              string `yaml:"light"`
	ValveBorder        string `yaml:"valve_border"`
	PoweredValveBorder string `yaml:"powered_valve_border"`
	ForkBorder         string `yaml:"fork_border"`
	Frame              string `yaml:"frame"`
	Arrow              string `yaml:"arrow"`
	ArrowOff           string `yaml:"arrow_off"`
	Goal               string `yaml:"goal"`
	Solved             string `yaml:"solved"`
	Cursor             string `yaml:"cursor"`
}

// Palette is the parsed form of PaletteConfig.
type Palette struct {
	Wall               core.RGB
	Unlit              core.RGB
	PowerSource        core.RGB
	PoweredSource      core.RGB
	Light              core.RGB
	ValveBorder        core.RGB
	PoweredValveBorder core.RGB
	ForkBorder         core.RGB
	Frame              core.RGB
	Arrow              core.RGB
	ArrowOff           core.RGB
	Goal               core.RGB
	Solved             core.RGB
	Cursor             core.RGB
}

// Parse converts every color string. All invalid entries are reported.
func (p PaletteConfig) Parse() (Palette, error) {
	var out Palette
	var errs []error
	parse := func(name, value string, dst *core.RGB) {
		c, err := core.ParseRGB(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("palette.%s: %w", name, err))
			return
		}
		*dst = c
	}
	parse("wall", p.Wall, &out.Wall)
	parse("unlit", p.Unlit, &out.Unlit)
	parse("power_source", p.PowerSource, &out.PowerSource)
	parse("powered_source", p.PoweredSource, &out.PoweredSource)
	parse("light", p.Light, &out.Light)
	parse("valve_border", p.ValveBorder, &out.ValveBorder)
	parse("powered_valve_border", p.PoweredValveBorder, &out.PoweredValveBorder)
	parse("fork_border", p.ForkBorder, &out.ForkBorder)
	parse("frame", p.Frame, &out.Frame)
	parse("arrow", p.Arrow, &out.Arrow)
	parse("arrow_off", p.ArrowOff, &out.ArrowOff)
	parse("goal", p.Goal, &out.Goal)
	parse("solved", p.Solved, &out.Solved)
	parse("cursor", p.Cursor, &out.Cursor)
	return out, errors.Join(errs...)
}

// Validate checks value ranges.
func (c LightpathConfig) Validate() error {
	var errs []error
	if c.Engine.MaxStrength < 1 {
		errs = append(errs, fmt.Errorf("engine.max_strength must be positive, got %d", c.Engine.MaxStrength))
	}
	if c.View.LevelSize < 1 {
		errs = append(errs, fmt.Errorf("view.level_size must be positive, got %d", c.View.LevelSize))
	}
	if c.View.LevelOffset < 0 {
		errs = append(errs, fmt.Errorf("view.level_offset must not be negative, got %d", c.View.LevelOffset))
	}
	if c.View.GridSize < c.View.LevelSize+2*c.View.LevelOffset {
		errs = append(errs, fmt.Errorf("view.grid_size %d cannot hold level_size %d with offset %d",
			c.View.GridSize, c.View.LevelSize, c.View.LevelOffset))
	}
	if c.View.Stride < 1 {
		errs = append(errs, fmt.Errorf("view.stride must be positive, got %d", c.View.Stride))
	}
	if c.View.BeadWidth < 1 || c.View.BeadHeight < 1 {
		errs = append(errs, fmt.Errorf("view.bead_width and bead_height must be positive"))
	}
	if c.Completion.DelayMS < 0 || c.Completion.FadeTicks < 0 {
		errs = append(errs, fmt.Errorf("completion values must not be negative"))
	}
	if _, err := c.Palette.Parse(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
