package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-lightpath/internal/core"
)

//go:embed defaults/lightpath.yaml
var defaultLightpathYAML []byte

// DefaultLightpathConfig returns the default lightpath configuration.
func DefaultLightpathConfig() LightpathConfig {
	return LightpathConfig{
		Engine: EngineConfig{
			MaxStrength: 252,
		},
		View: ViewConfig{
			GridSize:    16,
			LevelSize:   12,
			LevelOffset: 2,
			Stride:      12,
			BeadWidth:   4,
			BeadHeight:  2,
		},
		Completion: CompletionConfig{
			DelayMS:   1000,
			FadeTicks: 120,
		},
		World: WorldConfig{
			StartX: 0,
			StartY: 24,
			Goal:   &core.Point{X: 55, Y: 31},
		},
		Palette: PaletteConfig{
			Wall:               "#000000",
			Unlit:              "#333333",
			PowerSource:        "#ff0000",
			PoweredSource:      "#ff8080",
			Light:              "#ffffff",
			ValveBorder:        "#8a8a8a",
			PoweredValveBorder: "#ff0000",
			ForkBorder:         "#550000",
			Frame:              "#303030",
			Arrow:              "#ffff00",
			ArrowOff:           "#303030",
			Goal:               "#5fff5f",
			Solved:             "#ffffff",
			Cursor:             "#00d7ff",
		},
	}
}
