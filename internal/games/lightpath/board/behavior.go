package board

import "github.com/vovakirdan/tui-lightpath/internal/core"

// Border widths used by the bead canvas.
const (
	ValveClosedBorder = 12
	ValveOpenBorder   = 5
	ForkBorder        = 5
)

// Palette holds the base colors tiles are painted with.
type Palette struct {
	Wall               core.RGB
	Unlit              core.RGB // Path, valves and forks without light
	PowerSource        core.RGB
	PoweredSource      core.RGB
	Light              core.RGB
	ValveBorder        core.RGB
	PoweredValveBorder core.RGB
	ForkBorder         core.RGB
}

// DefaultPalette mirrors the classic bead colors.
func DefaultPalette() Palette {
	return Palette{
		Wall:               0x000000,
		Unlit:              0x333333,
		PowerSource:        0xFF0000,
		PoweredSource:      0xFF8080,
		Light:              0xFFFFFF,
		ValveBorder:        0x8A8A8A,
		PoweredValveBorder: 0xFF0000,
		ForkBorder:         0x550000,
	}
}

// Visual describes how a bead should be drawn.
type Visual struct {
	Color       core.RGB
	Border      Side
	BorderWidth int
	BorderColor core.RGB
}

// behavior is the per-kind dispatch entry. Every function is shared by all
// tiles of the kind; nothing is stored on the tile itself.
type behavior struct {
	// conducts reports whether light arriving through side `from` may enter.
	conducts func(t *Tile, from Dir) bool
	// click applies the player interaction; nil means clicks are ignored.
	click func(t *Tile) bool
	// decorate returns border and base color for the tile's current state.
	decorate func(t *Tile, p Palette) Visual
}

var behaviors = [kindCount]behavior{
	KindWall: {
		conducts: never,
		decorate: func(_ *Tile, p Palette) Visual { return Visual{Color: p.Wall} },
	},
	KindPath: {
		conducts: always,
		decorate: func(_ *Tile, p Palette) Visual { return Visual{Color: p.Unlit} },
	},
	KindValve: {
		conducts: whenOpen,
		click:    toggleValve,
		decorate: func(t *Tile, p Palette) Visual { return valveVisual(t, p.Unlit, p.ValveBorder) },
	},
	KindPoweredValve: {
		conducts: whenOpen,
		decorate: func(t *Tile, p Palette) Visual { return valveVisual(t, p.Unlit, p.PoweredValveBorder) },
	},
	KindPowerSource: {
		conducts: never,
		decorate: func(t *Tile, p Palette) Visual {
			if t.Powered {
				return Visual{Color: p.PoweredSource}
			}
			return Visual{Color: p.PowerSource}
		},
	},
	KindLight: {
		conducts: never,
		decorate: func(_ *Tile, p Palette) Visual { return Visual{Color: p.Light} },
	},
	KindFork: {
		conducts: func(t *Tile, from Dir) bool { return t.Facing(from) },
		click:    rotateFork,
		decorate: func(t *Tile, p Palette) Visual {
			return Visual{Color: p.Unlit, Border: t.Channels, BorderWidth: ForkBorder, BorderColor: p.ForkBorder}
		},
	},
}

func always(*Tile, Dir) bool { return true }
func never(*Tile, Dir) bool  { return false }

func whenOpen(t *Tile, _ Dir) bool { return t.Open }

func toggleValve(t *Tile) bool {
	t.Open = !t.Open
	return true
}

func rotateFork(t *Tile) bool {
	t.Rotate()
	return true
}

func valveVisual(t *Tile, fill, border core.RGB) Visual {
	width := ValveClosedBorder
	if t.Open {
		width = ValveOpenBorder
	}
	return Visual{Color: fill, Border: SideAll, BorderWidth: width, BorderColor: border}
}

func behaviorOf(k Kind) behavior {
	if k >= kindCount {
		return behaviors[KindWall]
	}
	return behaviors[k]
}

// Conducts reports whether t accepts light entering through side `from`
// (the side of t that faces the tile feeding it).
func Conducts(t *Tile, from Dir) bool {
	if t == nil {
		return false
	}
	return behaviorOf(t.Kind).conducts(t, from)
}

// Clickable reports whether the player can interact with tiles of kind k.
func Clickable(k Kind) bool {
	return behaviorOf(k).click != nil
}

// Click applies the player interaction for t's kind and reports whether the
// tile changed. PoweredValves, walls, paths, lights and power sources ignore it.
func Click(t *Tile) bool {
	if t == nil {
		return false
	}
	click := behaviorOf(t.Kind).click
	if click == nil {
		return false
	}
	return click(t)
}

// Decorate returns the visual for t. Lit tiles other than power sources take
// the strength color instead of their base color.
func Decorate(t *Tile, p Palette, maxStrength int) Visual {
	if t == nil {
		return Visual{Color: p.Wall}
	}
	v := behaviorOf(t.Kind).decorate(t, p)
	if t.Kind != KindPowerSource && t.Kind != KindLight && t.Lit() {
		v.Color = StrengthColor(t.Strength, maxStrength, p.Unlit)
	}
	return v
}
