// Package board provides the tile grid and light propagation for the lightpath puzzle.
// This package is UI-agnostic and deterministic.
package board

// Dir represents one of the four orthogonal directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// neighborOrder is the fixed visiting order for neighbours: -x, +x, -y, +y.
// Power-up re-illumination depends on it, so it must not change.
var neighborOrder = [4]Dir{DirLeft, DirRight, DirUp, DirDown}

// Dirs returns the four directions in neighbour order (-x, +x, -y, +y).
func Dirs() [4]Dir {
	return neighborOrder
}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return d
	}
}

// Side returns the tile side that faces direction d.
func (d Dir) Side() Side {
	switch d {
	case DirUp:
		return SideTop
	case DirRight:
		return SideRight
	case DirDown:
		return SideBottom
	case DirLeft:
		return SideLeft
	default:
		return 0
	}
}

// ParseDir converts "up", "right", "down" or "left" to a Dir.
func ParseDir(s string) (Dir, bool) {
	switch s {
	case "up", "top", "north":
		return DirUp, true
	case "right", "east":
		return DirRight, true
	case "down", "bottom", "south":
		return DirDown, true
	case "left", "west":
		return DirLeft, true
	default:
		return DirUp, false
	}
}

// Side is a 4-bit mask over the sides of a tile.
// It is used both as a Fork channel mask and as a border mask.
type Side uint8

const (
	SideTop Side = 1 << iota
	SideRight
	SideBottom
	SideLeft

	SideNone Side = 0
	SideAll       = SideTop | SideRight | SideBottom | SideLeft
)

// Has reports whether every side in o is set.
func (s Side) Has(o Side) bool {
	return o != 0 && s&o == o
}

// Rotate turns the mask a quarter clockwise: top->right->bottom->left->top.
func (s Side) Rotate() Side {
	s &= SideAll
	return (s<<1 | s>>3) & SideAll
}

// String lists the set sides, e.g. "top|right".
func (s Side) String() string {
	if s&SideAll == 0 {
		return "none"
	}
	out := ""
	for _, part := range []struct {
		side Side
		name string
	}{{SideTop, "top"}, {SideRight, "right"}, {SideBottom, "bottom"}, {SideLeft, "left"}} {
		if s.Has(part.side) {
			if out != "" {
				out += "|"
			}
			out += part.name
		}
	}
	return out
}

// Kind identifies the type of a tile.
type Kind uint8

const (
	KindWall Kind = iota
	KindPath
	KindValve
	KindPoweredValve
	KindPowerSource
	KindLight
	KindFork
	kindCount // Sentinel value for iteration
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindPath:
		return "path"
	case KindValve:
		return "valve"
	case KindPoweredValve:
		return "powered-valve"
	case KindPowerSource:
		return "power-source"
	case KindLight:
		return "light"
	case KindFork:
		return "fork"
	default:
		return "unknown"
	}
}

// Char returns the map character for the kind. Walls map to '.'.
func (k Kind) Char() rune {
	switch k {
	case KindPath:
		return 'P'
	case KindValve:
		return 'V'
	case KindPoweredValve:
		return 'G'
	case KindPowerSource:
		return 'S'
	case KindLight:
		return 'L'
	case KindFork:
		return 'F'
	default:
		return '.'
	}
}

// KindFromChar maps a world-file character to a kind.
// Any unknown character, including space, is a wall.
func KindFromChar(r rune) Kind {
	switch r {
	case 'L':
		return KindLight
	case 'P':
		return KindPath
	case 'V':
		return KindValve
	case 'G':
		return KindPoweredValve
	case 'S':
		return KindPowerSource
	case 'F':
		return KindFork
	default:
		return KindWall
	}
}
