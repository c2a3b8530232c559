package board

// DefaultForkChannels is the channel mask a Fork is placed with.
const DefaultForkChannels = SideBottom | SideLeft

// Tile is one bead of the board and its typed state.
// Which fields are meaningful depends on Kind:
//   - Strength: every kind; fixed for Light, derived for the rest
//   - Open: Valve and PoweredValve
//   - Powered: PowerSource
//   - Channels: Fork
type Tile struct {
	Pos      Coord
	Kind     Kind
	Strength int
	Open     bool
	Powered  bool
	Channels Side
}

// NewTile creates a tile of the given kind at pos.
// Lights start at lightStrength, Forks get DefaultForkChannels.
func NewTile(pos Coord, kind Kind, lightStrength int) Tile {
	t := Tile{Pos: pos, Kind: kind}
	switch kind {
	case KindLight:
		t.Strength = lightStrength
	case KindFork:
		t.Channels = DefaultForkChannels
	}
	return t
}

// Lit reports whether the tile carries any light.
func (t *Tile) Lit() bool {
	return t.Strength > 0
}

// Facing reports whether the Fork has its channel open towards d.
// Non-fork tiles face every direction.
func (t *Tile) Facing(d Dir) bool {
	if t.Kind != KindFork {
		return true
	}
	return t.Channels.Has(d.Side())
}

// Rotate turns a Fork's channels a quarter clockwise. Other kinds are unchanged.
func (t *Tile) Rotate() {
	if t.Kind == KindFork {
		t.Channels = t.Channels.Rotate()
	}
}
