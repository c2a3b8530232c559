package board

// Grid is a rectangular board of tiles.
// Cells are stored in row-major order: index = y*W + x. A nil cell is a wall,
// and so is every position outside the grid.
type Grid struct {
	W     int     // Width of the grid
	H     int     // Height of the grid
	Cells []*Tile // Flat array of cells, length W*H
}

// NewGrid creates an all-wall grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]*Tile, w*h),
	}
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Get returns the tile at the given coordinate, or nil for walls and
// out-of-bounds positions. The returned tile may be mutated in place.
func (g *Grid) Get(c Coord) *Tile {
	if !g.InBounds(c) {
		return nil
	}
	return g.Cells[g.index(c)]
}

// Kind returns the kind at c; walls and out-of-bounds report KindWall.
func (g *Grid) Kind(c Coord) Kind {
	if t := g.Get(c); t != nil {
		return t.Kind
	}
	return KindWall
}

// Set places a copy of t at c. Placing a wall clears the cell.
// Out-of-bounds coordinates are silently ignored.
func (g *Grid) Set(c Coord, t Tile) {
	if !g.InBounds(c) {
		return
	}
	if t.Kind == KindWall {
		g.Cells[g.index(c)] = nil
		return
	}
	t.Pos = c
	g.Cells[g.index(c)] = &t
}

// Neighbors4 returns the in-bounds orthogonal neighbours of c in the
// fixed order -x, +x, -y, +y. Diagonals are never included.
func (g *Grid) Neighbors4(c Coord) []Coord {
	out := make([]Coord, 0, 4)
	for _, d := range neighborOrder {
		n := c.Step(d)
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Tiles returns every non-wall tile in row-major order.
func (g *Grid) Tiles() []*Tile {
	out := make([]*Tile, 0)
	for _, t := range g.Cells {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Lights returns the positions of every Light tile in row-major order.
func (g *Grid) Lights() []Coord {
	out := make([]Coord, 0)
	for _, t := range g.Cells {
		if t != nil && t.Kind == KindLight {
			out = append(out, t.Pos)
		}
	}
	return out
}

// LitCount returns the number of tiles with positive strength.
func (g *Grid) LitCount() int {
	count := 0
	for _, t := range g.Cells {
		if t != nil && t.Lit() {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := NewGrid(g.W, g.H)
	for i, t := range g.Cells {
		if t != nil {
			cp := *t
			clone.Cells[i] = &cp
		}
	}
	return clone
}

// Equal returns true if two grids have the same dimensions and tile state.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, t := range g.Cells {
		o := other.Cells[i]
		if (t == nil) != (o == nil) {
			return false
		}
		if t != nil && *t != *o {
			return false
		}
	}
	return true
}

// Sub copies the w x h window starting at origin into a new grid with local
// coordinates. Cells outside g become walls.
func (g *Grid) Sub(origin Coord, w, h int) *Grid {
	sub := NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if t := g.Get(origin.Add(x, y)); t != nil {
				sub.Set(C(x, y), *t)
			}
		}
	}
	return sub
}
