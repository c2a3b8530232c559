package board

import "github.com/zyedidia/generic/mapset"

// Engine computes the steady-state illumination of a grid.
// Every Run starts from scratch; nothing is carried between passes.
type Engine struct {
	MaxStrength int // Upper bound for any strength, and the strength of placed lights
}

// Result summarises one propagation pass.
type Result struct {
	Lit     int               // Tiles with positive strength, lights included
	Powered mapset.Set[Coord] // Power sources activated during the pass
	Visits  int               // Strength updates performed
}

// pass holds the state of a single Run. It borrows the grid and is dropped
// when Run returns.
type pass struct {
	grid    *Grid
	max     int
	powered mapset.Set[Coord]
	visits  int
}

// Run resets the grid and illuminates it from every Light tile.
//
// Light of strength S moves to an orthogonal neighbour only when the
// neighbour conducts from that side and its strength is strictly below S-1.
// The strict guard is what makes the recursion terminate on cycles, and it
// leaves every tile at MaxStrength minus its shortest conductive distance.
func (e Engine) Run(g *Grid) Result {
	p := &pass{
		grid:    g,
		max:     e.MaxStrength,
		powered: mapset.New[Coord](),
	}
	p.reset()

	for _, pos := range g.Lights() {
		p.illuminate(pos)
	}

	return Result{
		Lit:     g.LitCount(),
		Powered: p.powered,
		Visits:  p.visits,
	}
}

// NewLight returns a Light tile at pos with the engine's strength.
func (e Engine) NewLight(pos Coord) Tile {
	return NewTile(pos, KindLight, e.MaxStrength)
}

// reset clears derived state. Closing powered valves here is the only way
// they ever close.
func (p *pass) reset() {
	for _, t := range p.grid.Cells {
		if t == nil {
			continue
		}
		switch t.Kind {
		case KindLight:
			if p.max > 0 && t.Strength > p.max {
				t.Strength = p.max
			}
			continue
		case KindPowerSource:
			t.Powered = false
		case KindPoweredValve:
			t.Open = false
		}
		t.Strength = 0
	}
}

// illuminate spreads the strength of the tile at pos to its neighbours.
func (p *pass) illuminate(pos Coord) {
	src := p.grid.Get(pos)
	if src == nil || src.Strength <= 0 {
		return
	}
	next := src.Strength - 1

	for _, d := range neighborOrder {
		if !src.Facing(d) {
			continue
		}
		n := p.grid.Get(pos.Step(d))
		if n == nil {
			continue
		}
		if n.Kind == KindPowerSource {
			p.power(n)
			continue
		}
		if !Conducts(n, d.Opposite()) || n.Strength >= next {
			continue
		}
		n.Strength = next
		p.visits++
		p.illuminate(n.Pos)
	}
}

// power activates a power source and forces its adjacent powered valves
// open. A source powers up at most once per pass, which bounds the
// re-illumination below.
func (p *pass) power(src *Tile) {
	if src.Powered {
		return
	}
	src.Powered = true
	p.powered.Put(src.Pos)

	for _, d := range neighborOrder {
		valve := p.grid.Get(src.Pos.Step(d))
		if valve == nil || valve.Kind != KindPoweredValve {
			continue
		}
		valve.Open = true

		// Re-light through the valve from the first lit neighbour.
		for _, vd := range neighborOrder {
			n := p.grid.Get(valve.Pos.Step(vd))
			if n != nil && n.Lit() {
				p.illuminate(n.Pos)
				break
			}
		}
	}
}
