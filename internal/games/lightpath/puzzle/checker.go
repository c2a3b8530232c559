package puzzle

import (
	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-lightpath/internal/core"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/board"
)

// Reported event names.
const (
	EventLevelComplete = "level_complete"
	EventGameComplete  = "game_complete"
)

// levelState is the live, mutable copy of one level.
type levelState struct {
	id     string
	name   string
	grid   *board.Grid
	goal   *board.Coord
	links  map[board.Dir]string
	solved bool
}

func (st *levelState) goalLit() bool {
	if st.goal == nil {
		return false
	}
	t := st.grid.Get(*st.goal)
	return t != nil && t.Lit()
}

type seedKey struct {
	level string
	pos   board.Coord
}

// Checker decides completion and carries light across chained levels.
type Checker struct {
	reporter    core.EventReporter
	log         *log.Logger
	maxStrength int
	seeded      mapset.Set[seedKey]
	finished    bool
}

// NewChecker creates a checker reporting through r.
func NewChecker(r core.EventReporter, logger *log.Logger, maxStrength int) *Checker {
	if r == nil {
		r = core.NopReporter{}
	}
	return &Checker{
		reporter:    r,
		log:         logger,
		maxStrength: maxStrength,
		seeded:      mapset.New[seedKey](),
	}
}

// Check evaluates st and flips it to solved the first time its goal is lit.
// final is consulted only on that flip and decides whether the whole game
// is now complete. Returns true when st flipped in this call.
func (c *Checker) Check(st *levelState, final func() bool) bool {
	if st == nil || st.solved || !st.goalLit() {
		return false
	}
	st.solved = true
	c.log.Info("level complete", "level", st.id)
	c.reporter.ReportEvent(EventLevelComplete, st.id)

	if !c.finished && final() {
		c.finished = true
		c.log.Info("game complete", "level", st.id)
		c.reporter.ReportEvent(EventGameComplete, st.id)
	}
	return true
}

// Finished reports whether game_complete has been reported.
func (c *Checker) Finished() bool {
	return c.finished
}

// Seed places a Light in each linked level for every lit non-light tile on
// the matching border of src. Every seed is placed once and is permanent.
// Returns the number of new seeds.
func (c *Checker) Seed(src *levelState, resolve func(id string) *levelState) int {
	placed := 0
	for _, d := range board.Dirs() {
		id, ok := src.links[d]
		if !ok {
			continue
		}
		dst := resolve(id)
		if dst == nil {
			continue
		}
		for _, from := range borderCells(src.grid, d) {
			t := src.grid.Get(from)
			if t == nil || t.Kind == board.KindLight || !t.Lit() {
				continue
			}
			to := mirror(from, d, dst.grid)
			if !dst.grid.InBounds(to) {
				continue
			}
			key := seedKey{level: dst.id, pos: to}
			if c.seeded.Has(key) {
				continue
			}
			c.seeded.Put(key)
			dst.grid.Set(to, board.NewTile(to, board.KindLight, c.maxStrength))
			placed++
			c.log.Debug("seeded light", "from", src.id, "to", dst.id, "pos", to)
		}
	}
	return placed
}

// Forget drops the seed records targeting level id so they can be placed
// again after the level is restarted.
func (c *Checker) Forget(id string) {
	keep := mapset.New[seedKey]()
	c.seeded.Each(func(k seedKey) {
		if k.level != id {
			keep.Put(k)
		}
	})
	c.seeded = keep
}

// Reset clears every seed record and the finished flag.
func (c *Checker) Reset() {
	c.seeded = mapset.New[seedKey]()
	c.finished = false
}

// borderCells lists the cells of g on the border facing d.
func borderCells(g *board.Grid, d board.Dir) []board.Coord {
	var out []board.Coord
	switch d {
	case board.DirRight, board.DirLeft:
		x := 0
		if d == board.DirRight {
			x = g.W - 1
		}
		for y := 0; y < g.H; y++ {
			out = append(out, board.C(x, y))
		}
	case board.DirUp, board.DirDown:
		y := 0
		if d == board.DirDown {
			y = g.H - 1
		}
		for x := 0; x < g.W; x++ {
			out = append(out, board.C(x, y))
		}
	}
	return out
}

// mirror maps a border cell leaving through d onto the opposite border of dst.
func mirror(from board.Coord, d board.Dir, dst *board.Grid) board.Coord {
	switch d {
	case board.DirRight:
		return board.C(0, from.Y)
	case board.DirLeft:
		return board.C(dst.W-1, from.Y)
	case board.DirUp:
		return board.C(from.X, dst.H-1)
	default:
		return board.C(from.X, 0)
	}
}
