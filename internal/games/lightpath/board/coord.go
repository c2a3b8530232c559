package board

import "fmt"

// Coord is a grid position. Y grows downward.
type Coord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func C(x, y int) Coord { return Coord{X: x, Y: y} }

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Add offsets c by (dx, dy).
func (c Coord) Add(dx, dy int) Coord { return C(c.X+dx, c.Y+dy) }

func (c Coord) AddCoord(o Coord) Coord { return c.Add(o.X, o.Y) }
func (c Coord) Sub(o Coord) Coord      { return c.Add(-o.X, -o.Y) }

// Step moves one cell toward d.
func (c Coord) Step(d Dir) Coord {
	return c.Add(d.Delta())
}
