// Package match3 implements the rules core of a tile-matching puzzle:
// board storage, piece generation, match detection, swap validation and
// the cascade resolver. It has no terminal or rendering dependencies;
// presentation is reached only through the Presenter and Effects interfaces.
package match3

import "fmt"

// Cell is a board coordinate.
// X increases to the right, Y increases upward: row 0 is the floor
// that pieces fall toward.
type Cell struct {
	X int
	Y int
}

// C is a convenience constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Cell offset by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the Manhattan distance to another cell.
func (c Cell) Manhattan(other Cell) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// Direction is a unit step used by ray casts.
type Direction struct {
	DX int
	DY int
}

// Cardinal directions. Up is toward higher rows.
var (
	Left  = Direction{DX: -1}
	Right = Direction{DX: 1}
	Up    = Direction{DY: 1}
	Down  = Direction{DY: -1}
)

// clamped limits each component to {-1, 0, 1}.
func (d Direction) clamped() Direction {
	return Direction{DX: sign(d.DX), DY: sign(d.DY)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
