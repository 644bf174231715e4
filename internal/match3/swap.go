package match3

// IsAdjacent reports whether a and b share an edge.
func IsAdjacent(a, b Cell) bool {
	return a.Manhattan(b) == 1
}

// CanSwap reports whether the pieces at a and b may be exchanged: the cells
// must be adjacent, both occupied, and neither an obstacle.
func (b *Board) CanSwap(a, c Cell) bool {
	if !IsAdjacent(a, c) {
		return false
	}
	if b.PieceAt(a.X, a.Y) == nil || b.PieceAt(c.X, c.Y) == nil {
		return false
	}
	return !b.IsObstacle(a.X, a.Y) && !b.IsObstacle(c.X, c.Y)
}

// Swap is an exchange of two adjacent cells.
type Swap struct {
	A Cell
	B Cell
}

func (s Swap) String() string {
	return s.A.String() + "<->" + s.B.String()
}

// FindSwaps lists every legal swap that would produce a match, scanning
// cells in fill order and trying the right and upper neighbour of each.
// The board is left as it was found.
func (d *Detector) FindSwaps() []Swap {
	var out []Swap
	b := d.board
	for _, a := range b.Cells() {
		for _, c := range []Cell{a.Add(1, 0), a.Add(0, 1)} {
			if !b.CanSwap(a, c) {
				continue
			}
			b.exchange(a, c)
			hit := !d.MatchesAt(a.X, a.Y).Empty() || !d.MatchesAt(c.X, c.Y).Empty()
			b.exchange(a, c)
			if hit {
				out = append(out, Swap{A: a, B: c})
			}
		}
	}
	return out
}
