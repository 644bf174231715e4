package match3

import "strings"

// Snapshot is a value copy of a board, used for comparisons and dumps.
type Snapshot struct {
	Width  int
	Height int
	Values []MatchValue // row-major, ValueNone where empty
	Tiles  []Tile       // row-major
}

// Snapshot captures the current board.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Width:  b.width,
		Height: b.height,
		Values: make([]MatchValue, len(b.pieces)),
		Tiles:  b.Tiles(),
	}
	for i, p := range b.pieces {
		if p != nil {
			s.Values[i] = p.Value
		}
	}
	return s
}

// Equal reports whether two snapshots hold the same pieces and tiles.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Width != o.Width || s.Height != o.Height {
		return false
	}
	for i := range s.Values {
		if s.Values[i] != o.Values[i] || s.Tiles[i] != o.Tiles[i] {
			return false
		}
	}
	return true
}

// String renders the snapshot top row first. Obstacles are '#', empty
// cells '.', pieces their value symbol. Pieces on a breakable tile are
// lowercase; an empty breakable tile shows its remaining life.
func (s Snapshot) String() string {
	var sb strings.Builder
	for y := s.Height - 1; y >= 0; y-- {
		for x := 0; x < s.Width; x++ {
			i := y*s.Width + x
			t := s.Tiles[i]
			v := s.Values[i]
			switch {
			case t.Kind == TileObstacle:
				sb.WriteByte('#')
			case v == ValueNone && t.Kind == TileBreakable:
				sb.WriteByte(byte('0' + min(t.BreakLife, 9)))
			case v == ValueNone:
				sb.WriteByte('.')
			case t.Kind == TileBreakable:
				sb.WriteByte(v.Symbol() | 0x20)
			default:
				sb.WriteByte(v.Symbol())
			}
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
