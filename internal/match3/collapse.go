package match3

import "sort"

// Move records a piece relocated by a collapse.
type Move struct {
	Piece *Piece
	From  Cell
	To    Cell
}

// Rows returns how far the piece fell.
func (m Move) Rows() int {
	return m.From.Y - m.To.Y
}

// CollapseColumn lets pieces in column x fall into empty cells beneath
// them. Obstacles split the column into independent segments: nothing
// falls through or onto one. The column is scanned bottom to top and each
// empty cell takes the nearest piece above it in the same segment.
func (b *Board) CollapseColumn(x int) []Move {
	if x < 0 || x >= b.width {
		return nil
	}
	var moves []Move
	for y := 0; y < b.height-1; y++ {
		if b.IsObstacle(x, y) || b.PieceAt(x, y) != nil {
			continue
		}
		for j := y + 1; j < b.height; j++ {
			if b.IsObstacle(x, j) {
				break
			}
			p := b.PieceAt(x, j)
			if p == nil {
				continue
			}
			from := p.Cell
			b.RemovePiece(x, j)
			b.PlacePiece(p, x, y)
			moves = append(moves, Move{Piece: p, From: from, To: C(x, y)})
			break
		}
	}
	return moves
}

// Collapse runs CollapseColumn over each distinct column, in ascending
// order, and returns all moves.
func (b *Board) Collapse(columns []int) []Move {
	cols := uniqueSorted(columns)
	var moves []Move
	for _, x := range cols {
		moves = append(moves, b.CollapseColumn(x)...)
	}
	return moves
}

// CollapseAll collapses every column.
func (b *Board) CollapseAll() []Move {
	var moves []Move
	for x := 0; x < b.width; x++ {
		moves = append(moves, b.CollapseColumn(x)...)
	}
	return moves
}

func uniqueSorted(xs []int) []int {
	seen := make(map[int]struct{}, len(xs))
	out := make([]int, 0, len(xs))
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	sort.Ints(out)
	return out
}
