package match3

import (
	"github.com/charmbracelet/log"
)

// Board holds the tile layer and the piece layer of a puzzle.
// Both layers are stored in row-major order: index = y*width + x.
// Dimensions never change after construction.
type Board struct {
	width  int
	height int
	tiles  []Tile
	pieces []*Piece
	nextID int
	log    *log.Logger
}

// NewBoard creates a board of normal tiles with the given overrides applied
// in order. Overrides outside the board are skipped. A breakable override
// with no life left becomes a normal tile.
func NewBoard(width, height int, overrides []TileOverride, opts ...Option) *Board {
	s := applyOptions(opts)
	width = max(width, 0)
	height = max(height, 0)

	b := &Board{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
		pieces: make([]*Piece, width*height),
		log:    s.logger,
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.tiles[b.index(x, y)] = Tile{Cell: C(x, y), Kind: TileNormal}
		}
	}

	for _, o := range overrides {
		if !b.InBounds(o.Cell.X, o.Cell.Y) {
			b.log.Warn("tile override outside board", "cell", o.Cell, "kind", o.Kind)
			continue
		}
		t := Tile{Cell: o.Cell, Kind: o.Kind}
		if o.Kind == TileBreakable {
			t.BreakLife = max(o.BreakLife, 0)
			if t.BreakLife == 0 {
				t.Kind = TileNormal
			}
		}
		b.tiles[b.index(o.Cell.X, o.Cell.Y)] = t
	}
	return b
}

func (b *Board) index(x, y int) int {
	return y*b.width + x
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// InBounds reports whether (x, y) lies on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// TileAt returns the tile at (x, y). ok is false off the board.
func (b *Board) TileAt(x, y int) (Tile, bool) {
	if !b.InBounds(x, y) {
		return Tile{}, false
	}
	return b.tiles[b.index(x, y)], true
}

// PieceAt returns the piece at (x, y), or nil when the cell is empty or
// off the board.
func (b *Board) PieceAt(x, y int) *Piece {
	if !b.InBounds(x, y) {
		return nil
	}
	return b.pieces[b.index(x, y)]
}

// IsObstacle reports whether (x, y) is an obstacle tile.
// Off-board cells are not obstacles.
func (b *Board) IsObstacle(x, y int) bool {
	t, ok := b.TileAt(x, y)
	return ok && t.Blocks()
}

// NewPiece allocates a piece with a fresh ID. The piece is not placed.
func (b *Board) NewPiece(v MatchValue) *Piece {
	b.nextID++
	return &Piece{ID: b.nextID, Value: v, Cell: C(-1, -1)}
}

// PlacePiece registers p at (x, y) and updates p.Cell.
// Placement off the board or onto an obstacle is refused, leaving both
// the board and p untouched. If p was registered elsewhere its old slot
// is released. Any other piece occupying (x, y) is unregistered.
func (b *Board) PlacePiece(p *Piece, x, y int) bool {
	if p == nil {
		return false
	}
	if !b.InBounds(x, y) {
		b.log.Warn("place outside board", "piece", p.ID, "cell", C(x, y))
		return false
	}
	if b.tiles[b.index(x, y)].Blocks() {
		b.log.Warn("place onto obstacle", "piece", p.ID, "cell", C(x, y))
		return false
	}

	if b.InBounds(p.Cell.X, p.Cell.Y) && b.pieces[b.index(p.Cell.X, p.Cell.Y)] == p {
		b.pieces[b.index(p.Cell.X, p.Cell.Y)] = nil
	}
	b.pieces[b.index(x, y)] = p
	p.Cell = C(x, y)
	return true
}

// RemovePiece clears (x, y) and returns the piece that was there, if any.
func (b *Board) RemovePiece(x, y int) *Piece {
	if !b.InBounds(x, y) {
		return nil
	}
	i := b.index(x, y)
	p := b.pieces[i]
	b.pieces[i] = nil
	return p
}

// exchange swaps the occupants of two cells and keeps their Cell fields
// in sync. Either cell may be empty.
func (b *Board) exchange(a, c Cell) {
	if !b.InBounds(a.X, a.Y) || !b.InBounds(c.X, c.Y) {
		return
	}
	ia, ic := b.index(a.X, a.Y), b.index(c.X, c.Y)
	b.pieces[ia], b.pieces[ic] = b.pieces[ic], b.pieces[ia]
	if p := b.pieces[ia]; p != nil {
		p.Cell = a
	}
	if p := b.pieces[ic]; p != nil {
		p.Cell = c
	}
}

// breakTileAt removes one life from a breakable tile. It returns the
// updated tile and whether anything changed.
func (b *Board) breakTileAt(x, y int) (Tile, bool) {
	if !b.InBounds(x, y) {
		return Tile{}, false
	}
	t := &b.tiles[b.index(x, y)]
	if t.Kind != TileBreakable || t.BreakLife <= 0 {
		return *t, false
	}
	t.BreakLife--
	if t.BreakLife == 0 {
		t.Kind = TileNormal
	}
	return *t, true
}

// Cells returns every cell in fill order: columns left to right, each
// column bottom to top.
func (b *Board) Cells() []Cell {
	cells := make([]Cell, 0, b.width*b.height)
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			cells = append(cells, C(x, y))
		}
	}
	return cells
}

// EmptyCells returns the empty non-obstacle cells in fill order.
func (b *Board) EmptyCells() []Cell {
	var cells []Cell
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			i := b.index(x, y)
			if b.pieces[i] == nil && !b.tiles[i].Blocks() {
				cells = append(cells, C(x, y))
			}
		}
	}
	return cells
}

// Pieces returns every registered piece in fill order.
func (b *Board) Pieces() []*Piece {
	var out []*Piece
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			if p := b.pieces[b.index(x, y)]; p != nil {
				out = append(out, p)
			}
		}
	}
	return out
}

// Tiles returns a copy of the tile layer in row-major order.
func (b *Board) Tiles() []Tile {
	out := make([]Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}

// Clear removes every piece. Tiles are left as they are.
func (b *Board) Clear() {
	for i := range b.pieces {
		b.pieces[i] = nil
	}
}
