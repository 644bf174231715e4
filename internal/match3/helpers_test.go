package match3

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// layoutBoard builds a board from rows written top row first.
//
//	R O Y G B P C W *  piece on a normal tile
//	r o y ...          piece on a breakable tile with life 1
//	1-9                empty breakable tile with that life
//	#                  obstacle
//	.                  empty normal tile
func layoutBoard(t *testing.T, rows ...string) *Board {
	t.Helper()
	require.NotEmpty(t, rows)
	h := len(rows)
	w := len(rows[0])

	var overrides []TileOverride
	type placement struct {
		cell Cell
		v    MatchValue
	}
	var places []placement

	for i, row := range rows {
		require.Len(t, row, w, "row %d", i)
		y := h - 1 - i
		for x := 0; x < w; x++ {
			ch := row[x]
			c := C(x, y)
			switch {
			case ch == '#':
				overrides = append(overrides, TileOverride{Cell: c, Kind: TileObstacle})
			case ch == '.':
			case ch >= '1' && ch <= '9':
				overrides = append(overrides, TileOverride{Cell: c, Kind: TileBreakable, BreakLife: int(ch - '0')})
			case ch >= 'a' && ch <= 'z':
				overrides = append(overrides, TileOverride{Cell: c, Kind: TileBreakable, BreakLife: 1})
				places = append(places, placement{c, symbolValue(t, ch-0x20)})
			default:
				places = append(places, placement{c, symbolValue(t, ch)})
			}
		}
	}

	b := NewBoard(w, h, overrides)
	for _, pl := range places {
		require.True(t, b.PlacePiece(b.NewPiece(pl.v), pl.cell.X, pl.cell.Y))
	}
	return b
}

func symbolValue(t *testing.T, ch byte) MatchValue {
	t.Helper()
	for _, v := range append(StandardValues(), Wild) {
		if v.Symbol() == ch {
			return v
		}
	}
	t.Fatalf("unknown layout symbol %q", ch)
	return ValueNone
}

// requireSynced asserts every registered piece knows its own cell and no
// piece sits on an obstacle.
func requireSynced(t *testing.T, b *Board) {
	t.Helper()
	for _, c := range b.Cells() {
		p := b.PieceAt(c.X, c.Y)
		if p == nil {
			continue
		}
		require.Equal(t, c, p.Cell, "piece %d", p.ID)
		require.False(t, b.IsObstacle(c.X, c.Y), "piece on obstacle at %s", c)
	}
}

// seqSource replays a fixed sequence of draws.
type seqSource struct {
	seq []int
	i   int
}

func (s *seqSource) Intn(n int) int {
	v := s.seq[s.i%len(s.seq)] % n
	s.i++
	return v
}

// recordingPresenter logs every notification and arrives instantly.
type recordingPresenter struct {
	moves   []Move
	cleared []Piece
	spawned []Cell
	tiles   []Tile
}

func (r *recordingPresenter) PieceSpawned(p *Piece, from Cell) {
	r.spawned = append(r.spawned, from)
}

func (r *recordingPresenter) MovePiece(p *Piece, to Cell, d time.Duration) Arrival {
	r.moves = append(r.moves, Move{Piece: p, To: to})
	return nil
}

func (r *recordingPresenter) PieceCleared(p *Piece) {
	r.cleared = append(r.cleared, *p)
}

func (r *recordingPresenter) TileChanged(t Tile) {
	r.tiles = append(r.tiles, t)
}

// gatedPresenter holds every move until the gate is opened.
type gatedPresenter struct {
	InstantPresenter
	gate  chan struct{}
	moves chan Cell
}

func newGatedPresenter() *gatedPresenter {
	return &gatedPresenter{gate: make(chan struct{}), moves: make(chan Cell, 64)}
}

func (g *gatedPresenter) MovePiece(p *Piece, to Cell, d time.Duration) Arrival {
	g.moves <- to
	return g.gate
}
