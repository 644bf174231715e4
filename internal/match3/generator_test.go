package match3

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillTerminates(t *testing.T) {
	sizes := []struct{ w, h int }{{1, 1}, {1, 9}, {9, 1}, {8, 8}, {12, 5}}
	for _, n := range []int{1, 2, 3, 6} {
		for _, sz := range sizes {
			t.Run(fmt.Sprintf("%d types %dx%d", n, sz.w, sz.h), func(t *testing.T) {
				b := NewBoard(sz.w, sz.h, nil)
				g := NewGenerator(b, StandardValues()[:n], NewSource(42))
				res := g.Fill()

				assert.Len(t, res.Pieces, sz.w*sz.h)
				assert.Empty(t, b.EmptyCells())
				requireSynced(t, b)
			})
		}
	}
}

func TestFillAvoidsImmediateMatches(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		b := NewBoard(8, 8, nil)
		g := NewGenerator(b, StandardValues()[:6], NewSource(seed))
		res := g.Fill()
		require.Zero(t, res.Fallbacks, "seed %d", seed)
		assert.True(t, NewDetector(b).AllMatches().Empty(), "seed %d\n%s", seed, b.Snapshot())
	}
}

func TestFillFallbackWithSingleValue(t *testing.T) {
	b := NewBoard(3, 1, nil)
	g := NewGenerator(b, []MatchValue{Red}, NewSource(1), WithFillAttempts(5))
	res := g.Fill()
	assert.Len(t, res.Pieces, 3)
	assert.Equal(t, 1, res.Fallbacks, "only the third cell completes a run")
}

func TestFillRedrawsUntilClear(t *testing.T) {
	b := layoutBoard(t, "RR.")
	// First draw repeats the run, the second breaks it.
	src := &seqSource{seq: []int{0, 1}}
	g := NewGenerator(b, []MatchValue{Red, Green}, src)
	res := g.Fill()

	require.Len(t, res.Pieces, 1)
	assert.Equal(t, Green, res.Pieces[0].Value)
	assert.Zero(t, res.Fallbacks)
}

func TestFillSkipsObstaclesAndOccupiedCells(t *testing.T) {
	b := layoutBoard(t,
		".#.",
		"B#.",
	)
	g := NewGenerator(b, nil, NewSource(3))
	res := g.Fill()

	assert.Len(t, res.Pieces, 3)
	assert.Nil(t, b.PieceAt(1, 0))
	assert.Nil(t, b.PieceAt(1, 1))
	assert.Equal(t, Blue, b.PieceAt(0, 0).Value)
}

func TestFillDeterministic(t *testing.T) {
	fill := func() Snapshot {
		b := NewBoard(7, 9, []TileOverride{{Cell: C(3, 3), Kind: TileObstacle}})
		NewGenerator(b, nil, NewSource(99)).Fill()
		return b.Snapshot()
	}
	assert.True(t, fill().Equal(fill()))
}

func TestGeneratorDefaults(t *testing.T) {
	g := NewGenerator(NewBoard(1, 1, nil), nil, nil)
	assert.Equal(t, StandardValues()[:DefaultValueCount], g.Values())
	assert.Contains(t, g.Values(), g.Draw())
}
