package match3

import (
	"github.com/charmbracelet/log"
)

// DefaultFillAttempts caps how often one cell is redrawn while it would
// complete a run.
const DefaultFillAttempts = 100

// DefaultValueCount is the palette size used when none is configured.
const DefaultValueCount = 6

// FillResult describes one fill pass.
type FillResult struct {
	Pieces    []*Piece // placed pieces in fill order
	Fallbacks int      // cells accepted after exhausting the attempt cap
}

// Generator fills empty cells with random pieces.
type Generator struct {
	board       *Board
	detector    *Detector
	values      []MatchValue
	src         Source
	maxAttempts int
	log         *log.Logger
}

// NewGenerator creates a generator drawing uniformly from values.
// An empty value list selects the first DefaultValueCount standard colors;
// a nil source is seeded from the clock.
func NewGenerator(b *Board, values []MatchValue, src Source, opts ...Option) *Generator {
	s := applyOptions(opts)
	if len(values) == 0 {
		values = StandardValues()[:DefaultValueCount]
	}
	if src == nil {
		src = NewSource(0)
	}
	vs := make([]MatchValue, len(values))
	copy(vs, values)
	return &Generator{
		board:       b,
		detector:    NewDetector(b, opts...),
		values:      vs,
		src:         src,
		maxAttempts: s.maxAttempts,
		log:         s.logger,
	}
}

// Values returns the palette the generator draws from.
func (g *Generator) Values() []MatchValue {
	out := make([]MatchValue, len(g.values))
	copy(out, g.values)
	return out
}

// Draw returns one uniformly random value from the palette.
func (g *Generator) Draw() MatchValue {
	return g.values[g.src.Intn(len(g.values))]
}

// Fill populates every empty non-obstacle cell, visiting columns left to
// right and each column bottom to top. A drawn value that completes a run
// with its left or lower neighbours is redrawn, up to the attempt cap, after
// which the last draw is kept.
func (g *Generator) Fill() FillResult {
	var res FillResult
	for _, c := range g.board.EmptyCells() {
		p := g.board.NewPiece(g.Draw())
		if !g.board.PlacePiece(p, c.X, c.Y) {
			continue
		}

		attempts := 1
		for !g.detector.MatchesOnFill(c.X, c.Y).Empty() {
			if attempts >= g.maxAttempts {
				res.Fallbacks++
				g.log.Debug("fill fallback", "cell", c, "value", p.Value)
				break
			}
			p.Value = g.Draw()
			attempts++
		}
		res.Pieces = append(res.Pieces, p)
	}
	return res
}
