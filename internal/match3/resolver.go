package match3

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// State is the resolver's position in the swap/cascade cycle.
type State int32

const (
	StateIdle State = iota
	StateSwapPending
	StateEvaluating
	StateReverting
	StateResolving
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSwapPending:
		return "swap-pending"
	case StateEvaluating:
		return "evaluating"
	case StateReverting:
		return "reverting"
	case StateResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// CascadeReport summarizes one swap or settle cycle.
type CascadeReport struct {
	Swap        Swap
	Matched     bool // the swap produced a match and was kept
	Reverted    bool // the swap produced nothing and was undone
	Rounds      int  // clear/collapse rounds, across all refills
	Refills     int  // refill passes
	Cleared     int  // pieces removed
	Moved       int  // collapse moves
	Spawned     int  // pieces created by refills
	TilesBroken int  // breakable hits
	Fallbacks   int  // refill cells accepted past the attempt cap
	Elapsed     time.Duration
}

// Resolver runs swaps and the cascades they trigger.
// Only one cycle is in flight at a time: a request made while a cycle is
// running is refused.
type Resolver struct {
	board  *Board
	gen    *Generator
	det    *Detector
	pres   Presenter
	fx     safeEffects
	timing Timing
	log    *log.Logger

	busy  atomic.Bool
	state atomic.Int32
}

// NewResolver wires a resolver over b. A nil generator draws from the
// default palette; a nil presenter behaves like InstantPresenter.
func NewResolver(b *Board, gen *Generator, pres Presenter, opts ...Option) *Resolver {
	s := applyOptions(opts)
	if gen == nil {
		gen = NewGenerator(b, nil, nil, opts...)
	}
	if pres == nil {
		pres = InstantPresenter{}
	}
	return &Resolver{
		board:  b,
		gen:    gen,
		det:    NewDetector(b, opts...),
		pres:   pres,
		fx:     safeEffects{fx: s.effects, log: s.logger},
		timing: s.timing,
		log:    s.logger,
	}
}

// Detector returns the detector the resolver scans with.
func (r *Resolver) Detector() *Detector {
	return r.det
}

// State returns the current cycle state.
func (r *Resolver) State() State {
	return State(r.state.Load())
}

// Busy reports whether input is locked by a running cycle.
func (r *Resolver) Busy() bool {
	return r.busy.Load()
}

func (r *Resolver) setState(s State) {
	r.state.Store(int32(s))
}

func (r *Resolver) acquire() bool {
	return r.busy.CompareAndSwap(false, true)
}

func (r *Resolver) release() {
	r.setState(StateIdle)
	r.busy.Store(false)
}

// Swap validates and runs one swap cycle on the calling goroutine.
// ok is false when the swap is illegal or another cycle is running; the
// board is untouched in that case.
func (r *Resolver) Swap(a, b Cell) (rep CascadeReport, ok bool) {
	if !r.board.CanSwap(a, b) || !r.acquire() {
		return rep, false
	}
	defer r.release()
	return r.runSwap(a, b), true
}

// SwapAsync validates the swap and locks input, then runs the cycle on its
// own goroutine. done, if set, is called after input is unlocked.
func (r *Resolver) SwapAsync(a, b Cell, done func(CascadeReport)) bool {
	if !r.board.CanSwap(a, b) || !r.acquire() {
		return false
	}
	go func() {
		rep := r.runSwap(a, b)
		r.release()
		if done != nil {
			done(rep)
		}
	}()
	return true
}

// Settle clears any matches already on the board and cascades to a fixed
// point. It returns false if another cycle is running.
func (r *Resolver) Settle() (rep CascadeReport, ok bool) {
	if !r.acquire() {
		return rep, false
	}
	defer r.release()

	start := time.Now()
	if work := r.det.AllMatches(); !work.Empty() {
		rep.Matched = true
		r.resolve(work, &rep)
	}
	rep.Elapsed = time.Since(start)
	return rep, true
}

func (r *Resolver) runSwap(a, b Cell) CascadeReport {
	start := time.Now()
	rep := CascadeReport{Swap: Swap{A: a, B: b}}

	r.setState(StateSwapPending)
	r.exchangeAndWait(a, b)

	r.setState(StateEvaluating)
	work := r.det.MatchesAt(b.X, b.Y)
	work.Union(r.det.MatchesAt(a.X, a.Y))

	if work.Empty() {
		r.setState(StateReverting)
		r.exchangeAndWait(a, b)
		rep.Reverted = true
		r.log.Debug("swap reverted", "a", a, "b", b)
	} else {
		rep.Matched = true
		r.resolve(work, &rep)
		r.log.Debug("swap resolved", "a", a, "b", b, "rounds", rep.Rounds, "cleared", rep.Cleared)
	}

	rep.Elapsed = time.Since(start)
	return rep
}

// exchangeAndWait swaps two cells on the board and waits for both pieces
// to reach their new cells.
func (r *Resolver) exchangeAndWait(a, b Cell) {
	r.board.exchange(a, b)
	var arrivals []Arrival
	for _, c := range []Cell{a, b} {
		if p := r.board.PieceAt(c.X, c.Y); p != nil {
			arrivals = append(arrivals, r.pres.MovePiece(p, c, r.timing.Swap))
		}
	}
	awaitAll(arrivals)
}

// resolve repeats clear, collapse and rescan until the moved pieces form no
// match, then refills and rescans the whole board, starting over while
// anything matches.
func (r *Resolver) resolve(work MatchSet, rep *CascadeReport) {
	r.setState(StateResolving)
	for !work.Empty() {
		for !work.Empty() {
			rep.Rounds++
			columns := r.clear(work, rep)
			moved := r.collapse(columns, rep)
			work = r.det.MatchesAtPieces(moved)
		}
		r.refill(rep)
		work = r.det.AllMatches()
	}
}

// clear removes the pieces of work and damages breakable tiles beneath
// them. It returns the columns that lost pieces.
func (r *Resolver) clear(work MatchSet, rep *CascadeReport) []int {
	var columns []int
	for _, p := range work.Pieces() {
		c := p.Cell
		if r.board.PieceAt(c.X, c.Y) != p {
			r.log.Warn("cleared piece not on board", "piece", p.ID, "cell", c)
			continue
		}
		r.board.RemovePiece(c.X, c.Y)
		r.pres.PieceCleared(p)
		r.fx.clearAt(c.X, c.Y)
		rep.Cleared++
		columns = append(columns, c.X)

		if t, changed := r.board.breakTileAt(c.X, c.Y); changed {
			rep.TilesBroken++
			r.pres.TileChanged(t)
			r.fx.breakAt(t.BreakLife, c.X, c.Y)
		}
	}
	return columns
}

// collapse drops pieces in the given columns and waits for every moved
// piece before returning them.
func (r *Resolver) collapse(columns []int, rep *CascadeReport) []*Piece {
	moves := r.board.Collapse(columns)
	moved := make([]*Piece, 0, len(moves))
	arrivals := make([]Arrival, 0, len(moves))
	for _, m := range moves {
		d := r.timing.CollapsePerRow * time.Duration(m.Rows())
		arrivals = append(arrivals, r.pres.MovePiece(m.Piece, m.To, d))
		moved = append(moved, m.Piece)
	}
	awaitAll(arrivals)
	rep.Moved += len(moves)
	return moved
}

// refill populates every empty cell and waits for the new pieces to drop in.
func (r *Resolver) refill(rep *CascadeReport) {
	res := r.gen.Fill()
	arrivals := make([]Arrival, 0, len(res.Pieces))
	for _, p := range res.Pieces {
		r.pres.PieceSpawned(p, p.Cell.Add(0, r.timing.DropHeight))
		arrivals = append(arrivals, r.pres.MovePiece(p, p.Cell, r.timing.Refill))
	}
	awaitAll(arrivals)
	rep.Refills++
	rep.Spawned += len(res.Pieces)
	rep.Fallbacks += res.Fallbacks
}
