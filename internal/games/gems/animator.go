package gems

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/match3"
)

const (
	arriveEpsilon = 0.01 // cells; closer than this counts as arrived
	flashDuration = 250 * time.Millisecond
)

// closed is returned for moves that complete immediately.
var closed = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// sprite is the on-screen image of one piece, in board cell units.
type sprite struct {
	id           int
	value        match3.MatchValue
	x, y         float64
	fromX, fromY float64
	to           match3.Cell
	dur, elapsed time.Duration
	arrival      chan struct{} // non-nil while moving
}

func (s *sprite) snap() {
	s.x, s.y = float64(s.to.X), float64(s.to.Y)
	if s.arrival != nil {
		close(s.arrival)
		s.arrival = nil
	}
}

// SpriteView is a read-only copy of a sprite for rendering.
type SpriteView struct {
	Value match3.MatchValue
	X, Y  float64
}

// Flash is a short-lived effect glyph drawn over a cell.
type Flash struct {
	Cell  match3.Cell
	Glyph rune
	Color core.Color
	left  time.Duration
}

// Animator is the match3.Presenter and match3.Effects used by the
// terminal game. The cascade goroutine reports moves into it; the UI
// goroutine advances time and reads frames.
type Animator struct {
	mu      sync.Mutex
	ease    Easing
	instant bool
	sprites map[int]*sprite
	tiles   map[match3.Cell]match3.Tile
	flashes []Flash
}

// NewAnimator creates an animator moving pieces along curve e.
func NewAnimator(e Easing) *Animator {
	return &Animator{
		ease:    e,
		sprites: make(map[int]*sprite),
		tiles:   make(map[match3.Cell]match3.Tile),
	}
}

// Sync drops all sprites and effects and mirrors the board as it is now.
func (a *Animator) Sync(b *match3.Board) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, s := range a.sprites {
		s.snap()
	}
	clear(a.sprites)
	clear(a.tiles)
	a.flashes = nil

	for _, p := range b.Pieces() {
		a.sprites[p.ID] = &sprite{
			id: p.ID, value: p.Value, to: p.Cell,
			x: float64(p.Cell.X), y: float64(p.Cell.Y),
		}
	}
	for _, t := range b.Tiles() {
		a.tiles[t.Cell] = t
	}
}

// SetInstant switches instant mode. While on, every move completes at once
// and pending moves are finished, so a cascade never waits on the UI.
func (a *Animator) SetInstant(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.instant = on
	if on {
		for _, s := range a.sprites {
			s.snap()
		}
	}
}

func (a *Animator) PieceSpawned(p *match3.Piece, from match3.Cell) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.sprites[p.ID] = &sprite{
		id: p.ID, value: p.Value, to: from,
		x: float64(from.X), y: float64(from.Y),
	}
}

func (a *Animator) MovePiece(p *match3.Piece, to match3.Cell, d time.Duration) match3.Arrival {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.sprites[p.ID]
	if !ok {
		s = &sprite{id: p.ID, value: p.Value, x: float64(to.X), y: float64(to.Y)}
		a.sprites[p.ID] = s
	}
	if s.arrival != nil {
		// Retargeted mid-flight; the earlier waiter is done.
		close(s.arrival)
		s.arrival = nil
	}

	s.value = p.Value
	s.fromX, s.fromY = s.x, s.y
	s.to = to
	s.dur, s.elapsed = d, 0

	if a.instant || d <= 0 || s.distance() < arriveEpsilon {
		s.snap()
		return closed
	}
	s.arrival = make(chan struct{})
	return s.arrival
}

func (a *Animator) PieceCleared(p *match3.Piece) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if s, ok := a.sprites[p.ID]; ok {
		s.snap()
		delete(a.sprites, p.ID)
	}
}

func (a *Animator) TileChanged(t match3.Tile) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tiles[t.Cell] = t
}

func (a *Animator) ClearFxAt(x, y int) {
	a.addFlash(Flash{Cell: match3.C(x, y), Glyph: '✶', Color: core.ColorBrightWhite})
}

func (a *Animator) BreakFxAt(stage, x, y int) {
	glyph := '✕'
	if stage > 0 && stage < 10 {
		glyph = rune('0' + stage)
	}
	a.addFlash(Flash{Cell: match3.C(x, y), Glyph: glyph, Color: core.ColorBrightYellow})
}

func (a *Animator) addFlash(f Flash) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.instant {
		return
	}
	f.left = flashDuration
	a.flashes = append(a.flashes, f)
}

// Advance moves every sprite dt further along its path and fires the
// arrivals of those that reached their target.
func (a *Animator) Advance(dt time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, s := range a.sprites {
		if s.arrival == nil {
			continue
		}
		s.elapsed += dt
		t := core.ClampF(float64(s.elapsed)/float64(s.dur), 0, 1)
		e := a.ease.Apply(t)
		s.x = s.fromX + (float64(s.to.X)-s.fromX)*e
		s.y = s.fromY + (float64(s.to.Y)-s.fromY)*e
		if t >= 1 || s.distance() < arriveEpsilon {
			s.snap()
		}
	}

	kept := a.flashes[:0]
	for _, f := range a.flashes {
		f.left -= dt
		if f.left > 0 {
			kept = append(kept, f)
		}
	}
	a.flashes = kept
}

// Moving returns the number of sprites still in flight.
func (a *Animator) Moving() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := 0
	for _, s := range a.sprites {
		if s.arrival != nil {
			n++
		}
	}
	return n
}

// Sprites returns the current sprite positions ordered by piece ID.
func (a *Animator) Sprites() []SpriteView {
	a.mu.Lock()
	defer a.mu.Unlock()

	ss := make([]*sprite, 0, len(a.sprites))
	for _, s := range a.sprites {
		ss = append(ss, s)
	}
	sort.Slice(ss, func(i, j int) bool { return ss[i].id < ss[j].id })

	out := make([]SpriteView, len(ss))
	for i, s := range ss {
		out[i] = SpriteView{Value: s.value, X: s.x, Y: s.y}
	}
	return out
}

// Tile returns the mirrored tile at c.
func (a *Animator) Tile(c match3.Cell) (match3.Tile, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.tiles[c]
	return t, ok
}

// Flashes returns the live effects.
func (a *Animator) Flashes() []Flash {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Flash(nil), a.flashes...)
}

func (s *sprite) distance() float64 {
	return math.Hypot(float64(s.to.X)-s.x, float64(s.to.Y)-s.y)
}
