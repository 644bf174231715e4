package match3

import (
	"time"

	"github.com/charmbracelet/log"
)

// Arrival is closed once a moving piece has reached its target.
// A nil Arrival counts as already arrived.
type Arrival <-chan struct{}

// Presenter mirrors board changes on screen. MovePiece starts an animated
// move and returns the signal the resolver waits on before continuing.
// Calls come from the goroutine running the cascade.
type Presenter interface {
	PieceSpawned(p *Piece, from Cell)
	MovePiece(p *Piece, to Cell, d time.Duration) Arrival
	PieceCleared(p *Piece)
	TileChanged(t Tile)
}

// Effects receives fire-and-forget visual cues.
type Effects interface {
	ClearFxAt(x, y int)
	BreakFxAt(stage, x, y int)
}

var arrived = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// InstantPresenter completes every move immediately. It is used for
// headless runs and tests.
type InstantPresenter struct{}

func (InstantPresenter) PieceSpawned(*Piece, Cell) {}

func (InstantPresenter) MovePiece(*Piece, Cell, time.Duration) Arrival {
	return arrived
}

func (InstantPresenter) PieceCleared(*Piece) {}

func (InstantPresenter) TileChanged(Tile) {}

// awaitAll blocks until every arrival has fired.
func awaitAll(arrivals []Arrival) {
	for _, a := range arrivals {
		if a != nil {
			<-a
		}
	}
}

// safeEffects shields the core from a misbehaving effects collaborator.
type safeEffects struct {
	fx  Effects
	log *log.Logger
}

func (s safeEffects) clearAt(x, y int) {
	if s.fx == nil {
		return
	}
	defer s.rescue("clear", x, y)
	s.fx.ClearFxAt(x, y)
}

func (s safeEffects) breakAt(stage, x, y int) {
	if s.fx == nil {
		return
	}
	defer s.rescue("break", x, y)
	s.fx.BreakFxAt(stage, x, y)
}

func (s safeEffects) rescue(kind string, x, y int) {
	if r := recover(); r != nil {
		s.log.Warn("effects panicked", "fx", kind, "cell", C(x, y), "panic", r)
	}
}
