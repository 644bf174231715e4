// Package gems is the playable match-3 game. Each board preset is
// registered as its own game.
package gems

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// hintDuration is how long a hinted swap stays highlighted.
const hintDuration = 2 * time.Second

func init() {
	for _, id := range config.Presets() {
		registry.Register(id, func() registry.Game {
			return New(id)
		})
	}
}

// Stats counts what happened since the last reset. They are shown in the
// HUD; nothing is scored.
type Stats struct {
	Swaps        int // swaps that matched
	Reverted     int // swaps that were undone
	Cleared      int // pieces removed
	TilesBroken  int // breakable hits
	LongestChain int // most clear rounds triggered by one swap
	Last         match3.CascadeReport
}

func (s *Stats) add(rep match3.CascadeReport) {
	s.Last = rep
	if rep.Reverted {
		s.Reverted++
		return
	}
	s.Swaps++
	s.Cleared += rep.Cleared
	s.TilesBroken += rep.TilesBroken
	s.LongestChain = max(s.LongestChain, rep.Rounds)
}

// Game implements registry.Game for one board preset.
type Game struct {
	id    string
	title string
	log   *log.Logger

	cfg      config.Match3Config
	board    *match3.Board
	resolver *match3.Resolver
	ctrl     *match3.Controller
	anim     *Animator

	tick    uint64
	tickDur time.Duration
	screenW int
	screenH int

	cursor   match3.Cell
	hint     *match3.Swap
	hintLeft time.Duration
	message  string

	paused     bool
	gameOver   bool
	checkMoves bool
	inFlight   int // started cycles whose report has not been drained

	// Reports arrive from the cascade goroutine. deal tags them with the
	// board they belong to.
	mu      sync.Mutex
	deal    int
	pending []match3.CascadeReport

	stats Stats
}

// New creates a game for the named board preset. Reset must be called
// before it is stepped.
func New(id string) *Game {
	return &Game{id: id, title: presetTitle(id), log: log.New(io.Discard)}
}

func presetTitle(id string) string {
	if cfg, err := config.Parse(config.GetDefaultYAML(id)); err == nil && cfg.Name != "" {
		return cfg.Name
	}
	return id
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the board config and deals a fresh, settled board.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	if g.anim != nil {
		// An in-flight cascade on the old board must not wait for frames
		// that will never be drawn.
		g.anim.SetInstant(true)
	}

	lg := cfg.Log().WithPrefix(g.id)
	mcfg, err := config.Load(g.id, cfg.ConfigPath)
	if err != nil {
		return err
	}
	diff, err := config.ParseDifficulty(cfg.Difficulty)
	if err != nil {
		return err
	}
	config.ApplyPreset(&mcfg, diff)
	values, err := mcfg.Values()
	if err != nil {
		return err
	}
	overrides, err := mcfg.Overrides()
	if err != nil {
		return err
	}
	ease, err := ParseEasing(cfg.Easing)
	if err != nil {
		return err
	}

	anim := NewAnimator(ease)
	opts := append(mcfg.Options(), match3.WithLogger(lg), match3.WithEffects(anim))
	board := match3.NewBoard(mcfg.Board.Width, mcfg.Board.Height, overrides, opts...)
	gen := match3.NewGenerator(board, values, match3.NewSource(cfg.Seed), opts...)
	fill := gen.Fill()
	resolver := match3.NewResolver(board, gen, anim, opts...)

	anim.SetInstant(true)
	settled, _ := resolver.Settle()
	anim.Sync(board)
	anim.SetInstant(false)

	lg.Info("board dealt", "preset", mcfg.Name, "size", [2]int{board.Width(), board.Height()},
		"pieces", len(values), "fallbacks", fill.Fallbacks, "settle_rounds", settled.Rounds)

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	g.log = lg
	g.cfg = mcfg
	g.board = board
	g.resolver = resolver
	g.anim = anim
	g.mu.Lock()
	g.deal++
	deal := g.deal
	g.pending = nil
	g.mu.Unlock()
	g.ctrl = match3.NewController(resolver, func(rep match3.CascadeReport) {
		g.onCycleDone(deal, rep)
	})
	g.tick = 0
	g.tickDur = time.Second / time.Duration(tickRate)
	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH
	g.cursor = match3.C(board.Width()/2, board.Height()/2)
	g.hint, g.hintLeft = nil, 0
	g.message = ""
	g.paused = false
	g.gameOver = false
	g.checkMoves = true
	g.inFlight = 0
	g.stats = Stats{}
	return nil
}

// Resize adapts the layout to a new terminal size without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
}

// onCycleDone runs on the cascade goroutine. Reports from a board that
// has since been replaced are dropped.
func (g *Game) onCycleDone(deal int, rep match3.CascadeReport) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if deal == g.deal {
		g.pending = append(g.pending, rep)
	}
}

func (g *Game) drainReports() {
	g.mu.Lock()
	reports := g.pending
	g.pending = nil
	g.mu.Unlock()

	for _, rep := range reports {
		g.inFlight = max(g.inFlight-1, 0)
		g.stats.add(rep)
		g.checkMoves = true
		if rep.Reverted {
			g.message = "No match"
			continue
		}
		g.message = ""
		g.log.Debug("cascade finished", "swap", rep.Swap.String(), "rounds", rep.Rounds,
			"cleared", rep.Cleared, "refills", rep.Refills, "elapsed", rep.Elapsed)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall() {
		return core.StepResult{State: g.State()}
	}

	g.anim.Advance(g.tickDur)
	g.drainReports()

	if g.hint != nil {
		g.hintLeft -= g.tickDur
		if g.hintLeft <= 0 {
			g.hint = nil
		}
	}

	busy := g.resolver.Busy()
	if !busy && g.checkMoves {
		g.checkMoves = false
		g.gameOver = len(g.resolver.Detector().FindSwaps()) == 0
		if g.gameOver {
			g.log.Info("no moves left", "swaps", g.stats.Swaps)
		}
	}
	if !g.gameOver {
		g.handleInput(in, busy)
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	busy := g.resolver != nil && (g.inFlight > 0 || g.resolver.Busy() || g.anim.Moving() > 0)
	return core.GameState{
		Busy:     busy,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall(),
	}
}

// Stats returns the counters since the last reset.
func (g *Game) Stats() Stats {
	return g.stats
}
