package match3

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Timing controls how long presenter moves are asked to take.
type Timing struct {
	Swap           time.Duration // one swap or swap-back
	CollapsePerRow time.Duration // per row fallen during collapse
	Refill         time.Duration // drop-in of a refilled piece
	DropHeight     int           // rows above the board refill pieces start from
}

// DefaultTiming returns the stock animation timing.
func DefaultTiming() Timing {
	return Timing{
		Swap:           500 * time.Millisecond,
		CollapsePerRow: 100 * time.Millisecond,
		Refill:         300 * time.Millisecond,
		DropHeight:     10,
	}
}

type settings struct {
	logger      *log.Logger
	minLength   int
	maxAttempts int
	timing      Timing
	effects     Effects
}

func defaultSettings() settings {
	return settings{
		logger:      log.New(io.Discard),
		minLength:   DefaultMinLength,
		maxAttempts: DefaultFillAttempts,
		timing:      DefaultTiming(),
	}
}

// Option configures boards, generators, detectors and resolvers.
// Each type reads only the settings relevant to it.
type Option func(*settings)

// WithLogger routes diagnostic output to l.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMinLength overrides the shortest run that counts as a match.
func WithMinLength(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.minLength = n
		}
	}
}

// WithFillAttempts overrides the per-cell redraw cap used during fills.
func WithFillAttempts(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithTiming sets the durations the resolver passes to the presenter.
func WithTiming(t Timing) Option {
	return func(s *settings) {
		s.timing = t
	}
}

// WithEffects attaches an optional effects collaborator.
func WithEffects(e Effects) Option {
	return func(s *settings) {
		s.effects = e
	}
}

func applyOptions(opts []Option) settings {
	s := defaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
