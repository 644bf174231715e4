package core

import (
	"io"

	"github.com/charmbracelet/log"
)

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 picks one from the clock

	ConfigPath string      // Explicit board config file, overrides the preset search
	Difficulty string      // Palette size preset (easy, normal, hard, fixed)
	Easing     string      // Piece motion curve; empty selects the game default
	Logger     *log.Logger // Diagnostics sink; nil discards
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// Log returns the configured logger or a discarding one.
func (c RuntimeConfig) Log() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard)
	}
	return c.Logger
}

// GameState represents the current state of a game.
type GameState struct {
	Busy     bool // A swap or cascade is being animated; input is ignored
	GameOver bool // No valid swap remains on the board
	Paused   bool // Animations are frozen
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
