// Package config provides YAML-based board configuration loading and
// difficulty presets for the match-3 game.
package config

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// Validation errors. Returned wrapped; test with errors.Is.
var (
	ErrInvalidSize       = errors.New("board size must be at least 1x1")
	ErrTooFewPieces      = errors.New("at least 3 piece types are required")
	ErrUnknownPiece      = errors.New("unknown piece type")
	ErrDuplicatePiece    = errors.New("duplicate piece type")
	ErrUnknownPrefab     = errors.New("unknown tile prefab")
	ErrUnknownTileKind   = errors.New("unknown tile kind")
	ErrTileOutOfBounds   = errors.New("tile outside board")
	ErrInvalidTiming     = errors.New("timing must not be negative")
	ErrInvalidRule       = errors.New("invalid rule value")
	ErrUnknownPreset     = errors.New("unknown board preset")
	ErrUnknownDifficulty = errors.New("unknown difficulty preset")
)

// Match3Config describes one playable board.
type Match3Config struct {
	Name    string                `yaml:"name"`
	Board   BoardConfig           `yaml:"board"`
	Pieces  []string              `yaml:"pieces"`
	Prefabs map[string]TilePrefab `yaml:"prefabs"`
	Tiles   []TilePlacement       `yaml:"tiles"`
	Timing  TimingConfig          `yaml:"timing"`
	Fill    FillConfig            `yaml:"fill"`
	Rules   RulesConfig           `yaml:"rules"`
}

// BoardConfig defines board dimensions.
type BoardConfig struct {
	Width         int `yaml:"width"`
	Height        int `yaml:"height"`
	BreakableLife int `yaml:"breakable_life"` // used by breakable prefabs without break_life
}

// TilePrefab is a reusable tile definition referenced by placements.
type TilePrefab struct {
	Kind      string `yaml:"kind"` // normal, obstacle or breakable
	BreakLife int    `yaml:"break_life"`
}

// TilePlacement puts a prefab on one cell. Higher Z wins when two
// placements share a cell.
type TilePlacement struct {
	Prefab string `yaml:"prefab"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Z      int    `yaml:"z"`
}

// TimingConfig defines animation durations handed to the presenter.
type TimingConfig struct {
	Swap           time.Duration `yaml:"swap"`
	CollapsePerRow time.Duration `yaml:"collapse_per_row"`
	Refill         time.Duration `yaml:"refill"`
}

// FillConfig defines piece generation parameters.
type FillConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
	DropHeight  int `yaml:"drop_height"`
}

// RulesConfig defines matching rules.
type RulesConfig struct {
	MinLength int `yaml:"min_length"`
}

// Validate checks the configuration for values the game cannot run with.
func (c Match3Config) Validate() error {
	if c.Board.Width < 1 || c.Board.Height < 1 {
		return fmt.Errorf("config: %dx%d: %w", c.Board.Width, c.Board.Height, ErrInvalidSize)
	}
	if _, err := c.Values(); err != nil {
		return err
	}
	if _, err := c.Overrides(); err != nil {
		return err
	}
	if c.Timing.Swap < 0 || c.Timing.CollapsePerRow < 0 || c.Timing.Refill < 0 {
		return fmt.Errorf("config: timing: %w", ErrInvalidTiming)
	}
	if c.Fill.MaxAttempts < 0 || c.Fill.DropHeight < 0 || c.Board.BreakableLife < 0 {
		return fmt.Errorf("config: fill: %w", ErrInvalidRule)
	}
	if c.Rules.MinLength != 0 && c.Rules.MinLength < 3 {
		return fmt.Errorf("config: min_length %d: %w", c.Rules.MinLength, ErrInvalidRule)
	}
	return nil
}

// Values resolves the piece names to match values.
func (c Match3Config) Values() ([]match3.MatchValue, error) {
	seen := make(map[match3.MatchValue]bool, len(c.Pieces))
	values := make([]match3.MatchValue, 0, len(c.Pieces))
	for _, name := range c.Pieces {
		v, ok := match3.ParseMatchValue(name)
		if !ok {
			return nil, fmt.Errorf("config: piece %q: %w", name, ErrUnknownPiece)
		}
		if seen[v] {
			return nil, fmt.Errorf("config: piece %q: %w", name, ErrDuplicatePiece)
		}
		seen[v] = true
		values = append(values, v)
	}
	if len(values) < 3 {
		return nil, fmt.Errorf("config: %d pieces: %w", len(values), ErrTooFewPieces)
	}
	return values, nil
}

// Overrides resolves tile placements against the prefab table, ordered by
// ascending Z so later entries win.
func (c Match3Config) Overrides() ([]match3.TileOverride, error) {
	placements := make([]TilePlacement, len(c.Tiles))
	copy(placements, c.Tiles)
	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].Z < placements[j].Z
	})

	out := make([]match3.TileOverride, 0, len(placements))
	for _, tp := range placements {
		prefab, ok := c.Prefabs[tp.Prefab]
		if !ok {
			return nil, fmt.Errorf("config: tile at (%d,%d) prefab %q: %w", tp.X, tp.Y, tp.Prefab, ErrUnknownPrefab)
		}
		kind, ok := match3.ParseTileKind(prefab.Kind)
		if !ok {
			return nil, fmt.Errorf("config: prefab %q kind %q: %w", tp.Prefab, prefab.Kind, ErrUnknownTileKind)
		}
		if tp.X < 0 || tp.X >= c.Board.Width || tp.Y < 0 || tp.Y >= c.Board.Height {
			return nil, fmt.Errorf("config: tile at (%d,%d): %w", tp.X, tp.Y, ErrTileOutOfBounds)
		}
		life := prefab.BreakLife
		if kind == match3.TileBreakable && life == 0 {
			life = c.Board.BreakableLife
		}
		out = append(out, match3.TileOverride{Cell: match3.C(tp.X, tp.Y), Kind: kind, BreakLife: life})
	}
	return out, nil
}

// MatchTiming converts the timing section, falling back to the stock
// durations for unset fields.
func (c Match3Config) MatchTiming() match3.Timing {
	t := match3.DefaultTiming()
	if c.Timing.Swap > 0 {
		t.Swap = c.Timing.Swap
	}
	if c.Timing.CollapsePerRow > 0 {
		t.CollapsePerRow = c.Timing.CollapsePerRow
	}
	if c.Timing.Refill > 0 {
		t.Refill = c.Timing.Refill
	}
	if c.Fill.DropHeight > 0 {
		t.DropHeight = c.Fill.DropHeight
	}
	return t
}

// Options returns the core options this configuration implies.
func (c Match3Config) Options() []match3.Option {
	return []match3.Option{
		match3.WithTiming(c.MatchTiming()),
		match3.WithFillAttempts(c.Fill.MaxAttempts),
		match3.WithMinLength(c.Rules.MinLength),
	}
}
