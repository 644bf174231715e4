package config

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// DifficultyPreset represents a named difficulty level.
// Difficulty is expressed as palette size: fewer piece types means more
// matches fall into place.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty converts a flag value to a preset. Empty means fixed.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: %q: %w", s, ErrUnknownDifficulty)
	}
}

// PieceCountForPreset returns the palette size for a preset, or 0 when the
// configured palette is kept as is.
func PieceCountForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 5
	case DifficultyNormal:
		return 6
	case DifficultyHard:
		return 7
	default:
		return 0
	}
}

// ApplyPreset resizes the piece palette for a difficulty preset.
// Configured pieces keep their order; missing colors are taken from the
// standard palette.
func ApplyPreset(cfg *Match3Config, preset DifficultyPreset) {
	n := PieceCountForPreset(preset)
	if n == 0 {
		return
	}

	pieces := make([]string, 0, n)
	have := make(map[string]bool)
	for _, name := range cfg.Pieces {
		if len(pieces) == n {
			break
		}
		if v, ok := match3.ParseMatchValue(name); ok && !have[v.String()] {
			have[v.String()] = true
			pieces = append(pieces, v.String())
		}
	}
	for _, v := range match3.StandardValues() {
		if len(pieces) == n {
			break
		}
		if !have[v.String()] {
			have[v.String()] = true
			pieces = append(pieces, v.String())
		}
	}
	cfg.Pieces = pieces
}
