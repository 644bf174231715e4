package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

func TestEmbeddedPresetsValidate(t *testing.T) {
	presets := Presets()
	if len(presets) < 3 {
		t.Fatalf("Presets() = %v, expected at least 3", presets)
	}
	for _, name := range presets {
		t.Run(name, func(t *testing.T) {
			cfg, err := Parse(GetDefaultYAML(name))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if cfg.Name == "" {
				t.Error("preset has no name")
			}
		})
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	work := t.TempDir()
	t.Chdir(work)

	// Embedded default
	cfg, err := Load("classic", "")
	if err != nil {
		t.Fatalf("Load embedded: %v", err)
	}
	if cfg.Board.Width != 8 {
		t.Errorf("embedded width = %d, expected 8", cfg.Board.Width)
	}

	// Local configs directory beats the embedded default
	writeFile(t, filepath.Join(work, "configs", "classic.yaml"), "name: Local\nboard: {width: 5, height: 6}\n")
	cfg, err = Load("classic", "")
	if err != nil {
		t.Fatalf("Load local: %v", err)
	}
	if cfg.Name != "Local" || cfg.Board.Width != 5 {
		t.Errorf("local config not used: %+v", cfg.Board)
	}

	// User directory beats the local one
	writeFile(t, filepath.Join(home, ".match3", "configs", "classic.yaml"), "name: User\nboard: {width: 4, height: 4}\n")
	cfg, err = Load("classic", "")
	if err != nil {
		t.Fatalf("Load user: %v", err)
	}
	if cfg.Name != "User" {
		t.Errorf("user config not used, got %q", cfg.Name)
	}

	// Custom path beats everything
	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "name: Custom\npieces: [red, green, blue]\n")
	cfg, err = Load("classic", custom)
	if err != nil {
		t.Fatalf("Load custom: %v", err)
	}
	if cfg.Name != "Custom" || len(cfg.Pieces) != 3 {
		t.Errorf("custom config not used: %q %v", cfg.Name, cfg.Pieces)
	}
	// Omitted sections keep defaults
	if cfg.Timing.Swap != 500*time.Millisecond {
		t.Errorf("Timing.Swap = %v, expected default", cfg.Timing.Swap)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if _, err := Load("no-such-board", ""); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("unknown preset: err = %v", err)
	}

	if _, err := Load("classic", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "board: [not, a, map]\n")
	if _, err := Load("classic", bad); err == nil {
		t.Error("malformed custom file should fail")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	writeFile(t, invalid, "pieces: [red, green]\n")
	if _, err := Load("classic", invalid); !errors.Is(err, ErrTooFewPieces) {
		t.Errorf("two pieces: err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Match3Config)
		want   error
	}{
		{"default", func(*Match3Config) {}, nil},
		{"zero width", func(c *Match3Config) { c.Board.Width = 0 }, ErrInvalidSize},
		{"unknown piece", func(c *Match3Config) { c.Pieces = append(c.Pieces, "mauve") }, ErrUnknownPiece},
		{"duplicate piece", func(c *Match3Config) { c.Pieces = append(c.Pieces, "Red") }, ErrDuplicatePiece},
		{"too few pieces", func(c *Match3Config) { c.Pieces = c.Pieces[:2] }, ErrTooFewPieces},
		{"unknown prefab", func(c *Match3Config) {
			c.Tiles = []TilePlacement{{Prefab: "lava", X: 0, Y: 0}}
		}, ErrUnknownPrefab},
		{"unknown kind", func(c *Match3Config) {
			c.Prefabs = map[string]TilePrefab{"lava": {Kind: "molten"}}
			c.Tiles = []TilePlacement{{Prefab: "lava", X: 0, Y: 0}}
		}, ErrUnknownTileKind},
		{"tile off board", func(c *Match3Config) {
			c.Prefabs = map[string]TilePrefab{"rock": {Kind: "obstacle"}}
			c.Tiles = []TilePlacement{{Prefab: "rock", X: 8, Y: 0}}
		}, ErrTileOutOfBounds},
		{"negative timing", func(c *Match3Config) { c.Timing.Swap = -time.Second }, ErrInvalidTiming},
		{"short runs", func(c *Match3Config) { c.Rules.MinLength = 2 }, ErrInvalidRule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, expected %v", err, tt.want)
			}
		})
	}
}

func TestOverridesZOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Board.BreakableLife = 2
	cfg.Prefabs = map[string]TilePrefab{
		"pane":  {Kind: "breakable"},
		"thick": {Kind: "breakable", BreakLife: 5},
	}
	cfg.Tiles = []TilePlacement{
		{Prefab: "thick", X: 1, Y: 1, Z: 2},
		{Prefab: "pane", X: 1, Y: 1},
		{Prefab: "pane", X: 2, Y: 2},
	}

	overrides, err := cfg.Overrides()
	if err != nil {
		t.Fatalf("Overrides: %v", err)
	}
	b := match3.NewBoard(cfg.Board.Width, cfg.Board.Height, overrides)

	tile, _ := b.TileAt(1, 1)
	if tile.BreakLife != 5 {
		t.Errorf("higher z should win, life = %d", tile.BreakLife)
	}
	tile, _ = b.TileAt(2, 2)
	if tile.Kind != match3.TileBreakable || tile.BreakLife != 2 {
		t.Errorf("pane should use board breakable_life, got %v %d", tile.Kind, tile.BreakLife)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		want   int
	}{
		{DifficultyEasy, 5},
		{DifficultyNormal, 6},
		{DifficultyHard, 7},
		{DifficultyFixed, 6},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultConfig()
			ApplyPreset(&cfg, tt.preset)
			if len(cfg.Pieces) != tt.want {
				t.Errorf("pieces = %v, expected %d", cfg.Pieces, tt.want)
			}
			if cfg.Pieces[0] != "red" {
				t.Errorf("configured order not kept: %v", cfg.Pieces)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	if p, err := ParseDifficulty(""); err != nil || p != DifficultyFixed {
		t.Errorf("empty = %q, %v", p, err)
	}
	if p, err := ParseDifficulty("hard"); err != nil || p != DifficultyHard {
		t.Errorf("hard = %q, %v", p, err)
	}
	if _, err := ParseDifficulty("nightmare"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("nightmare err = %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg, err := Parse(GetDefaultYAML("glass"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse marshalled: %v", err)
	}
	if back.Timing != cfg.Timing || len(back.Tiles) != len(cfg.Tiles) {
		t.Errorf("round trip changed config: %+v vs %+v", back.Timing, cfg.Timing)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
