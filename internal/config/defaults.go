package config

import (
	"embed"
	"path"
	"sort"
	"strings"
	"time"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultPreset is the board used when none is named.
const DefaultPreset = "classic"

// DefaultConfig returns the built-in classic board.
func DefaultConfig() Match3Config {
	return Match3Config{
		Name: "Classic",
		Board: BoardConfig{
			Width:         8,
			Height:        8,
			BreakableLife: 1,
		},
		Pieces:  []string{"red", "orange", "yellow", "green", "blue", "purple"},
		Prefabs: map[string]TilePrefab{},
		Timing: TimingConfig{
			Swap:           500 * time.Millisecond,
			CollapsePerRow: 100 * time.Millisecond,
			Refill:         300 * time.Millisecond,
		},
		Fill: FillConfig{
			MaxAttempts: 100,
			DropHeight:  10,
		},
		Rules: RulesConfig{
			MinLength: 3,
		},
	}
}

// GetDefaultYAML returns the embedded YAML for a preset, or nil.
func GetDefaultYAML(preset string) []byte {
	data, err := defaultsFS.ReadFile(path.Join("defaults", preset+".yaml"))
	if err != nil {
		return nil
	}
	return data
}

// Presets lists the embedded board presets, sorted by name.
func Presets() []string {
	entries, err := defaultsFS.ReadDir("defaults")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
