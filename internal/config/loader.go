package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration for a board preset.
// Search order: customPath -> ~/.match3/configs/<preset>.yaml ->
// ./configs/<preset>.yaml -> embedded default.
// Files found on the search path that fail to parse are skipped; an
// explicit customPath must parse. The result is validated.
func Load(preset, customPath string) (Match3Config, error) {
	if preset == "" {
		preset = DefaultPreset
	}
	cfg, err := load(preset, customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(preset, customPath string) (Match3Config, error) {
	filename := preset + ".yaml"

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Match3Config{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if data := GetDefaultYAML(preset); data != nil {
		cfg, err := Parse(data)
		if err != nil && preset == DefaultPreset {
			return DefaultConfig(), nil // Fallback to hardcoded if embed is broken
		}
		return cfg, err
	}
	if preset == DefaultPreset {
		return DefaultConfig(), nil
	}
	return Match3Config{}, fmt.Errorf("config: %q: %w", preset, ErrUnknownPreset)
}

// Parse decodes YAML on top of DefaultConfig, so omitted sections keep
// their defaults.
func Parse(data []byte) (Match3Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg Match3Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".match3", "configs", filename)
}
