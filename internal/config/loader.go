package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file looked up in the user and local config directories.
const ConfigFileName = "mazechase.yaml"

// Load loads the maze chase configuration. Values missing from a file keep
// their built-in defaults.
// Search order: customPath -> ~/.mazechase/configs/mazechase.yaml -> ./configs/mazechase.yaml -> embedded default
func Load(customPath string) (GameConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultGameConfig(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultGameConfig(), fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(ConfigFileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultGameYAML)
	if err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes a YAML document on top of the built-in defaults and validates
// the result.
func Parse(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// UserDir returns ~/.mazechase, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mazechase")
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Gameplay.Progression = false
	} else {
		cfg.Gameplay.Progression = true
	}

	// Adjust run rules based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.InitialLives = 5
	case DifficultyHard:
		cfg.Gameplay.InitialLives = 2
		if cfg.Gameplay.StartLevel < 3 {
			cfg.Gameplay.StartLevel = min(3, cfg.Gameplay.MaxLevel)
		}
	}
}
