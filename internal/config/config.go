// Package config provides YAML-based game configuration loading and
// difficulty management for the maze chase game.
package config

import (
	"errors"
	"fmt"
)

// GameConfig contains all tunable parameters of the maze chase simulation.
type GameConfig struct {
	Maze      MazeSettings      `yaml:"maze"`
	Gameplay  GameplaySettings  `yaml:"gameplay"`
	Speed     SpeedSettings     `yaml:"speed"`
	Timing    TimingSettings    `yaml:"timing"`
	Scoring   ScoringSettings   `yaml:"scoring"`
	AI        AISettings        `yaml:"ai"`
	Animation AnimationSettings `yaml:"animation"`
}

// MazeSettings defines the pixel geometry of the maze.
type MazeSettings struct {
	CellSize  int    `yaml:"cell_size"`  // Pixels per grid cell
	LevelsDir string `yaml:"levels_dir"` // Optional directory with levelN.yaml overrides
}

// GameplaySettings defines the run rules.
type GameplaySettings struct {
	InitialLives int  `yaml:"initial_lives"`
	MaxLevel     int  `yaml:"max_level"`
	StartLevel   int  `yaml:"start_level"`
	Progression  bool `yaml:"progression"` // false keeps level 1 speeds and timings for every level
}

// SpeedSettings holds per-level speeds in pixels per 60 Hz frame.
// Index 0 is level 1; levels past the end reuse the last entry.
type SpeedSettings struct {
	Player     []float64 `yaml:"player"`
	Ghost      []float64 `yaml:"ghost"`
	Frightened float64   `yaml:"frightened"`
}

// TimingSettings holds time-based rules in milliseconds.
type TimingSettings struct {
	PowerDurationMs []int `yaml:"power_duration_ms"` // Per level, index 0 is level 1
}

// ScoringSettings defines point values.
type ScoringSettings struct {
	Dot         int   `yaml:"dot"`
	PowerPellet int   `yaml:"power_pellet"`
	Ghosts      []int `yaml:"ghosts"` // Escalating values for consecutive ghosts in one power window
}

// AISettings tunes the ghost strategies.
type AISettings struct {
	AmbushCells      int `yaml:"ambush_cells"`       // Cells ahead of the player the ambusher aims at
	PatrolChaseMs    int `yaml:"patrol_chase_ms"`    // Patroller chase phase length
	PatrolScatterMs  int `yaml:"patrol_scatter_ms"`  // Patroller scatter phase length
	FleeCells        int `yaml:"flee_cells"`         // Wanderer flees when the player is closer than this
	WanderCells      int `yaml:"wander_cells"`       // Wanderer random target radius
	SpawnTolerancePx int `yaml:"spawn_tolerance_px"` // Eyes are home when this close to spawn on both axes
}

// AnimationSettings defines sprite animation cadence.
type AnimationSettings struct {
	FPS          int `yaml:"fps"`
	PlayerFrames int `yaml:"player_frames"`
	GhostFrames  int `yaml:"ghost_frames"`
}

// Validate checks that the configuration can drive a simulation.
func (c GameConfig) Validate() error {
	var errs []error
	if c.Maze.CellSize < 4 {
		errs = append(errs, fmt.Errorf("maze.cell_size must be at least 4, got %d", c.Maze.CellSize))
	}
	if c.Gameplay.InitialLives < 1 {
		errs = append(errs, fmt.Errorf("gameplay.initial_lives must be positive, got %d", c.Gameplay.InitialLives))
	}
	if c.Gameplay.MaxLevel < 1 {
		errs = append(errs, fmt.Errorf("gameplay.max_level must be positive, got %d", c.Gameplay.MaxLevel))
	}
	if len(c.Speed.Player) == 0 || len(c.Speed.Ghost) == 0 {
		errs = append(errs, errors.New("speed.player and speed.ghost need at least one entry"))
	}
	if c.Speed.Frightened <= 0 {
		errs = append(errs, errors.New("speed.frightened must be positive"))
	}
	if len(c.Timing.PowerDurationMs) == 0 {
		errs = append(errs, errors.New("timing.power_duration_ms needs at least one entry"))
	}
	if len(c.Scoring.Ghosts) == 0 {
		errs = append(errs, errors.New("scoring.ghosts needs at least one entry"))
	}
	if c.Animation.FPS <= 0 {
		errs = append(errs, errors.New("animation.fps must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
