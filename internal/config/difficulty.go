package config

import "time"

// DifficultyManager resolves per-level game parameters from the config tables.
type DifficultyManager struct {
	cfg GameConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg GameConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// ClampLevel restricts a level number to [1, max_level].
func (d *DifficultyManager) ClampLevel(level int) int {
	return clamp(level, 1, max(d.cfg.Gameplay.MaxLevel, 1))
}

// index returns the table index for a level, honoring progression.
func (d *DifficultyManager) index(level, tableLen int) int {
	if !d.cfg.Gameplay.Progression {
		return 0
	}
	return clamp(d.ClampLevel(level)-1, 0, tableLen-1)
}

// PlayerSpeed returns the player speed for a level.
func (d *DifficultyManager) PlayerSpeed(level int) float64 {
	t := d.cfg.Speed.Player
	if len(t) == 0 {
		return 0
	}
	return t[d.index(level, len(t))]
}

// GhostSpeed returns the normal ghost speed for a level.
func (d *DifficultyManager) GhostSpeed(level int) float64 {
	t := d.cfg.Speed.Ghost
	if len(t) == 0 {
		return 0
	}
	return t[d.index(level, len(t))]
}

// FrightenedSpeed returns the ghost speed while frightened.
func (d *DifficultyManager) FrightenedSpeed() float64 {
	return d.cfg.Speed.Frightened
}

// PowerDuration returns how long power mode lasts on a level.
func (d *DifficultyManager) PowerDuration(level int) time.Duration {
	t := d.cfg.Timing.PowerDurationMs
	if len(t) == 0 {
		return 0
	}
	return time.Duration(t[d.index(level, len(t))]) * time.Millisecond
}

// GhostPoints returns the award for the n-th ghost (0-based) eaten in one
// power window. The sequence wraps around.
func (d *DifficultyManager) GhostPoints(n int) int {
	t := d.cfg.Scoring.Ghosts
	if len(t) == 0 {
		return 0
	}
	if n < 0 {
		n = 0
	}
	return t[n%len(t)]
}

// clamp restricts an int to [lo, hi].
func clamp(val, lo, hi int) int {
	return max(lo, min(hi, val))
}
