package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Ticks per second requested from the platform (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  40,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current level (1-based)
	Lives    int  // Lives remaining
	GameOver bool // Whether the run has ended (lost or won)
	Won      bool // Whether the run ended by clearing the final level
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// RunSummary describes a finished (or abandoned) run for persistence.
type RunSummary struct {
	Score          int
	LevelReached   int
	LivesRemaining int
	DotsCollected  int
	GhostsEaten    int
	Duration       time.Duration // Simulated time spent playing
	Won            bool
}
