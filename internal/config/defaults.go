package config

import (
	_ "embed"
)

//go:embed defaults/mazechase.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in maze chase configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Maze: MazeSettings{
			CellSize: 20,
		},
		Gameplay: GameplaySettings{
			InitialLives: 3,
			MaxLevel:     10,
			StartLevel:   1,
			Progression:  true,
		},
		Speed: SpeedSettings{
			Player:     []float64{2.0, 2.2, 2.4, 2.6, 2.8, 3.0, 3.2, 3.4, 3.6, 4.0},
			Ghost:      []float64{1.8, 2.0, 2.2, 2.4, 2.6, 2.8, 3.0, 3.2, 3.4, 3.8},
			Frightened: 1.2,
		},
		Timing: TimingSettings{
			PowerDurationMs: []int{8000, 7000, 6000, 5000, 4000, 3000, 3000, 3000, 2000, 2000},
		},
		Scoring: ScoringSettings{
			Dot:         10,
			PowerPellet: 50,
			Ghosts:      []int{200, 400, 800, 1600},
		},
		AI: AISettings{
			AmbushCells:      4,
			PatrolChaseMs:    7000,
			PatrolScatterMs:  20000,
			FleeCells:        8,
			WanderCells:      5,
			SpawnTolerancePx: 5,
		},
		Animation: AnimationSettings{
			FPS:          8,
			PlayerFrames: 4,
			GhostFrames:  2,
		},
	}
}

// DefaultYAML returns the embedded default configuration file, used by the
// CLI to print a starting point for custom configs.
func DefaultYAML() []byte {
	return defaultGameYAML
}
