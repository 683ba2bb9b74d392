package mazechase

import (
	"time"

	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase/actor"
	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase/maze"
)

// PlayerView is the render-facing state of the player.
type PlayerView struct {
	Pos        maze.Position
	Cell       maze.Cell
	Dir        actor.Direction
	Alive      bool
	Frame      int
	MouthAngle float64
}

// GhostView is the render-facing state of one ghost.
type GhostView struct {
	Kind   actor.Kind
	Pos    maze.Position
	Cell   maze.Cell
	Dir    actor.Direction
	State  actor.GhostState
	Target maze.Position
	Frame  int
}

// Snapshot captures the complete game state for rendering and determinism
// testing.
type Snapshot struct {
	Tick           uint64
	Phase          Phase
	Level          int
	LevelName      string
	Score          int
	Lives          int
	PowerActive    bool
	PowerRemaining time.Duration
	Elapsed        time.Duration
	Remaining      int // Pickups left on the level
	CellSize       int
	Tiles          [][]maze.Tile
	Player         PlayerView
	Ghosts         []GhostView
	TooSmall       bool
}

// Snapshot returns a copy of the current game state. Mutating it does not
// affect the game.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:        g.tick,
		Phase:       g.phase,
		Level:       g.level,
		LevelName:   g.levelName,
		Score:       g.score,
		Lives:       g.lives,
		PowerActive: g.powerActive,
		Elapsed:     g.clock,
		CellSize:    g.cfg.Maze.CellSize,
		TooSmall:    g.tooSmall,
	}
	if g.powerActive {
		s.PowerRemaining = max(g.powerDeadline-g.clock, 0)
	}
	if g.grid == nil {
		return s
	}

	s.Remaining = g.grid.RemainingPickups()
	s.Tiles = g.grid.Tiles()
	s.Player = PlayerView{
		Pos:        g.player.Pos,
		Cell:       g.player.Cell(g.grid),
		Dir:        g.player.Dir,
		Alive:      g.player.Alive,
		Frame:      g.player.Frame(),
		MouthAngle: g.player.MouthAngle(),
	}
	s.Ghosts = make([]GhostView, len(g.ghosts))
	for i, gh := range g.ghosts {
		s.Ghosts[i] = GhostView{
			Kind:   gh.Kind(),
			Pos:    gh.Pos,
			Cell:   g.grid.PixelToGrid(gh.Pos.X, gh.Pos.Y),
			Dir:    gh.Dir,
			State:  gh.State,
			Target: gh.Target,
			Frame:  gh.Frame(),
		}
	}
	return s
}
