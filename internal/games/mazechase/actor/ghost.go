package actor

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase/maze"
)

// GhostFrames is the default number of ghost body animation frames.
const GhostFrames = 2

// GhostState is the behavioral state of a ghost.
type GhostState uint8

const (
	Normal     GhostState = iota
	Frightened            // Edible, slow, after a power pellet
	Eyes                  // Eaten, heading back to spawn
)

// String returns a human-readable name for the state.
func (s GhostState) String() string {
	switch s {
	case Frightened:
		return "frightened"
	case Eyes:
		return "eyes"
	default:
		return "normal"
	}
}

// canTransition lists the legal ghost state changes.
func canTransition(from, to GhostState) bool {
	switch {
	case from == Normal && to == Frightened:
		return true
	case from == Frightened && (to == Eyes || to == Normal):
		return true
	case from == Eyes && to == Normal:
		return true
	default:
		return false
	}
}

// Ghost is a pursuer. Every ghost shares the same per-tick lifecycle; the
// Strategy decides where it is heading.
type Ghost struct {
	Pos             maze.Position
	Dir             Direction
	Target          maze.Position
	State           GhostState
	Speed           float64
	FrightenedSpeed float64
	Radius          float64
	SpawnTolerance  float64

	strategy Strategy
	spawn    maze.Position
	anim     animator
}

// NewGhost creates a ghost standing on its spawn point.
func NewGhost(s Strategy, spawn maze.Position, speed, frightenedSpeed, radius float64, anim Animation) *Ghost {
	return &Ghost{
		Pos:             spawn,
		Target:          spawn,
		Speed:           speed,
		FrightenedSpeed: frightenedSpeed,
		Radius:          radius,
		SpawnTolerance:  5,
		strategy:        s,
		spawn:           spawn,
		anim:            newAnimator(anim, GhostFrames),
	}
}

// Kind returns the strategy kind of the ghost.
func (g *Ghost) Kind() Kind {
	return g.strategy.Kind()
}

// Strategy returns the targeting strategy.
func (g *Ghost) Strategy() Strategy {
	return g.strategy
}

// Spawn returns the spawn point.
func (g *Ghost) Spawn() maze.Position {
	return g.spawn
}

// Frame returns the current animation frame.
func (g *Ghost) Frame() int {
	return g.anim.frame
}

// SetState requests a state change. Illegal transitions are ignored and
// reported as false.
func (g *Ghost) SetState(s GhostState) bool {
	if !canTransition(g.State, s) {
		return false
	}
	g.State = s
	return true
}

// Update runs one tick of the ghost lifecycle: strategy timers, animation,
// targeting, a single-axis greedy step and the eyes-home check.
func (g *Ghost) Update(dt time.Duration, grid *maze.Grid, player maze.Position) {
	g.strategy.Advance(dt)
	g.anim.advance(dt)

	if g.State == Eyes {
		g.Target = g.spawn
	} else {
		g.Target = g.strategy.Target(g.Pos, player, grid)
	}

	dir := greedyDirection(g.Pos, g.Target)
	if dir != None {
		speed := g.Speed
		if g.State == Frightened {
			speed = g.FrightenedSpeed
		}
		if next, ok := Step(grid, g.Pos, dir, Distance(speed, dt), g.Radius); ok {
			g.Pos = next
			g.Dir = dir
		}
	}

	if g.State == Eyes && g.IsAtSpawn() {
		g.SetState(Normal)
	}
}

// greedyDirection picks the axis with the larger distance to the target.
// Ties go horizontal; a ghost already on its target does not move.
func greedyDirection(from, to maze.Position) Direction {
	dx := to.X - from.X
	dy := to.Y - from.Y
	switch {
	case dx == 0 && dy == 0:
		return None
	case math.Abs(dx) >= math.Abs(dy):
		if dx > 0 {
			return Right
		}
		return Left
	case dy > 0:
		return Down
	default:
		return Up
	}
}

// IsAtSpawn reports whether the ghost is within SpawnTolerance pixels of its
// spawn point on both axes.
func (g *Ghost) IsAtSpawn() bool {
	return math.Abs(g.Pos.X-g.spawn.X) <= g.SpawnTolerance &&
		math.Abs(g.Pos.Y-g.spawn.Y) <= g.SpawnTolerance
}

// Reset returns the ghost to its spawn in the normal state.
func (g *Ghost) Reset() {
	g.Pos = g.spawn
	g.Target = g.spawn
	g.Dir = None
	g.State = Normal
}

// Touches reports whether the ghost overlaps an actor centred at pos with the
// given radius.
func (g *Ghost) Touches(pos maze.Position, radius float64) bool {
	dx := g.Pos.X - pos.X
	dy := g.Pos.Y - pos.Y
	return math.Sqrt(dx*dx+dy*dy) < g.Radius+radius
}
