package actor

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase/maze"
)

// Kind identifies one of the four ghost personalities.
type Kind uint8

const (
	Chaser    Kind = iota // Red: heads straight for the player
	Ambusher              // Pink: aims a few cells ahead of the player
	Patroller             // Cyan: alternates between chasing and a far corner
	Wanderer              // Orange: flees when close, roams otherwise
)

// Kinds lists every ghost kind in spawn order.
var Kinds = []Kind{Chaser, Ambusher, Patroller, Wanderer}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Chaser:
		return "chaser"
	case Ambusher:
		return "ambusher"
	case Patroller:
		return "patroller"
	case Wanderer:
		return "wanderer"
	default:
		return "unknown"
	}
}

// Strategy computes where a ghost is heading.
type Strategy interface {
	Kind() Kind
	// Advance moves strategy-internal timers forward. It runs before the
	// shared lifecycle on every tick.
	Advance(dt time.Duration)
	// Target returns the pixel position the ghost at self should head for.
	Target(self, player maze.Position, g *maze.Grid) maze.Position
}

// Tuning holds the strategy parameters.
type Tuning struct {
	AmbushCells   int
	PatrolChase   time.Duration
	PatrolScatter time.Duration
	FleeCells     int
	WanderCells   int
}

// DefaultTuning returns the classic parameters.
func DefaultTuning() Tuning {
	return Tuning{
		AmbushCells:   4,
		PatrolChase:   7 * time.Second,
		PatrolScatter: 20 * time.Second,
		FleeCells:     8,
		WanderCells:   5,
	}
}

// NewStrategy builds the strategy for a kind. rng is only used by the
// wanderer and must not be shared with anything that needs its own sequence.
func NewStrategy(k Kind, t Tuning, rng *rand.Rand) Strategy {
	switch k {
	case Ambusher:
		return &AmbushStrategy{Cells: t.AmbushCells}
	case Patroller:
		return &PatrolStrategy{ChaseFor: t.PatrolChase, ScatterFor: t.PatrolScatter, chasing: true}
	case Wanderer:
		return &WanderStrategy{FleeCells: t.FleeCells, WanderCells: t.WanderCells, rng: rng}
	default:
		return ChaseStrategy{}
	}
}

// ChaseStrategy targets the player directly.
type ChaseStrategy struct{}

func (ChaseStrategy) Kind() Kind            { return Chaser }
func (ChaseStrategy) Advance(time.Duration) {}

func (ChaseStrategy) Target(_, player maze.Position, _ *maze.Grid) maze.Position {
	return player
}

// AmbushStrategy targets a cell ahead of the player. The player's heading is
// inferred from the ghost-to-player vector, not tracked.
type AmbushStrategy struct {
	Cells int
}

func (*AmbushStrategy) Kind() Kind            { return Ambusher }
func (*AmbushStrategy) Advance(time.Duration) {}

// Target predicts Cells ahead of the player along the dominant axis of the
// ghost to player vector. Ties, including a ghost sitting on the player,
// predict along the vertical axis.
func (a *AmbushStrategy) Target(self, player maze.Position, g *maze.Grid) maze.Position {
	dx := player.X - self.X
	dy := player.Y - self.Y

	c := g.PixelToGrid(player.X, player.Y)
	switch {
	case math.Abs(dx) > math.Abs(dy) && dx > 0:
		c.X += a.Cells
	case math.Abs(dx) > math.Abs(dy):
		c.X -= a.Cells
	case dy > 0:
		c.Y += a.Cells
	default:
		c.Y -= a.Cells
	}
	c.X = max(0, min(g.W-1, c.X))
	c.Y = max(0, min(g.H-1, c.Y))

	if g.IsWall(c.X, c.Y) {
		return player
	}
	return g.GridToPixel(c.X, c.Y)
}

// PatrolStrategy alternates between chasing the player and heading for the
// far bottom-right corner, on its own timer.
type PatrolStrategy struct {
	ChaseFor   time.Duration
	ScatterFor time.Duration

	chasing bool
	elapsed time.Duration
}

func (*PatrolStrategy) Kind() Kind { return Patroller }

// Chasing reports whether the patroller is in its chase phase.
func (p *PatrolStrategy) Chasing() bool {
	return p.chasing
}

func (p *PatrolStrategy) Advance(dt time.Duration) {
	p.elapsed += dt
	limit := p.ScatterFor
	if p.chasing {
		limit = p.ChaseFor
	}
	if p.elapsed >= limit {
		p.chasing = !p.chasing
		p.elapsed = 0
	}
}

func (p *PatrolStrategy) Target(_, player maze.Position, g *maze.Grid) maze.Position {
	if p.chasing {
		return player
	}
	return g.GridToPixel(g.W-2, g.H-2)
}

// WanderStrategy runs from a nearby player and otherwise picks a random
// point around itself every tick.
type WanderStrategy struct {
	FleeCells   int
	WanderCells int

	rng *rand.Rand
}

func (*WanderStrategy) Kind() Kind            { return Wanderer }
func (*WanderStrategy) Advance(time.Duration) {}

func (w *WanderStrategy) Target(self, player maze.Position, g *maze.Grid) maze.Position {
	cs := float64(g.CellSize)
	dx := player.X - self.X
	dy := player.Y - self.Y

	var t maze.Position
	if math.Sqrt(dx*dx+dy*dy)/cs < float64(w.FleeCells) {
		t = maze.P(self.X-dx, self.Y-dy)
	} else {
		// sqrt keeps the point uniform over the disc area
		angle := w.rng.Float64() * 2 * math.Pi
		r := math.Sqrt(w.rng.Float64()) * float64(w.WanderCells) * cs
		t = maze.P(self.X+math.Cos(angle)*r, self.Y+math.Sin(angle)*r)
	}

	t.X = math.Max(cs, math.Min(float64(g.W-1)*cs, t.X))
	t.Y = math.Max(cs, math.Min(float64(g.H-1)*cs, t.Y))
	return t
}
