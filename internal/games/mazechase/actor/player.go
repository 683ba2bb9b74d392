package actor

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase/maze"
)

// TurnProbe is the test distance, in pixels, used to decide whether a queued
// turn can be taken yet.
const TurnProbe = 4.0

// PlayerFrames is the default number of mouth animation frames.
const PlayerFrames = 4

// Player is the user-controlled actor.
type Player struct {
	Pos    maze.Position
	Dir    Direction // Current heading
	Queued Direction // Requested heading, applied once the way is open
	Speed  float64
	Radius float64
	Alive  bool

	anim animator
}

// NewPlayer creates a live player at pos.
func NewPlayer(pos maze.Position, speed, radius float64, anim Animation) *Player {
	return &Player{
		Pos:    pos,
		Speed:  speed,
		Radius: radius,
		Alive:  true,
		anim:   newAnimator(anim, PlayerFrames),
	}
}

// SetDirection queues a heading. Nothing moves until the next Update.
func (p *Player) SetDirection(d Direction) {
	p.Queued = d
}

// Update advances the player by dt. A queued turn is taken as soon as a short
// probe in that direction is clear. Running into a wall stops the player.
func (p *Player) Update(dt time.Duration, g *maze.Grid) {
	if !p.Alive {
		return
	}
	p.anim.advance(dt)

	if p.Queued != None && p.Queued != p.Dir {
		if _, ok := Step(g, p.Pos, p.Queued, TurnProbe, p.Radius); ok {
			p.Dir = p.Queued
		}
	}

	if p.Dir == None {
		return
	}
	next, ok := Step(g, p.Pos, p.Dir, Distance(p.Speed, dt), p.Radius)
	if !ok {
		p.Dir = None
		return
	}
	p.Pos = next
}

// Kill marks the player dead and halts it.
func (p *Player) Kill() {
	p.Alive = false
	p.Dir = None
}

// Reset puts the player back at pos, alive and standing still.
func (p *Player) Reset(pos maze.Position) {
	p.Pos = pos
	p.Dir = None
	p.Queued = None
	p.Alive = true
	p.anim.reset()
}

// Frame returns the current animation frame.
func (p *Player) Frame() int {
	return p.anim.frame
}

// mouthOpenings are the mouth stages, as fractions of the widest opening.
var mouthOpenings = [...]float64{0, 0.4, 0.7, 1}

// MouthAngle returns the half-opening of the mouth in radians for the
// current frame. Frames spread evenly over closed, 40%, 70% and fully open
// at 45 degrees.
func (p *Player) MouthAngle() float64 {
	const maxAngle = math.Pi / 4
	i := p.anim.frame * len(mouthOpenings) / p.anim.frames
	return maxAngle * mouthOpenings[i]
}

// Cell returns the grid cell under the player's centre.
func (p *Player) Cell(g *maze.Grid) maze.Cell {
	return g.PixelToGrid(p.Pos.X, p.Pos.Y)
}
