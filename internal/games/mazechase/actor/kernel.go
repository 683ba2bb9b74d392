package actor

import (
	"time"

	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase/maze"
)

// FrameMs is the frame length, in milliseconds, that speeds are expressed in.
// A speed of 2 moves 2 px per 60 Hz frame.
const FrameMs = 16.67

// Distance converts a speed and an elapsed time into pixels travelled.
func Distance(speed float64, dt time.Duration) float64 {
	ms := float64(dt) / float64(time.Millisecond)
	return speed * (ms / FrameMs)
}

// Step is the movement kernel shared by every actor. It moves pos by distance
// pixels in dir and accepts the move only if the square box of side 2*radius
// centred on the new position touches no wall. A rejected move returns pos
// unchanged and false.
//
// An accepted move that enters a registered tunnel cell teleports the actor
// to the centre of the partner cell. Arriving at the partner is not an entry,
// so actors never bounce between the two ends.
func Step(g *maze.Grid, pos maze.Position, dir Direction, distance, radius float64) (maze.Position, bool) {
	if dir == None {
		return pos, true
	}

	dx, dy := dir.Delta()
	next := maze.P(pos.X+dx*distance, pos.Y+dy*distance)
	if Blocked(g, next, radius) {
		return pos, false
	}

	from := g.PixelToGrid(pos.X, pos.Y)
	to := g.PixelToGrid(next.X, next.Y)
	if to != from && g.IsTunnel(to.X, to.Y) {
		if exit, ok := g.TunnelExit(to.X, to.Y); ok {
			next = g.GridToPixel(exit.X, exit.Y)
		}
	}
	return next, true
}

// Blocked reports whether an actor of the given radius centred on pos would
// overlap a wall.
func Blocked(g *maze.Grid, pos maze.Position, radius float64) bool {
	size := radius * 2
	return g.CheckCollision(pos.X-radius, pos.Y-radius, size, size)
}

// animator advances a looping frame counter at a fixed rate.
type animator struct {
	frame   int
	frames  int
	step    time.Duration
	elapsed time.Duration
}

// Animation sets the sprite cadence of an actor. Zero values fall back to
// 8 fps and the actor's default frame count.
type Animation struct {
	FPS    int
	Frames int
}

func newAnimator(a Animation, defaultFrames int) animator {
	fps := a.FPS
	if fps <= 0 {
		fps = 8
	}
	frames := a.Frames
	if frames <= 0 {
		frames = defaultFrames
	}
	return animator{frames: max(frames, 1), step: time.Second / time.Duration(fps)}
}

// advance flips at most one frame per call. Leftover time is dropped.
func (a *animator) advance(dt time.Duration) {
	a.elapsed += dt
	if a.elapsed >= a.step {
		a.frame = (a.frame + 1) % a.frames
		a.elapsed = 0
	}
}

func (a *animator) reset() {
	a.frame = 0
	a.elapsed = 0
}
