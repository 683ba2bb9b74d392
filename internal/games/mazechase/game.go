// Package mazechase implements the maze chase game loop: one player clearing
// a maze of dots while four ghosts hunt it, with power pellets, escalating
// ghost scores, lives and a ten-level speed curve.
package mazechase

import (
	"errors"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-mazechase/internal/config"
	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase/actor"
	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase/maze"
	"github.com/vovakirdan/tui-mazechase/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "mazechase"

// MaxFrameDelta is the longest slice of time simulated in one pass. Longer
// ticks are split so a stalled frame cannot carry an actor through a wall.
const MaxFrameDelta = 50 * time.Millisecond

// Phase is the top-level state of a run.
type Phase uint8

const (
	PhaseReady Phase = iota
	PhasePlaying
	PhasePaused
	PhaseLevelComplete
	PhaseGameOver
	PhaseVictory
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseGameOver:
		return "game_over"
	case PhaseVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has ended.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseVictory
}

// Game implements the maze chase game.
type Game struct {
	cfg        config.GameConfig
	configured bool
	opts       *Options
	levels     maze.Source
	diff       *config.DifficultyManager
	rng        *rand.Rand
	hooks      core.Hooks
	err        error

	phase      Phase
	startLevel int
	level      int
	levelName  string
	score      int
	lives      int
	stopped    bool
	tick       uint64

	grid   *maze.Grid
	player *actor.Player
	ghosts []*actor.Ghost

	// Simulation clock; advances only while playing.
	clock         time.Duration
	powerActive   bool
	powerDeadline time.Duration
	ghostStreak   int // Ghosts eaten since the last power pellet

	dotsCollected int
	ghostsEaten   int

	screenW  int
	screenH  int
	tooSmall bool
}

func init() {
	registry.Register(ID, func(o registry.Options) registry.Game {
		return NewWithOptions(optionsFrom(o))
	})
}

// NewWithOptions creates a game that loads its configuration and levels on
// the first Reset. Each instance keeps its own settings, so concurrent
// sessions never share them.
func NewWithOptions(o Options) *Game {
	return &Game{opts: &o}
}

// NewWithConfig creates a game with an explicit configuration and level
// source.
func NewWithConfig(cfg config.GameConfig, levels maze.Source) *Game {
	return &Game{cfg: cfg, levels: levels, configured: true}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Maze Chase"
}

// SetHooks installs lifecycle callbacks.
func (g *Game) SetHooks(h core.Hooks) {
	g.hooks = h
}

// Reset initializes the game for a new session and leaves it in the ready
// phase with the start level loaded.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.configured {
		var o Options
		if g.opts != nil {
			o = *g.opts
		}
		g.cfg, g.levels = loadSettings(o)
		g.configured = true
	}
	g.diff = config.NewDifficultyManager(g.cfg)
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.startLevel = g.diff.ClampLevel(g.cfg.Gameplay.StartLevel)
	g.tick = 0
	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH

	g.err = g.beginRun()
	g.phase = PhaseReady
}

// StartGame (re)starts a run from the start level with a fresh score and
// full lives. It is valid from any phase.
func (g *Game) StartGame() error {
	if g.diff == nil {
		g.Reset(core.DefaultConfig())
	}
	if err := g.beginRun(); err != nil {
		g.err = err
		g.phase = PhaseReady
		return err
	}
	g.err = nil
	g.stopped = false
	g.phase = PhasePlaying
	return nil
}

// beginRun resets run state and loads the start level.
func (g *Game) beginRun() error {
	g.score = 0
	g.lives = g.cfg.Gameplay.InitialLives
	g.clock = 0
	g.dotsCollected = 0
	g.ghostsEaten = 0
	return g.loadLevel(g.startLevel)
}

// loadLevel builds the grid and actors for level n. Missing level data falls
// back to level 1.
func (g *Game) loadLevel(n int) error {
	n = g.diff.ClampLevel(n)
	if g.levels == nil {
		return errors.New("mazechase: no level source")
	}
	l, err := g.levels.Level(n)
	if err == nil {
		err = maze.Validate(l)
	}
	if err != nil && n != 1 {
		l, err = g.levels.Level(1)
		if err == nil {
			err = maze.Validate(l)
		}
	}
	if err != nil {
		return err
	}

	g.level = n
	g.levelName = l.Name
	g.grid = maze.NewGrid(l, g.cfg.Maze.CellSize)
	g.powerActive = false
	g.ghostStreak = 0

	cs := float64(g.cfg.Maze.CellSize)
	radius := cs/2 - 2
	playerAnim := actor.Animation{FPS: g.cfg.Animation.FPS, Frames: g.cfg.Animation.PlayerFrames}
	ghostAnim := actor.Animation{FPS: g.cfg.Animation.FPS, Frames: g.cfg.Animation.GhostFrames}

	start := g.grid.PlayerStart()
	g.player = actor.NewPlayer(g.grid.GridToPixel(start.X, start.Y), g.diff.PlayerSpeed(n), radius, playerAnim)

	spawns := g.grid.GhostSpawns()
	tuning := tuningFor(g.cfg.AI)
	g.ghosts = make([]*actor.Ghost, 0, len(actor.Kinds))
	for i, kind := range actor.Kinds {
		cell := spawns[0]
		if i < len(spawns) {
			cell = spawns[i]
		}
		rng := rand.New(rand.NewSource(g.rng.Int63()))
		gh := actor.NewGhost(
			actor.NewStrategy(kind, tuning, rng),
			g.grid.GridToPixel(cell.X, cell.Y),
			g.diff.GhostSpeed(n),
			g.diff.FrightenedSpeed(),
			radius,
			ghostAnim,
		)
		gh.SpawnTolerance = float64(g.cfg.AI.SpawnTolerancePx)
		g.ghosts = append(g.ghosts, gh)
	}
	g.Resize(g.screenW, g.screenH)
	return nil
}

func tuningFor(ai config.AISettings) actor.Tuning {
	return actor.Tuning{
		AmbushCells:   ai.AmbushCells,
		PatrolChase:   time.Duration(ai.PatrolChaseMs) * time.Millisecond,
		PatrolScatter: time.Duration(ai.PatrolScatterMs) * time.Millisecond,
		FleeCells:     ai.FleeCells,
		WanderCells:   ai.WanderCells,
	}
}

// TogglePause switches between playing and paused. Other phases ignore it.
func (g *Game) TogglePause() {
	switch g.phase {
	case PhasePlaying:
		g.phase = PhasePaused
	case PhasePaused:
		g.phase = PhasePlaying
	}
}

// SetDirection queues a player heading for the next tick. Ignored unless
// playing.
func (g *Game) SetDirection(d actor.Direction) {
	if g.phase != PhasePlaying || g.player == nil {
		return
	}
	g.player.SetDirection(d)
}

// NextLevel loads the following level after a level was completed and
// resumes play. Score and lives carry over.
func (g *Game) NextLevel() error {
	if g.phase != PhaseLevelComplete {
		return nil
	}
	if err := g.loadLevel(g.level + 1); err != nil {
		g.err = err
		return err
	}
	g.phase = PhasePlaying
	return nil
}

// Stop cancels any pending power-mode deadline and halts ticking until the
// next StartGame.
func (g *Game) Stop() {
	g.stopped = true
	g.endPower()
}

// Tick advances the simulation by dt. Only the playing phase moves anything.
// A dt longer than MaxFrameDelta is simulated in slices, stopping early once
// the phase leaves playing.
func (g *Game) Tick(dt time.Duration) {
	if g.stopped || g.phase != PhasePlaying || dt <= 0 {
		return
	}
	g.tick++
	for dt > 0 && g.phase == PhasePlaying {
		slice := min(dt, MaxFrameDelta)
		dt -= slice
		g.advance(slice)
	}
}

// advance runs one slice of play: power expiry, player, pickups, ghosts and
// collisions.
func (g *Game) advance(dt time.Duration) {
	g.clock += dt

	if g.powerActive && g.clock >= g.powerDeadline {
		g.endPower()
	}

	g.player.Update(dt, g.grid)
	g.collectPickup()

	if g.grid.RemainingPickups() == 0 {
		g.completeLevel()
		return
	}

	for _, gh := range g.ghosts {
		gh.Update(dt, g.grid, g.player.Pos)
	}
	g.resolveCollisions()
}

// collectPickup scores the tile under the player.
func (g *Game) collectPickup() {
	c := g.player.Cell(g.grid)
	switch g.grid.TileAt(c.X, c.Y) {
	case maze.Dot:
		g.grid.SetTile(c.X, c.Y, maze.Empty)
		g.score += g.cfg.Scoring.Dot
		g.dotsCollected++
	case maze.PowerPellet:
		g.grid.SetTile(c.X, c.Y, maze.Empty)
		g.score += g.cfg.Scoring.PowerPellet
		g.dotsCollected++
		g.activatePower()
	}
}

// activatePower frightens every ghost that is not already eyes and re-arms
// the deadline from now. A second pellet restarts the window.
func (g *Game) activatePower() {
	for _, gh := range g.ghosts {
		if gh.State != actor.Eyes {
			gh.SetState(actor.Frightened)
		}
	}
	g.ghostStreak = 0
	g.powerActive = true
	g.powerDeadline = g.clock + g.diff.PowerDuration(g.level)
}

// endPower reverts frightened ghosts and clears the deadline.
func (g *Game) endPower() {
	for _, gh := range g.ghosts {
		if gh.State == actor.Frightened {
			gh.SetState(actor.Normal)
		}
	}
	g.powerActive = false
	g.powerDeadline = 0
}

// completeLevel ends the level, or the run when it was the last one.
func (g *Game) completeLevel() {
	g.endPower()
	if g.level >= g.cfg.Gameplay.MaxLevel {
		g.phase = PhaseVictory
		g.hooks.FireVictory(g.score)
		return
	}
	g.phase = PhaseLevelComplete
	g.hooks.FireLevelComplete(g.level)
}

// resolveCollisions checks the player against each ghost.
func (g *Game) resolveCollisions() {
	for _, gh := range g.ghosts {
		if !gh.Touches(g.player.Pos, g.player.Radius) {
			continue
		}
		switch gh.State {
		case actor.Frightened:
			gh.SetState(actor.Eyes)
			g.score += g.diff.GhostPoints(g.ghostStreak)
			g.ghostStreak++
			g.ghostsEaten++
		case actor.Normal:
			g.loseLife()
			return
		}
	}
}

// loseLife takes a life and either ends the run or resets the actors.
func (g *Game) loseLife() {
	g.lives--
	g.endPower()
	if g.lives <= 0 {
		g.lives = 0
		g.player.Kill()
		g.phase = PhaseGameOver
		g.hooks.FireGameOver(g.score)
		return
	}

	start := g.grid.PlayerStart()
	g.player.Reset(g.grid.GridToPixel(start.X, start.Y))
	for _, gh := range g.ghosts {
		gh.Reset()
	}
}

// Step maps platform input onto game operations and advances one tick.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	switch {
	case in.Has(core.ActionRestart) && g.phase.Terminal():
		//nolint:errcheck // Error is kept in g.err and rendered
		g.StartGame()
	case in.Has(core.ActionConfirm):
		switch g.phase {
		case PhaseReady, PhaseGameOver, PhaseVictory:
			//nolint:errcheck // Error is kept in g.err and rendered
			g.StartGame()
		case PhaseLevelComplete:
			//nolint:errcheck // Error is kept in g.err and rendered
			g.NextLevel()
		}
	}

	if in.Has(core.ActionPause) {
		g.TogglePause()
	}
	if d := directionFor(in.LastDirection); d != actor.None {
		g.SetDirection(d)
	}

	if g.tooSmall && g.phase == PhasePlaying {
		g.phase = PhasePaused
	}

	g.Tick(dt)
	return core.StepResult{State: g.State()}
}

// directionFor converts a directional action to a heading.
func directionFor(a core.Action) actor.Direction {
	switch a {
	case core.ActionUp:
		return actor.Up
	case core.ActionDown:
		return actor.Down
	case core.ActionLeft:
		return actor.Left
	case core.ActionRight:
		return actor.Right
	default:
		return actor.None
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.level,
		Lives:    g.lives,
		GameOver: g.phase.Terminal(),
		Won:      g.phase == PhaseVictory,
		Paused:   g.phase == PhasePaused,
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Err returns the last level loading error, if any.
func (g *Game) Err() error {
	return g.err
}

// Summary describes the current run for persistence.
func (g *Game) Summary() core.RunSummary {
	return core.RunSummary{
		Score:          g.score,
		LevelReached:   g.level,
		LivesRemaining: g.lives,
		DotsCollected:  g.dotsCollected,
		GhostsEaten:    g.ghostsEaten,
		Duration:       g.clock,
		Won:            g.phase == PhaseVictory,
	}
}
