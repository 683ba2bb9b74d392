// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/tui-mazechase/internal/core"
)

// Game is the interface every playable game implements.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "mazechase").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Maze Chase").
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick of dt elapsed time.
	// Input is abstracted to platform-level actions (Up, Pause, etc.) and
	// was buffered since the previous tick.
	// Returns the result of this tick including current game state.
	Step(in core.InputFrame, dt time.Duration) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// HookSetter is implemented by games that report lifecycle events.
type HookSetter interface {
	SetHooks(h core.Hooks)
}

// Summarizer is implemented by games that can describe a finished run for
// persistence.
type Summarizer interface {
	Summary() core.RunSummary
}

// Resizer is implemented by games that can adapt to a new screen size
// without restarting.
type Resizer interface {
	Resize(w, h int)
}

// Stopper is implemented by games holding pending timers that must be
// cancelled when the session ends.
type Stopper interface {
	Stop()
}

// Options carries the player's selections into a new game. Zero values
// leave the game's configured defaults in place.
type Options struct {
	ConfigPath string // Custom config file
	Difficulty string // Preset name
	StartLevel int
}

// Factory is a function that creates a new instance of a game.
type Factory func(o Options) Game

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string, o Options) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(o), nil
}
