package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/registry"
	"github.com/vovakirdan/tui-mazechase/internal/storage"
)

// Model is the Bubble Tea model that drives one game: it feeds buffered
// input and wall clock deltas into Step and draws the result.
type Model struct {
	game         registry.Game
	screen       *core.Screen
	store        *storage.Store
	logger       *log.Logger
	player       string
	config       core.RuntimeConfig
	inputFrame   core.InputFrame
	gameState    core.GameState
	keyMapper    *KeyMapper
	help         help.Model
	lastTick     time.Time
	quitting     bool
	backToMenu   bool
	sessionSaved bool // Whether the finished run has been recorded
}

// ModelOptions carries the optional collaborators of a Model.
type ModelOptions struct {
	Store  *storage.Store
	Logger *log.Logger
	Player string
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("game", game.ID())

	if hs, ok := game.(registry.HookSetter); ok {
		hs.SetHooks(core.Hooks{
			OnLevelComplete: func(level int) { logger.Info("level complete", "level", level) },
			OnGameOver:      func(score int) { logger.Info("game over", "score", score) },
			OnVictory:       func(score int) { logger.Info("victory", "score", score) },
		})
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, boardHeight(cfg.ScreenH)),
		store:      opts.Store,
		logger:     logger,
		player:     opts.Player,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
	}
}

// boardHeight leaves the last terminal row for the key help line.
func boardHeight(h int) int {
	return max(h-1, 1)
}

// gameConfig is the runtime config as seen by the game.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = boardHeight(cfg.ScreenH)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	// gameState is set on the first tick (value receiver)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey buffers keyboard input until the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.stop()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.stop()
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize adapts the screen buffer, keeping the run when the game can
// resize in place.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	h := boardHeight(msg.Height)
	m.screen.Resize(msg.Width, h)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, h)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}

	return m, nil
}

// handleTick advances the simulation by the elapsed wall clock time.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	now := time.Time(msg)
	dt := frameDelta(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	result := m.game.Step(m.inputFrame, dt)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver {
		if !m.sessionSaved {
			m.saveSession()
			m.sessionSaved = true
		}
	} else {
		m.sessionSaved = false
	}

	return m, tickCmd(m.config.TickRate)
}

// saveSession records the finished run. Failures are logged and play goes on.
func (m Model) saveSession() {
	if m.store == nil {
		return
	}
	sum, ok := m.game.(registry.Summarizer)
	if !ok {
		return
	}
	s := sum.Summary()
	rec, err := m.store.SaveSession(storage.SessionRecord{
		Player:         m.player,
		Score:          s.Score,
		LevelReached:   s.LevelReached,
		LivesRemaining: s.LivesRemaining,
		DotsCollected:  s.DotsCollected,
		GhostsEaten:    s.GhostsEaten,
		Duration:       s.Duration,
		Won:            s.Won,
	})
	if err != nil {
		m.logger.Error("session not saved", "err", err)
		return
	}
	m.logger.Info("session saved", "run", rec.RunID, "player", rec.Player, "score", rec.Score)
}

// stop cancels pending game timers.
func (m Model) stop() {
	if s, ok := m.game.(registry.Stopper); ok {
		s.Stop()
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".mazechase", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot not written", "path", path, "err", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keyMapper.Keys())
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state seen at the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts a Bubble Tea program for one game. It reports whether the
// player asked to go back to the menu rather than quit.
func Run(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) (backToMenu bool, err error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
