package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/registry"
	"github.com/vovakirdan/tui-mazechase/internal/storage"
)

// GameFactory builds a fresh game for the settings chosen in the menu.
type GameFactory func(settings MenuSettings) (registry.Game, error)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.mazechase/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int

	// Menu holds the selector values new sessions start with.
	Menu MenuSettings

	// NewGame creates the game for a session. Required.
	NewGame GameFactory

	// Logger receives server and session logs. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.mazechase/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// sessionIDKey stores the session ID in the SSH context.
type sessionIDKey struct{}

// SSHServer wraps a Wish SSH server serving one game session per connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.NewGame == nil {
		return nil, errors.New("ssh: no game factory configured")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "mazechase-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("ssh: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".mazechase", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("ssh: cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	id, _ := sshSession.Context().Value(sessionIDKey{}).(string)
	model := NewSessionModel(SessionOptions{
		Store:    s.store,
		Config:   cfg,
		Username: sshSession.User(),
		ID:       id,
		Menu:     s.config.Menu,
		NewGame:  s.config.NewGame,
		Logger:   s.logger,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware tags the session with an ID and logs its lifetime.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		id := uuid.NewString()
		sshSession.Context().SetValue(sessionIDKey{}, id)

		start := time.Now()
		s.logger.Info("session started",
			"session", id,
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"session", id,
			"user", sshSession.User(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Store    *storage.Store
	Config   core.RuntimeConfig
	Username string
	ID       string // Generated when empty
	Menu     MenuSettings
	NewGame  GameFactory
	Logger   *log.Logger
}

// screenKind is the screen a session currently shows.
type screenKind int

const (
	screenMenu screenKind = iota
	screenScores
	screenGame
)

// SessionModel manages the full session flow inside one Bubble Tea program:
// menu, scoreboard and game. It is the top-level model for SSH sessions.
type SessionModel struct {
	opts       SessionOptions
	config     core.RuntimeConfig
	logger     *log.Logger
	current    screenKind
	menu       MenuModel
	scoreboard ScoreboardModel
	game       *Model
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return SessionModel{
		opts:   opts,
		config: opts.Config,
		logger: logger.With("session", opts.ID, "user", opts.Username),
		menu:   NewMenuModel(opts.Store, opts.Config, opts.Menu),
	}
}

// ID returns the session ID.
func (m SessionModel) ID() string {
	return m.opts.ID
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.opts.Menu = m.menu.Settings()
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.opts.Username, m.config.ScreenW, m.config.ScreenH)
		m.current = screenScores
		return m, m.scoreboard.Init()

	case m.menu.WantsPlay():
		settings := m.menu.Settings()
		m.opts.Menu = settings
		game, err := m.opts.NewGame(settings)
		if err != nil {
			m.logger.Error("game not created", "err", err)
			return m.backToMenu()
		}
		gameModel := NewModel(game, m.config, ModelOptions{
			Store:  m.opts.Store,
			Logger: m.logger,
			Player: m.opts.Username,
		})
		m.game = &gameModel
		m.current = screenGame
		m.logger.Info("game started", "difficulty", settings.Difficulty, "level", settings.Level)
		return m, m.game.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.scoreboard.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.scoreboard = board
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		// The game model asked its program to quit; the session goes on.
		m.game = nil
		return m.backToMenu()
	}
	return m, cmd
}

// backToMenu shows a fresh menu keeping the previous selections.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = NewMenuModel(m.opts.Store, m.config, m.opts.Menu)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
