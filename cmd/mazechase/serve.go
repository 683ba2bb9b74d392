package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mazechase/internal/config"
	"github.com/vovakirdan/tui-mazechase/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Maze Chase SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the game menu. Runs are
recorded under the SSH user name and all users share the same leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.mazechase/host_key

Examples:
  mazechase serve                           # Listen on :23234 with auto-generated key
  mazechase serve --ssh :2222               # Listen on port 2222
  mazechase serve --host-key ./my_host_key  # Use specific host key
  mazechase serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Default difficulty preset for new sessions")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		logger.Warn("config not loaded, using defaults", "path", flagConfig, "err", err)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Menu = tui.MenuSettings{Difficulty: preset, MaxLevel: gameCfg.Gameplay.MaxLevel}
	cfg.NewGame = newGame
	cfg.Logger = logger

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Maze Chase SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
