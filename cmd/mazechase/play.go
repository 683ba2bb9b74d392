package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-mazechase/internal/config"
	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase"
	"github.com/vovakirdan/tui-mazechase/internal/platform/tui"
	"github.com/vovakirdan/tui-mazechase/internal/registry"
	"github.com/vovakirdan/tui-mazechase/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the menu and play",
	Long: `Start the game menu. Pick a difficulty and a start level, then play.
After a run you return to the menu to play again.

Controls:
  Arrows/WASD  - Move
  Enter        - Start / next level
  P/Space      - Pause
  R            - Restart (after game over)
  Esc          - Back to menu
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Five lives
  normal - Three lives, speeds rise with each level
  hard   - Two lives, starts at level 3
  fixed  - Speeds stay at the start level's values

Examples:
  mazechase play
  mazechase play --difficulty easy
  mazechase play --level 5
  mazechase play --config ./my-mazechase.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level, 1-10 (0 = from config)")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with your runs (default: OS user)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if f, fileErr := openLogFile(); fileErr == nil {
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut)
	if err != nil {
		return err
	}

	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		logger.Warn("config not loaded, using defaults", "path", flagConfig, "err", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", flagDBPath, "err", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	settings := tui.MenuSettings{
		Difficulty: preset,
		Level:      flagLevel,
		MaxLevel:   gameCfg.Gameplay.MaxLevel,
	}
	player := playerName()
	logger.Info("play started", "player", player, "difficulty", preset, "level", flagLevel)

	for {
		menuResult, err := tui.RunMenu(store, cfg, settings)
		if err != nil {
			return err
		}
		cfg = menuResult.Config
		settings = menuResult.Settings

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, player, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := newGame(settings)
		if err != nil {
			return err
		}
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, runErr := tui.Run(game, cfg, tui.ModelOptions{
			Store:  store,
			Logger: logger,
			Player: player,
		})
		if runErr != nil {
			return fmt.Errorf("running game: %w", runErr)
		}
		if !backToMenu {
			return nil
		}
	}
}

// newGame creates a game for the menu selection.
func newGame(settings tui.MenuSettings) (registry.Game, error) {
	return registry.Create(mazechase.ID, registry.Options{
		ConfigPath: flagConfig,
		Difficulty: string(settings.Difficulty),
		StartLevel: settings.Level,
	})
}

// playerName resolves the name recorded with local runs.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return storage.AnonymousPlayer
}
