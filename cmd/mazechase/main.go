// mazechase is a terminal maze chase game: clear the maze of dots while four
// ghosts hunt you down.
//
// Usage:
//
//	mazechase play            - Open the menu and play
//	mazechase serve           - Start SSH server for remote play
//	mazechase scores          - Show the leaderboard
//	mazechase levels          - List or validate level files
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.mazechase/scores.db)
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mazechase/internal/config"
	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mazechase",
	Short: "Maze Chase - eat the dots, dodge the ghosts",
	Long: `Maze Chase is a terminal maze game. Clear every dot to finish a level,
grab a power pellet to turn the tables on the ghosts, and survive ten levels
of rising speed.

Available commands:
  play     - Open the menu and play
  serve    - Start SSH server for remote play
  scores   - View the leaderboard
  levels   - List or validate level files

Examples:
  mazechase play
  mazechase play --difficulty hard --level 4
  mazechase serve --ssh :2222
  mazechase scores --player alice
  mazechase levels --file ./level3.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mazechase/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}

// newLogger builds the application logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "mazechase",
		Level:           level,
	})
	mazechase.SetLogger(logger)
	return logger, nil
}

// openLogFile opens ~/.mazechase/mazechase.log for appending. The alt screen
// owns the terminal while playing, so logs go to a file.
func openLogFile() (*os.File, error) {
	dir := config.UserDir()
	if dir == "" {
		return nil, errors.New("home directory unavailable")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "mazechase.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
