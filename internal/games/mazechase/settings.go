package mazechase

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mazechase/internal/config"
	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase/maze"
	"github.com/vovakirdan/tui-mazechase/internal/registry"
)

var logger = log.New(io.Discard)

// SetLogger sets the logger used for config and level diagnostics.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Options selects the configuration of a single game instance. Zero values
// fall back to the config file.
type Options struct {
	ConfigPath string
	Difficulty config.DifficultyPreset
	StartLevel int
}

// optionsFrom converts registry options. An unknown difficulty is logged and
// leaves the config file values unchanged.
func optionsFrom(o registry.Options) Options {
	opts := Options{ConfigPath: o.ConfigPath, StartLevel: o.StartLevel}
	if o.Difficulty == "" {
		return opts
	}
	p, err := config.ParsePreset(o.Difficulty)
	if err != nil {
		logger.Warn("ignoring difficulty", "err", err)
		return opts
	}
	opts.Difficulty = p
	return opts
}

// loadSettings resolves the configuration and the level catalog.
func loadSettings(o Options) (config.GameConfig, maze.Source) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		logger.Warn("config not loaded, using defaults", "path", o.ConfigPath, "err", err)
	}
	if o.Difficulty != "" {
		config.ApplyPreset(&cfg, o.Difficulty)
	}
	if o.StartLevel > 0 {
		cfg.Gameplay.StartLevel = o.StartLevel
	}

	catalog := maze.NewCatalog(cfg.Maze.LevelsDir, cfg.Gameplay.MaxLevel)
	catalog.SetLogger(logger)
	logger.Debug("settings loaded",
		"preset", o.Difficulty,
		"levels_dir", cfg.Maze.LevelsDir,
		"max_level", cfg.Gameplay.MaxLevel)
	return cfg, catalog
}
