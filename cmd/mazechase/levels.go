package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mazechase/internal/config"
	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase/maze"
)

var flagLevelFile string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List or validate level files",
	Long: `List the levels the game will use, or validate a single level file.

Levels are looked up in the configured levels directory first, then in the
built-in set. Levels without their own layout reuse level 1.

Examples:
  mazechase levels
  mazechase levels --config ./my-mazechase.yaml
  mazechase levels --file ./level3.yaml`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelFile, "file", "", "Validate a single level file")
	levelsCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runLevels(_ *cobra.Command, _ []string) error {
	if flagLevelFile != "" {
		l, err := maze.LoadFile(flagLevelFile)
		if err != nil {
			return err
		}
		fmt.Printf("%s: ok\n", flagLevelFile)
		printLevel(l)
		return nil
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	catalog := maze.NewCatalog(cfg.Maze.LevelsDir, cfg.Gameplay.MaxLevel)

	fmt.Printf("  %-5s  %-20s  %-7s  %-7s  %s\n", "Level", "Name", "Size", "Pickups", "Source")
	fmt.Printf("  %-5s  %-20s  %-7s  %-7s  %s\n", "-----", "----", "----", "-------", "------")
	for n := 1; n <= catalog.MaxLevel(); n++ {
		l, err := catalog.Load(n)
		if err != nil {
			fmt.Printf("  %-5d  %-20s  %-7s  %-7s  %s\n", n, "(level 1)", "", "", "fallback")
			continue
		}
		fmt.Printf("  %-5d  %-20s  %-7s  %-7d  %s\n",
			n, l.Name, fmt.Sprintf("%dx%d", l.Width(), l.Height()), l.Pickups(), l.FilePath)
	}
	return nil
}

func printLevel(l maze.Level) {
	fmt.Printf("  Level:   %d\n", l.Number)
	fmt.Printf("  Name:    %s\n", l.Name)
	fmt.Printf("  Size:    %dx%d\n", l.Width(), l.Height())
	fmt.Printf("  Pickups: %d\n", l.Pickups())
	fmt.Printf("  Ghosts:  %d spawn(s)\n", len(l.GhostSpawns))
	fmt.Printf("  Tunnels: %d pair(s)\n", len(l.Tunnels))
}
