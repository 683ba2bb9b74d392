package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mazechase/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresStats  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best recorded runs, or the recent runs of one player.

Examples:
  mazechase scores
  mazechase scores --limit 20
  mazechase scores --player alice
  mazechase scores --stats`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show the recent runs of this player")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show aggregated statistics")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresStats {
		return printStats(store)
	}

	var (
		runs  []storage.SessionRecord
		title string
	)
	if flagScoresPlayer != "" {
		title = fmt.Sprintf("Recent runs - %s", flagScoresPlayer)
		runs, err = store.PlayerSessions(flagScoresPlayer, flagScoresLimit)
	} else {
		title = "High Scores - Maze Chase"
		runs, err = store.TopSessions(flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'mazechase play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %-5s  %-5s  %s\n", "Rank", "Player", "Score", "Level", "Won", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-5s  %-5s  %s\n", "----", "------", "-----", "-----", "---", "----")

	for i, r := range runs {
		won := ""
		if r.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-16s  %-8d  %-5d  %-5s  %s\n",
			i+1, r.Player, r.Score, r.LevelReached, won, r.CompletedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if flagScoresPlayer != "" {
		if best, err := store.PlayerBest(flagScoresPlayer); err == nil && best != nil {
			fmt.Printf("Best: %d (level %d)\n", best.Score, best.LevelReached)
		}
	} else if high, err := store.HighScore(); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
	return nil
}

func printStats(store *storage.Store) error {
	st, err := store.Stats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Println("Statistics - Maze Chase")
	fmt.Println()
	fmt.Printf("  %-14s %d\n", "Runs", st.Runs)
	fmt.Printf("  %-14s %d\n", "Victories", st.Victories)
	fmt.Printf("  %-14s %d\n", "High score", st.HighScore)
	fmt.Printf("  %-14s %.0f\n", "Average score", st.AvgScore)
	fmt.Printf("  %-14s %d\n", "Best level", st.BestLevel)
	fmt.Printf("  %-14s %d\n", "Ghosts eaten", st.GhostsEaten)
	fmt.Printf("  %-14s %s\n", "Time played", st.TotalPlaying.Round(time.Second))
	if !st.LastPlayed.IsZero() {
		fmt.Printf("  %-14s %s\n", "Last played", st.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
