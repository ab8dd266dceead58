package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/catapult/internal/storage"
)

var (
	flagScoresWeek  bool
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best finished runs.

Examples:
  catapult scores
  catapult scores --week
  catapult scores --limit 25
  catapult scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresWeek, "week", false, "Only runs that ended in the last seven days")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run")
}

func runScores(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(ctx); err != nil {
			return err
		}
		fmt.Println("All runs deleted.")
		return nil
	}

	var since time.Time
	title := "High Scores - All Time"
	if flagScoresWeek {
		since = time.Now().Add(-storage.Week)
		title = "High Scores - This Week"
	}

	runs, err := store.TopRuns(ctx, flagScoresLimit, since)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'catapult play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-8s  %-4s  %-14s  %s\n", "Rank", "Name", "Score", "Hits", "Outcome", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-4s  %-14s  %s\n", "----", "----", "-----", "----", "-------", "----")

	for i, r := range runs {
		name := r.Name
		if name == "" {
			name = "-"
		}
		fmt.Printf("  %-4d  %-10s  %-8d  %-4d  %-14s  %s\n",
			i+1, name, r.Score, r.Hits, r.Outcome, r.End.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(ctx)
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f\n", stats.Runs, stats.HighScore, stats.AvgScore)
	}
	return nil
}
