package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arkanoid/internal/storage"
)

var (
	flagLimit int
	flagRunID string
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best finished runs",
	Long: `Display the top finished runs, best score first.

Examples:
  arkanoid scores
  arkanoid scores --limit 25
  arkanoid scores --run 3f1c...
  arkanoid scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show a single run by id")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the whole run history")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil

	case flagRunID != "":
		run, err := store.RunByID(flagRunID)
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("no run with id %q", flagRunID)
		}
		printRun(run)
		return nil
	}

	runs, err := store.TopRuns(flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - Arkanoid")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'arkanoid play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-16s  %s\n", "Rank", "Score", "Level", "Result", "Date", "Run")
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-16s  %s\n", "----", "-----", "-----", "------", "----", "---")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-5d  %-6s  %-16s  %s\n",
			i+1, r.Score, r.LevelReached, result(r.Won), r.CreatedAt.Format("2006-01-02 15:04"), shortID(r.RunID))
	}

	fmt.Println()
	if stats, err := store.GetStats(); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Wins: %d  Average: %.0f\n",
			stats.HighScore, stats.Runs, stats.Wins, stats.AvgScore)
	}
	return nil
}

func printRun(r *storage.Run) {
	fmt.Printf("Run     %s\n", r.RunID)
	fmt.Printf("Score   %d\n", r.Score)
	fmt.Printf("Level   %d\n", r.LevelReached)
	fmt.Printf("Result  %s\n", result(r.Won))
	fmt.Printf("Date    %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
}

func result(won bool) string {
	if won {
		return "won"
	}
	return "lost"
}

// shortID trims a uuid to its first group for the table.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
