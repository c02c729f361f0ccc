package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores <preset>",
	Short: "Show high scores for a preset",
	Long: `Display the top 10 scores for the given preset, by id or name.

Examples:
  t2048 scores classic
  t2048 scores 2048_3x3
  t2048 scores tiny --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores for the preset")
}

func runScores(cmd *cobra.Command, args []string) {
	p, err := t2048.LookupPreset(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown preset %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available presets.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(p.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s.\n", p.Title)
		return
	}

	scores, err := store.TopScores(p.ID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", p.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first high score!\n", p.Name)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Max Tile", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "--------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-8d  %s\n", i+1, entry.Score, entry.MaxTile, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(p.ID); err == nil {
		fmt.Printf("Best: %d  |  Best tile: %d  |  Games: %d  |  Average: %.0f\n",
			stats.HighScore, stats.BestTile, stats.GamesCount, stats.AvgScore)
	}
}
