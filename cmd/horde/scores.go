package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/horde/internal/registry"
	"github.com/vovakirdan/horde/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <scenario>",
	Short: "Show best runs for a scenario",
	Long: `Display the best runs recorded for the specified scenario.

Examples:
  horde scores survival
  horde scores stress --limit 25`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	id := args[0]

	scenario, err := registry.Create(id)
	if err != nil {
		return fmt.Errorf("%w (run 'horde list' to see available scenarios)", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(id, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Best Runs - %s\n", scenario.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'horde play %s' to set the first one!\n", id)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-4s  %-8s  %s\n", "Rank", "Score", "Kills", "Wave", "Ticks", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-4s  %-8s  %s\n", "----", "-----", "-----", "----", "-----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-6d  %-4d  %-8d  %s\n",
			i+1, r.Score, r.Kills, r.Wave, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(id)
	if err == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Avg: %.0f  Kills: %d  Max wave: %d\n",
			stats.Runs, stats.BestScore, stats.AvgScore, stats.TotalKills, stats.MaxWave)
	}
	return nil
}
