package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hauntmaze/internal/storage"
)

const gameID = "hauntmaze"

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best runs stored in a scores database.

The default database lives in memory and is empty on every start, so pass
the same --db file that play or serve wrote to.

Examples:
  hauntmaze scores --db ~/.hauntmaze/runs.db
  hauntmaze scores --db ./runs.db --limit 25
  hauntmaze scores --db ./runs.db --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every stored run")
}

func runScores(cmd *cobra.Command, _ []string) {
	if err := showScores(cmd.OutOrStdout()); err != nil {
		fail("%v", err)
	}
}

// showScores prints the leaderboard of --db to w, or clears it with --clear.
func showScores(w io.Writer) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		fmt.Fprintln(w, "Leaderboard cleared.")
		return nil
	}

	runs, err := store.TopRuns(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintln(w, "High Scores - Haunted Maze")
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		if flagDBPath == storage.MemoryPath {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "The default database is in memory; pass --db <file> to read a saved leaderboard.")
		}
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %-10s  %-5s  %s\n", "Rank", "Player", "Score", "Stage", "Date")
	fmt.Fprintf(w, "  %-4s  %-16s  %-10s  %-5s  %s\n", "----", "------", "-----", "-----", "----")

	for i, r := range runs {
		fmt.Fprintf(w, "  %-4d  %-16s  %-10d  %-5d  %s\n",
			i+1, r.Player, r.Score, r.Stage, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(gameID); err == nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Runs: %d  Best: %d  Best stage: %d  Average: %.0f\n",
			stats.RunsCount, stats.HighScore, stats.BestStage, stats.AvgScore)
	}
	return nil
}
