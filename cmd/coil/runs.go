package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coil/internal/config"
	"github.com/vovakirdan/coil/internal/registry"
	"github.com/vovakirdan/coil/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [game]",
	Short: "Show recent runs",
	Long: `Display the most recent recorded runs, optionally for one game.

Examples:
  coil runs
  coil runs life --limit 20
  coil runs echo --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the listed history instead of showing it")
}

func runRuns(cmd *cobra.Command, args []string) error {
	var gameID string
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown game %q (run 'coil list' to see available games)", gameID)
		}
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	if flagRunsClear {
		if err := store.ClearRuns(gameID); err != nil {
			return fmt.Errorf("clearing runs: %w", err)
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	var runs []storage.RunRecord
	if gameID == "" {
		runs, err = store.RecentRuns(flagRunsLimit)
	} else {
		runs, err = store.RunsForGame(gameID, flagRunsLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'coil play <id>' to record one.")
		return nil
	}

	// Print header
	fmt.Printf("  %-16s  %-10s  %-9s  %-8s  %-7s  %-7s  %s\n", "Date", "Game", "Duration", "UPS", "Frames", "Clamped", "Exit")
	fmt.Printf("  %-16s  %-10s  %-9s  %-8s  %-7s  %-7s  %s\n", "----", "----", "--------", "---", "------", "-------", "----")

	for _, r := range runs {
		exit := r.ExitReason
		if r.Error != "" {
			exit += ": " + r.Error
		}
		fmt.Printf("  %-16s  %-10s  %-9s  %-8.1f  %-7d  %-7d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.GameID, r.Duration.Round(100*time.Millisecond),
			r.UpdatesPerSecond(), r.Frames, r.ClampedFrames, exit)
	}
	return nil
}

// openStore opens the run database named by the flags or the config.
func openStore() (*storage.Store, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	return storage.Open(cfg.DatabasePath())
}
