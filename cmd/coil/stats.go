package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coil/internal/registry"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-game run statistics",
	Long: `Display aggregated statistics for every game that has been played:
run count, failures, play time and the average simulation rate.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	all, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-16s  %-5s  %-6s  %-10s  %-10s  %-8s  %-7s  %s\n", "Game", "Runs", "Failed", "Total", "Longest", "Avg UPS", "Clamped", "Last played")
	fmt.Printf("  %-16s  %-5s  %-6s  %-10s  %-10s  %-8s  %-7s  %s\n", "----", "----", "------", "-----", "-------", "-------", "-------", "-----------")

	for _, id := range ids {
		st := all[id]
		title := id
		if info, ok := registry.Lookup(id); ok {
			title = info.Title
		}
		fmt.Printf("  %-16s  %-5d  %-6d  %-10s  %-10s  %-8.1f  %-7d  %s\n",
			title, st.RunsCount, st.FailedRuns,
			st.TotalPlayTime.Round(time.Second), st.LongestRun.Round(time.Second),
			st.AvgUPS, st.ClampedFrames, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
