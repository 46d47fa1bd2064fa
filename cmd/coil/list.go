package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coil/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered with coil.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----------")

	// Print games
	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, g.Description)
	}

	fmt.Println()
	fmt.Println("Run 'coil play <id>' to play a game.")
}
