// coil runs fixed-timestep games in the terminal.
//
// Usage:
//
//	coil list              - List available games
//	coil play <game>       - Play a game
//	coil menu              - Start menu to pick games interactively
//	coil runs [game]       - Show recent runs
//	coil stats             - Show per-game run statistics
//
// Global flags:
//
//	--fps <rate>       - Simulation steps per second (default: from config)
//	--seed <value>     - RNG seed for reproducible runs
//	--db <path>        - Run database path (default: ~/.coil/runs.db)
//	--config <path>    - Engine config YAML
//	--driver <name>    - Terminal driver: tcell or termbox
//	--preset <name>    - Runtime preset: smooth, responsive, eco
//	--debug            - Debug logging to the log file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/coil/internal/games/counter"
	_ "github.com/vovakirdan/coil/internal/games/echo"
	_ "github.com/vovakirdan/coil/internal/games/life"
	_ "github.com/vovakirdan/coil/internal/games/snake"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagDriver string
	flagPreset string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", describeError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "coil",
	SilenceUsage:  true,
	SilenceErrors: true,
	Short: "coil - fixed-timestep games in your terminal",
	Long: `coil drives terminal games with a fixed-timestep event loop:
input is drained every frame, the simulation advances in constant steps,
and the terminal is restored however the game ends.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  runs     - Show recent runs
  stats    - Show per-game statistics

Examples:
  coil list
  coil play life
  coil play snake --fps 30 --preset eco
  coil menu --driver termbox
  coil runs life`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Simulation steps per second (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run database (default ~/.coil/runs.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "Terminal driver: tcell or termbox")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Runtime preset: smooth, responsive, eco")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug logs")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(statsCmd)
}
