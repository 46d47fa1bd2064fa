package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coil/internal/config"
	"github.com/vovakirdan/coil/internal/core"
	"github.com/vovakirdan/coil/internal/platform/tui"
	"github.com/vovakirdan/coil/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start coil with a game picker menu",
	Long: `Start coil in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change runtime preset
  Enter/Space  - Select game
  Tab          - Run history
  Q            - Quit

Examples:
  coil menu
  coil menu --fps 30
  coil menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Validate once up front so a broken config fails before the menu opens.
	cfg, err := resolveConfig(flagConfig, preset, flagOverrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Open run storage
	store, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		logger.Warn("could not open run database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	rt := core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		TargetFPS: cfg.TargetFPS,
		Seed:      flagSeed,
	}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, rt, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		rt = menuResult.Config
		preset = menuResult.Preset

		if menuResult.Quit {
			return
		}

		if menuResult.WantsRuns {
			goBack, rbErr := tui.ShowRunBoard(store, rt.ScreenW, rt.ScreenH)
			if rbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", rbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return // User quit from run board
		}

		if menuResult.GameID == "" {
			return
		}

		gameCfg, err := resolveConfig(flagConfig, preset, flagOverrides())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		sess, err := openSession(gameCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", describeError(err))
			return
		}

		if _, err := playGame(sess, menuResult.GameID, gameCfg, rt, store, logger); err != nil {
			logger.Error("game failed", "game", menuResult.GameID, "error", err)
			fmt.Fprintf(os.Stderr, "Error running game: %s\n", describeError(err))
		}

		// Loop back to menu
	}
}
