package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coil/internal/config"
	"github.com/vovakirdan/coil/internal/core"
	"github.com/vovakirdan/coil/internal/registry"
	"github.com/vovakirdan/coil/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Each game picks its own controls; Esc or Q leaves most of them and
Ctrl+S saves a text screenshot to ~/.coil/screenshots.

Preset options:
  smooth     - 120 steps per second, input wait up to one step
  responsive - 60 steps per second, never waits for input
  eco        - 20 steps per second, small catch-up window

Examples:
  coil play life
  coil play counter --fps 30
  coil play echo --driver termbox
  coil play life --preset eco --seed 42
  coil play life --config ./my-engine.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	return playCommand(args[0], openSession, cmd.OutOrStdout())
}

// playCommand runs one game and prints a summary to out. Errors are
// returned rather than exiting so the log and the database are closed.
func playCommand(gameID string, open func(config.EngineConfig) (session, error), out io.Writer) error {
	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'coil list' to see available games)", gameID)
	}

	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flagConfig, preset, flagOverrides())
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
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

	sess, err := open(cfg)
	if err != nil {
		return err
	}

	rec, err := playGame(sess, gameID, cfg, rt, store, logger)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	fmt.Fprintf(out, "%s: %d updates in %s (%.1f ups)\n",
		gameID, rec.Updates, rec.Duration.Round(time.Millisecond), rec.UpdatesPerSecond())
	return nil
}
