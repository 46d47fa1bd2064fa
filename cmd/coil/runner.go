package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/coil/internal/config"
	"github.com/vovakirdan/coil/internal/core"
	"github.com/vovakirdan/coil/internal/engine"
	"github.com/vovakirdan/coil/internal/input"
	"github.com/vovakirdan/coil/internal/registry"
	"github.com/vovakirdan/coil/internal/render"
	"github.com/vovakirdan/coil/internal/storage"
)

// overrides are the command-line values that win over the config file.
type overrides struct {
	FPS    int
	DBPath string
	Driver string
	Debug  bool
}

func flagOverrides() overrides {
	return overrides{FPS: flagFPS, DBPath: flagDBPath, Driver: flagDriver, Debug: flagDebug}
}

// resolveConfig loads the engine config, applies the preset and then the
// flags, and validates the result.
func resolveConfig(path string, preset config.Preset, o overrides) (config.EngineConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if o.FPS > 0 {
		cfg.TargetFPS = o.FPS
	}
	if o.DBPath != "" {
		cfg.DBPath = o.DBPath
	}
	if o.Driver != "" {
		cfg.Driver = o.Driver
	}
	if o.Debug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger opens the log file in append mode. The terminal belongs to the
// game while it runs, so nothing is logged to stderr.
func newLogger(cfg config.EngineConfig) (*log.Logger, func(), error) {
	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "coil",
	})
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { f.Close() }, nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a tty.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// session is a terminal driver and the surface that draws on it.
type session struct {
	driver  input.Driver
	surface render.Surface
}

func openSession(cfg config.EngineConfig) (session, error) {
	switch cfg.Driver {
	case config.DriverTermbox:
		return session{
			driver:  input.NewTermboxDriver(cfg.Mouse),
			surface: render.NewTermboxSurface(),
		}, nil
	default:
		d, err := input.NewTcellDriver(input.WithMouse(cfg.Mouse))
		if err != nil {
			return session{}, core.TerminalSetupError("open terminal", err)
		}
		return session{driver: d, surface: render.NewTcellSurface(d.Screen())}, nil
	}
}

// playGame runs one game to completion on sess and records the run when a
// store is given. The run record is returned even when the game failed.
func playGame(sess session, gameID string, cfg config.EngineConfig, rt core.RuntimeConfig, store *storage.Store, logger *log.Logger) (storage.RunRecord, error) {
	strategy, err := cfg.InputStrategy()
	if err != nil {
		return storage.RunRecord{}, err
	}

	renderer := render.New(sess.surface,
		render.WithSize(rt.ScreenW, rt.ScreenH),
		render.WithLogger(logger.WithPrefix("render")),
	)

	loop, err := engine.New(cfg.TargetFPS,
		engine.WithDriver(sess.driver),
		engine.WithLogger(logger.WithPrefix("loop")),
		engine.WithInputStrategy(strategy),
		engine.WithMaxCatchUp(cfg.MaxCatchUpSteps),
		engine.WithFramePacing(cfg.FramePacing),
	)
	if err != nil {
		return storage.RunRecord{}, err
	}

	rt.TargetFPS = cfg.TargetFPS
	game, err := registry.Create(gameID, registry.Env{
		Renderer:    renderer,
		Runtime:     rt,
		Config:      cfg,
		Logger:      logger.WithPrefix(gameID),
		SnapshotDir: render.SnapshotDir(),
		Stats:       loop.Stats,
	})
	if err != nil {
		return storage.RunRecord{}, err
	}

	logger.Info("starting game", "game", gameID, "fps", cfg.TargetFPS, "driver", cfg.Driver, "strategy", strategy)
	runErr := loop.Run(game)

	rec := runRecord(gameID, cfg.TargetFPS, loop.Stats(), runErr)
	logger.Info("game finished", "game", gameID, "stats", loop.Stats(), "exit", rec.ExitReason)
	if store != nil && loop.Stats().Frames > 0 {
		saved, err := store.SaveRun(rec)
		if err != nil {
			logger.Warn("could not save run", "error", err)
		} else {
			rec = saved
		}
	}
	return rec, runErr
}

// runRecord converts loop counters into a storage record.
func runRecord(gameID string, fps int, stats engine.Stats, runErr error) storage.RunRecord {
	rec := storage.RunRecord{
		GameID:        gameID,
		TargetFPS:     fps,
		Frames:        stats.Frames,
		Updates:       stats.Updates,
		Renders:       stats.Renders,
		Events:        stats.Events,
		ClampedFrames: stats.ClampedFrames,
		DroppedLag:    stats.DroppedLag,
		Duration:      stats.Elapsed,
		ExitReason:    storage.ExitQuit,
	}
	if runErr != nil {
		rec.ExitReason = storage.ExitError
		rec.Error = runErr.Error()
	}
	return rec
}

// describeError adds a hint for engine errors the user can act on.
func describeError(err error) string {
	switch core.KindOf(err) {
	case core.KindTerminalSetup:
		return fmt.Sprintf("%v\nIs stdin a terminal? Try --driver termbox if tcell cannot open it.", err)
	case core.KindInput:
		return fmt.Sprintf("%v\nThe terminal stopped delivering input.", err)
	case core.KindTimer:
		return fmt.Sprintf("%v\nCheck --fps and target_fps.", err)
	}
	if errors.Is(err, engine.ErrAlreadyRan) {
		return "internal error: event loop reused"
	}
	return err.Error()
}
