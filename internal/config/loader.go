package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/coil/internal/input"
)

// Load loads the engine configuration.
// Search order: customPath -> ~/.coil/engine.yaml -> ./configs/engine.yaml -> embedded default
//
// Files are decoded over the defaults, so they only need the keys they change.
func Load(customPath string) (EngineConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Default(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("engine.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "engine.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultEngineYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (EngineConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(path string, cfg EngineConfig) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".coil", filename)
}

// DataDir returns ~/.coil, or .coil when the home directory is unknown.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".coil"
	}
	return filepath.Join(home, ".coil")
}

// LogPath returns the configured log file or the default one.
func (c EngineConfig) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(DataDir(), "coil.log")
}

// DatabasePath returns the configured run database or the default one.
func (c EngineConfig) DatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(DataDir(), "runs.db")
}

// InputStrategy converts the input section into an input.Strategy.
func (c EngineConfig) InputStrategy() (input.Strategy, error) {
	return input.ParseStrategy(c.Input.Strategy, time.Duration(c.Input.TimeoutMS)*time.Millisecond)
}

// Validate reports every problem with the configuration at once.
func (c EngineConfig) Validate() error {
	var errs []error
	if c.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("target_fps must be positive, got %d", c.TargetFPS))
	}
	if c.MaxCatchUpSteps < 0 {
		errs = append(errs, fmt.Errorf("max_catch_up_steps must not be negative, got %d", c.MaxCatchUpSteps))
	}
	if c.Input.TimeoutMS < 0 {
		errs = append(errs, fmt.Errorf("input.timeout_ms must not be negative, got %d", c.Input.TimeoutMS))
	}
	if _, err := c.InputStrategy(); err != nil {
		errs = append(errs, err)
	}
	switch c.Driver {
	case DriverTcell, DriverTermbox:
	default:
		errs = append(errs, fmt.Errorf("unknown driver %q (want %s or %s)", c.Driver, DriverTcell, DriverTermbox))
	}
	if c.Life.Density < 0 || c.Life.Density > 1 {
		errs = append(errs, fmt.Errorf("life.density must be within [0, 1], got %g", c.Life.Density))
	}
	return errors.Join(errs...)
}
