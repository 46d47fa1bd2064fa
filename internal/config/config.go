// Package config provides YAML-based engine configuration loading and
// runtime presets for coil.
package config

// EngineConfig contains everything needed to build and run an event loop.
type EngineConfig struct {
	TargetFPS       int         `yaml:"target_fps"`
	Input           InputConfig `yaml:"input"`
	MaxCatchUpSteps int         `yaml:"max_catch_up_steps"` // 0 = unbounded catch-up
	FramePacing     bool        `yaml:"frame_pacing"`
	Driver          string      `yaml:"driver"` // "tcell" or "termbox"
	Mouse           bool        `yaml:"mouse"`
	Debug           bool        `yaml:"debug"`
	LogFile         string      `yaml:"log_file"` // Empty = ~/.coil/coil.log
	DBPath          string      `yaml:"db_path"`  // Empty = ~/.coil/runs.db
	Life            LifeConfig  `yaml:"life"`
}

// InputConfig selects how long the loop waits for input each frame.
type InputConfig struct {
	Strategy  string `yaml:"strategy"`   // "non_blocking", "frame_budgeted" or "timeout"
	TimeoutMS int    `yaml:"timeout_ms"` // Only for "timeout"
}

// LifeConfig tunes the Game of Life demo.
type LifeConfig struct {
	Density float64 `yaml:"density"` // Fraction of cells alive after a reseed
	Wrap    bool    `yaml:"wrap"`    // Edges wrap around
}

// Driver names.
const (
	DriverTcell   = "tcell"
	DriverTermbox = "termbox"
)
