package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// Default returns the hardcoded engine configuration.
func Default() EngineConfig {
	return EngineConfig{
		TargetFPS: 60,
		Input: InputConfig{
			Strategy: "non_blocking",
		},
		MaxCatchUpSteps: 5,
		FramePacing:     true,
		Driver:          DriverTcell,
		Mouse:           true,
		Life: LifeConfig{
			Density: 0.25,
			Wrap:    true,
		},
	}
}
