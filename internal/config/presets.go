package config

import "fmt"

// Preset is a named runtime profile.
type Preset string

const (
	PresetDefault    Preset = ""
	PresetSmooth     Preset = "smooth"
	PresetResponsive Preset = "responsive"
	PresetEco        Preset = "eco"
)

// Presets lists the selectable profiles in display order.
func Presets() []Preset {
	return []Preset{PresetSmooth, PresetResponsive, PresetEco}
}

// Describe returns a one-line summary of the preset.
func (p Preset) Describe() string {
	switch p {
	case PresetSmooth:
		return "120 fps, waits a full frame for input"
	case PresetResponsive:
		return "60 fps, polls input without waiting"
	case PresetEco:
		return "20 fps, low CPU use"
	default:
		return "configured values"
	}
}

// ParsePreset validates a preset name.
func ParsePreset(name string) (Preset, error) {
	p := Preset(name)
	switch p {
	case PresetDefault, PresetSmooth, PresetResponsive, PresetEco:
		return p, nil
	default:
		return "", fmt.Errorf("unknown preset %q", name)
	}
}

// ApplyPreset modifies the config based on a runtime preset.
func ApplyPreset(cfg *EngineConfig, preset Preset) {
	switch preset {
	case PresetSmooth:
		cfg.TargetFPS = 120
		cfg.Input.Strategy = "frame_budgeted"
		cfg.FramePacing = true
		cfg.MaxCatchUpSteps = 8
	case PresetResponsive:
		cfg.TargetFPS = 60
		cfg.Input.Strategy = "non_blocking"
		cfg.FramePacing = true
		cfg.MaxCatchUpSteps = 5
	case PresetEco:
		cfg.TargetFPS = 20
		cfg.Input.Strategy = "frame_budgeted"
		cfg.FramePacing = true
		cfg.MaxCatchUpSteps = 2
	}
}
