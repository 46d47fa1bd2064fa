package config

import "testing"

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset   Preset
		wantFPS  int
		strategy string
	}{
		{PresetSmooth, 120, "frame_budgeted"},
		{PresetResponsive, 60, "non_blocking"},
		{PresetEco, 20, "frame_budgeted"},
		{PresetDefault, 60, "non_blocking"},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := Default()
			ApplyPreset(&cfg, tt.preset)
			if cfg.TargetFPS != tt.wantFPS {
				t.Errorf("TargetFPS = %d, want %d", cfg.TargetFPS, tt.wantFPS)
			}
			if cfg.Input.Strategy != tt.strategy {
				t.Errorf("strategy = %q, want %q", cfg.Input.Strategy, tt.strategy)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, p := range Presets() {
		got, err := ParsePreset(string(p))
		if err != nil || got != p {
			t.Errorf("ParsePreset(%q) = %q, %v", p, got, err)
		}
	}
	if _, err := ParsePreset("turbo"); err == nil {
		t.Error("ParsePreset(turbo) should fail")
	}
}
