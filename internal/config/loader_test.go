package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/coil/internal/input"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, wd string) {
	t.Helper()
	home = t.TempDir()
	wd = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(wd)
	return home, wd
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(defaultEngineYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults %+v differ from Default() %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	t.Run("embedded when nothing on disk", func(t *testing.T) {
		isolate(t)
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.TargetFPS != 60 {
			t.Errorf("TargetFPS = %d, want 60", cfg.TargetFPS)
		}
	})

	t.Run("local configs directory", func(t *testing.T) {
		_, wd := isolate(t)
		writeFile(t, filepath.Join(wd, "configs", "engine.yaml"), "target_fps: 30\n")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.TargetFPS != 30 {
			t.Errorf("TargetFPS = %d, want 30", cfg.TargetFPS)
		}
		// Unset keys keep their defaults.
		if !cfg.FramePacing || cfg.Driver != DriverTcell {
			t.Errorf("defaults lost: %+v", cfg)
		}
	})

	t.Run("user file beats local", func(t *testing.T) {
		home, wd := isolate(t)
		writeFile(t, filepath.Join(wd, "configs", "engine.yaml"), "target_fps: 30\n")
		writeFile(t, filepath.Join(home, ".coil", "engine.yaml"), "target_fps: 90\n")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.TargetFPS != 90 {
			t.Errorf("TargetFPS = %d, want 90", cfg.TargetFPS)
		}
	})

	t.Run("broken user file falls through", func(t *testing.T) {
		home, _ := isolate(t)
		writeFile(t, filepath.Join(home, ".coil", "engine.yaml"), "target_fps: [\n")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.TargetFPS != 60 {
			t.Errorf("TargetFPS = %d, want 60", cfg.TargetFPS)
		}
	})

	t.Run("custom path wins", func(t *testing.T) {
		home, _ := isolate(t)
		writeFile(t, filepath.Join(home, ".coil", "engine.yaml"), "target_fps: 90\n")
		custom := filepath.Join(t.TempDir(), "custom.yaml")
		writeFile(t, custom, "target_fps: 24\ndriver: termbox\n")

		cfg, err := Load(custom)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.TargetFPS != 24 || cfg.Driver != DriverTermbox {
			t.Errorf("got %+v", cfg)
		}
	})
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "input: [oops\n")
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("Load(bad) error = %v, want parse error", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "engine.yaml")
	cfg := Default()
	cfg.TargetFPS = 144
	cfg.Input = InputConfig{Strategy: "timeout", TimeoutMS: 4}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EngineConfig)
		wantErr string
	}{
		{"defaults", func(*EngineConfig) {}, ""},
		{"zero fps", func(c *EngineConfig) { c.TargetFPS = 0 }, "target_fps"},
		{"negative catch-up", func(c *EngineConfig) { c.MaxCatchUpSteps = -1 }, "max_catch_up_steps"},
		{"unbounded catch-up", func(c *EngineConfig) { c.MaxCatchUpSteps = 0 }, ""},
		{"unknown strategy", func(c *EngineConfig) { c.Input.Strategy = "eager" }, "unknown strategy"},
		{"timeout without wait", func(c *EngineConfig) { c.Input.Strategy = "timeout" }, "positive wait"},
		{"unknown driver", func(c *EngineConfig) { c.Driver = "curses" }, "unknown driver"},
		{"density out of range", func(c *EngineConfig) { c.Life.Density = 1.5 }, "life.density"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestInputStrategy(t *testing.T) {
	cfg := Default()
	cfg.Input = InputConfig{Strategy: "timeout", TimeoutMS: 8}

	s, err := cfg.InputStrategy()
	if err != nil {
		t.Fatalf("InputStrategy: %v", err)
	}
	if s.Kind != input.FixedTimeout || s.Wait != 8*time.Millisecond {
		t.Errorf("InputStrategy() = %+v", s)
	}
}

func TestPaths(t *testing.T) {
	home, _ := isolate(t)

	cfg := Default()
	if got, want := cfg.LogPath(), filepath.Join(home, ".coil", "coil.log"); got != want {
		t.Errorf("LogPath() = %s, want %s", got, want)
	}
	if got, want := cfg.DatabasePath(), filepath.Join(home, ".coil", "runs.db"); got != want {
		t.Errorf("DatabasePath() = %s, want %s", got, want)
	}

	cfg.LogFile = "/tmp/x.log"
	cfg.DBPath = "/tmp/x.db"
	if cfg.LogPath() != "/tmp/x.log" || cfg.DatabasePath() != "/tmp/x.db" {
		t.Errorf("explicit paths ignored: %s %s", cfg.LogPath(), cfg.DatabasePath())
	}
}
