package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Screen.Width <= 0 || cfg.Screen.Height <= 0 {
		t.Errorf("invalid screen size %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Particles.Count <= 0 {
		t.Error("particle count must be positive")
	}
	if cfg.Particles.ReducedCount > cfg.Particles.Count {
		t.Error("reduced count should not exceed full count")
	}
	if cfg.Vortex.Decay <= 0 || cfg.Vortex.Decay >= 1 {
		t.Errorf("vortex decay = %v, want in (0, 1)", cfg.Vortex.Decay)
	}
	if cfg.Vortex.Epsilon <= 0 {
		t.Error("vortex epsilon must be positive")
	}
	if cfg.Stroke.MinPoints < 2 {
		t.Errorf("min stroke points = %d, want >= 2", cfg.Stroke.MinPoints)
	}
	if cfg.Ink.MinLife <= 0 || cfg.Ink.MaxLife < cfg.Ink.MinLife {
		t.Errorf("invalid ink life range [%d, %d]", cfg.Ink.MinLife, cfg.Ink.MaxLife)
	}
	if cfg.Fade.Alpha <= 0 || cfg.Fade.Alpha >= 1 {
		t.Errorf("fade alpha = %v, want in (0, 1)", cfg.Fade.Alpha)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Derived.ScreenW32 != float32(cfg.Screen.Width) {
		t.Errorf("ScreenW32 = %v, want %v", cfg.Derived.ScreenW32, float32(cfg.Screen.Width))
	}
	if cfg.Derived.ScreenH32 != float32(cfg.Screen.Height) {
		t.Errorf("ScreenH32 = %v, want %v", cfg.Derived.ScreenH32, float32(cfg.Screen.Height))
	}
	if cfg.Derived.SoftCap != cfg.Ink.TargetCount*2 {
		t.Errorf("SoftCap = %d, want %d", cfg.Derived.SoftCap, cfg.Ink.TargetCount*2)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	override := []byte("particles:\n  count: 77\nvortex:\n  max_count: 2\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatal(err)
	}

	defaults, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load override: %v", err)
	}

	if cfg.Particles.Count != 77 {
		t.Errorf("particle count = %d, want 77", cfg.Particles.Count)
	}
	if cfg.Vortex.MaxCount != 2 {
		t.Errorf("vortex max count = %d, want 2", cfg.Vortex.MaxCount)
	}
	// Fields absent from the override keep their defaults.
	if cfg.Particles.Momentum != defaults.Particles.Momentum {
		t.Errorf("momentum = %v, want default %v", cfg.Particles.Momentum, defaults.Particles.Momentum)
	}
	if cfg.Screen.Width != defaults.Screen.Width {
		t.Errorf("width = %d, want default %d", cfg.Screen.Width, defaults.Screen.Width)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written file: %v", err)
	}
	if loaded.Particles.Count != cfg.Particles.Count {
		t.Errorf("round trip particle count = %d, want %d", loaded.Particles.Count, cfg.Particles.Count)
	}
	if loaded.Vortex.Decay != cfg.Vortex.Decay {
		t.Errorf("round trip vortex decay = %v, want %v", loaded.Vortex.Decay, cfg.Vortex.Decay)
	}
}
