package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width <= 0 || cfg.Height <= 0 {
		t.Error("canvas dimensions should be positive")
	}
	if cfg.Start.Zoom <= 0 {
		t.Error("start zoom should be positive")
	}
	if cfg.Start.X != -0.75 || cfg.Start.Y != 0 {
		t.Errorf("unexpected start center: (%f, %f)", cfg.Start.X, cfg.Start.Y)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Start = ViewConfig{X: -0.743, Y: 0.131, Zoom: 1e-6}
	cfg.Width = 640

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if got.Start != cfg.Start {
		t.Errorf("start view changed: %+v != %+v", got.Start, cfg.Start)
	}
	if got.Width != 640 {
		t.Errorf("expected width 640, got %d", got.Width)
	}
	if got.Height != DefaultHeight {
		t.Errorf("expected default height, got %d", got.Height)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("seahorse")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.Zoom <= 0 {
		t.Error("preset zoom should be positive")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatal("expected sorted preset names")
		}
	}
}
