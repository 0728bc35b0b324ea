package config

import (
	"path/filepath"
	"testing"
)

func TestEnvOverrides_Logging(t *testing.T) {
	t.Setenv("ROUGHLAB_LOG_LEVEL", "debug")
	t.Setenv("ROUGHLAB_LOG_FORMAT", "json")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected Level=debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected Format=json, got %s", cfg.Logging.Format)
	}
}

func TestEnvOverrides_Theme(t *testing.T) {
	t.Setenv("ROUGHLAB_THEME", "light")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.UI.Theme != "light" {
		t.Errorf("expected Theme=light, got %s", cfg.UI.Theme)
	}
}

func TestEnvOverrides_Analysis(t *testing.T) {
	t.Setenv("ROUGHLAB_WORKERS", "6")
	t.Setenv("ROUGHLAB_MAX_ATTRIBUTES", "10")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.Analysis.Workers != 6 {
		t.Errorf("expected Workers=6, got %d", cfg.Analysis.Workers)
	}
	if cfg.Analysis.MaxAttributes != 10 {
		t.Errorf("expected MaxAttributes=10, got %d", cfg.Analysis.MaxAttributes)
	}
}

func TestEnvOverrides_BadValuesIgnored(t *testing.T) {
	t.Setenv("ROUGHLAB_WORKERS", "many")
	t.Setenv("ROUGHLAB_MAX_ATTRIBUTES", "0")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.Analysis.Workers != 0 {
		t.Errorf("expected Workers to keep default 0, got %d", cfg.Analysis.Workers)
	}
	if cfg.Analysis.MaxAttributes != 16 {
		t.Errorf("expected MaxAttributes to keep default 16, got %d", cfg.Analysis.MaxAttributes)
	}
}

func TestEnvOverrides_ApplyOnLoad(t *testing.T) {
	t.Setenv("ROUGHLAB_LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Logging.Level = "info"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Logging.Level != "warn" {
		t.Errorf("expected env to win over file, got %s", loaded.Logging.Level)
	}
}
