package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if cfg.Inputs.SurveyPath == "" {
		t.Error("expected survey_path to be populated")
	}
	if cfg.Analysis.ReferenceYear != 1969 {
		t.Errorf("expected reference year 1969, got %d", cfg.Analysis.ReferenceYear)
	}
	if len(cfg.Analysis.DateFormats) != 2 {
		t.Errorf("expected 2 date formats, got %d", len(cfg.Analysis.DateFormats))
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
inputs:
  events_path: /srv/data/incidents.csv
analysis:
  reference_year: 1970
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Inputs.EventsPath != "/srv/data/incidents.csv" {
		t.Errorf("expected overridden events path, got %q", cfg.Inputs.EventsPath)
	}
	if cfg.Analysis.ReferenceYear != 1970 {
		t.Errorf("expected reference year 1970, got %d", cfg.Analysis.ReferenceYear)
	}
	// Defaults should still be set for unspecified fields
	if cfg.Output.PanelPath != "panel.csv" {
		t.Errorf("expected default panel path, got %q", cfg.Output.PanelPath)
	}
	if len(cfg.Analysis.DateFormats) == 0 {
		t.Error("expected default date formats")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Inputs.LayoutPath == "" {
		t.Error("expected layout_path to be populated")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestGetDataDir(t *testing.T) {
	cfg := &Config{}
	if cfg.GetDataDir() == "" {
		t.Error("expected non-empty default data dir")
	}

	cfg.Output.DataDir = "/tmp/custom"
	if cfg.GetDataDir() != "/tmp/custom" {
		t.Errorf("expected /tmp/custom, got %q", cfg.GetDataDir())
	}
}
