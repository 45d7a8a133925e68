package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Inputs   Inputs   `yaml:"inputs"`
	Output   Output   `yaml:"output"`
	Analysis Analysis `yaml:"analysis"`
}

type Inputs struct {
	SurveyPath string `yaml:"survey_path"`
	LayoutPath string `yaml:"layout_path"`
	EventsPath string `yaml:"events_path"`
}

type Output struct {
	PanelPath string `yaml:"panel_path"`
	DataDir   string `yaml:"data_dir"`
}

type Analysis struct {
	ReferenceYear int      `yaml:"reference_year"`
	DateFormats   []string `yaml:"date_formats"`
}

// ConfigDir returns the XDG config directory for conflictpanel.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "conflictpanel")
}

// DataDir returns the XDG data directory for conflictpanel.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "conflictpanel")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/conflictpanel/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'conflictpanel init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Inputs: Inputs{
			SurveyPath: "data/survey.dat",
			LayoutPath: "data/survey.layout",
			EventsPath: "data/events.csv",
		},
		Output: Output{PanelPath: "panel.csv"},
		Analysis: Analysis{
			ReferenceYear: 1969,
			DateFormats:   []string{"2006-01-02", "02/01/2006"},
		},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.Analysis.DateFormats) == 0 {
		cfg.Analysis.DateFormats = []string{"2006-01-02", "02/01/2006"}
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
