// Package config loads and persists lazyverdi configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the validated configuration consumed by the dashboard.
type Config struct {
	// Auto-refresh cadence in seconds; zero or negative disables the timer.
	AutoRefreshInterval float64 `yaml:"auto_refresh_interval"`
	AutoRefreshOnStart  bool    `yaml:"auto_refresh_on_startup"`

	// Panel geometry, percentages of the terminal area.
	LeftPanelWidthPercent     int `yaml:"left_panel_width_percent"`
	ResultsPanelHeightPercent int `yaml:"results_panel_height_percent"`
	FocusedPanelHeightPercent int `yaml:"focused_panel_height_percent"`

	// InitialFocusPanel selects which panel has focus at startup (0-6).
	InitialFocusPanel int `yaml:"initial_focus_panel"`

	// BatchMaxInFlight caps concurrent batch-action commands.
	BatchMaxInFlight int `yaml:"batch_max_in_flight"`

	// CommandTimeoutSeconds is the per-command deadline.
	CommandTimeoutSeconds float64 `yaml:"command_timeout_seconds"`

	// VerdiPath overrides the verdi executable, VerdiProfile the profile.
	VerdiPath    string `yaml:"verdi_path"`
	VerdiProfile string `yaml:"verdi_profile"`

	// Theme names a built-in theme or "auto".
	Theme string `yaml:"theme"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		AutoRefreshInterval:       10,
		AutoRefreshOnStart:        true,
		LeftPanelWidthPercent:     40,
		ResultsPanelHeightPercent: 80,
		FocusedPanelHeightPercent: 50,
		InitialFocusPanel:         0,
		BatchMaxInFlight:          4,
		CommandTimeoutSeconds:     30,
		VerdiPath:                 "verdi",
		Theme:                     "auto",
	}
}

// DefaultPath returns the config file location, honoring LAZYVERDI_CONFIG.
func DefaultPath() string {
	if p := os.Getenv("LAZYVERDI_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "lazyverdi", "config.yaml")
}

// Load reads the config file, merging it over defaults. A missing file is
// created with defaults; a corrupt file falls back to defaults without
// failing, so a bad edit never prevents startup.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		// Best effort; the dashboard works without a persisted file.
		_ = Save(path, cfg)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), nil
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the config as YAML, creating the parent directory.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// normalize clamps out-of-range values back to defaults so the rest of the
// program can rely on the documented ranges.
func (c *Config) normalize() {
	d := Default()
	if c.LeftPanelWidthPercent < 1 || c.LeftPanelWidthPercent > 99 {
		c.LeftPanelWidthPercent = d.LeftPanelWidthPercent
	}
	if c.ResultsPanelHeightPercent < 1 || c.ResultsPanelHeightPercent > 99 {
		c.ResultsPanelHeightPercent = d.ResultsPanelHeightPercent
	}
	if c.FocusedPanelHeightPercent < 1 || c.FocusedPanelHeightPercent > 99 {
		c.FocusedPanelHeightPercent = d.FocusedPanelHeightPercent
	}
	if c.InitialFocusPanel < 0 || c.InitialFocusPanel > 6 {
		c.InitialFocusPanel = d.InitialFocusPanel
	}
	if c.BatchMaxInFlight < 1 {
		c.BatchMaxInFlight = d.BatchMaxInFlight
	}
	if c.CommandTimeoutSeconds <= 0 {
		c.CommandTimeoutSeconds = d.CommandTimeoutSeconds
	}
	if c.VerdiPath == "" {
		c.VerdiPath = d.VerdiPath
	}
}
