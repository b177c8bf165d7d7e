// Package config loads the analysis configuration: where the reference
// tables live, what history window to download, and where reports go.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Config is the YAML-backed analysis configuration.
type Config struct {
	// Reference table files (CSV).
	BondYieldFile string `yaml:"bond_yield_file"`
	ERPFile       string `yaml:"erp_file"`
	RatingsFile   string `yaml:"ratings_file"`

	// Price history window for beta estimation.
	HistoryRange    string `yaml:"history_range"`
	HistoryInterval string `yaml:"history_interval"`

	// Report output.
	OutputDir  string `yaml:"output_dir"`
	RenderHTML bool   `yaml:"render_html"`
}

// Default returns the configuration used when no file is provided, matching
// the original tool's defaults (10 years of monthly observations).
func Default() Config {
	return Config{
		BondYieldFile:   "data/bond_yields.csv",
		ERPFile:         "data/equity_risk_premia.csv",
		RatingsFile:     "data/synthetic_ratings.csv",
		HistoryRange:    "10y",
		HistoryInterval: "1mo",
		OutputDir:       ".",
	}
}

// Load reads a YAML config file, filling unset fields from Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.HistoryRange == "" {
		cfg.HistoryRange = "10y"
	}
	if cfg.HistoryInterval == "" {
		cfg.HistoryInterval = "1mo"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return cfg, nil
}
