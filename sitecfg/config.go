// Package sitecfg loads the site configuration: container dimensions, grid
// and snapping settings, optimizer endpoint, and panel presets.
package sitecfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"panelcad/panel"
)

// Preset is a named rectangle size offered by the creation form.
type Preset struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Length float64 `yaml:"length"`
}

type Config struct {
	Site struct {
		Width    float64 `yaml:"width"`
		Height   float64 `yaml:"height"`
		GridSize float64 `yaml:"grid_size"`
		Units    string  `yaml:"units"`
	} `yaml:"site"`
	Snap struct {
		Enabled       bool    `yaml:"enabled"`
		EdgeThreshold float64 `yaml:"edge_threshold"`
	} `yaml:"snap"`
	OptimizerURL string   `yaml:"optimizer_url,omitempty"`
	Presets      []Preset `yaml:"presets,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var c Config
	c.Site.Width = 400
	c.Site.Height = 400
	c.Site.GridSize = 5
	c.Site.Units = "ft"
	c.Snap.Enabled = true
	c.Snap.EdgeThreshold = 1
	return c
}

// Load reads and validates a YAML config file. Missing snap threshold or
// grid size fall back to the defaults.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

func Parse(b []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("sitecfg: %w", err)
	}
	if c.Site.Width <= 0 || c.Site.Height <= 0 {
		return Config{}, fmt.Errorf("sitecfg: site dimensions must be positive")
	}
	if c.Site.GridSize <= 0 {
		c.Site.GridSize = Default().Site.GridSize
	}
	if c.Snap.EdgeThreshold <= 0 {
		c.Snap.EdgeThreshold = Default().Snap.EdgeThreshold
	}
	return c, nil
}

// SiteFor converts the config into the store's container settings.
func (c Config) SiteFor() panel.Site {
	return panel.Site{
		Width:       c.Site.Width,
		Height:      c.Site.Height,
		GridSize:    c.Site.GridSize,
		SnapEnabled: c.Snap.Enabled,
		Units:       c.Site.Units,
	}
}
