package router

import (
	"fmt"
	"os"

	"github.com/milk9111/walkrouter/walkgrid"
	"gopkg.in/yaml.v3"
)

// Config bounds every per-request structure. Zero fields take the default.
type Config struct {
	MaxBars   int `yaml:"max_bars"`
	MaxNodes  int `yaml:"max_nodes"`
	MaxGrids  int `yaml:"max_grids"`
	MaxRoute  int `yaml:"max_route"`
	MaxFrames int `yaml:"max_frames"`
	MaxSlots  int `yaml:"max_slots"`
	// ForceSlidy skips the whole-step walk even when the target direction
	// is DirAny.
	ForceSlidy bool `yaml:"force_slidy"`
}

func DefaultConfig() Config {
	return Config{
		MaxBars:   200,
		MaxNodes:  200,
		MaxGrids:  10,
		MaxRoute:  50,
		MaxFrames: 600,
		MaxSlots:  2,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("router: read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("router: unmarshal config: %w", err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxBars <= 0 {
		c.MaxBars = d.MaxBars
	}
	if c.MaxNodes <= 0 {
		c.MaxNodes = d.MaxNodes
	}
	if c.MaxGrids <= 0 {
		c.MaxGrids = d.MaxGrids
	}
	if c.MaxRoute <= 0 {
		c.MaxRoute = d.MaxRoute
	}
	if c.MaxFrames <= 0 {
		c.MaxFrames = d.MaxFrames
	}
	if c.MaxSlots <= 0 {
		c.MaxSlots = d.MaxSlots
	}
	return c
}

// GridLimits returns the registry limits matching this config.
func (c Config) GridLimits() walkgrid.Limits {
	c = c.withDefaults()
	return walkgrid.Limits{MaxGrids: c.MaxGrids, MaxBars: c.MaxBars, MaxNodes: c.MaxNodes}
}
