// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.16
//

package goclk

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Run configuration for the goclk command. Command line flags override
// values loaded from a file.
type Config struct {
	ClkFile string   `yaml:"clk_file"` // Input clock file path
	Systems []string `yaml:"systems"`  // Satellite systems to process ("G", "R", ...)
	Sats    []string `yaml:"sats"`     // Individual satellites to process ("G15", ...)
	Method  string   `yaml:"method"`   // Interpolation method name
	Window  int      `yaml:"window"`   // Samples on each side of the query index
	HStep   float64  `yaml:"hstep"`    // Finite difference step for drift [ms]
	Debug   int      `yaml:"debug"`    // Debug display level
}

// Default configuration
func DefaultConfig() *Config {
	return &Config{
		Systems: []string{"G", "J", "E", "R", "C"},
		Method:  "spline",
		Window:  10,
		HStep:   0.5,
	}
}

// Load configuration from a YAML file over the defaults
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Window < 1 {
		return nil, fmt.Errorf("window must be >= 1 (window=%d)", cfg.Window)
	}
	if cfg.HStep <= 0 {
		return nil, fmt.Errorf("hstep must be > 0 (hstep=%g)", cfg.HStep)
	}
	return cfg, nil
}
