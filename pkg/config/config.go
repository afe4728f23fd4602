// Package config defines the run configuration for the index driver:
// which models, scenarios and variables to process, which indices each
// variable feeds, and where results go.
package config

import (
	"fmt"
)

// Location is a WGS84 point of interest for annual series extraction.
type Location struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// Config is the complete driver configuration.
type Config struct {
	// Models are the GCM/RCM pairs as named in the source CORDEX data.
	Models []string `yaml:"models"`

	// Scenarios are the emission scenarios to process. BaselineScenario
	// must be one of them; it supplies the historical grids that
	// percentile-based indices compare against.
	Scenarios        []string `yaml:"scenarios"`
	BaselineScenario string   `yaml:"baseline_scenario"`

	// Variables are the daily base variables to load, and Indices maps
	// each variable to the index names computed from it.
	Variables []string            `yaml:"variables"`
	Indices   map[string][]string `yaml:"indices"`

	// Workers bounds how many (model, scenario, variable) combinations
	// are held in memory and processed at once.
	Workers int `yaml:"workers,omitempty"`

	// Database is the path of the SQLite results database.
	Database string `yaml:"database,omitempty"`

	// Locations are the points summarized from the combined dataset.
	Locations map[string]Location `yaml:"locations,omitempty"`
}

// Validate checks cross-field consistency and fills defaults.
func (c *Config) Validate() error {
	if len(c.Models) == 0 {
		return fmt.Errorf("config: no models specified")
	}
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("config: no scenarios specified")
	}
	if len(c.Variables) == 0 {
		return fmt.Errorf("config: no variables specified")
	}
	if c.BaselineScenario == "" {
		c.BaselineScenario = "hist"
	}
	found := false
	for _, s := range c.Scenarios {
		if s == c.BaselineScenario {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config: baseline scenario %q not among scenarios", c.BaselineScenario)
	}
	for v := range c.Indices {
		known := false
		for _, vv := range c.Variables {
			if v == vv {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("config: indices reference variable %q, which is not configured", v)
		}
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Database == "" {
		c.Database = "annual_indices.db"
	}
	return nil
}

// IndicesFor returns the index names configured for a base variable.
func (c *Config) IndicesFor(variable string) []string {
	return c.Indices[variable]
}
