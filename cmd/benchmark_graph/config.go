package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type benchmarkTestConfig struct {
	Name           string  `yaml:"name"`            // friendly name for the test, should be unique
	Width          int     `yaml:"width"`           // width of dependency graph to construct
	TotalLayers    int     `yaml:"total_layers"`    // depth of dependency graph to construct
	StaticFraction float64 `yaml:"static_fraction"` // fraction of nodes that are static
	NSources       int     `yaml:"n_sources"`       // construct a graph with number of sources in each node
	ReadFraction   float64 `yaml:"read_fraction"`   // fraction of [0, 1] elements in the last layer from which to read values in each test iteration
	Iterations     int     `yaml:"iterations"`      // number of test iterations
}

type benchmarkFile struct {
	Repeats int                   `yaml:"repeats,omitempty"`
	Tests   []benchmarkTestConfig `yaml:"tests"`
}

var defaultConfigs = []benchmarkTestConfig{
	{
		Name:           "simple component",
		Width:          10,
		StaticFraction: 1,
		NSources:       2,
		TotalLayers:    5,
		ReadFraction:   0.2,
		Iterations:     600000,
	},
	{
		Name:           "dynamic component",
		Width:          10,
		TotalLayers:    10,
		StaticFraction: 0.75,
		NSources:       6,
		ReadFraction:   0.2,
		Iterations:     15000,
	},
	{
		Name:           "large web app",
		Width:          1000,
		TotalLayers:    12,
		StaticFraction: 0.95,
		NSources:       4,
		ReadFraction:   1,
		Iterations:     7000,
	},
	{
		Name:           "wide dense",
		Width:          1000,
		TotalLayers:    5,
		StaticFraction: 1,
		NSources:       25,
		ReadFraction:   1,
		Iterations:     3000,
	},
	{
		Name:           "deep",
		Width:          5,
		TotalLayers:    500,
		StaticFraction: 1,
		NSources:       3,
		ReadFraction:   1,
		Iterations:     500,
	},
	{
		Name:           "very dynamic",
		Width:          100,
		TotalLayers:    15,
		StaticFraction: 0.5,
		NSources:       6,
		ReadFraction:   1,
		Iterations:     2000,
	},
}

func loadConfigs(path string) (*benchmarkFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var file benchmarkFile
	if err := yaml.Unmarshal(b, &file); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	for i, cfg := range file.Tests {
		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("test %d (%q): %w", i, cfg.Name, err)
		}
	}
	return &file, nil
}

func (cfg benchmarkTestConfig) validate() error {
	switch {
	case cfg.Width < 1:
		return fmt.Errorf("width must be positive")
	case cfg.TotalLayers < 2:
		return fmt.Errorf("total_layers must be at least 2")
	case cfg.NSources < 1:
		return fmt.Errorf("n_sources must be positive")
	case cfg.ReadFraction < 0 || cfg.ReadFraction > 1:
		return fmt.Errorf("read_fraction must be within [0, 1]")
	case cfg.StaticFraction < 0 || cfg.StaticFraction > 1:
		return fmt.Errorf("static_fraction must be within [0, 1]")
	case cfg.Iterations < 1:
		return fmt.Errorf("iterations must be positive")
	}
	return nil
}
