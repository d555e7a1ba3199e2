// Package config loads the reference fixtures used to verify the codec.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTolerance is the allowed decode error in degrees when a fixture
// file does not set one.
const DefaultTolerance = 1e-6

//go:embed cities.yaml
var defaultFixtures []byte

// Config represents the root fixtures file structure.
type Config struct {
	Tolerance float64 `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
	Cities    []City  `yaml:"cities" json:"cities"`
}

// City is a known coordinate with the score Redis assigns to it.
type City struct {
	Decoded   *Point  `yaml:"decoded,omitempty" json:"decoded,omitempty"` // cell centre as reported by GEOPOS
	Name      string  `yaml:"name" json:"name"`
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
	Score     uint64  `yaml:"score" json:"score"`
}

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
}

// Load reads and parses the YAML fixtures file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Default returns the built-in city fixtures.
func Default() *Config {
	cfg, err := Parse(defaultFixtures)
	if err != nil {
		panic("config: embedded fixtures: " + err.Error())
	}
	return cfg
}

// Parse decodes and validates fixtures from YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every fixture is usable.
func (c *Config) Validate() error {
	if c.Tolerance < 0 || math.IsNaN(c.Tolerance) {
		return fmt.Errorf("tolerance must be >= 0, got %v", c.Tolerance)
	}
	if len(c.Cities) == 0 {
		return errors.New("no cities defined")
	}

	seen := make(map[string]struct{}, len(c.Cities))
	for i, city := range c.Cities {
		if city.Name == "" {
			return fmt.Errorf("cities[%d]: name is required", i)
		}
		if _, ok := seen[city.Name]; ok {
			return fmt.Errorf("cities[%d]: duplicate name %q", i, city.Name)
		}
		seen[city.Name] = struct{}{}
	}

	return nil
}
