// Package config loads the optional .shrup.yaml configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where commands look when no --config flag is given.
const DefaultConfigPath = ".shrup.yaml"

// Config represents shrup configuration options.
type Config struct {
	// Debug emits marker comments around each inlined block
	Debug bool `yaml:"debug"`

	// MaxIncludeDepth caps include nesting (the top-level file is depth 1)
	MaxIncludeDepth int `yaml:"max_include_depth"`

	// BaseDirectory confines include resolution; empty means the directory
	// containing the input file
	BaseDirectory string `yaml:"base_directory"`

	// Verbose enables per-file progress output
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Debug:           false,
		MaxIncludeDepth: 100,
		BaseDirectory:   "",
		Verbose:         false,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal over the defaults so absent keys keep their default values
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks configuration values for consistency
func (c *Config) Validate() error {
	if c.MaxIncludeDepth <= 0 {
		return fmt.Errorf("max_include_depth must be positive, got %d", c.MaxIncludeDepth)
	}
	return nil
}
