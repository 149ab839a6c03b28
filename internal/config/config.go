package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// runtime settings for the word-splitting engine
type Config struct {
	MinWordMillis int64 `yaml:"min_word_duration_ms"`
	MaxWordMillis int64 `yaml:"max_word_duration_ms"`
	Concurrency   int   `yaml:"concurrency"`
}

// Default returns the settings used when no config file is given.
func Default() Config {
	return Config{
		MinWordMillis: 200,
		MaxWordMillis: 3000,
		Concurrency:   1,
	}
}

// Load reads a YAML file over the defaults, so fields absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the settings can drive an allocation.
func (c Config) Validate() error {
	if c.MinWordMillis < 0 {
		return fmt.Errorf("min word duration must not be negative, got %d", c.MinWordMillis)
	}
	if c.MaxWordMillis < c.MinWordMillis {
		return fmt.Errorf("max word duration %d is below min %d", c.MaxWordMillis, c.MinWordMillis)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	return nil
}
