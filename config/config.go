// Package config holds the settings shared by the dicego commands.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/sansecio/dicego/format"
)

// Config holds the roller settings. Zero limits mean unlimited, and a zero
// Seed seeds the source from crypto/rand. Format is plain, markdown or ansi.
type Config struct {
	MaxDice          int    `yaml:"max_dice" env:"DICEGO_MAX_DICE"`
	MaxMessageLength int    `yaml:"max_message_length" env:"DICEGO_MAX_MESSAGE_LENGTH"`
	Format           string `yaml:"format" env:"DICEGO_FORMAT"`
	Seed             uint64 `yaml:"seed" env:"DICEGO_SEED"`
	Debug            bool   `yaml:"debug" env:"DICEGO_DEBUG"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxDice:          1000,
		MaxMessageLength: 2000,
		Format:           "markdown",
	}
}

// Load reads the YAML file at path over the defaults, applies DICEGO_*
// environment overrides and validates the result. An empty path or a
// missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks limits and the formatter name.
func (c *Config) Validate() error {
	if c.MaxDice < 0 {
		return fmt.Errorf("max_dice must not be negative, got %d", c.MaxDice)
	}
	if c.MaxMessageLength < 0 {
		return fmt.Errorf("max_message_length must not be negative, got %d", c.MaxMessageLength)
	}
	if _, err := format.ByName(c.Format); err != nil {
		return err
	}
	return nil
}
