// Package config loads the engine's tuning parameters: page size,
// buffer pool capacity, and open-file limit.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the engine's external configuration inputs.
type Config struct {
	Storage struct {
		PageSize int `mapstructure:"page_size"`
	} `mapstructure:"storage"`
	Buffer struct {
		BufSlots  int `mapstructure:"buf_slots"`
		FileLimit int `mapstructure:"file_limit"`
	} `mapstructure:"buffer"`
}

// Load reads a YAML config file at path and validates it against the
// engine's minimum requirements.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the engine's configuration invariants.
func (c *Config) Validate() error {
	if c.Storage.PageSize <= 8 {
		return fmt.Errorf("config: page_size must exceed 8, got %d", c.Storage.PageSize)
	}
	if c.Buffer.BufSlots < 1 {
		return fmt.Errorf("config: buf_slots must be >= 1, got %d", c.Buffer.BufSlots)
	}
	if c.Buffer.FileLimit < 1 {
		return fmt.Errorf("config: file_limit must be >= 1, got %d", c.Buffer.FileLimit)
	}
	return nil
}
