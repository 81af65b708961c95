package sweep

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the parameters of an analysis sweep.
type Config struct {
	// MinTableExponent is log2 of the smallest table size swept.
	// Default: 9 (512 entries).
	MinTableExponent int `json:"min_table_exponent"`

	// MaxTableExponent is log2 of the largest table size swept.
	// Default: 16 (65536 entries).
	MaxTableExponent int `json:"max_table_exponent"`

	// Workers is the size of the worker pool. Zero uses one worker per CPU.
	Workers int `json:"workers"`

	// Split is the training fraction used for the profiled column.
	// Clamped to [0, 1]. Default: 0.5.
	Split float64 `json:"split"`
}

// DefaultConfig returns the default sweep configuration.
func DefaultConfig() *Config {
	return &Config{
		MinTableExponent: 9,
		MaxTableExponent: 16,
		Workers:          0,
		Split:            0.5,
	}
}

// LoadConfig loads a Config from a JSON file. Missing fields keep their
// default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sweep config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse sweep config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize sweep config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write sweep config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration describes a usable grid.
func (c *Config) Validate() error {
	if c.MinTableExponent < 1 {
		return fmt.Errorf("min_table_exponent must be >= 1")
	}
	if c.MaxTableExponent > MaxTableExponent {
		return fmt.Errorf("max_table_exponent must be <= %d", MaxTableExponent)
	}
	if c.MinTableExponent > c.MaxTableExponent {
		return fmt.Errorf("min_table_exponent must be <= max_table_exponent")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Grid returns the table-size grid described by the configuration.
func (c *Config) Grid() Grid {
	return Grid{
		MinExponent: c.MinTableExponent,
		MaxExponent: c.MaxTableExponent,
	}
}
