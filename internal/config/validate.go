package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDecode(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDecode() error {
	if err := ensureNonNegativeMap(map[string]int{
		"decode.search_timeout_seconds": c.Decode.SearchTimeoutSeconds,
		"decode.max_expansions":         c.Decode.MaxExpansions,
		"decode.known_keys":             c.Decode.KnownKeys,
	}); err != nil {
		return err
	}
	for _, marker := range c.Decode.SeedMarkers {
		if len(marker) != 2 {
			return fmt.Errorf("decode.seed_markers: %q must be exactly two characters", marker)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 {
		return errors.New("logging.max_size_mb and logging.max_backups must not be negative")
	}
	return nil
}

func ensureNonNegativeMap(values map[string]int) error {
	for key, value := range values {
		if value < 0 {
			return fmt.Errorf("%s must not be negative", key)
		}
	}
	return nil
}
