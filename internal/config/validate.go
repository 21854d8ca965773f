package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateWorkers(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateOrganize() error {
	switch c.Organize.Layout {
	case LayoutFlat, LayoutYear:
	default:
		return fmt.Errorf("organize.layout must be %q or %q, got %q", LayoutFlat, LayoutYear, c.Organize.Layout)
	}
	if c.Organize.PicturesDir == c.Organize.MoviesDir {
		return errors.New("organize.pictures_dir and organize.movies_dir must differ")
	}
	return nil
}

func (c *Config) validateWorkers() error {
	if c.Workers.Process > 128 {
		return fmt.Errorf("workers.process must be at most 128, got %d", c.Workers.Process)
	}
	if c.Workers.Extract > 32 {
		return fmt.Errorf("workers.extract must be at most 32, got %d", c.Workers.Extract)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
