package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSources(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSources() error {
	if len(c.Sources) == 0 {
		return errors.New("at least one [[sources]] entry is required")
	}
	for i, src := range c.Sources {
		if strings.TrimSpace(src.Path) == "" {
			return fmt.Errorf("sources[%d].path must be set", i)
		}
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.TargetDir) == "" {
		return errors.New("paths.target_dir must be set")
	}
	if strings.TrimSpace(c.Paths.HistoryFile) == "" {
		return errors.New("paths.history_file must be set")
	}
	return nil
}

func (c *Config) validateOrganize() error {
	for ext, category := range c.Organize.ExtensionOverrides {
		if strings.TrimSpace(ext) == "" || strings.TrimSpace(category) == "" {
			return fmt.Errorf("organize.extension_overrides: empty mapping %q = %q", ext, category)
		}
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
