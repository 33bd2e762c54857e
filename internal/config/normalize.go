package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeSources(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeSources() error {
	if len(c.Sources) == 0 {
		c.Sources = []Source{{Path: defaultSourceDir, Recursive: true}}
	}
	for i := range c.Sources {
		expanded, err := expandPath(c.Sources[i].Path)
		if err != nil {
			return fmt.Errorf("sources[%d].path: %w", i, err)
		}
		c.Sources[i].Path = expanded
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error

	// The target defaults to the first source, so the downloads folder is
	// organized in place.
	if strings.TrimSpace(c.Paths.TargetDir) == "" && len(c.Sources) > 0 {
		c.Paths.TargetDir = c.Sources[0].Path
	}
	if c.Paths.TargetDir, err = expandPath(c.Paths.TargetDir); err != nil {
		return fmt.Errorf("paths.target_dir: %w", err)
	}

	if strings.TrimSpace(c.Paths.HistoryFile) == "" && c.Paths.TargetDir != "" {
		c.Paths.HistoryFile = filepath.Join(c.Paths.TargetDir, defaultHistoryFileName)
	}
	if c.Paths.HistoryFile, err = expandPath(c.Paths.HistoryFile); err != nil {
		return fmt.Errorf("paths.history_file: %w", err)
	}

	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeWatch() {
	if c.Watch.SettleDelaySeconds <= 0 {
		c.Watch.SettleDelaySeconds = defaultSettleDelaySeconds
	}
	if c.Watch.PollIntervalSeconds <= 0 {
		c.Watch.PollIntervalSeconds = defaultPollIntervalSeconds
	}
	if c.Watch.SamplePauseMillis <= 0 {
		c.Watch.SamplePauseMillis = defaultSamplePauseMillis
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			trimmed = home
		} else {
			trimmed = filepath.Join(home, trimmed[2:])
		}
	} else if strings.HasPrefix(trimmed, "~") {
		return "", errors.New("user-specific home paths (~user) are not supported")
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}
