package main

import (
	"log/slog"
	"path/filepath"

	"sortd/internal/classify"
	"sortd/internal/config"
	"sortd/internal/history"
	"sortd/internal/logging"
	"sortd/internal/mover"
	"sortd/internal/plan"
	"sortd/internal/undo"
)

// commandContext lazily resolves the shared dependencies commands need, so
// flag parsing and help never pay for config or logger construction.
type commandContext struct {
	configFlag *string

	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, path, _, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.cfgPath = path
	return cfg, nil
}

// ensureLogger builds the process logger: stderr plus the log file, so table
// output on stdout stays clean.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	paths := []string{"stderr"}
	if cfg.Paths.LogDir != "" {
		paths = append(paths, filepath.Join(cfg.Paths.LogDir, "sortd.log"))
	}
	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: paths,
	})
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}

func (c *commandContext) ruleset() *classify.Ruleset {
	return classify.WithExtensions(c.cfg.Organize.ExtensionOverrides)
}

func (c *commandContext) sources() []plan.Source {
	out := make([]plan.Source, 0, len(c.cfg.Sources))
	for _, src := range c.cfg.Sources {
		out = append(out, plan.Source{Path: src.Path, Recursive: src.Recursive})
	}
	return out
}

func (c *commandContext) newScanner(rules *classify.Ruleset, logger *slog.Logger) *plan.Scanner {
	planner := plan.NewPlanner(rules, c.cfg.Paths.TargetDir, c.cfg.Organize.DateFolders)
	skip := plan.NewSkipRules(c.cfg.Paths.HistoryFile)
	return plan.NewScanner(planner, rules, skip, logger)
}

func (c *commandContext) newStore(logger *slog.Logger) *history.Store {
	return history.NewStore(c.cfg.Paths.HistoryFile, logger)
}

func (c *commandContext) newExecutor(store *history.Store, logger *slog.Logger) *mover.Executor {
	return mover.New(store, logger)
}

func (c *commandContext) newUndoEngine(store *history.Store, rules *classify.Ruleset, logger *slog.Logger) *undo.Engine {
	return undo.New(store, rules, c.cfg.Paths.TargetDir, logger)
}
