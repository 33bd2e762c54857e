package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"sortd/internal/plan"
	"sortd/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the source roots and organize files as they settle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			// One watcher per history file; a second instance would race the
			// read-modify-write history mutations.
			lockPath := filepath.Join(cfg.Paths.LogDir, "sortd.lock")
			lock := flock.New(lockPath)
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !locked {
				return errors.New("another sortd watch instance is already running")
			}
			defer lock.Unlock()

			rules := ctx.ruleset()
			store := ctx.newStore(logger)
			planner := plan.NewPlanner(rules, cfg.Paths.TargetDir, cfg.Organize.DateFolders)

			w := watcher.New(watcher.Options{
				Sources:      ctx.sources(),
				Target:       cfg.Paths.TargetDir,
				Rules:        rules,
				Planner:      planner,
				Executor:     ctx.newExecutor(store, logger),
				Skip:         plan.NewSkipRules(cfg.Paths.HistoryFile),
				Logger:       logger,
				SettleDelay:  time.Duration(cfg.Watch.SettleDelaySeconds) * time.Second,
				PollInterval: time.Duration(cfg.Watch.PollIntervalSeconds) * time.Second,
				SamplePause:  time.Duration(cfg.Watch.SamplePauseMillis) * time.Millisecond,
			})

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cmd.Println("Watching. Press Ctrl+C to stop.")
			if err := w.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
