package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"sortd/internal/classify"
	"sortd/internal/logging"
	"sortd/internal/mover"
	"sortd/internal/plan"
)

const (
	defaultSettleDelay  = 2 * time.Second
	defaultPollInterval = 1 * time.Second
	defaultSamplePause  = 500 * time.Millisecond
)

// Options configures a Watcher.
type Options struct {
	Sources  []plan.Source
	Target   string
	Rules    *classify.Ruleset
	Planner  *plan.Planner
	Executor *mover.Executor
	Skip     plan.SkipRules
	Logger   *slog.Logger

	SettleDelay  time.Duration
	PollInterval time.Duration
	SamplePause  time.Duration
}

// Watcher debounces filesystem events into settled, movable files.
type Watcher struct {
	sources  []plan.Source
	target   string
	rules    *classify.Ruleset
	planner  *plan.Planner
	executor *mover.Executor
	skip     plan.SkipRules
	logger   *slog.Logger

	settleDelay  time.Duration
	pollInterval time.Duration
	samplePause  time.Duration

	pending map[string]time.Time
	now     func() time.Time
	sleep   func(time.Duration)
}

// New creates a watcher; zero durations fall back to the defaults (2s settle,
// 1s poll, 500ms sample pause).
func New(opts Options) *Watcher {
	w := &Watcher{
		sources:      opts.Sources,
		target:       opts.Target,
		rules:        opts.Rules,
		planner:      opts.Planner,
		executor:     opts.Executor,
		skip:         opts.Skip,
		logger:       logging.NewComponentLogger(opts.Logger, "watcher"),
		settleDelay:  opts.SettleDelay,
		pollInterval: opts.PollInterval,
		samplePause:  opts.SamplePause,
		pending:      make(map[string]time.Time),
		now:          time.Now,
		sleep:        time.Sleep,
	}
	if w.settleDelay <= 0 {
		w.settleDelay = defaultSettleDelay
	}
	if w.pollInterval <= 0 {
		w.pollInterval = defaultPollInterval
	}
	if w.samplePause <= 0 {
		w.samplePause = defaultSamplePause
	}
	return w
}

// Run subscribes to the source roots and processes events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	for _, src := range w.sources {
		if err := w.addWatches(fsw, src); err != nil {
			return err
		}
		w.logger.Info("watching",
			logging.String("path", src.Path),
			logging.Bool("recursive", src.Recursive),
			logging.Duration("settle_delay", w.settleDelay))
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.Error(err))
		case <-ticker.C:
			w.processPending()
		}
	}
}

// addWatches subscribes src's root and, for recursive sources, every
// existing subdirectory that the scanner would descend into.
func (w *Watcher) addWatches(fsw *fsnotify.Watcher, src plan.Source) error {
	if err := fsw.Add(src.Path); err != nil {
		return err
	}
	if !src.Recursive {
		return nil
	}
	return filepath.WalkDir(src.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtrees are not fatal
		}
		if !d.IsDir() || path == src.Path {
			return nil
		}
		if w.excludedDir(path) {
			return filepath.SkipDir
		}
		_ = fsw.Add(path)
		return nil
	})
}

// excludedDir reports whether a directory stays outside the subscription:
// hidden directories, .app bundles, and category-named directories at the
// target root. The same rules apply at startup and to directories created
// while watching, so a bundle dropped into a recursive source is never
// picked apart.
func (w *Watcher) excludedDir(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".app") {
		return true
	}
	return filepath.Dir(path) == w.target && w.rules.IsCategory(name)
}

// handleEvent nominates created or moved-in paths. fsnotify reports a file
// moved into the watched tree as a Create event.
func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event) {
	if ev.Op&fsnotify.Create == 0 {
		return
	}
	info, err := os.Stat(ev.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		// New directories under a recursive source join the subscription,
		// subject to the same exclusions as the startup walk.
		if w.excludedDir(ev.Name) {
			return
		}
		for _, src := range w.sources {
			if src.Recursive && isUnder(src.Path, ev.Name) {
				_ = fsw.Add(ev.Name)
				return
			}
		}
		return
	}
	w.observe(ev.Name)
}

// observe enters path into the pending set if it belongs to a watched source
// and is not excluded.
func (w *Watcher) observe(path string) {
	if !w.inWatchedScope(path) {
		return
	}
	if plan.IsOrganized(w.target, w.rules, path) {
		return
	}
	if w.skip.ShouldSkip(filepath.Base(path)) {
		return
	}
	w.pending[path] = w.now()
	w.logger.Debug("pending", logging.String("path", path))
}

func (w *Watcher) inWatchedScope(path string) bool {
	for _, src := range w.sources {
		if src.Recursive {
			if isUnder(src.Path, path) {
				return true
			}
			continue
		}
		if filepath.Dir(path) == src.Path {
			return true
		}
	}
	return false
}

type sizeProbe struct {
	path string
	size int64
}

// processPending drains entries older than the settle delay, moving files
// whose size held steady across two samples and re-arming the rest. All
// eligible entries share one sample pause, so a tick's latency is bounded
// regardless of how many files are pending.
func (w *Watcher) processPending() {
	now := w.now()
	var probes []sizeProbe
	for path, firstSeen := range w.pending {
		if now.Sub(firstSeen) < w.settleDelay {
			continue
		}
		delete(w.pending, path)

		info, err := os.Stat(path)
		if err != nil {
			continue // vanished while pending
		}
		probes = append(probes, sizeProbe{path: path, size: info.Size()})
	}
	if len(probes) == 0 {
		return
	}

	w.sleep(w.samplePause)
	for _, probe := range probes {
		info, err := os.Stat(probe.path)
		if err != nil {
			continue
		}
		if info.Size() != probe.size {
			// Still being written; try again on a later tick.
			w.pending[probe.path] = now
			continue
		}
		w.moveSettled(probe.path)
	}
}

// moveSettled plans and executes one settled file. The entry is gone from
// the pending set regardless of outcome.
func (w *Watcher) moveSettled(path string) {
	m, ok, err := w.planner.Plan(path, nil)
	if err != nil {
		w.logger.Warn("cannot plan settled file",
			logging.String("path", path),
			logging.Error(err))
		return
	}
	if !ok {
		return
	}
	dest, err := w.executor.ExecuteOne(m)
	if err != nil {
		w.logger.Warn("move failed",
			logging.String("path", path),
			logging.Error(err))
		return
	}
	w.logger.Info("organized",
		logging.String("file", filepath.Base(path)),
		logging.String("category", m.DisplayCategory),
		logging.String("dest", dest))
}

func isUnder(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != "." && !strings.HasPrefix(rel, "..")
}
