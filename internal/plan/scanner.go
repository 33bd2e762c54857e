package plan

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"sortd/internal/classify"
	"sortd/internal/logging"
)

// Scanner walks source roots and produces a grouped Plan.
type Scanner struct {
	planner *Planner
	rules   *classify.Ruleset
	skip    SkipRules
	logger  *slog.Logger
}

// NewScanner creates a scanner. The planner's target root doubles as the
// anchor for the already-organized exclusion.
func NewScanner(planner *Planner, rules *classify.Ruleset, skip SkipRules, logger *slog.Logger) *Scanner {
	return &Scanner{
		planner: planner,
		rules:   rules,
		skip:    skip,
		logger:  logging.NewComponentLogger(logger, "scanner"),
	}
}

// Scan walks every source root and returns the grouped planned moves plus
// the skipped filenames. Unreadable directories are skipped, unstatable
// files dropped; neither aborts the scan.
func (s *Scanner) Scan(sources []Source) *Plan {
	acc := &scanAccumulator{
		groups:   make(map[string][]Move),
		resolver: NewResolver(),
	}
	for _, src := range sources {
		s.scanDir(src.Path, src.Recursive, acc)
	}

	plan := &Plan{Skipped: acc.skipped}
	categories := make([]string, 0, len(acc.groups))
	for category := range acc.groups {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		plan.Groups = append(plan.Groups, Group{Category: category, Moves: acc.groups[category]})
	}
	return plan
}

type scanAccumulator struct {
	groups   map[string][]Move
	skipped  []string
	resolver *Resolver
}

func (s *Scanner) scanDir(dir string, recursive bool, acc *scanAccumulator) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Permission problems and vanished directories are not fatal.
		s.logger.Debug("skipping unreadable directory",
			logging.String("dir", dir),
			logging.Error(err))
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if !recursive {
				continue
			}
			if s.skipDirectory(dir, entry.Name()) {
				continue
			}
			s.scanDir(path, recursive, acc)
			continue
		}
		s.planFile(path, acc)
	}
}

// skipDirectory applies the descent rules: hidden directories, .app bundles,
// and, only when scanning the target root itself, directories named like a
// known category, so classified output is never re-scanned.
func (s *Scanner) skipDirectory(parent, name string) bool {
	if skipDirName(name) {
		return true
	}
	return parent == s.planner.Target() && s.rules.IsCategory(name)
}

func (s *Scanner) planFile(path string, acc *scanAccumulator) {
	if IsOrganized(s.planner.Target(), s.rules, path) {
		return
	}

	name := filepath.Base(path)
	if s.skip.ShouldSkip(name) {
		acc.skipped = append(acc.skipped, name)
		return
	}

	move, ok, err := s.planner.Plan(path, acc.resolver)
	if err != nil {
		s.logger.Debug("dropping unplannable file",
			logging.String("path", path),
			logging.Error(err))
		return
	}
	if !ok {
		return
	}
	acc.groups[move.DisplayCategory] = append(acc.groups[move.DisplayCategory], move)
}
