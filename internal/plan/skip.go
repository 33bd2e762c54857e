package plan

import (
	"path/filepath"
	"strings"

	"sortd/internal/classify"
)

// inProgressMarkers are substrings browsers and sync clients use for files
// still being written.
var inProgressMarkers = []string{
	".uploading",
	".download",
	".crdownload",
	".part",
	".tmp",
}

// reservedNames are exact filenames never touched regardless of location.
var reservedNames = []string{
	".DS_Store",
	".localized",
}

// SkipRules decides which filenames are excluded from planning.
type SkipRules struct {
	exact   map[string]struct{}
	markers []string
}

// NewSkipRules builds the default skip set. The history file's own name is
// reserved so the organizer never relocates its undo log.
func NewSkipRules(historyFile string) SkipRules {
	exact := make(map[string]struct{}, len(reservedNames)+1)
	for _, name := range reservedNames {
		exact[name] = struct{}{}
	}
	if historyFile != "" {
		exact[filepath.Base(historyFile)] = struct{}{}
	}
	return SkipRules{exact: exact, markers: inProgressMarkers}
}

// ShouldSkip reports whether a filename is excluded: reserved names, any
// dot-prefixed name, or names carrying an in-progress download marker.
func (r SkipRules) ShouldSkip(name string) bool {
	if _, ok := r.exact[name]; ok {
		return true
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, marker := range r.markers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// skipDirName reports whether a directory is never descended into: hidden
// directories and self-contained .app bundles.
func skipDirName(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".app")
}

// IsOrganized reports whether path already lives inside classified output:
// under the target root, below a first-level directory named like a known
// category. Such files are excluded unconditionally, even when the planner
// would place them elsewhere, to prevent oscillating re-moves.
func IsOrganized(target string, rules *classify.Ruleset, path string) bool {
	rel, err := filepath.Rel(target, path)
	if err != nil {
		return false
	}
	if rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	parts := strings.SplitN(rel, string(filepath.Separator), 2)
	if len(parts) < 2 {
		return false
	}
	return rules.IsCategory(parts[0])
}
