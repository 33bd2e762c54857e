package plan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sortd/internal/classify"
)

const dateFolderLayout = "2006-01"

// Planner computes destinations for individual files.
type Planner struct {
	rules       *classify.Ruleset
	target      string
	dateFolders bool
	now         func() time.Time
}

// NewPlanner creates a planner writing into target. When dateFolders is set,
// destinations gain a YYYY-MM bucket derived from each file's modification
// time.
func NewPlanner(rules *classify.Ruleset, target string, dateFolders bool) *Planner {
	return &Planner{
		rules:       rules,
		target:      target,
		dateFolders: dateFolders,
		now:         time.Now,
	}
}

// SetNowFunc overrides the clock used for the date-bucket fallback, for tests.
func (p *Planner) SetNowFunc(now func() time.Time) {
	p.now = now
}

// Target returns the target root the planner writes into.
func (p *Planner) Target() string {
	return p.target
}

// Plan computes the move for one file. The boolean is false when the file
// already sits in its computed destination folder (a no-op, not an error).
// Stat failures surface as errors so the caller can drop the file and
// continue. A non-nil resolver makes same-named files within one planning
// pass claim distinct slots; with nil only the filesystem is probed.
func (p *Planner) Plan(path string, resolver *Resolver) (Move, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Move{}, false, fmt.Errorf("stat %s: %w", path, err)
	}

	name := filepath.Base(path)
	cls := p.rules.Classify(name)

	destFolder := filepath.Join(p.target, cls.Category)
	if cls.Subcategory != "" {
		destFolder = filepath.Join(destFolder, cls.Subcategory)
	}
	dateFolder := ""
	if p.dateFolders {
		dateFolder = p.dateBucket(info)
		destFolder = filepath.Join(destFolder, dateFolder)
	}

	if filepath.Dir(path) == destFolder {
		return Move{}, false, nil
	}

	dest := filepath.Join(destFolder, name)
	if resolver != nil {
		dest = resolver.Resolve(dest)
	} else {
		dest = UniqueDest(dest)
	}

	return Move{
		Source:          path,
		Dest:            dest,
		Size:            info.Size(),
		DisplayCategory: cls.Display(),
		DateFolder:      dateFolder,
	}, true, nil
}

func (p *Planner) dateBucket(info fs.FileInfo) string {
	mtime := info.ModTime()
	if mtime.IsZero() {
		mtime = p.now()
	}
	return mtime.Format(dateFolderLayout)
}

// Candidate returns the n-th collision candidate for dest: the bare path for
// n == 0, otherwise the name with "_n" inserted before the extension.
func Candidate(dest string, n int) string {
	if n == 0 {
		return dest
	}
	dir := filepath.Dir(dest)
	base := filepath.Base(dest)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
}

// UniqueDest probes the filesystem for the first unoccupied collision
// candidate of dest. The result can be raced by a concurrent plan; the
// executor's exclusive-create claim is what actually reserves a slot.
func UniqueDest(dest string) string {
	for n := 0; ; n++ {
		candidate := Candidate(dest, n)
		if _, err := os.Lstat(candidate); errors.Is(err, fs.ErrNotExist) {
			return candidate
		}
	}
}
