package watcher

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"sortd/internal/classify"
	"sortd/internal/history"
	"sortd/internal/mover"
	"sortd/internal/plan"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

type watcherFixture struct {
	watcher *Watcher
	inbox   string
	target  string
	store   *history.Store
	clock   time.Time
}

func newFixture(t *testing.T, recursive bool) *watcherFixture {
	t.Helper()
	dir := t.TempDir()
	inbox := filepath.Join(dir, "inbox")
	target := filepath.Join(dir, "target")
	if err := os.MkdirAll(inbox, 0o755); err != nil {
		t.Fatal(err)
	}

	rules := classify.Default()
	store := history.NewStore(filepath.Join(dir, "history.json"), nil)
	planner := plan.NewPlanner(rules, target, false)

	f := &watcherFixture{
		inbox:  inbox,
		target: target,
		store:  store,
		clock:  time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
	}
	f.watcher = New(Options{
		Sources:  []plan.Source{{Path: inbox, Recursive: recursive}},
		Target:   target,
		Rules:    rules,
		Planner:  planner,
		Executor: mover.New(store, nil),
		Skip:     plan.NewSkipRules(""),
	})
	f.watcher.now = func() time.Time { return f.clock }
	f.watcher.sleep = func(time.Duration) {}
	return f
}

func TestSettledFileIsMoved(t *testing.T) {
	f := newFixture(t, false)
	path := filepath.Join(f.inbox, "invoice.pdf")
	writeFile(t, path, "complete content")

	f.watcher.observe(path)
	f.clock = f.clock.Add(3 * time.Second)
	f.watcher.processPending()

	want := filepath.Join(f.target, "文档", "发票", "invoice.pdf")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("settled file not moved: %v", err)
	}
	if len(f.watcher.pending) != 0 {
		t.Fatalf("pending should be drained, got %v", f.watcher.pending)
	}
	batches := f.store.Load()
	if len(batches) != 1 || len(batches[0].Moves) != 1 {
		t.Fatalf("history = %+v", batches)
	}
}

func TestGrowingFileIsRearmed(t *testing.T) {
	f := newFixture(t, false)
	path := filepath.Join(f.inbox, "big.zip")
	writeFile(t, path, "1000 bytes worth")

	// The sleep hook simulates the writer appending between the two samples.
	f.watcher.sleep = func(time.Duration) {
		fh, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fh.WriteString("...more data"); err != nil {
			t.Fatal(err)
		}
		fh.Close()
	}

	f.watcher.observe(path)
	f.clock = f.clock.Add(3 * time.Second)
	f.watcher.processPending()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("growing file must not move: %v", err)
	}
	seen, ok := f.watcher.pending[path]
	if !ok {
		t.Fatal("growing file should be re-armed")
	}
	if !seen.Equal(f.clock) {
		t.Fatalf("re-armed timestamp = %v, want refreshed to %v", seen, f.clock)
	}

	// Once the writer stops, the next eligible tick moves it.
	f.watcher.sleep = func(time.Duration) {}
	f.clock = f.clock.Add(3 * time.Second)
	f.watcher.processPending()
	if _, err := os.Stat(filepath.Join(f.target, "安装包", "big.zip")); err != nil {
		t.Fatalf("settled file not moved after re-arm: %v", err)
	}
}

func TestYoungEntryLeftUntouched(t *testing.T) {
	f := newFixture(t, false)
	path := filepath.Join(f.inbox, "fresh.pdf")
	writeFile(t, path, "x")

	f.watcher.observe(path)
	f.clock = f.clock.Add(1 * time.Second) // below the 2s settle delay
	f.watcher.processPending()

	if _, ok := f.watcher.pending[path]; !ok {
		t.Fatal("young entry should remain pending")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("young file must not move: %v", err)
	}
}

func TestVanishedEntryIsDropped(t *testing.T) {
	f := newFixture(t, false)
	path := filepath.Join(f.inbox, "gone.pdf")
	writeFile(t, path, "x")

	f.watcher.observe(path)
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	f.clock = f.clock.Add(3 * time.Second)
	f.watcher.processPending()

	if len(f.watcher.pending) != 0 {
		t.Fatalf("vanished entry should be dropped, got %v", f.watcher.pending)
	}
}

func TestObserveFilters(t *testing.T) {
	f := newFixture(t, false)

	// Skip-rule match.
	f.watcher.observe(filepath.Join(f.inbox, "partial.crdownload"))
	// Outside any watched root.
	f.watcher.observe(filepath.Join(f.target, "stray.pdf"))
	// Nested under a non-recursive root.
	f.watcher.observe(filepath.Join(f.inbox, "sub", "deep.pdf"))
	// Already-organized output.
	f.watcher.observe(filepath.Join(f.target, "文档", "done.pdf"))

	if len(f.watcher.pending) != 0 {
		t.Fatalf("all events should be filtered, pending = %v", f.watcher.pending)
	}
}

func TestCreatedDirectoriesFollowDescentRules(t *testing.T) {
	f := newFixture(t, true)
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer fsw.Close()

	bundle := filepath.Join(f.inbox, "Tool.app")
	hidden := filepath.Join(f.inbox, ".cache")
	normal := filepath.Join(f.inbox, "incoming")
	for _, dir := range []string{bundle, hidden, normal} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		f.watcher.handleEvent(fsw, fsnotify.Event{Name: dir, Op: fsnotify.Create})
	}

	watched := fsw.WatchList()
	if slices.Contains(watched, bundle) {
		t.Fatalf(".app bundle joined the watch list: %v", watched)
	}
	if slices.Contains(watched, hidden) {
		t.Fatalf("hidden directory joined the watch list: %v", watched)
	}
	if !slices.Contains(watched, normal) {
		t.Fatalf("plain subdirectory missing from watch list: %v", watched)
	}

	// Nothing inside the bundle was nominated, so its contents stay put.
	doc := filepath.Join(bundle, "Contents", "doc.pdf")
	writeFile(t, doc, "bundled resource")
	f.clock = f.clock.Add(3 * time.Second)
	f.watcher.processPending()
	if _, err := os.Stat(doc); err != nil {
		t.Fatalf("bundle contents must not be relocated: %v", err)
	}
}

func TestCreatedCategoryDirAtTargetNotWatched(t *testing.T) {
	dir := t.TempDir()
	rules := classify.Default()
	store := history.NewStore(filepath.Join(dir, "history.json"), nil)
	w := New(Options{
		Sources:  []plan.Source{{Path: dir, Recursive: true}},
		Target:   dir,
		Rules:    rules,
		Planner:  plan.NewPlanner(rules, dir, false),
		Executor: mover.New(store, nil),
		Skip:     plan.NewSkipRules(""),
	})

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer fsw.Close()

	category := filepath.Join(dir, "文档")
	if err := os.MkdirAll(category, 0o755); err != nil {
		t.Fatal(err)
	}
	w.handleEvent(fsw, fsnotify.Event{Name: category, Op: fsnotify.Create})

	if slices.Contains(fsw.WatchList(), category) {
		t.Fatalf("category directory at the target root joined the watch list")
	}
}

func TestObserveRecursiveScope(t *testing.T) {
	f := newFixture(t, true)
	nested := filepath.Join(f.inbox, "sub", "deep.pdf")
	writeFile(t, nested, "x")

	f.watcher.observe(nested)
	if _, ok := f.watcher.pending[nested]; !ok {
		t.Fatal("nested file under recursive root should be pending")
	}
}
