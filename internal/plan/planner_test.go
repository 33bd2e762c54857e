package plan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"sortd/internal/classify"
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

func TestPlanSubcategoryLayout(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	src := filepath.Join(dir, "inbox", "paper_draft.pdf")
	writeFile(t, src, "x")

	rules := classify.NewRuleset(
		[]classify.Category{{Name: "PDF文档", Extensions: []string{".pdf"}}},
		map[string][]classify.KeywordRule{
			"PDF文档": {{Keywords: []string{"paper"}, Subcategory: "论文"}},
		},
		"",
	)
	planner := NewPlanner(rules, target, false)

	move, ok, err := planner.Plan(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a planned move")
	}
	want := filepath.Join(target, "PDF文档", "论文", "paper_draft.pdf")
	if move.Dest != want {
		t.Fatalf("Dest = %q, want %q", move.Dest, want)
	}
	if move.DisplayCategory != "PDF文档/论文" {
		t.Fatalf("DisplayCategory = %q", move.DisplayCategory)
	}
	if move.DateFolder != "" {
		t.Fatalf("DateFolder = %q, want empty with partitioning off", move.DateFolder)
	}
}

func TestPlanDateFolder(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	src := filepath.Join(dir, "inbox", "notes.txt")
	writeFile(t, src, "x")

	mtime := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	planner := NewPlanner(classify.Default(), target, true)
	move, ok, err := planner.Plan(src, nil)
	if err != nil || !ok {
		t.Fatalf("plan: ok=%v err=%v", ok, err)
	}
	want := filepath.Join(target, "文档", "2026-03", "notes.txt")
	if move.Dest != want {
		t.Fatalf("Dest = %q, want %q", move.Dest, want)
	}
	if move.DateFolder != "2026-03" {
		t.Fatalf("DateFolder = %q", move.DateFolder)
	}
}

func TestPlanNoOpWhenAlreadyPlaced(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	src := filepath.Join(target, "文档", "notes.txt")
	writeFile(t, src, "x")

	planner := NewPlanner(classify.Default(), target, false)
	_, ok, err := planner.Plan(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("file already in its destination folder should be a no-op")
	}
}

func TestPlanStatFailure(t *testing.T) {
	planner := NewPlanner(classify.Default(), t.TempDir(), false)
	if _, _, err := planner.Plan(filepath.Join(t.TempDir(), "ghost.pdf"), nil); err == nil {
		t.Fatal("expected stat error for missing file")
	}
}

func TestUniqueDestProbesFilesystem(t *testing.T) {
	dir := t.TempDir()
	occupied := filepath.Join(dir, "invoice.pdf")
	writeFile(t, occupied, "x")
	writeFile(t, filepath.Join(dir, "invoice_1.pdf"), "x")

	got := UniqueDest(occupied)
	if got != filepath.Join(dir, "invoice_2.pdf") {
		t.Fatalf("UniqueDest = %q", got)
	}

	free := filepath.Join(dir, "fresh.pdf")
	if got := UniqueDest(free); got != free {
		t.Fatalf("unoccupied path should be returned bare, got %q", got)
	}
}

func TestResolverDistinctSlotsForSameName(t *testing.T) {
	dir := t.TempDir()
	resolver := NewResolver()
	dest := filepath.Join(dir, "invoice.pdf")

	first := resolver.Resolve(dest)
	second := resolver.Resolve(dest)
	third := resolver.Resolve(dest)

	if first != dest {
		t.Fatalf("first = %q, want bare name", first)
	}
	if second != filepath.Join(dir, "invoice_1.pdf") {
		t.Fatalf("second = %q", second)
	}
	if third != filepath.Join(dir, "invoice_2.pdf") {
		t.Fatalf("third = %q", third)
	}
}

func TestCandidate(t *testing.T) {
	dest := filepath.Join("a", "b", "report.tar.gz")
	if got := Candidate(dest, 0); got != dest {
		t.Fatalf("Candidate n=0 = %q", got)
	}
	// filepath.Ext only sees the final extension.
	want := filepath.Join("a", "b", "report.tar_3.gz")
	if got := Candidate(dest, 3); got != want {
		t.Fatalf("Candidate n=3 = %q, want %q", got, want)
	}
}

func TestPlanIdempotent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	src := filepath.Join(dir, "inbox", "invoice.pdf")
	writeFile(t, src, "x")
	writeFile(t, filepath.Join(target, "文档", "发票", "invoice.pdf"), "x")

	planner := NewPlanner(classify.Default(), target, false)

	first, ok1, err1 := planner.Plan(src, nil)
	second, ok2, err2 := planner.Plan(src, nil)
	if err1 != nil || err2 != nil || !ok1 || !ok2 {
		t.Fatalf("plans failed: %v %v", err1, err2)
	}
	if first != second {
		t.Fatalf("plans differ: %+v vs %+v", first, second)
	}
	if first.Dest != filepath.Join(target, "文档", "发票", "invoice_1.pdf") {
		t.Fatalf("Dest = %q", first.Dest)
	}
}
