package undo

import (
	"os"
	"path/filepath"
)

// markerFile is ignorable clutter that must not keep a folder alive.
const markerFile = ".DS_Store"

// pruneEmptyFolders removes classification folders emptied by the restore.
// Only the category-named directories at the target root are visited, so
// user-created folders survive even when empty.
func (e *Engine) pruneEmptyFolders() {
	for _, name := range e.rules.CategoryNames() {
		dir := filepath.Join(e.target, name)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		pruneTree(dir)
	}
}

// pruneTree removes dir if, after pruning its subdirectories, it holds
// nothing but the marker file. It reports whether dir was removed.
func pruneTree(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}

	empty := true
	for _, entry := range entries {
		if entry.IsDir() {
			if !pruneTree(filepath.Join(dir, entry.Name())) {
				empty = false
			}
			continue
		}
		if entry.Name() == markerFile {
			continue
		}
		empty = false
	}
	if !empty {
		return false
	}
	_ = os.Remove(filepath.Join(dir, markerFile))
	return os.Remove(dir) == nil
}
