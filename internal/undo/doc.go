// Package undo reverses the most recent batch of recorded moves.
//
// The engine picks the newest batch with a non-empty move list, restores
// each destination to its recorded source, and removes the batch from
// history, even when some records could not be restored, which makes a
// partial undo final rather than retryable. Afterwards it prunes directories
// left empty by the restore, descending only into category-named folders at
// the target root so user-created folders are never touched.
package undo
