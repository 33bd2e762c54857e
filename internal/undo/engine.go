package undo

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sortd/internal/classify"
	"sortd/internal/fileutil"
	"sortd/internal/history"
	"sortd/internal/logging"
)

// ErrNothingToUndo reports an empty history or one holding only empty
// batches.
var ErrNothingToUndo = errors.New("nothing to undo")

// Engine reverses recorded batches.
type Engine struct {
	store  *history.Store
	rules  *classify.Ruleset
	target string
	logger *slog.Logger
}

// New creates an undo engine over store, pruning inside target.
func New(store *history.Store, rules *classify.Ruleset, target string, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		rules:  rules,
		target: target,
		logger: logging.NewComponentLogger(logger, "undo"),
	}
}

// UndoLast reverses the newest non-empty batch. It returns how many records
// were restored and how many the batch held. Records whose destination no
// longer exists are skipped; the batch is removed from history regardless,
// so a partially restored batch cannot be retried.
func (e *Engine) UndoLast() (restored, total int, err error) {
	batch, ok := latestNonEmpty(e.store.Load())
	if !ok {
		return 0, 0, ErrNothingToUndo
	}

	e.logger.Info("undoing batch",
		logging.Int64("batch_id", batch.ID),
		logging.Int("files", len(batch.Moves)))

	for _, mv := range batch.Moves {
		if _, statErr := os.Stat(mv.Dest); statErr != nil {
			e.logger.Warn("recorded destination missing, cannot restore",
				logging.String("dest", mv.Dest))
			continue
		}
		if mkErr := os.MkdirAll(filepath.Dir(mv.Source), 0o755); mkErr != nil {
			e.logger.Warn("restore failed",
				logging.String("dest", mv.Dest),
				logging.Error(mkErr))
			continue
		}
		if mvErr := fileutil.MovePath(mv.Dest, mv.Source); mvErr != nil {
			e.logger.Warn("restore failed",
				logging.String("dest", mv.Dest),
				logging.Error(mvErr))
			continue
		}
		restored++
	}

	if err := e.store.RemoveBatch(batch.ID); err != nil {
		return restored, len(batch.Moves), fmt.Errorf("remove batch from history: %w", err)
	}

	e.pruneEmptyFolders()
	return restored, len(batch.Moves), nil
}

func latestNonEmpty(batches []history.Batch) (history.Batch, bool) {
	for i := len(batches) - 1; i >= 0; i-- {
		if len(batches[i].Moves) > 0 {
			return batches[i], true
		}
	}
	return history.Batch{}, false
}
