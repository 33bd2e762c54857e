package mover

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"sortd/internal/fileutil"
	"sortd/internal/history"
	"sortd/internal/logging"
	"sortd/internal/plan"
)

// Executor performs planned moves and records each success in history.
type Executor struct {
	store  *history.Store
	logger *slog.Logger
}

// New creates an executor recording into store.
func New(store *history.Store, logger *slog.Logger) *Executor {
	return &Executor{
		store:  store,
		logger: logging.NewComponentLogger(logger, "mover"),
	}
}

// Execute runs every move in the plan. It returns how many moves succeeded
// and how many were attempted. A single move failing never aborts the rest;
// only a history store that cannot even open a batch is a hard error.
func (e *Executor) Execute(p *plan.Plan) (moved, total int, err error) {
	total = p.Total()
	id, err := e.store.StartBatch()
	if err != nil {
		return 0, total, fmt.Errorf("start batch: %w", err)
	}
	e.logger.Info("executing plan",
		logging.Int64("batch_id", id),
		logging.Int("files", total))

	for _, group := range p.Groups {
		for _, m := range group.Moves {
			dest, err := e.moveOne(m)
			if err != nil {
				e.logger.Warn("move failed",
					logging.String("source", m.Source),
					logging.Error(err))
				continue
			}
			moved++
			e.logger.Info("moved",
				logging.String("source", filepath.Base(m.Source)),
				logging.String("category", m.DisplayCategory),
				logging.String("dest", dest))
		}
	}
	return moved, total, nil
}

// ExecuteOne performs a single planned move outside a scan run, recording it
// through the history windowing rule (the watcher's path: consecutive
// settled files within the window share a batch).
func (e *Executor) ExecuteOne(m plan.Move) (string, error) {
	return e.moveOne(m)
}

func (e *Executor) moveOne(m plan.Move) (string, error) {
	if err := os.MkdirAll(filepath.Dir(m.Dest), 0o755); err != nil {
		return "", fmt.Errorf("create destination folder: %w", err)
	}

	dest, err := claimDest(m)
	if err != nil {
		return "", fmt.Errorf("claim destination: %w", err)
	}

	if err := fileutil.MovePath(m.Source, dest); err != nil {
		_ = os.Remove(dest) // release the placeholder claim
		return "", err
	}

	if err := e.store.RecordMove(m.Source, dest); err != nil {
		// The file moved; losing the record only costs undo coverage.
		e.logger.Warn("move succeeded but history append failed",
			logging.String("dest", dest),
			logging.Error(err))
	}
	return dest, nil
}

// claimDest reserves a destination slot with an exclusive create, starting
// from the file's bare name and advancing _1, _2, ... on conflict. The
// placeholder file is atomically replaced by the subsequent rename.
func claimDest(m plan.Move) (string, error) {
	base := filepath.Join(filepath.Dir(m.Dest), filepath.Base(m.Source))
	for n := 0; ; n++ {
		candidate := plan.Candidate(base, n)
		f, err := os.OpenFile(candidate, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_ = f.Close()
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
	}
}
