package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"sortd/internal/logging"
)

// Move records a single executed relocation.
type Move struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
}

// Batch groups the moves of one time window for single-step undo.
type Batch struct {
	ID        int64     `json:"batch_id"`
	Timestamp time.Time `json:"timestamp"`
	Moves     []Move    `json:"moves"`
}

// BatchWindow is how long a batch keeps accepting new moves after its
// timestamp.
const BatchWindow = 60 * time.Second

// Store owns the persisted history file. All history mutations go through
// it; no other component writes the file.
type Store struct {
	path   string
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	recovered bool
}

// NewStore creates a store for the history file at path. The file is created
// lazily on first mutation.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logging.NewComponentLogger(logger, "history"),
		now:    time.Now,
	}
}

// SetNowFunc overrides the clock, for tests.
func (s *Store) SetNowFunc(now func() time.Time) {
	s.now = now
}

// Load returns the full history. A missing file is an empty history; an
// unparsable file is treated the same way, with a warning logged and the
// Recovered flag raised so the reset is observable.
func (s *Store) Load() []Batch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Recovered reports whether a load since construction found a corrupt
// history file and reset it to empty.
func (s *Store) Recovered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recovered
}

// StartBatch appends a fresh empty batch and returns its id. Each organize
// run calls this first so the run is its own undo boundary even when no move
// succeeds.
func (s *Store) StartBatch() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batches := s.load()
	id := nextID(batches)
	batches = append(batches, Batch{ID: id, Timestamp: s.now(), Moves: []Move{}})
	if err := s.save(batches); err != nil {
		return 0, err
	}
	s.logger.Debug("started batch", logging.Int64("batch_id", id))
	return id, nil
}

// RecordMove appends one executed move, joining the newest batch while it is
// still inside the window and opening a new batch otherwise.
func (s *Store) RecordMove(source, dest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batches := s.load()
	now := s.now()
	move := Move{Source: source, Dest: dest}

	if n := len(batches); n > 0 && now.Sub(batches[n-1].Timestamp) < BatchWindow {
		batches[n-1].Moves = append(batches[n-1].Moves, move)
	} else {
		batches = append(batches, Batch{ID: nextID(batches), Timestamp: now, Moves: []Move{move}})
	}
	return s.save(batches)
}

// RemoveBatch deletes the batch with the given id and persists the remaining
// history.
func (s *Store) RemoveBatch(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batches := s.load()
	kept := batches[:0]
	for _, b := range batches {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	return s.save(kept)
}

// Replace overwrites the entire persisted history.
func (s *Store) Replace(batches []Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(batches)
}

// Path returns the on-disk location of the history file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() []Batch {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.recovered = true
			s.logger.Warn("history file unreadable, starting empty",
				logging.String("path", s.path),
				logging.Error(err))
		}
		return nil
	}
	var batches []Batch
	if err := json.Unmarshal(data, &batches); err != nil {
		s.recovered = true
		s.logger.Warn("history file corrupt, starting empty",
			logging.String("path", s.path),
			logging.Int("bytes", len(data)),
			logging.Error(err))
		return nil
	}
	return batches
}

func (s *Store) save(batches []Batch) error {
	if batches == nil {
		batches = []Batch{}
	}
	data, err := json.MarshalIndent(batches, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure history directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

func nextID(batches []Batch) int64 {
	if len(batches) == 0 {
		return 1
	}
	return batches[len(batches)-1].ID + 1
}
