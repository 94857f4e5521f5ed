package dataset

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BoilerWiseAI/boilerwise-mvp/engine/domain"
	"github.com/BoilerWiseAI/boilerwise-mvp/engine/index"
)

// state is one immutable generation of loaded data. Swapped wholesale so
// readers never observe a half-built index.
type state struct {
	idx      *index.Index
	meta     domain.DatasetMetadata
	loadedAt time.Time
	err      error
}

// Store holds the current index generation. Queries served from a Store
// that has never loaded successfully hit an empty index, so they degrade to
// empty results and not-found rather than failing.
type Store struct {
	path string
	log  *slog.Logger

	mu  sync.Mutex // serializes reloads
	cur atomic.Pointer[state]
}

// NewStore creates a Store for the dataset at path. No load happens yet.
func NewStore(path string, log *slog.Logger) *Store {
	s := &Store{path: path, log: log}
	s.cur.Store(&state{idx: index.Build(nil)})
	return s
}

// Load reads the dataset and atomically swaps in a freshly built index.
// On failure the previous generation stays in place and the error is
// retained for health reporting.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := Load(s.path)
	if err != nil {
		prev := s.cur.Load()
		s.cur.Store(&state{idx: prev.idx, meta: prev.meta, loadedAt: prev.loadedAt, err: err})
		s.log.Error("dataset load failed", "path", s.path, "error", err)
		return err
	}

	next := &state{
		idx:      index.Build(ds.BoilerFaults),
		meta:     ds.Metadata,
		loadedAt: time.Now(),
	}
	s.cur.Store(next)
	s.log.Info("dataset loaded", "path", s.path, "entries", next.idx.Len())
	return nil
}

// Index returns the current index generation. Never nil.
func (s *Store) Index() *index.Index { return s.cur.Load().idx }

// Metadata returns the metadata of the last successful load.
func (s *Store) Metadata() domain.DatasetMetadata { return s.cur.Load().meta }

// LoadedAt returns when the current generation was loaded; zero if no load
// has succeeded yet.
func (s *Store) LoadedAt() time.Time { return s.cur.Load().loadedAt }

// Err returns the most recent load error, nil after a successful load.
func (s *Store) Err() error { return s.cur.Load().err }
