package dataprocessing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/pkg/contracts/domain"
)

// Snapshot is one immutable cleaned dataset plus its load metadata.
// Consumers must never mutate the tables; derived views copy what they change.
type Snapshot struct {
	Tables   *domain.Tables
	Stats    *CleaningStats
	LoadedAt time.Time

	mtimes map[string]time.Time
}

// Store serves the cleaned dataset to request handlers. The first request
// triggers the load-and-clean pass; later requests share the cached snapshot
// until any source file's modification time changes, which invalidates the
// cache and triggers a reload on the next request.
type Store struct {
	mu       sync.RWMutex
	snapshot *Snapshot

	sources  map[string]string
	loader   *Loader
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewStore creates a store over the given source files. Nothing is loaded
// until the first Get.
func NewStore(sources map[string]string, loader *Loader, pipeline *Pipeline, logger *slog.Logger) *Store {
	return &Store{
		sources:  sources,
		loader:   loader,
		pipeline: pipeline,
		logger:   logger.With(slog.String("component", "data_store")),
	}
}

// Get returns the current snapshot, loading or reloading as needed.
func (s *Store) Get(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()

	if snap != nil {
		fresh, err := s.isFresh(snap)
		if err != nil {
			return nil, err
		}
		if fresh {
			return snap, nil
		}
		s.logger.InfoContext(ctx, "source files changed, reloading dataset")
	}

	return s.reload(ctx)
}

// Invalidate drops the cached snapshot so the next Get reloads from disk.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
}

// Loaded reports whether a snapshot is currently cached, without loading.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot != nil
}

func (s *Store) isFresh(snap *Snapshot) (bool, error) {
	mtimes, err := SourceModTimes(s.sources)
	if err != nil {
		return false, err
	}
	for name, mtime := range mtimes {
		if !mtime.Equal(snap.mtimes[name]) {
			return false, nil
		}
	}
	return true, nil
}

func (s *Store) reload(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have reloaded while we waited for the lock.
	if s.snapshot != nil {
		if fresh, err := s.isFresh(s.snapshot); err == nil && fresh {
			return s.snapshot, nil
		}
	}

	mtimes, err := SourceModTimes(s.sources)
	if err != nil {
		return nil, err
	}

	raw, err := s.loader.Load(ctx, s.sources)
	if err != nil {
		return nil, err
	}

	tables, stats := s.pipeline.Clean(ctx, raw)

	s.snapshot = &Snapshot{
		Tables:   tables,
		Stats:    stats,
		LoadedAt: time.Now(),
		mtimes:   mtimes,
	}
	return s.snapshot, nil
}
