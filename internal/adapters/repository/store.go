package repository

import (
	"sync/atomic"
	"time"

	"github.com/campuspulse/campuspulse/pkg/metrics"
)

// Store publishes the current Snapshot. Reads load one pointer, so a reader
// always sees a consistent record set and bridge; Replace is the only write
// and swaps the whole snapshot atomically.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates an empty store. Reads return ErrNotLoaded until the
// first Replace.
func NewStore() *Store {
	return &Store{}
}

// Replace publishes a new snapshot, discarding the old one.
func (s *Store) Replace(snap *Snapshot) {
	s.current.Store(snap)
	metrics.IncrementSnapshotCount()
	metrics.UpdateSnapshotLastUnix(float64(time.Now().Unix()))
}

// Current returns the published snapshot.
func (s *Store) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Loaded reports whether a snapshot has been published.
func (s *Store) Loaded() bool {
	return s.current.Load() != nil
}
