package feed

import "sync/atomic"

// Store holds the currently published Snapshot. Publish replaces it with a
// single pointer swap, so Current never observes a half-built snapshot and
// the read path takes no lock. Only the refresh scheduler writes.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns a store holding the initial empty snapshot (zero
// FetchedAt, empty collections).
func NewStore() *Store {
	s := &Store{}
	s.current.Store(&Snapshot{
		TripUpdates:      []TripUpdate{},
		VehiclePositions: []VehiclePosition{},
	})
	return s
}

// Publish makes snap the visible snapshot. The previous one is dropped.
func (s *Store) Publish(snap Snapshot) {
	s.current.Store(&snap)
}

// Current returns the visible snapshot. Callers must not mutate it.
func (s *Store) Current() Snapshot {
	return *s.current.Load()
}
