package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/reel/internal/catalog"
)

// Snapshot represents the latest committed result set.
type Snapshot struct {
	Items               []catalog.Title
	Seq                 uint64 // sequence of the refresh that produced Items
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // refreshes that failed in a row
}

// IsOffline returns true when the API has failed several refreshes in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store holds the result set and arbitrates between overlapping refreshes.
// Each refresh takes a sequence number from Begin; Commit applies a response
// only if no later refresh has been committed already.
type Store struct {
	mu       sync.RWMutex
	issued   uint64
	snapshot Snapshot
}

// Begin reserves the sequence number for a new refresh.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Commit applies the response of refresh seq. It returns false and changes
// nothing when a refresh issued later than seq has already been committed.
// A failed refresh replaces the items with an empty set and records err.
func (s *Store) Commit(seq uint64, items []catalog.Title, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.snapshot.Seq {
		return false
	}
	s.snapshot.Seq = seq
	s.snapshot.LastUpdated = time.Now()

	if err != nil {
		s.snapshot.Items = nil
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return true
	}

	s.snapshot.Items = cloneItems(items)
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// Pending reports whether a refresh was issued after the last commit.
func (s *Store) Pending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issued > s.snapshot.Seq
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneItems(s.snapshot.Items)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneItems(items []catalog.Title) []catalog.Title {
	if len(items) == 0 {
		return nil
	}
	dup := make([]catalog.Title, len(items))
	copy(dup, items)
	return dup
}
