package state

import (
	"fmt"
	"sync"

	"github.com/five82/searchbox/internal/catalog"
)

// Snapshot represents the latest search box state available to the UI.
type Snapshot struct {
	Query        string             // latest input value, recorded on every keystroke
	ResultQuery  string             // query the Results were computed for
	Results      catalog.ResultList // results of the most recent pass
	LastError    error
	Focused      bool
	Selected     catalog.Item
}

// HasResults reports whether a result list should be rendered.
func (s Snapshot) HasResults() bool {
	return len(s.Results) > 0
}

// Stale reports whether the input changed since the last completed pass.
func (s Snapshot) Stale() bool {
	return s.Query != s.ResultQuery
}

// Store coordinates concurrent access to the snapshot. Keystrokes arrive on
// the UI goroutine while debounced passes complete on timer goroutines.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetQuery records the latest input value.
func (s *Store) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Query = query
}

// Update records a completed pass. When err is non-nil the previous results
// are kept but the error is recorded for visibility.
func (s *Store) Update(query string, results catalog.ResultList, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		return
	}

	s.snapshot.ResultQuery = query
	s.snapshot.Results = results.Clone()
	s.snapshot.LastError = nil
}

// ClearResults empties the result list and marks it current for the query.
func (s *Store) ClearResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Results = nil
	s.snapshot.ResultQuery = s.snapshot.Query
}

// SetFocused records whether the input has focus.
func (s *Store) SetFocused(focused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Focused = focused
}

// SetSelected records the most recently selected item.
func (s *Store) SetSelected(item catalog.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Selected = item
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Results = s.snapshot.Results.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
