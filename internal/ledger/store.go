// Package ledger holds the session state: the in-memory ledger the rest of
// the application reads, and the coordinator that mutates it optimistically
// against a persistence backend.
package ledger

import (
	"sync"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
)

// Store is the single source of truth for the running session. Readers get
// deep clones; writers swap in whole new ledger instances, so a snapshot
// handed out earlier can never observe a mutation mid-flight.
type Store struct {
	mu      sync.RWMutex
	current *core.Ledger
}

func NewStore() *Store {
	return &Store{current: core.NewLedger()}
}

// Snapshot returns a deep copy of the current ledger.
func (s *Store) Snapshot() *core.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Replace swaps the whole ledger for a clone of l.
func (s *Store) Replace(l *core.Ledger) {
	clone := l.Clone()
	s.mu.Lock()
	s.current = clone
	s.mu.Unlock()
}

// apply clones the current ledger, runs mutate on the clone and, only on
// success, swaps it in. The ledger visible to readers is always either fully
// pre-mutation or fully post-mutation.
func (s *Store) apply(mutate func(*core.Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current.Clone()
	if err := mutate(next); err != nil {
		return err
	}
	s.current = next
	return nil
}
