// Package memory is the ephemeral backend: a ledger held in process memory
// behind the same ports as the durable backends. It backs tests and runs
// where nothing should persist.
package memory

import (
	"context"
	"sync"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/store"
)

type Store struct {
	mu     sync.Mutex
	ledger *core.Ledger
}

func New() *Store {
	return &Store{ledger: core.NewLedger()}
}

// Seed creates a store preloaded with a clone of l.
func Seed(l *core.Ledger) *Store {
	return &Store{ledger: l.Clone()}
}

// FetchAll returns a deep copy of the current state.
func (s *Store) FetchAll(_ context.Context) (*core.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clone(), nil
}

// Ping always succeeds: the process's own memory is always reachable.
func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) AddClient(_ context.Context, c core.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.AddClient(c); err != nil {
		return store.Rejected("memory.AddClient", "client id already exists", err)
	}
	return nil
}

func (s *Store) UpdateClient(_ context.Context, c core.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.UpdateClient(c); err != nil {
		return store.Rejected("memory.UpdateClient", "unknown client id", err)
	}
	return nil
}

// DeleteClient removes the client. Deleting an absent id is a no-op, the
// local-storage rule.
func (s *Store) DeleteClient(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.DeleteClient(id)
	return nil
}

func (s *Store) AddPayment(_ context.Context, p core.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.AddPayment(p); err != nil {
		return store.Rejected("memory.AddPayment", "payment id already exists", err)
	}
	return nil
}

func (s *Store) UpdatePayment(_ context.Context, p core.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.UpdatePayment(p); err != nil {
		return store.Rejected("memory.UpdatePayment", "unknown payment id", err)
	}
	return nil
}

func (s *Store) DeletePayment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.DeletePayment(id)
	return nil
}

func (s *Store) AddExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.AddExpense(e); err != nil {
		return store.Rejected("memory.AddExpense", "expense id already exists", err)
	}
	return nil
}

func (s *Store) UpdateExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.UpdateExpense(e); err != nil {
		return store.Rejected("memory.UpdateExpense", "unknown expense id", err)
	}
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.DeleteExpense(id)
	return nil
}

// UpsertAll inserts or replaces each record, collection by collection.
func (s *Store) UpsertAll(_ context.Context, clients []core.Client, payments []core.Payment, expenses []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range clients {
		if s.ledger.UpdateClient(c) != nil {
			s.ledger.Clients[c.ID] = c
		}
	}
	for _, p := range payments {
		if s.ledger.UpdatePayment(p) != nil {
			s.ledger.Payments = append(s.ledger.Payments, p)
		}
	}
	for _, e := range expenses {
		if s.ledger.UpdateExpense(e) != nil {
			s.ledger.Expenses = append(s.ledger.Expenses, e)
		}
	}
	return nil
}

// ClearAll drops everything.
func (s *Store) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = core.NewLedger()
	return nil
}
