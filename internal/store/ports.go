// Package store defines the persistence ports every backend implements and
// the error taxonomy adapters report through. Backends never retry on their
// own; every failure comes back once, carrying a human-readable message.
package store

import (
	"context"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
)

// Ports for outbound persistence adapters.
type (
	// Loader fetches the complete current state of every collection. Remote
	// implementations fetch the three collections concurrently and fail the
	// whole load if any one fetch fails. Client records come back already
	// normalized (isActive defaulted).
	Loader interface {
		FetchAll(ctx context.Context) (*core.Ledger, error)
	}

	ClientStore interface {
		AddClient(ctx context.Context, c core.Client) error
		UpdateClient(ctx context.Context, c core.Client) error
		DeleteClient(ctx context.Context, id string) error
	}

	PaymentStore interface {
		AddPayment(ctx context.Context, p core.Payment) error
		UpdatePayment(ctx context.Context, p core.Payment) error
		DeletePayment(ctx context.Context, id string) error
	}

	ExpenseStore interface {
		AddExpense(ctx context.Context, e core.Expense) error
		UpdateExpense(ctx context.Context, e core.Expense) error
		DeleteExpense(ctx context.Context, id string) error
	}

	// Bulk covers import and wipe. UpsertAll applies clients, then payments,
	// then expenses; the first collection that fails aborts the rest and is
	// reported, never silently skipped. ClearAll deletes payments and
	// expenses before clients so a backend enforcing foreign keys is never
	// asked to orphan a referenced row.
	Bulk interface {
		UpsertAll(ctx context.Context, clients []core.Client, payments []core.Payment, expenses []core.Expense) error
		ClearAll(ctx context.Context) error
	}

	// Pinger is the connectivity probe: a trivial bounded read that must
	// succeed before a remote configuration is treated as connected.
	Pinger interface {
		Ping(ctx context.Context) error
	}
)
