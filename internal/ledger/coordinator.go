package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/backend"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/events"
)

// Coordinator applies every mutation to the in-memory store first, then asks
// the backend to persist it. If persistence fails, the store is restored to
// the exact pre-mutation snapshot and the error is returned; the caller owns
// user notification. There is no automatic retry.
//
// Mutations are not serialized against each other. Two in-flight mutations
// can interleave, and a rollback may clobber the other's optimistic change;
// a single-operator deployment makes this acceptable, and each mutation's
// own success or failure path stays correct in isolation.
type Coordinator struct {
	store   *Store
	backend backend.Backend
	events  *events.Publisher // optional; nil means no event publishing
	logger  *slog.Logger
}

func NewCoordinator(store *Store, b backend.Backend, publisher *events.Publisher, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{store: store, backend: b, events: publisher, logger: logger}
}

// Snapshot returns a read view of the current ledger.
func (c *Coordinator) Snapshot() *core.Ledger {
	return c.store.Snapshot()
}

// Refresh reloads the whole ledger from the backend and replaces the store.
func (c *Coordinator) Refresh(ctx context.Context) error {
	fresh, err := c.backend.FetchAll(ctx)
	if err != nil {
		return err
	}
	c.store.Replace(fresh)
	return nil
}

// mutate is the optimistic protocol: snapshot, apply in memory, persist,
// roll back on failure.
func (c *Coordinator) mutate(ctx context.Context, entity, op, id string, apply func(*core.Ledger) error, persist func(context.Context) error) error {
	snapshot := c.store.Snapshot()
	if err := c.store.apply(apply); err != nil {
		return err
	}
	if err := persist(ctx); err != nil {
		c.store.Replace(snapshot)
		c.logger.WarnContext(ctx, "mutation rolled back",
			"entity", entity, "op", op, "id", id, "error", err)
		return err
	}
	c.publish(ctx, entity, op, id)
	return nil
}

// publish emits a mutation event when a publisher is configured. Publishing
// is best effort: a failure is logged and never fails the mutation.
func (c *Coordinator) publish(ctx context.Context, entity, op, id string) {
	if c.events == nil {
		return
	}
	if err := c.events.Publish(ctx, events.Mutation{Entity: entity, Op: op, ID: id}); err != nil {
		c.logger.ErrorContext(ctx, "failed to publish mutation event",
			"entity", entity, "op", op, "id", id, "error", err)
	}
}

func (c *Coordinator) AddClient(ctx context.Context, cl core.Client) error {
	if err := cl.Validate(); err != nil {
		return err
	}
	return c.mutate(ctx, "client", "add", cl.ID,
		func(l *core.Ledger) error { return l.AddClient(cl) },
		func(ctx context.Context) error { return c.backend.AddClient(ctx, cl) })
}

func (c *Coordinator) UpdateClient(ctx context.Context, cl core.Client) error {
	if err := cl.Validate(); err != nil {
		return err
	}
	return c.mutate(ctx, "client", "update", cl.ID,
		func(l *core.Ledger) error { return l.UpdateClient(cl) },
		func(ctx context.Context) error { return c.backend.UpdateClient(ctx, cl) })
}

func (c *Coordinator) DeleteClient(ctx context.Context, id string) error {
	return c.mutate(ctx, "client", "delete", id,
		func(l *core.Ledger) error { l.DeleteClient(id); return nil },
		func(ctx context.Context) error { return c.backend.DeleteClient(ctx, id) })
}

func (c *Coordinator) AddPayment(ctx context.Context, p core.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return c.mutate(ctx, "payment", "add", p.ID,
		func(l *core.Ledger) error { return l.AddPayment(p) },
		func(ctx context.Context) error { return c.backend.AddPayment(ctx, p) })
}

func (c *Coordinator) UpdatePayment(ctx context.Context, p core.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return c.mutate(ctx, "payment", "update", p.ID,
		func(l *core.Ledger) error { return l.UpdatePayment(p) },
		func(ctx context.Context) error { return c.backend.UpdatePayment(ctx, p) })
}

func (c *Coordinator) DeletePayment(ctx context.Context, id string) error {
	return c.mutate(ctx, "payment", "delete", id,
		func(l *core.Ledger) error { l.DeletePayment(id); return nil },
		func(ctx context.Context) error { return c.backend.DeletePayment(ctx, id) })
}

func (c *Coordinator) AddExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return c.mutate(ctx, "expense", "add", e.ID,
		func(l *core.Ledger) error { return l.AddExpense(e) },
		func(ctx context.Context) error { return c.backend.AddExpense(ctx, e) })
}

func (c *Coordinator) UpdateExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return c.mutate(ctx, "expense", "update", e.ID,
		func(l *core.Ledger) error { return l.UpdateExpense(e) },
		func(ctx context.Context) error { return c.backend.UpdateExpense(ctx, e) })
}

func (c *Coordinator) DeleteExpense(ctx context.Context, id string) error {
	return c.mutate(ctx, "expense", "delete", id,
		func(l *core.Ledger) error { l.DeleteExpense(id); return nil },
		func(ctx context.Context) error { return c.backend.DeleteExpense(ctx, id) })
}

// Import bulk-upserts the three collections and, only after the backend
// confirms, replaces the in-memory ledger with the fresh backend state. A
// failure leaves the in-memory ledger untouched.
//
// Records are validated up front: a malformed payload is rejected before the
// backend sees anything.
func (c *Coordinator) Import(ctx context.Context, clients []core.Client, payments []core.Payment, expenses []core.Expense) error {
	for i, cl := range clients {
		if err := cl.Validate(); err != nil {
			return fmt.Errorf("clients[%d]: %w", i, err)
		}
	}
	for i, p := range payments {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("payments[%d]: %w", i, err)
		}
	}
	for i, e := range expenses {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("expenses[%d]: %w", i, err)
		}
	}

	if err := c.backend.UpsertAll(ctx, clients, payments, expenses); err != nil {
		return err
	}
	if err := c.Refresh(ctx); err != nil {
		return err
	}
	c.publish(ctx, "ledger", "import", "")
	return nil
}

// Clear wipes the backend and, only after it confirms, resets the in-memory
// ledger to empty. A failure leaves the in-memory ledger untouched.
func (c *Coordinator) Clear(ctx context.Context) error {
	if err := c.backend.ClearAll(ctx); err != nil {
		return err
	}
	c.store.Replace(core.NewLedger())
	c.publish(ctx, "ledger", "clear", "")
	return nil
}
