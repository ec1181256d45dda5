package ledger

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/store/memory"
)

var errBackendDown = errors.New("backend down")

// flakyBackend delegates to a memory store until fail is set, after which
// every call that would persist returns an error.
type flakyBackend struct {
	*memory.Store
	fail bool
}

func (f *flakyBackend) AddClient(ctx context.Context, c core.Client) error {
	if f.fail {
		return errBackendDown
	}
	return f.Store.AddClient(ctx, c)
}

func (f *flakyBackend) UpdateClient(ctx context.Context, c core.Client) error {
	if f.fail {
		return errBackendDown
	}
	return f.Store.UpdateClient(ctx, c)
}

func (f *flakyBackend) DeleteClient(ctx context.Context, id string) error {
	if f.fail {
		return errBackendDown
	}
	return f.Store.DeleteClient(ctx, id)
}

func (f *flakyBackend) AddPayment(ctx context.Context, p core.Payment) error {
	if f.fail {
		return errBackendDown
	}
	return f.Store.AddPayment(ctx, p)
}

func (f *flakyBackend) UpsertAll(ctx context.Context, clients []core.Client, payments []core.Payment, expenses []core.Expense) error {
	if f.fail {
		return errBackendDown
	}
	return f.Store.UpsertAll(ctx, clients, payments, expenses)
}

func (f *flakyBackend) ClearAll(ctx context.Context) error {
	if f.fail {
		return errBackendDown
	}
	return f.Store.ClearAll(ctx)
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newFixture(t *testing.T) (*Coordinator, *Store, *flakyBackend) {
	t.Helper()
	b := &flakyBackend{Store: memory.New()}
	st := NewStore()
	return NewCoordinator(st, b, nil, nil), st, b
}

func TestMutationVisibleAfterSuccess(t *testing.T) {
	coord, st, _ := newFixture(t)
	ctx := context.Background()

	c := core.Client{ID: "c1", Name: "Acme", TotalBilled: d(100), IsActive: true}
	if err := coord.AddClient(ctx, c); err != nil {
		t.Fatalf("AddClient: %v", err)
	}
	if _, ok := st.Snapshot().Client("c1"); !ok {
		t.Fatal("client not visible in store")
	}
}

func TestValidationRejectedBeforeStore(t *testing.T) {
	coord, st, _ := newFixture(t)
	ctx := context.Background()

	err := coord.AddPayment(ctx, core.Payment{ID: "p1", ClientID: "", Amount: d(10), Date: core.Today()})
	if !errors.Is(err, core.ErrEmptyClientID) {
		t.Fatalf("err = %v, want ErrEmptyClientID", err)
	}
	if len(st.Snapshot().Payments) != 0 {
		t.Fatal("invalid payment reached the store")
	}
}

// A persistence failure restores the exact pre-mutation state.
func TestRollbackRestoresSnapshot(t *testing.T) {
	coord, st, b := newFixture(t)
	ctx := context.Background()

	if err := coord.AddClient(ctx, core.Client{ID: "c1", Name: "Acme", TotalBilled: d(100), IsActive: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := coord.AddPayment(ctx, core.Payment{ID: "p1", ClientID: "c1", Amount: d(40), Date: core.NewDate(2026, 1, 5)}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	before := st.Snapshot()

	b.fail = true
	err := coord.AddPayment(ctx, core.Payment{ID: "p2", ClientID: "c1", Amount: d(60), Date: core.NewDate(2026, 1, 6)})
	if !errors.Is(err, errBackendDown) {
		t.Fatalf("err = %v, want backend failure", err)
	}

	after := st.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("rollback state differs:\nbefore %+v\nafter  %+v", before, after)
	}
}

// A sequence with failures interleaved ends in the same state as applying
// only the successful mutations in order.
func TestFailedMutationsLeaveNoTrace(t *testing.T) {
	coord, st, b := newFixture(t)
	ref := core.NewLedger()
	ctx := context.Background()

	type step struct {
		fail    bool
		payment core.Payment
	}
	steps := []step{
		{false, core.Payment{ID: "p1", ClientID: "c1", Amount: d(10), Date: core.NewDate(2026, 1, 1)}},
		{true, core.Payment{ID: "p2", ClientID: "c1", Amount: d(20), Date: core.NewDate(2026, 1, 2)}},
		{false, core.Payment{ID: "p3", ClientID: "c1", Amount: d(30), Date: core.NewDate(2026, 1, 3)}},
		{true, core.Payment{ID: "p4", ClientID: "c1", Amount: d(40), Date: core.NewDate(2026, 1, 4)}},
	}
	for _, s := range steps {
		b.fail = s.fail
		err := coord.AddPayment(ctx, s.payment)
		if s.fail {
			if err == nil {
				t.Fatalf("payment %s persisted through a down backend", s.payment.ID)
			}
			continue
		}
		if err != nil {
			t.Fatalf("payment %s: %v", s.payment.ID, err)
		}
		if err := ref.AddPayment(s.payment); err != nil {
			t.Fatalf("reference: %v", err)
		}
	}

	if got := st.Snapshot(); !reflect.DeepEqual(got.Payments, ref.Payments) {
		t.Fatalf("payments diverged from reference:\ngot  %+v\nwant %+v", got.Payments, ref.Payments)
	}
}

func TestDuplicateAddRolledBackLocally(t *testing.T) {
	coord, st, _ := newFixture(t)
	ctx := context.Background()

	c := core.Client{ID: "c1", Name: "Acme", TotalBilled: d(100), IsActive: true}
	if err := coord.AddClient(ctx, c); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := coord.AddClient(ctx, c); !errors.Is(err, core.ErrDuplicateEntity) {
		t.Fatalf("second add err = %v", err)
	}
	if n := len(st.Snapshot().Clients); n != 1 {
		t.Fatalf("clients = %d, want 1", n)
	}
}

func TestImportReplacesFromBackend(t *testing.T) {
	coord, st, _ := newFixture(t)
	ctx := context.Background()

	clients := []core.Client{{ID: "c1", Name: "Acme", TotalBilled: d(500), IsActive: true}}
	payments := []core.Payment{{ID: "p1", ClientID: "c1", Amount: d(200), Date: core.NewDate(2026, 2, 1)}}
	if err := coord.Import(ctx, clients, payments, nil); err != nil {
		t.Fatalf("Import: %v", err)
	}

	snap := st.Snapshot()
	if len(snap.Clients) != 1 || len(snap.Payments) != 1 {
		t.Fatalf("after import: %d clients, %d payments", len(snap.Clients), len(snap.Payments))
	}
}

// An import of three empty collections is valid and yields an empty ledger.
func TestImportEmpty(t *testing.T) {
	coord, st, _ := newFixture(t)
	ctx := context.Background()

	if err := coord.AddClient(ctx, core.Client{ID: "c1", Name: "Acme", TotalBilled: d(1), IsActive: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := coord.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := coord.Import(ctx, nil, nil, nil); err != nil {
		t.Fatalf("empty import: %v", err)
	}
	snap := st.Snapshot()
	if len(snap.Clients) != 0 || len(snap.Payments) != 0 || len(snap.Expenses) != 0 {
		t.Fatalf("ledger not empty: %+v", snap)
	}
}

func TestImportValidatesUpFront(t *testing.T) {
	coord, st, b := newFixture(t)
	ctx := context.Background()

	bad := []core.Payment{{ID: "p1", ClientID: "c1", Amount: d(-5), Date: core.Today()}}
	err := coord.Import(ctx, nil, bad, nil)
	if !errors.Is(err, core.ErrNegativeAmount) {
		t.Fatalf("err = %v, want ErrNegativeAmount", err)
	}
	// Nothing reached the backend or the store.
	backendState, _ := b.FetchAll(ctx)
	if len(backendState.Payments) != 0 || len(st.Snapshot().Payments) != 0 {
		t.Fatal("invalid import left traces")
	}
}

func TestImportFailureLeavesStateUntouched(t *testing.T) {
	coord, st, b := newFixture(t)
	ctx := context.Background()

	if err := coord.AddClient(ctx, core.Client{ID: "c1", Name: "Acme", TotalBilled: d(1), IsActive: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	before := st.Snapshot()

	b.fail = true
	err := coord.Import(ctx, []core.Client{{ID: "c2", Name: "Globex", TotalBilled: d(2), IsActive: true}}, nil, nil)
	if !errors.Is(err, errBackendDown) {
		t.Fatalf("err = %v", err)
	}
	if !reflect.DeepEqual(before, st.Snapshot()) {
		t.Fatal("failed import changed the in-memory ledger")
	}
}

func TestClearFailureLeavesStateUntouched(t *testing.T) {
	coord, st, b := newFixture(t)
	ctx := context.Background()

	if err := coord.AddClient(ctx, core.Client{ID: "c1", Name: "Acme", TotalBilled: d(1), IsActive: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	b.fail = true
	if err := coord.Clear(ctx); !errors.Is(err, errBackendDown) {
		t.Fatalf("err = %v", err)
	}
	if len(st.Snapshot().Clients) != 1 {
		t.Fatal("failed clear wiped the in-memory ledger")
	}
}

func TestRefreshLoadsBackendState(t *testing.T) {
	seed := core.NewLedger()
	seed.Clients["c1"] = core.Client{ID: "c1", Name: "Acme", TotalBilled: d(100), IsActive: true}
	b := &flakyBackend{Store: memory.Seed(seed)}
	st := NewStore()
	coord := NewCoordinator(st, b, nil, nil)

	if err := coord.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if _, ok := st.Snapshot().Client("c1"); !ok {
		t.Fatal("refresh did not load backend state")
	}
}
