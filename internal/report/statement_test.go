package report

import (
	"testing"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"

	"github.com/shopspring/decimal"
)

func yearFilter() Filter {
	return Filter{From: core.NewDate(2026, 1, 1), To: core.NewDate(2026, 12, 31)}
}

func TestStatementUnfiltered(t *testing.T) {
	l := testLedger()
	st := BuildStatement(l, yearFilter())

	// 3 payments + 2 expenses
	if len(st.Rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(st.Rows))
	}
	for i := 1; i < len(st.Rows); i++ {
		if st.Rows[i].Date.Before(st.Rows[i-1].Date.Time) {
			t.Fatalf("rows not in date order at %d", i)
		}
	}
	// credit = received 400 + 500; debit = refund 100 + expenses 80
	if !st.Totals.Credit.Equal(d(900)) {
		t.Fatalf("credit = %s, want 900", st.Totals.Credit)
	}
	if !st.Totals.Debit.Equal(d(180)) {
		t.Fatalf("debit = %s, want 180", st.Totals.Debit)
	}
}

// Filtering by client keeps that client's payments and drops every expense,
// since expenses carry no client dimension.
func TestStatementClientFilter(t *testing.T) {
	l := testLedger()
	f := yearFilter()
	f.ClientID = "c1"
	st := BuildStatement(l, f)

	if len(st.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(st.Rows))
	}
	for _, r := range st.Rows {
		if r.Type == RowExpense {
			t.Fatalf("client-filtered statement contains an expense row: %+v", r)
		}
		if r.Client != "Acme" {
			t.Fatalf("row for wrong client: %q", r.Client)
		}
	}
	// Totals cover included rows only: no expense debit.
	if !st.Totals.Credit.Equal(d(400)) || !st.Totals.Debit.Equal(d(100)) {
		t.Fatalf("totals = debit %s / credit %s", st.Totals.Debit, st.Totals.Credit)
	}
}

// A payment without a method matches the default method filter.
func TestStatementMethodFilterDefault(t *testing.T) {
	l := testLedger()
	f := yearFilter()
	f.Method = core.DefaultMethod
	st := BuildStatement(l, f)

	if len(st.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 (p1 and p2 default to Cash)", len(st.Rows))
	}
	for _, r := range st.Rows {
		if r.Method != core.DefaultMethod {
			t.Fatalf("row method = %q", r.Method)
		}
	}
	if st.Methods != nil {
		t.Fatal("method breakdown present on a method-filtered statement")
	}
}

func TestStatementDateBoundsInclusive(t *testing.T) {
	l := testLedger()
	f := Filter{From: core.NewDate(2026, 1, 10), To: core.NewDate(2026, 1, 20)}
	st := BuildStatement(l, f)

	// p1 on the from-bound, p2 on the to-bound, e1 in between.
	if len(st.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(st.Rows))
	}
}

func TestStatementMethodBreakdown(t *testing.T) {
	l := testLedger()
	st := BuildStatement(l, yearFilter())

	// Sorted by method name: Bank then Cash. Cash nets 400-100.
	want := []MethodTotal{
		{Method: "Bank", Net: d(500)},
		{Method: core.DefaultMethod, Net: d(300)},
	}
	if len(st.Methods) != len(want) {
		t.Fatalf("methods = %+v", st.Methods)
	}
	for i, w := range want {
		if st.Methods[i].Method != w.Method || !st.Methods[i].Net.Equal(w.Net) {
			t.Fatalf("methods[%d] = %+v, want %+v", i, st.Methods[i], w)
		}
	}
}

func TestStatementRefundColumns(t *testing.T) {
	l := testLedger()
	st := BuildStatement(l, yearFilter())
	var refund *Row
	for i := range st.Rows {
		if st.Rows[i].Type == RowRefund {
			refund = &st.Rows[i]
		}
	}
	if refund == nil {
		t.Fatal("no refund row")
	}
	if !refund.Debit.Equal(d(100)) || !refund.Credit.Equal(decimal.Zero) {
		t.Fatalf("refund columns: debit %s credit %s", refund.Debit, refund.Credit)
	}
}

// Empty filter dimensions echo back as ALL.
func TestStatementFilterEcho(t *testing.T) {
	l := testLedger()
	st := BuildStatement(l, yearFilter())
	if st.Filter.ClientID != All || st.Filter.Method != All {
		t.Fatalf("echo = %+v", st.Filter)
	}
}

func TestStatementUnknownClientName(t *testing.T) {
	l := testLedger()
	l.Payments = append(l.Payments, core.Payment{
		ID: "p9", ClientID: "ghost", Amount: d(5), Date: core.NewDate(2026, 3, 1),
	})
	st := BuildStatement(l, yearFilter())
	last := st.Rows[len(st.Rows)-1]
	if last.Client != core.UnknownClientName {
		t.Fatalf("client label = %q", last.Client)
	}
}
