package report

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func testLedger() *core.Ledger {
	l := core.NewLedger()
	l.Clients["c1"] = core.Client{ID: "c1", Name: "Acme", TotalBilled: d(1000), IsActive: true}
	l.Clients["c2"] = core.Client{ID: "c2", Name: "Globex", TotalBilled: d(200), IsActive: false}
	l.Payments = []core.Payment{
		{ID: "p1", ClientID: "c1", Amount: d(400), Date: core.NewDate(2026, 1, 10), Kind: core.KindReceived},
		{ID: "p2", ClientID: "c1", Amount: d(100), Date: core.NewDate(2026, 1, 20), Kind: core.KindRefund},
		{ID: "p3", ClientID: "c2", Amount: d(500), Date: core.NewDate(2026, 2, 5), Method: "Bank"},
	}
	l.Expenses = []core.Expense{
		{ID: "e1", Category: "Travel", Amount: d(50), Date: core.NewDate(2026, 1, 15)},
		{ID: "e2", Category: "travel", Amount: d(30), Date: core.NewDate(2026, 2, 1)},
	}
	return l
}

func TestNetIncome(t *testing.T) {
	l := testLedger()
	// 400 - 100 + 500
	if got := NetIncome(l.Payments); !got.Equal(d(800)) {
		t.Fatalf("NetIncome = %s, want 800", got)
	}
}

// Summation must be order independent.
func TestNetIncomeReorderInvariant(t *testing.T) {
	l := testLedger()
	want := NetIncome(l.Payments)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := slices.Clone(l.Payments)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := NetIncome(shuffled); !got.Equal(want) {
			t.Fatalf("reorder changed net income: %s != %s", got, want)
		}
	}
}

func TestNetIncomeCountsZeroAmounts(t *testing.T) {
	payments := []core.Payment{
		{ID: "p1", ClientID: "c1", Amount: decimal.Zero, Date: core.NewDate(2026, 1, 1)},
		{ID: "p2", ClientID: "c1", Amount: d(10), Date: core.NewDate(2026, 1, 2)},
	}
	if got := NetIncome(payments); !got.Equal(d(10)) {
		t.Fatalf("NetIncome with zero payment = %s, want 10", got)
	}
}

func TestNetProfit(t *testing.T) {
	l := testLedger()
	// 800 income - 80 expenses
	if got := NetProfit(l); !got.Equal(d(720)) {
		t.Fatalf("NetProfit = %s, want 720", got)
	}
}

// Client with totalBilled=1000, one received 400 and one refund 100:
// netPaid=300, due=700.
func TestClientBalance(t *testing.T) {
	l := testLedger()
	b := Balance(l, l.Clients["c1"])
	if !b.NetPaid.Equal(d(300)) {
		t.Fatalf("NetPaid = %s, want 300", b.NetPaid)
	}
	if !b.Due.Equal(d(700)) {
		t.Fatalf("Due = %s, want 700", b.Due)
	}
}

// c2 is overpaid (due -300). Its own balance keeps the negative value, but
// the aggregate outstanding counts it as zero, not as an offset.
func TestOutstandingClampsCredit(t *testing.T) {
	l := testLedger()
	b := Balance(l, l.Clients["c2"])
	if !b.Due.Equal(d(-300)) {
		t.Fatalf("c2 due = %s, want -300", b.Due)
	}
	if got := Outstanding(l); !got.Equal(d(700)) {
		t.Fatalf("Outstanding = %s, want 700", got)
	}
}

func TestSummarize(t *testing.T) {
	l := testLedger()
	s := Summarize(l)
	if !s.NetIncome.Equal(d(800)) || !s.TotalExpenses.Equal(d(80)) || !s.NetProfit.Equal(d(720)) {
		t.Fatalf("summary totals: income=%s expenses=%s profit=%s", s.NetIncome, s.TotalExpenses, s.NetProfit)
	}
	if !s.Outstanding.Equal(d(700)) {
		t.Fatalf("Outstanding = %s, want 700", s.Outstanding)
	}
	if s.ClientCount != 2 || s.ActiveClients != 1 {
		t.Fatalf("counts: %d clients, %d active", s.ClientCount, s.ActiveClients)
	}
	if len(s.Balances) != 2 || s.Balances[0].Name != "Acme" {
		t.Fatalf("balances: %+v", s.Balances)
	}
}

// The engine must never mutate its input snapshot.
func TestSummarizeDoesNotMutate(t *testing.T) {
	l := testLedger()
	before := l.Clone()
	_ = Summarize(l)
	_ = BuildStatement(l, Filter{From: core.NewDate(2026, 1, 1), To: core.NewDate(2026, 12, 31)})
	_ = MonthlySeries(l, 6, core.NewDate(2026, 2, 28))
	_ = CategoryBreakdown(l.Expenses)

	if len(l.Payments) != len(before.Payments) || len(l.Expenses) != len(before.Expenses) || len(l.Clients) != len(before.Clients) {
		t.Fatal("aggregation mutated the snapshot")
	}
	for i := range before.Payments {
		if !l.Payments[i].Amount.Equal(before.Payments[i].Amount) {
			t.Fatal("aggregation mutated a payment amount")
		}
	}
}
