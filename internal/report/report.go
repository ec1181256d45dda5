// Package report is the derived-financials engine. Every function takes a
// ledger snapshot plus parameters and returns computed values; nothing here
// mutates the snapshot or touches I/O, so results are deterministic for a
// given snapshot and the package is safe to call from any goroutine that owns
// a clone.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
)

type (
	// ClientBalance is the billing position of a single client. Due may be
	// negative: that is a client in credit (overpaid), which is meaningful on
	// its own but contributes zero to the aggregate outstanding total.
	ClientBalance struct {
		ClientID    string          `json:"clientId"`
		Name        string          `json:"name"`
		TotalBilled decimal.Decimal `json:"totalBilled"`
		NetPaid     decimal.Decimal `json:"netPaid"`
		Due         decimal.Decimal `json:"due"`
	}

	// Summary is the dashboard view over a whole ledger.
	Summary struct {
		NetIncome     decimal.Decimal `json:"netIncome"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetProfit     decimal.Decimal `json:"netProfit"`
		Outstanding   decimal.Decimal `json:"outstanding"`
		ClientCount   int             `json:"clientCount"`
		ActiveClients int             `json:"activeClients"`
		Balances      []ClientBalance `json:"balances"`
	}
)

// NetIncome sums payments with refunds subtracting. Summation order is
// irrelevant, so the result is invariant under reordering of the list.
func NetIncome(payments []core.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.ResolvedKind().Signed(p.Amount))
	}
	return total
}

// TotalExpenses sums all expense amounts.
func TotalExpenses(expenses []core.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// NetProfit is net income minus total expenses.
func NetProfit(l *core.Ledger) decimal.Decimal {
	return NetIncome(l.Payments).Sub(TotalExpenses(l.Expenses))
}

// NetPaid returns received minus refunded over one client's payments.
func NetPaid(l *core.Ledger, clientID string) decimal.Decimal {
	return NetIncome(l.PaymentsOf(clientID))
}

// Balance computes a single client's billing position.
func Balance(l *core.Ledger, c core.Client) ClientBalance {
	paid := NetPaid(l, c.ID)
	return ClientBalance{
		ClientID:    c.ID,
		Name:        c.Name,
		TotalBilled: c.TotalBilled,
		NetPaid:     paid,
		Due:         c.TotalBilled.Sub(paid),
	}
}

// Outstanding sums the positive per-client dues. A client in credit
// contributes zero, never a negative offset.
func Outstanding(l *core.Ledger) decimal.Decimal {
	total := decimal.Zero
	for _, c := range l.Clients {
		if due := Balance(l, c).Due; due.IsPositive() {
			total = total.Add(due)
		}
	}
	return total
}

// Summarize computes the dashboard summary over a ledger snapshot. Balances
// are ordered by client name for stable output.
func Summarize(l *core.Ledger) Summary {
	s := Summary{
		NetIncome:     NetIncome(l.Payments),
		TotalExpenses: TotalExpenses(l.Expenses),
		ClientCount:   len(l.Clients),
	}
	s.NetProfit = s.NetIncome.Sub(s.TotalExpenses)

	s.Outstanding = decimal.Zero
	for _, c := range l.SortedClients() {
		if c.IsActive {
			s.ActiveClients++
		}
		b := Balance(l, c)
		s.Balances = append(s.Balances, b)
		if b.Due.IsPositive() {
			s.Outstanding = s.Outstanding.Add(b.Due)
		}
	}
	return s
}
