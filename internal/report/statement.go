package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
)

// All is the filter value that leaves a dimension unrestricted.
const All = "ALL"

const (
	RowPayment RowType = "Payment"
	RowRefund  RowType = "Refund"
	RowExpense RowType = "Expense"
)

type (
	RowType string

	// Filter narrows a statement. Empty ClientID or Method reads as All.
	// Date bounds are inclusive on both ends.
	Filter struct {
		From     core.Date
		To       core.Date
		ClientID string
		Method   string
	}

	// Row is one statement line: a payment, a refund or an expense, with the
	// amount placed in the debit or credit column.
	Row struct {
		Date        core.Date       `json:"date"`
		Description string          `json:"description"`
		Type        RowType         `json:"type"`
		Client      string          `json:"client,omitempty"`
		Method      string          `json:"method,omitempty"`
		Debit       decimal.Decimal `json:"debit"`
		Credit      decimal.Decimal `json:"credit"`
	}

	// Totals is the trailing totals row.
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	}

	// MethodTotal is the signed payment total for one method.
	MethodTotal struct {
		Method string          `json:"method"`
		Net    decimal.Decimal `json:"net"`
	}

	// Statement is a filtered report: ordered rows, the totals row and, when
	// the method dimension is unrestricted, the per-method breakdown.
	Statement struct {
		Rows    []Row         `json:"rows"`
		Totals  Totals        `json:"totals"`
		Methods []MethodTotal `json:"methods,omitempty"`
		Filter  FilterEcho    `json:"filter"`
	}

	// FilterEcho repeats the effective filter in the statement payload so a
	// consumer can label the report without re-deriving defaults.
	FilterEcho struct {
		From     core.Date `json:"from"`
		To       core.Date `json:"to"`
		ClientID string    `json:"clientId"`
		Method   string    `json:"method"`
	}
)

// normalized resolves empty dimensions to All.
func (f Filter) normalized() Filter {
	if strings.TrimSpace(f.ClientID) == "" {
		f.ClientID = All
	}
	if strings.TrimSpace(f.Method) == "" {
		f.Method = All
	}
	return f
}

// AllClients reports whether the client dimension is unrestricted.
func (f Filter) AllClients() bool { return f.ClientID == All }

// AllMethods reports whether the method dimension is unrestricted.
func (f Filter) AllMethods() bool { return f.Method == All }

func (f Filter) matchesPayment(p core.Payment) bool {
	if !p.Date.Within(f.From, f.To) {
		return false
	}
	if !f.AllClients() && p.ClientID != f.ClientID {
		return false
	}
	if !f.AllMethods() && p.ResolvedMethod() != f.Method {
		return false
	}
	return true
}

// BuildStatement assembles the filtered report over a ledger snapshot.
//
// Payments match when their date falls in range and both dimension filters
// accept them. Expenses carry no client or method dimension, so they appear
// only when both filters are All: a narrowed statement cannot honestly
// attribute an expense to one client or method, so it excludes them entirely.
// For the same reason the totals row folds expenses into the debit column
// only on an unfiltered statement.
func BuildStatement(l *core.Ledger, f Filter) Statement {
	f = f.normalized()
	st := Statement{
		Totals: Totals{Debit: decimal.Zero, Credit: decimal.Zero},
		Filter: FilterEcho{From: f.From, To: f.To, ClientID: f.ClientID, Method: f.Method},
	}

	methods := make(map[string]decimal.Decimal)
	for _, p := range l.Payments {
		if !f.matchesPayment(p) {
			continue
		}
		row := Row{
			Date:        p.Date,
			Description: p.Description,
			Client:      l.ClientName(p.ClientID),
			Method:      p.ResolvedMethod(),
		}
		switch p.ResolvedKind() {
		case core.KindRefund:
			row.Type = RowRefund
			row.Debit = p.Amount
			row.Credit = decimal.Zero
			st.Totals.Debit = st.Totals.Debit.Add(p.Amount)
		default:
			row.Type = RowPayment
			row.Debit = decimal.Zero
			row.Credit = p.Amount
			st.Totals.Credit = st.Totals.Credit.Add(p.Amount)
		}
		if f.AllMethods() {
			m := p.ResolvedMethod()
			methods[m] = methods[m].Add(p.ResolvedKind().Signed(p.Amount))
		}
		st.Rows = append(st.Rows, row)
	}

	if f.AllClients() && f.AllMethods() {
		for _, e := range l.Expenses {
			if !e.Date.Within(f.From, f.To) {
				continue
			}
			desc := e.Description
			if desc == "" {
				desc = e.Category
			}
			st.Rows = append(st.Rows, Row{
				Date:        e.Date,
				Description: desc,
				Type:        RowExpense,
				Debit:       e.Amount,
				Credit:      decimal.Zero,
			})
			st.Totals.Debit = st.Totals.Debit.Add(e.Amount)
		}
	}

	sort.SliceStable(st.Rows, func(i, j int) bool {
		return st.Rows[i].Date.Before(st.Rows[j].Date.Time)
	})

	if f.AllMethods() {
		st.Methods = make([]MethodTotal, 0, len(methods))
		for m, net := range methods {
			st.Methods = append(st.Methods, MethodTotal{Method: m, Net: net})
		}
		sort.Slice(st.Methods, func(i, j int) bool {
			return st.Methods[i].Method < st.Methods[j].Method
		})
	}
	return st
}
