package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
)

type (
	// MonthPoint is one bucket of the monthly time series.
	MonthPoint struct {
		Key      string          `json:"key"`   // year-month, e.g. "2026-08"
		Label    string          `json:"label"` // short month name
		Income   decimal.Decimal `json:"income"`
		Expenses decimal.Decimal `json:"expenses"`
	}

	// CategoryTotal is one bucket of the expense category breakdown.
	CategoryTotal struct {
		Category string          `json:"category"`
		Amount   decimal.Decimal `json:"amount"`
	}
)

// MonthlySeries buckets payments and expenses into the trailing window of
// calendar months ending at until's month. Months with no activity still
// appear with zero values, ordered oldest to newest. Income is signed:
// refunds subtract within their month.
func MonthlySeries(l *core.Ledger, months int, until core.Date) []MonthPoint {
	if months <= 0 {
		return nil
	}
	series := make([]MonthPoint, 0, months)
	index := make(map[string]int, months)
	for i := months - 1; i >= 0; i-- {
		m := until.AddMonths(-i)
		index[m.MonthKey()] = len(series)
		series = append(series, MonthPoint{
			Key:      m.MonthKey(),
			Label:    m.MonthLabel(),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		})
	}
	for _, p := range l.Payments {
		if i, ok := index[p.Date.MonthKey()]; ok {
			series[i].Income = series[i].Income.Add(p.ResolvedKind().Signed(p.Amount))
		}
	}
	for _, e := range l.Expenses {
		if i, ok := index[e.Date.MonthKey()]; ok {
			series[i].Expenses = series[i].Expenses.Add(e.Amount)
		}
	}
	return series
}

// CategoryBreakdown sums expense amounts per category label. Labels are
// compared exactly as stored: no trimming, no case folding, distinct strings
// are distinct buckets. Results are ordered by amount descending, then by
// label, so chart output is stable.
func CategoryBreakdown(expenses []core.Expense) []CategoryTotal {
	buckets := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		buckets[e.Category] = buckets[e.Category].Add(e.Amount)
	}
	out := make([]CategoryTotal, 0, len(buckets))
	for cat, amount := range buckets {
		out = append(out, CategoryTotal{Category: cat, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}
