package http

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/report"
)

func (a *API) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, report.Summarize(a.coord.Snapshot()))
}

func (a *API) handleMonthly(w http.ResponseWriter, r *http.Request) {
	months := 6
	if v := r.URL.Query().Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 60 {
			writeError(w, http.StatusBadRequest, "months must be a number between 1 and 60")
			return
		}
		months = n
	}
	series := report.MonthlySeries(a.coord.Snapshot(), months, core.Today())
	writeJSON(w, http.StatusOK, series)
}

func (a *API) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, report.CategoryBreakdown(a.coord.Snapshot().Expenses))
}

func (a *API) handleNarrative(w http.ResponseWriter, r *http.Request) {
	if a.narrator == nil {
		writeError(w, http.StatusServiceUnavailable, "narrative summary is not configured")
		return
	}
	text, err := a.narrator.Narrate(r.Context(), report.Summarize(a.coord.Snapshot()))
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"narrative": text})
}

// parseFilter reads the report filter from query parameters. Date bounds are
// optional: an open start reaches back indefinitely, an open end stops at
// today.
func parseFilter(r *http.Request) (report.Filter, error) {
	f := report.Filter{
		From:     core.NewDate(1, 1, 1),
		To:       core.Today(),
		ClientID: strings.TrimSpace(r.URL.Query().Get("clientId")),
		Method:   strings.TrimSpace(r.URL.Query().Get("method")),
	}
	if v := r.URL.Query().Get("from"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return report.Filter{}, err
		}
		f.From = d
	}
	if v := r.URL.Query().Get("to"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return report.Filter{}, err
		}
		f.To = d
	}
	return f, nil
}

func (a *API) handleReport(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report.BuildStatement(a.coord.Snapshot(), f))
}

// handleReportCSV streams the statement as CSV: one row per entry plus the
// trailing totals row, monetary values fixed to two decimals.
func (a *API) handleReportCSV(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st := report.BuildStatement(a.coord.Snapshot(), f)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="report.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Date", "Description", "Type", "Method", "Debit", "Credit"})
	for _, row := range st.Rows {
		_ = cw.Write([]string{
			row.Date.String(),
			row.Description,
			string(row.Type),
			row.Method,
			row.Debit.StringFixed(2),
			row.Credit.StringFixed(2),
		})
	}
	_ = cw.Write([]string{"", "Totals", "", "",
		st.Totals.Debit.StringFixed(2),
		st.Totals.Credit.StringFixed(2),
	})
	cw.Flush()
}
