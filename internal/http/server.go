// Package http exposes the bookkeeping core over a JSON API. Handlers stay
// thin: decode, call the coordinator or the report engine, encode. All
// invariants live below this layer.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/assist"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/ledger"
)

// roleHeader carries the single role flag the API trusts as-is. There is no
// authentication behind it.
const roleHeader = "X-Role"

type API struct {
	coord    *ledger.Coordinator
	narrator *assist.Narrator // nil when not configured
}

func NewAPI(coord *ledger.Coordinator, narrator *assist.Narrator) *API {
	return &API{coord: coord, narrator: narrator}
}

// Router builds the full route table.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/ledger", a.handleGetLedger)
		r.Post("/refresh", a.handleRefresh)

		r.Post("/clients", a.handleAddClient)
		r.Put("/clients/{id}", a.handleUpdateClient)
		r.Delete("/clients/{id}", a.handleDeleteClient)

		r.Post("/payments", a.handleAddPayment)
		r.Put("/payments/{id}", a.handleUpdatePayment)
		r.Delete("/payments/{id}", a.handleDeletePayment)

		r.Post("/expenses", a.handleAddExpense)
		r.Put("/expenses/{id}", a.handleUpdateExpense)
		r.Delete("/expenses/{id}", a.handleDeleteExpense)

		r.Get("/summary", a.handleSummary)
		r.Get("/summary/monthly", a.handleMonthly)
		r.Get("/summary/categories", a.handleCategories)
		r.Get("/summary/narrative", a.handleNarrative)

		r.Get("/reports", a.handleReport)
		r.Get("/reports/csv", a.handleReportCSV)

		r.Get("/export", a.handleExport)
		r.Group(func(r chi.Router) {
			r.Use(requireRole("admin"))
			r.Post("/import", a.handleImport)
			r.Post("/clear", a.handleClear)
		})
	})

	return r
}

// NewServer wraps the router in an http.Server with sane timeouts.
func NewServer(addr string, a *API) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        a.Router(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}

// requireRole gates destructive bulk endpoints behind the role flag.
func requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(roleHeader) != role {
				writeError(w, http.StatusForbidden, "requires "+role+" role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
