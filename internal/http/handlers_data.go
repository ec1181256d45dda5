package http

import (
	"net/http"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/impexp"
)

func (a *API) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, impexp.FromLedger(a.coord.Snapshot()))
}

func (a *API) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := a.coord.Refresh(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, impexp.FromLedger(a.coord.Snapshot()))
}

func (a *API) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="accounts-backup.json"`)
	if err := impexp.Encode(w, impexp.FromLedger(a.coord.Snapshot())); err != nil {
		respondError(w, err)
	}
}

func (a *API) handleImport(w http.ResponseWriter, r *http.Request) {
	backup, err := impexp.Decode(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.coord.Import(r.Context(), backup.Clients, backup.Payments, backup.Expenses); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, impexp.FromLedger(a.coord.Snapshot()))
}

func (a *API) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := a.coord.Clear(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
