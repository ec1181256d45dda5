package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
)

func (a *API) handleAddClient(w http.ResponseWriter, r *http.Request) {
	var c core.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid client payload: "+err.Error())
		return
	}
	if c.ID == "" {
		c.ID = core.NewID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if err := a.coord.AddClient(r.Context(), c); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (a *API) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	var c core.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid client payload: "+err.Error())
		return
	}
	c.ID = chi.URLParam(r, "id")
	if err := a.coord.UpdateClient(r.Context(), c); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *API) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := a.coord.DeleteClient(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleAddPayment(w http.ResponseWriter, r *http.Request) {
	var p core.Payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment payload: "+err.Error())
		return
	}
	if p.ID == "" {
		p.ID = core.NewID()
	}
	if err := a.coord.AddPayment(r.Context(), p); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (a *API) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	var p core.Payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment payload: "+err.Error())
		return
	}
	p.ID = chi.URLParam(r, "id")
	if err := a.coord.UpdatePayment(r.Context(), p); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := a.coord.DeletePayment(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var e core.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense payload: "+err.Error())
		return
	}
	if e.ID == "" {
		e.ID = core.NewID()
	}
	if err := a.coord.AddExpense(r.Context(), e); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (a *API) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var e core.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense payload: "+err.Error())
		return
	}
	e.ID = chi.URLParam(r, "id")
	if err := a.coord.UpdateExpense(r.Context(), e); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (a *API) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := a.coord.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
