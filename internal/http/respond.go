package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/core"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/impexp"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/store"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// respondError maps the error taxonomy to HTTP statuses: validation 400,
// backend rejection 422, connectivity 503.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case isValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case store.IsRejected(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case store.IsConnectivity(err):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func isValidation(err error) bool {
	for _, sentinel := range []error{
		core.ErrMissingID, core.ErrMissingDate, core.ErrEmptyName,
		core.ErrEmptyCategory, core.ErrEmptyClientID, core.ErrNegativeAmount,
		core.ErrUnknownKind, core.ErrDuplicateEntity, core.ErrUnknownEntity,
		impexp.ErrInvalidBackup,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
