package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sahajm/finledger/internal/ledger"
)

type errorResponse struct {
	Error      string   `json:"error"`
	Violations []string `json:"violations,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeLedgerError renders store/ledger errors, expanding validation
// failures into their individual violations.
func writeLedgerError(w http.ResponseWriter, err error) {
	var verr *ledger.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:      verr.Error(),
			Violations: verr.Violations,
		})
		return
	}
	writeError(w, mapError(err), err.Error())
}

func mapError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound), errors.Is(err, ledger.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrAccountHasEntries):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInvalidAccountType),
		errors.Is(err, ledger.ErrInvalidCurrency):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrLedgerImbalance):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
