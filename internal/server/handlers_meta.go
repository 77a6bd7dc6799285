package server

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sahajm/finledger/internal/ledger"
)

type suggestRequest struct {
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	FromAccountType string          `json:"from_account_type"`
	ToAccountType   string          `json:"to_account_type"`
}

func (s *Server) suggestNature(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	sug := s.classifier.Classify(req.Description, req.Amount, req.FromAccountType, req.ToAccountType)
	writeJSON(w, http.StatusOK, sug)
}

func (s *Server) listAccountTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ledger.AccountTypes)
}

func (s *Server) listNatures(w http.ResponseWriter, r *http.Request) {
	out := make(map[ledger.TransactionType][]ledger.TransactionNature, len(ledger.AllTypes))
	for _, t := range ledger.AllTypes {
		out[t] = ledger.NaturesForType(t)
	}
	writeJSON(w, http.StatusOK, out)
}

// formHints returns UI hints for a type/nature pair, e.g. whether the form
// should require a counterparty.
func (s *Server) formHints(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t := ledger.TransactionType(q.Get("type"))
	n := ledger.TransactionNature(q.Get("nature"))
	if !ledger.ValidNature(t, n) {
		writeError(w, http.StatusBadRequest, "unknown type/nature combination")
		return
	}
	writeJSON(w, http.StatusOK, ledger.HintsFor(t, n))
}

func (s *Server) listCurrencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ledger.CurrencyCodes())
}
