package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sahajm/finledger/internal/ledger"
	"github.com/sahajm/finledger/internal/store"
)

type createAccountRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	acct := &ledger.Account{
		Name:     req.Name,
		Type:     req.Type,
		Currency: req.Currency,
	}
	if err := s.store.CreateAccount(r.Context(), acct); err != nil {
		writeLedgerError(w, err)
		return
	}

	// Fetch back to get created_at
	created, err := s.store.GetAccount(r.Context(), acct.ID)
	if err != nil {
		writeJSON(w, http.StatusCreated, acct)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	filter := store.AccountFilter{}
	if t := r.URL.Query().Get("type"); t != "" {
		filter.Type = t
	}
	if c := r.URL.Query().Get("class"); c != "" {
		filter.Class = ledger.AccountingClass(c)
	}

	accounts, err := s.store.ListAccounts(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if accounts == nil {
		accounts = []ledger.Account{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

func accountID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	acct, err := s.store.GetAccount(r.Context(), id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (s *Server) getAccountBalance(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	balance, acct, err := s.store.AccountBalance(r.Context(), id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"account_id": id,
		"name":       acct.Name,
		"class":      acct.Class(),
		"balance":    balance,
		"currency":   acct.Currency,
	})
}

func (s *Server) renameAccount(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := s.store.RenameAccount(r.Context(), id, req.Name); err != nil {
		writeLedgerError(w, err)
		return
	}
	acct, err := s.store.GetAccount(r.Context(), id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	if err := s.store.DeleteAccount(r.Context(), id); err != nil {
		writeLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listAccountEntries(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	entries, err := s.store.ListEntriesByAccount(r.Context(), id, store.EntryFilter{Limit: 100})
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if entries == nil {
		entries = []ledger.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
