package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sahajm/finledger/internal/events"
	"github.com/sahajm/finledger/internal/ledger"
	"github.com/sahajm/finledger/internal/store"
)

type createTransactionRequest struct {
	Type         ledger.TransactionType   `json:"type"`
	Nature       ledger.TransactionNature `json:"nature"`
	Amount       decimal.Decimal          `json:"amount"`
	Currency     string                   `json:"currency"`
	FromAccount  int64                    `json:"from_account_id"`
	ToAccount    int64                    `json:"to_account_id"`
	Category     string                   `json:"category"`
	Counterparty string                   `json:"counterparty"`
	Description  string                   `json:"description"`
	Date         time.Time                `json:"date"`
}

func (r createTransactionRequest) toTransaction() *ledger.Transaction {
	return &ledger.Transaction{
		Type:         r.Type,
		Nature:       r.Nature,
		Amount:       r.Amount,
		Currency:     r.Currency,
		FromAccount:  r.FromAccount,
		ToAccount:    r.ToAccount,
		Category:     r.Category,
		Counterparty: r.Counterparty,
		Description:  r.Description,
		Date:         r.Date,
	}
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	txn := req.toTransaction()
	if err := s.store.PostTransaction(r.Context(), txn); err != nil {
		writeLedgerError(w, err)
		return
	}

	// Posting succeeded; a failed publish must not fail the request.
	if err := s.publisher.Publish(s.topic, events.FromTransaction(txn)); err != nil {
		s.log.Warn("event publish failed", zap.String("transaction_id", txn.ID), zap.Error(err))
	}

	writeJSON(w, http.StatusCreated, txn)
}

// validateTransaction dry-runs the rule set without writing anything.
func (s *Server) validateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	violations, err := s.store.ValidateTransaction(r.Context(), req.toTransaction())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if violations == nil {
		violations = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":      len(violations) == 0,
		"violations": violations,
	})
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	filter := store.TxnFilter{}
	q := r.URL.Query()
	if aid := q.Get("account_id"); aid != "" {
		id, err := strconv.ParseInt(aid, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid account_id")
			return
		}
		filter.AccountID = id
	}
	if t := q.Get("type"); t != "" {
		filter.Type = ledger.TransactionType(t)
	}
	if n := q.Get("nature"); n != "" {
		filter.Nature = ledger.TransactionNature(n)
	}
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil {
			filter.Limit = v
		}
	}

	txns, err := s.store.ListTransactions(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if txns == nil {
		txns = []ledger.Transaction{}
	}
	writeJSON(w, http.StatusOK, txns)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	txn, err := s.store.GetTransaction(r.Context(), id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}
