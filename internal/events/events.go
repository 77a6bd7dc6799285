// Package events defines the outbound event surface. The server emits an
// event after every successfully posted transaction so downstream consumers
// (budget alerts, sync jobs) can react without polling the ledger.
package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahajm/finledger/internal/ledger"
)

// Publisher delivers domain events to an external broker.
type Publisher interface {
	Publish(topic string, event any) error
	Close() error
}

// TopicTransactionPosted is the default topic for posted-transaction events.
const TopicTransactionPosted = "finledger.transactions.posted"

// TransactionPosted is emitted once per finalized transaction.
type TransactionPosted struct {
	TransactionID string                   `json:"transaction_id"`
	Type          ledger.TransactionType   `json:"type"`
	Nature        ledger.TransactionNature `json:"nature"`
	Amount        decimal.Decimal          `json:"amount"`
	Currency      string                   `json:"currency"`
	Category      string                   `json:"category,omitempty"`
	Counterparty  string                   `json:"counterparty,omitempty"`
	Date          time.Time                `json:"date"`
	PostedAt      time.Time                `json:"posted_at"`
}

// FromTransaction builds the event payload for a posted transaction.
func FromTransaction(txn *ledger.Transaction) TransactionPosted {
	return TransactionPosted{
		TransactionID: txn.ID,
		Type:          txn.Type,
		Nature:        txn.Nature,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		Category:      txn.Category,
		Counterparty:  txn.Counterparty,
		Date:          txn.Date,
		PostedAt:      txn.CreatedAt,
	}
}

// Nop discards all events. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(string, any) error { return nil }
func (Nop) Close() error              { return nil }
