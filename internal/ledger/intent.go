package ledger

import (
	"github.com/shopspring/decimal"
)

// Intent is the value describing one economic event before it becomes
// ledger entries. It is constructed by a caller (or a classifier
// suggestion confirmed by the caller) and never mutated in place.
//
// Account ids use 0 to mean "not set"; account-type labels use "" to mean
// "unknown"; validation rules that need an endpoint's accounting class
// are skipped when its label is unknown.
type Intent struct {
	Type     TransactionType   `json:"type"`
	Nature   TransactionNature `json:"nature"`
	Amount   decimal.Decimal   `json:"amount"`
	Currency string            `json:"currency"`

	FromAccountID   int64  `json:"from_account_id,omitempty"`
	ToAccountID     int64  `json:"to_account_id,omitempty"`
	FromAccountType string `json:"from_account_type,omitempty"`
	ToAccountType   string `json:"to_account_type,omitempty"`

	Category     string `json:"category,omitempty"`
	Counterparty string `json:"counterparty,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// FromClass resolves the source endpoint's accounting class, defaulting to
// Asset when the label is unknown.
func (in Intent) FromClass() AccountingClass {
	return ClassForAccountType(in.FromAccountType)
}

// ToClass resolves the destination endpoint's accounting class.
func (in Intent) ToClass() AccountingClass {
	return ClassForAccountType(in.ToAccountType)
}
