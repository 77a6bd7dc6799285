package ledger

import (
	"fmt"
	"time"
)

// Account is one real account in the directory: a bank account, card,
// wallet, or a per-person receivable/payable tracker. The Type label
// decides its AccountingClass.
type Account struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// Class derives the accounting class from the account-type label.
func (a *Account) Class() AccountingClass {
	return ClassForAccountType(a.Type)
}

// Validate checks all account invariants.
func (a *Account) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("account name is required")
	}
	if !ValidAccountType(a.Type) {
		return fmt.Errorf("%w: %q", ErrInvalidAccountType, a.Type)
	}
	if !ValidCurrency(a.Currency) {
		return fmt.Errorf("%w: %s", ErrInvalidCurrency, a.Currency)
	}
	return nil
}
