package ledger

import (
	"errors"
	"strings"
)

var (
	ErrInvalidAccountType  = errors.New("invalid account type")
	ErrInvalidCurrency     = errors.New("invalid or unsupported currency code")
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAccountHasEntries   = errors.New("account has ledger entries")

	// ErrLedgerImbalance means generated entries failed the debit == credit
	// post-condition. This is an internal defect, never a user input error,
	// and must abort the write.
	ErrLedgerImbalance = errors.New("ledger entries do not balance")
)

// ValidationError carries every rule violation found in a transaction
// intent. These are user/domain errors: expected, enumerable, and meant
// to be surfaced to the caller rather than retried.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid transaction: " + strings.Join(e.Violations, "; ")
}
