// Package suggest offers best-effort (type, nature) suggestions from a
// free-text transaction description. Suggestions are never authoritative:
// callers must run them through ledger validation before persisting.
package suggest

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/sahajm/finledger/internal/ledger"
)

// Suggestion is one classification guess with a confidence in [0, 1].
type Suggestion struct {
	Type       ledger.TransactionType   `json:"type"`
	Nature     ledger.TransactionNature `json:"nature"`
	Confidence float64                  `json:"confidence"`
	Reasoning  string                   `json:"reasoning"`
}

type pattern struct {
	re         *regexp.Regexp
	typ        ledger.TransactionType
	nature     ledger.TransactionNature
	confidence float64
}

// Keyword rules, first match wins. Intent ("will this money come back?")
// outranks counterparty, which outranks account types.
var patterns = []pattern{
	// Loans
	{regexp.MustCompile(`(?i)\bloan\s*(?:to|given|lent)\b`), ledger.TypeTransfer, ledger.NatureLoanGiven, 0.85},
	{regexp.MustCompile(`(?i)\bloan\s*(?:from|received|borrowed)\b`), ledger.TypeTransfer, ledger.NatureLoanReceived, 0.85},
	{regexp.MustCompile(`(?i)\bloan\s*(?:repay|repaid|return)\b`), ledger.TypeTransfer, ledger.NatureLoanRepaid, 0.85},

	// Internal transfers
	{regexp.MustCompile(`(?i)\b(?:own\s*account|self)\s*transfer\b`), ledger.TypeTransfer, ledger.NatureInternalTransfer, 0.95},
	{regexp.MustCompile(`(?i)\btransfer\s*(?:from|to)\s*own\b`), ledger.TypeTransfer, ledger.NatureInternalTransfer, 0.90},

	// Credit-card bill
	{regexp.MustCompile(`(?i)\b(?:card|cc)\s*bill\s*pay`), ledger.TypeTransfer, ledger.NatureCcBillPayment, 0.90},

	// Reimbursement
	{regexp.MustCompile(`(?i)\breimburs`), ledger.TypeTransfer, ledger.NatureReimbursementReceived, 0.75},

	// Salary
	{regexp.MustCompile(`(?i)\b(?:salary|payroll|wages)\b`), ledger.TypeIncome, ledger.NatureSalary, 0.90},

	// Business income
	{regexp.MustCompile(`(?i)\b(?:invoice|freelance|consulting)\s*(?:pay|receipt|income)\b`), ledger.TypeIncome, ledger.NatureBusinessIncome, 0.80},

	// Subscriptions
	{regexp.MustCompile(`(?i)\b(?:netflix|spotify|amazon\s*prime|youtube\s*premium|subscription)\b`), ledger.TypeExpense, ledger.NatureSubscription, 0.85},

	// Standing order / auto-debit: likely a bill
	{regexp.MustCompile(`(?i)\b(?:standing\s*order|auto\s*debit|direct\s*debit)\b`), ledger.TypeExpense, ledger.NatureBillPayment, 0.70},
}

// Classifier guesses type and nature from a description plus optional
// context. Stateless; safe for concurrent use.
type Classifier struct{}

func New() *Classifier {
	return &Classifier{}
}

// Classify returns the best guess for a description. amount > 0 hints at
// money coming in, amount < 0 at money going out.
func (c *Classifier) Classify(description string, amount decimal.Decimal, fromAccountType, toAccountType string) Suggestion {
	for _, p := range patterns {
		if p.re.MatchString(description) {
			return Suggestion{
				Type:       p.typ,
				Nature:     p.nature,
				Confidence: p.confidence,
				Reasoning:  "matched pattern: " + p.re.String(),
			}
		}
	}

	if s, ok := c.classifyByAccounts(fromAccountType, toAccountType); ok {
		return s
	}

	if amount.IsPositive() {
		return Suggestion{
			Type:       ledger.TypeIncome,
			Nature:     ledger.NatureOtherIncome,
			Confidence: 0.30,
			Reasoning:  "fallback: positive amount suggests income",
		}
	}
	return Suggestion{
		Type:       ledger.TypeExpense,
		Nature:     ledger.NatureOtherExpense,
		Confidence: 0.30,
		Reasoning:  "fallback: negative or zero amount suggests expense",
	}
}

// classifyByAccounts infers a transfer nature from the endpoint classes
// when both account types are known.
func (c *Classifier) classifyByAccounts(fromType, toType string) (Suggestion, bool) {
	if fromType == "" || toType == "" {
		return Suggestion{}, false
	}
	from := ledger.ClassForAccountType(fromType)
	to := ledger.ClassForAccountType(toType)

	switch {
	case from == ledger.ClassAsset && to == ledger.ClassLiability:
		return Suggestion{
			Type: ledger.TypeTransfer, Nature: ledger.NatureCcBillPayment,
			Confidence: 0.65, Reasoning: "asset to liability suggests paying down a card",
		}, true
	case from == ledger.ClassAsset && to == ledger.ClassReceivable:
		return Suggestion{
			Type: ledger.TypeTransfer, Nature: ledger.NatureLoanGiven,
			Confidence: 0.65, Reasoning: "asset to receivable suggests lending",
		}, true
	case from == ledger.ClassPayable && to == ledger.ClassAsset:
		return Suggestion{
			Type: ledger.TypeTransfer, Nature: ledger.NatureLoanReceived,
			Confidence: 0.65, Reasoning: "payable to asset suggests borrowing",
		}, true
	case from == ledger.ClassReceivable && to == ledger.ClassAsset:
		return Suggestion{
			Type: ledger.TypeTransfer, Nature: ledger.NatureLoanRepaid,
			Confidence: 0.60, Reasoning: "receivable to asset suggests a repayment",
		}, true
	case from == ledger.ClassAsset && to == ledger.ClassAsset:
		return Suggestion{
			Type: ledger.TypeTransfer, Nature: ledger.NatureInternalTransfer,
			Confidence: 0.55, Reasoning: "asset to asset suggests an internal transfer",
		}, true
	}
	return Suggestion{}, false
}
