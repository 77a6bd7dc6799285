package ledger

import "fmt"

// A rule inspects one aspect of an intent and returns a human-readable
// violation, or "" when the intent passes. Rules are independent; their
// order only decides message ordering.
type rule func(in Intent) string

var allRules = []rule{
	checkAmount,
	checkNatureTypeMatch,
	checkExpenseHasCategory,
	checkIncomeNoFromAccount,
	checkTransferHasBothAccounts,
	checkLoanHasCounterparty,
	checkTransferClassShape,
	checkNoExpenseToReceivable,
}

// Validate runs every rule and returns the violations found. An empty
// slice means the intent is valid. This is the soft variant used for
// pre-submission checks.
func Validate(in Intent) []string {
	var violations []string
	for _, r := range allRules {
		if msg := r(in); msg != "" {
			violations = append(violations, msg)
		}
	}
	return violations
}

// ValidateStrict runs the same rules and returns a *ValidationError when
// any rule fails. This variant gates persistence.
func ValidateStrict(in Intent) error {
	if violations := Validate(in); len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func checkAmount(in Intent) string {
	if !in.Amount.IsPositive() {
		return "amount must be positive"
	}
	return ""
}

func checkNatureTypeMatch(in Intent) string {
	if !ValidNature(in.Type, in.Nature) {
		return fmt.Sprintf("nature %q is not valid for type %q", in.Nature, in.Type)
	}
	return ""
}

func checkExpenseHasCategory(in Intent) string {
	if in.Type == TypeExpense && in.Category == "" {
		return "expense transactions require a category"
	}
	return ""
}

// Income flows INTO an account; a source account makes no sense.
func checkIncomeNoFromAccount(in Intent) string {
	if in.Type == TypeIncome && in.FromAccountID != 0 {
		return "income transactions must not have a from account (money flows inward)"
	}
	return ""
}

func checkTransferHasBothAccounts(in Intent) string {
	if in.Type == TypeTransfer && (in.FromAccountID == 0 || in.ToAccountID == 0) {
		return "transfer transactions require both from and to accounts"
	}
	return ""
}

func checkLoanHasCounterparty(in Intent) string {
	if in.Nature.IsLoan() && in.Counterparty == "" {
		return "loan transactions require a counterparty name"
	}
	return ""
}

// checkTransferClassShape validates that the endpoint accounting classes
// match the shape the nature requires. Skipped unless both endpoint
// account types are known.
func checkTransferClassShape(in Intent) string {
	if in.Type != TypeTransfer {
		return ""
	}
	if in.FromAccountType == "" || in.ToAccountType == "" {
		return ""
	}

	from, to := in.FromClass(), in.ToClass()

	switch in.Nature {
	case NatureInternalTransfer:
		if from != ClassAsset || to != ClassAsset {
			return "internal_transfer requires both accounts to be asset accounts"
		}
	case NatureCcBillPayment:
		if from != ClassAsset || to != ClassLiability {
			return "cc_bill_payment must flow from an asset to a liability account"
		}
	case NatureLoanGiven:
		if from != ClassAsset || to != ClassReceivable {
			return "loan_given must flow from an asset to a receivable account"
		}
	case NatureLoanReceived:
		if from != ClassPayable || to != ClassAsset {
			return "loan_received must flow from a payable to an asset account"
		}
	case NatureLoanRepaid:
		ok := (from == ClassReceivable && to == ClassAsset) || // counterparty repays me
			(from == ClassAsset && to == ClassPayable) // I repay counterparty
		if !ok {
			return "loan_repaid must be receivable→asset (they repay me) or asset→payable (I repay them)"
		}
	case NatureReimbursementReceived:
		if to != ClassAsset {
			return "reimbursement_received must flow into an asset account"
		}
	}
	return ""
}

// checkNoExpenseToReceivable blocks the nonsensical flow of spending money
// "into" an account that tracks what others owe me. Checked independently
// of the transfer-only class-shape rule.
func checkNoExpenseToReceivable(in Intent) string {
	if in.Type == TypeExpense && in.ToAccountType != "" &&
		ClassForAccountType(in.ToAccountType) == ClassReceivable {
		return "cannot route an expense to a receivable account"
	}
	return ""
}
