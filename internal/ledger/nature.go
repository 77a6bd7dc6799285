package ledger

// TransactionType is the top-level movement classification: does money
// enter, leave, or move without changing net worth?
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

var AllTypes = []TransactionType{TypeIncome, TypeExpense, TypeTransfer}

// TransactionNature is the second dimension: WHY the money moved.
// Every nature belongs to exactly one TransactionType.
type TransactionNature string

const (
	// Income natures
	NatureSalary           TransactionNature = "salary"
	NatureBusinessIncome   TransactionNature = "business_income"
	NatureInvestmentIncome TransactionNature = "investment_income"
	NatureGiftReceived     TransactionNature = "gift_received"
	NatureRefund           TransactionNature = "refund"
	NatureOtherIncome      TransactionNature = "other_income"

	// Expense natures
	NaturePurchase          TransactionNature = "purchase"
	NatureSubscription      TransactionNature = "subscription"
	NatureBillPayment       TransactionNature = "bill_payment"
	NatureReimbursementPaid TransactionNature = "reimbursement_paid"
	NatureGiftGiven         TransactionNature = "gift_given"
	NatureOtherExpense      TransactionNature = "other_expense"

	// Transfer natures (no net-worth impact)
	NatureInternalTransfer      TransactionNature = "internal_transfer"
	NatureCcBillPayment         TransactionNature = "cc_bill_payment"
	NatureReimbursementReceived TransactionNature = "reimbursement_received"
	NatureLoanGiven             TransactionNature = "loan_given"
	NatureLoanReceived          TransactionNature = "loan_received"
	NatureLoanRepaid            TransactionNature = "loan_repaid"
	NatureAdjustment            TransactionNature = "adjustment"
)

var AllNatures = []TransactionNature{
	NatureSalary, NatureBusinessIncome, NatureInvestmentIncome,
	NatureGiftReceived, NatureRefund, NatureOtherIncome,
	NaturePurchase, NatureSubscription, NatureBillPayment,
	NatureReimbursementPaid, NatureGiftGiven, NatureOtherExpense,
	NatureInternalTransfer, NatureCcBillPayment, NatureReimbursementReceived,
	NatureLoanGiven, NatureLoanReceived, NatureLoanRepaid, NatureAdjustment,
}

// loanNatures require a counterparty and get special transfer handling.
var loanNatures = map[TransactionNature]bool{
	NatureLoanGiven:    true,
	NatureLoanReceived: true,
	NatureLoanRepaid:   true,
}

// IsLoan reports whether the nature is one of the loan natures.
func (n TransactionNature) IsLoan() bool {
	return loanNatures[n]
}

// TypeOf returns the TransactionType a nature belongs to. The switch is
// deliberately exhaustive over every nature constant so that adding a new
// nature without placing it in the partition shows up immediately.
func TypeOf(nature TransactionNature) (TransactionType, bool) {
	switch nature {
	case NatureSalary, NatureBusinessIncome, NatureInvestmentIncome,
		NatureGiftReceived, NatureRefund, NatureOtherIncome:
		return TypeIncome, true
	case NaturePurchase, NatureSubscription, NatureBillPayment,
		NatureReimbursementPaid, NatureGiftGiven, NatureOtherExpense:
		return TypeExpense, true
	case NatureInternalTransfer, NatureCcBillPayment, NatureReimbursementReceived,
		NatureLoanGiven, NatureLoanReceived, NatureLoanRepaid, NatureAdjustment:
		return TypeTransfer, true
	}
	return "", false
}

// ValidNature checks that a nature is valid for the given type.
// E.g. (expense, salary) is rejected.
func ValidNature(t TransactionType, n TransactionNature) bool {
	owner, ok := TypeOf(n)
	return ok && owner == t
}

// NaturesForType returns every nature belonging to a type, in declaration order.
func NaturesForType(t TransactionType) []TransactionNature {
	var out []TransactionNature
	for _, n := range AllNatures {
		if owner, ok := TypeOf(n); ok && owner == t {
			out = append(out, n)
		}
	}
	return out
}

// ValidType checks that a type string is one of the three known types.
func ValidType(t TransactionType) bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}
