package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestValidateValidIncome(t *testing.T) {
	in := Intent{
		Type:        TypeIncome,
		Nature:      NatureSalary,
		Amount:      amt(50000),
		Currency:    "INR",
		ToAccountID: 1,
		Category:    "Salary",
	}
	assert.Empty(t, Validate(in))
	assert.NoError(t, ValidateStrict(in))
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name    string
		in      Intent
		wantMsg string
	}{
		{
			name:    "zero amount",
			in:      Intent{Type: TypeIncome, Nature: NatureSalary, Amount: decimal.Zero, ToAccountID: 1},
			wantMsg: "amount must be positive",
		},
		{
			name:    "negative amount",
			in:      Intent{Type: TypeIncome, Nature: NatureSalary, Amount: amt(-10), ToAccountID: 1},
			wantMsg: "amount must be positive",
		},
		{
			name:    "nature type mismatch",
			in:      Intent{Type: TypeExpense, Nature: NatureSalary, Amount: amt(100), FromAccountID: 1, Category: "x"},
			wantMsg: `nature "salary" is not valid for type "expense"`,
		},
		{
			name:    "expense without category",
			in:      Intent{Type: TypeExpense, Nature: NaturePurchase, Amount: amt(500), FromAccountID: 1},
			wantMsg: "expense transactions require a category",
		},
		{
			name:    "income with from account",
			in:      Intent{Type: TypeIncome, Nature: NatureSalary, Amount: amt(100), FromAccountID: 2, ToAccountID: 1},
			wantMsg: "income transactions must not have a from account (money flows inward)",
		},
		{
			name:    "transfer missing to account",
			in:      Intent{Type: TypeTransfer, Nature: NatureInternalTransfer, Amount: amt(100), FromAccountID: 1},
			wantMsg: "transfer transactions require both from and to accounts",
		},
		{
			name: "loan without counterparty",
			in: Intent{
				Type: TypeTransfer, Nature: NatureLoanGiven, Amount: amt(3000),
				FromAccountID: 1, ToAccountID: 10,
				FromAccountType: "savings", ToAccountType: "receivable",
			},
			wantMsg: "loan transactions require a counterparty name",
		},
		{
			name: "internal transfer to liability",
			in: Intent{
				Type: TypeTransfer, Nature: NatureInternalTransfer, Amount: amt(100),
				FromAccountID: 1, ToAccountID: 3,
				FromAccountType: "savings", ToAccountType: "credit_card",
			},
			wantMsg: "internal_transfer requires both accounts to be asset accounts",
		},
		{
			name: "cc bill payment into asset",
			in: Intent{
				Type: TypeTransfer, Nature: NatureCcBillPayment, Amount: amt(100),
				FromAccountID: 1, ToAccountID: 2,
				FromAccountType: "savings", ToAccountType: "current",
			},
			wantMsg: "cc_bill_payment must flow from an asset to a liability account",
		},
		{
			name: "loan given into payable",
			in: Intent{
				Type: TypeTransfer, Nature: NatureLoanGiven, Amount: amt(100),
				FromAccountID: 1, ToAccountID: 20, Counterparty: "Ravi",
				FromAccountType: "savings", ToAccountType: "payable",
			},
			wantMsg: "loan_given must flow from an asset to a receivable account",
		},
		{
			name: "loan received wrong shape",
			in: Intent{
				Type: TypeTransfer, Nature: NatureLoanReceived, Amount: amt(100),
				FromAccountID: 10, ToAccountID: 1, Counterparty: "Ravi",
				FromAccountType: "receivable", ToAccountType: "savings",
			},
			wantMsg: "loan_received must flow from a payable to an asset account",
		},
		{
			name: "loan repaid invalid pairing",
			in: Intent{
				Type: TypeTransfer, Nature: NatureLoanRepaid, Amount: amt(100),
				FromAccountID: 1, ToAccountID: 2, Counterparty: "Ravi",
				FromAccountType: "savings", ToAccountType: "current",
			},
			wantMsg: "loan_repaid must be receivable→asset (they repay me) or asset→payable (I repay them)",
		},
		{
			name: "reimbursement into liability",
			in: Intent{
				Type: TypeTransfer, Nature: NatureReimbursementReceived, Amount: amt(100),
				FromAccountID: 10, ToAccountID: 3,
				FromAccountType: "receivable", ToAccountType: "credit_card",
			},
			wantMsg: "reimbursement_received must flow into an asset account",
		},
		{
			name: "expense routed to receivable",
			in: Intent{
				Type: TypeExpense, Nature: NaturePurchase, Amount: amt(100),
				FromAccountID: 1, ToAccountID: 10, Category: "misc",
				FromAccountType: "savings", ToAccountType: "receivable",
			},
			wantMsg: "cannot route an expense to a receivable account",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Validate(tt.in)
			assert.Contains(t, violations, tt.wantMsg)
		})
	}
}

func TestValidateSkipsClassShapeWhenTypesUnknown(t *testing.T) {
	// No account-type labels: the class-shape rule cannot run, but the
	// structural rules still do.
	in := Intent{
		Type: TypeTransfer, Nature: NatureCcBillPayment, Amount: amt(100),
		FromAccountID: 1, ToAccountID: 3,
	}
	assert.Empty(t, Validate(in))
}

func TestValidateBothLoanRepaidShapesPass(t *testing.T) {
	theyRepay := Intent{
		Type: TypeTransfer, Nature: NatureLoanRepaid, Amount: amt(100),
		FromAccountID: 10, ToAccountID: 1, Counterparty: "Ravi",
		FromAccountType: "receivable", ToAccountType: "savings",
	}
	iRepay := Intent{
		Type: TypeTransfer, Nature: NatureLoanRepaid, Amount: amt(100),
		FromAccountID: 1, ToAccountID: 20, Counterparty: "Ravi",
		FromAccountType: "savings", ToAccountType: "payable",
	}
	assert.Empty(t, Validate(theyRepay))
	assert.Empty(t, Validate(iRepay))
}

func TestValidateStrictReturnsAllViolations(t *testing.T) {
	in := Intent{Type: TypeExpense, Nature: NatureSalary, Amount: decimal.Zero}
	err := ValidateStrict(in)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.GreaterOrEqual(t, len(verr.Violations), 3) // amount, nature, category
	assert.Contains(t, err.Error(), "invalid transaction")
}

func TestValidateCollectsIndependentViolations(t *testing.T) {
	// Rules are independent: one failing rule must not mask another.
	in := Intent{
		Type: TypeTransfer, Nature: NatureLoanGiven, Amount: amt(-5),
		FromAccountID: 1, FromAccountType: "savings",
	}
	violations := Validate(in)
	assert.Contains(t, violations, "amount must be positive")
	assert.Contains(t, violations, "transfer transactions require both from and to accounts")
	assert.Contains(t, violations, "loan transactions require a counterparty name")
}
