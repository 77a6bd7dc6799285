package suggest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sahajm/finledger/internal/ledger"
)

func TestClassifyByDescription(t *testing.T) {
	c := New()
	tests := []struct {
		description string
		wantType    ledger.TransactionType
		wantNature  ledger.TransactionNature
	}{
		{"Loan given to Ravi", ledger.TypeTransfer, ledger.NatureLoanGiven},
		{"loan from dad", ledger.TypeTransfer, ledger.NatureLoanReceived},
		{"loan repaid in full", ledger.TypeTransfer, ledger.NatureLoanRepaid},
		{"self transfer to current", ledger.TypeTransfer, ledger.NatureInternalTransfer},
		{"CC bill payment HDFC", ledger.TypeTransfer, ledger.NatureCcBillPayment},
		{"Reimbursement from office", ledger.TypeTransfer, ledger.NatureReimbursementReceived},
		{"AUGUST SALARY CREDIT", ledger.TypeIncome, ledger.NatureSalary},
		{"Netflix monthly", ledger.TypeExpense, ledger.NatureSubscription},
		{"auto debit electricity", ledger.TypeExpense, ledger.NatureBillPayment},
	}
	for _, tt := range tests {
		got := c.Classify(tt.description, decimal.Zero, "", "")
		assert.Equal(t, tt.wantType, got.Type, "description %q", tt.description)
		assert.Equal(t, tt.wantNature, got.Nature, "description %q", tt.description)
		assert.Greater(t, got.Confidence, 0.5)
	}
}

func TestClassifyByAccountTypes(t *testing.T) {
	c := New()

	got := c.Classify("payment", decimal.Zero, "savings", "credit_card")
	assert.Equal(t, ledger.NatureCcBillPayment, got.Nature)

	got = c.Classify("sent money", decimal.Zero, "savings", "receivable")
	assert.Equal(t, ledger.NatureLoanGiven, got.Nature)

	got = c.Classify("moved funds", decimal.Zero, "savings", "current")
	assert.Equal(t, ledger.NatureInternalTransfer, got.Nature)
}

func TestClassifySignFallback(t *testing.T) {
	c := New()

	in := c.Classify("mystery credit", decimal.NewFromInt(100), "", "")
	assert.Equal(t, ledger.NatureOtherIncome, in.Nature)
	assert.LessOrEqual(t, in.Confidence, 0.5)

	out := c.Classify("mystery debit", decimal.NewFromInt(-100), "", "")
	assert.Equal(t, ledger.NatureOtherExpense, out.Nature)
}

// Suggestions must always survive validation once required fields are
// filled in: the classifier never invents a (type, nature) pair the
// registry rejects.
func TestSuggestionsAreRegistryConsistent(t *testing.T) {
	c := New()
	descs := []string{
		"Loan given to Ravi", "salary credit", "netflix", "self transfer",
		"cc bill pay", "reimbursement", "random text",
	}
	for _, d := range descs {
		s := c.Classify(d, decimal.NewFromInt(1), "", "")
		assert.Truef(t, ledger.ValidNature(s.Type, s.Nature), "suggestion (%s, %s) for %q", s.Type, s.Nature, d)
	}
}
