package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHintsFor(t *testing.T) {
	salary := HintsFor(TypeIncome, NatureSalary)
	assert.True(t, salary.ShowCategory)
	assert.False(t, salary.RequireCounterparty)
	assert.False(t, salary.RequireBothAccounts)
	assert.True(t, salary.AffectsNetWorth)

	loan := HintsFor(TypeTransfer, NatureLoanGiven)
	assert.False(t, loan.ShowCategory)
	assert.True(t, loan.RequireCounterparty)
	assert.True(t, loan.RequireBothAccounts)
	assert.False(t, loan.AffectsNetWorth, "loans never affect net worth")

	reimb := HintsFor(TypeExpense, NatureReimbursementPaid)
	assert.True(t, reimb.RequireCounterparty)
	assert.True(t, reimb.AffectsNetWorth)
}
