package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every nature must belong to exactly one type: no orphans, no duplicates.
func TestNaturePartitionIsTotal(t *testing.T) {
	seen := make(map[TransactionNature]TransactionType)
	for _, typ := range AllTypes {
		for _, n := range NaturesForType(typ) {
			prev, dup := seen[n]
			require.Falsef(t, dup, "nature %q appears under both %q and %q", n, prev, typ)
			seen[n] = typ
		}
	}
	for _, n := range AllNatures {
		_, ok := seen[n]
		assert.Truef(t, ok, "nature %q not assigned to any type", n)
	}
	assert.Len(t, seen, len(AllNatures))
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		nature TransactionNature
		want   TransactionType
	}{
		{NatureSalary, TypeIncome},
		{NatureRefund, TypeIncome},
		{NaturePurchase, TypeExpense},
		{NatureReimbursementPaid, TypeExpense},
		{NatureInternalTransfer, TypeTransfer},
		{NatureCcBillPayment, TypeTransfer},
		{NatureLoanGiven, TypeTransfer},
		{NatureLoanReceived, TypeTransfer},
		{NatureLoanRepaid, TypeTransfer},
		{NatureAdjustment, TypeTransfer},
	}
	for _, tt := range tests {
		got, ok := TypeOf(tt.nature)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "nature %q", tt.nature)
	}

	_, ok := TypeOf(TransactionNature("bogus"))
	assert.False(t, ok)
}

func TestValidNature(t *testing.T) {
	assert.True(t, ValidNature(TypeIncome, NatureSalary))
	assert.True(t, ValidNature(TypeExpense, NaturePurchase))
	assert.True(t, ValidNature(TypeTransfer, NatureInternalTransfer))

	assert.False(t, ValidNature(TypeIncome, NaturePurchase))
	assert.False(t, ValidNature(TypeExpense, NatureSalary))
	assert.False(t, ValidNature(TypeTransfer, NatureSalary))
}

// TypeOf is pure: repeated calls always yield the same answer.
func TestTypeOfIsIdempotent(t *testing.T) {
	for _, n := range AllNatures {
		first, ok1 := TypeOf(n)
		second, ok2 := TypeOf(n)
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, first, second)
	}
}

func TestIsLoan(t *testing.T) {
	assert.True(t, NatureLoanGiven.IsLoan())
	assert.True(t, NatureLoanReceived.IsLoan())
	assert.True(t, NatureLoanRepaid.IsLoan())
	assert.False(t, NatureInternalTransfer.IsLoan())
	assert.False(t, NatureSalary.IsLoan())
}
