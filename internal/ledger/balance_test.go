package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountBalanceDebitNormal(t *testing.T) {
	entries := []Entry{
		{Account: RealAccount(1), Debit: amt(1000), Credit: decimal.Zero},
		{Account: RealAccount(1), Debit: decimal.Zero, Credit: amt(300)},
		{Account: RealAccount(2), Debit: amt(999), Credit: decimal.Zero}, // other account, ignored
		{Account: VirtualBucket(BucketIncome), Credit: amt(1000), Debit: decimal.Zero},
	}
	assert.True(t, AccountBalance(entries, 1, ClassAsset).Equal(amt(700)))
	assert.True(t, AccountBalance(entries, 1, ClassReceivable).Equal(amt(700)))
}

func TestAccountBalanceCreditNormal(t *testing.T) {
	entries := []Entry{
		{Account: RealAccount(3), Debit: decimal.Zero, Credit: amt(5000)}, // new debt
		{Account: RealAccount(3), Debit: amt(1500), Credit: decimal.Zero}, // paid down
	}
	assert.True(t, AccountBalance(entries, 3, ClassLiability).Equal(amt(3500)))
	assert.True(t, AccountBalance(entries, 3, ClassPayable).Equal(amt(3500)))
}

// Sum is commutative: order of entries must not matter.
func TestAccountBalanceOrderIndependent(t *testing.T) {
	a := []Entry{
		{Account: RealAccount(1), Debit: amt(10), Credit: decimal.Zero},
		{Account: RealAccount(1), Debit: decimal.Zero, Credit: amt(4)},
		{Account: RealAccount(1), Debit: amt(2.5), Credit: decimal.Zero},
	}
	b := []Entry{a[2], a[0], a[1]}
	assert.True(t, AccountBalance(a, 1, ClassAsset).Equal(AccountBalance(b, 1, ClassAsset)))
}

func TestAccountBalanceEmpty(t *testing.T) {
	assert.True(t, AccountBalance(nil, 1, ClassAsset).IsZero())
}
