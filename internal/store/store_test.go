package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahajm/finledger/internal/ledger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCreateAccount(t *testing.T, s *Store, name, accountType string) int64 {
	t.Helper()
	acct := &ledger.Account{Name: name, Type: accountType, Currency: "INR"}
	require.NoError(t, s.CreateAccount(context.Background(), acct))
	return acct.ID
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestCreateAndGetAccount(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id := mustCreateAccount(t, s, "HDFC Savings", "savings")
	acct, err := s.GetAccount(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "HDFC Savings", acct.Name)
	assert.Equal(t, ledger.ClassAsset, acct.Class())

	_, err = s.GetAccount(ctx, 999)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestCreateAccountRejectsBadType(t *testing.T) {
	s := openTestStore(t)
	err := s.CreateAccount(context.Background(), &ledger.Account{Name: "x", Type: "hedge_fund"})
	assert.ErrorIs(t, err, ledger.ErrInvalidAccountType)
}

func TestPostTransactionWritesBalancedPair(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	savings := mustCreateAccount(t, s, "Savings", "savings")

	txn := &ledger.Transaction{
		Type:        ledger.TypeIncome,
		Nature:      ledger.NatureSalary,
		Amount:      dec(50000),
		ToAccount:   savings,
		Category:    "Salary",
		Description: "August salary",
	}
	require.NoError(t, s.PostTransaction(ctx, txn))
	require.NotEmpty(t, txn.ID)
	require.Len(t, txn.Entries, 2)

	got, err := s.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, ledger.RealAccount(savings), got.Entries[0].Account)
	assert.True(t, got.Entries[0].Debit.Equal(dec(50000)))
	assert.Equal(t, ledger.VirtualBucket(ledger.BucketIncome), got.Entries[1].Account)
	assert.True(t, got.Entries[1].Credit.Equal(dec(50000)))

	balance, _, err := s.AccountBalance(ctx, savings)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec(50000)))
}

func TestPostTransactionValidationFailureWritesNothing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	savings := mustCreateAccount(t, s, "Savings", "savings")

	// Expense without a category must be rejected before any write.
	err := s.PostTransaction(ctx, &ledger.Transaction{
		Type:        ledger.TypeExpense,
		Nature:      ledger.NaturePurchase,
		Amount:      dec(500),
		FromAccount: savings,
	})
	require.Error(t, err)

	var verr *ledger.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Violations, "expense transactions require a category")

	txns, err := s.ListTransactions(ctx, TxnFilter{})
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestPostTransactionUnknownAccount(t *testing.T) {
	s := openTestStore(t)
	err := s.PostTransaction(context.Background(), &ledger.Transaction{
		Type: ledger.TypeIncome, Nature: ledger.NatureSalary,
		Amount: dec(100), ToAccount: 42,
	})
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestTransferKeepsNetWorthNeutral(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	savings := mustCreateAccount(t, s, "Savings", "savings")
	current := mustCreateAccount(t, s, "Current", "current")

	require.NoError(t, s.PostTransaction(ctx, &ledger.Transaction{
		Type: ledger.TypeIncome, Nature: ledger.NatureSalary,
		Amount: dec(10000), ToAccount: savings, Category: "Salary",
		Description: "seed",
	}))

	before, err := s.NetWorth(ctx)
	require.NoError(t, err)

	require.NoError(t, s.PostTransaction(ctx, &ledger.Transaction{
		Type: ledger.TypeTransfer, Nature: ledger.NatureInternalTransfer,
		Amount: dec(5000), FromAccount: savings, ToAccount: current,
		Description: "move to current",
	}))

	after, err := s.NetWorth(ctx)
	require.NoError(t, err)
	assert.True(t, before.NetWorth.Equal(after.NetWorth), "transfer changed net worth: %s -> %s", before.NetWorth, after.NetWorth)

	fromBalance, _, err := s.AccountBalance(ctx, savings)
	require.NoError(t, err)
	toBalance, _, err := s.AccountBalance(ctx, current)
	require.NoError(t, err)
	assert.True(t, fromBalance.Equal(dec(5000)))
	assert.True(t, toBalance.Equal(dec(5000)))
}

func TestCcBillPaymentReducesLiability(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	savings := mustCreateAccount(t, s, "Savings", "savings")
	card := mustCreateAccount(t, s, "Visa", "credit_card")

	// Build up a card balance with an expense paid by card.
	require.NoError(t, s.PostTransaction(ctx, &ledger.Transaction{
		Type: ledger.TypeIncome, Nature: ledger.NatureSalary,
		Amount: dec(60000), ToAccount: savings, Category: "Salary",
	}))
	require.NoError(t, s.PostTransaction(ctx, &ledger.Transaction{
		Type: ledger.TypeExpense, Nature: ledger.NaturePurchase,
		Amount: dec(15000), FromAccount: card, Category: "electronics",
	}))

	cardBalance, _, err := s.AccountBalance(ctx, card)
	require.NoError(t, err)
	assert.True(t, cardBalance.Equal(dec(15000)), "liability grows on credit")

	require.NoError(t, s.PostTransaction(ctx, &ledger.Transaction{
		Type: ledger.TypeTransfer, Nature: ledger.NatureCcBillPayment,
		Amount: dec(15000), FromAccount: savings, ToAccount: card,
	}))

	cardBalance, _, err = s.AccountBalance(ctx, card)
	require.NoError(t, err)
	assert.True(t, cardBalance.IsZero(), "card paid off, got %s", cardBalance)
}

func TestLoanRoundTripAndPositions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	savings := mustCreateAccount(t, s, "Savings", "savings")
	raviOwes := mustCreateAccount(t, s, "Ravi owes me", "receivable")

	require.NoError(t, s.PostTransaction(ctx, &ledger.Transaction{
		Type: ledger.TypeIncome, Nature: ledger.NatureSalary,
		Amount: dec(10000), ToAccount: savings, Category: "Salary",
	}))

	require.NoError(t, s.PostTransaction(ctx, &ledger.Transaction{
		Type: ledger.TypeTransfer, Nature: ledger.NatureLoanGiven,
		Amount: dec(3000), FromAccount: savings, ToAccount: raviOwes,
		Counterparty: "Ravi",
	}))

	loans, err := s.OutstandingLoans(ctx)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "Ravi", loans[0].Counterparty)
	assert.True(t, loans[0].OwedToMe.Equal(dec(3000)))

	require.NoError(t, s.PostTransaction(ctx, &ledger.Transaction{
		Type: ledger.TypeTransfer, Nature: ledger.NatureLoanRepaid,
		Amount: dec(3000), FromAccount: raviOwes, ToAccount: savings,
		Counterparty: "Ravi",
	}))

	loans, err = s.OutstandingLoans(ctx)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.True(t, loans[0].OwedToMe.IsZero(), "loan settled, got %s", loans[0].OwedToMe)

	balance, _, err := s.AccountBalance(ctx, savings)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec(10000)), "savings back to pre-loan balance")
}

func TestDeleteAccountWithEntriesRefused(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	savings := mustCreateAccount(t, s, "Savings", "savings")

	require.NoError(t, s.PostTransaction(ctx, &ledger.Transaction{
		Type: ledger.TypeIncome, Nature: ledger.NatureSalary,
		Amount: dec(100), ToAccount: savings, Category: "Salary",
	}))

	err := s.DeleteAccount(ctx, savings)
	assert.ErrorIs(t, err, ledger.ErrAccountHasEntries)

	empty := mustCreateAccount(t, s, "Unused", "wallet")
	assert.NoError(t, s.DeleteAccount(ctx, empty))
}

func TestListTransactionsByAccountAndNature(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	savings := mustCreateAccount(t, s, "Savings", "savings")
	current := mustCreateAccount(t, s, "Current", "current")

	require.NoError(t, s.PostTransaction(ctx, &ledger.Transaction{
		Type: ledger.TypeIncome, Nature: ledger.NatureSalary,
		Amount: dec(1000), ToAccount: savings, Category: "Salary",
	}))
	require.NoError(t, s.PostTransaction(ctx, &ledger.Transaction{
		Type: ledger.TypeTransfer, Nature: ledger.NatureInternalTransfer,
		Amount: dec(200), FromAccount: savings, ToAccount: current,
	}))

	all, err := s.ListTransactions(ctx, TxnFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyCurrent, err := s.ListTransactions(ctx, TxnFilter{AccountID: current})
	require.NoError(t, err)
	require.Len(t, onlyCurrent, 1)
	assert.Equal(t, ledger.NatureInternalTransfer, onlyCurrent[0].Nature)

	salaries, err := s.ListTransactions(ctx, TxnFilter{Nature: ledger.NatureSalary})
	require.NoError(t, err)
	assert.Len(t, salaries, 1)
}

func TestCashFlowAndSummary(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	savings := mustCreateAccount(t, s, "Savings", "savings")

	date := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.PostTransaction(ctx, &ledger.Transaction{
		Type: ledger.TypeIncome, Nature: ledger.NatureSalary,
		Amount: dec(50000), ToAccount: savings, Category: "Salary", Date: date,
	}))
	require.NoError(t, s.PostTransaction(ctx, &ledger.Transaction{
		Type: ledger.TypeExpense, Nature: ledger.NaturePurchase,
		Amount: dec(7000), FromAccount: savings, Category: "groceries", Date: date,
	}))

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

	flow, err := s.CashFlow(ctx, start, end)
	require.NoError(t, err)
	assert.True(t, flow.Inflows.Equal(dec(50000)))
	assert.True(t, flow.Outflows.Equal(dec(7000)))
	assert.True(t, flow.Net.Equal(dec(43000)))
	require.Len(t, flow.ByMonth, 1)
	assert.Equal(t, "2026-08", flow.ByMonth[0].Month)

	summary, err := s.IncomeExpenseSummary(ctx, start, end)
	require.NoError(t, err)
	assert.True(t, summary.TotalIncome.Equal(dec(50000)))
	assert.True(t, summary.TotalExpense.Equal(dec(7000)))
	assert.True(t, summary.Savings.Equal(dec(43000)))
	require.Len(t, summary.ByCategory, 1)
	assert.Equal(t, "groceries", summary.ByCategory[0].Category)
}

func TestNetWorthTimeline(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	savings := mustCreateAccount(t, s, "Savings", "savings")

	require.NoError(t, s.PostTransaction(ctx, &ledger.Transaction{
		Type: ledger.TypeIncome, Nature: ledger.NatureSalary,
		Amount: dec(1000), ToAccount: savings, Category: "Salary",
		Date: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, s.PostTransaction(ctx, &ledger.Transaction{
		Type: ledger.TypeExpense, Nature: ledger.NaturePurchase,
		Amount: dec(400), FromAccount: savings, Category: "misc",
		Date: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}))

	points, err := s.NetWorthTimeline(ctx)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2026-06", points[0].Month)
	assert.True(t, points[0].NetWorth.Equal(dec(1000)))
	assert.Equal(t, "2026-07", points[1].Month)
	assert.True(t, points[1].NetWorth.Equal(dec(600)))
}
