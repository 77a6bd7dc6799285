package ledger

import "github.com/shopspring/decimal"

// AccountBalance reduces a set of entries to one real account's balance.
// Debit-normal classes (asset, receivable) count debit − credit; the
// credit-normal classes count credit − debit. Pure and order-independent.
func AccountBalance(entries []Entry, accountID int64, class AccountingClass) decimal.Decimal {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, e := range entries {
		if e.Account.IsVirtual() || e.Account.ID != accountID {
			continue
		}
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}
	if class.DebitNormal() {
		return totalDebit.Sub(totalCredit)
	}
	return totalCredit.Sub(totalDebit)
}
