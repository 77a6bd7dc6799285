package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Entry is one debit-or-credit posting tied to one account (or virtual
// bucket) and one transaction. Exactly one of Debit/Credit is non-zero.
// Entries are created only in balanced pairs and are append-only: an
// amendment is a new transaction, never an edit to an existing posting.
type Entry struct {
	ID            int64           `json:"id,omitempty"`
	TransactionID string          `json:"transaction_id"`
	Account       AccountRef      `json:"account"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	EntryDate     time.Time       `json:"entry_date"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
}

// balanceTolerance bounds the permitted drift between total debit and
// total credit across one transaction's entries.
var balanceTolerance = decimal.NewFromFloat(0.001)

// Generator turns one validated intent into exactly two balanced ledger
// entries. It is stateless; every call is independent.
type Generator struct {
	log *zap.Logger
}

func NewGenerator(log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{log: log}
}

// Entries generates the balanced pair for an intent. The intent is
// assumed to have passed validation; the balance post-condition is still
// asserted before returning, and a failure there is an internal defect
// (ErrLedgerImbalance), not a user error.
func (g *Generator) Entries(txID string, in Intent, date time.Time, desc string) ([]Entry, error) {
	var entries []Entry

	switch in.Type {
	case TypeIncome:
		entries = g.incomeEntries(txID, in, date, desc)
	case TypeExpense:
		entries = g.expenseEntries(txID, in, date, desc)
	case TypeTransfer:
		entries = g.transferEntries(txID, in, date, desc)
	default:
		return nil, fmt.Errorf("unknown transaction type %q", in.Type)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, e := range entries {
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceTolerance) {
		g.log.Error("unbalanced ledger entries generated",
			zap.String("transaction_id", txID),
			zap.String("nature", string(in.Nature)),
			zap.String("total_debit", totalDebit.String()),
			zap.String("total_credit", totalCredit.String()),
		)
		return nil, fmt.Errorf("%w: debit=%s credit=%s", ErrLedgerImbalance, totalDebit, totalCredit)
	}

	return entries, nil
}

// Income: debit the receiving asset account (bank balance goes up),
// credit the virtual income bucket.
func (g *Generator) incomeEntries(txID string, in Intent, date time.Time, desc string) []Entry {
	to := VirtualBucket(BucketIncome)
	if in.ToAccountID != 0 {
		to = RealAccount(in.ToAccountID)
	}
	label := "Income: " + desc
	return []Entry{
		{TransactionID: txID, Account: to, Debit: in.Amount, Credit: decimal.Zero, EntryDate: date, Description: label},
		{TransactionID: txID, Account: VirtualBucket(BucketIncome), Debit: decimal.Zero, Credit: in.Amount, EntryDate: date, Description: label},
	}
}

// Expense: debit the virtual expense bucket, credit the paying account.
func (g *Generator) expenseEntries(txID string, in Intent, date time.Time, desc string) []Entry {
	from := VirtualBucket(BucketExpense)
	if in.FromAccountID != 0 {
		from = RealAccount(in.FromAccountID)
	}
	label := "Expense: " + desc
	return []Entry{
		{TransactionID: txID, Account: VirtualBucket(BucketExpense), Debit: in.Amount, Credit: decimal.Zero, EntryDate: date, Description: label},
		{TransactionID: txID, Account: from, Debit: decimal.Zero, Credit: in.Amount, EntryDate: date, Description: label},
	}
}

// Transfers are the heart of the ledger: the same geometric direction
// (from → to) has different bookkeeping effects depending on why the
// money moved, not just where.
func (g *Generator) transferEntries(txID string, in Intent, date time.Time, desc string) []Entry {
	fromClass, toClass := in.FromClass(), in.ToClass()

	fromRef := VirtualBucket(BucketExpense)
	if in.FromAccountID != 0 {
		fromRef = RealAccount(in.FromAccountID)
	}
	toRef := VirtualBucket(BucketIncome)
	if in.ToAccountID != 0 {
		toRef = RealAccount(in.ToAccountID)
	}

	fromIncreases, toIncreases := g.transferImpacts(in.Nature, fromClass, toClass)

	fromEntry := g.impactEntry(fromClass, fromIncreases, txID, fromRef, in.Amount, date, desc)
	toEntry := g.impactEntry(toClass, toIncreases, txID, toRef, in.Amount, date, desc)

	return []Entry{fromEntry, toEntry}
}

// transferImpacts decides whether each endpoint increases or decreases.
// Paying a liability or repaying a loan DECREASES the destination, while
// receiving a loan INCREASES the source (new debt).
func (g *Generator) transferImpacts(nature TransactionNature, fromClass, toClass AccountingClass) (fromIncreases, toIncreases bool) {
	switch nature {
	case NatureInternalTransfer:
		return false, true // asset leaves source, enters destination
	case NatureCcBillPayment:
		return false, false // asset down; liability paid down
	case NatureLoanGiven:
		return false, true // asset down; receivable up
	case NatureLoanReceived:
		return true, true // payable up (new debt); asset up (cash received)
	case NatureLoanRepaid:
		if fromClass == ClassReceivable {
			return false, true // they repay me: receivable down, asset up
		}
		return false, false // I repay: asset down, payable down
	case NatureReimbursementReceived:
		return false, true
	case NatureAdjustment:
		return false, true // manual correction, default asset-in shape
	}

	// A non-transfer nature reaching this point is a validation gap:
	// flag it rather than silently applying the default.
	g.log.Warn("nature has no transfer impact mapping; falling back to default",
		zap.String("nature", string(nature)),
		zap.String("from_class", string(fromClass)),
		zap.String("to_class", string(toClass)),
	)
	return false, true
}

// impactEntry maps an increase/decrease to debit/credit using the class's
// normal balance: debit-normal classes increase via debit, credit-normal
// via credit, and the mirror for decreases.
func (g *Generator) impactEntry(class AccountingClass, increases bool, txID string, ref AccountRef, amount decimal.Decimal, date time.Time, desc string) Entry {
	debitSide := class.DebitNormal() == increases
	e := Entry{
		TransactionID: txID,
		Account:       ref,
		Debit:         decimal.Zero,
		Credit:        decimal.Zero,
		EntryDate:     date,
		Description:   desc,
	}
	if debitSide {
		e.Debit = amount
	} else {
		e.Credit = amount
	}
	return e
}
