package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persisted record of one economic event together with
// its two generated ledger entries.
type Transaction struct {
	ID           string            `json:"id"`
	Type         TransactionType   `json:"type"`
	Nature       TransactionNature `json:"nature"`
	Amount       decimal.Decimal   `json:"amount"`
	Currency     string            `json:"currency"`
	FromAccount  int64             `json:"from_account_id,omitempty"`
	ToAccount    int64             `json:"to_account_id,omitempty"`
	Category     string            `json:"category,omitempty"`
	Counterparty string            `json:"counterparty,omitempty"`
	Description  string            `json:"description"`
	Date         time.Time         `json:"date"`
	Entries      []Entry           `json:"entries"`
	CreatedAt    time.Time         `json:"created_at,omitempty"`
}

// NetWorthLine is one account's contribution to the net-worth report.
type NetWorthLine struct {
	AccountID   int64           `json:"account_id"`
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	Class       AccountingClass `json:"class"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    string          `json:"currency"`
}

// NetWorthReport groups account balances by class. NetWorth is
// assets + receivables − liabilities − payables.
type NetWorthReport struct {
	Assets           []NetWorthLine  `json:"assets"`
	Liabilities      []NetWorthLine  `json:"liabilities"`
	Receivables      []NetWorthLine  `json:"receivables"`
	Payables         []NetWorthLine  `json:"payables"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalReceivables decimal.Decimal `json:"total_receivables"`
	TotalPayables    decimal.Decimal `json:"total_payables"`
	NetWorth         decimal.Decimal `json:"net_worth"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// CashFlowMonth is one month's inflows and outflows.
type CashFlowMonth struct {
	Month    string          `json:"month"` // "2026-08"
	Inflows  decimal.Decimal `json:"inflows"`
	Outflows decimal.Decimal `json:"outflows"`
	Net      decimal.Decimal `json:"net"`
}

// CashFlowReport covers ALL money movements, transfers included.
type CashFlowReport struct {
	Start       time.Time                  `json:"start"`
	End         time.Time                  `json:"end"`
	Inflows     decimal.Decimal            `json:"inflows"`
	Outflows    decimal.Decimal            `json:"outflows"`
	Net         decimal.Decimal            `json:"net_cash_flow"`
	ByMonth     []CashFlowMonth            `json:"by_month"`
	ByType      map[string]decimal.Decimal `json:"by_type"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

// CategoryTotal is one category's total within an income/expense summary.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// IncomeExpenseSummary excludes transfers and loans entirely; they never
// enter income/expense aggregates.
type IncomeExpenseSummary struct {
	Start        time.Time       `json:"start"`
	End          time.Time       `json:"end"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Savings      decimal.Decimal `json:"savings"`
	ByCategory   []CategoryTotal `json:"by_category"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

// LoanPosition is the outstanding balance with one counterparty.
// Positive OwedToMe means they still owe me; positive OwedByMe means I
// still owe them.
type LoanPosition struct {
	Counterparty string          `json:"counterparty"`
	OwedToMe     decimal.Decimal `json:"owed_to_me"`
	OwedByMe     decimal.Decimal `json:"owed_by_me"`
}

// NetWorthPoint is one month's closing net worth.
type NetWorthPoint struct {
	Month    string          `json:"month"`
	NetWorth decimal.Decimal `json:"net_worth"`
}
