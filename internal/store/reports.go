package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahajm/finledger/internal/ledger"
)

// AccountBalance computes one account's class-aware running balance from
// its committed entries.
func (s *Store) AccountBalance(ctx context.Context, accountID int64) (decimal.Decimal, *ledger.Account, error) {
	acct, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, nil, err
	}

	var debit, credit float64
	err = s.reader.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(e.debit), 0), COALESCE(SUM(e.credit), 0)
		FROM entries e
		JOIN transactions t ON t.id = e.transaction_id
		WHERE e.account_id = ? AND t.finalized = 1`, accountID,
	).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("account balance: %w", err)
	}

	d := decimal.NewFromFloat(debit)
	c := decimal.NewFromFloat(credit)
	if acct.Class().DebitNormal() {
		return d.Sub(c), acct, nil
	}
	return c.Sub(d), acct, nil
}

// NetWorth reports every account's balance grouped by accounting class.
// Transfers and loans redistribute value between the groups without
// changing the bottom line.
func (s *Store) NetWorth(ctx context.Context) (*ledger.NetWorthReport, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT a.id, a.name, a.type, a.currency,
			COALESCE(SUM(e.debit), 0), COALESCE(SUM(e.credit), 0)
		FROM accounts a
		LEFT JOIN entries e ON e.account_id = a.id
		GROUP BY a.id
		ORDER BY a.id`)
	if err != nil {
		return nil, fmt.Errorf("net worth query: %w", err)
	}
	defer rows.Close()

	report := &ledger.NetWorthReport{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalReceivables: decimal.Zero,
		TotalPayables:    decimal.Zero,
		GeneratedAt:      time.Now().UTC(),
	}

	for rows.Next() {
		var line ledger.NetWorthLine
		var debit, credit float64
		if err := rows.Scan(&line.AccountID, &line.AccountName, &line.AccountType, &line.Currency, &debit, &credit); err != nil {
			return nil, fmt.Errorf("scan net worth line: %w", err)
		}

		line.Class = ledger.ClassForAccountType(line.AccountType)
		d := decimal.NewFromFloat(debit)
		c := decimal.NewFromFloat(credit)
		if line.Class.DebitNormal() {
			line.Balance = d.Sub(c)
		} else {
			line.Balance = c.Sub(d)
		}
		if line.Balance.IsZero() {
			continue
		}

		switch line.Class {
		case ledger.ClassAsset:
			report.Assets = append(report.Assets, line)
			report.TotalAssets = report.TotalAssets.Add(line.Balance)
		case ledger.ClassLiability:
			report.Liabilities = append(report.Liabilities, line)
			report.TotalLiabilities = report.TotalLiabilities.Add(line.Balance)
		case ledger.ClassReceivable:
			report.Receivables = append(report.Receivables, line)
			report.TotalReceivables = report.TotalReceivables.Add(line.Balance)
		case ledger.ClassPayable:
			report.Payables = append(report.Payables, line)
			report.TotalPayables = report.TotalPayables.Add(line.Balance)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	report.NetWorth = report.TotalAssets.
		Add(report.TotalReceivables).
		Sub(report.TotalLiabilities).
		Sub(report.TotalPayables)

	return report, nil
}

// CashFlow covers every committed movement in the period, transfers
// included; only income and expense count toward the in/outflow totals.
func (s *Store) CashFlow(ctx context.Context, start, end time.Time) (*ledger.CashFlowReport, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT type, amount, txn_date FROM transactions
		WHERE finalized = 1 AND txn_date >= ? AND txn_date <= ?
		ORDER BY txn_date`,
		start.Format(time.RFC3339Nano), end.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("cash flow query: %w", err)
	}
	defer rows.Close()

	report := &ledger.CashFlowReport{
		Start:       start,
		End:         end,
		Inflows:     decimal.Zero,
		Outflows:    decimal.Zero,
		ByType:      map[string]decimal.Decimal{},
		GeneratedAt: time.Now().UTC(),
	}
	monthly := map[string]*ledger.CashFlowMonth{}

	for rows.Next() {
		var typ string
		var amount float64
		var dateStr string
		if err := rows.Scan(&typ, &amount, &dateStr); err != nil {
			return nil, fmt.Errorf("scan cash flow row: %w", err)
		}
		amt := decimal.NewFromFloat(amount)
		date, _ := time.Parse(time.RFC3339Nano, dateStr)
		month := date.Format("2006-01")

		if _, ok := report.ByType[typ]; !ok {
			report.ByType[typ] = decimal.Zero
		}
		report.ByType[typ] = report.ByType[typ].Add(amt)

		m, ok := monthly[month]
		if !ok {
			m = &ledger.CashFlowMonth{Month: month, Inflows: decimal.Zero, Outflows: decimal.Zero}
			monthly[month] = m
		}

		switch ledger.TransactionType(typ) {
		case ledger.TypeIncome:
			report.Inflows = report.Inflows.Add(amt)
			m.Inflows = m.Inflows.Add(amt)
		case ledger.TypeExpense:
			report.Outflows = report.Outflows.Add(amt)
			m.Outflows = m.Outflows.Add(amt)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)
	for _, key := range months {
		m := monthly[key]
		m.Net = m.Inflows.Sub(m.Outflows)
		report.ByMonth = append(report.ByMonth, *m)
	}
	report.Net = report.Inflows.Sub(report.Outflows)

	return report, nil
}

// IncomeExpenseSummary aggregates income and expenses by category.
// Transfers and loans never enter these totals.
func (s *Store) IncomeExpenseSummary(ctx context.Context, start, end time.Time) (*ledger.IncomeExpenseSummary, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT type, category, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE finalized = 1 AND type IN ('income','expense') AND txn_date >= ? AND txn_date <= ?
		GROUP BY type, category`,
		start.Format(time.RFC3339Nano), end.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("income/expense query: %w", err)
	}
	defer rows.Close()

	summary := &ledger.IncomeExpenseSummary{
		Start:        start,
		End:          end,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		GeneratedAt:  time.Now().UTC(),
	}

	for rows.Next() {
		var typ, category string
		var total float64
		if err := rows.Scan(&typ, &category, &total); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		amt := decimal.NewFromFloat(total)

		switch ledger.TransactionType(typ) {
		case ledger.TypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(amt)
		case ledger.TypeExpense:
			summary.TotalExpense = summary.TotalExpense.Add(amt)
			summary.ByCategory = append(summary.ByCategory, ledger.CategoryTotal{
				Category: category,
				Total:    amt,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].Total.GreaterThan(summary.ByCategory[j].Total)
	})
	summary.Savings = summary.TotalIncome.Sub(summary.TotalExpense)

	return summary, nil
}

// OutstandingLoans nets loan natures per counterparty: what they still
// owe me and what I still owe them.
func (s *Store) OutstandingLoans(ctx context.Context) ([]ledger.LoanPosition, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT t.nature, t.counterparty, t.amount, COALESCE(af.type, '')
		FROM transactions t
		LEFT JOIN accounts af ON af.id = t.from_account_id
		WHERE t.finalized = 1 AND t.nature IN ('loan_given','loan_received','loan_repaid')
		ORDER BY t.txn_date`)
	if err != nil {
		return nil, fmt.Errorf("loans query: %w", err)
	}
	defer rows.Close()

	positions := map[string]*ledger.LoanPosition{}

	for rows.Next() {
		var nature, counterparty, fromType string
		var amount float64
		if err := rows.Scan(&nature, &counterparty, &amount, &fromType); err != nil {
			return nil, fmt.Errorf("scan loan row: %w", err)
		}
		amt := decimal.NewFromFloat(amount)

		pos, ok := positions[counterparty]
		if !ok {
			pos = &ledger.LoanPosition{
				Counterparty: counterparty,
				OwedToMe:     decimal.Zero,
				OwedByMe:     decimal.Zero,
			}
			positions[counterparty] = pos
		}

		switch ledger.TransactionNature(nature) {
		case ledger.NatureLoanGiven:
			pos.OwedToMe = pos.OwedToMe.Add(amt)
		case ledger.NatureLoanReceived:
			pos.OwedByMe = pos.OwedByMe.Add(amt)
		case ledger.NatureLoanRepaid:
			if ledger.ClassForAccountType(fromType) == ledger.ClassReceivable {
				pos.OwedToMe = pos.OwedToMe.Sub(amt) // they repaid me
			} else {
				pos.OwedByMe = pos.OwedByMe.Sub(amt) // I repaid them
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(positions))
	for name := range positions {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]ledger.LoanPosition, 0, len(positions))
	for _, name := range names {
		out = append(out, *positions[name])
	}
	return out, nil
}

// NetWorthTimeline returns month-by-month closing net worth, computed
// from class-aware entry deltas accumulated in date order.
func (s *Store) NetWorthTimeline(ctx context.Context) ([]ledger.NetWorthPoint, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT strftime('%Y-%m', e.entry_date) AS month,
			COALESCE(SUM(e.debit), 0), COALESCE(SUM(e.credit), 0)
		FROM entries e
		JOIN accounts a ON a.id = e.account_id
		JOIN transactions t ON t.id = e.transaction_id
		WHERE t.finalized = 1
		GROUP BY month
		ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("timeline query: %w", err)
	}
	defer rows.Close()

	deltas := map[string]decimal.Decimal{}
	for rows.Next() {
		var month string
		var debit, credit float64
		if err := rows.Scan(&month, &debit, &credit); err != nil {
			return nil, fmt.Errorf("scan timeline row: %w", err)
		}

		// The net-worth delta is debit − credit regardless of class:
		// debit-normal balances add as debit − credit, and credit-normal
		// balances (credit − debit) subtract, which is the same negated.
		delta := decimal.NewFromFloat(debit).Sub(decimal.NewFromFloat(credit))

		if _, ok := deltas[month]; !ok {
			deltas[month] = decimal.Zero
		}
		deltas[month] = deltas[month].Add(delta)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	months := make([]string, 0, len(deltas))
	for m := range deltas {
		months = append(months, m)
	}
	sort.Strings(months)

	var points []ledger.NetWorthPoint
	running := decimal.Zero
	for _, m := range months {
		running = running.Add(deltas[m])
		points = append(points, ledger.NetWorthPoint{Month: m, NetWorth: running})
	}
	return points, nil
}
