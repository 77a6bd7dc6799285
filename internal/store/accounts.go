package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sahajm/finledger/internal/ledger"
)

func (s *Store) CreateAccount(ctx context.Context, acct *ledger.Account) error {
	if acct.Currency == "" {
		acct.Currency = ledger.DefaultCurrency
	}
	if err := acct.Validate(); err != nil {
		return err
	}

	res, err := s.writer.ExecContext(ctx,
		`INSERT INTO accounts (name, type, currency) VALUES (?, ?, ?)`,
		acct.Name, acct.Type, acct.Currency,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	acct.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("account id: %w", err)
	}
	return nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*ledger.Account, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT id, name, type, currency, created_at FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (s *Store) ListAccounts(ctx context.Context, filter AccountFilter) ([]ledger.Account, error) {
	query := `SELECT id, name, type, currency, created_at FROM accounts WHERE 1=1`
	args := []any{}

	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, filter.Type)
	}

	query += ` ORDER BY id`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET %d`, filter.Offset)
		}
	}

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		acct, err := scanAccountRow(rows)
		if err != nil {
			return nil, err
		}
		// Class filtering happens here: the class is derived, not stored.
		if filter.Class != "" && acct.Class() != filter.Class {
			continue
		}
		accounts = append(accounts, *acct)
	}
	return accounts, rows.Err()
}

func (s *Store) RenameAccount(ctx context.Context, id int64, name string) error {
	if name == "" {
		return fmt.Errorf("account name is required")
	}
	res, err := s.writer.ExecContext(ctx, `UPDATE accounts SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("rename account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	if _, err := s.GetAccount(ctx, id); err != nil {
		return err
	}

	var count int
	err := s.reader.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE account_id = ?`, id).Scan(&count)
	if err != nil {
		return fmt.Errorf("check entries: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: account %d has %d entries", ledger.ErrAccountHasEntries, id, count)
	}

	_, err = s.writer.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// accountTypeLabel looks up the account-type label for an id; this is the
// account-directory lookup the validation and generation steps need.
func (s *Store) accountTypeLabel(ctx context.Context, id int64) (string, error) {
	var label string
	err := s.reader.QueryRowContext(ctx, `SELECT type FROM accounts WHERE id = ?`, id).Scan(&label)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: id %d", ledger.ErrAccountNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("account type lookup: %w", err)
	}
	return label, nil
}

func scanAccount(row *sql.Row) (*ledger.Account, error) {
	var acct ledger.Account
	var createdAt string
	err := row.Scan(&acct.ID, &acct.Name, &acct.Type, &acct.Currency, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}
	acct.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &acct, nil
}

func scanAccountRow(rows *sql.Rows) (*ledger.Account, error) {
	var acct ledger.Account
	var createdAt string
	err := rows.Scan(&acct.ID, &acct.Name, &acct.Type, &acct.Currency, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan account row: %w", err)
	}
	acct.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &acct, nil
}
