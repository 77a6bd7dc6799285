package store

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		// Account directory
		`CREATE TABLE IF NOT EXISTS accounts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			type       TEXT NOT NULL,
			currency   TEXT NOT NULL DEFAULT 'INR',
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_type ON accounts(type)`,

		// Transactions: the economic event
		`CREATE TABLE IF NOT EXISTS transactions (
			id              TEXT PRIMARY KEY,
			type            TEXT NOT NULL CHECK (type IN ('income','expense','transfer')),
			nature          TEXT NOT NULL,
			amount          NUMERIC NOT NULL CHECK (amount > 0),
			currency        TEXT NOT NULL,
			from_account_id INTEGER REFERENCES accounts(id),
			to_account_id   INTEGER REFERENCES accounts(id),
			category        TEXT NOT NULL DEFAULT '',
			counterparty    TEXT NOT NULL DEFAULT '',
			description     TEXT NOT NULL DEFAULT '',
			txn_date        TEXT NOT NULL,
			finalized       INTEGER NOT NULL DEFAULT 0,
			created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(txn_date)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_nature ON transactions(nature)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_counterparty ON transactions(counterparty)`,

		// Ledger entries: account_id NULL means a virtual bucket posting
		`CREATE TABLE IF NOT EXISTS entries (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			transaction_id TEXT NOT NULL REFERENCES transactions(id),
			account_id     INTEGER REFERENCES accounts(id),
			bucket         TEXT NOT NULL DEFAULT '' CHECK (bucket IN ('','income','expense')),
			debit          NUMERIC NOT NULL DEFAULT 0 CHECK (debit >= 0),
			credit         NUMERIC NOT NULL DEFAULT 0 CHECK (credit >= 0),
			entry_date     TEXT NOT NULL,
			description    TEXT NOT NULL DEFAULT '',
			created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
			CHECK (account_id IS NOT NULL OR bucket != ''),
			CHECK ((debit = 0) != (credit = 0))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_txn ON entries(transaction_id)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_account ON entries(account_id)`,

		// Trigger: refuse to finalize a transaction whose entries don't balance
		`CREATE TRIGGER IF NOT EXISTS trg_check_balance
		BEFORE UPDATE OF finalized ON transactions
		WHEN NEW.finalized = 1
		BEGIN
			SELECT CASE
				WHEN ABS((SELECT COALESCE(SUM(debit - credit), 0)
					FROM entries WHERE transaction_id = NEW.id)) > 0.001
				THEN RAISE(ABORT, 'ledger entries do not balance')
			END;
		END`,

		// Postings are append-only once finalized
		`CREATE TRIGGER IF NOT EXISTS trg_immutable_entries_insert
		BEFORE INSERT ON entries
		WHEN (SELECT finalized FROM transactions WHERE id = NEW.transaction_id) = 1
		BEGIN
			SELECT RAISE(ABORT, 'cannot add entries to a finalized transaction');
		END`,

		`CREATE TRIGGER IF NOT EXISTS trg_immutable_entries_delete
		BEFORE DELETE ON entries
		WHEN (SELECT finalized FROM transactions WHERE id = OLD.transaction_id) = 1
		BEGIN
			SELECT RAISE(ABORT, 'cannot remove entries from a finalized transaction');
		END`,

		`CREATE TRIGGER IF NOT EXISTS trg_immutable_entries_update
		BEFORE UPDATE ON entries
		WHEN (SELECT finalized FROM transactions WHERE id = OLD.transaction_id) = 1
		BEGIN
			SELECT RAISE(ABORT, 'cannot modify entries of a finalized transaction');
		END`,

		`INSERT INTO schema_version (version) VALUES (1)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:min(60, len(stmt))], err)
		}
	}

	return nil
}
