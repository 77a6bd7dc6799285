package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sahajm/finledger/internal/ledger"
)

// PostTransaction is the single transactional unit of work per intent:
// resolve account types, validate, generate the balanced entry pair, then
// persist the transaction row and both entries atomically. Validation
// failures are the caller's to fix; an imbalance from the generator is an
// internal defect and nothing is written.
func (s *Store) PostTransaction(ctx context.Context, txn *ledger.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.Must(uuid.NewV7()).String()
	}
	if txn.Date.IsZero() {
		txn.Date = time.Now().UTC()
	}
	if txn.Currency == "" {
		txn.Currency = ledger.DefaultCurrency
	}

	intent, err := s.intentFor(ctx, txn)
	if err != nil {
		return err
	}

	if err := ledger.ValidateStrict(intent); err != nil {
		return err
	}

	entries, err := s.gen.Entries(txn.ID, intent, txn.Date, txn.Description)
	if err != nil {
		// Imbalance is fatal to this operation; log distinctly and abort.
		s.log.Error("aborting transaction write", zap.String("transaction_id", txn.ID), zap.Error(err))
		return err
	}

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	amount, _ := txn.Amount.Float64()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, type, nature, amount, currency, from_account_id, to_account_id, category, counterparty, description, txn_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, string(txn.Type), string(txn.Nature), amount, txn.Currency,
		nullableID(txn.FromAccount), nullableID(txn.ToAccount),
		txn.Category, txn.Counterparty, txn.Description,
		txn.Date.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	for i, e := range entries {
		debit, _ := e.Debit.Float64()
		credit, _ := e.Credit.Float64()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO entries (transaction_id, account_id, bucket, debit, credit, entry_date, description)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.TransactionID, nullableRef(e.Account), string(e.Account.Bucket),
			debit, credit, e.EntryDate.Format(time.RFC3339Nano), e.Description,
		)
		if err != nil {
			return fmt.Errorf("insert entry %d: %w", i, err)
		}
	}

	// Finalize: the balance trigger re-checks the pair as defense in depth.
	if _, err = tx.ExecContext(ctx, `UPDATE transactions SET finalized = 1 WHERE id = ?`, txn.ID); err != nil {
		return fmt.Errorf("finalize transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	txn.Entries = entries
	return nil
}

// intentFor builds the validation/generation input from the transaction,
// resolving endpoint account-type labels through the account directory.
func (s *Store) intentFor(ctx context.Context, txn *ledger.Transaction) (ledger.Intent, error) {
	intent := ledger.Intent{
		Type:          txn.Type,
		Nature:        txn.Nature,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		FromAccountID: txn.FromAccount,
		ToAccountID:   txn.ToAccount,
		Category:      txn.Category,
		Counterparty:  txn.Counterparty,
	}

	if txn.FromAccount != 0 {
		label, err := s.accountTypeLabel(ctx, txn.FromAccount)
		if err != nil {
			return ledger.Intent{}, err
		}
		intent.FromAccountType = label
	}
	if txn.ToAccount != 0 {
		label, err := s.accountTypeLabel(ctx, txn.ToAccount)
		if err != nil {
			return ledger.Intent{}, err
		}
		intent.ToAccountType = label
	}
	return intent, nil
}

// ValidateTransaction runs the rule set against a would-be transaction
// without writing anything. It resolves account classes the same way
// PostTransaction does, so the result matches what a real post would see.
func (s *Store) ValidateTransaction(ctx context.Context, txn *ledger.Transaction) ([]string, error) {
	if txn.Currency == "" {
		txn.Currency = ledger.DefaultCurrency
	}
	intent, err := s.intentFor(ctx, txn)
	if err != nil {
		return nil, err
	}
	return ledger.Validate(intent), nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*ledger.Transaction, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT id, type, nature, amount, currency, from_account_id, to_account_id, category, counterparty, description, txn_date, created_at
		FROM transactions WHERE id = ? AND finalized = 1`, id)

	txn, err := scanTransaction(row)
	if err != nil {
		return nil, err
	}

	entries, err := s.entriesForTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	txn.Entries = entries
	return txn, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter TxnFilter) ([]ledger.Transaction, error) {
	query := `SELECT DISTINCT t.id, t.type, t.nature, t.amount, t.currency, t.from_account_id, t.to_account_id, t.category, t.counterparty, t.description, t.txn_date, t.created_at
		FROM transactions t`
	args := []any{}

	if filter.AccountID != 0 {
		query += ` JOIN entries e ON e.transaction_id = t.id WHERE e.account_id = ?`
		args = append(args, filter.AccountID)
	} else {
		query += ` WHERE 1=1`
	}

	query += ` AND t.finalized = 1`

	if filter.Type != "" {
		query += ` AND t.type = ?`
		args = append(args, string(filter.Type))
	}
	if filter.Nature != "" {
		query += ` AND t.nature = ?`
		args = append(args, string(filter.Nature))
	}

	query += ` ORDER BY t.txn_date DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET %d`, filter.Offset)
		}
	}

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []ledger.Transaction
	for rows.Next() {
		txn, err := scanTransactionRow(rows)
		if err != nil {
			return nil, err
		}

		entries, err := s.entriesForTransaction(ctx, txn.ID)
		if err != nil {
			return nil, err
		}
		txn.Entries = entries
		txns = append(txns, *txn)
	}
	return txns, rows.Err()
}

func (s *Store) ListEntriesByAccount(ctx context.Context, accountID int64, filter EntryFilter) ([]ledger.Entry, error) {
	query := `SELECT e.id, e.transaction_id, e.account_id, e.bucket, e.debit, e.credit, e.entry_date, e.description, e.created_at
		FROM entries e
		JOIN transactions t ON t.id = e.transaction_id
		WHERE e.account_id = ? AND t.finalized = 1
		ORDER BY e.entry_date DESC, e.id DESC`

	args := []any{accountID}
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET %d`, filter.Offset)
		}
	}

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (s *Store) entriesForTransaction(ctx context.Context, txnID string) ([]ledger.Entry, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, transaction_id, account_id, bucket, debit, credit, entry_date, description, created_at
		FROM entries WHERE transaction_id = ? ORDER BY id`, txnID)
	if err != nil {
		return nil, fmt.Errorf("get entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	for rows.Next() {
		var e ledger.Entry
		var accountID sql.NullInt64
		var bucket string
		var debit, credit float64
		var entryDate, createdAt string
		if err := rows.Scan(&e.ID, &e.TransactionID, &accountID, &bucket, &debit, &credit, &entryDate, &e.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if accountID.Valid {
			e.Account = ledger.RealAccount(accountID.Int64)
		} else {
			e.Account = ledger.VirtualBucket(ledger.Bucket(bucket))
		}
		e.Debit = decimal.NewFromFloat(debit)
		e.Credit = decimal.NewFromFloat(credit)
		e.EntryDate, _ = time.Parse(time.RFC3339Nano, entryDate)
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row *sql.Row) (*ledger.Transaction, error) {
	txn, err := scanTxnFields(row)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return txn, nil
}

func scanTransactionRow(rows *sql.Rows) (*ledger.Transaction, error) {
	txn, err := scanTxnFields(rows)
	if err != nil {
		return nil, fmt.Errorf("scan transaction row: %w", err)
	}
	return txn, nil
}

func scanTxnFields(sc rowScanner) (*ledger.Transaction, error) {
	var txn ledger.Transaction
	var amount float64
	var from, to sql.NullInt64
	var txnDate, createdAt string
	err := sc.Scan(&txn.ID, &txn.Type, &txn.Nature, &amount, &txn.Currency,
		&from, &to, &txn.Category, &txn.Counterparty, &txn.Description, &txnDate, &createdAt)
	if err != nil {
		return nil, err
	}
	txn.Amount = decimal.NewFromFloat(amount)
	txn.FromAccount = from.Int64
	txn.ToAccount = to.Int64
	txn.Date, _ = time.Parse(time.RFC3339Nano, txnDate)
	txn.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &txn, nil
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func nullableRef(ref ledger.AccountRef) any {
	if ref.IsVirtual() || ref.ID == 0 {
		return nil
	}
	return ref.ID
}
