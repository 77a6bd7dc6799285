package store

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/sahajm/finledger/internal/ledger"
)

type AccountFilter struct {
	Type   string
	Class  ledger.AccountingClass
	Limit  int
	Offset int
}

type TxnFilter struct {
	AccountID int64
	Type      ledger.TransactionType
	Nature    ledger.TransactionNature
	Limit     int
	Offset    int
}

type EntryFilter struct {
	Limit  int
	Offset int
}

// Store owns persistence and the atomicity guarantee: a transaction row
// and both of its ledger entries commit together or not at all.
type Store struct {
	writer *sql.DB
	reader *sql.DB
	gen    *ledger.Generator
	log    *zap.Logger
}

func Open(dbPath string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", dbPath)

	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(runtime.NumCPU())

	s := &Store{
		writer: writer,
		reader: reader,
		gen:    ledger.NewGenerator(log),
		log:    log,
	}

	if err := s.migrate(context.Background()); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	err1 := s.writer.Close()
	err2 := s.reader.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
