package history

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Config selects and parameterizes a history driver.
type Config struct {
	// Driver is "sqlite" or "postgres".
	Driver string

	// DSN is the connection string. For sqlite this is the database
	// file path.
	DSN string

	// CacheSize is the number of records the read cache holds. Zero
	// disables caching.
	CacheSize int
}

// DefaultConfig returns an on-disk sqlite store at path.
func DefaultConfig(path string) Config {
	return Config{Driver: DriverSqlite, DSN: path, CacheSize: 1024}
}

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	seq        BIGINT PRIMARY KEY,
	hash       VARCHAR(64) NOT NULL UNIQUE,
	account    VARCHAR(42) NOT NULL,
	tx_type    VARCHAR(32) NOT NULL,
	result     VARCHAR(32) NOT NULL,
	applied    BOOLEAN NOT NULL,
	raw_txn    BYTEA,
	metadata   BYTEA,
	recorded   BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions (account, seq);
`

// sqlite stores blobs as BLOB; BYTEA is rewritten per driver.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS transactions (
	seq        INTEGER PRIMARY KEY,
	hash       TEXT NOT NULL UNIQUE,
	account    TEXT NOT NULL,
	tx_type    TEXT NOT NULL,
	result     TEXT NOT NULL,
	applied    BOOLEAN NOT NULL,
	raw_txn    BLOB,
	metadata   BLOB,
	recorded   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions (account, seq);
`

// sqlStore implements Store over database/sql. It works against both
// the modernc sqlite driver and lib/pq.
type sqlStore struct {
	mu       sync.Mutex
	db       *sql.DB
	driver   string
	nextSeq  uint64
	closed   bool
	rebinder func(string) string
}

// Open opens a history store per config, wrapping it in a read cache
// when one is configured.
func Open(config Config) (Store, error) {
	store, err := openSQL(config)
	if err != nil {
		return nil, err
	}
	if config.CacheSize > 0 {
		return newCachedStore(store, config.CacheSize)
	}
	return store, nil
}

func openSQL(config Config) (*sqlStore, error) {
	var driverName, ddl string
	var rebinder func(string) string
	switch config.Driver {
	case DriverSqlite:
		driverName, ddl = "sqlite", sqliteSchema
		rebinder = rebindQuestion
	case DriverPostgres:
		driverName, ddl = "postgres", schema
		rebinder = rebindDollar
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, config.Driver)
	}

	db, err := sql.Open(driverName, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s history store: %w", config.Driver, err)
	}
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	store := &sqlStore{db: db, driver: config.Driver, rebinder: rebinder}
	if err := store.loadNextSeq(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *sqlStore) loadNextSeq() error {
	var max sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(seq) FROM transactions`).Scan(&max); err != nil {
		return fmt.Errorf("read history sequence: %w", err)
	}
	if max.Valid {
		s.nextSeq = uint64(max.Int64) + 1
	} else {
		s.nextSeq = 1
	}
	return nil
}

// rebindQuestion leaves ?-style placeholders alone (sqlite).
func rebindQuestion(query string) string {
	return query
}

// rebindDollar rewrites ?-style placeholders to $n (postgres).
func rebindDollar(query string) string {
	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}

func (s *sqlStore) SaveTransaction(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	record.Sequence = s.nextSeq
	if record.Recorded.IsZero() {
		record.Recorded = time.Now().UTC()
	}
	query := s.rebinder(`INSERT INTO transactions
		(seq, hash, account, tx_type, result, applied, raw_txn, metadata, recorded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		int64(record.Sequence),
		hex.EncodeToString(record.Hash[:]),
		record.Account,
		record.TxType,
		record.Result,
		record.Applied,
		record.RawTxn,
		record.Metadata,
		record.Recorded.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}
	s.nextSeq++
	return nil
}

const selectColumns = `seq, hash, account, tx_type, result, applied, raw_txn, metadata, recorded`

func scanRecord(row interface{ Scan(...any) error }) (*Record, error) {
	var (
		record   Record
		seq      int64
		hashHex  string
		recorded int64
	)
	err := row.Scan(&seq, &hashHex, &record.Account, &record.TxType,
		&record.Result, &record.Applied, &record.RawTxn, &record.Metadata, &recorded)
	if err != nil {
		return nil, err
	}
	record.Sequence = uint64(seq)
	record.Recorded = time.Unix(0, recorded).UTC()
	hashBytes, err := hex.DecodeString(hashHex)
	if err != nil || len(hashBytes) != 32 {
		return nil, fmt.Errorf("corrupt transaction hash %q", hashHex)
	}
	copy(record.Hash[:], hashBytes)
	return &record, nil
}

func (s *sqlStore) GetTransaction(ctx context.Context, hash [32]byte) (*Record, error) {
	query := s.rebinder(`SELECT ` + selectColumns + ` FROM transactions WHERE hash = ?`)
	record, err := scanRecord(s.db.QueryRowContext(ctx, query, hex.EncodeToString(hash[:])))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return record, nil
}

func (s *sqlStore) queryRecords(ctx context.Context, query string, args ...any) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *sqlStore) AccountTransactions(ctx context.Context, account string, limit int) ([]*Record, error) {
	query := s.rebinder(`SELECT ` + selectColumns + ` FROM transactions
		WHERE account = ? ORDER BY seq DESC LIMIT ?`)
	records, err := s.queryRecords(ctx, query, account, limit)
	if err != nil {
		return nil, fmt.Errorf("account transactions: %w", err)
	}
	return records, nil
}

func (s *sqlStore) RecentTransactions(ctx context.Context, limit int) ([]*Record, error) {
	query := s.rebinder(`SELECT ` + selectColumns + ` FROM transactions ORDER BY seq DESC LIMIT ?`)
	records, err := s.queryRecords(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}
	return records, nil
}

func (s *sqlStore) Count(ctx context.Context) (uint64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return uint64(count), nil
}

func (s *sqlStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
