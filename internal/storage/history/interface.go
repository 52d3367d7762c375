package history

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("transaction not found")
	ErrStoreClosed   = errors.New("history store is closed")
	ErrUnknownDriver = errors.New("unknown history driver")
)

// Record is one applied or rejected transaction as persisted for later
// lookup.
type Record struct {
	Hash     [32]byte
	Account  string
	TxType   string
	Result   string
	Applied  bool
	RawTxn   []byte
	Metadata []byte
	Sequence uint64
	Recorded time.Time
}

// Store persists transaction history. Implementations are safe for
// concurrent use.
type Store interface {
	// SaveTransaction appends a record. Sequence is assigned by the
	// store and returned on the stored copy.
	SaveTransaction(ctx context.Context, record *Record) error

	// GetTransaction looks a record up by its hash.
	GetTransaction(ctx context.Context, hash [32]byte) (*Record, error)

	// AccountTransactions returns the most recent records submitted by
	// an account, newest first.
	AccountTransactions(ctx context.Context, account string, limit int) ([]*Record, error)

	// RecentTransactions returns the most recent records, newest first.
	RecentTransactions(ctx context.Context, limit int) ([]*Record, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (uint64, error)

	Close() error
}
