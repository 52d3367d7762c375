package pebble

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"

	"github.com/Manifold-MEV/friendtech-presale/internal/storage/keyValueDb"
)

// DB is a pebble-backed keyValueDb.
type DB struct {
	db *pebble.DB
}

// Open creates or opens a pebble database under dir.
func Open(dir string) (*DB, error) {
	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble database at %s: %w", dir, err)
	}
	return &DB{db: db}, nil
}

// NewDB wraps an already opened pebble database.
func NewDB(db *pebble.DB) *DB {
	return &DB{db: db}
}

func (p *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if p.db == nil {
		return nil, keyValueDb.ErrDBClosed
	}

	val, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, keyValueDb.ErrKeyNotFound
		}
		return nil, err
	}
	defer closer.Close()

	// Copy the value out
	valCopy := make([]byte, len(val))
	copy(valCopy, val)
	return valCopy, nil
}

func (p *DB) Write(ctx context.Context, key, value []byte) error {
	if p.db == nil {
		return keyValueDb.ErrDBClosed
	}
	return p.db.Set(key, value, pebble.Sync)
}

func (p *DB) Delete(ctx context.Context, key []byte) error {
	if p.db == nil {
		return keyValueDb.ErrDBClosed
	}
	return p.db.Delete(key, pebble.Sync)
}

func (p *DB) Batch(ctx context.Context, ops []keyValueDb.BatchOperation) error {
	if p.db == nil {
		return keyValueDb.ErrDBClosed
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	for _, op := range ops {
		switch op.Type {
		case keyValueDb.BatchPut:
			if err := batch.Set(op.Key, op.Value, nil); err != nil {
				return err
			}
		case keyValueDb.BatchDelete:
			if err := batch.Delete(op.Key, nil); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown batch operation type: %d", op.Type)
		}
	}

	return batch.Commit(pebble.Sync)
}

func (p *DB) Iterator(ctx context.Context, start, end []byte) (keyValueDb.Iterator, error) {
	if p.db == nil {
		return nil, keyValueDb.ErrDBClosed
	}

	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: end,
	})
	if err != nil {
		return nil, err
	}

	return &iterator{iter: iter}, nil
}

func (p *DB) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

type iterator struct {
	iter    *pebble.Iterator
	started bool
}

func (it *iterator) Next() bool {
	if !it.started {
		it.started = true
		return it.iter.First()
	}
	return it.iter.Next()
}

func (it *iterator) Key() []byte {
	key := it.iter.Key()
	out := make([]byte, len(key))
	copy(out, key)
	return out
}

func (it *iterator) Value() []byte {
	val := it.iter.Value()
	out := make([]byte, len(val))
	copy(out, val)
	return out
}

func (it *iterator) Error() error {
	return it.iter.Error()
}

func (it *iterator) Close() error {
	return it.iter.Close()
}
