package goleveldb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/syndtr/goleveldb/leveldb"
	leveldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/Manifold-MEV/friendtech-presale/internal/storage/keyValueDb"
)

// DB is a goleveldb-backed keyValueDb.
type DB struct {
	db *leveldb.DB
}

// Open creates or opens a leveldb database under dir.
func Open(dir string) (*DB, error) {
	db, err := leveldb.OpenFile(filepath.Clean(dir), nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb database at %s: %w", dir, err)
	}
	return &DB{db: db}, nil
}

func (l *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if l.db == nil {
		return nil, keyValueDb.ErrDBClosed
	}

	val, err := l.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldberrors.ErrNotFound) {
			return nil, keyValueDb.ErrKeyNotFound
		}
		return nil, err
	}
	return val, nil
}

func (l *DB) Write(ctx context.Context, key, value []byte) error {
	if l.db == nil {
		return keyValueDb.ErrDBClosed
	}
	return l.db.Put(key, value, nil)
}

func (l *DB) Delete(ctx context.Context, key []byte) error {
	if l.db == nil {
		return keyValueDb.ErrDBClosed
	}
	return l.db.Delete(key, nil)
}

func (l *DB) Batch(ctx context.Context, ops []keyValueDb.BatchOperation) error {
	if l.db == nil {
		return keyValueDb.ErrDBClosed
	}

	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case keyValueDb.BatchPut:
			batch.Put(op.Key, op.Value)
		case keyValueDb.BatchDelete:
			batch.Delete(op.Key)
		default:
			return fmt.Errorf("unknown batch operation type: %d", op.Type)
		}
	}
	return l.db.Write(batch, nil)
}

func (l *DB) Iterator(ctx context.Context, start, end []byte) (keyValueDb.Iterator, error) {
	if l.db == nil {
		return nil, keyValueDb.ErrDBClosed
	}
	iter := l.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	return &iterator{iter: iter}, nil
}

func (l *DB) Close() error {
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

type iterator struct {
	iter iteratorIface
}

// iteratorIface matches the subset of goleveldb's iterator we use.
type iteratorIface interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Release()
}

func (it *iterator) Next() bool {
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
	it.iter.Release()
	return nil
}
