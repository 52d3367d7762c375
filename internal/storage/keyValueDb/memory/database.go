package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/Manifold-MEV/friendtech-presale/internal/storage/keyValueDb"
)

// DB is a map-backed keyValueDb used in standalone mode and tests.
type DB struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

func New() *DB {
	return &DB{data: make(map[string][]byte)}
}

func (m *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, keyValueDb.ErrDBClosed
	}

	val, ok := m.data[string(key)]
	if !ok {
		return nil, keyValueDb.ErrKeyNotFound
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *DB) Write(ctx context.Context, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return keyValueDb.ErrDBClosed
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[string(key)] = stored
	return nil
}

func (m *DB) Delete(ctx context.Context, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return keyValueDb.ErrDBClosed
	}
	delete(m.data, string(key))
	return nil
}

func (m *DB) Batch(ctx context.Context, ops []keyValueDb.BatchOperation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return keyValueDb.ErrDBClosed
	}

	for _, op := range ops {
		switch op.Type {
		case keyValueDb.BatchPut:
			stored := make([]byte, len(op.Value))
			copy(stored, op.Value)
			m.data[string(op.Key)] = stored
		case keyValueDb.BatchDelete:
			delete(m.data, string(op.Key))
		default:
			return keyValueDb.ErrBatchOperationFailed
		}
	}
	return nil
}

func (m *DB) Iterator(ctx context.Context, start, end []byte) (keyValueDb.Iterator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, keyValueDb.ErrDBClosed
	}

	// Snapshot the matching range so iteration is stable under writes.
	var keys []string
	for k := range m.data {
		kb := []byte(k)
		if start != nil && bytes.Compare(kb, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(kb, end) >= 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]kv, 0, len(keys))
	for _, k := range keys {
		val := m.data[k]
		out := make([]byte, len(val))
		copy(out, val)
		items = append(items, kv{key: []byte(k), value: out})
	}
	return &iterator{items: items, pos: -1}, nil
}

func (m *DB) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.data = nil
	return nil
}

type kv struct {
	key, value []byte
}

type iterator struct {
	items []kv
	pos   int
}

func (it *iterator) Next() bool {
	it.pos++
	return it.pos < len(it.items)
}

func (it *iterator) Key() []byte {
	return it.items[it.pos].key
}

func (it *iterator) Value() []byte {
	return it.items[it.pos].value
}

func (it *iterator) Error() error { return nil }

func (it *iterator) Close() error { return nil }
