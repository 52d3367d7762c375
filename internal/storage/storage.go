package storage

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/Manifold-MEV/friendtech-presale/internal/storage/keyValueDb"
	"github.com/Manifold-MEV/friendtech-presale/internal/storage/keyValueDb/goleveldb"
	"github.com/Manifold-MEV/friendtech-presale/internal/storage/keyValueDb/memory"
	"github.com/Manifold-MEV/friendtech-presale/internal/storage/keyValueDb/pebble"
)

// Supported keyValueDb backends.
const (
	BackendPebble  = "pebble"
	BackendLevelDB = "goleveldb"
	BackendMemory  = "memory"
)

// Manager opens named databases under a common root directory, all
// using the same configured backend.
type Manager struct {
	backend string
	root    string

	mu   sync.Mutex
	open map[string]keyValueDb.DB
}

func NewManager(backend, root string) *Manager {
	return &Manager{
		backend: backend,
		root:    root,
		open:    make(map[string]keyValueDb.DB),
	}
}

func (m *Manager) OpenDB(name string) (keyValueDb.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if db, ok := m.open[name]; ok {
		return db, nil
	}

	var (
		db  keyValueDb.DB
		err error
	)
	switch m.backend {
	case BackendPebble:
		db, err = pebble.Open(filepath.Join(m.root, name))
	case BackendLevelDB:
		db, err = goleveldb.Open(filepath.Join(m.root, name))
	case BackendMemory:
		db = memory.New()
	default:
		return nil, fmt.Errorf("%w: %q", keyValueDb.ErrUnknownBackend, m.backend)
	}
	if err != nil {
		return nil, err
	}

	m.open[name] = db
	return db, nil
}

func (m *Manager) CloseDB(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	db, ok := m.open[name]
	if !ok {
		return nil
	}
	delete(m.open, name)
	return db.Close()
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for name, db := range m.open {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(m.open, name)
	}
	return firstErr
}
