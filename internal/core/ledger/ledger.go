package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/keylet"
	"github.com/Manifold-MEV/friendtech-presale/internal/storage/keyValueDb"
	"github.com/Manifold-MEV/friendtech-presale/internal/storage/keyValueDb/memory"
)

// State is the authoritative ledger state, keyed by keylet and stored
// in a keyValueDb backend. It is not safe for concurrent use; the
// ledger service serializes access to it.
type State struct {
	db keyValueDb.DB
}

func NewState(db keyValueDb.DB) *State {
	return &State{db: db}
}

// NewInMemory returns a State backed by the in-memory keyValueDb.
func NewInMemory() *State {
	return &State{db: memory.New()}
}

// Read returns the serialized entry at k, or nil if it does not exist.
func (s *State) Read(k keylet.Keylet) ([]byte, error) {
	data, err := s.db.Read(context.Background(), k.Key[:])
	if err != nil {
		if errors.Is(err, keyValueDb.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Exists checks if an entry exists.
func (s *State) Exists(k keylet.Keylet) (bool, error) {
	data, err := s.Read(k)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

// Insert adds a new entry. It fails if the entry already exists.
func (s *State) Insert(k keylet.Keylet, data []byte) error {
	exists, err := s.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("entry %x already exists", k.Key)
	}
	return s.db.Write(context.Background(), k.Key[:], data)
}

// Update modifies an existing entry or creates it if absent.
func (s *State) Update(k keylet.Keylet, data []byte) error {
	return s.db.Write(context.Background(), k.Key[:], data)
}

// Erase removes an entry.
func (s *State) Erase(k keylet.Keylet) error {
	return s.db.Delete(context.Background(), k.Key[:])
}

// ForEach iterates over all state entries. If fn returns false,
// iteration stops early.
func (s *State) ForEach(fn func(key [32]byte, data []byte) bool) error {
	iter, err := s.db.Iterator(context.Background(), nil, nil)
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.Next() {
		rawKey := iter.Key()
		if len(rawKey) != 32 {
			continue
		}
		var key [32]byte
		copy(key[:], rawKey)
		if !fn(key, iter.Value()) {
			break
		}
	}
	return iter.Error()
}
