package history

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cachedStore fronts a Store with an LRU over hash lookups, the hot
// path for tx queries.
type cachedStore struct {
	inner  Store
	byHash *lru.Cache[[32]byte, *Record]
}

func newCachedStore(inner Store, size int) (Store, error) {
	byHash, err := lru.New[[32]byte, *Record](size)
	if err != nil {
		return nil, err
	}
	return &cachedStore{inner: inner, byHash: byHash}, nil
}

func (c *cachedStore) SaveTransaction(ctx context.Context, record *Record) error {
	if err := c.inner.SaveTransaction(ctx, record); err != nil {
		return err
	}
	c.byHash.Add(record.Hash, record)
	return nil
}

func (c *cachedStore) GetTransaction(ctx context.Context, hash [32]byte) (*Record, error) {
	if record, ok := c.byHash.Get(hash); ok {
		return record, nil
	}
	record, err := c.inner.GetTransaction(ctx, hash)
	if err != nil {
		return nil, err
	}
	c.byHash.Add(hash, record)
	return record, nil
}

func (c *cachedStore) AccountTransactions(ctx context.Context, account string, limit int) ([]*Record, error) {
	return c.inner.AccountTransactions(ctx, account, limit)
}

func (c *cachedStore) RecentTransactions(ctx context.Context, limit int) ([]*Record, error) {
	return c.inner.RecentTransactions(ctx, limit)
}

func (c *cachedStore) Count(ctx context.Context) (uint64, error) {
	return c.inner.Count(ctx)
}

func (c *cachedStore) Close() error {
	c.byHash.Purge()
	return c.inner.Close()
}
