package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Manifold-MEV/friendtech-presale/internal/storage/history"
)

var ErrNoHistory = errors.New("transaction history is not configured")

// Transaction looks up a processed transaction by its hex hash.
func (s *Service) Transaction(ctx context.Context, hashHex string) (*history.Record, error) {
	if s.config.History == nil {
		return nil, ErrNoHistory
	}
	hashBytes, err := hex.DecodeString(hashHex)
	if err != nil || len(hashBytes) != 32 {
		return nil, fmt.Errorf("invalid transaction hash %q", hashHex)
	}
	var hash [32]byte
	copy(hash[:], hashBytes)
	return s.config.History.GetTransaction(ctx, hash)
}

// AccountTransactions returns the most recent submissions by account,
// newest first.
func (s *Service) AccountTransactions(ctx context.Context, account string, limit int) ([]*history.Record, error) {
	if s.config.History == nil {
		return nil, ErrNoHistory
	}
	if _, err := parseAddr("account", account); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.config.History.AccountTransactions(ctx, account, limit)
}
