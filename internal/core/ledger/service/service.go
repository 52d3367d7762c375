// Package service owns the running ledger: it serializes transaction
// submission through the engine, indexes results into history, and
// publishes events to subscribers. Query methods accept string
// addresses so transport layers stay thin.
package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/market"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/tx"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	"github.com/Manifold-MEV/friendtech-presale/internal/storage/history"
	"github.com/Manifold-MEV/friendtech-presale/internal/storage/snapshot"
)

var (
	ErrNotStandalone = errors.New("operation only valid in standalone mode")
	ErrNoSnapshot    = errors.New("no snapshot path configured")
)

// Config holds configuration for the ledger service.
type Config struct {
	// Standalone marks a self-contained deployment with a simulated
	// market venue.
	Standalone bool

	// SkipSignatureVerification accepts unsigned transactions.
	SkipSignatureVerification bool

	// ProxyAddress is the custody account at the market venue.
	ProxyAddress types.Address

	// History indexes applied and rejected transactions (optional).
	History history.Store

	// SnapshotPath is where state snapshots are written (optional).
	SnapshotPath string
}

// Service applies transactions and answers state queries.
type Service struct {
	mu sync.Mutex

	config  Config
	state   *ledger.State
	engine  *tx.Engine
	market  market.Adapter
	events  *EventPublisher
	logger  zerolog.Logger
	started time.Time
	applied uint64
	total   uint64
}

func New(state *ledger.State, adapter market.Adapter, native market.NativeSender, config Config, logger zerolog.Logger) *Service {
	engine := tx.NewEngine(state, adapter, native, tx.EngineConfig{
		ProxyAddress:              config.ProxyAddress,
		SkipSignatureVerification: config.SkipSignatureVerification,
		Standalone:                config.Standalone,
	}, logger)
	return &Service{
		config:  config,
		state:   state,
		engine:  engine,
		market:  adapter,
		events:  NewEventPublisher(),
		logger:  logger.With().Str("component", "ledger-service").Logger(),
		started: time.Now(),
	}
}

// Events returns the service's event publisher for subscription
// management.
func (s *Service) Events() *EventPublisher {
	return s.events
}

// State returns the underlying ledger state for read-only use.
func (s *Service) State() *ledger.State {
	return s.state
}

// IsStandalone reports whether the node runs against a simulated venue.
func (s *Service) IsStandalone() bool {
	return s.config.Standalone
}

// SubmitResult reports the outcome of a submitted transaction.
type SubmitResult struct {
	Hash    string       `json:"tx_hash"`
	Result  string       `json:"engine_result"`
	Message string       `json:"engine_result_message"`
	Applied bool         `json:"applied"`
	Meta    *tx.Metadata `json:"meta,omitempty"`
}

// Submit parses, applies and indexes one transaction. Submissions are
// serialized; each either fully applies or leaves no trace in state.
func (s *Service) Submit(ctx context.Context, txJSON []byte) (*SubmitResult, error) {
	transaction, err := tx.FromJSON(txJSON)
	if err != nil {
		result := tx.ResultMalformed
		if strings.Contains(err.Error(), "unknown transaction type") {
			result = tx.ResultUnknownType
		}
		s.logger.Debug().Err(err).Msg("rejected unparseable submission")
		return &SubmitResult{
			Result:  result.String(),
			Message: err.Error(),
		}, nil
	}

	s.mu.Lock()
	applied, applyErr := s.engine.Apply(transaction)
	if applyErr == nil {
		s.total++
		if applied.Applied() {
			s.applied++
		}
	}
	s.mu.Unlock()
	if applyErr != nil {
		return nil, fmt.Errorf("apply transaction: %w", applyErr)
	}

	out := &SubmitResult{
		Hash:    hex.EncodeToString(applied.TxHash[:]),
		Result:  applied.Result.String(),
		Message: applied.Result.Message(),
		Applied: applied.Applied(),
		Meta:    applied.Metadata,
	}

	s.index(ctx, transaction, applied, txJSON)
	s.events.PublishTransaction(TransactionEvent{
		Hash:    out.Hash,
		TxType:  transaction.GetCommon().TransactionType,
		Account: transaction.GetCommon().Account,
		Result:  out.Result,
		Applied: out.Applied,
		Meta:    applied.Metadata,
	})
	return out, nil
}

// index records the submission in history. Indexing failures are
// logged, not surfaced; the ledger outcome already stands.
func (s *Service) index(ctx context.Context, transaction tx.Transaction, applied *tx.ApplyResult, raw []byte) {
	if s.config.History == nil {
		return
	}
	var metaJSON []byte
	if applied.Metadata != nil {
		metaJSON, _ = json.Marshal(applied.Metadata)
	}
	record := &history.Record{
		Hash:     applied.TxHash,
		Account:  transaction.GetCommon().Account,
		TxType:   transaction.GetCommon().TransactionType,
		Result:   applied.Result.String(),
		Applied:  applied.Applied(),
		RawTxn:   raw,
		Metadata: metaJSON,
	}
	if err := s.config.History.SaveTransaction(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("tx", record.TxType).Msg("failed to index transaction")
	}
}

// SaveSnapshot writes the full state to the configured snapshot path.
func (s *Service) SaveSnapshot() error {
	if s.config.SnapshotPath == "" {
		return ErrNoSnapshot
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot.Write(s.state, s.config.SnapshotPath)
}

// LoadSnapshot restores state from the configured snapshot path.
func (s *Service) LoadSnapshot() error {
	if s.config.SnapshotPath == "" {
		return ErrNoSnapshot
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot.Load(s.state, s.config.SnapshotPath)
}

// ServerInfo summarizes the node for the server_info method.
type ServerInfo struct {
	Standalone   bool     `json:"standalone"`
	ProxyAddress string   `json:"proxy_address"`
	Uptime       int64    `json:"uptime_seconds"`
	TxTotal      uint64   `json:"tx_total"`
	TxApplied    uint64   `json:"tx_applied"`
	TxTypes      []string `json:"supported_transactions"`
}

func supportedTypeNames() []string {
	types := tx.SupportedTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}

func (s *Service) ServerInfo() ServerInfo {
	s.mu.Lock()
	total, applied := s.total, s.applied
	s.mu.Unlock()
	return ServerInfo{
		Standalone:   s.config.Standalone,
		ProxyAddress: s.config.ProxyAddress.String(),
		Uptime:       int64(time.Since(s.started).Seconds()),
		TxTotal:      total,
		TxApplied:    applied,
		TxTypes:      supportedTypeNames(),
	}
}
