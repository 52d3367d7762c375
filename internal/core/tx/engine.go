package tx

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/entry"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/market"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
)

// EngineConfig carries the engine's operating parameters.
type EngineConfig struct {
	// ProxyAddress is the custody account that holds escrowed native
	// currency and the market-side share custody for all subjects.
	ProxyAddress types.Address

	// SkipSignatureVerification accepts unsigned transactions. Only
	// meaningful in standalone mode.
	SkipSignatureVerification bool

	// Standalone marks a self-contained deployment with a simulated
	// market venue.
	Standalone bool
}

// ApplyResult reports the outcome of one transaction.
type ApplyResult struct {
	Result   Result
	TxHash   [32]byte
	Metadata *Metadata
}

// Applied reports whether the transaction changed ledger state.
func (r *ApplyResult) Applied() bool {
	return r.Result.IsApplied()
}

// Engine applies transactions to the ledger one at a time. Every
// operation runs against a buffered overlay that commits only when the
// operation fully succeeds and the share books still reconcile with
// market custody, so a failed operation leaves no partial state.
//
// The engine is not safe for concurrent use; callers serialize.
type Engine struct {
	state  *ledger.State
	market market.Adapter
	native market.NativeSender
	config EngineConfig
	logger zerolog.Logger
}

func NewEngine(state *ledger.State, adapter market.Adapter, native market.NativeSender, config EngineConfig, logger zerolog.Logger) *Engine {
	return &Engine{
		state:  state,
		market: adapter,
		native: native,
		config: config,
		logger: logger.With().Str("component", "engine").Logger(),
	}
}

// Config returns the engine's operating parameters.
func (e *Engine) Config() EngineConfig {
	return e.config
}

// State returns the underlying ledger.
func (e *Engine) State() *ledger.State {
	return e.state
}

// Apply runs a transaction through preflight checks, applies it on an
// overlay, verifies share conservation and commits. Any failure
// discards the overlay and refunds the escrowed payment.
func (e *Engine) Apply(transaction Transaction) (*ApplyResult, error) {
	hash, err := TxHash(transaction)
	if err != nil {
		return nil, fmt.Errorf("hash transaction: %w", err)
	}
	out := &ApplyResult{TxHash: hash}

	logger := e.logger.With().
		Str("tx", hex.EncodeToString(hash[:8])).
		Str("type", transaction.GetCommon().TransactionType).
		Logger()

	if result := e.preflight(transaction); !result.IsSuccess() {
		logger.Debug().Str("result", result.String()).Msg("transaction rejected in preflight")
		out.Result = result
		return out, nil
	}

	caller, err := transaction.GetCommon().CallerAddress()
	if err != nil {
		out.Result = ResultBadAccount
		return out, nil
	}
	payment, err := transaction.GetCommon().PaymentAmount()
	if err != nil {
		out.Result = ResultBadAmount
		return out, nil
	}

	appliable, ok := transaction.(Appliable)
	if !ok {
		out.Result = ResultUnknownType
		return out, nil
	}

	// Escrow the attached payment with the proxy before applying. A
	// failed operation gets back whatever escrow the proxy still holds.
	if payment.IsPositive() {
		if err := e.native.SendNative(caller, e.config.ProxyAddress, payment); err != nil {
			logger.Debug().Err(err).Msg("payment escrow failed")
			out.Result = ResultInsufficientFunds
			return out, nil
		}
	}

	table := NewApplyStateTable(e.state)
	ctx := &ApplyContext{
		View:    table,
		Caller:  caller,
		Payment: payment,
		Market:  e.market,
		Native:  e.native,
		Config:  &e.config,
		TxHash:  hash,
	}

	result := appliable.Apply(ctx)
	if result.IsSuccess() {
		if violated, err := e.conservationViolated(ctx, table); err != nil {
			logger.Error().Err(err).Msg("conservation check failed")
			result = ResultInternal
		} else if violated {
			result = ResultInvariantFailed
		}
	}

	if !result.IsSuccess() {
		if remaining := ctx.EscrowRemaining(); remaining.IsPositive() {
			if err := e.native.SendNative(e.config.ProxyAddress, caller, remaining); err != nil {
				return nil, fmt.Errorf("refund escrow: %w", err)
			}
		}
		logger.Debug().Str("result", result.String()).Msg("transaction failed")
		out.Result = result
		return out, nil
	}

	meta, err := table.Apply()
	if err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	for _, p := range ctx.payouts {
		if err := e.native.SendNative(e.config.ProxyAddress, p.to, p.amount); err != nil {
			return nil, fmt.Errorf("pay out %s to %s: %w", p.amount, p.to, err)
		}
	}
	meta.TransactionResult = result.String()
	out.Result = result
	out.Metadata = meta
	ctx.Metadata = meta
	logger.Info().Int("affected", len(meta.AffectedNodes)).Msg("transaction applied")
	return out, nil
}

// preflight runs the stateless checks: well-formedness and, unless
// disabled, signature verification.
func (e *Engine) preflight(transaction Transaction) Result {
	if err := transaction.GetCommon().Validate(); err != nil {
		return resultFromValidationError(err)
	}
	if err := transaction.Validate(); err != nil {
		return resultFromValidationError(err)
	}
	if !e.config.SkipSignatureVerification {
		if err := VerifySignature(transaction); err != nil {
			return ResultBadSignature
		}
	}
	return ResultApplied
}

// conservationViolated checks every subject the operation touched: the
// sum of internal holder balances must not exceed the shares the
// market holds in custody for the proxy, and the subject's running
// total must equal that sum so the counter cannot drift from the real
// books.
func (e *Engine) conservationViolated(ctx *ApplyContext, table *ApplyStateTable) (bool, error) {
	touched := ctx.TouchedSubjects()
	if len(touched) == 0 {
		return false, nil
	}

	sums := make(map[types.Address]uint64, len(touched))
	for _, subject := range touched {
		sums[subject] = 0
	}
	err := table.ForEach(func(key [32]byte, data []byte) bool {
		if len(data) < 2 || entry.Type(binary.BigEndian.Uint16(data[:2])) != entry.TypeBalance {
			return true
		}
		decoded, decodeErr := entry.Decode(data)
		if decodeErr != nil {
			return true
		}
		balance := decoded.(*entry.Balance)
		if _, ok := sums[balance.Subject]; ok {
			sums[balance.Subject] += balance.Amount
		}
		return true
	})
	if err != nil {
		return false, err
	}

	for _, subject := range touched {
		total, err := ReadTotalShares(table, subject)
		if err != nil {
			return false, err
		}
		custody, err := e.market.CustodyBalance(subject, e.config.ProxyAddress)
		if err != nil {
			return false, err
		}
		if total != sums[subject] || sums[subject] > custody {
			e.logger.Warn().
				Str("subject", subject.String()).
				Uint64("total", total).
				Uint64("balances", sums[subject]).
				Uint64("custody", custody).
				Msg("internal books do not reconcile with market custody")
			return true, nil
		}
	}
	return false, nil
}
