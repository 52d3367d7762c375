package tx

import (
	"github.com/Manifold-MEV/friendtech-presale/internal/core/market"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
)

// ApplyContext carries everything a transaction needs while applying
// itself. All state writes go through View, an open overlay that the
// engine commits or discards as a whole.
type ApplyContext struct {
	View    LedgerView
	Caller  types.Address
	Payment wei.Amount
	Market  market.Adapter
	Native  market.NativeSender
	Config  *EngineConfig
	TxHash  [32]byte

	// Metadata is populated by the engine after a successful commit.
	Metadata *Metadata

	touched  map[types.Address]struct{}
	refunded wei.Amount
	consumed wei.Amount
	payouts  []payout
}

type payout struct {
	to     types.Address
	amount wei.Amount
}

// RefundEscrow returns part of the escrowed payment to the caller
// immediately and records it, so a later failure refunds only what the
// proxy still holds.
func (ctx *ApplyContext) RefundEscrow(amount wei.Amount) error {
	if err := ctx.Native.SendNative(ctx.Config.ProxyAddress, ctx.Caller, amount); err != nil {
		return err
	}
	ctx.refunded = ctx.refunded.Add(amount)
	return nil
}

// ConsumeEscrow records escrow the venue has taken. Consumed escrow is
// gone from the proxy and can never be refunded.
func (ctx *ApplyContext) ConsumeEscrow(amount wei.Amount) {
	ctx.consumed = ctx.consumed.Add(amount)
}

// EscrowRemaining returns the part of the escrowed payment the proxy
// still holds.
func (ctx *ApplyContext) EscrowRemaining() wei.Amount {
	return ctx.Payment.Sub(ctx.refunded).Sub(ctx.consumed)
}

// DeferPayout queues a proxy-to-recipient native send that the engine
// executes only after the overlay has committed. Venue calls fund these
// payouts, so nothing fallible runs between a venue call and commit.
func (ctx *ApplyContext) DeferPayout(to types.Address, amount wei.Amount) {
	if amount.IsPositive() {
		ctx.payouts = append(ctx.payouts, payout{to: to, amount: amount})
	}
}

// TouchSubject marks a subject whose share totals the engine must
// reconcile against market custody before committing.
func (ctx *ApplyContext) TouchSubject(subject types.Address) {
	if ctx.touched == nil {
		ctx.touched = make(map[types.Address]struct{})
	}
	ctx.touched[subject] = struct{}{}
}

// TouchedSubjects returns the subjects marked during apply.
func (ctx *ApplyContext) TouchedSubjects() []types.Address {
	subjects := make([]types.Address, 0, len(ctx.touched))
	for s := range ctx.touched {
		subjects = append(subjects, s)
	}
	return subjects
}
