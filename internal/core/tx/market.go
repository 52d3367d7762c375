package tx

import (
	"errors"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
)

// SnipeShares buys the caller's own shares at the venue and books them
// internally to the caller. The attached payment covers the quoted
// venue price; anything above the quote comes back to the caller.
type SnipeShares struct {
	Common
	Amount uint64 `json:"Amount"`
}

func (t *SnipeShares) TxType() Type { return TypeSnipeShares }
func (t *SnipeShares) GetCommon() *Common { return &t.Common }

func (t *SnipeShares) Validate() error {
	if err := validateTypeName(t); err != nil {
		return err
	}
	if t.Amount == 0 {
		return validationErrorf(ResultBadAmount, "Amount must be positive")
	}
	return nil
}

func (t *SnipeShares) Flatten() (map[string]any, error) {
	m := t.Common.ToMap()
	m["Amount"] = t.Amount
	return m, nil
}

func (t *SnipeShares) Apply(ctx *ApplyContext) Result {
	subject := ctx.Caller
	ctx.TouchSubject(subject)
	return buyAndCredit(ctx, subject, ctx.Caller, t.Amount)
}

// BuyShares buys a subject's shares at the venue and books them
// internally to a destination holder.
type BuyShares struct {
	Common
	Subject     string `json:"Subject"`
	Destination string `json:"Destination"`
	Amount      uint64 `json:"Amount"`
}

func (t *BuyShares) TxType() Type { return TypeBuyShares }
func (t *BuyShares) GetCommon() *Common { return &t.Common }

func (t *BuyShares) Validate() error {
	if err := validateTypeName(t); err != nil {
		return err
	}
	if _, err := types.ParseAddress(t.Subject); err != nil {
		return validationErrorf(ResultBadAccount, "invalid Subject: %v", err)
	}
	if _, err := types.ParseAddress(t.Destination); err != nil {
		return validationErrorf(ResultBadAccount, "invalid Destination: %v", err)
	}
	if t.Amount == 0 {
		return validationErrorf(ResultBadAmount, "Amount must be positive")
	}
	return nil
}

func (t *BuyShares) Flatten() (map[string]any, error) {
	m := t.Common.ToMap()
	m["Subject"] = t.Subject
	m["Destination"] = t.Destination
	m["Amount"] = t.Amount
	return m, nil
}

func (t *BuyShares) Apply(ctx *ApplyContext) Result {
	subject := mustAddress(t.Subject)
	destination := mustAddress(t.Destination)
	ctx.TouchSubject(subject)
	return buyAndCredit(ctx, subject, destination, t.Amount)
}

// buyAndCredit runs the shared buy path: quote, credit the holder on
// the overlay, return the surplus to the caller and only then pay the
// venue from what remains of the escrow. The venue call comes last so
// that every step that can fail still finds the escrow intact.
func buyAndCredit(ctx *ApplyContext, subject, holder types.Address, amount uint64) Result {
	quote, err := ctx.Market.QuoteBuy(subject, amount)
	if err != nil {
		return ResultMarketCallFailed
	}
	if ctx.Payment.Less(quote) {
		return ResultInsufficientPayment
	}
	if err := CreditShares(ctx.View, subject, holder, amount); err != nil {
		return ResultInternal
	}
	surplus := ctx.Payment.Sub(quote)
	if surplus.IsPositive() {
		if err := ctx.RefundEscrow(surplus); err != nil {
			return ResultInsufficientFunds
		}
	}
	if err := ctx.Market.Buy(subject, ctx.Config.ProxyAddress, amount, quote); err != nil {
		return ResultMarketCallFailed
	}
	ctx.ConsumeEscrow(quote)
	return ResultApplied
}

// SellShares debits the caller's internal shares, sells them at the
// venue and forwards the sale proceeds to the caller. The internal
// debit happens before the venue call so the books can never show
// shares the venue no longer custodies, and the proceeds payout is
// deferred until after commit so no fallible step follows the sale.
type SellShares struct {
	Common
	Subject string `json:"Subject"`
	Amount  uint64 `json:"Amount"`
}

func (t *SellShares) TxType() Type { return TypeSellShares }
func (t *SellShares) GetCommon() *Common { return &t.Common }

func (t *SellShares) Validate() error {
	if err := validateTypeName(t); err != nil {
		return err
	}
	if _, err := types.ParseAddress(t.Subject); err != nil {
		return validationErrorf(ResultBadAccount, "invalid Subject: %v", err)
	}
	if t.Amount == 0 {
		return validationErrorf(ResultBadAmount, "Amount must be positive")
	}
	return nil
}

func (t *SellShares) Flatten() (map[string]any, error) {
	m := t.Common.ToMap()
	m["Subject"] = t.Subject
	m["Amount"] = t.Amount
	return m, nil
}

func (t *SellShares) Apply(ctx *ApplyContext) Result {
	subject := mustAddress(t.Subject)
	ctx.TouchSubject(subject)

	if err := DebitShares(ctx.View, subject, ctx.Caller, t.Amount); err != nil {
		if errors.Is(err, ErrUnderflow) {
			return ResultInsufficientBalance
		}
		return ResultInternal
	}
	proceeds, err := ctx.Market.Sell(subject, ctx.Config.ProxyAddress, t.Amount)
	if err != nil {
		return ResultMarketCallFailed
	}
	ctx.DeferPayout(ctx.Caller, proceeds)
	return ResultApplied
}
