package tx

import (
	"errors"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
)

// SetKeyPrice sets the presale unit price for the caller's own
// presale. The price in force when a contribution arrives governs that
// contribution; later changes do not reprice accepted entries.
type SetKeyPrice struct {
	Common
	KeyPrice string `json:"KeyPrice"`
}

func (t *SetKeyPrice) TxType() Type { return TypeSetKeyPrice }
func (t *SetKeyPrice) GetCommon() *Common { return &t.Common }

func (t *SetKeyPrice) Validate() error {
	if err := validateTypeName(t); err != nil {
		return err
	}
	price, err := wei.Parse(t.KeyPrice)
	if err != nil {
		return validationErrorf(ResultBadAmount, "invalid KeyPrice: %v", err)
	}
	if price.IsNegative() {
		return validationErrorf(ResultBadAmount, "KeyPrice cannot be negative")
	}
	return nil
}

func (t *SetKeyPrice) Flatten() (map[string]any, error) {
	m := t.Common.ToMap()
	m["KeyPrice"] = t.KeyPrice
	return m, nil
}

func (t *SetKeyPrice) Apply(ctx *ApplyContext) Result {
	price, err := wei.Parse(t.KeyPrice)
	if err != nil {
		return ResultBadAmount
	}
	if err := WriteKeyPrice(ctx.View, ctx.Caller, price); err != nil {
		return ResultInternal
	}
	return ResultApplied
}

// SetWhitelist grants an account a presale allocation cap for the
// caller's presale. Setting a cap of zero revokes eligibility.
type SetWhitelist struct {
	Common
	Account string `json:"WhitelistAccount"`
	Cap     uint64 `json:"Cap"`
}

func (t *SetWhitelist) TxType() Type { return TypeSetWhitelist }
func (t *SetWhitelist) GetCommon() *Common { return &t.Common }

func (t *SetWhitelist) Validate() error {
	if err := validateTypeName(t); err != nil {
		return err
	}
	if _, err := types.ParseAddress(t.Account); err != nil {
		return validationErrorf(ResultBadAccount, "invalid WhitelistAccount: %v", err)
	}
	return nil
}

func (t *SetWhitelist) Flatten() (map[string]any, error) {
	m := t.Common.ToMap()
	m["WhitelistAccount"] = t.Account
	m["Cap"] = t.Cap
	return m, nil
}

func (t *SetWhitelist) Apply(ctx *ApplyContext) Result {
	account := mustAddress(t.Account)
	if err := WriteWhitelistCap(ctx.View, ctx.Caller, account, t.Cap); err != nil {
		return ResultInternal
	}
	return ResultApplied
}

// ContributePresale buys presale units on the strength of the caller's
// whitelist entry. A nonzero cap makes the caller eligible but does not
// bound the contribution size; the cap is single use and zeroes on
// acceptance. The full attached payment, surplus included, goes to the
// subject's proceeds.
type ContributePresale struct {
	Common
	Subject string `json:"Subject"`
	Units   uint64 `json:"Units"`
}

func (t *ContributePresale) TxType() Type { return TypeContributePresale }
func (t *ContributePresale) GetCommon() *Common { return &t.Common }

func (t *ContributePresale) Validate() error {
	if err := validateTypeName(t); err != nil {
		return err
	}
	if _, err := types.ParseAddress(t.Subject); err != nil {
		return validationErrorf(ResultBadAccount, "invalid Subject: %v", err)
	}
	if t.Units == 0 {
		return validationErrorf(ResultBadAmount, "Units must be positive")
	}
	return nil
}

func (t *ContributePresale) Flatten() (map[string]any, error) {
	m := t.Common.ToMap()
	m["Subject"] = t.Subject
	m["Units"] = t.Units
	return m, nil
}

func (t *ContributePresale) Apply(ctx *ApplyContext) Result {
	subject := mustAddress(t.Subject)

	cap, err := ReadWhitelistCap(ctx.View, subject, ctx.Caller)
	if err != nil {
		return ResultInternal
	}
	if cap == 0 {
		return ResultNotWhitelisted
	}

	price, err := ReadKeyPrice(ctx.View, subject)
	if err != nil {
		return ResultInternal
	}
	required := price.Mul(int64(t.Units))
	if ctx.Payment.Less(required) {
		return ResultInsufficientPayment
	}

	if err := WriteWhitelistCap(ctx.View, subject, ctx.Caller, 0); err != nil {
		return ResultInternal
	}
	if err := AddContribution(ctx.View, subject, ctx.Caller, t.Units); err != nil {
		return ResultInternal
	}
	if err := AppendContribution(ctx.View, subject, ctx.Caller, t.Units); err != nil {
		return ResultInternal
	}
	if err := AddProceeds(ctx.View, subject, ctx.Payment); err != nil {
		return ResultInternal
	}
	return ResultApplied
}

// SettleContributors replays the subject's contribution log in arrival
// order, moving each contributor's units out of the subject's own
// internal balance. Either every entry settles or none does. Once
// settled the log is cleared, so a repeat settlement finds nothing and
// succeeds without effect.
type SettleContributors struct {
	Common
	Subject string `json:"Subject"`
}

func (t *SettleContributors) TxType() Type { return TypeSettleContributors }
func (t *SettleContributors) GetCommon() *Common { return &t.Common }

func (t *SettleContributors) Validate() error {
	if err := validateTypeName(t); err != nil {
		return err
	}
	if _, err := types.ParseAddress(t.Subject); err != nil {
		return validationErrorf(ResultBadAccount, "invalid Subject: %v", err)
	}
	return nil
}

func (t *SettleContributors) Flatten() (map[string]any, error) {
	m := t.Common.ToMap()
	m["Subject"] = t.Subject
	return m, nil
}

func (t *SettleContributors) Apply(ctx *ApplyContext) Result {
	subject := mustAddress(t.Subject)
	if subject != ctx.Caller {
		return ResultNotAuthorized
	}
	ctx.TouchSubject(subject)

	records, err := ReadContributionLog(ctx.View, subject)
	if err != nil {
		return ResultInternal
	}
	for _, record := range records {
		if err := MoveShares(ctx.View, subject, subject, record.Account, record.Units); err != nil {
			if errors.Is(err, ErrUnderflow) {
				return ResultInsufficientBalance
			}
			return ResultInternal
		}
	}
	if err := ClearContributionLog(ctx.View, subject); err != nil {
		return ResultInternal
	}
	return ResultApplied
}

// ClaimProceeds pays out the caller's accumulated presale proceeds.
// The owed amount is zeroed before the native send, so a failed send
// discards the zeroing along with everything else.
type ClaimProceeds struct {
	Common
	Subject string `json:"Subject"`
}

func (t *ClaimProceeds) TxType() Type { return TypeClaimProceeds }
func (t *ClaimProceeds) GetCommon() *Common { return &t.Common }

func (t *ClaimProceeds) Validate() error {
	if err := validateTypeName(t); err != nil {
		return err
	}
	if _, err := types.ParseAddress(t.Subject); err != nil {
		return validationErrorf(ResultBadAccount, "invalid Subject: %v", err)
	}
	return nil
}

func (t *ClaimProceeds) Flatten() (map[string]any, error) {
	m := t.Common.ToMap()
	m["Subject"] = t.Subject
	return m, nil
}

func (t *ClaimProceeds) Apply(ctx *ApplyContext) Result {
	subject := mustAddress(t.Subject)
	if subject != ctx.Caller {
		return ResultNotAuthorized
	}

	owed, err := ReadProceeds(ctx.View, subject)
	if err != nil {
		return ResultInternal
	}
	if owed.IsZero() {
		return ResultApplied
	}
	if err := ZeroProceeds(ctx.View, subject); err != nil {
		return ResultInternal
	}
	if err := ctx.Native.SendNative(ctx.Config.ProxyAddress, subject, owed); err != nil {
		return ResultInsufficientFunds
	}
	return ResultApplied
}
