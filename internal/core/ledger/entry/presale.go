package entry

import (
	"errors"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
)

// PresaleConfig holds the presale unit price set by a subject. The
// subject may change the price at any time; the price in effect when
// a contribution is accepted is the one that governs it.
type PresaleConfig struct {
	Subject  types.Address
	KeyPrice wei.Amount
}

func (p *PresaleConfig) Type() Type {
	return TypePresaleConfig
}

func (p *PresaleConfig) Validate() error {
	if p.Subject.IsZero() {
		return errors.New("subject address is required")
	}
	if p.KeyPrice.IsNegative() {
		return errors.New("key price cannot be negative")
	}
	return nil
}

// Whitelist records the presale allocation cap granted by a subject to
// one account. A cap of zero means not eligible. The cap is zeroed the
// moment the account's contribution is accepted.
type Whitelist struct {
	Subject types.Address
	Account types.Address
	Cap     uint64
}

func (w *Whitelist) Type() Type {
	return TypeWhitelist
}

func (w *Whitelist) Validate() error {
	if w.Subject.IsZero() {
		return errors.New("subject address is required")
	}
	if w.Account.IsZero() {
		return errors.New("account address is required")
	}
	return nil
}

// Contribution records the accepted presale units of one account.
type Contribution struct {
	Subject types.Address
	Account types.Address
	Units   uint64
}

func (c *Contribution) Type() Type {
	return TypeContribution
}

func (c *Contribution) Validate() error {
	if c.Subject.IsZero() {
		return errors.New("subject address is required")
	}
	if c.Account.IsZero() {
		return errors.New("account address is required")
	}
	return nil
}

// ContributionRecord is one accepted contribution in arrival order.
type ContributionRecord struct {
	Account types.Address
	Units   uint64
}

// ContributionLog is the insertion-ordered contribution ledger for one
// subject. Append-only until settlement replays and clears it.
type ContributionLog struct {
	Subject types.Address
	Records []ContributionRecord
}

func (l *ContributionLog) Type() Type {
	return TypeContributionLog
}

func (l *ContributionLog) Validate() error {
	if l.Subject.IsZero() {
		return errors.New("subject address is required")
	}
	for _, r := range l.Records {
		if r.Account.IsZero() {
			return errors.New("contribution record account is required")
		}
	}
	return nil
}

// Proceeds accumulates the native currency collected from presale
// contributions for one subject, owed until claimed.
type Proceeds struct {
	Subject types.Address
	Amount  wei.Amount
}

func (p *Proceeds) Type() Type {
	return TypeProceeds
}

func (p *Proceeds) Validate() error {
	if p.Subject.IsZero() {
		return errors.New("subject address is required")
	}
	if p.Amount.IsNegative() {
		return errors.New("proceeds cannot be negative")
	}
	return nil
}
