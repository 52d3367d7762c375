package entry

import (
	"errors"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
)

// Balance records the internal share holding of one holder for one
// subject. A zero amount is a valid resting state, not a deletion.
type Balance struct {
	Subject types.Address
	Holder  types.Address
	Amount  uint64
}

func (b *Balance) Type() Type {
	return TypeBalance
}

func (b *Balance) Validate() error {
	if b.Subject.IsZero() {
		return errors.New("subject address is required")
	}
	if b.Holder.IsZero() {
		return errors.New("holder address is required")
	}
	return nil
}

// Allowance records how many of an owner's shares a spender may move
// on the owner's behalf. Set by absolute assignment, consumed by
// successful delegated transfers.
type Allowance struct {
	Subject types.Address
	Owner   types.Address
	Spender types.Address
	Amount  uint64
}

func (a *Allowance) Type() Type {
	return TypeAllowance
}

func (a *Allowance) Validate() error {
	if a.Subject.IsZero() {
		return errors.New("subject address is required")
	}
	if a.Owner.IsZero() {
		return errors.New("owner address is required")
	}
	if a.Spender.IsZero() {
		return errors.New("spender address is required")
	}
	return nil
}

// SubjectRoot aggregates per-subject bookkeeping. TotalShares is the
// sum of all internal Balance entries for the subject and must never
// exceed the shares custodied at the market for this subject.
type SubjectRoot struct {
	Subject     types.Address
	TotalShares uint64
}

func (s *SubjectRoot) Type() Type {
	return TypeSubjectRoot
}

func (s *SubjectRoot) Validate() error {
	if s.Subject.IsZero() {
		return errors.New("subject address is required")
	}
	return nil
}
