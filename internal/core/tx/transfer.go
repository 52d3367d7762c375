package tx

import (
	"errors"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
)

// TransferShares moves the caller's internal shares of a subject to a
// destination holder. Market custody does not move.
type TransferShares struct {
	Common
	Subject     string `json:"Subject"`
	Destination string `json:"Destination"`
	Amount      uint64 `json:"Amount"`
}

func (t *TransferShares) TxType() Type { return TypeTransferShares }
func (t *TransferShares) GetCommon() *Common { return &t.Common }

func (t *TransferShares) Validate() error {
	if err := validateTypeName(t); err != nil {
		return err
	}
	if _, err := types.ParseAddress(t.Subject); err != nil {
		return validationErrorf(ResultBadAccount, "invalid Subject: %v", err)
	}
	if _, err := types.ParseAddress(t.Destination); err != nil {
		return validationErrorf(ResultBadAccount, "invalid Destination: %v", err)
	}
	return nil
}

func (t *TransferShares) Flatten() (map[string]any, error) {
	m := t.Common.ToMap()
	m["Subject"] = t.Subject
	m["Destination"] = t.Destination
	m["Amount"] = t.Amount
	return m, nil
}

func (t *TransferShares) Apply(ctx *ApplyContext) Result {
	subject := mustAddress(t.Subject)
	destination := mustAddress(t.Destination)
	ctx.TouchSubject(subject)

	if err := MoveShares(ctx.View, subject, ctx.Caller, destination, t.Amount); err != nil {
		if errors.Is(err, ErrUnderflow) {
			return ResultInsufficientBalance
		}
		return ResultInternal
	}
	return ResultApplied
}

// TransferSharesBatch moves the caller's shares to several destinations
// in one atomic operation. The subject, destination and amount arrays
// pair up by index and are applied in array order, so one batch can mix
// shares of different subjects; if any leg fails nothing moves.
type TransferSharesBatch struct {
	Common
	Subjects     []string `json:"Subjects"`
	Destinations []string `json:"Destinations"`
	Amounts      []uint64 `json:"Amounts"`
}

func (t *TransferSharesBatch) TxType() Type { return TypeTransferSharesBatch }
func (t *TransferSharesBatch) GetCommon() *Common { return &t.Common }

func (t *TransferSharesBatch) Validate() error {
	if err := validateTypeName(t); err != nil {
		return err
	}
	if len(t.Subjects) != len(t.Destinations) || len(t.Destinations) != len(t.Amounts) {
		return validationErrorf(ResultArityMismatch,
			"%d subjects against %d destinations against %d amounts",
			len(t.Subjects), len(t.Destinations), len(t.Amounts))
	}
	for _, subject := range t.Subjects {
		if _, err := types.ParseAddress(subject); err != nil {
			return validationErrorf(ResultBadAccount, "invalid subject %q: %v", subject, err)
		}
	}
	for _, destination := range t.Destinations {
		if _, err := types.ParseAddress(destination); err != nil {
			return validationErrorf(ResultBadAccount, "invalid destination %q: %v", destination, err)
		}
	}
	return nil
}

func (t *TransferSharesBatch) Flatten() (map[string]any, error) {
	m := t.Common.ToMap()
	m["Subjects"] = t.Subjects
	m["Destinations"] = t.Destinations
	m["Amounts"] = t.Amounts
	return m, nil
}

func (t *TransferSharesBatch) Apply(ctx *ApplyContext) Result {
	for i := range t.Subjects {
		subject := mustAddress(t.Subjects[i])
		ctx.TouchSubject(subject)
		if err := MoveShares(ctx.View, subject, ctx.Caller, mustAddress(t.Destinations[i]), t.Amounts[i]); err != nil {
			if errors.Is(err, ErrUnderflow) {
				return ResultInsufficientBalance
			}
			return ResultInternal
		}
	}
	return ResultApplied
}

// ApproveShares grants a spender the right to move up to Amount of the
// caller's shares of a subject. The grant is an absolute assignment:
// it replaces any prior allowance rather than adding to it.
type ApproveShares struct {
	Common
	Subject string `json:"Subject"`
	Spender string `json:"Spender"`
	Amount  uint64 `json:"Amount"`
}

func (t *ApproveShares) TxType() Type { return TypeApproveShares }
func (t *ApproveShares) GetCommon() *Common { return &t.Common }

func (t *ApproveShares) Validate() error {
	if err := validateTypeName(t); err != nil {
		return err
	}
	if _, err := types.ParseAddress(t.Subject); err != nil {
		return validationErrorf(ResultBadAccount, "invalid Subject: %v", err)
	}
	if _, err := types.ParseAddress(t.Spender); err != nil {
		return validationErrorf(ResultBadAccount, "invalid Spender: %v", err)
	}
	return nil
}

func (t *ApproveShares) Flatten() (map[string]any, error) {
	m := t.Common.ToMap()
	m["Subject"] = t.Subject
	m["Spender"] = t.Spender
	m["Amount"] = t.Amount
	return m, nil
}

func (t *ApproveShares) Apply(ctx *ApplyContext) Result {
	subject := mustAddress(t.Subject)
	spender := mustAddress(t.Spender)

	if err := WriteAllowance(ctx.View, subject, ctx.Caller, spender, t.Amount); err != nil {
		return ResultInternal
	}
	return ResultApplied
}

// TransferSharesFrom moves an owner's shares to a destination on the
// strength of a prior allowance granted to the caller. The allowance
// is checked before the balance and shrinks by the amount moved.
type TransferSharesFrom struct {
	Common
	Subject     string `json:"Subject"`
	Owner       string `json:"Owner"`
	Destination string `json:"Destination"`
	Amount      uint64 `json:"Amount"`
}

func (t *TransferSharesFrom) TxType() Type { return TypeTransferSharesFrom }
func (t *TransferSharesFrom) GetCommon() *Common { return &t.Common }

func (t *TransferSharesFrom) Validate() error {
	if err := validateTypeName(t); err != nil {
		return err
	}
	if _, err := types.ParseAddress(t.Subject); err != nil {
		return validationErrorf(ResultBadAccount, "invalid Subject: %v", err)
	}
	if _, err := types.ParseAddress(t.Owner); err != nil {
		return validationErrorf(ResultBadAccount, "invalid Owner: %v", err)
	}
	if _, err := types.ParseAddress(t.Destination); err != nil {
		return validationErrorf(ResultBadAccount, "invalid Destination: %v", err)
	}
	return nil
}

func (t *TransferSharesFrom) Flatten() (map[string]any, error) {
	m := t.Common.ToMap()
	m["Subject"] = t.Subject
	m["Owner"] = t.Owner
	m["Destination"] = t.Destination
	m["Amount"] = t.Amount
	return m, nil
}

func (t *TransferSharesFrom) Apply(ctx *ApplyContext) Result {
	subject := mustAddress(t.Subject)
	owner := mustAddress(t.Owner)
	destination := mustAddress(t.Destination)
	ctx.TouchSubject(subject)

	allowance, err := ReadAllowance(ctx.View, subject, owner, ctx.Caller)
	if err != nil {
		return ResultInternal
	}
	if allowance < t.Amount {
		return ResultInsufficientApproval
	}
	if err := WriteAllowance(ctx.View, subject, owner, ctx.Caller, allowance-t.Amount); err != nil {
		return ResultInternal
	}
	if err := MoveShares(ctx.View, subject, owner, destination, t.Amount); err != nil {
		if errors.Is(err, ErrUnderflow) {
			return ResultInsufficientBalance
		}
		return ResultInternal
	}
	return ResultApplied
}

// mustAddress parses an address already checked by Validate.
func mustAddress(s string) types.Address {
	address, err := types.ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return address
}

// validateTypeName rejects a transaction whose declared type name does
// not match its concrete type.
func validateTypeName(transaction Transaction) error {
	name := transaction.GetCommon().TransactionType
	if name != transaction.TxType().String() {
		return validationErrorf(ResultMalformed, "TransactionType %q does not match %s", name, transaction.TxType())
	}
	return nil
}
