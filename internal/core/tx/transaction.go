package tx

import (
	"errors"
	"fmt"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
)

// Common errors surfaced by transaction validation. Each carries the
// Result code preflight reports for it.
var (
	ErrBadAccount    = &ValidationError{Code: ResultBadAccount, Reason: "invalid account address"}
	ErrBadAmount     = &ValidationError{Code: ResultBadAmount, Reason: "invalid amount"}
	ErrArityMismatch = &ValidationError{Code: ResultArityMismatch, Reason: "parallel arrays must have equal length"}
	ErrMalformed     = &ValidationError{Code: ResultMalformed, Reason: "ill-formed transaction"}
)

// ValidationError couples a malformed-band result code with a reason.
type ValidationError struct {
	Code   Result
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func validationErrorf(code Result, format string, args ...any) error {
	return &ValidationError{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// resultFromValidationError maps a Validate() error to a result code.
func resultFromValidationError(err error) Result {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ResultMalformed
}

// Transaction is the interface that all transaction types must implement.
type Transaction interface {
	// TxType returns the transaction type
	TxType() Type

	// GetCommon returns the common transaction fields
	GetCommon() *Common

	// Validate checks if the transaction is well-formed
	Validate() error

	// Flatten returns a flat map of all transaction fields for
	// serialization and hashing
	Flatten() (map[string]any, error)
}

// Appliable is implemented by transaction types that apply themselves
// to ledger state. All concrete types implement it; the engine never
// switches on transaction type.
type Appliable interface {
	Apply(ctx *ApplyContext) Result
}

// Common contains fields common to all transaction types.
type Common struct {
	// Required fields
	Account         string `json:"Account"`
	TransactionType string `json:"TransactionType"`

	// Payment is the native currency attached to the operation, in
	// wei. Omitted or empty means zero.
	Payment string `json:"Payment,omitempty"`

	// Signature fields
	SigningPubKey string `json:"SigningPubKey,omitempty"`
	TxnSignature  string `json:"TxnSignature,omitempty"`

	// RawBytes stores the original serialized bytes for hash computation
	RawBytes []byte `json:"-"`
}

// Validate validates the common fields.
func (c *Common) Validate() error {
	if c.Account == "" {
		return validationErrorf(ResultBadAccount, "Account is required")
	}
	if c.TransactionType == "" {
		return validationErrorf(ResultMalformed, "TransactionType is required")
	}
	if _, err := types.ParseAddress(c.Account); err != nil {
		return validationErrorf(ResultBadAccount, "%v", err)
	}
	if _, err := c.PaymentAmount(); err != nil {
		return validationErrorf(ResultBadAmount, "%v", err)
	}
	return nil
}

// CallerAddress returns the parsed account address.
func (c *Common) CallerAddress() (types.Address, error) {
	return types.ParseAddress(c.Account)
}

// PaymentAmount returns the attached native payment, zero if absent.
func (c *Common) PaymentAmount() (wei.Amount, error) {
	if c.Payment == "" {
		return wei.Zero(), nil
	}
	amount, err := wei.Parse(c.Payment)
	if err != nil {
		return wei.Zero(), err
	}
	if amount.IsNegative() {
		return wei.Zero(), fmt.Errorf("payment cannot be negative")
	}
	return amount, nil
}

// GetRawBytes returns the original serialized bytes.
func (c *Common) GetRawBytes() []byte {
	return c.RawBytes
}

// SetRawBytes stores the original serialized bytes.
func (c *Common) SetRawBytes(data []byte) {
	c.RawBytes = data
}

// ToMap converts common fields to a map.
func (c *Common) ToMap() map[string]any {
	m := map[string]any{
		"Account":         c.Account,
		"TransactionType": c.TransactionType,
	}
	if c.Payment != "" {
		m["Payment"] = c.Payment
	}
	if c.SigningPubKey != "" {
		m["SigningPubKey"] = c.SigningPubKey
	}
	if c.TxnSignature != "" {
		m["TxnSignature"] = c.TxnSignature
	}
	return m
}
