package tx

import "fmt"

// Result represents a transaction result code.
type Result int

// Result codes are grouped in bands by outcome class. Every operation
// is all-or-nothing: only ResultApplied commits ledger changes.
const (
	// Success
	ResultApplied Result = 0

	// Rejections against current ledger or market state (100-199)
	ResultInsufficientPayment  Result = 101
	ResultInsufficientBalance  Result = 102
	ResultInsufficientApproval Result = 103
	ResultNotWhitelisted       Result = 104
	ResultMarketCallFailed     Result = 105
	ResultInsufficientFunds    Result = 106
	ResultInvariantFailed      Result = 199

	// Internal errors (-199 to -100)
	ResultInternal Result = -199

	// Malformed submissions (-299 to -200)
	ResultMalformed     Result = -299
	ResultArityMismatch Result = -298
	ResultBadAmount     Result = -297
	ResultBadAccount    Result = -296
	ResultNotAuthorized Result = -295
	ResultBadSignature  Result = -294
	ResultUnknownType   Result = -293
)

// String returns the canonical code name for the result.
func (r Result) String() string {
	switch r {
	case ResultApplied:
		return "applied"
	case ResultInsufficientPayment:
		return "insufficientPayment"
	case ResultInsufficientBalance:
		return "insufficientBalance"
	case ResultInsufficientApproval:
		return "insufficientApproval"
	case ResultNotWhitelisted:
		return "notWhitelisted"
	case ResultMarketCallFailed:
		return "marketCallFailed"
	case ResultInsufficientFunds:
		return "insufficientFunds"
	case ResultInvariantFailed:
		return "invariantFailed"
	case ResultInternal:
		return "internal"
	case ResultMalformed:
		return "malformed"
	case ResultArityMismatch:
		return "arityMismatch"
	case ResultBadAmount:
		return "badAmount"
	case ResultBadAccount:
		return "badAccount"
	case ResultNotAuthorized:
		return "notAuthorized"
	case ResultBadSignature:
		return "badSignature"
	case ResultUnknownType:
		return "unknownType"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// IsSuccess returns true if the result indicates success.
func (r Result) IsSuccess() bool {
	return r == ResultApplied
}

// IsApplied returns true if the transaction was applied to the ledger.
// Unlike venues that claim fees on rejection, every failure here rolls
// back completely, so only successful transactions apply.
func (r Result) IsApplied() bool {
	return r.IsSuccess()
}

// IsRejection returns true for operations rejected against current
// ledger or market state. Resubmitting after state changes may succeed.
func (r Result) IsRejection() bool {
	return r >= 100 && r < 200
}

// IsMalformed returns true for submissions that can never succeed as
// formed, regardless of ledger state.
func (r Result) IsMalformed() bool {
	return r >= -299 && r <= -200
}

// IsInternal returns true for engine-internal failures.
func (r Result) IsInternal() bool {
	return r >= -199 && r <= -100
}

// Message returns a human-readable message for the result.
func (r Result) Message() string {
	switch r {
	case ResultApplied:
		return "The transaction was applied."
	case ResultInsufficientPayment:
		return "Not enough ETH received."
	case ResultInsufficientBalance:
		return "Not enough shares to transfer."
	case ResultInsufficientApproval:
		return "Allowance is below the requested transfer."
	case ResultNotWhitelisted:
		return "Caller has no presale allocation for this subject."
	case ResultMarketCallFailed:
		return "The market rejected the requested trade."
	case ResultInsufficientFunds:
		return "Insufficient native funds to complete the operation."
	case ResultInvariantFailed:
		return "Internal balances would exceed custodied supply."
	case ResultInternal:
		return "An internal error occurred while applying the transaction."
	case ResultMalformed:
		return "The transaction is ill-formed."
	case ResultArityMismatch:
		return "Parallel arrays must have equal length."
	case ResultBadAmount:
		return "Invalid amount."
	case ResultBadAccount:
		return "Invalid account address."
	case ResultNotAuthorized:
		return "Caller is not authorized for this operation."
	case ResultBadSignature:
		return "Invalid signature."
	case ResultUnknownType:
		return "Unknown transaction type."
	default:
		return r.String()
	}
}
