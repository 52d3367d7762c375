package entry

import (
	"fmt"
)

// Type represents a ledger entry type.
type Type uint16

// All known ledger entry types.
const (
	// Share accounting
	TypeBalance     Type = 0x0042 // Internal share balance of one holder
	TypeAllowance   Type = 0x0041 // Delegated spend approval
	TypeSubjectRoot Type = 0x0053 // Per-subject aggregate bookkeeping

	// Presale bookkeeping
	TypePresaleConfig   Type = 0x0050 // Per-subject presale unit price
	TypeWhitelist       Type = 0x0057 // Per-account allocation cap
	TypeContribution    Type = 0x0043 // Accepted contribution of one account
	TypeContributionLog Type = 0x004c // Ordered contribution ledger (per subject)
	TypeProceeds        Type = 0x0044 // Native currency owed to the subject
)

// String returns the string representation of the Type.
func (t Type) String() string {
	switch t {
	case TypeBalance:
		return "Balance"
	case TypeAllowance:
		return "Allowance"
	case TypeSubjectRoot:
		return "SubjectRoot"
	case TypePresaleConfig:
		return "PresaleConfig"
	case TypeWhitelist:
		return "Whitelist"
	case TypeContribution:
		return "Contribution"
	case TypeContributionLog:
		return "ContributionLog"
	case TypeProceeds:
		return "Proceeds"
	default:
		return fmt.Sprintf("Unknown(%#x)", uint16(t))
	}
}

// Entry defines the interface for all ledger entries.
type Entry interface {
	Type() Type
	Validate() error
}
