package keylet

import (
	"encoding/binary"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/entry"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	crypto "github.com/Manifold-MEV/friendtech-presale/internal/crypto/common"
)

// Space identifiers for keylet generation. Each entry family hashes
// under its own namespace so keys cannot collide across types.
const (
	spaceBalance      uint16 = 'b' // Share balance
	spaceAllowance    uint16 = 'a' // Delegated spend approval
	spaceSubjectRoot  uint16 = 's' // Per-subject aggregate
	spacePresale      uint16 = 'p' // Presale configuration
	spaceWhitelist    uint16 = 'w' // Presale allocation cap
	spaceContribution uint16 = 'c' // Accepted contribution
	spaceContribLog   uint16 = 'l' // Ordered contribution ledger
	spaceProceeds     uint16 = 'P' // Presale proceeds
)

// Keylet represents an addressable location in the ledger state.
// It combines a type identifier with a 256-bit key.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
}

// indexHash computes a keylet key by hashing the space and provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	spaceBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(spaceBytes, space)

	inputs := make([][]byte, 0, len(data)+1)
	inputs = append(inputs, spaceBytes)
	inputs = append(inputs, data...)

	return crypto.Sha512Half(inputs...)
}

// Balance returns the keylet for a holder's share balance of a subject.
func Balance(subject, holder types.Address) Keylet {
	return Keylet{
		Type: entry.TypeBalance,
		Key:  indexHash(spaceBalance, subject[:], holder[:]),
	}
}

// Allowance returns the keylet for an owner-to-spender approval on a
// subject's shares.
func Allowance(subject, owner, spender types.Address) Keylet {
	return Keylet{
		Type: entry.TypeAllowance,
		Key:  indexHash(spaceAllowance, subject[:], owner[:], spender[:]),
	}
}

// SubjectRoot returns the keylet for a subject's aggregate entry.
func SubjectRoot(subject types.Address) Keylet {
	return Keylet{
		Type: entry.TypeSubjectRoot,
		Key:  indexHash(spaceSubjectRoot, subject[:]),
	}
}

// PresaleConfig returns the keylet for a subject's presale price entry.
func PresaleConfig(subject types.Address) Keylet {
	return Keylet{
		Type: entry.TypePresaleConfig,
		Key:  indexHash(spacePresale, subject[:]),
	}
}

// Whitelist returns the keylet for an account's allocation cap in a
// subject's presale.
func Whitelist(subject, account types.Address) Keylet {
	return Keylet{
		Type: entry.TypeWhitelist,
		Key:  indexHash(spaceWhitelist, subject[:], account[:]),
	}
}

// Contribution returns the keylet for an account's accepted
// contribution to a subject's presale.
func Contribution(subject, account types.Address) Keylet {
	return Keylet{
		Type: entry.TypeContribution,
		Key:  indexHash(spaceContribution, subject[:], account[:]),
	}
}

// ContributionLog returns the keylet for a subject's ordered
// contribution ledger.
func ContributionLog(subject types.Address) Keylet {
	return Keylet{
		Type: entry.TypeContributionLog,
		Key:  indexHash(spaceContribLog, subject[:]),
	}
}

// Proceeds returns the keylet for a subject's accumulated presale
// proceeds.
func Proceeds(subject types.Address) Keylet {
	return Keylet{
		Type: entry.TypeProceeds,
		Key:  indexHash(spaceProceeds, subject[:]),
	}
}
