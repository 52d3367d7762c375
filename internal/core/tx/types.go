package tx

import "fmt"

// Type represents a transaction type code.
type Type uint16

// All transaction type codes.
const (
	TypeInvalid Type = 0xFFFF

	// Market gateway
	TypeSnipeShares Type = 1
	TypeBuyShares   Type = 2
	TypeSellShares  Type = 3

	// Transfer engine
	TypeTransferShares      Type = 4
	TypeTransferSharesBatch Type = 5
	TypeApproveShares       Type = 6
	TypeTransferSharesFrom  Type = 7

	// Presale engine
	TypeSetKeyPrice        Type = 8
	TypeSetWhitelist       Type = 9
	TypeContributePresale  Type = 10
	TypeSettleContributors Type = 11
	TypeClaimProceeds      Type = 12
)

var typeNames = map[Type]string{
	TypeSnipeShares:         "SnipeShares",
	TypeBuyShares:           "BuyShares",
	TypeSellShares:          "SellShares",
	TypeTransferShares:      "TransferShares",
	TypeTransferSharesBatch: "TransferSharesBatch",
	TypeApproveShares:       "ApproveShares",
	TypeTransferSharesFrom:  "TransferSharesFrom",
	TypeSetKeyPrice:         "SetKeyPrice",
	TypeSetWhitelist:        "SetWhitelist",
	TypeContributePresale:   "ContributePresale",
	TypeSettleContributors:  "SettleContributors",
	TypeClaimProceeds:       "ClaimProceeds",
}

var namesToType = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

// String returns the wire name of the transaction type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint16(t))
}

// TypeFromName resolves a wire name to its transaction type.
func TypeFromName(name string) (Type, bool) {
	t, ok := namesToType[name]
	return t, ok
}

// SupportedTypes returns all supported transaction types.
func SupportedTypes() []Type {
	return []Type{
		TypeSnipeShares,
		TypeBuyShares,
		TypeSellShares,
		TypeTransferShares,
		TypeTransferSharesBatch,
		TypeApproveShares,
		TypeTransferSharesFrom,
		TypeSetKeyPrice,
		TypeSetWhitelist,
		TypeContributePresale,
		TypeSettleContributors,
		TypeClaimProceeds,
	}
}
