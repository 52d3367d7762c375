package tx

import (
	"encoding/json"
	"fmt"
)

// NewFromType creates an empty transaction of the given type.
func NewFromType(typ Type) (Transaction, error) {
	switch typ {
	case TypeSnipeShares:
		return &SnipeShares{}, nil
	case TypeBuyShares:
		return &BuyShares{}, nil
	case TypeSellShares:
		return &SellShares{}, nil
	case TypeTransferShares:
		return &TransferShares{}, nil
	case TypeTransferSharesBatch:
		return &TransferSharesBatch{}, nil
	case TypeApproveShares:
		return &ApproveShares{}, nil
	case TypeTransferSharesFrom:
		return &TransferSharesFrom{}, nil
	case TypeSetKeyPrice:
		return &SetKeyPrice{}, nil
	case TypeSetWhitelist:
		return &SetWhitelist{}, nil
	case TypeContributePresale:
		return &ContributePresale{}, nil
	case TypeSettleContributors:
		return &SettleContributors{}, nil
	case TypeClaimProceeds:
		return &ClaimProceeds{}, nil
	default:
		return nil, fmt.Errorf("unknown transaction type: %d", typ)
	}
}

// FromJSON parses a transaction from its JSON representation. The
// original bytes are retained on the transaction for hashing.
func FromJSON(data []byte) (Transaction, error) {
	var probe struct {
		TransactionType string `json:"TransactionType"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse transaction: %w", err)
	}
	if probe.TransactionType == "" {
		return nil, fmt.Errorf("parse transaction: missing TransactionType")
	}
	typ, ok := TypeFromName(probe.TransactionType)
	if !ok {
		return nil, fmt.Errorf("unknown transaction type: %s", probe.TransactionType)
	}
	transaction, err := NewFromType(typ)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, transaction); err != nil {
		return nil, fmt.Errorf("parse %s: %w", probe.TransactionType, err)
	}
	transaction.GetCommon().SetRawBytes(data)
	return transaction, nil
}

// ToJSON serializes a transaction to canonical sorted-key JSON.
func ToJSON(transaction Transaction) ([]byte, error) {
	fields, err := transaction.Flatten()
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}
