package tx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/tx"
)

func TestFromJSON(t *testing.T) {
	raw := []byte(`{
		"TransactionType": "BuyShares",
		"Account": "0x0202020202020202020202020202020202020202",
		"Subject": "0x0101010101010101010101010101010101010101",
		"Destination": "0x0303030303030303030303030303030303030303",
		"Amount": 5,
		"Payment": "1000000000000000"
	}`)

	parsed, err := tx.FromJSON(raw)
	require.NoError(t, err)

	buy, ok := parsed.(*tx.BuyShares)
	require.True(t, ok)
	require.Equal(t, tx.TypeBuyShares, buy.TxType())
	require.Equal(t, uint64(5), buy.Amount)
	require.NoError(t, buy.Validate())

	payment, err := buy.PaymentAmount()
	require.NoError(t, err)
	require.Equal(t, "1000000000000000", payment.String())

	// The original bytes feed the transaction hash.
	hash1, err := tx.TxHash(parsed)
	require.NoError(t, err)
	reparsed, err := tx.FromJSON(raw)
	require.NoError(t, err)
	hash2, err := tx.TxHash(reparsed)
	require.NoError(t, err)
	require.Equal(t, hash1, hash2)
}

func TestFromJSONUnknownType(t *testing.T) {
	_, err := tx.FromJSON([]byte(`{"TransactionType": "MintShares", "Account": "0x0202020202020202020202020202020202020202"}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown transaction type")
}

func TestToJSONRoundTrip(t *testing.T) {
	original := &tx.TransferShares{
		Common: tx.Common{
			Account:         "0x0202020202020202020202020202020202020202",
			TransactionType: "TransferShares",
		},
		Subject:     "0x0101010101010101010101010101010101010101",
		Destination: "0x0303030303030303030303030303030303030303",
		Amount:      7,
	}

	data, err := tx.ToJSON(original)
	require.NoError(t, err)

	parsed, err := tx.FromJSON(data)
	require.NoError(t, err)
	transfer, ok := parsed.(*tx.TransferShares)
	require.True(t, ok)
	require.Equal(t, original.Subject, transfer.Subject)
	require.Equal(t, original.Destination, transfer.Destination)
	require.Equal(t, original.Amount, transfer.Amount)
}
