package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/market"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/tx"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
	"github.com/Manifold-MEV/friendtech-presale/internal/storage/history"
)

func addr(b byte) types.Address {
	var a types.Address
	for i := range a {
		a[i] = b
	}
	return a
}

func newTestService(t *testing.T) (*Service, *market.Standalone) {
	t.Helper()
	store, err := history.Open(history.DefaultConfig(filepath.Join(t.TempDir(), "history.db")))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	venue := market.NewStandalone(addr(0xfe))
	svc := New(ledger.NewInMemory(), venue, venue, Config{
		Standalone:                true,
		SkipSignatureVerification: true,
		ProxyAddress:              addr(0xaa),
		History:                   store,
	}, zerolog.Nop())
	return svc, venue
}

func submitJSON(t *testing.T, svc *Service, transaction any) *SubmitResult {
	t.Helper()
	raw, err := json.Marshal(transaction)
	require.NoError(t, err)
	result, err := svc.Submit(context.Background(), raw)
	require.NoError(t, err)
	return result
}

func TestSubmitAppliesAndIndexes(t *testing.T) {
	svc, venue := newTestService(t)
	subject := addr(0x01)

	// The venue market exists before the proxy can buy into it.
	require.NoError(t, venue.Buy(subject, subject, 1, wei.Zero()))
	quote, err := venue.QuoteBuy(subject, 3)
	require.NoError(t, err)
	venue.Fund(subject, quote)

	events, cancel := svc.Events().Subscribe()
	defer cancel()

	result := submitJSON(t, svc, map[string]any{
		"TransactionType": "SnipeShares",
		"Account":         subject.String(),
		"Amount":          3,
		"Payment":         quote.String(),
	})
	require.True(t, result.Applied)
	require.Equal(t, "applied", result.Result)
	require.NotNil(t, result.Meta)

	balance, err := svc.Balance(subject.String(), subject.String())
	require.NoError(t, err)
	require.Equal(t, uint64(3), balance)
	custody, err := svc.CustodyBalance(subject.String())
	require.NoError(t, err)
	require.Equal(t, uint64(3), custody)

	record, err := svc.Transaction(context.Background(), result.Hash)
	require.NoError(t, err)
	require.Equal(t, "SnipeShares", record.TxType)
	require.True(t, record.Applied)

	event := <-events
	require.Equal(t, result.Hash, event.Hash)
	require.Equal(t, "SnipeShares", event.TxType)
	require.True(t, event.Applied)

	info := svc.ServerInfo()
	require.True(t, info.Standalone)
	require.Equal(t, uint64(1), info.TxTotal)
	require.Equal(t, uint64(1), info.TxApplied)
}

func TestSubmitRejectionsAreIndexed(t *testing.T) {
	svc, _ := newTestService(t)
	holder := addr(0x02)

	result := submitJSON(t, svc, map[string]any{
		"TransactionType": "SellShares",
		"Account":         holder.String(),
		"Subject":         addr(0x01).String(),
		"Amount":          1,
	})
	require.False(t, result.Applied)
	require.Equal(t, "insufficientBalance", result.Result)

	record, err := svc.Transaction(context.Background(), result.Hash)
	require.NoError(t, err)
	require.False(t, record.Applied)
	require.Equal(t, "insufficientBalance", record.Result)
}

func TestSubmitMalformedJSON(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Submit(context.Background(), []byte(`{not json`))
	require.NoError(t, err)
	require.Equal(t, "malformed", result.Result)
	require.False(t, result.Applied)

	result, err = svc.Submit(context.Background(), []byte(`{"TransactionType":"MintShares","Account":"0x0101010101010101010101010101010101010101"}`))
	require.NoError(t, err)
	require.Equal(t, "unknownType", result.Result)
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.snap")
	venue := market.NewStandalone(addr(0xfe))
	svc := New(ledger.NewInMemory(), venue, venue, Config{
		Standalone:                true,
		SkipSignatureVerification: true,
		ProxyAddress:              addr(0xaa),
		SnapshotPath:              path,
	}, zerolog.Nop())

	subject := addr(0x01)
	require.NoError(t, tx.CreditShares(svc.State(), subject, addr(0x02), 4))
	require.NoError(t, svc.SaveSnapshot())

	restored := New(ledger.NewInMemory(), venue, venue, Config{
		Standalone:   true,
		ProxyAddress: addr(0xaa),
		SnapshotPath: path,
	}, zerolog.Nop())
	require.NoError(t, restored.LoadSnapshot())

	balance, err := restored.Balance(subject.String(), addr(0x02).String())
	require.NoError(t, err)
	require.Equal(t, uint64(4), balance)
}

func TestAccountTransactions(t *testing.T) {
	svc, _ := newTestService(t)
	subject := addr(0x01)

	for cap := 1; cap <= 3; cap++ {
		submitJSON(t, svc, map[string]any{
			"TransactionType":  "SetWhitelist",
			"Account":          subject.String(),
			"WhitelistAccount": addr(0x02).String(),
			"Cap":              cap,
		})
	}

	records, err := svc.AccountTransactions(context.Background(), subject.String(), 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
}
