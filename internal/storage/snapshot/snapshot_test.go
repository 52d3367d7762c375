package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/tx"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
)

func addr(b byte) types.Address {
	var a types.Address
	for i := range a {
		a[i] = b
	}
	return a
}

func TestWriteAndLoadRoundTrip(t *testing.T) {
	state := ledger.NewInMemory()
	subject := addr(0x01)
	require.NoError(t, tx.CreditShares(state, subject, addr(0x02), 5))
	require.NoError(t, tx.CreditShares(state, subject, addr(0x03), 7))
	require.NoError(t, tx.WriteAllowance(state, subject, addr(0x02), addr(0x03), 4))

	path := filepath.Join(t.TempDir(), "state.snap")
	require.NoError(t, Write(state, path))

	restored := ledger.NewInMemory()
	require.NoError(t, Load(restored, path))

	balance, err := tx.ReadBalance(restored, subject, addr(0x02))
	require.NoError(t, err)
	require.Equal(t, uint64(5), balance)
	total, err := tx.ReadTotalShares(restored, subject)
	require.NoError(t, err)
	require.Equal(t, uint64(12), total)
	allowance, err := tx.ReadAllowance(restored, subject, addr(0x02), addr(0x03))
	require.NoError(t, err)
	require.Equal(t, uint64(4), allowance)
}

func TestLoadRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a snapshot"), 0o644))
	require.Error(t, Load(ledger.NewInMemory(), path))
}
