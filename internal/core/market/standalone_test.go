package market

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
)

func saddr(b byte) types.Address {
	var a types.Address
	a[19] = b
	return a
}

func TestStandaloneBuyAndCustody(t *testing.T) {
	feeTo := saddr(0xff)
	subject := saddr(1)
	proxy := saddr(2)

	m := NewStandalone(feeTo)
	m.Fund(subject, wei.Ether(10))
	m.Fund(proxy, wei.Ether(10))

	// Subject opens its own market with the free first share.
	require.NoError(t, m.Buy(subject, subject, 1, wei.Zero()))
	require.Equal(t, uint64(1), m.Supply(subject))

	quote, err := m.QuoteBuy(subject, 30)
	require.NoError(t, err)

	require.NoError(t, m.Buy(subject, proxy, 30, quote))
	held, err := m.CustodyBalance(subject, proxy)
	require.NoError(t, err)
	require.Equal(t, uint64(30), held)
	require.Equal(t, uint64(31), m.Supply(subject))
}

func TestStandaloneRejectsFirstShareFromOthers(t *testing.T) {
	m := NewStandalone(saddr(0xff))
	m.Fund(saddr(2), wei.Ether(1))

	err := m.Buy(saddr(1), saddr(2), 1, wei.Ether(1))
	require.ErrorIs(t, err, ErrRejected)
}

func TestStandaloneRejectsUnderpaidBuy(t *testing.T) {
	subject := saddr(1)
	m := NewStandalone(saddr(0xff))
	m.Fund(subject, wei.Ether(10))

	require.NoError(t, m.Buy(subject, subject, 1, wei.Zero()))

	quote, err := m.QuoteBuy(subject, 5)
	require.NoError(t, err)

	err = m.Buy(subject, subject, 5, quote.Sub(wei.New(1)))
	require.ErrorIs(t, err, ErrRejected)
}

func TestStandaloneSellPaysCustody(t *testing.T) {
	feeTo := saddr(0xff)
	subject := saddr(1)
	proxy := saddr(2)

	m := NewStandalone(feeTo)
	m.Fund(subject, wei.Ether(10))
	m.Fund(proxy, wei.Ether(10))

	require.NoError(t, m.Buy(subject, subject, 1, wei.Zero()))
	quote, err := m.QuoteBuy(subject, 10)
	require.NoError(t, err)
	require.NoError(t, m.Buy(subject, proxy, 10, quote))

	before := m.NativeBalance(proxy)
	proceeds, err := m.Sell(subject, proxy, 4)
	require.NoError(t, err)
	require.True(t, proceeds.IsPositive())
	require.Equal(t, 0, m.NativeBalance(proxy).Cmp(before.Add(proceeds)))

	held, err := m.CustodyBalance(subject, proxy)
	require.NoError(t, err)
	require.Equal(t, uint64(6), held)
}

func TestStandaloneSellRequiresCustody(t *testing.T) {
	subject := saddr(1)
	m := NewStandalone(saddr(0xff))
	m.Fund(subject, wei.Ether(10))
	require.NoError(t, m.Buy(subject, subject, 1, wei.Zero()))

	_, err := m.Sell(subject, saddr(9), 1)
	require.ErrorIs(t, err, ErrRejected)
}

func TestSendNative(t *testing.T) {
	m := NewStandalone(saddr(0xff))
	m.Fund(saddr(1), wei.Ether(2))

	require.NoError(t, m.SendNative(saddr(1), saddr(2), wei.Ether(1)))
	require.Equal(t, 0, m.NativeBalance(saddr(2)).Cmp(wei.Ether(1)))

	err := m.SendNative(saddr(1), saddr(2), wei.Ether(5))
	require.Error(t, err)
}
