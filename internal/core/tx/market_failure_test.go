package tx_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/market"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/market/mock"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/tx"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
)

// These tests run the engine against a mocked venue so they can force
// failures the standalone venue never produces.

type mockEnv struct {
	state  *ledger.State
	venue  *mock.MockAdapter
	native *mock.MockNativeSender
	engine *tx.Engine
}

func newMockEnv(t *testing.T) *mockEnv {
	ctrl := gomock.NewController(t)
	venue := mock.NewMockAdapter(ctrl)
	native := mock.NewMockNativeSender(ctrl)
	state := ledger.NewInMemory()
	engine := tx.NewEngine(state, venue, native, tx.EngineConfig{
		ProxyAddress:              testAddr(0xaa),
		SkipSignatureVerification: true,
	}, zerolog.Nop())
	return &mockEnv{state: state, venue: venue, native: native, engine: engine}
}

func TestBuyQuoteFailureRefundsEscrow(t *testing.T) {
	env := newMockEnv(t)
	caller := testAddr(0x01)
	payment := wei.New(500)

	gomock.InOrder(
		env.native.EXPECT().SendNative(caller, testAddr(0xaa), payment).Return(nil),
		env.venue.EXPECT().QuoteBuy(caller, uint64(2)).Return(wei.Zero(), market.ErrRejected),
		env.native.EXPECT().SendNative(testAddr(0xaa), caller, payment).Return(nil),
	)

	snipe := &tx.SnipeShares{
		Common: commonFields(caller, tx.TypeSnipeShares, payment),
		Amount: 2,
	}
	result, err := env.engine.Apply(snipe)
	require.NoError(t, err)
	require.Equal(t, tx.ResultMarketCallFailed, result.Result)
}

func TestBuyVenueRejectionRefundsEscrow(t *testing.T) {
	env := newMockEnv(t)
	caller := testAddr(0x01)
	quote := wei.New(300)
	payment := wei.New(400)

	// The surplus goes back before the venue call; a venue rejection
	// then refunds only the quote still held in escrow.
	gomock.InOrder(
		env.native.EXPECT().SendNative(caller, testAddr(0xaa), payment).Return(nil),
		env.venue.EXPECT().QuoteBuy(caller, uint64(1)).Return(quote, nil),
		env.native.EXPECT().SendNative(testAddr(0xaa), caller, wei.New(100)).Return(nil),
		env.venue.EXPECT().Buy(caller, testAddr(0xaa), uint64(1), quote).Return(market.ErrRejected),
		env.native.EXPECT().SendNative(testAddr(0xaa), caller, quote).Return(nil),
	)

	snipe := &tx.SnipeShares{
		Common: commonFields(caller, tx.TypeSnipeShares, payment),
		Amount: 1,
	}
	result, err := env.engine.Apply(snipe)
	require.NoError(t, err)
	require.Equal(t, tx.ResultMarketCallFailed, result.Result)

	balance, err := tx.ReadBalance(env.state, caller, caller)
	require.NoError(t, err)
	require.Zero(t, balance)
}

func TestSellVenueFailureKeepsInternalBalance(t *testing.T) {
	env := newMockEnv(t)
	subject := testAddr(0x02)
	holder := testAddr(0x03)

	require.NoError(t, tx.CreditShares(env.state, subject, holder, 2))
	env.venue.EXPECT().Sell(subject, testAddr(0xaa), uint64(2)).Return(wei.Zero(), market.ErrRejected)

	sell := &tx.SellShares{
		Common:  commonFields(holder, tx.TypeSellShares, wei.Zero()),
		Subject: subject.String(),
		Amount:  2,
	}
	result, err := env.engine.Apply(sell)
	require.NoError(t, err)
	require.Equal(t, tx.ResultMarketCallFailed, result.Result)

	// The overlay debit was discarded with the failed transaction.
	balance, err := tx.ReadBalance(env.state, subject, holder)
	require.NoError(t, err)
	require.Equal(t, uint64(2), balance)
}

func TestBuySurplusRefundFailure(t *testing.T) {
	env := newMockEnv(t)
	caller := testAddr(0x04)
	quote := wei.New(100)
	payment := wei.New(150)

	// The surplus refund runs before the venue buy, so its failure
	// leaves the venue untouched and the full escrow refundable.
	gomock.InOrder(
		env.native.EXPECT().SendNative(caller, testAddr(0xaa), payment).Return(nil),
		env.venue.EXPECT().QuoteBuy(caller, uint64(1)).Return(quote, nil),
		env.native.EXPECT().SendNative(testAddr(0xaa), caller, wei.New(50)).Return(market.ErrRejected),
		env.native.EXPECT().SendNative(testAddr(0xaa), caller, payment).Return(nil),
	)

	snipe := &tx.SnipeShares{
		Common: commonFields(caller, tx.TypeSnipeShares, payment),
		Amount: 1,
	}
	result, err := env.engine.Apply(snipe)
	require.NoError(t, err)
	require.Equal(t, tx.ResultInsufficientFunds, result.Result)

	balance, err := tx.ReadBalance(env.state, caller, caller)
	require.NoError(t, err)
	require.Zero(t, balance)
}

func TestSellPaysProceedsAfterCommit(t *testing.T) {
	env := newMockEnv(t)
	subject := testAddr(0x02)
	holder := testAddr(0x03)
	proceeds := wei.New(80)

	require.NoError(t, tx.CreditShares(env.state, subject, holder, 3))
	gomock.InOrder(
		env.venue.EXPECT().Sell(subject, testAddr(0xaa), uint64(2)).Return(proceeds, nil),
		env.venue.EXPECT().CustodyBalance(subject, testAddr(0xaa)).Return(uint64(1), nil),
		env.native.EXPECT().SendNative(testAddr(0xaa), holder, proceeds).Return(nil),
	)

	sell := &tx.SellShares{
		Common:  commonFields(holder, tx.TypeSellShares, wei.Zero()),
		Subject: subject.String(),
		Amount:  2,
	}
	result, err := env.engine.Apply(sell)
	require.NoError(t, err)
	require.Equal(t, tx.ResultApplied, result.Result)

	balance, err := tx.ReadBalance(env.state, subject, holder)
	require.NoError(t, err)
	require.Equal(t, uint64(1), balance)
}
