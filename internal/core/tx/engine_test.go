package tx_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/entry"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/keylet"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/market"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/tx"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
	"github.com/Manifold-MEV/friendtech-presale/internal/crypto"
)

type testEnv struct {
	t      *testing.T
	state  *ledger.State
	venue  *market.Standalone
	engine *tx.Engine
	proxy  types.Address
	feeTo  types.Address
}

func newTestEnv(t *testing.T) *testEnv {
	proxy := testAddr(0xaa)
	feeTo := testAddr(0xfe)
	state := ledger.NewInMemory()
	venue := market.NewStandalone(feeTo)
	engine := tx.NewEngine(state, venue, venue, tx.EngineConfig{
		ProxyAddress:              proxy,
		SkipSignatureVerification: true,
		Standalone:                true,
	}, zerolog.Nop())
	return &testEnv{t: t, state: state, venue: venue, engine: engine, proxy: proxy, feeTo: feeTo}
}

func testAddr(b byte) types.Address {
	var a types.Address
	for i := range a {
		a[i] = b
	}
	return a
}

// seedMarket initializes a subject's venue market with the free first
// share, which only the subject itself can buy.
func (e *testEnv) seedMarket(subject types.Address) {
	e.t.Helper()
	require.NoError(e.t, e.venue.Buy(subject, subject, 1, wei.Zero()))
}

func (e *testEnv) fund(account types.Address, amount wei.Amount) {
	e.venue.Fund(account, amount)
}

func (e *testEnv) apply(transaction tx.Transaction) *tx.ApplyResult {
	e.t.Helper()
	result, err := e.engine.Apply(transaction)
	require.NoError(e.t, err)
	return result
}

func (e *testEnv) requireApplied(transaction tx.Transaction) *tx.ApplyResult {
	e.t.Helper()
	result := e.apply(transaction)
	require.Equal(e.t, tx.ResultApplied, result.Result, result.Result.Message())
	return result
}

func (e *testEnv) requireResult(transaction tx.Transaction, want tx.Result) {
	e.t.Helper()
	result := e.apply(transaction)
	require.Equal(e.t, want, result.Result)
}

func (e *testEnv) balance(subject, holder types.Address) uint64 {
	e.t.Helper()
	balance, err := tx.ReadBalance(e.state, subject, holder)
	require.NoError(e.t, err)
	return balance
}

func commonFields(account types.Address, typ tx.Type, payment wei.Amount) tx.Common {
	c := tx.Common{
		Account:         account.String(),
		TransactionType: typ.String(),
	}
	if payment.IsPositive() {
		c.Payment = payment.String()
	}
	return c
}

func TestSnipeSharesCreditsCallerAndRefundsSurplus(t *testing.T) {
	env := newTestEnv(t)
	subject := testAddr(0x01)
	env.seedMarket(subject)

	quote, err := env.venue.QuoteBuy(subject, 30)
	require.NoError(t, err)
	surplus := wei.New(12345)
	env.fund(subject, quote.Add(surplus))

	env.requireApplied(&tx.SnipeShares{
		Common: commonFields(subject, tx.TypeSnipeShares, quote.Add(surplus)),
		Amount: 30,
	})

	require.Equal(t, uint64(30), env.balance(subject, subject))
	custody, err := env.venue.CustodyBalance(subject, env.proxy)
	require.NoError(t, err)
	require.Equal(t, uint64(30), custody)

	// Escrow fully consumed: the venue got the quote, the surplus went
	// back to the caller.
	require.True(t, env.venue.NativeBalance(env.proxy).IsZero())
}

func TestBuySharesCreditsDestination(t *testing.T) {
	env := newTestEnv(t)
	subject := testAddr(0x01)
	buyer := testAddr(0x02)
	recipient := testAddr(0x03)
	env.seedMarket(subject)

	quote, err := env.venue.QuoteBuy(subject, 5)
	require.NoError(t, err)
	env.fund(buyer, quote)

	env.requireApplied(&tx.BuyShares{
		Common:      commonFields(buyer, tx.TypeBuyShares, quote),
		Subject:     subject.String(),
		Destination: recipient.String(),
		Amount:      5,
	})

	require.Equal(t, uint64(5), env.balance(subject, recipient))
	require.Equal(t, uint64(0), env.balance(subject, buyer))
}

func TestBuySharesInsufficientPayment(t *testing.T) {
	env := newTestEnv(t)
	subject := testAddr(0x01)
	buyer := testAddr(0x02)
	env.seedMarket(subject)

	quote, err := env.venue.QuoteBuy(subject, 5)
	require.NoError(t, err)
	short := quote.Sub(wei.New(1))
	env.fund(buyer, short)

	env.requireResult(&tx.BuyShares{
		Common:      commonFields(buyer, tx.TypeBuyShares, short),
		Subject:     subject.String(),
		Destination: buyer.String(),
		Amount:      5,
	}, tx.ResultInsufficientPayment)

	// Escrow came back in full.
	require.Equal(t, short, env.venue.NativeBalance(buyer))
	require.Equal(t, uint64(0), env.balance(subject, buyer))
}

func TestSellSharesForwardsProceeds(t *testing.T) {
	env := newTestEnv(t)
	subject := testAddr(0x01)
	holder := testAddr(0x02)
	env.seedMarket(subject)

	quote, err := env.venue.QuoteBuy(subject, 10)
	require.NoError(t, err)
	env.fund(holder, quote)
	env.requireApplied(&tx.BuyShares{
		Common:      commonFields(holder, tx.TypeBuyShares, quote),
		Subject:     subject.String(),
		Destination: holder.String(),
		Amount:      10,
	})

	expected, err := env.venue.QuoteSell(subject, 4)
	require.NoError(t, err)

	env.requireApplied(&tx.SellShares{
		Common:  commonFields(holder, tx.TypeSellShares, wei.Zero()),
		Subject: subject.String(),
		Amount:  4,
	})

	require.Equal(t, uint64(6), env.balance(subject, holder))
	custody, err := env.venue.CustodyBalance(subject, env.proxy)
	require.NoError(t, err)
	require.Equal(t, uint64(6), custody)
	require.Equal(t, expected, env.venue.NativeBalance(holder))
}

func TestSellSharesWithoutBalance(t *testing.T) {
	env := newTestEnv(t)
	subject := testAddr(0x01)
	holder := testAddr(0x02)
	env.seedMarket(subject)

	env.requireResult(&tx.SellShares{
		Common:  commonFields(holder, tx.TypeSellShares, wei.Zero()),
		Subject: subject.String(),
		Amount:  1,
	}, tx.ResultInsufficientBalance)
}

func TestSignatureVerification(t *testing.T) {
	proxy := testAddr(0xaa)
	state := ledger.NewInMemory()
	venue := market.NewStandalone(testAddr(0xfe))
	engine := tx.NewEngine(state, venue, venue, tx.EngineConfig{
		ProxyAddress: proxy,
	}, zerolog.Nop())

	keyPair := crypto.KeyPairFromSeed([]byte("signature verification test"))
	subject := testAddr(0x01)

	unsigned := &tx.ApproveShares{
		Common: tx.Common{
			Account:         keyPair.Address().String(),
			TransactionType: tx.TypeApproveShares.String(),
		},
		Subject: subject.String(),
		Spender: testAddr(0x02).String(),
		Amount:  3,
	}
	result, err := engine.Apply(unsigned)
	require.NoError(t, err)
	require.Equal(t, tx.ResultBadSignature, result.Result)

	require.NoError(t, tx.Sign(unsigned, keyPair))
	result, err = engine.Apply(unsigned)
	require.NoError(t, err)
	require.Equal(t, tx.ResultApplied, result.Result)

	// Signed by a key that does not derive the claimed account.
	other := crypto.KeyPairFromSeed([]byte("some other key"))
	forged := &tx.ApproveShares{
		Common: tx.Common{
			Account:         keyPair.Address().String(),
			TransactionType: tx.TypeApproveShares.String(),
		},
		Subject: subject.String(),
		Spender: testAddr(0x02).String(),
		Amount:  3,
	}
	require.NoError(t, tx.Sign(forged, other))
	result, err = engine.Apply(forged)
	require.NoError(t, err)
	require.Equal(t, tx.ResultBadSignature, result.Result)
}

func TestConservationGuardsCommit(t *testing.T) {
	env := newTestEnv(t)
	subject := testAddr(0x01)
	holder := testAddr(0x02)

	// Book shares internally with no market custody behind them. Any
	// operation touching the subject must now refuse to commit.
	require.NoError(t, tx.CreditShares(env.state, subject, holder, 5))

	env.requireResult(&tx.TransferShares{
		Common:      commonFields(holder, tx.TypeTransferShares, wei.Zero()),
		Subject:     subject.String(),
		Destination: testAddr(0x03).String(),
		Amount:      2,
	}, tx.ResultInvariantFailed)

	// The failed commit left the bad state exactly as it was.
	require.Equal(t, uint64(5), env.balance(subject, holder))
	require.Equal(t, uint64(0), env.balance(subject, testAddr(0x03)))
}

// sumBalances adds up every holder's booked shares for the subject
// straight from the stored entries.
func (e *testEnv) sumBalances(subject types.Address) uint64 {
	e.t.Helper()
	var sum uint64
	err := e.state.ForEach(func(key [32]byte, data []byte) bool {
		decoded, err := entry.Decode(data)
		if err != nil {
			return true
		}
		if b, ok := decoded.(*entry.Balance); ok && b.Subject == subject {
			sum += b.Amount
		}
		return true
	})
	require.NoError(e.t, err)
	return sum
}

func (e *testEnv) requireConserved(subject types.Address) {
	e.t.Helper()
	sum := e.sumBalances(subject)
	total, err := tx.ReadTotalShares(e.state, subject)
	require.NoError(e.t, err)
	require.Equal(e.t, total, sum)
	custody, err := e.venue.CustodyBalance(subject, e.proxy)
	require.NoError(e.t, err)
	require.LessOrEqual(e.t, sum, custody)
}

func TestConservationAcrossMixedOperations(t *testing.T) {
	env := newTestEnv(t)
	subject := testAddr(0x01)
	alice := testAddr(0x02)
	bob := testAddr(0x03)
	carol := testAddr(0x04)

	env.buyFor(subject, alice, 8)
	env.requireConserved(subject)

	env.requireApplied(&tx.TransferShares{
		Common:      commonFields(alice, tx.TypeTransferShares, wei.Zero()),
		Subject:     subject.String(),
		Destination: bob.String(),
		Amount:      3,
	})
	env.requireConserved(subject)

	env.requireApplied(&tx.TransferSharesBatch{
		Common:       commonFields(alice, tx.TypeTransferSharesBatch, wei.Zero()),
		Subjects:     []string{subject.String(), subject.String()},
		Destinations: []string{bob.String(), carol.String()},
		Amounts:      []uint64{1, 2},
	})
	env.requireConserved(subject)

	env.requireApplied(&tx.SellShares{
		Common:  commonFields(bob, tx.TypeSellShares, wei.Zero()),
		Subject: subject.String(),
		Amount:  4,
	})
	env.requireConserved(subject)

	require.Equal(t, uint64(2), env.balance(subject, alice))
	require.Equal(t, uint64(0), env.balance(subject, bob))
	require.Equal(t, uint64(2), env.balance(subject, carol))
}

func TestConservationCatchesCounterDrift(t *testing.T) {
	env := newTestEnv(t)
	subject := testAddr(0x01)
	holder := testAddr(0x02)
	env.buyFor(subject, holder, 5)

	// Plant a balance the running total does not account for. The next
	// operation touching the subject must refuse to commit.
	planted, err := entry.Encode(&entry.Balance{Subject: subject, Holder: testAddr(0x03), Amount: 3})
	require.NoError(t, err)
	require.NoError(t, env.state.Insert(keylet.Balance(subject, testAddr(0x03)), planted))

	env.requireResult(&tx.TransferShares{
		Common:      commonFields(holder, tx.TypeTransferShares, wei.Zero()),
		Subject:     subject.String(),
		Destination: testAddr(0x04).String(),
		Amount:      1,
	}, tx.ResultInvariantFailed)
	require.Equal(t, uint64(5), env.balance(subject, holder))
}

func TestApplyResultMetadata(t *testing.T) {
	env := newTestEnv(t)
	subject := testAddr(0x01)

	result := env.requireApplied(&tx.ApproveShares{
		Common:  commonFields(subject, tx.TypeApproveShares, wei.Zero()),
		Subject: subject.String(),
		Spender: testAddr(0x02).String(),
		Amount:  7,
	})

	require.NotNil(t, result.Metadata)
	require.Equal(t, tx.ResultApplied.String(), result.Metadata.TransactionResult)
	require.Len(t, result.Metadata.AffectedNodes, 1)
	node := result.Metadata.AffectedNodes[0]
	require.Equal(t, "CreatedNode", node.Action)
	require.Equal(t, "Allowance", node.EntryType)
	require.True(t, result.Applied())
}

func TestMalformedTransactions(t *testing.T) {
	env := newTestEnv(t)
	subject := testAddr(0x01)

	env.requireResult(&tx.TransferShares{
		Common:      commonFields(subject, tx.TypeTransferShares, wei.Zero()),
		Subject:     "not-an-address",
		Destination: testAddr(0x02).String(),
		Amount:      1,
	}, tx.ResultBadAccount)

	env.requireResult(&tx.SnipeShares{
		Common: commonFields(subject, tx.TypeSnipeShares, wei.Zero()),
		Amount: 0,
	}, tx.ResultBadAmount)

	env.requireResult(&tx.TransferSharesBatch{
		Common:       commonFields(subject, tx.TypeTransferSharesBatch, wei.Zero()),
		Subjects:     []string{subject.String()},
		Destinations: []string{testAddr(0x02).String()},
		Amounts:      []uint64{1, 2},
	}, tx.ResultArityMismatch)
}
