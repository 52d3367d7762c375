package testing_test

import (
	"context"
	stdtesting "testing"

	"github.com/stretchr/testify/require"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/tx"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
	harness "github.com/Manifold-MEV/friendtech-presale/internal/testing"
)

// The scenarios here run signed transactions end to end through the
// ledger service, so they cover the signing and verification path the
// engine tests skip.

func TestSignedBuyTransferSell(t *stdtesting.T) {
	env := harness.NewEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")

	env.SeedMarket(alice)
	quote := env.QuoteBuy(alice, 3)
	env.Fund(alice, quote)

	harness.RequireApplied(t, env.Submit(alice, harness.Snipe(3, quote)))
	harness.RequireShares(t, env, alice, alice, 3)

	harness.RequireApplied(t, env.Submit(alice, harness.Transfer(alice, bob, 2)))
	harness.RequireShares(t, env, alice, alice, 1)
	harness.RequireShares(t, env, alice, bob, 2)

	harness.RequireApplied(t, env.Submit(bob, harness.Sell(alice, 1)))
	harness.RequireShares(t, env, alice, bob, 1)
	require.True(t, env.NativeBalance(bob).IsPositive())
}

func TestSignedAllowance(t *stdtesting.T) {
	env := harness.NewEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")
	carol := env.Account("carol")

	env.SeedMarket(alice)
	quote := env.QuoteBuy(alice, 2)
	env.Fund(alice, quote)
	harness.RequireApplied(t, env.Submit(alice, harness.Snipe(2, quote)))

	harness.RequireApplied(t, env.Submit(alice, harness.Approve(alice, bob, 1)))
	harness.RequireApplied(t, env.Submit(bob, harness.TransferFrom(alice, alice, carol, 1)))
	harness.RequireShares(t, env, alice, carol, 1)

	result := env.Submit(bob, harness.TransferFrom(alice, alice, carol, 1))
	harness.RequireResult(t, result, "insufficientApproval")
}

func TestSignedPresaleLifecycle(t *stdtesting.T) {
	env := harness.NewEnv(t)
	creator := env.Account("creator")
	backer := env.Account("backer")
	price := wei.New(1_000)

	harness.RequireApplied(t, env.Submit(creator, harness.SetPrice(price)))
	harness.RequireApplied(t, env.Submit(creator, harness.Whitelist(backer, 2)))

	env.Fund(backer, price.Mul(2))
	harness.RequireApplied(t, env.Submit(backer, harness.Contribute(creator, 2, price.Mul(2))))
	require.Equal(t, price.Mul(2).String(), env.Proceeds(creator))

	env.SeedMarket(creator)
	quote := env.QuoteBuy(creator, 5)
	env.Fund(creator, quote)
	harness.RequireApplied(t, env.Submit(creator, harness.Snipe(5, quote)))

	harness.RequireApplied(t, env.Submit(creator, harness.Settle(creator)))
	harness.RequireShares(t, env, creator, backer, 2)
	harness.RequireShares(t, env, creator, creator, 3)

	before := env.NativeBalance(creator)
	harness.RequireApplied(t, env.Submit(creator, harness.Claim(creator)))
	require.Equal(t, "0", env.Proceeds(creator))
	require.Equal(t, price.Mul(2).String(), env.NativeBalance(creator).Sub(before).String())
}

func TestForgedSignatureRejected(t *stdtesting.T) {
	env := harness.NewEnv(t)
	alice := env.Account("alice")
	mallory := env.Account("mallory")

	env.SeedMarket(alice)
	quote := env.QuoteBuy(alice, 1)
	env.Fund(alice, quote)
	harness.RequireApplied(t, env.Submit(alice, harness.Snipe(1, quote)))

	// Mallory signs a transfer naming alice as the account.
	transfer := harness.Transfer(alice, mallory, 1)
	transfer.Account = alice.Address.String()
	require.NoError(t, tx.Sign(transfer, mallory.Keys))
	raw, err := tx.ToJSON(transfer)
	require.NoError(t, err)

	result, err := env.Service.Submit(context.Background(), raw)
	require.NoError(t, err)
	harness.RequireResult(t, result, "badSignature")
	harness.RequireShares(t, env, alice, alice, 1)
	harness.RequireShares(t, env, alice, mallory, 0)
}
