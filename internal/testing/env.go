// Package testing is a scenario harness for end-to-end tests. It runs
// a full ledger service in standalone mode with signature verification
// enabled, so scenarios exercise the same path a real client would:
// build, sign, submit, observe.
package testing

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/service"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/market"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/tx"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
)

// Env is a test ledger environment. Accounts are registered by name
// and submissions are signed with their keys.
type Env struct {
	T       *testing.T
	Service *service.Service
	Venue   *market.Standalone
	Proxy   types.Address

	accounts map[string]*Account
}

// NewEnv creates a standalone environment with signature verification
// on.
func NewEnv(t *testing.T) *Env {
	t.Helper()
	proxy := NewAccount("proxy")
	feeTo := NewAccount("protocol-fees")
	venue := market.NewStandalone(feeTo.Address)
	svc := service.New(ledger.NewInMemory(), venue, venue, service.Config{
		Standalone:   true,
		ProxyAddress: proxy.Address,
	}, zerolog.Nop())

	return &Env{
		T:        t,
		Service:  svc,
		Venue:    venue,
		Proxy:    proxy.Address,
		accounts: map[string]*Account{"proxy": proxy, "protocol-fees": feeTo},
	}
}

// Account returns the named account, creating it on first use.
func (e *Env) Account(name string) *Account {
	if account, ok := e.accounts[name]; ok {
		return account
	}
	account := NewAccount(name)
	e.accounts[name] = account
	return account
}

// Fund credits native currency to an account at the venue.
func (e *Env) Fund(account *Account, amount wei.Amount) {
	e.Venue.Fund(account.Address, amount)
}

// SeedMarket gives a subject its own first share directly at the
// venue, opening the market for third-party buys.
func (e *Env) SeedMarket(subject *Account) {
	e.T.Helper()
	if e.Venue.Supply(subject.Address) > 0 {
		return
	}
	if err := e.Venue.Buy(subject.Address, subject.Address, 1, wei.Zero()); err != nil {
		e.T.Fatalf("seed market for %s: %v", subject.Name, err)
	}
}

// QuoteBuy returns the live venue price for amount shares of subject.
func (e *Env) QuoteBuy(subject *Account, amount uint64) wei.Amount {
	e.T.Helper()
	quote, err := e.Venue.QuoteBuy(subject.Address, amount)
	if err != nil {
		e.T.Fatalf("quote buy for %s: %v", subject.Name, err)
	}
	return quote
}

// Submit signs the transaction with the submitter's keys and runs it
// through the service.
func (e *Env) Submit(submitter *Account, transaction tx.Transaction) *service.SubmitResult {
	e.T.Helper()
	common := transaction.GetCommon()
	common.Account = submitter.Address.String()
	if err := tx.Sign(transaction, submitter.Keys); err != nil {
		e.T.Fatalf("sign %s transaction: %v", submitter.Name, err)
	}
	raw, err := tx.ToJSON(transaction)
	if err != nil {
		e.T.Fatalf("encode transaction: %v", err)
	}
	result, err := e.Service.Submit(context.Background(), raw)
	if err != nil {
		e.T.Fatalf("submit transaction: %v", err)
	}
	return result
}

// Balance returns the internal share balance of holder in subject's
// shares.
func (e *Env) Balance(subject, holder *Account) uint64 {
	e.T.Helper()
	balance, err := e.Service.Balance(subject.Address.String(), holder.Address.String())
	if err != nil {
		e.T.Fatalf("query balance: %v", err)
	}
	return balance
}

// Proceeds returns subject's unclaimed presale proceeds as a decimal
// string.
func (e *Env) Proceeds(subject *Account) string {
	e.T.Helper()
	proceeds, err := e.Service.Proceeds(subject.Address.String())
	if err != nil {
		e.T.Fatalf("query proceeds: %v", err)
	}
	return proceeds
}

// NativeBalance returns the venue-side native balance of an account.
func (e *Env) NativeBalance(account *Account) wei.Amount {
	return e.Venue.NativeBalance(account.Address)
}
