package market

import (
	"errors"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
)

//go:generate mockgen -source=adapter.go -destination=mock/adapter_mock.go -package=mock

// ErrRejected is returned when the market venue refuses a buy or sell.
var ErrRejected = errors.New("market call rejected")

// Adapter is the external fractional-share market consumed as an
// opaque price oracle and custodian. Prices are a function of live
// supply, so quotes must be read fresh immediately before use.
type Adapter interface {
	// QuoteBuy returns the total native cost, fees included, of buying
	// amount shares of subject at current supply.
	QuoteBuy(subject types.Address, amount uint64) (wei.Amount, error)

	// QuoteSell returns the native proceeds, fees deducted, of selling
	// amount shares of subject at current supply.
	QuoteSell(subject types.Address, amount uint64) (wei.Amount, error)

	// Buy purchases amount shares of subject into custody's holding,
	// spending payment. Fails if payment is below the live price.
	Buy(subject, custody types.Address, amount uint64, payment wei.Amount) error

	// Sell sells amount shares of subject out of custody's holding and
	// returns the native proceeds.
	Sell(subject, custody types.Address, amount uint64) (wei.Amount, error)

	// CustodyBalance returns the shares of subject held by custody.
	CustodyBalance(subject, custody types.Address) (uint64, error)
}

// NativeSender moves native currency between accounts. Sends fail if
// the payer's funds are insufficient.
type NativeSender interface {
	SendNative(from, to types.Address, amount wei.Amount) error
}
