package market

import (
	"fmt"
	"sync"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
)

// Standalone simulates the market venue in-process. It tracks share
// supply, per-custody share holdings, and native balances, and prices
// trades on the bonding curve. Used by standalone mode and the test
// harness in place of a live venue.
type Standalone struct {
	mu sync.Mutex

	supply  map[types.Address]uint64
	custody map[custodyKey]uint64
	native  map[types.Address]wei.Amount

	// Fee sinks. Protocol fees accrue to protocolFeeTo, subject fees
	// to the subject itself.
	protocolFeeTo types.Address
}

type custodyKey struct {
	subject types.Address
	holder  types.Address
}

func NewStandalone(protocolFeeTo types.Address) *Standalone {
	return &Standalone{
		supply:        make(map[types.Address]uint64),
		custody:       make(map[custodyKey]uint64),
		native:        make(map[types.Address]wei.Amount),
		protocolFeeTo: protocolFeeTo,
	}
}

// Fund credits an account with native currency.
func (s *Standalone) Fund(account types.Address, amount wei.Amount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.native[account] = s.native[account].Add(amount)
}

// NativeBalance returns the native currency held by account.
func (s *Standalone) NativeBalance(account types.Address) wei.Amount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.native[account]
}

// Supply returns the outstanding share supply of subject.
func (s *Standalone) Supply(subject types.Address) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.supply[subject]
}

func (s *Standalone) QuoteBuy(subject types.Address, amount uint64) (wei.Amount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuyPriceAfterFee(s.supply[subject], amount), nil
}

func (s *Standalone) QuoteSell(subject types.Address, amount uint64) (wei.Amount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount > s.supply[subject] {
		return wei.Zero(), fmt.Errorf("%w: sell of %d exceeds supply %d", ErrRejected, amount, s.supply[subject])
	}
	return SellProceedsAfterFee(s.supply[subject], amount), nil
}

func (s *Standalone) Buy(subject, custody types.Address, amount uint64, payment wei.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	supply := s.supply[subject]
	if supply == 0 && subject != custody {
		// The venue only lets the subject buy its own first share.
		return fmt.Errorf("%w: only the subject can buy the first share", ErrRejected)
	}

	price := CurvePrice(supply, amount)
	total := price.Add(protocolFee(price)).Add(subjectFee(price))
	if payment.Less(total) {
		return fmt.Errorf("%w: payment %s below price %s", ErrRejected, payment, total)
	}
	if s.native[custody].Less(total) {
		return fmt.Errorf("%w: custody %s cannot fund payment %s", ErrRejected, custody, total)
	}

	s.supply[subject] = supply + amount
	s.custody[custodyKey{subject, custody}] += amount

	// Charge the custody account; the curve price stays in the venue
	// pool, the fees go to their sinks.
	s.native[custody] = s.native[custody].Sub(total)
	s.native[s.protocolFeeTo] = s.native[s.protocolFeeTo].Add(protocolFee(price))
	s.native[subject] = s.native[subject].Add(subjectFee(price))
	return nil
}

func (s *Standalone) Sell(subject, custody types.Address, amount uint64) (wei.Amount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := custodyKey{subject, custody}
	if s.custody[key] < amount {
		return wei.Zero(), fmt.Errorf("%w: custody holds %d shares, sell of %d", ErrRejected, s.custody[key], amount)
	}
	supply := s.supply[subject]
	if amount > supply {
		return wei.Zero(), fmt.Errorf("%w: sell of %d exceeds supply %d", ErrRejected, amount, supply)
	}

	price := CurvePrice(supply-amount, amount)
	proceeds := price.Sub(protocolFee(price)).Sub(subjectFee(price))

	s.supply[subject] = supply - amount
	s.custody[key] -= amount
	s.native[custody] = s.native[custody].Add(proceeds)
	s.native[s.protocolFeeTo] = s.native[s.protocolFeeTo].Add(protocolFee(price))
	s.native[subject] = s.native[subject].Add(subjectFee(price))
	return proceeds, nil
}

func (s *Standalone) CustodyBalance(subject, custody types.Address) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.custody[custodyKey{subject, custody}], nil
}

// SendNative moves native currency between accounts.
func (s *Standalone) SendNative(from, to types.Address, amount wei.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.native[from].Less(amount) {
		return fmt.Errorf("insufficient native balance: %s holds %s, send of %s", from, s.native[from], amount)
	}
	s.native[from] = s.native[from].Sub(amount)
	s.native[to] = s.native[to].Add(amount)
	return nil
}
