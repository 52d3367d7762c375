package market

import (
	"math/big"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
)

// The venue prices shares on a quadratic bonding curve: the marginal
// price at supply s is s^2/16000 ether (the first share is free), so a
// trade of `amount` shares starting at `supply` costs the sum of
// squares over that range scaled by 1 ether / 16000. A 5% protocol fee and a 5% subject fee
// are charged on top of buys and deducted from sells.
const (
	curveDivisor      = 16000
	protocolFeePct    = 5
	subjectFeePct     = 5
	feePctDenominator = 100
)

var oneEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// sumOfSquares returns 0^2 + 1^2 + ... + (n-1)^2 = (n-1)n(2n-1)/6.
func sumOfSquares(n uint64) *big.Int {
	if n == 0 {
		return new(big.Int)
	}
	m := new(big.Int).SetUint64(n - 1)
	out := new(big.Int).Set(m)
	out.Mul(out, new(big.Int).SetUint64(n))
	out.Mul(out, new(big.Int).Add(new(big.Int).Lsh(m, 1), big.NewInt(1)))
	return out.Div(out, big.NewInt(6))
}

// CurvePrice returns the raw curve price, before fees, of trading
// amount shares starting at the given supply.
func CurvePrice(supply, amount uint64) wei.Amount {
	span := new(big.Int).Sub(sumOfSquares(supply+amount), sumOfSquares(supply))
	span.Mul(span, oneEther)
	span.Div(span, big.NewInt(curveDivisor))
	return wei.FromBig(span)
}

// BuyPriceAfterFee returns the total cost of a buy, fees included.
func BuyPriceAfterFee(supply, amount uint64) wei.Amount {
	price := CurvePrice(supply, amount)
	return price.Add(protocolFee(price)).Add(subjectFee(price))
}

// SellProceedsAfterFee returns the net proceeds of a sell, fees
// deducted. The sell walks the curve down from the current supply.
func SellProceedsAfterFee(supply, amount uint64) wei.Amount {
	if amount > supply {
		return wei.Zero()
	}
	price := CurvePrice(supply-amount, amount)
	return price.Sub(protocolFee(price)).Sub(subjectFee(price))
}

func protocolFee(price wei.Amount) wei.Amount {
	return price.Mul(protocolFeePct).Div(feePctDenominator)
}

func subjectFee(price wei.Amount) wei.Amount {
	return price.Mul(subjectFeePct).Div(feePctDenominator)
}
