package market

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
)

func TestFirstShareIsFree(t *testing.T) {
	require.True(t, CurvePrice(0, 1).IsZero())
	require.True(t, BuyPriceAfterFee(0, 1).IsZero())
}

func TestSecondSharePrice(t *testing.T) {
	// At supply 1 the marginal share costs 1/16000 ether.
	want := wei.Ether(1).Div(16000)
	require.Equal(t, 0, CurvePrice(1, 1).Cmp(want))
}

func TestCurvePriceIsRangeSum(t *testing.T) {
	// Buying in two steps must cost the same as one combined buy.
	combined := CurvePrice(1, 5)
	split := CurvePrice(1, 2).Add(CurvePrice(3, 3))
	require.Equal(t, 0, combined.Cmp(split))
}

func TestBuyPriceIncludesBothFees(t *testing.T) {
	price := CurvePrice(1, 10)
	after := BuyPriceAfterFee(1, 10)
	fees := after.Sub(price)
	require.Equal(t, 0, fees.Cmp(price.Mul(10).Div(100)))
}

func TestSellProceedsMirrorsBuyRange(t *testing.T) {
	// Selling back down to supply 1 prices the same curve range.
	price := CurvePrice(1, 10)
	proceeds := SellProceedsAfterFee(11, 10)
	require.Equal(t, 0, proceeds.Cmp(price.Sub(price.Mul(10).Div(100))))
}

func TestSellBeyondSupplyIsZero(t *testing.T) {
	require.True(t, SellProceedsAfterFee(3, 4).IsZero())
}

func TestPriceGrowsWithSupply(t *testing.T) {
	require.True(t, CurvePrice(10, 1).Less(CurvePrice(100, 1)))
}
