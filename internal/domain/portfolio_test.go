package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolio_BuyGrowsHoldingsAndBasis(t *testing.T) {
	p := NewPortfolio(CostBasisReduce)

	p.Buy("AAA", decimal.RequireFromString("150.00"))
	p.Buy("AAA", decimal.RequireFromString("151.50"))

	assert.Equal(t, 2, p.Quantity("AAA"))
	assert.Equal(t, "301.50", p.CostBasis().StringFixed(2))
}

func TestPortfolio_SellGuardHoldsAtZero(t *testing.T) {
	p := NewPortfolio(CostBasisReduce)
	p.Track("AAA")

	// Selling with nothing held is a no-op, never a negative position.
	ok := p.Sell("AAA", decimal.RequireFromString("10.00"))

	assert.False(t, ok)
	assert.Equal(t, 0, p.Quantity("AAA"))
	assert.True(t, p.CostBasis().IsZero())
}

func TestPortfolio_SellNeverGoesNegative(t *testing.T) {
	p := NewPortfolio(CostBasisKeep)
	price := decimal.RequireFromString("5.00")
	p.Buy("AAA", price)

	require.True(t, p.Sell("AAA", price))
	for i := 0; i < 5; i++ {
		assert.False(t, p.Sell("AAA", price))
	}
	assert.Equal(t, 0, p.Quantity("AAA"))
}

func TestPortfolio_CostBasisPolicies(t *testing.T) {
	buy := decimal.RequireFromString("100.00")
	sell := decimal.RequireFromString("120.00")

	reduce := NewPortfolio(CostBasisReduce)
	reduce.Buy("AAA", buy)
	require.True(t, reduce.Sell("AAA", sell))
	assert.Equal(t, "-20.00", reduce.CostBasis().StringFixed(2))

	keep := NewPortfolio(CostBasisKeep)
	keep.Buy("AAA", buy)
	require.True(t, keep.Sell("AAA", sell))
	assert.Equal(t, "100.00", keep.CostBasis().StringFixed(2))
}

func TestParseCostBasisPolicy(t *testing.T) {
	p, err := ParseCostBasisPolicy("reduce")
	require.NoError(t, err)
	assert.Equal(t, CostBasisReduce, p)

	p, err = ParseCostBasisPolicy("keep")
	require.NoError(t, err)
	assert.Equal(t, CostBasisKeep, p)

	_, err = ParseCostBasisPolicy("fifo")
	assert.Error(t, err)
}

func TestPortfolio_SymbolsSorted(t *testing.T) {
	p := NewPortfolio(CostBasisReduce)
	for _, s := range []string{"TSLA", "AAPL", "GME", "AMC"} {
		p.Track(s)
	}

	assert.Equal(t, []string{"AAPL", "AMC", "GME", "TSLA"}, p.Symbols())
}

func TestPortfolio_HistoryKeepsDateOrder(t *testing.T) {
	p := NewPortfolio(CostBasisReduce)
	p.RecordValue(date("2021-01-05"), decimal.RequireFromString("150.00"))
	p.RecordValue(date("2021-01-06"), decimal.RequireFromString("148.00"))

	h := p.History()
	require.Len(t, h, 2)
	assert.Equal(t, date("2021-01-05"), h[0].Date)
	assert.Equal(t, date("2021-01-06"), h[1].Date)
	assert.Equal(t, "150.00", h[0].Value.StringFixed(2))
}
