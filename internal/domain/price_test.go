package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceSeries_OpenAndMissing(t *testing.T) {
	series, err := NewPriceSeries("AAA", []PricePoint{
		{Date: date("2021-01-05"), Open: decimal.RequireFromString("150.004")},
		{Date: date("2021-01-06"), Open: decimal.RequireFromString("151.20")},
	})
	require.NoError(t, err)

	open, ok := series.Open(date("2021-01-05"))
	require.True(t, ok)
	assert.Equal(t, "150.00", open.StringFixed(2)) // rounded to cents

	// A gap is reported as absent, not as a zero price.
	_, ok = series.Open(date("2021-01-09"))
	assert.False(t, ok)

	assert.Equal(t, "AAA", series.Symbol())
	assert.Equal(t, 2, series.Len())
}

func TestNewPriceSeries_RejectsDuplicateDate(t *testing.T) {
	_, err := NewPriceSeries("AAA", []PricePoint{
		{Date: date("2021-01-05"), Open: decimal.RequireFromString("150.00")},
		{Date: date("2021-01-05"), Open: decimal.RequireFromString("151.00")},
	})
	assert.Error(t, err)
}

func TestNewPriceSeries_RejectsNegativeOpen(t *testing.T) {
	_, err := NewPriceSeries("AAA", []PricePoint{
		{Date: date("2021-01-05"), Open: decimal.RequireFromString("-1.00")},
	})
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2021-01-05")
	require.NoError(t, err)
	assert.Equal(t, "2021-01-05", d.Format(DateLayout))

	_, err = ParseDate("01/05/2021")
	assert.Error(t, err)
}
