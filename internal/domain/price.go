package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one trading day's opening price for a security.
type PricePoint struct {
	Date time.Time
	Open decimal.Decimal
}

// PriceSeries is a read-only mapping from calendar date to opening price for
// one security. Missing dates are genuinely absent, a lookup distinguishes
// "no data" from a zero price so callers can pick their own fallback.
type PriceSeries struct {
	symbol string
	opens  map[string]decimal.Decimal
}

// NewPriceSeries builds the series from historical points. Opening prices
// are rounded to 2 decimals. Duplicate or negative entries are rejected:
// a series with two opens for the same day is corrupt input, not a policy
// question.
func NewPriceSeries(symbol string, points []PricePoint) (*PriceSeries, error) {
	opens := make(map[string]decimal.Decimal, len(points))
	for _, p := range points {
		key := Day(p.Date).Format(DateLayout)
		if _, dup := opens[key]; dup {
			return nil, fmt.Errorf("domain.NewPriceSeries: %s: duplicate date %s", symbol, key)
		}
		if p.Open.IsNegative() {
			return nil, fmt.Errorf("domain.NewPriceSeries: %s: negative open on %s", symbol, key)
		}
		opens[key] = p.Open.Round(2)
	}
	return &PriceSeries{symbol: symbol, opens: opens}, nil
}

// Symbol returns the security symbol this series belongs to.
func (s *PriceSeries) Symbol() string { return s.symbol }

// Len returns the number of trading days in the series.
func (s *PriceSeries) Len() int { return len(s.opens) }

// Open returns the opening price on date. The second return value is false
// when the series has no entry for that day (weekend, holiday, data gap).
func (s *PriceSeries) Open(date time.Time) (decimal.Decimal, bool) {
	open, ok := s.opens[Day(date).Format(DateLayout)]
	return open, ok
}
