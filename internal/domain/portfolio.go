package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CostBasisPolicy decides what happens to the cost basis when a share is
// sold. The original data pipeline was inconsistent about this, so it is an
// explicit configuration choice rather than a guess.
type CostBasisPolicy string

const (
	// CostBasisReduce subtracts the sale price from the cost basis on every
	// sell, so the basis tracks net money currently deployed.
	CostBasisReduce CostBasisPolicy = "reduce"
	// CostBasisKeep never decrements the basis; it tracks gross money ever
	// spent on buys.
	CostBasisKeep CostBasisPolicy = "keep"
)

// ParseCostBasisPolicy validates a policy name from configuration.
func ParseCostBasisPolicy(s string) (CostBasisPolicy, error) {
	switch CostBasisPolicy(s) {
	case CostBasisReduce, CostBasisKeep:
		return CostBasisPolicy(s), nil
	default:
		return "", fmt.Errorf("domain.ParseCostBasisPolicy: unknown policy %q (want reduce|keep)", s)
	}
}

// ValuePoint is one day's realized portfolio value.
type ValuePoint struct {
	Date  time.Time
	Value decimal.Decimal
}

// Portfolio is one trader's holdings ledger: integer share counts per
// symbol, a running cost basis, and a date-ordered value history. Holdings
// never go negative; short selling does not exist here.
type Portfolio struct {
	holdings  map[string]int
	costBasis decimal.Decimal
	policy    CostBasisPolicy
	history   []ValuePoint
}

// NewPortfolio creates an empty portfolio with the given sell policy.
func NewPortfolio(policy CostBasisPolicy) *Portfolio {
	return &Portfolio{
		holdings: make(map[string]int),
		policy:   policy,
	}
}

// Track registers a symbol with a zero position so it shows up in the final
// holdings snapshot even if it is never bought.
func (p *Portfolio) Track(symbol string) {
	if _, ok := p.holdings[symbol]; !ok {
		p.holdings[symbol] = 0
	}
}

// Buy adds one share at the given price and grows the cost basis.
func (p *Portfolio) Buy(symbol string, price decimal.Decimal) {
	p.holdings[symbol]++
	p.costBasis = p.costBasis.Add(price)
}

// Sell removes one share at the given price. It returns false without
// mutating anything when there is nothing to sell; the holdings >= 0
// invariant is enforced here, unconditionally.
func (p *Portfolio) Sell(symbol string, price decimal.Decimal) bool {
	if p.holdings[symbol] <= 0 {
		return false
	}
	p.holdings[symbol]--
	if p.policy == CostBasisReduce {
		p.costBasis = p.costBasis.Sub(price)
	}
	return true
}

// Quantity returns the number of shares held for symbol.
func (p *Portfolio) Quantity(symbol string) int { return p.holdings[symbol] }

// Symbols returns every tracked symbol in lexical order. Persistence and
// valuation iterate this, never the map, so output order is a contract
// rather than an accident of map iteration.
func (p *Portfolio) Symbols() []string {
	symbols := make([]string, 0, len(p.holdings))
	for s := range p.holdings {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Holdings returns a copy of the symbol -> quantity snapshot.
func (p *Portfolio) Holdings() map[string]int {
	out := make(map[string]int, len(p.holdings))
	for s, q := range p.holdings {
		out[s] = q
	}
	return out
}

// CostBasis returns the running cost basis under the configured policy.
func (p *Portfolio) CostBasis() decimal.Decimal { return p.costBasis }

// RecordValue appends one day's computed value to the history. The market
// loop calls it exactly once per simulated date, in date order.
func (p *Portfolio) RecordValue(date time.Time, value decimal.Decimal) {
	p.history = append(p.history, ValuePoint{Date: Day(date), Value: value})
}

// History returns the date-ordered value history.
func (p *Portfolio) History() []ValuePoint { return p.history }
