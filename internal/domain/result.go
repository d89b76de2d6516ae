package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TraderResult is one community's final state after a simulation run.
type TraderResult struct {
	Community string
	Holdings  map[string]int
	CostBasis decimal.Decimal
	History   []ValuePoint
}

// FinalValue returns the last recorded portfolio value, or zero for an
// empty history.
func (r TraderResult) FinalValue() decimal.Decimal {
	if len(r.History) == 0 {
		return decimal.Zero
	}
	return r.History[len(r.History)-1].Value
}

// ProfitLoss is the final value minus the cost basis.
func (r TraderResult) ProfitLoss() decimal.Decimal {
	return r.FinalValue().Sub(r.CostBasis)
}

// RunResult is the persisted output of one full simulation.
type RunResult struct {
	ID        string // uuid, assigned when the run finishes loading
	StartedAt time.Time
	Start     time.Time // first calendar day of the simulated range
	End       time.Time // last calendar day, inclusive
	Traders   []TraderResult
}
