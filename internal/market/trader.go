package market

import (
	"log/slog"
	"sort"
	"time"

	"github.com/alejandrodnm/crowdfolio/internal/domain"
	"github.com/shopspring/decimal"
)

// Trader is one community's simulated participant. It owns a fixed slice of
// that community's scored posts and a portfolio; nothing else in the market
// ever touches either.
type Trader struct {
	community string
	posts     []domain.ScoredPost
	portfolio *domain.Portfolio
}

// NewTrader filters posts down to the given community and seeds a zero
// position for every symbol the community ever mentions, so the final
// holdings snapshot covers untouched symbols too. The post slice is fixed
// at construction and never refreshed mid-run.
func NewTrader(community string, posts []domain.ScoredPost, policy domain.CostBasisPolicy) *Trader {
	t := &Trader{
		community: community,
		portfolio: domain.NewPortfolio(policy),
	}
	for _, p := range posts {
		if p.Community != community {
			continue
		}
		t.posts = append(t.posts, p)
		t.portfolio.Track(p.Symbol)
	}
	return t
}

// Community returns the community this trader simulates.
func (t *Trader) Community() string { return t.community }

// Portfolio exposes the trader's ledger, read-only once the run finishes.
func (t *Trader) Portfolio() *domain.Portfolio { return t.portfolio }

// DayTrade aggregates the day's posts into one net signal per symbol and
// applies the resulting unit trades. A symbol with no loaded price series,
// or no price for this date, is skipped with a diagnostic; a single data
// gap must never abort a multi-year run. Symbols are processed in lexical
// order so runs are reproducible.
func (t *Trader) DayTrade(date time.Time, stocks map[string]*domain.PriceSeries) {
	scores := domain.NetScores(t.posts, date)
	if len(scores) == 0 {
		return
	}

	symbols := make([]string, 0, len(scores))
	for s := range scores {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	day := date.Format(domain.DateLayout)
	for _, symbol := range symbols {
		sig := domain.Signal(scores[symbol])
		if sig == 0 {
			continue
		}

		series, ok := stocks[symbol]
		if !ok {
			slog.Warn("trader: no price series for mentioned symbol, skipping trade",
				"community", t.community, "symbol", symbol, "date", day)
			continue
		}
		open, ok := series.Open(date)
		if !ok {
			slog.Debug("trader: no opening price, skipping trade",
				"community", t.community, "symbol", symbol, "date", day)
			continue
		}

		if sig > 0 {
			t.portfolio.Buy(symbol, open)
			slog.Debug("trader: bought",
				"community", t.community, "symbol", symbol, "date", day,
				"price", open.StringFixed(2), "net", scores[symbol])
		} else if t.portfolio.Sell(symbol, open) {
			slog.Debug("trader: sold",
				"community", t.community, "symbol", symbol, "date", day,
				"price", open.StringFixed(2), "net", scores[symbol])
		}
	}
}

// EvaluatePortfolio computes the portfolio's worth on date (quantity times
// that day's opening price, summed over held symbols) and appends it to the
// value history. It must run after DayTrade for the same date so same-day
// trades show up in the day's value. A held symbol with no price that day
// contributes nothing, which is logged rather than silently valued at zero.
func (t *Trader) EvaluatePortfolio(date time.Time, stocks map[string]*domain.PriceSeries) {
	total := decimal.Zero
	for _, symbol := range t.portfolio.Symbols() {
		qty := t.portfolio.Quantity(symbol)
		if qty == 0 {
			continue
		}
		series, ok := stocks[symbol]
		if !ok {
			slog.Debug("trader: valuing without series, symbol contributes 0",
				"community", t.community, "symbol", symbol)
			continue
		}
		open, ok := series.Open(date)
		if !ok {
			slog.Debug("trader: valuing without price, symbol contributes 0",
				"community", t.community, "symbol", symbol,
				"date", date.Format(domain.DateLayout))
			continue
		}
		total = total.Add(open.Mul(decimal.NewFromInt(int64(qty))))
	}
	t.portfolio.RecordValue(date, total)
}

// result snapshots the trader's final state for persistence.
func (t *Trader) result() domain.TraderResult {
	return domain.TraderResult{
		Community: t.community,
		Holdings:  t.portfolio.Holdings(),
		CostBasis: t.portfolio.CostBasis(),
		History:   t.portfolio.History(),
	}
}
