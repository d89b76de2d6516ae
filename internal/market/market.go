// Package market runs the day-by-day portfolio simulation: each community
// trader replays its scored posts against historical opening prices, and the
// resulting value histories are persisted when the run finishes.
package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/crowdfolio/internal/domain"
	"github.com/alejandrodnm/crowdfolio/internal/ports"
	"github.com/google/uuid"
)

// Configuration errors are fatal and reported before the loop starts; a
// half-configured simulation must not run at all.
var (
	ErrNoTraders    = errors.New("market: no traders configured")
	ErrNoStocks     = errors.New("market: no price series loaded")
	ErrBadDateRange = errors.New("market: start date after end date")
)

// Config is the simulated date range. Both bounds are calendar days; End is
// inclusive.
type Config struct {
	Start time.Time
	End   time.Time
}

// Market orchestrates the simulation: it owns the loaded price series and
// the traders, drives the date cursor, and hands the finished run to the
// store and notifier. Store and notifier may be nil for dry runs.
type Market struct {
	cfg      Config
	traders  []*Trader
	stocks   map[string]*domain.PriceSeries
	store    ports.ResultStore
	notifier ports.Notifier
}

// New validates the configuration and builds a market ready to run.
func New(cfg Config, traders []*Trader, stocks map[string]*domain.PriceSeries, store ports.ResultStore, notifier ports.Notifier) (*Market, error) {
	if len(traders) == 0 {
		return nil, ErrNoTraders
	}
	if len(stocks) == 0 {
		return nil, ErrNoStocks
	}
	if cfg.Start.After(cfg.End) {
		return nil, fmt.Errorf("%w: %s > %s", ErrBadDateRange,
			cfg.Start.Format(domain.DateLayout), cfg.End.Format(domain.DateLayout))
	}
	return &Market{
		cfg:      Config{Start: domain.Day(cfg.Start), End: domain.Day(cfg.End)},
		traders:  traders,
		stocks:   stocks,
		store:    store,
		notifier: notifier,
	}, nil
}

// Run replays the calendar from start to end. The cursor advances one day
// per iteration; every trader runs its trade step and then its valuation
// step for that day, in construction order, before the cursor moves on. The
// end date itself is processed. For fixed inputs the produced histories are
// identical across runs: no randomness and no wall clock anywhere in the
// decision path.
//
// There is no partial state: a run interrupted mid-loop persists nothing and
// is re-run from the start.
func (m *Market) Run(ctx context.Context) (domain.RunResult, error) {
	startedAt := time.Now().UTC()
	slog.Info("market: simulation starting",
		"start", m.cfg.Start.Format(domain.DateLayout),
		"end", m.cfg.End.Format(domain.DateLayout),
		"traders", len(m.traders),
		"stocks", len(m.stocks),
	)

	days := 0
	for cursor := m.cfg.Start.AddDate(0, 0, 1); !cursor.After(m.cfg.End); cursor = cursor.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return domain.RunResult{}, fmt.Errorf("market.Run: cancelled on %s: %w",
				cursor.Format(domain.DateLayout), err)
		}
		for _, trader := range m.traders {
			trader.DayTrade(cursor, m.stocks)
			trader.EvaluatePortfolio(cursor, m.stocks)
		}
		days++
	}

	run := domain.RunResult{
		ID:        uuid.New().String(),
		StartedAt: startedAt,
		Start:     m.cfg.Start,
		End:       m.cfg.End,
	}
	for _, trader := range m.traders {
		run.Traders = append(run.Traders, trader.result())
	}

	if m.store != nil {
		if err := m.store.SaveRun(ctx, run); err != nil {
			return domain.RunResult{}, fmt.Errorf("market.Run: persist run: %w", err)
		}
	}
	if m.notifier != nil {
		if err := m.notifier.Notify(ctx, run); err != nil {
			slog.Warn("market: notifier error", "err", err)
		}
	}

	slog.Info("market: simulation finished",
		"run", run.ID, "days", days, "elapsed", time.Since(startedAt))
	return run, nil
}
