package storage

// sqlite.go: persistence for finished simulation runs.
//
// Layout:
//   - `runs`: one row per simulation run.
//   - `portfolios`: one row per (run, trader) with the final cost basis.
//   - `holdings`: final quantity per (run, trader, symbol), zeros included
//     so the snapshot covers every symbol the trader ever tracked.
//   - `portfolio_values`: one row per (run, trader, date).
//
// Money columns are TEXT: values are written with fixed 2-decimal
// formatting and read back through the decimal package, so nothing ever
// round-trips through a float.

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/alejandrodnm/crowdfolio/internal/domain"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id         TEXT PRIMARY KEY,
    started_at DATETIME NOT NULL,
    start_date TEXT     NOT NULL,
    end_date   TEXT     NOT NULL
);

CREATE TABLE IF NOT EXISTS portfolios (
    run_id     TEXT NOT NULL,
    community  TEXT NOT NULL,
    cost_basis TEXT NOT NULL,
    PRIMARY KEY (run_id, community)
);

CREATE TABLE IF NOT EXISTS holdings (
    run_id    TEXT    NOT NULL,
    community TEXT    NOT NULL,
    symbol    TEXT    NOT NULL,
    quantity  INTEGER NOT NULL,
    PRIMARY KEY (run_id, community, symbol)
);

CREATE TABLE IF NOT EXISTS portfolio_values (
    run_id    TEXT NOT NULL,
    community TEXT NOT NULL,
    date      TEXT NOT NULL,
    value     TEXT NOT NULL,
    PRIMARY KEY (run_id, community, date)
);

CREATE INDEX IF NOT EXISTS idx_values_trader ON portfolio_values(run_id, community, date);
`

// SQLiteStore implements ports.ResultStore on SQLite (pure Go, no CGo).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and applies the
// schema. Use ":memory:" for tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStore: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStore: apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// SaveRun persists the whole run in one transaction: either the full result
// lands or nothing does. There is no partial, resumable state.
func (s *SQLiteStore) SaveRun(ctx context.Context, run domain.RunResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveRun: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, start_date, end_date) VALUES (?, ?, ?, ?)`,
		run.ID, run.StartedAt,
		run.Start.Format(domain.DateLayout), run.End.Format(domain.DateLayout),
	); err != nil {
		return fmt.Errorf("storage.SaveRun: insert run: %w", err)
	}

	holdingStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO holdings (run_id, community, symbol, quantity) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage.SaveRun: prepare holdings: %w", err)
	}
	defer holdingStmt.Close()

	valueStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO portfolio_values (run_id, community, date, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage.SaveRun: prepare values: %w", err)
	}
	defer valueStmt.Close()

	for _, trader := range run.Traders {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO portfolios (run_id, community, cost_basis) VALUES (?, ?, ?)`,
			run.ID, trader.Community, trader.CostBasis.StringFixed(2),
		); err != nil {
			return fmt.Errorf("storage.SaveRun: insert portfolio %s: %w", trader.Community, err)
		}

		// Insert in lexical symbol order: row order is part of the
		// output contract, not a map-iteration accident.
		symbols := make([]string, 0, len(trader.Holdings))
		for symbol := range trader.Holdings {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)
		for _, symbol := range symbols {
			if _, err := holdingStmt.ExecContext(ctx,
				run.ID, trader.Community, symbol, trader.Holdings[symbol],
			); err != nil {
				return fmt.Errorf("storage.SaveRun: insert holding %s/%s: %w",
					trader.Community, symbol, err)
			}
		}

		for _, point := range trader.History {
			if _, err := valueStmt.ExecContext(ctx,
				run.ID, trader.Community,
				point.Date.Format(domain.DateLayout), point.Value.StringFixed(2),
			); err != nil {
				return fmt.Errorf("storage.SaveRun: insert value %s/%s: %w",
					trader.Community, point.Date.Format(domain.DateLayout), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveRun: commit: %w", err)
	}
	return nil
}

// ValueHistory returns a trader's persisted history ordered by date.
func (s *SQLiteStore) ValueHistory(ctx context.Context, runID, community string) ([]domain.ValuePoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, value FROM portfolio_values
		WHERE run_id = ? AND community = ?
		ORDER BY date ASC
	`, runID, community)
	if err != nil {
		return nil, fmt.Errorf("storage.ValueHistory: query: %w", err)
	}
	defer rows.Close()

	var history []domain.ValuePoint
	for rows.Next() {
		var dateStr, valueStr string
		if err := rows.Scan(&dateStr, &valueStr); err != nil {
			return nil, fmt.Errorf("storage.ValueHistory: scan row: %w", err)
		}
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("storage.ValueHistory: bad date %q: %w", dateStr, err)
		}
		value, err := decimal.NewFromString(valueStr)
		if err != nil {
			return nil, fmt.Errorf("storage.ValueHistory: bad value %q: %w", valueStr, err)
		}
		history = append(history, domain.ValuePoint{Date: date, Value: value})
	}
	return history, rows.Err()
}

// Holdings returns a trader's persisted holdings snapshot.
func (s *SQLiteStore) Holdings(ctx context.Context, runID, community string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, quantity FROM holdings
		WHERE run_id = ? AND community = ?
	`, runID, community)
	if err != nil {
		return nil, fmt.Errorf("storage.Holdings: query: %w", err)
	}
	defer rows.Close()

	holdings := make(map[string]int)
	for rows.Next() {
		var symbol string
		var quantity int
		if err := rows.Scan(&symbol, &quantity); err != nil {
			return nil, fmt.Errorf("storage.Holdings: scan row: %w", err)
		}
		holdings[symbol] = quantity
	}
	return holdings, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
