package csvdata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alejandrodnm/crowdfolio/internal/domain"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// priceRecord mirrors one row of a per-symbol daily history file
// (Date,Open,High,Low,Close,...; only the first two columns matter here).
type priceRecord struct {
	Date string `csv:"Date"`
	Open string `csv:"Open"`
}

// ParsePriceCSV reads a daily history CSV into a price series. Rows with an
// unparseable date or price (the download format uses "null" for gaps) are
// skipped; the gap stays explicit in the series instead of becoming a zero.
func ParsePriceCSV(r io.Reader, symbol string) (*domain.PriceSeries, error) {
	var records []*priceRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("csvdata.ParsePriceCSV: %s: %w", symbol, err)
	}

	points := make([]domain.PricePoint, 0, len(records))
	for i, rec := range records {
		date, err := domain.ParseDate(strings.TrimSpace(rec.Date))
		if err != nil {
			slog.Debug("csvdata: skipping price row with bad date",
				"symbol", symbol, "row", i+1, "date", rec.Date)
			continue
		}
		open, err := decimal.NewFromString(strings.TrimSpace(rec.Open))
		if err != nil || open.IsNegative() {
			slog.Debug("csvdata: skipping price row with bad open",
				"symbol", symbol, "row", i+1, "open", rec.Open)
			continue
		}
		points = append(points, domain.PricePoint{Date: date, Open: open})
	}

	return domain.NewPriceSeries(symbol, points)
}

// LoadPriceSeries reads one symbol's history file.
func LoadPriceSeries(path, symbol string) (*domain.PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvdata.LoadPriceSeries: %w", err)
	}
	defer f.Close()
	return ParsePriceCSV(f, symbol)
}

// LoadPriceDir loads every <SYMBOL>.csv in dir into a symbol-keyed series
// map. A file that fails to parse is skipped with a warning: one broken
// download must not block the simulation.
func LoadPriceDir(dir string) (map[string]*domain.PriceSeries, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("csvdata.LoadPriceDir: %w", err)
	}

	stocks := make(map[string]*domain.PriceSeries)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		symbol := strings.TrimSuffix(entry.Name(), ".csv")
		series, err := LoadPriceSeries(filepath.Join(dir, entry.Name()), symbol)
		if err != nil {
			slog.Warn("csvdata: skipping unreadable price file",
				"symbol", symbol, "err", err)
			continue
		}
		if series.Len() == 0 {
			slog.Warn("csvdata: skipping empty price file", "symbol", symbol)
			continue
		}
		stocks[symbol] = series
	}

	slog.Info("csvdata: price series loaded", "dir", dir, "stocks", len(stocks))
	return stocks, nil
}

// PriceDataDir implements ports.PriceSource from a directory of per-symbol
// CSV files.
type PriceDataDir struct {
	Dir string
}

// PriceSeries loads every series in the directory.
func (p PriceDataDir) PriceSeries(ctx context.Context) (map[string]*domain.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadPriceDir(p.Dir)
}
