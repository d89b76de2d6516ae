// Package yahoo downloads daily stock history and the NASDAQ symbol
// directory. It is an offline preparation step: the simulation itself only
// ever reads the files this package writes.
package yahoo

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/alejandrodnm/crowdfolio/internal/adapters/csvdata"
	"github.com/alejandrodnm/crowdfolio/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultQueryBase     = "https://query1.finance.yahoo.com"
	defaultSymbolDirBase = "https://www.nasdaqtrader.com"

	symbolDirPath = "/dynamic/SymDir/nasdaqtraded.txt"

	// Stay well under the unauthenticated throttle; a full symbol sweep is
	// thousands of requests.
	historyRatePerSec = 4

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Client fetches market data over HTTP with rate limiting and retries.
type Client struct {
	http          *http.Client
	queryBase     string
	symbolDirBase string
	limiter       *rate.Limiter
}

// NewClient creates a Client. Empty base URLs fall back to production.
func NewClient(queryBase, symbolDirBase string) *Client {
	if queryBase == "" {
		queryBase = defaultQueryBase
	}
	if symbolDirBase == "" {
		symbolDirBase = defaultSymbolDirBase
	}
	return &Client{
		http:          &http.Client{Timeout: 15 * time.Second},
		queryBase:     queryBase,
		symbolDirBase: symbolDirBase,
		limiter:       rate.NewLimiter(historyRatePerSec, historyRatePerSec),
	}
}

// DailyHistory downloads and parses one symbol's daily opening prices over
// [start, end].
func (c *Client) DailyHistory(ctx context.Context, symbol string, start, end time.Time) (*domain.PriceSeries, error) {
	body, err := c.fetchHistoryCSV(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	return csvdata.ParsePriceCSV(bytes.NewReader(body), symbol)
}

// DownloadAll fetches every symbol's history into dir as <SYMBOL>.csv. A
// symbol that fails after retries is logged and skipped, broken listings
// are routine in the full NASDAQ directory.
func (c *Client) DownloadAll(ctx context.Context, symbols []string, dir string, start, end time.Time) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("yahoo.DownloadAll: %w", err)
	}

	written := 0
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("yahoo.DownloadAll: cancelled: %w", err)
		}
		body, err := c.fetchHistoryCSV(ctx, symbol, start, end)
		if err != nil {
			slog.Warn("yahoo: symbol appears to be broken, ignoring",
				"symbol", symbol, "err", err)
			continue
		}
		path := filepath.Join(dir, symbol+".csv")
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return fmt.Errorf("yahoo.DownloadAll: write %q: %w", path, err)
		}
		written++
	}

	slog.Info("yahoo: download finished", "requested", len(symbols), "written", written)
	return nil
}

func (c *Client) fetchHistoryCSV(ctx context.Context, symbol string, start, end time.Time) ([]byte, error) {
	u := fmt.Sprintf("%s/v7/finance/download/%s?period1=%d&period2=%d&interval=1d&events=history",
		c.queryBase, url.PathEscape(symbol), start.Unix(), end.Unix())
	return c.get(ctx, u)
}

// Symbols downloads the NASDAQ symbol directory and returns a symbol ->
// security name map, with test issues filtered out.
func (c *Client) Symbols(ctx context.Context) (map[string]string, error) {
	body, err := c.get(ctx, c.symbolDirBase+symbolDirPath)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(body))
	r.Comma = '|'
	// The feed ends with a short "File Creation Time" trailer row.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("yahoo.Symbols: read header: %w", err)
	}
	symbolCol, nameCol, testCol := -1, -1, -1
	for i, col := range header {
		switch col {
		case "NASDAQ Symbol":
			symbolCol = i
		case "Security Name":
			nameCol = i
		case "Test Issue":
			testCol = i
		}
	}
	if symbolCol < 0 || nameCol < 0 || testCol < 0 {
		return nil, fmt.Errorf("yahoo.Symbols: unexpected directory header %v", header)
	}

	symbols := make(map[string]string)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("yahoo.Symbols: read row: %w", err)
		}
		if len(row) <= symbolCol || len(row) <= testCol || len(row) <= nameCol {
			continue // trailer
		}
		if row[testCol] != "N" {
			continue
		}
		if row[symbolCol] == "" {
			continue
		}
		symbols[row[symbolCol]] = row[nameCol]
	}

	slog.Info("yahoo: symbol directory loaded", "symbols", len(symbols))
	return symbols, nil
}

// get performs a rate-limited GET with exponential-backoff retries on
// transient failures.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("yahoo: rate limiter: %w", err)
		}
		if attempt > 0 {
			wait := baseRetryWait << (attempt - 1)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("yahoo: build request: %w", err)
		}
		req.Header.Set("User-Agent", "crowdfolio/1.0")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK && readErr == nil:
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("yahoo: GET %s: status %d", u, resp.StatusCode)
			continue
		case readErr != nil:
			lastErr = fmt.Errorf("yahoo: GET %s: read body: %w", u, readErr)
			continue
		default:
			// 4xx other than 429 will not get better with retries.
			return nil, fmt.Errorf("yahoo: GET %s: status %d", u, resp.StatusCode)
		}
	}
	return nil, fmt.Errorf("yahoo: GET %s: giving up after %d attempts: %w", u, maxRetries+1, lastErr)
}
