package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alejandrodnm/crowdfolio/config"
	"github.com/alejandrodnm/crowdfolio/internal/adapters/csvdata"
	"github.com/alejandrodnm/crowdfolio/internal/adapters/yahoo"
)

// runDownload refreshes the local datasets: the NASDAQ symbol directory and
// one price history CSV per symbol. With thousands of symbols and the rate
// limiter in front this takes a while; it is meant to run once, not per
// simulation.
func runDownload(ctx context.Context, cfg *config.Config) {
	client := yahoo.NewClient("", "")

	symbols, err := csvdata.LoadSymbols(cfg.Data.SymbolsFile)
	if err != nil {
		slog.Info("no local symbol directory, fetching it", "path", cfg.Data.SymbolsFile)
		symbols, err = client.Symbols(ctx)
		if err != nil {
			slog.Error("failed to fetch symbol directory", "err", err)
			os.Exit(1)
		}
		if err := csvdata.WriteSymbols(cfg.Data.SymbolsFile, symbols); err != nil {
			slog.Error("failed to write symbol directory", "err", err, "path", cfg.Data.SymbolsFile)
			os.Exit(1)
		}
	}
	slog.Info("symbol directory ready", "symbols", len(symbols), "path", cfg.Data.SymbolsFile)

	start, end := cfg.StartDate(), cfg.EndDate()
	if err := client.DownloadAll(ctx, csvdata.SymbolList(symbols), cfg.Data.StockDataDir, start, end); err != nil {
		slog.Error("price download failed", "err", err)
		os.Exit(1)
	}

	slog.Info("download complete", "dir", cfg.Data.StockDataDir)
}
