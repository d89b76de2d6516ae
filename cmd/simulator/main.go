package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/crowdfolio/config"
	"github.com/alejandrodnm/crowdfolio/internal/adapters/csvdata"
	"github.com/alejandrodnm/crowdfolio/internal/adapters/notify"
	"github.com/alejandrodnm/crowdfolio/internal/adapters/storage"
	"github.com/alejandrodnm/crowdfolio/internal/market"
	"github.com/alejandrodnm/crowdfolio/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full result table (default: compact 1-line)")
	limit := flag.Int("limit", 0, "cap on scored posts loaded, 0 = no cap (overrides config)")
	dryRun := flag.Bool("dry-run", false, "skip persisting results to storage")
	download := flag.Bool("download", false, "download symbol directory + price history, then exit")
	score := flag.String("score", "", "score a raw posts CSV into data.scored_posts, then exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *limit > 0 {
		cfg.Simulation.PostLimit = *limit
	}
	setupLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *download {
		runDownload(ctx, cfg)
		return
	}
	if *score != "" {
		runScore(cfg, *score)
		return
	}

	slog.Info("crowdfolio starting",
		"config", *configPath,
		"start", cfg.Simulation.StartDate,
		"end", cfg.Simulation.EndDate,
		"communities", cfg.Simulation.Communities,
		"dry_run", *dryRun,
	)

	var postSource ports.PostSource = csvdata.ScoredPostsFile{
		Path:  cfg.Data.ScoredPosts,
		Limit: cfg.Simulation.PostLimit,
	}
	posts, err := postSource.ScoredPosts(ctx)
	if err != nil {
		slog.Error("failed to load scored posts", "err", err, "path", cfg.Data.ScoredPosts)
		os.Exit(1)
	}

	var priceSource ports.PriceSource = csvdata.PriceDataDir{Dir: cfg.Data.StockDataDir}
	stocks, err := priceSource.PriceSeries(ctx)
	if err != nil {
		slog.Error("failed to load price data", "err", err, "dir", cfg.Data.StockDataDir)
		os.Exit(1)
	}

	traders := make([]*market.Trader, 0, len(cfg.Simulation.Communities))
	for _, community := range cfg.Simulation.Communities {
		traders = append(traders, market.NewTrader(community, posts, cfg.Policy()))
	}

	var store *storage.SQLiteStore
	if !*dryRun {
		store, err = storage.NewSQLiteStore(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer store.Close()
	}

	notifier := notify.NewConsole(*table)

	marketCfg := market.Config{Start: cfg.StartDate(), End: cfg.EndDate()}

	var m *market.Market
	if store != nil {
		m, err = market.New(marketCfg, traders, stocks, store, notifier)
	} else {
		m, err = market.New(marketCfg, traders, stocks, nil, notifier)
	}
	if err != nil {
		slog.Error("invalid simulation setup", "err", err)
		os.Exit(1)
	}

	if _, err := m.Run(ctx); err != nil {
		slog.Error("simulation exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("crowdfolio finished cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
