package main

import (
	"log/slog"
	"os"

	"github.com/alejandrodnm/crowdfolio/config"
	"github.com/alejandrodnm/crowdfolio/internal/adapters/csvdata"
	"github.com/alejandrodnm/crowdfolio/internal/sentiment"
)

// runScore turns a raw posts CSV into the scored dataset the simulation
// consumes: every post gets a sentiment distribution and one output row per
// stock symbol mentioned in its text.
func runScore(cfg *config.Config, rawPath string) {
	posts, err := csvdata.LoadRawPosts(rawPath, cfg.Simulation.PostLimit)
	if err != nil {
		slog.Error("failed to load raw posts", "err", err, "path", rawPath)
		os.Exit(1)
	}

	symbols, err := csvdata.LoadSymbols(cfg.Data.SymbolsFile)
	if err != nil {
		slog.Error("failed to load symbol directory", "err", err, "path", cfg.Data.SymbolsFile)
		os.Exit(1)
	}

	matcher := sentiment.NewMatcher(csvdata.SymbolList(symbols))
	scored := sentiment.ScoreAll(sentiment.NewAnalyzer(), matcher, posts)

	if err := csvdata.WriteScoredPosts(cfg.Data.ScoredPosts, scored); err != nil {
		slog.Error("failed to write scored posts", "err", err, "path", cfg.Data.ScoredPosts)
		os.Exit(1)
	}

	slog.Info("scoring complete",
		"raw_posts", len(posts),
		"scored_rows", len(scored),
		"out", cfg.Data.ScoredPosts,
	)
}
