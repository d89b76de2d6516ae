package config

import (
	"fmt"
	"os"
	"time"

	"github.com/alejandrodnm/crowdfolio/internal/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full simulator configuration.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Data       DataConfig       `yaml:"data"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
}

// SimulationConfig controls the simulated date range and trader roster.
type SimulationConfig struct {
	StartDate       string   `yaml:"start_date"` // YYYY-MM-DD, trading begins the day after
	EndDate         string   `yaml:"end_date"`   // YYYY-MM-DD, inclusive
	Communities     []string `yaml:"communities"`
	CostBasisPolicy string   `yaml:"cost_basis_policy"` // reduce | keep
	PostLimit       int      `yaml:"post_limit"`        // 0 = load every scored post
}

// DataConfig points at the input datasets on disk.
type DataConfig struct {
	ScoredPosts  string `yaml:"scored_posts"`   // CSV of sentiment-scored posts
	StockDataDir string `yaml:"stock_data_dir"` // one CSV per symbol
	SymbolsFile  string `yaml:"symbols_file"`
}

// StorageConfig controls where results are persisted.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // SQLite file path, or ":memory:"
}

// LogConfig controls the logging format and level.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads the YAML config file plus a .env file if present. Values from
// the environment override the YAML for the keys that map to them.
func Load(path string) (*Config, error) {
	// Load .env if present, missing file is fine.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// StartDate returns the parsed simulation start date.
func (c *Config) StartDate() time.Time {
	d, _ := domain.ParseDate(c.Simulation.StartDate)
	return d
}

// EndDate returns the parsed simulation end date.
func (c *Config) EndDate() time.Time {
	d, _ := domain.ParseDate(c.Simulation.EndDate)
	return d
}

// Policy returns the parsed cost basis policy.
func (c *Config) Policy() domain.CostBasisPolicy {
	p, _ := domain.ParseCostBasisPolicy(c.Simulation.CostBasisPolicy)
	return p
}

func (c *Config) validate() error {
	if _, err := domain.ParseDate(c.Simulation.StartDate); err != nil {
		return fmt.Errorf("config.Load: start_date: %w", err)
	}
	if _, err := domain.ParseDate(c.Simulation.EndDate); err != nil {
		return fmt.Errorf("config.Load: end_date: %w", err)
	}
	if _, err := domain.ParseCostBasisPolicy(c.Simulation.CostBasisPolicy); err != nil {
		return fmt.Errorf("config.Load: cost_basis_policy: %w", err)
	}
	return nil
}

// applyEnvOverrides replaces values with environment variables when set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
}

// setDefaults fills in anything the YAML left out.
func setDefaults(cfg *Config) {
	if cfg.Simulation.StartDate == "" {
		cfg.Simulation.StartDate = "2017-01-27"
	}
	if cfg.Simulation.EndDate == "" {
		cfg.Simulation.EndDate = "2021-01-27"
	}
	if len(cfg.Simulation.Communities) == 0 {
		cfg.Simulation.Communities = []string{"wallstreetbets", "investing", "stocks"}
	}
	if cfg.Simulation.CostBasisPolicy == "" {
		cfg.Simulation.CostBasisPolicy = string(domain.CostBasisReduce)
	}
	if cfg.Data.ScoredPosts == "" {
		cfg.Data.ScoredPosts = "data/scored_posts.csv"
	}
	if cfg.Data.StockDataDir == "" {
		cfg.Data.StockDataDir = "data/stocks"
	}
	if cfg.Data.SymbolsFile == "" {
		cfg.Data.SymbolsFile = "data/symbols.csv"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "crowdfolio.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
