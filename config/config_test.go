package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alejandrodnm/crowdfolio/config"
	"github.com/alejandrodnm/crowdfolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "{}\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2017-01-27", cfg.StartDate().Format(domain.DateLayout))
	assert.Equal(t, "2021-01-27", cfg.EndDate().Format(domain.DateLayout))
	assert.Equal(t, []string{"wallstreetbets", "investing", "stocks"}, cfg.Simulation.Communities)
	assert.Equal(t, domain.CostBasisReduce, cfg.Policy())
	assert.Equal(t, "crowdfolio.db", cfg.Storage.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
simulation:
  start_date: "2021-01-04"
  end_date: "2021-01-29"
  communities: [wallstreetbets]
  cost_basis_policy: keep
log:
  level: debug
  format: json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2021-01-04", cfg.StartDate().Format(domain.DateLayout))
	assert.Equal(t, domain.CostBasisKeep, cfg.Policy())
	assert.Equal(t, []string{"wallstreetbets"}, cfg.Simulation.Communities)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	path := writeConfig(t, "log:\n  level: info\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_BadValues(t *testing.T) {
	for name, body := range map[string]string{
		"bad date":   "simulation:\n  start_date: \"27/01/2017\"\n",
		"bad policy": "simulation:\n  cost_basis_policy: fifo\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
