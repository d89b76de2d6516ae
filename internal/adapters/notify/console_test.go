package notify_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alejandrodnm/crowdfolio/internal/adapters/notify"
	"github.com/alejandrodnm/crowdfolio/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun(t *testing.T) domain.RunResult {
	t.Helper()
	day := func(s string) time.Time {
		d, err := domain.ParseDate(s)
		require.NoError(t, err)
		return d
	}
	return domain.RunResult{
		ID:    "run-1",
		Start: day("2021-01-04"),
		End:   day("2021-01-06"),
		Traders: []domain.TraderResult{
			{
				Community: "wallstreetbets",
				Holdings:  map[string]int{"GME": 3, "AMC": 1, "BB": 0},
				CostBasis: decimal.RequireFromString("400.00"),
				History: []domain.ValuePoint{
					{Date: day("2021-01-05"), Value: decimal.RequireFromString("390.00")},
					{Date: day("2021-01-06"), Value: decimal.RequireFromString("512.50")},
				},
			},
			{
				Community: "investing",
				Holdings:  map[string]int{},
				CostBasis: decimal.Zero,
			},
		},
	}
}

func TestConsole_Compact(t *testing.T) {
	var buf bytes.Buffer
	console := notify.NewConsoleWriter(&buf, false)

	require.NoError(t, console.Notify(context.Background(), sampleRun(t)))

	out := buf.String()
	assert.Contains(t, out, "[2021-01-04..2021-01-06] 2 traders")
	assert.Contains(t, out, "r/wallstreetbets val:$512.50 pnl:$112.50")
	assert.Contains(t, out, "r/investing val:$0.00 pnl:$0.00")
}

func TestConsole_Table(t *testing.T) {
	var buf bytes.Buffer
	console := notify.NewConsoleWriter(&buf, true)

	require.NoError(t, console.Notify(context.Background(), sampleRun(t)))

	out := buf.String()
	assert.Contains(t, out, "run run-1")
	assert.Contains(t, out, "r/wallstreetbets")
	assert.Contains(t, out, "$512.50")
	assert.Contains(t, out, "$112.50")
	// Largest position first, the zero BB position hidden.
	assert.Contains(t, out, "GME×3 AMC×1")
	assert.NotContains(t, out, "BB×")
	assert.Contains(t, out, "r/investing: no open positions")
}

func TestConsole_EmptyRun(t *testing.T) {
	var buf bytes.Buffer
	console := notify.NewConsoleWriter(&buf, true)

	require.NoError(t, console.Notify(context.Background(), domain.RunResult{ID: "empty"}))
	assert.Contains(t, buf.String(), "no traders in run")
}
