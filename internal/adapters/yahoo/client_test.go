package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const historyCSV = `Date,Open,High,Low,Close,Adj Close,Volume
2021-01-04,133.52,133.61,126.76,129.41,128.45,143301900
2021-01-05,128.89,131.74,128.43,131.01,130.04,97664900
`

const symbolDir = `Nasdaq Traded|Symbol|Security Name|Listing Exchange|Market Category|ETF|Round Lot Size|Test Issue|Financial Status|CQS Symbol|NASDAQ Symbol|NextShares
Y|AAPL|Apple Inc. - Common Stock|Q|Q|N|100|N|N||AAPL|N
Y|GME|GameStop Corporation - Class A|N| |N|100|N||GME|GME|N
Y|ZTST|Test listing|Q|Q|N|100|Y|N||ZTST|N
File Creation Time: 0129202121:30|||||||||||
`

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.URL)
}

func TestClient_DailyHistory(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v7/finance/download/AAPL"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		fmt.Fprint(w, historyCSV)
	}))

	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC)
	series, err := c.DailyHistory(context.Background(), "AAPL", start, end)
	require.NoError(t, err)

	assert.Equal(t, 2, series.Len())
	open, ok := series.Open(time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "128.89", open.StringFixed(2))
}

func TestClient_Symbols_FiltersTestIssues(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, symbolDirPath, r.URL.Path)
		fmt.Fprint(w, symbolDir)
	}))

	symbols, err := c.Symbols(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"AAPL": "Apple Inc. - Common Stock",
		"GME":  "GameStop Corporation - Class A",
	}, symbols)
}

func TestClient_Get_RetriesTransientErrors(t *testing.T) {
	var calls int
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, historyCSV)
	}))

	_, err := c.DailyHistory(context.Background(), "AAPL",
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestClient_Get_PermanentErrorDoesNotRetry(t *testing.T) {
	var calls int
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.DailyHistory(context.Background(), "BROKEN",
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
