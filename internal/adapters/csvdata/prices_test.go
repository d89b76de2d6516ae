package csvdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const priceCSV = `Date,Open,High,Low,Close,Adj Close,Volume
2021-01-04,133.52,133.61,126.76,129.41,128.45,143301900
2021-01-05,128.89,131.74,128.43,131.01,130.04,97664900
2021-01-06,null,131.05,126.38,126.60,125.66,155088000
garbage-date,100.00,0,0,0,0,0
`

func TestParsePriceCSV(t *testing.T) {
	series, err := ParsePriceCSV(strings.NewReader(priceCSV), "AAPL")
	require.NoError(t, err)

	// The null open and the bad date are gaps, not zeros.
	assert.Equal(t, 2, series.Len())

	open, ok := series.Open(mustDate(t, "2021-01-04"))
	require.True(t, ok)
	assert.Equal(t, "133.52", open.StringFixed(2))

	_, ok = series.Open(mustDate(t, "2021-01-06"))
	assert.False(t, ok)
}

func TestLoadPriceDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AAPL.csv"), []byte(priceCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "EMPTY.csv"), []byte("Date,Open\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	stocks, err := LoadPriceDir(dir)
	require.NoError(t, err)

	// Only AAPL survives: the empty file and the non-CSV are skipped.
	require.Len(t, stocks, 1)
	assert.Equal(t, "AAPL", stocks["AAPL"].Symbol())
}

func TestLoadPriceDir_MissingDir(t *testing.T) {
	_, err := LoadPriceDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestSymbols_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols_names.csv")
	in := map[string]string{
		"AAPL": "Apple Inc. - Common Stock",
		"GME":  "GameStop Corporation - Class A",
	}

	require.NoError(t, WriteSymbols(path, in))

	out, err := LoadSymbols(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, []string{"AAPL", "GME"}, SymbolList(out))
}
