package csvdata

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
)

// symbolRecord is one "SYMBOL, Company Name" line of the headerless symbol
// directory file.
type symbolRecord struct {
	Symbol string
	Name   string
}

// LoadSymbols reads the symbol directory into a symbol -> company name map.
func LoadSymbols(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvdata.LoadSymbols: %w", err)
	}
	defer f.Close()

	var records []*symbolRecord
	if err := gocsv.UnmarshalWithoutHeaders(f, &records); err != nil {
		return nil, fmt.Errorf("csvdata.LoadSymbols: parse %q: %w", path, err)
	}

	symbols := make(map[string]string, len(records))
	for _, rec := range records {
		symbol := strings.TrimSpace(rec.Symbol)
		if symbol == "" {
			continue
		}
		symbols[symbol] = strings.TrimSpace(rec.Name)
	}
	return symbols, nil
}

// WriteSymbols persists the symbol directory in the same headerless format.
func WriteSymbols(path string, symbols map[string]string) error {
	names := make([]string, 0, len(symbols))
	for s := range symbols {
		names = append(names, s)
	}
	sort.Strings(names)

	records := make([]*symbolRecord, 0, len(names))
	for _, s := range names {
		records = append(records, &symbolRecord{Symbol: s, Name: symbols[s]})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvdata.WriteSymbols: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalWithoutHeaders(&records, f); err != nil {
		return fmt.Errorf("csvdata.WriteSymbols: write %q: %w", path, err)
	}
	return nil
}

// SymbolList flattens the directory map into a sorted symbol slice for the
// matcher.
func SymbolList(symbols map[string]string) []string {
	list := make([]string, 0, len(symbols))
	for s := range symbols {
		list = append(list, s)
	}
	sort.Strings(list)
	return list
}
