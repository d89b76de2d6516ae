package sentiment

import (
	"sort"
	"strings"
	"unicode"

	"github.com/alejandrodnm/crowdfolio/internal/domain"
)

// Matcher finds tracked security symbols mentioned in post text. Matching is
// case-sensitive on purpose: many one- and two-letter tickers ("A", "IT",
// "ALL") are ordinary lowercase words, and only the uppercase form counts as
// a mention. Stopwords are dropped first as a second line of defense.
type Matcher struct {
	symbols map[string]struct{}
	stops   map[string]struct{}
}

// NewMatcher builds a matcher for the given symbol set.
func NewMatcher(symbols []string) *Matcher {
	return &Matcher{
		symbols: wordSet(symbols),
		stops:   wordSet(stopwords),
	}
}

// Match returns the tracked symbols mentioned in text, deduplicated and
// sorted.
func (m *Matcher) Match(text string) []string {
	seen := make(map[string]struct{})
	for _, word := range splitWords(text) {
		if _, stop := m.stops[strings.ToLower(word)]; stop {
			continue
		}
		if _, ok := m.symbols[word]; ok {
			seen[word] = struct{}{}
		}
	}

	matched := make([]string, 0, len(seen))
	for s := range seen {
		matched = append(matched, s)
	}
	sort.Strings(matched)
	return matched
}

// ScoreAll runs the full scoring pipeline: for every post that mentions at
// least one tracked symbol, emit one ScoredPost per mentioned symbol with
// the post's sentiment distribution and upvote weight. Posts mentioning
// nothing tracked are dropped.
func ScoreAll(analyzer *Analyzer, matcher *Matcher, posts []Post) []domain.ScoredPost {
	var scored []domain.ScoredPost
	for _, p := range posts {
		text := p.Title + " " + p.Body
		symbols := matcher.Match(text)
		if len(symbols) == 0 {
			continue
		}
		score := analyzer.Score(text)
		for _, symbol := range symbols {
			scored = append(scored, domain.ScoredPost{
				Date:      domain.Day(p.Date),
				Community: p.Community,
				Symbol:    symbol,
				Sentiment: score,
				Upvotes:   p.Upvotes,
			})
		}
	}
	return scored
}

// splitWords splits on non-alphanumeric runes, preserving case.
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
