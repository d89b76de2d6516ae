// Package sentiment scores raw community posts into {positive, neutral,
// negative} distributions and matches their text against the tracked symbol
// table. The scoring is a plain lexicon count: deterministic, no model, no
// network.
package sentiment

import (
	"strings"
	"time"
	"unicode"

	"github.com/alejandrodnm/crowdfolio/internal/domain"
)

// Post is one raw community post before scoring.
type Post struct {
	Title     string
	Body      string
	Community string
	Upvotes   int64
	Date      time.Time
}

// Analyzer scores text with financial sentiment word lists.
type Analyzer struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

// NewAnalyzer builds an analyzer with the built-in lexicon.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		positive: wordSet(positiveWords),
		negative: wordSet(negativeWords),
	}
}

// Score computes the sentiment distribution of text. Every token counts
// toward exactly one bucket, so the three shares always sum to 1.0. Text
// with no tokens is fully neutral.
func (a *Analyzer) Score(text string) domain.SentimentScore {
	words := Tokenize(text)
	if len(words) == 0 {
		return domain.SentimentScore{Neutral: 1}
	}

	var pos, neg int
	for _, w := range words {
		if _, ok := a.positive[w]; ok {
			pos++
		} else if _, ok := a.negative[w]; ok {
			neg++
		}
	}

	total := float64(len(words))
	score := domain.SentimentScore{
		Positive: float64(pos) / total,
		Negative: float64(neg) / total,
	}
	score.Neutral = 1 - score.Positive - score.Negative
	return score
}

// Tokenize lowercases text and splits it into alphanumeric words, dropping
// punctuation entirely.
func Tokenize(text string) []string {
	text = strings.ToLower(text)

	var words []string
	var current strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
