package domain

import "time"

// DateLayout is the ISO calendar-date layout used everywhere in the engine.
// Dates never carry a time component; a post's timestamp is truncated to its
// calendar day upstream.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date into a UTC midnight time.Time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SentimentScore is a {positive, neutral, negative} distribution over a
// post's text, summing to 1.0.
type SentimentScore struct {
	Positive float64
	Neutral  float64
	Negative float64
}

// Bullish reports whether the post reads as a positive signal.
// An exact positive/negative tie counts as bearish. This is a documented
// policy of the decision rule, not an accident: flat-sentiment posts must
// never push a buy.
func (s SentimentScore) Bullish() bool {
	return s.Positive > s.Negative
}

// ScoredPost is one sentiment-scored mention of a security in a community
// post. A post mentioning several securities becomes several records.
type ScoredPost struct {
	Date      time.Time // calendar day, UTC midnight
	Community string    // subreddit name, e.g. "wallstreetbets"
	Symbol    string
	Sentiment SentimentScore
	Upvotes   int64 // engagement weight, >= 0
}
