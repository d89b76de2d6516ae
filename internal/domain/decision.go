package domain

import "time"

// NetScores collapses all of one day's posts into a single signed score per
// symbol: the sum of upvotes on bullish posts minus the sum of upvotes on
// bearish posts. A single heavily-upvoted post outweighs several low-traffic
// ones, so the score is weighted by engagement rather than post count.
//
// Summation is order-independent; permuting posts never changes the result.
func NetScores(posts []ScoredPost, date time.Time) map[string]int64 {
	day := Day(date)
	scores := make(map[string]int64)
	for _, p := range posts {
		if !p.Date.Equal(day) {
			continue
		}
		if p.Sentiment.Bullish() {
			scores[p.Symbol] += p.Upvotes
		} else {
			scores[p.Symbol] -= p.Upvotes
		}
	}
	return scores
}

// Signal maps a net score to a unit trade: +1 buy one share, -1 sell one
// share, 0 hold. The sell guard (holdings must stay >= 0) is applied by the
// portfolio, not here; this stays a pure function of the score.
func Signal(net int64) int {
	switch {
	case net > 0:
		return 1
	case net < 0:
		return -1
	default:
		return 0
	}
}
