package sentiment

// Financial sentiment word lists in the Loughran-McDonald tradition, trimmed
// to the vocabulary that actually shows up in retail investing forums.

var positiveWords = []string{
	"achieve", "beat", "benefit", "better", "boom", "breakout", "bull",
	"bullish", "buy", "calls", "cheap", "competitive", "confident",
	"diamond", "dip", "excellent", "exceptional", "favorable", "gain",
	"gains", "good", "great", "grew", "growth", "hold", "holding",
	"improve", "improved", "improvement", "increasing", "innovation",
	"leader", "leading", "long", "moon", "opportunity", "optimistic",
	"outperform", "positive", "potential", "profit", "profitable",
	"progress", "rally", "record", "recover", "recovery", "rocket",
	"solid", "squeeze", "strength", "strong", "succeed", "success",
	"successful", "superior", "support", "surge", "undervalued", "up",
	"upside", "valuable", "win", "winner", "winning", "yolo",
}

var negativeWords = []string{
	"adverse", "avoid", "bag", "bagholder", "bankrupt", "bankruptcy",
	"bear", "bearish", "bubble", "challenge", "challenging", "collapse",
	"concern", "concerns", "crash", "crisis", "damage", "debt", "decline",
	"decrease", "deficit", "difficult", "dilution", "disappoint",
	"disappointing", "down", "downturn", "drop", "dump", "fail",
	"failure", "falling", "fear", "fraud", "halt", "impair", "lawsuit",
	"liquidated", "loser", "loss", "losses", "margin", "negative",
	"overvalued", "panic", "plummet", "poor", "problem", "puts",
	"recession", "red", "rekt", "risk", "risks", "risky", "scam",
	"sell", "selling", "selloff", "short", "slow", "slowdown", "tank",
	"tanked", "uncertain", "uncertainty", "underperform", "unfavorable",
	"volatile", "volatility", "weak", "weakness", "worse", "worst",
}

// English stopwords stripped before symbol matching, so filler words never
// collide with short ticker symbols.
var stopwords = []string{
	"a", "about", "above", "after", "again", "against", "all", "am",
	"an", "and", "any", "are", "as", "at", "be", "because", "been",
	"before", "being", "below", "between", "both", "but", "by", "can",
	"did", "do", "does", "doing", "down", "during", "each", "few",
	"for", "from", "further", "had", "has", "have", "having", "he",
	"her", "here", "hers", "him", "his", "how", "i", "if", "in",
	"into", "is", "it", "its", "just", "me", "more", "most", "my",
	"no", "nor", "not", "now", "of", "off", "on", "once", "only",
	"or", "other", "our", "out", "over", "own", "same", "she",
	"should", "so", "some", "such", "than", "that", "the", "their",
	"them", "then", "there", "these", "they", "this", "those",
	"through", "to", "too", "under", "until", "up", "very", "was",
	"we", "were", "what", "when", "where", "which", "while", "who",
	"whom", "why", "will", "with", "you", "your", "yours",
}
