package features

import "github.com/cognicore/lyrix/pkg/lyrix/lexicon"

// RatioMode selects the denominator of sentiment scores.
type RatioMode string

const (
	// RatioAll divides by the total word count.
	RatioAll RatioMode = "all"
	// RatioMatched divides by the number of words that carry sentiment.
	// Any mode other than RatioAll behaves like RatioMatched.
	RatioMatched RatioMode = "matched"
)

// SentimentScores holds the share of positive and negative words.
type SentimentScores struct {
	Positive float64 `json:"positive_sentiment"`
	Negative float64 `json:"negative_sentiment"`
}

// SentimentScores classifies folded tokens against the sentiment lexicon.
// A word in both lists counts as positive only.
func (e *Extractor) SentimentScores(text string, mode RatioMode) SentimentScores {
	return e.sentimentScores(e.folded(text), mode)
}

func (e *Extractor) sentimentScores(folded []string, mode RatioMode) SentimentScores {
	positive, negative := 0, 0
	for _, tok := range folded {
		switch e.sentiment.Classify(tok) {
		case lexicon.Positive:
			positive++
		case lexicon.Negative:
			negative++
		}
	}

	den := positive + negative
	if mode == RatioAll {
		den = len(folded)
	}
	return SentimentScores{
		Positive: ratio(positive, den),
		Negative: ratio(negative, den),
	}
}
