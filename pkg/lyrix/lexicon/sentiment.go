package lexicon

// Polarity is the sentiment class of a single token.
type Polarity int

const (
	Neutral Polarity = iota
	Positive
	Negative
)

// Sentiment holds the positive and negative word lists.
type Sentiment struct {
	Positive Set
	Negative Set
}

// NewSentiment builds a sentiment lexicon from raw word lists.
func NewSentiment(positive, negative []string) Sentiment {
	return Sentiment{
		Positive: NewSet(positive...),
		Negative: NewSet(negative...),
	}
}

// Classify returns the polarity of token. The positive list is consulted
// first, so a word present in both lists is always Positive.
func (s Sentiment) Classify(token string) Polarity {
	if s.Positive.Has(token) {
		return Positive
	}
	if s.Negative.Has(token) {
		return Negative
	}
	return Neutral
}
