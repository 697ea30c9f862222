package features

// Features is the full feature row of one lyric.
type Features struct {
	VerseCount          int     `json:"verse_count"`
	PhraseCount         int     `json:"phrase_count"`
	MeanVerseLength     float64 `json:"mean_verse_length"`
	MeanPhraseLength    float64 `json:"mean_phrase_length"`
	CharCount           int     `json:"char_count"`
	WordCount           int     `json:"word_count"`
	StopwordCount       int     `json:"stopword_count"`
	StopwordRatio       float64 `json:"stopword_ratio"`
	MeanWordLength      float64 `json:"mean_word_length"`
	VocabSize           int     `json:"vocab_size"`
	EnjambementCount    int     `json:"enjambement_count"`
	SwearWordCount      int     `json:"swear_word_count"`
	SwearWordRatio      float64 `json:"swear_word_ratio"`
	EthnicSlurCount     int     `json:"ethnic_slur_count"`
	EthnicSlurRatio     float64 `json:"ethnic_slur_ratio"`
	SexualSlurCount     int     `json:"sexual_slur_count"`
	SexualSlurRatio     float64 `json:"sexual_slur_ratio"`
	AllVulgaritiesCount int     `json:"all_vulgarities_count"`
	AllVulgaritiesRatio float64 `json:"all_vulgarities_ratio"`

	// Sentiment over all words, and over sentiment-bearing words only
	Sentiment        SentimentScores `json:"sentiment"`
	SentimentMatched SentimentScores `json:"sentiment_matched"`

	TopWord             string    `json:"top_word"`
	RepetitionsMaxCount int       `json:"repetitions_max_count"`
	RepetitionsPosition Positions `json:"repetitions_position"`
}

// FeatureNames lists the columns of Features.Vector in order.
var FeatureNames = []string{
	"verse_count",
	"phrase_count",
	"mean_verse_length",
	"mean_phrase_length",
	"char_count",
	"word_count",
	"stopword_count",
	"stopword_ratio",
	"mean_word_length",
	"vocab_size",
	"enjambement_count",
	"swear_word_count",
	"swear_word_ratio",
	"ethnic_slur_count",
	"ethnic_slur_ratio",
	"sexual_slur_count",
	"sexual_slur_ratio",
	"all_vulgarities_count",
	"all_vulgarities_ratio",
	"positive_sentiment",
	"negative_sentiment",
	"positive_sentiment_matched",
	"negative_sentiment_matched",
	"repetitions_max_count",
	"repetitions_beginning",
	"repetitions_end",
}

// Vector returns the numeric features in FeatureNames order. TopWord is
// not numeric and is left out.
func (f Features) Vector() []float64 {
	return []float64{
		float64(f.VerseCount),
		float64(f.PhraseCount),
		f.MeanVerseLength,
		f.MeanPhraseLength,
		float64(f.CharCount),
		float64(f.WordCount),
		float64(f.StopwordCount),
		f.StopwordRatio,
		f.MeanWordLength,
		float64(f.VocabSize),
		float64(f.EnjambementCount),
		float64(f.SwearWordCount),
		f.SwearWordRatio,
		float64(f.EthnicSlurCount),
		f.EthnicSlurRatio,
		float64(f.SexualSlurCount),
		f.SexualSlurRatio,
		float64(f.AllVulgaritiesCount),
		f.AllVulgaritiesRatio,
		f.Sentiment.Positive,
		f.Sentiment.Negative,
		f.SentimentMatched.Positive,
		f.SentimentMatched.Negative,
		float64(f.RepetitionsMaxCount),
		float64(f.RepetitionsPosition.Beginning),
		float64(f.RepetitionsPosition.End),
	}
}

// Extract computes every feature of text from a single normalization pass.
func (e *Extractor) Extract(text string) Features {
	p := e.pipeline.Process(text)
	words := len(p.FoldedTokens)

	var f Features
	f.VerseCount = len(p.Verses)
	f.PhraseCount = len(p.Phrases)
	f.MeanVerseLength = ratio(words, f.VerseCount)
	f.MeanPhraseLength = ratio(words, f.PhraseCount)
	f.CharCount = charCount(p.Verses)
	f.WordCount = words
	f.StopwordCount = e.countStops(p.Tokens)
	f.StopwordRatio = ratio(f.StopwordCount, words)
	f.MeanWordLength = e.meanWordLength(p.FoldedTokens)
	f.EnjambementCount = enjambements(p.Verses)

	f.SwearWordCount = countIn(p.FoldedTokens, e.swear)
	f.SwearWordRatio = ratio(f.SwearWordCount, words)
	f.EthnicSlurCount = countIn(p.FoldedTokens, e.ethnic)
	f.EthnicSlurRatio = ratio(f.EthnicSlurCount, words)
	f.SexualSlurCount = countIn(p.FoldedTokens, e.sexual)
	f.SexualSlurRatio = ratio(f.SexualSlurCount, words)
	f.AllVulgaritiesCount = f.SwearWordCount + f.EthnicSlurCount + f.SexualSlurCount
	f.AllVulgaritiesRatio = ratio(f.AllVulgaritiesCount, words)

	f.Sentiment = e.sentimentScores(p.FoldedTokens, RatioAll)
	f.SentimentMatched = e.sentimentScores(p.FoldedTokens, RatioMatched)

	vocab := e.vocabulary(p.Tokens, true)
	f.VocabSize = vocab.Len()
	f.TopWord = vocab.Top()
	f.RepetitionsMaxCount = repetitionsMaxCount(f.TopWord, p.Verses)
	f.RepetitionsPosition = e.repetitionsPosition(p.Verses)

	return f
}
