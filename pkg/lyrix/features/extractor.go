// Package features computes numeric lyric features: segmentation counts,
// vocabulary statistics, vulgarity and slur counts, sentiment ratios and
// repetition patterns.
//
// An Extractor is built once from the loaded lexicons and never mutated, so
// a single instance can serve concurrent callers. Every method is total:
// empty or degenerate text yields zero counts, 0.0 ratios and an empty top
// word rather than an error.
package features

import (
	"strings"
	"unicode/utf8"

	"github.com/cognicore/lyrix/pkg/lyrix/ingest"
	"github.com/cognicore/lyrix/pkg/lyrix/lexicon"
	"github.com/cognicore/lyrix/pkg/lyrix/stoplist"
)

// Options configures an Extractor
type Options struct {
	Segmenter *ingest.Segmenter
	Stoplist  *stoplist.Manager
	Swear     lexicon.Set // expanded swear words
	Ethnic    lexicon.Set // expanded ethnic slurs
	Sexual    lexicon.Set // expanded sexual slurs
	Sentiment lexicon.Sentiment
}

// Extractor computes lyric features against a fixed set of lexicons
type Extractor struct {
	pipeline  *ingest.Pipeline
	stops     *stoplist.Manager
	swear     lexicon.Set
	ethnic    lexicon.Set
	sexual    lexicon.Set
	sentiment lexicon.Sentiment
}

// New creates an Extractor. Missing lexicons behave as empty ones.
func New(opts Options) *Extractor {
	stops := opts.Stoplist
	if stops == nil {
		stops = stoplist.NewManager(nil)
	}
	return &Extractor{
		pipeline:  ingest.NewPipeline(opts.Segmenter),
		stops:     stops,
		swear:     opts.Swear,
		ethnic:    opts.Ethnic,
		sexual:    opts.Sexual,
		sentiment: opts.Sentiment,
	}
}

// Pipeline returns the normalization pipeline the extractor runs text through.
func (e *Extractor) Pipeline() *ingest.Pipeline {
	return e.pipeline
}

func (e *Extractor) folded(text string) []string {
	return e.pipeline.Tokens(text, true)
}

func (e *Extractor) unfolded(text string) []string {
	return e.pipeline.Tokens(text, false)
}

func (e *Extractor) verses(text string) []string {
	return e.pipeline.Segmenter().Verses(text)
}

func (e *Extractor) phrases(text string) []string {
	return e.pipeline.Segmenter().Phrases(text)
}

// VerseCount returns the number of cleaned verses.
func (e *Extractor) VerseCount(text string) int {
	return len(e.verses(text))
}

// PhraseCount returns the number of cleaned phrases.
func (e *Extractor) PhraseCount(text string) int {
	return len(e.phrases(text))
}

// MeanVerseLength returns words per verse.
func (e *Extractor) MeanVerseLength(text string) float64 {
	return ratio(e.WordCount(text), e.VerseCount(text))
}

// MeanPhraseLength returns words per phrase.
func (e *Extractor) MeanPhraseLength(text string) float64 {
	return ratio(e.WordCount(text), e.PhraseCount(text))
}

// CharCount returns the length in characters of the verses joined by single spaces.
func (e *Extractor) CharCount(text string) int {
	return charCount(e.verses(text))
}

// WordCount returns the number of tokens.
func (e *Extractor) WordCount(text string) int {
	return len(e.folded(text))
}

// StopwordCount counts tokens, diacritics kept, found in the stopword list.
func (e *Extractor) StopwordCount(text string) int {
	return e.countStops(e.unfolded(text))
}

// StopwordRatio returns StopwordCount over WordCount.
func (e *Extractor) StopwordRatio(text string) float64 {
	return ratio(e.StopwordCount(text), e.WordCount(text))
}

// MeanWordLength returns the mean length of folded tokens that are not stopwords.
func (e *Extractor) MeanWordLength(text string) float64 {
	return e.meanWordLength(e.folded(text))
}

// EnjambementCount counts verses, except the last, that do not end in
// sentence punctuation.
func (e *Extractor) EnjambementCount(text string) int {
	return enjambements(e.verses(text))
}

// SwearWordCount counts tokens found in the expanded swear-word set.
func (e *Extractor) SwearWordCount(text string) int {
	return countIn(e.folded(text), e.swear)
}

// SwearWordRatio returns SwearWordCount over WordCount.
func (e *Extractor) SwearWordRatio(text string) float64 {
	return ratio(e.SwearWordCount(text), e.WordCount(text))
}

// EthnicSlurCount counts tokens found in the expanded ethnic-slur set.
func (e *Extractor) EthnicSlurCount(text string) int {
	return countIn(e.folded(text), e.ethnic)
}

// EthnicSlurRatio returns EthnicSlurCount over WordCount.
func (e *Extractor) EthnicSlurRatio(text string) float64 {
	return ratio(e.EthnicSlurCount(text), e.WordCount(text))
}

// SexualSlurCount counts tokens found in the expanded sexual-slur set.
func (e *Extractor) SexualSlurCount(text string) int {
	return countIn(e.folded(text), e.sexual)
}

// SexualSlurRatio returns SexualSlurCount over WordCount.
func (e *Extractor) SexualSlurRatio(text string) float64 {
	return ratio(e.SexualSlurCount(text), e.WordCount(text))
}

// AllVulgaritiesCount is the sum of swear-word, ethnic-slur and sexual-slur counts.
func (e *Extractor) AllVulgaritiesCount(text string) int {
	tokens := e.folded(text)
	return countIn(tokens, e.swear) + countIn(tokens, e.ethnic) + countIn(tokens, e.sexual)
}

// AllVulgaritiesRatio returns AllVulgaritiesCount over WordCount. A token
// found in more than one set counts once per set, so the ratio can exceed 1.
func (e *Extractor) AllVulgaritiesRatio(text string) float64 {
	return ratio(e.AllVulgaritiesCount(text), e.WordCount(text))
}

func (e *Extractor) countStops(tokens []string) int {
	n := 0
	for _, tok := range tokens {
		if e.stops.IsStop(tok) {
			n++
		}
	}
	return n
}

func (e *Extractor) meanWordLength(folded []string) float64 {
	total, n := 0, 0
	for _, tok := range folded {
		if e.stops.IsStop(tok) {
			continue
		}
		total += utf8.RuneCountInString(tok)
		n++
	}
	return ratio(total, n)
}

func countIn(tokens []string, set lexicon.Set) int {
	n := 0
	for _, tok := range tokens {
		if set.Has(tok) {
			n++
		}
	}
	return n
}

func charCount(verses []string) int {
	return utf8.RuneCountInString(strings.Join(verses, " "))
}

func enjambements(verses []string) int {
	n := 0
	for i := 0; i < len(verses)-1; i++ {
		v := strings.TrimSpace(verses[i])
		if !strings.HasSuffix(v, ".") && !strings.HasSuffix(v, "!") && !strings.HasSuffix(v, "?") {
			n++
		}
	}
	return n
}

// ratio divides and returns 0 for an empty denominator.
func ratio(num, den int) float64 {
	if den <= 0 {
		return 0.0
	}
	return float64(num) / float64(den)
}
