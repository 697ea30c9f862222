package features

import (
	"strings"

	"github.com/cognicore/lyrix/pkg/lyrix/ingest"
)

// Vocabulary is a token frequency table in first-appearance order.
// Labels[i] occurs Frequencies[i] times.
type Vocabulary struct {
	Labels      []string
	Frequencies []int
}

// Len returns the number of distinct tokens.
func (v Vocabulary) Len() int {
	return len(v.Labels)
}

// Top returns the most frequent label. It returns "" when the vocabulary is
// empty or when no token repeats. Ties go to the label seen first.
func (v Vocabulary) Top() string {
	best := -1
	for i, f := range v.Frequencies {
		if best < 0 || f > v.Frequencies[best] {
			best = i
		}
	}
	if best < 0 || v.Frequencies[best] <= 1 {
		return ""
	}
	return v.Labels[best]
}

// Positions counts where repeated words sit inside their verses.
type Positions struct {
	Beginning int `json:"beginning"`
	End       int `json:"end"`
}

// Vocabulary builds the frequency table of tokens with diacritics kept.
// Stopwords are left out when excludeStopwords is true.
func (e *Extractor) Vocabulary(text string, excludeStopwords bool) Vocabulary {
	return e.vocabulary(e.unfolded(text), excludeStopwords)
}

// VocabSize returns the number of distinct non-stopword tokens.
func (e *Extractor) VocabSize(text string) int {
	return e.Vocabulary(text, true).Len()
}

// TopWordByFrequency returns the most repeated non-stopword token, or "" when
// nothing repeats.
func (e *Extractor) TopWordByFrequency(text string) string {
	return e.Vocabulary(text, true).Top()
}

// RepetitionsMaxCount returns the longest run of consecutive occurrences of
// the top word inside a single verse. Runs never span verses.
func (e *Extractor) RepetitionsMaxCount(text string) int {
	return repetitionsMaxCount(e.TopWordByFrequency(text), e.verses(text))
}

// RepetitionsPosition classifies, per verse, the verse's own top word as
// sitting in the first or second half of the verse, by its first occurrence,
// and adds all its occurrences to that half.
func (e *Extractor) RepetitionsPosition(text string) Positions {
	return e.repetitionsPosition(e.verses(text))
}

func (e *Extractor) vocabulary(tokens []string, excludeStopwords bool) Vocabulary {
	var v Vocabulary
	index := make(map[string]int)
	for _, tok := range tokens {
		if excludeStopwords && e.stops.IsStop(tok) {
			continue
		}
		if i, ok := index[tok]; ok {
			v.Frequencies[i]++
			continue
		}
		index[tok] = len(v.Labels)
		v.Labels = append(v.Labels, tok)
		v.Frequencies = append(v.Frequencies, 1)
	}
	return v
}

// repetitionsMaxCount compares the top word against the raw whitespace-split
// verse words, so case and in-word hyphens must match exactly.
func repetitionsMaxCount(top string, verses []string) int {
	if top == "" {
		return 0
	}
	maxRun := 0
	for _, verse := range verses {
		if run := longestRun(strings.Split(verse, " "), top); run > maxRun {
			maxRun = run
		}
	}
	return maxRun
}

func longestRun(words []string, target string) int {
	longest, current := 0, 0
	for _, w := range words {
		if w != target {
			current = 0
			continue
		}
		current++
		if current > longest {
			longest = current
		}
	}
	return longest
}

func (e *Extractor) repetitionsPosition(verses []string) Positions {
	var p Positions
	for _, verse := range verses {
		tokens := ingest.Tokenize(verse, false)
		top := e.vocabulary(tokens, true).Top()
		if top == "" {
			continue
		}

		first, count := -1, 0
		for i, tok := range tokens {
			if tok != top {
				continue
			}
			if first < 0 {
				first = i
			}
			count++
		}

		midpoint := float64(len(tokens)) / 2.0
		if float64(first) < midpoint {
			p.Beginning += count
		} else {
			p.End += count
		}
	}
	return p
}
