package config

import (
	"fmt"

	"github.com/cognicore/lyrix/pkg/lyrix/features"
	"github.com/cognicore/lyrix/pkg/lyrix/ingest"
	"github.com/cognicore/lyrix/pkg/lyrix/lexicon"
	"github.com/cognicore/lyrix/pkg/lyrix/stoplist"
)

// Loader loads all lexicon sources and constructs components
type Loader struct {
	SlursPath      string
	SwearWordsPath string
	PositivePath   string
	NegativePath   string
	ChordsPath     string
	StoplistPath   string

	// StopwordLanguage selects a built-in stopword list. When neither this
	// nor StoplistPath is set, the Romanian list is used.
	StopwordLanguage string
	NewlineMarker    string
}

// Components holds all loaded components
type Components struct {
	Slurs      *lexicon.Lexicon
	SwearWords *lexicon.Lexicon
	Sentiment  lexicon.Sentiment
	Stoplist   *stoplist.Manager
	Segmenter  *ingest.Segmenter
	Extractor  *features.Extractor
}

// Load reads every configured source and returns initialized components.
// Any unreadable source fails the whole load; an empty path yields an empty
// component.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Slurs
	var slurs []lexicon.Entry
	if l.SlursPath != "" {
		entries, err := LoadSlurs(l.SlursPath)
		if err != nil {
			return nil, fmt.Errorf("load slurs: %w", err)
		}
		slurs = entries
	}
	comp.Slurs = lexicon.Load(slurs)

	// Swear words
	var swears []lexicon.Entry
	if l.SwearWordsPath != "" {
		entries, err := LoadSwearWords(l.SwearWordsPath)
		if err != nil {
			return nil, fmt.Errorf("load swear words: %w", err)
		}
		swears = entries
	}
	comp.SwearWords = lexicon.Load(swears)

	// Sentiment
	var positive, negative []string
	if l.PositivePath != "" {
		words, err := LoadWordList(l.PositivePath)
		if err != nil {
			return nil, fmt.Errorf("load positive words: %w", err)
		}
		positive = words
	}
	if l.NegativePath != "" {
		words, err := LoadWordList(l.NegativePath)
		if err != nil {
			return nil, fmt.Errorf("load negative words: %w", err)
		}
		negative = words
	}
	comp.Sentiment = lexicon.NewSentiment(positive, negative)

	// Chords
	var chords []string
	if l.ChordsPath != "" {
		c, err := LoadChords(l.ChordsPath)
		if err != nil {
			return nil, fmt.Errorf("load chords: %w", err)
		}
		chords = c
	}
	comp.Segmenter = ingest.NewSegmenter(l.NewlineMarker, chords)

	// Stoplist
	var terms []string
	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		terms = sl.Terms
	}
	switch {
	case l.StopwordLanguage != "":
		comp.Stoplist = stoplist.NewLanguageManager(l.StopwordLanguage, terms)
	case l.StoplistPath != "":
		comp.Stoplist = stoplist.NewManager(terms)
	default:
		comp.Stoplist = stoplist.NewLanguageManager(stoplist.Romanian, nil)
	}

	comp.Extractor = features.New(features.Options{
		Segmenter: comp.Segmenter,
		Stoplist:  comp.Stoplist,
		Swear:     comp.SwearWords.ExpandAll(),
		Ethnic:    comp.Slurs.Expanded(lexicon.Ethnic),
		Sexual:    comp.Slurs.Expanded(lexicon.Sexual),
		Sentiment: comp.Sentiment,
	})

	return comp, nil
}
