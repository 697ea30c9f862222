package ingest

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultNewlineMarker stands in for a line break in single-line lyric text.
const DefaultNewlineMarker = "[NL]"

// maxDashRatio is the hyphen share at or above which a segment is discarded
// as a separator or tablature line.
const maxDashRatio = 0.5

var (
	nonWordRun    = regexp.MustCompile(`[^\p{L}\p{N}_\-']+`)
	multiDash     = regexp.MustCompile(`-{2,}`)
	decimalDigit  = regexp.MustCompile(`\p{Nd}`)
	phraseBreaker = regexp.MustCompile(`[.;!?:]`)
)

// Segmenter splits lyric text into cleaned verses and phrases.
type Segmenter struct {
	marker string
	chords map[string]struct{}
}

// NewSegmenter creates a segmenter that splits verses on marker and strips the
// given chord symbols. An empty marker falls back to DefaultNewlineMarker.
func NewSegmenter(marker string, chords []string) *Segmenter {
	if marker == "" {
		marker = DefaultNewlineMarker
	}
	set := make(map[string]struct{}, len(chords))
	for _, c := range chords {
		set[c] = struct{}{}
	}
	return &Segmenter{marker: marker, chords: set}
}

// Marker returns the newline marker the segmenter splits on.
func (s *Segmenter) Marker() string {
	return s.marker
}

// IsChord reports whether token is a known chord symbol.
func (s *Segmenter) IsChord(token string) bool {
	_, ok := s.chords[token]
	return ok
}

// Verses splits text on the newline marker and returns the cleaned,
// non-empty verses.
func (s *Segmenter) Verses(text string) []string {
	return s.cleanAll(strings.Split(norm.NFC.String(text), s.marker))
}

// RestoreNewlines replaces every newline marker with a real line break.
func (s *Segmenter) RestoreNewlines(text string) string {
	return strings.ReplaceAll(text, s.marker, "\n")
}

// Phrases splits text on sentence punctuation (. ; ! ? :) and returns the
// cleaned, non-empty phrases. Line breaks do not end a phrase.
func (s *Segmenter) Phrases(text string) []string {
	restored := s.RestoreNewlines(norm.NFC.String(text))
	return s.cleanAll(phraseBreaker.Split(restored, -1))
}

func (s *Segmenter) cleanAll(segments []string) []string {
	var out []string
	for _, seg := range segments {
		if cleaned, ok := s.clean(seg); ok {
			out = append(out, cleaned)
		}
	}
	return out
}

// clean applies the segment cleaning steps in order. The dash ratio is taken
// before chords and digits are removed, so a chord-heavy line is judged on its
// full content.
func (s *Segmenter) clean(segment string) (string, bool) {
	cleaned := nonWordRun.ReplaceAllString(segment, " ")

	n := utf8.RuneCountInString(cleaned)
	if n == 0 {
		return "", false
	}
	if float64(strings.Count(cleaned, "-"))/float64(n) >= maxDashRatio {
		return "", false
	}

	cleaned = multiDash.ReplaceAllString(cleaned, " ")
	cleaned = s.removeChords(cleaned)
	cleaned = decimalDigit.ReplaceAllString(cleaned, " ")
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	if cleaned == "" {
		return "", false
	}
	return cleaned, true
}

// removeChords drops space-delimited tokens that exactly match a chord symbol.
func (s *Segmenter) removeChords(text string) string {
	if len(s.chords) == 0 {
		return text
	}
	words := strings.Split(text, " ")
	kept := words[:0]
	for _, w := range words {
		if !s.IsChord(w) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
