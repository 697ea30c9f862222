package ingest

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/lyrix/pkg/lyrix/lexicon"
)

// isRomanianLetter reports whether r belongs to the Romanian Latin alphabet.
func isRomanianLetter(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	}
	switch r {
	case 'ă', 'â', 'î', 'ș', 'ț', 'Ă', 'Â', 'Î', 'Ș', 'Ț':
		return true
	}
	return false
}

// Tokenize lowercases text, optionally folds Romanian diacritics, and splits it
// into words made only of Romanian letters. Every other character separates
// words. Tokens keep their left-to-right order; empty tokens are never returned.
//
// Input is NFC-normalized first so that decomposed letters (a + U+0306) count
// as the single letter ă.
func Tokenize(text string, stripDiacritics bool) []string {
	text = strings.ToLower(norm.NFC.String(text))
	if stripDiacritics {
		text = lexicon.FoldDiacritics(text)
	}

	cleaned := strings.Map(func(r rune) rune {
		if isRomanianLetter(r) {
			return r
		}
		return ' '
	}, text)

	return strings.Fields(cleaned)
}

// Stringify coerces an arbitrary value into the text the extractors work on.
// nil becomes the empty string.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
