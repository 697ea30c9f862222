package lexicon

import "strings"

// MaskRune replaces interior characters in censored variations.
const MaskRune = '*'

var diacriticFolder = strings.NewReplacer(
	"ă", "a",
	"â", "a",
	"î", "i",
	"ș", "s",
	"ț", "t",
)

// FoldDiacritics replaces the lowercase Romanian letters ă, â, î, ș and ț
// with their ASCII base letters. Everything else is left untouched.
func FoldDiacritics(s string) string {
	return diacriticFolder.Replace(s)
}

// CensoredVariations returns the masked spellings of text: one per interior
// position (first and last runes are never masked), followed by one with every
// interior rune masked.
//
// Texts shorter than three runes have no interior, so the only variation is an
// unmodified copy of text.
func CensoredVariations(text string) []string {
	runes := []rune(text)
	n := len(runes)

	var variations []string
	for i := 1; i < n-1; i++ {
		masked := make([]rune, n)
		copy(masked, runes)
		masked[i] = MaskRune
		variations = append(variations, string(masked))
	}

	all := make([]rune, n)
	copy(all, runes)
	for i := 1; i < n-1; i++ {
		all[i] = MaskRune
	}
	return append(variations, string(all))
}

// Expand returns every spelling that should match entry text: the text itself,
// its diacritic-folded alias when that differs, and its censored variations.
// Duplicates are dropped, first occurrence wins.
//
//	Expand("abcd") -> ["abcd", "a*cd", "ab*d", "a**d"]
func Expand(text string) []string {
	out := []string{text}
	seen := map[string]bool{text: true}

	if alias := FoldDiacritics(text); alias != text {
		out = append(out, alias)
		seen[alias] = true
	}

	for _, v := range CensoredVariations(text) {
		if !seen[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	return out
}

// ExpandSet expands every entry into a single match set.
func ExpandSet(entries ...Entry) Set {
	s := make(Set)
	for _, e := range entries {
		s.Add(Expand(e.Text)...)
	}
	return s
}
