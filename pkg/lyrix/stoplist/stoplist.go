package stoplist

import (
	"sort"
	"strings"

	"github.com/bbalet/stopwords"
)

// Romanian is the ISO 639-1 code of the built-in Romanian stopword list.
const Romanian = "ro"

// The built-in Romanian list spells ș and ț with a cedilla, and its "în"
// entry carries a trailing space so it never matches.
var (
	toCedilla      = strings.NewReplacer("ș", "ş", "ț", "ţ")
	romanianMissed = map[string]struct{}{"în": {}}
)

// Manager answers stopword membership for lyric tokens.
// It is read-only once constructed and safe for concurrent use.
type Manager struct {
	stops map[string]struct{}
	lang  string // built-in list consulted after stops; empty disables it
}

// NewManager creates a manager from an explicit stopword list.
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]struct{}, len(initialStops))
	for _, s := range initialStops {
		stops[s] = struct{}{}
	}
	return &Manager{stops: stops}
}

// NewLanguageManager creates a manager backed by the built-in list for
// langCode, extended with extra words.
func NewLanguageManager(langCode string, extra []string) *Manager {
	m := NewManager(extra)
	m.lang = langCode
	return m
}

// IsStop checks if a token is a stopword. Tokens are compared as given;
// callers decide whether diacritics are folded first.
func (m *Manager) IsStop(token string) bool {
	if _, ok := m.stops[token]; ok {
		return true
	}
	if m.lang == "" || token == "" {
		return false
	}
	if m.lang == Romanian {
		if _, ok := romanianMissed[token]; ok {
			return true
		}
		if alt := toCedilla.Replace(token); alt != token && m.builtin(alt) {
			return true
		}
	}
	return m.builtin(token)
}

// builtin reports whether the language list drops token. The cleaner
// removes stopwords and keeps everything else.
func (m *Manager) builtin(token string) bool {
	return strings.TrimSpace(stopwords.CleanString(token, m.lang, false)) == ""
}

// Language returns the built-in list in use, or "" for explicit lists only.
func (m *Manager) Language() string {
	return m.lang
}

// All returns the explicit stopwords in lexical order. Words that only come
// from the built-in language list are not enumerated.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Len returns the number of explicit stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}
