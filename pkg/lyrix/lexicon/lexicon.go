package lexicon

import (
	"sort"
)

// Category tags a lexicon entry with the kind of vulgarity it represents.
// Generic swear words carry no category.
type Category string

const (
	Generic Category = ""
	Sexual  Category = "sexual"
	Ethnic  Category = "ethnic"
)

// Entry is one record from a slur or swear-word source.
type Entry struct {
	ID       int      // Source line number
	Text     string   // The word or n-gram as written in the source
	Category Category // Empty for generic swear words
}

// Lexicon stores lexicon entries keyed by their text.
//
// Keys are unique: loading an entry whose text is already present replaces
// the earlier record. A Lexicon is meant to be built once and then only read.
type Lexicon struct {
	entries map[string]Entry
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{entries: make(map[string]Entry)}
}

// Load builds a lexicon from raw entries. Later duplicates win.
func Load(entries []Entry) *Lexicon {
	lex := New()
	for _, e := range entries {
		lex.entries[e.Text] = e
	}
	return lex
}

// Get returns the entry stored under text.
func (l *Lexicon) Get(text string) (Entry, bool) {
	e, ok := l.entries[text]
	return e, ok
}

// Len returns the number of distinct entries.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Entries returns all entries ordered by source line.
func (l *Lexicon) Entries() []Entry {
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].Text < out[j].Text
	})
	return out
}

// ByCategory returns the entries tagged with cat, ordered by source line.
// An entry without a category never matches Sexual or Ethnic.
func (l *Lexicon) ByCategory(cat Category) []Entry {
	var out []Entry
	for _, e := range l.Entries() {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// Expanded returns the expanded match set for every entry of category cat.
func (l *Lexicon) Expanded(cat Category) Set {
	return ExpandSet(l.ByCategory(cat)...)
}

// ExpandAll returns the expanded match set for every entry regardless of
// category. Used for the swear-word lexicon.
func (l *Lexicon) ExpandAll() Set {
	return ExpandSet(l.Entries()...)
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() Stats {
	var s Stats
	for _, e := range l.entries {
		s.Entries++
		switch e.Category {
		case Sexual:
			s.Sexual++
		case Ethnic:
			s.Ethnic++
		case Generic:
			s.Generic++
		default:
			s.Unknown++
		}
	}
	return s
}

// Stats holds statistics about lexicon contents.
type Stats struct {
	Entries int // Distinct entries
	Sexual  int
	Ethnic  int
	Generic int // Entries without a category
	Unknown int // Entries whose category is neither sexual nor ethnic
}

// Set is a hash set of strings used for O(1) lexicon membership.
type Set map[string]struct{}

// NewSet builds a set from the given words.
func NewSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Add inserts words into the set.
func (s Set) Add(words ...string) {
	for _, w := range words {
		s[w] = struct{}{}
	}
}

// Has reports whether word is in the set. A nil set contains nothing.
func (s Set) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
