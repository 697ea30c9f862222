package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/lyrix/pkg/lyrix/internalerr"
	"github.com/cognicore/lyrix/pkg/lyrix/lexicon"
)

// readLines returns the file's lines with line endings removed.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines, nil
}

// LoadSlurs loads slur entries from a delimited file.
// Format: header row, then ngram,kind per line (kind is sexual or ethnic).
// The entry ID is the line number; rows without a kind get no category.
func LoadSlurs(path string) ([]lexicon.Entry, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	var entries []lexicon.Entry
	for i, line := range lines {
		if i == 0 || line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		entry := lexicon.Entry{ID: i, Text: parts[0]}
		if len(parts) > 1 {
			entry.Category = lexicon.Category(strings.TrimSpace(parts[1]))
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// LoadSwearWords loads generic swear words, one per line after a header row.
func LoadSwearWords(path string) ([]lexicon.Entry, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	var entries []lexicon.Entry
	for i, line := range lines {
		if i == 0 || line == "" {
			continue
		}
		entries = append(entries, lexicon.Entry{ID: i, Text: line})
	}

	return entries, nil
}

// LoadWordList loads a headerless word list, one word per line.
// Used for the positive and negative sentiment lexicons.
func LoadWordList(path string) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	var words []string
	for _, line := range lines {
		if line != "" {
			words = append(words, line)
		}
	}
	return words, nil
}

// LoadChords loads chord symbols: comma-separated, possibly over several lines.
func LoadChords(path string) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	var chords []string
	for _, line := range lines {
		for _, chord := range strings.Split(strings.TrimSpace(line), ",") {
			if chord = strings.TrimSpace(chord); chord != "" {
				chords = append(chords, chord)
			}
		}
	}
	return chords, nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

// File is the YAML run configuration naming every lexicon source.
//
// Expected format:
//
//	slurs: data/vulgarities/slurs.csv
//	swear_words: data/vulgarities/swear_words.csv
//	positive_words: data/sentilex/positive_words_ro.txt
//	negative_words: data/sentilex/negative_words_ro.txt
//	chords: data/chords.csv
//	stoplist: data/stoplist.yaml   # optional
//	stopword_language: ro          # optional
//	newline_marker: "[NL]"         # optional
//
// Relative paths are resolved against the directory of the YAML file.
type File struct {
	Slurs            string `yaml:"slurs"`
	SwearWords       string `yaml:"swear_words"`
	PositiveWords    string `yaml:"positive_words"`
	NegativeWords    string `yaml:"negative_words"`
	Chords           string `yaml:"chords"`
	Stoplist         string `yaml:"stoplist"`
	StopwordLanguage string `yaml:"stopword_language"`
	NewlineMarker    string `yaml:"newline_marker"`
}

// LoadFile loads and validates a run configuration from a YAML file
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for _, p := range []*string{&f.Slurs, &f.SwearWords, &f.PositiveWords, &f.NegativeWords, &f.Chords, &f.Stoplist} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}

	return &f, nil
}

// Validate reports settings that cannot produce a working extractor.
func (f *File) Validate() error {
	if f.NewlineMarker != "" && strings.TrimSpace(f.NewlineMarker) == "" {
		return fmt.Errorf("%w: newline_marker must not be blank", internalerr.ErrInvalidConfig)
	}
	if f.StopwordLanguage != "" && len(f.StopwordLanguage) != 2 {
		return fmt.Errorf("%w: stopword_language %q is not an ISO 639-1 code", internalerr.ErrInvalidConfig, f.StopwordLanguage)
	}
	return nil
}

// Loader returns a Loader for the paths in the file.
func (f *File) Loader() Loader {
	return Loader{
		SlursPath:        f.Slurs,
		SwearWordsPath:   f.SwearWords,
		PositivePath:     f.PositiveWords,
		NegativePath:     f.NegativeWords,
		ChordsPath:       f.Chords,
		StoplistPath:     f.Stoplist,
		StopwordLanguage: f.StopwordLanguage,
		NewlineMarker:    f.NewlineMarker,
	}
}
