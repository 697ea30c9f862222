package features

import (
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/cognicore/lyrix/pkg/lyrix/ingest"
	"github.com/cognicore/lyrix/pkg/lyrix/lexicon"
	"github.com/cognicore/lyrix/pkg/lyrix/stoplist"
)

func newTestExtractor() *Extractor {
	slurs := lexicon.Load([]lexicon.Entry{
		{ID: 1, Text: "curvă", Category: lexicon.Sexual},
		{ID: 2, Text: "cioară", Category: lexicon.Ethnic},
	})
	swears := lexicon.Load([]lexicon.Entry{
		{ID: 1, Text: "dracu"},
		{ID: 2, Text: "naiba"},
	})

	return New(Options{
		Segmenter: ingest.NewSegmenter("", []string{"Am", "C", "G"}),
		Stoplist:  stoplist.NewManager([]string{"și", "de", "la", "eu", "tu", "o", "nu"}),
		Swear:     swears.ExpandAll(),
		Ethnic:    slurs.Expanded(lexicon.Ethnic),
		Sexual:    slurs.Expanded(lexicon.Sexual),
		Sentiment: lexicon.NewSentiment(
			[]string{"bun", "dulce", "iubire"},
			[]string{"rau", "trist", "dulce"},
		),
	})
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWordAndStopwordCounts(t *testing.T) {
	e := newTestExtractor()
	text := "Eu și tu[NL]la mare"

	// eu și tu nl la mare
	if got := e.WordCount(text); got != 6 {
		t.Errorf("WordCount = %d, want 6", got)
	}
	if got := e.StopwordCount(text); got != 4 {
		t.Errorf("StopwordCount = %d, want 4", got)
	}
	if got := e.StopwordRatio(text); !almostEqual(got, 4.0/6.0) {
		t.Errorf("StopwordRatio = %f, want %f", got, 4.0/6.0)
	}

	// Mean word length looks at folded tokens, so "și" becomes "si" and is
	// no longer recognized as a stopword: ("si" + "nl" + "mare") / 3
	if got := e.MeanWordLength(text); !almostEqual(got, 8.0/3.0) {
		t.Errorf("MeanWordLength = %f, want %f", got, 8.0/3.0)
	}
}

func TestStopwordCountRomanianList(t *testing.T) {
	e := New(Options{Stoplist: stoplist.NewLanguageManager(stoplist.Romanian, nil)})

	if got := e.StopwordCount("eu și tu în casă"); got != 4 {
		t.Errorf("StopwordCount = %d, want 4", got)
	}
}

func TestNewlineMarkerIsTokenized(t *testing.T) {
	e := New(Options{})

	if got := e.WordCount("unu[NL]doi[NL]trei"); got != 5 {
		t.Errorf("WordCount = %d, want 5", got)
	}
	if got := e.TopWordByFrequency("a[NL]b[NL]c"); got != "nl" {
		t.Errorf("TopWordByFrequency = %q, want nl", got)
	}
	if got := e.VocabSize("a[NL]b[NL]c"); got != 4 {
		t.Errorf("VocabSize = %d, want 4", got)
	}
	// Verses still split on the marker
	if got := e.VerseCount("unu[NL]doi[NL]trei"); got != 3 {
		t.Errorf("VerseCount = %d, want 3", got)
	}
}

func TestSegmentationFeatures(t *testing.T) {
	e := newTestExtractor()
	text := "Am C Foaie verde.[NL]Inimă de piatră![NL]G"

	if got := e.VerseCount(text); got != 2 {
		t.Errorf("VerseCount = %d, want 2", got)
	}
	if got := e.PhraseCount(text); got != 2 {
		t.Errorf("PhraseCount = %d, want 2", got)
	}
	// Chord symbols and marker letters are still words to the tokenizer:
	// 10 words over 2 verses
	if got := e.WordCount(text); got != 10 {
		t.Errorf("WordCount = %d, want 10", got)
	}
	if got := e.MeanVerseLength(text); !almostEqual(got, 5.0) {
		t.Errorf("MeanVerseLength = %f, want 5.0", got)
	}
	if got := e.MeanPhraseLength(text); !almostEqual(got, 5.0) {
		t.Errorf("MeanPhraseLength = %f, want 5.0", got)
	}
	if got := e.CharCount(text); got != 27 {
		t.Errorf("CharCount = %d, want 27", got)
	}
	if got := e.EnjambementCount(text); got != 1 {
		t.Errorf("EnjambementCount = %d, want 1", got)
	}
}

func TestEnjambementsIgnoreLastVerse(t *testing.T) {
	tests := []struct {
		verses []string
		want   int
	}{
		{nil, 0},
		{[]string{"singur"}, 0},
		{[]string{"unu", "doi", "trei"}, 2},
		{[]string{"unu.", "doi!", "trei?", "patru"}, 0},
		{[]string{"unu. ", "doi"}, 0},
	}
	for _, tt := range tests {
		if got := enjambements(tt.verses); got != tt.want {
			t.Errorf("enjambements(%q) = %d, want %d", tt.verses, got, tt.want)
		}
	}
}

func TestVulgarityCounts(t *testing.T) {
	e := newTestExtractor()
	text := "Ești o curvă, cioară și dracu! naiba"

	if got := e.SexualSlurCount(text); got != 1 {
		t.Errorf("SexualSlurCount = %d, want 1", got)
	}
	if got := e.EthnicSlurCount(text); got != 1 {
		t.Errorf("EthnicSlurCount = %d, want 1", got)
	}
	if got := e.SwearWordCount(text); got != 2 {
		t.Errorf("SwearWordCount = %d, want 2", got)
	}
	if got := e.AllVulgaritiesCount(text); got != 4 {
		t.Errorf("AllVulgaritiesCount = %d, want 4", got)
	}
	if got := e.AllVulgaritiesRatio(text); !almostEqual(got, 4.0/7.0) {
		t.Errorf("AllVulgaritiesRatio = %f, want %f", got, 4.0/7.0)
	}
	if got := e.SwearWordRatio(text); !almostEqual(got, 2.0/7.0) {
		t.Errorf("SwearWordRatio = %f, want %f", got, 2.0/7.0)
	}
}

func TestVulgarityCountedOncePerSet(t *testing.T) {
	both := lexicon.ExpandSet(lexicon.Entry{ID: 1, Text: "naiba"})
	e := New(Options{Swear: both, Sexual: both})

	f := e.Extract("naiba")
	if f.AllVulgaritiesCount != 2 {
		t.Errorf("AllVulgaritiesCount = %d, want 2", f.AllVulgaritiesCount)
	}
	// A word listed in two lexicons pushes the ratio above 1
	if !almostEqual(f.AllVulgaritiesRatio, 2.0) || !almostEqual(e.AllVulgaritiesRatio("naiba"), 2.0) {
		t.Errorf("AllVulgaritiesRatio = %f, want 2.0", f.AllVulgaritiesRatio)
	}
}

func TestExtractorPipeline(t *testing.T) {
	seg := ingest.NewSegmenter("<br>", nil)
	e := New(Options{Segmenter: seg})

	if e.Pipeline().Segmenter() != seg {
		t.Fatal("Pipeline should wrap the configured segmenter")
	}
	if got := e.Pipeline().Process("unu<br>doi").Verses; !reflect.DeepEqual(got, []string{"unu", "doi"}) {
		t.Errorf("Verses = %q", got)
	}
}

func TestVulgarityMaskedSpellingIsSplit(t *testing.T) {
	e := newTestExtractor()
	// The mask character is not a letter, so "c*rvă" tokenizes as "c" "rvă"
	if got := e.SexualSlurCount("c*rvă"); got != 0 {
		t.Errorf("SexualSlurCount = %d, want 0", got)
	}
}

func TestSentimentScores(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name string
		text string
		mode RatioMode
		want SentimentScores
	}{
		{"matched", "bun bun rau", RatioMatched, SentimentScores{2.0 / 3.0, 1.0 / 3.0}},
		{"all equal", "bun bun rau", RatioAll, SentimentScores{2.0 / 3.0, 1.0 / 3.0}},
		{"all diverges", "bun bun rau masa masa masa", RatioAll, SentimentScores{2.0 / 6.0, 1.0 / 6.0}},
		{"matched ignores neutral", "bun bun rau masa masa masa", RatioMatched, SentimentScores{2.0 / 3.0, 1.0 / 3.0}},
		{"other mode is matched", "bun masa", RatioMode("vulg"), SentimentScores{1.0, 0.0}},
		{"positive precedence", "dulce", RatioMatched, SentimentScores{1.0, 0.0}},
		{"folded tokens", "Rău", RatioMatched, SentimentScores{0.0, 1.0}},
		{"no sentiment words", "masa masa", RatioMatched, SentimentScores{}},
		{"empty", "", RatioAll, SentimentScores{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.SentimentScores(tt.text, tt.mode)
			if !almostEqual(got.Positive, tt.want.Positive) || !almostEqual(got.Negative, tt.want.Negative) {
				t.Errorf("SentimentScores(%q, %s) = %+v, want %+v", tt.text, tt.mode, got, tt.want)
			}
		})
	}
}

func TestVocabulary(t *testing.T) {
	e := newTestExtractor()
	text := "Inimă inimă de piatră, inima"

	v := e.Vocabulary(text, true)
	if !reflect.DeepEqual(v.Labels, []string{"inimă", "piatră", "inima"}) {
		t.Errorf("Labels = %q", v.Labels)
	}
	if !reflect.DeepEqual(v.Frequencies, []int{2, 1, 1}) {
		t.Errorf("Frequencies = %v", v.Frequencies)
	}

	all := e.Vocabulary(text, false)
	if !reflect.DeepEqual(all.Labels, []string{"inimă", "de", "piatră", "inima"}) {
		t.Errorf("Labels with stopwords = %q", all.Labels)
	}

	if got := e.VocabSize(text); got != 3 {
		t.Errorf("VocabSize = %d, want 3", got)
	}
	if got := e.TopWordByFrequency(text); got != "inimă" {
		t.Errorf("TopWordByFrequency = %q, want inimă", got)
	}
}

func TestTopWordByFrequency(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		text string
		want string
	}{
		{"", ""},
		{"foo bar", ""},            // nothing repeats
		{"de de de la la", ""},     // only stopwords repeat
		{"unu doi doi unu", "unu"}, // tie: first seen wins
		{"trei unu doi doi", "doi"},
	}
	for _, tt := range tests {
		if got := e.TopWordByFrequency(tt.text); got != tt.want {
			t.Errorf("TopWordByFrequency(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestRepetitionsMaxCount(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		text string
		want int
	}{
		{"hai hai hai mare[NL]mare hai hai", 3},
		{"hai mare hai[NL]hai mare", 1},
		{"Hai hai hai[NL]mare", 2}, // verse words keep their case
		{"foo bar", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := e.RepetitionsMaxCount(tt.text); got != tt.want {
			t.Errorf("RepetitionsMaxCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestRepetitionsPosition(t *testing.T) {
	e := newTestExtractor()
	text := "hai hai mare[NL]mare soare soare[NL]unu doi trei trei[NL]fara repetitii"

	got := e.RepetitionsPosition(text)
	want := Positions{Beginning: 4, End: 2}
	if got != want {
		t.Errorf("RepetitionsPosition = %+v, want %+v", got, want)
	}

	if got := e.RepetitionsPosition(""); got != (Positions{}) {
		t.Errorf("RepetitionsPosition(\"\") = %+v", got)
	}
}

func TestExtractMatchesIndividualFeatures(t *testing.T) {
	e := newTestExtractor()
	text := "Am Foaie verde, dracu naiba![NL]Iubire iubire, ești bun și rău[NL]hai hai hai hai 2x[NL]---- ----"

	f := e.Extract(text)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"verse_count", float64(f.VerseCount), float64(e.VerseCount(text))},
		{"phrase_count", float64(f.PhraseCount), float64(e.PhraseCount(text))},
		{"mean_verse_length", f.MeanVerseLength, e.MeanVerseLength(text)},
		{"mean_phrase_length", f.MeanPhraseLength, e.MeanPhraseLength(text)},
		{"char_count", float64(f.CharCount), float64(e.CharCount(text))},
		{"word_count", float64(f.WordCount), float64(e.WordCount(text))},
		{"stopword_count", float64(f.StopwordCount), float64(e.StopwordCount(text))},
		{"stopword_ratio", f.StopwordRatio, e.StopwordRatio(text)},
		{"mean_word_length", f.MeanWordLength, e.MeanWordLength(text)},
		{"vocab_size", float64(f.VocabSize), float64(e.VocabSize(text))},
		{"enjambement_count", float64(f.EnjambementCount), float64(e.EnjambementCount(text))},
		{"swear_word_count", float64(f.SwearWordCount), float64(e.SwearWordCount(text))},
		{"ethnic_slur_ratio", f.EthnicSlurRatio, e.EthnicSlurRatio(text)},
		{"sexual_slur_ratio", f.SexualSlurRatio, e.SexualSlurRatio(text)},
		{"all_vulgarities_ratio", f.AllVulgaritiesRatio, e.AllVulgaritiesRatio(text)},
		{"repetitions_max_count", float64(f.RepetitionsMaxCount), float64(e.RepetitionsMaxCount(text))},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want) {
			t.Errorf("%s: Extract = %f, method = %f", c.name, c.got, c.want)
		}
	}

	if f.TopWord != e.TopWordByFrequency(text) {
		t.Errorf("TopWord = %q, method = %q", f.TopWord, e.TopWordByFrequency(text))
	}
	if f.Sentiment != e.SentimentScores(text, RatioAll) {
		t.Errorf("Sentiment = %+v", f.Sentiment)
	}
	if f.SentimentMatched != e.SentimentScores(text, RatioMatched) {
		t.Errorf("SentimentMatched = %+v", f.SentimentMatched)
	}
	if f.RepetitionsPosition != e.RepetitionsPosition(text) {
		t.Errorf("RepetitionsPosition = %+v", f.RepetitionsPosition)
	}
	if f.TopWord != "hai" || f.RepetitionsMaxCount != 4 {
		t.Errorf("Expected top word hai with run 4, got %q/%d", f.TopWord, f.RepetitionsMaxCount)
	}
}

func TestExtractProperties(t *testing.T) {
	e := newTestExtractor()
	inputs := []string{
		"",
		"   ",
		"[NL][NL][NL]",
		"12345 !!! ---",
		"dracu dracu dracu",
		"Ești o curvă, cioară și dracu! naiba",
		"Foaie verde.[NL]Am C G[NL]bun rău trist dulce",
		"ăâîșț ĂÂÎȘȚ",
	}

	for _, in := range inputs {
		f := e.Extract(in)

		if f.WordCount < 0 || f.StopwordCount > f.WordCount {
			t.Errorf("%q: word/stopword counts out of range: %d/%d", in, f.WordCount, f.StopwordCount)
		}
		if f.AllVulgaritiesCount != f.SwearWordCount+f.EthnicSlurCount+f.SexualSlurCount {
			t.Errorf("%q: all vulgarities is not the sum of its parts", in)
		}

		ratios := []float64{
			f.StopwordRatio, f.SwearWordRatio, f.EthnicSlurRatio, f.SexualSlurRatio,
			f.AllVulgaritiesRatio, f.Sentiment.Positive, f.Sentiment.Negative,
			f.SentimentMatched.Positive, f.SentimentMatched.Negative,
		}
		for _, r := range ratios {
			if r < 0 || r > 1 || math.IsNaN(r) {
				t.Errorf("%q: ratio %f outside [0,1]", in, r)
			}
		}
		if f.WordCount == 0 && (f.StopwordRatio != 0 || f.AllVulgaritiesRatio != 0 || f.Sentiment != (SentimentScores{})) {
			t.Errorf("%q: ratios should be 0 with no words", in)
		}
		if len(f.Vector()) != len(FeatureNames) {
			t.Fatalf("Vector has %d columns, FeatureNames has %d", len(f.Vector()), len(FeatureNames))
		}
	}

	if got := e.Extract(""); !reflect.DeepEqual(got, Features{}) {
		t.Errorf("Extract(\"\") = %+v, want zero features", got)
	}
}

func TestExtractorZeroOptions(t *testing.T) {
	e := New(Options{})
	f := e.Extract("unu doi doi[NL]trei")
	if f.WordCount != 5 || f.VerseCount != 2 {
		t.Errorf("Unexpected counts with default options: %+v", f)
	}
	if f.AllVulgaritiesCount != 0 || f.StopwordCount != 0 {
		t.Error("Empty lexicons should match nothing")
	}
}

func TestExtractConcurrent(t *testing.T) {
	e := newTestExtractor()
	text := "Iubire iubire dracu[NL]hai hai hai, ești bun"
	want := e.Extract(text)

	var wg sync.WaitGroup
	errs := make(chan Features, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := e.Extract(text); !reflect.DeepEqual(got, want) {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("Concurrent Extract diverged: %+v", got)
	}
}
