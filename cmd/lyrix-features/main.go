package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cognicore/lyrix/internal/lyricsrc"
	"github.com/cognicore/lyrix/pkg/lyrix"
	"github.com/cognicore/lyrix/pkg/lyrix/analytics"
	"github.com/cognicore/lyrix/pkg/lyrix/config"
	"github.com/cognicore/lyrix/pkg/lyrix/features"
	"github.com/cognicore/lyrix/pkg/lyrix/stoplist"
	"github.com/cognicore/lyrix/pkg/lyrix/store"
	"github.com/cognicore/lyrix/pkg/lyrix/store/memstore"
	"github.com/cognicore/lyrix/pkg/lyrix/store/sqlite"
)

type report struct {
	Records []recordJSON     `json:"records"`
	Summary *analytics.Stats `json:"summary,omitempty"`
}

type recordJSON struct {
	ID          string            `json:"id"`
	Key         string            `json:"key"`
	Title       string            `json:"title,omitempty"`
	Artist      string            `json:"artist,omitempty"`
	ExtractedAt time.Time         `json:"extracted_at"`
	Features    features.Features `json:"features"`
}

func main() {
	var (
		input     = flag.String("input", "", "Path to JSONL lyrics file (required)")
		cfgPath   = flag.String("config", "", "YAML config naming the lexicon files")
		slurs     = flag.String("slurs", "", "Slurs CSV (ngram,kind)")
		swear     = flag.String("swear-words", "", "Swear words CSV")
		positive  = flag.String("positive", "", "Positive sentiment word list")
		negative  = flag.String("negative", "", "Negative sentiment word list")
		chords    = flag.String("chords", "", "Chords CSV")
		stopPath  = flag.String("stoplist", "", "Stoplist YAML")
		stopLang  = flag.String("stopword-lang", "", "Built-in stopword language (default ro when no stoplist is given)")
		marker    = flag.String("newline-marker", "", "Line break marker in lyrics (default [NL])")
		dbPath    = flag.String("db", "", "Optional SQLite database to persist features")
		summarize = flag.Bool("summary", false, "Append corpus statistics to the report")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	loader := config.Loader{
		SlursPath:        *slurs,
		SwearWordsPath:   *swear,
		PositivePath:     *positive,
		NegativePath:     *negative,
		ChordsPath:       *chords,
		StoplistPath:     *stopPath,
		StopwordLanguage: *stopLang,
		NewlineMarker:    *marker,
	}
	if *cfgPath != "" {
		f, err := config.LoadFile(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		loader = f.Loader()
	}

	components, err := loader.Load()
	if err != nil {
		log.Fatalf("load lexicons: %v", err)
	}
	slurStats := components.Slurs.Stats()
	log.Printf("Loaded %d slurs (%d sexual, %d ethnic), %d swear words",
		slurStats.Entries, slurStats.Sexual, slurStats.Ethnic, components.SwearWords.Len())
	log.Printf("Stopwords: %s", describeStoplist(components.Stoplist))

	ctx := context.Background()

	var st store.Store = memstore.New()
	if *dbPath != "" {
		st, err = sqlite.OpenSQLite(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
	}

	engine := lyrix.New(lyrix.Options{
		Store:     st,
		Extractor: components.Extractor,
	})
	defer engine.Close()

	items, err := lyricsrc.LoadFromJSONL(*input, components.Segmenter.Marker())
	if err != nil {
		log.Fatalf("load lyrics: %v", err)
	}

	var rep report
	for _, item := range items {
		rec, err := engine.Analyze(ctx, lyrix.Sample{
			Key:    item.Key,
			Title:  item.Title,
			Artist: item.Artist,
			Lyrics: item.Lyrics,
		})
		if err != nil {
			log.Printf("Warning: analyze %s: %v", item.Key, err)
			continue
		}
		rep.Records = append(rep.Records, recordJSON{
			ID:          rec.ID,
			Key:         rec.Key,
			Title:       rec.Title,
			Artist:      rec.Artist,
			ExtractedAt: rec.ExtractedAt,
			Features:    rec.Features,
		})
	}
	log.Printf("Analyzed %d of %d samples", len(rep.Records), len(items))

	if *summarize {
		stats, err := engine.Summarize(ctx)
		if err != nil {
			log.Fatalf("summarize: %v", err)
		}
		rep.Summary = &stats
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	fmt.Println(string(out))
}

func describeStoplist(m *stoplist.Manager) string {
	if lang := m.Language(); lang != "" {
		return fmt.Sprintf("built-in %q list plus %d explicit", lang, m.Len())
	}
	return fmt.Sprintf("%d explicit", m.Len())
}
