package lyrix

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/lyrix/pkg/lyrix/analytics"
	"github.com/cognicore/lyrix/pkg/lyrix/features"
	"github.com/cognicore/lyrix/pkg/lyrix/internalerr"
	"github.com/cognicore/lyrix/pkg/lyrix/store"
)

// Lyrix is the feature extraction facade: it extracts features from lyric
// samples and keeps the results in a store.
type Lyrix struct {
	store     store.Store
	extractor *features.Extractor
	now       func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures a Lyrix instance
type Options struct {
	// Store is optional; without one, Analyze only extracts.
	Store     store.Store
	Extractor *features.Extractor
	Now       func() time.Time
}

// New creates a Lyrix instance with the given dependencies
func New(opts Options) *Lyrix {
	ex := opts.Extractor
	if ex == nil {
		ex = features.New(features.Options{})
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Lyrix{
		store:     opts.Store,
		extractor: ex,
		now:       now,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}
}

// Extractor returns the extractor used by Analyze.
func (l *Lyrix) Extractor() *features.Extractor {
	return l.extractor
}

// Close cleanly shuts down the Lyrix instance
func (l *Lyrix) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}

// Sample is one lyric to analyze
type Sample struct {
	Key    string
	Title  string
	Artist string
	Lyrics string
}

// Analyze extracts the sample's features and stores them under its key.
// Re-analyzing a key replaces the features and keeps the record ID.
func (l *Lyrix) Analyze(ctx context.Context, s Sample) (store.Record, error) {
	if s.Key == "" {
		return store.Record{}, fmt.Errorf("%w: sample key is empty", internalerr.ErrInvalidInput)
	}

	rec := store.Record{
		Key:         s.Key,
		Title:       s.Title,
		Artist:      s.Artist,
		ExtractedAt: l.now().UTC(),
		Features:    l.extractor.Extract(s.Lyrics),
	}

	if l.store == nil {
		rec.ID = l.newID(rec.ExtractedAt)
		return rec, nil
	}

	existing, found, err := l.store.GetRecordByKey(ctx, s.Key)
	if err != nil {
		return store.Record{}, err
	}
	if found {
		rec.ID = existing.ID
	} else {
		rec.ID = l.newID(rec.ExtractedAt)
	}

	if err := l.store.UpsertRecord(ctx, rec); err != nil {
		return store.Record{}, fmt.Errorf("store %s: %w", s.Key, err)
	}

	// A concurrent Analyze of the same key may have won the insert.
	stored, found, err := l.store.GetRecordByKey(ctx, s.Key)
	if err != nil {
		return store.Record{}, err
	}
	if found {
		rec.ID = stored.ID
	}
	return rec, nil
}

// Get returns the stored record with the given ID.
func (l *Lyrix) Get(ctx context.Context, id string) (store.Record, error) {
	if l.store == nil {
		return store.Record{}, internalerr.ErrStoreUnavailable
	}
	return l.store.GetRecord(ctx, id)
}

// List returns stored records, most recent first. A limit <= 0 returns all.
func (l *Lyrix) List(ctx context.Context, limit int) ([]store.Record, error) {
	if l.store == nil {
		return nil, internalerr.ErrStoreUnavailable
	}
	return l.store.ListRecords(ctx, limit)
}

// Summarize aggregates the features of every stored record.
func (l *Lyrix) Summarize(ctx context.Context) (analytics.Stats, error) {
	recs, err := l.List(ctx, 0)
	if err != nil {
		return analytics.Stats{}, err
	}
	a := analytics.NewAnalyzer()
	for _, r := range recs {
		a.Process(r.Features)
	}
	return a.Snapshot(), nil
}

func (l *Lyrix) newID(t time.Time) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), l.entropy).String()
}
