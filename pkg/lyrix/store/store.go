package store

import (
	"context"
	"time"

	"github.com/cognicore/lyrix/pkg/lyrix/features"
)

// Store is the main interface for persisting extracted lyric features
type Store interface {
	Close() error

	// UpsertRecord inserts a record or updates the one with the same Key.
	// The ID of an existing record is kept.
	UpsertRecord(ctx context.Context, r Record) error
	// GetRecord returns the record with the given ID, or an error wrapping
	// internalerr.ErrNotFound.
	GetRecord(ctx context.Context, id string) (Record, error)
	GetRecordByKey(ctx context.Context, key string) (Record, bool, error)
	// ListRecords returns records, most recently extracted first.
	// A limit <= 0 returns every record.
	ListRecords(ctx context.Context, limit int) ([]Record, error)
}

// Record is the stored feature row of one lyric sample
type Record struct {
	ID          string
	Key         string // caller-supplied identity, e.g. a song URL or slug
	Title       string
	Artist      string
	ExtractedAt time.Time
	Features    features.Features
}
