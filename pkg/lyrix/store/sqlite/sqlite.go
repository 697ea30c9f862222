package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/lyrix/pkg/lyrix/internalerr"
	"github.com/cognicore/lyrix/pkg/lyrix/store"
)

// timeLayout is fixed-width so extracted_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection serializes writers and keeps per-connection
	// pragmas in effect.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS records (
	id TEXT PRIMARY KEY,
	key TEXT UNIQUE NOT NULL,
	title TEXT,
	artist TEXT,
	extracted_at TEXT NOT NULL,
	features TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS records_extracted_at ON records(extracted_at);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertRecord inserts or updates a record, keyed by key
func (s *sqliteStore) UpsertRecord(ctx context.Context, r store.Record) error {
	if r.Key == "" || r.ID == "" {
		return fmt.Errorf("%w: record needs an id and a key", internalerr.ErrInvalidInput)
	}

	feats, err := json.Marshal(r.Features)
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}

	const stmt = `
INSERT INTO records (id, key, title, artist, extracted_at, features)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
	title=excluded.title,
	artist=excluded.artist,
	extracted_at=excluded.extracted_at,
	features=excluded.features;
`
	_, err = s.db.ExecContext(ctx, stmt,
		r.ID,
		r.Key,
		r.Title,
		r.Artist,
		r.ExtractedAt.UTC().Format(timeLayout),
		string(feats),
	)
	return err
}

// GetRecord retrieves a record by ID
func (s *sqliteStore) GetRecord(ctx context.Context, id string) (store.Record, error) {
	r, err := scanRecord(s.db.QueryRowContext(ctx, selectRecord+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return store.Record{}, fmt.Errorf("record %s: %w", id, internalerr.ErrNotFound)
	}
	return r, err
}

// GetRecordByKey retrieves a record by key
func (s *sqliteStore) GetRecordByKey(ctx context.Context, key string) (store.Record, bool, error) {
	r, err := scanRecord(s.db.QueryRowContext(ctx, selectRecord+` WHERE key = ?`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return store.Record{}, false, nil
	}
	if err != nil {
		return store.Record{}, false, err
	}
	return r, true, nil
}

// ListRecords returns records, newest extraction first
func (s *sqliteStore) ListRecords(ctx context.Context, limit int) ([]store.Record, error) {
	if limit <= 0 {
		limit = -1 // no limit
	}

	rows, err := s.db.QueryContext(ctx, selectRecord+`
ORDER BY extracted_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const selectRecord = `SELECT id, key, title, artist, extracted_at, features FROM records`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (store.Record, error) {
	var (
		r         store.Record
		title     sql.NullString
		artist    sql.NullString
		extracted string
		feats     string
	)
	if err := row.Scan(&r.ID, &r.Key, &title, &artist, &extracted, &feats); err != nil {
		return store.Record{}, err
	}
	r.Title = title.String
	r.Artist = artist.String

	if t, err := time.Parse(timeLayout, extracted); err == nil {
		r.ExtractedAt = t
	}
	if err := json.Unmarshal([]byte(feats), &r.Features); err != nil {
		return store.Record{}, fmt.Errorf("decode features of %s: %w", r.ID, err)
	}
	return r, nil
}
