package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/lyrix/pkg/lyrix/internalerr"
	"github.com/cognicore/lyrix/pkg/lyrix/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu       sync.RWMutex
	records  map[string]store.Record
	keyIndex map[string]string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		records:  make(map[string]store.Record),
		keyIndex: make(map[string]string),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertRecord inserts or updates a record, keyed by Key.
func (s *Store) UpsertRecord(ctx context.Context, r store.Record) error {
	if r.Key == "" || r.ID == "" {
		return fmt.Errorf("%w: record needs an id and a key", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existingID, ok := s.keyIndex[r.Key]; ok {
		r.ID = existingID
	} else {
		if other, taken := s.records[r.ID]; taken {
			return fmt.Errorf("%w: id %s already used by key %q", internalerr.ErrInvalidInput, r.ID, other.Key)
		}
		s.keyIndex[r.Key] = r.ID
	}

	r.ExtractedAt = r.ExtractedAt.UTC()
	s.records[r.ID] = r
	return nil
}

// GetRecord returns a record by ID.
func (s *Store) GetRecord(ctx context.Context, id string) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.records[id]; ok {
		return r, nil
	}
	return store.Record{}, fmt.Errorf("record %s: %w", id, internalerr.ErrNotFound)
}

// GetRecordByKey returns a record by key.
func (s *Store) GetRecordByKey(ctx context.Context, key string) (store.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok := s.keyIndex[key]; ok {
		if r, exists := s.records[id]; exists {
			return r, true, nil
		}
	}
	return store.Record{}, false, nil
}

// ListRecords returns records, newest extraction first.
func (s *Store) ListRecords(ctx context.Context, limit int) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExtractedAt.Equal(out[j].ExtractedAt) {
			return out[i].ExtractedAt.After(out[j].ExtractedAt)
		}
		return out[i].ID > out[j].ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
