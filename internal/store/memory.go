package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements RecordStore in process memory. It backs tests
// and the standalone STORE_DRIVER=memory mode.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[uuid.UUID]Record
}

// NewMemoryStore creates an empty in-memory record store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[uuid.UUID]Record),
	}
}

// Seed inserts a record with a generated ID, bypassing context
// plumbing; intended for test fixtures and sample data.
func (s *MemoryStore) Seed(collection string, rec Record) Record {
	created, _ := s.Create(context.Background(), collection, rec)
	return created
}

func (s *MemoryStore) FetchMany(ctx context.Context, collection string, q *Query) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []Record
	for _, rec := range s.collections[collection] {
		if matches(rec, q) {
			records = append(records, clone(rec))
		}
	}
	return records, nil
}

func (s *MemoryStore) FetchOne(ctx context.Context, collection string, id uuid.UUID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(rec), nil
}

func (s *MemoryStore) Create(ctx context.Context, collection string, rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := rec.ID()
	if id == uuid.Nil {
		id = uuid.New()
	}

	created := clone(rec)
	created["id"] = id

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[uuid.UUID]Record)
	}
	s.collections[collection][id] = created

	return clone(created), nil
}

func (s *MemoryStore) Update(ctx context.Context, collection string, id uuid.UUID, fields Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		rec[k] = v
	}
	return nil
}

func matches(rec Record, q *Query) bool {
	if q == nil {
		return true
	}
	for _, c := range q.Where {
		if !evaluate(rec, c) {
			return false
		}
	}
	if len(q.AnyOf) > 0 {
		any := false
		for _, c := range q.AnyOf {
			if evaluate(rec, c) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}

func evaluate(rec Record, c Condition) bool {
	v := rec.Str(c.Field)
	switch c.Op {
	case OpContains:
		return strings.Contains(strings.ToLower(v), strings.ToLower(c.Value))
	default:
		return v == c.Value
	}
}

func clone(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
