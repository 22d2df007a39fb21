package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

// Record collections used by the reservation core
const (
	CollectionStation = "station"
	CollectionTrain   = "train"
	CollectionBooking = "booking"
)

// Operator is a filter predicate kind
type Operator string

const (
	OpEqualTo  Operator = "EqualTo"
	OpContains Operator = "Contains"
)

// Condition is a single field predicate
type Condition struct {
	Field string
	Op    Operator
	Value string
}

// Query filters a FetchMany call. Where conditions are ANDed together;
// AnyOf conditions form a single OR group ANDed with Where. A nil
// query matches every record in the collection.
type Query struct {
	Where []Condition
	AnyOf []Condition
}

// Record is the raw shape a collection row takes at the store
// boundary. Services map it into a typed model exactly once; nothing
// above the store layer inspects raw fields.
type Record map[string]any

// ID returns the record identifier, or uuid.Nil when absent
func (r Record) ID() uuid.UUID {
	switch v := r["id"].(type) {
	case uuid.UUID:
		return v
	case string:
		id, err := uuid.Parse(v)
		if err == nil {
			return id
		}
	}
	return uuid.Nil
}

// Str returns a string field, empty when absent or mistyped
func (r Record) Str(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int returns a numeric field, zero when absent or mistyped. JSON
// decoding yields float64 for numbers, so both are accepted.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// RecordStore is the persistence collaborator for the reservation
// core. Implementations must report failures explicitly: FetchOne
// returns ErrNotFound on a miss, and write operations never silently
// no-op.
type RecordStore interface {
	FetchMany(ctx context.Context, collection string, q *Query) ([]Record, error)
	FetchOne(ctx context.Context, collection string, id uuid.UUID) (Record, error)
	Create(ctx context.Context, collection string, rec Record) (Record, error)
	Update(ctx context.Context, collection string, id uuid.UUID, fields Record) error
}
