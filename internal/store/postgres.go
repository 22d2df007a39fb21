package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// collection → table whitelist; filters are compiled into SQL, so the
// table name must never come from caller input
var collectionTables = map[string]string{
	CollectionStation: "stations",
	CollectionTrain:   "trains",
	CollectionBooking: "bookings",
}

// PostgresStore implements RecordStore on a pgx connection pool. Each
// collection is a table of (id uuid primary key, data jsonb); filters
// compile to predicates over the data column.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed record store
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) FetchMany(ctx context.Context, collection string, q *Query) ([]Record, error) {
	table, ok := collectionTables[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	query := fmt.Sprintf(`SELECT id, data FROM %s`, table)
	where, args := compileQuery(q)
	if where != "" {
		query += " WHERE " + where
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s record: %w", collection, err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (s *PostgresStore) FetchOne(ctx context.Context, collection string, id uuid.UUID) (Record, error) {
	table, ok := collectionTables[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	var (
		recID uuid.UUID
		data  []byte
	)
	query := fmt.Sprintf(`SELECT id, data FROM %s WHERE id = $1`, table)
	err := s.pool.QueryRow(ctx, query, id).Scan(&recID, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s record: %w", collection, err)
	}

	return decodeRecord(recID, data)
}

func (s *PostgresStore) Create(ctx context.Context, collection string, rec Record) (Record, error) {
	table, ok := collectionTables[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	id := rec.ID()
	if id == uuid.Nil {
		id = uuid.New()
	}

	data, err := json.Marshal(withoutID(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s record: %w", collection, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, data) VALUES ($1, $2)`, table)
	if _, err := s.pool.Exec(ctx, query, id, data); err != nil {
		return nil, fmt.Errorf("failed to create %s record: %w", collection, err)
	}

	created := Record{}
	for k, v := range rec {
		created[k] = v
	}
	created["id"] = id
	return created, nil
}

func (s *PostgresStore) Update(ctx context.Context, collection string, id uuid.UUID, fields Record) error {
	table, ok := collectionTables[collection]
	if !ok {
		return fmt.Errorf("unknown collection %q", collection)
	}

	patch, err := json.Marshal(withoutID(fields))
	if err != nil {
		return fmt.Errorf("failed to encode %s patch: %w", collection, err)
	}

	query := fmt.Sprintf(`UPDATE %s SET data = data || $1 WHERE id = $2`, table)
	result, err := s.pool.Exec(ctx, query, patch, id)
	if err != nil {
		return fmt.Errorf("failed to update %s record: %w", collection, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// compileQuery turns a Query into a SQL predicate over the jsonb data
// column plus its positional arguments
func compileQuery(q *Query) (string, []any) {
	if q == nil {
		return "", nil
	}

	var (
		clauses []string
		args    []any
	)
	condition := func(c Condition) string {
		args = append(args, c.Value)
		n := len(args)
		if c.Op == OpContains {
			return fmt.Sprintf("data->>'%s' ILIKE '%%' || $%d || '%%'", c.Field, n)
		}
		return fmt.Sprintf("data->>'%s' = $%d", c.Field, n)
	}

	for _, c := range q.Where {
		clauses = append(clauses, condition(c))
	}
	if len(q.AnyOf) > 0 {
		var ors []string
		for _, c := range q.AnyOf {
			ors = append(ors, condition(c))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	return strings.Join(clauses, " AND "), args
}

func scanRecord(rows pgx.Rows) (Record, error) {
	var (
		id   uuid.UUID
		data []byte
	)
	if err := rows.Scan(&id, &data); err != nil {
		return nil, err
	}
	return decodeRecord(id, data)
}

func decodeRecord(id uuid.UUID, data []byte) (Record, error) {
	rec := Record{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", id, err)
	}
	rec["id"] = id
	return rec, nil
}

func withoutID(rec Record) Record {
	out := Record{}
	for k, v := range rec {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}
