package station

import (
	"context"
	"testing"

	"github.com/apper-canvas/nimblerailbook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStations(t *testing.T) *store.MemoryStore {
	t.Helper()
	ms := store.NewMemoryStore()
	ms.Seed(store.CollectionStation, store.Record{"name": "New Delhi", "city": "Delhi", "code": "NDLS"})
	ms.Seed(store.CollectionStation, store.Record{"name": "Mumbai Central", "city": "Mumbai", "code": "BCT"})
	ms.Seed(store.CollectionStation, store.Record{"name": "Howrah Junction", "city": "Kolkata", "code": "HWH"})
	return ms
}

func TestDirectory_Search(t *testing.T) {
	dir := NewDirectory(seedStations(t))

	tests := []struct {
		name     string
		query    string
		expected []string // station codes
	}{
		{"match on name", "delhi", []string{"NDLS"}},
		{"match on city", "kolkata", []string{"HWH"}},
		{"match on code", "bct", []string{"BCT"}},
		{"case insensitive", "MUMBAI", []string{"BCT"}},
		{"substring", "junct", []string{"HWH"}},
		{"no match", "zz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dir.Search(context.Background(), tt.query)

			var codes []string
			for _, s := range got {
				codes = append(codes, s.Code)
			}
			assert.ElementsMatch(t, tt.expected, codes)
		})
	}
}

func TestDirectory_SearchShortQuery(t *testing.T) {
	ms := seedStations(t)
	calls := 0
	dir := NewDirectory(&countingStore{RecordStore: ms, calls: &calls})

	assert.Empty(t, dir.Search(context.Background(), ""))
	assert.Empty(t, dir.Search(context.Background(), "d"))
	assert.Zero(t, calls, "queries under two characters must not contact the store")
}

type countingStore struct {
	store.RecordStore
	calls *int
}

func (s *countingStore) FetchMany(ctx context.Context, collection string, q *store.Query) ([]store.Record, error) {
	*s.calls++
	return s.RecordStore.FetchMany(ctx, collection, q)
}

func TestDirectory_GetByCode(t *testing.T) {
	dir := NewDirectory(seedStations(t))

	s := dir.GetByCode(context.Background(), "NDLS")
	require.NotNil(t, s)
	assert.Equal(t, "New Delhi", s.Name)
	assert.Equal(t, "Delhi", s.City)

	assert.Nil(t, dir.GetByCode(context.Background(), "XXXX"))
	assert.Nil(t, dir.GetByCode(context.Background(), "ndls"), "code lookup is exact")
}

func TestDirectory_GetAll(t *testing.T) {
	dir := NewDirectory(seedStations(t))
	assert.Len(t, dir.GetAll(context.Background()), 3)
}

func TestDirectory_GetByID(t *testing.T) {
	ms := store.NewMemoryStore()
	rec := ms.Seed(store.CollectionStation, store.Record{"name": "New Delhi", "city": "Delhi", "code": "NDLS"})
	dir := NewDirectory(ms)

	s := dir.GetByID(context.Background(), rec.ID())
	require.NotNil(t, s)
	assert.Equal(t, "NDLS", s.Code)
}
