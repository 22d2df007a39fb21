package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateAndFetchOne(t *testing.T) {
	ms := NewMemoryStore()

	created, err := ms.Create(context.Background(), CollectionStation, Record{"code": "NDLS"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID())

	fetched, err := ms.FetchOne(context.Background(), CollectionStation, created.ID())
	require.NoError(t, err)
	assert.Equal(t, "NDLS", fetched.Str("code"))
}

func TestMemoryStore_FetchOneMiss(t *testing.T) {
	ms := NewMemoryStore()
	_, err := ms.FetchOne(context.Background(), CollectionStation, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_FetchManyFilters(t *testing.T) {
	ms := NewMemoryStore()
	ms.Seed(CollectionTrain, Record{"origin": "NDLS", "destination": "BCT", "train_name": "Rajdhani Express"})
	ms.Seed(CollectionTrain, Record{"origin": "NDLS", "destination": "LKO", "train_name": "Shatabdi Express"})
	ms.Seed(CollectionTrain, Record{"origin": "BCT", "destination": "NDLS", "train_name": "August Kranti"})

	t.Run("where conditions are ANDed", func(t *testing.T) {
		records, err := ms.FetchMany(context.Background(), CollectionTrain, &Query{
			Where: []Condition{
				{Field: "origin", Op: OpEqualTo, Value: "NDLS"},
				{Field: "destination", Op: OpEqualTo, Value: "BCT"},
			},
		})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Rajdhani Express", records[0].Str("train_name"))
	})

	t.Run("contains is case-insensitive", func(t *testing.T) {
		records, err := ms.FetchMany(context.Background(), CollectionTrain, &Query{
			Where: []Condition{{Field: "train_name", Op: OpContains, Value: "rajdhani"}},
		})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("anyof conditions are ORed", func(t *testing.T) {
		records, err := ms.FetchMany(context.Background(), CollectionTrain, &Query{
			AnyOf: []Condition{
				{Field: "destination", Op: OpEqualTo, Value: "BCT"},
				{Field: "destination", Op: OpEqualTo, Value: "LKO"},
			},
		})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("nil query matches everything", func(t *testing.T) {
		records, err := ms.FetchMany(context.Background(), CollectionTrain, nil)
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})
}

func TestMemoryStore_Update(t *testing.T) {
	ms := NewMemoryStore()
	created := ms.Seed(CollectionBooking, Record{"status": "Confirmed", "pnr": "1234567890"})

	err := ms.Update(context.Background(), CollectionBooking, created.ID(), Record{"status": "Cancelled"})
	require.NoError(t, err)

	fetched, err := ms.FetchOne(context.Background(), CollectionBooking, created.ID())
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", fetched.Str("status"))
	assert.Equal(t, "1234567890", fetched.Str("pnr"), "untouched fields survive a partial update")
}

func TestMemoryStore_UpdateMiss(t *testing.T) {
	ms := NewMemoryStore()
	err := ms.Update(context.Background(), CollectionBooking, uuid.New(), Record{"status": "Cancelled"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordAccessors(t *testing.T) {
	rec := Record{"name": "New Delhi", "count": float64(12), "exact": 7}

	assert.Equal(t, "New Delhi", rec.Str("name"))
	assert.Equal(t, "", rec.Str("missing"))
	assert.Equal(t, 12, rec.Int("count"))
	assert.Equal(t, 7, rec.Int("exact"))
	assert.Equal(t, 0, rec.Int("missing"))
	assert.Equal(t, uuid.Nil, rec.ID())
}
