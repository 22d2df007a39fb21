package station

import (
	"context"
	"log"

	"github.com/apper-canvas/nimblerailbook/internal/models"
	"github.com/apper-canvas/nimblerailbook/internal/store"
	"github.com/google/uuid"
)

// Directory provides lookup and search over the station catalog
type Directory interface {
	GetAll(ctx context.Context) []models.Station
	Search(ctx context.Context, query string) []models.Station
	GetByID(ctx context.Context, id uuid.UUID) *models.Station
	GetByCode(ctx context.Context, code string) *models.Station
}

type directory struct {
	store store.RecordStore
}

// NewDirectory creates a station directory backed by the record store
func NewDirectory(rs store.RecordStore) Directory {
	return &directory{store: rs}
}

// GetAll returns every station in store order. Read failures degrade
// to an empty result so the caller always has a renderable list.
func (d *directory) GetAll(ctx context.Context) []models.Station {
	records, err := d.store.FetchMany(ctx, store.CollectionStation, nil)
	if err != nil {
		log.Printf("StationDirectory: failed to fetch stations: %v", err)
		return []models.Station{}
	}
	return transformStationRecords(records)
}

// Search matches stations whose name, city, or code contains the
// query, case-insensitive. Queries shorter than two characters return
// empty without contacting the store.
func (d *directory) Search(ctx context.Context, query string) []models.Station {
	if len(query) < 2 {
		return []models.Station{}
	}

	q := &store.Query{
		AnyOf: []store.Condition{
			{Field: "name", Op: store.OpContains, Value: query},
			{Field: "city", Op: store.OpContains, Value: query},
			{Field: "code", Op: store.OpContains, Value: query},
		},
	}

	records, err := d.store.FetchMany(ctx, store.CollectionStation, q)
	if err != nil {
		log.Printf("StationDirectory: station search %q failed: %v", query, err)
		return []models.Station{}
	}
	return transformStationRecords(records)
}

func (d *directory) GetByID(ctx context.Context, id uuid.UUID) *models.Station {
	rec, err := d.store.FetchOne(ctx, store.CollectionStation, id)
	if err != nil {
		return nil
	}
	s := transformStationRecord(rec)
	return &s
}

// GetByCode returns the station with the exact code, or nil
func (d *directory) GetByCode(ctx context.Context, code string) *models.Station {
	q := &store.Query{
		Where: []store.Condition{
			{Field: "code", Op: store.OpEqualTo, Value: code},
		},
	}

	records, err := d.store.FetchMany(ctx, store.CollectionStation, q)
	if err != nil || len(records) == 0 {
		return nil
	}
	s := transformStationRecord(records[0])
	return &s
}

func transformStationRecord(rec store.Record) models.Station {
	return models.Station{
		ID:   rec.ID(),
		Name: rec.Str("name"),
		City: rec.Str("city"),
		Code: rec.Str("code"),
	}
}

func transformStationRecords(records []store.Record) []models.Station {
	stations := make([]models.Station, 0, len(records))
	for _, rec := range records {
		stations = append(stations, transformStationRecord(rec))
	}
	return stations
}
