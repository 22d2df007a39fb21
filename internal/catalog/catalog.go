package catalog

import (
	"context"
	"log"
	"math/rand"

	"github.com/apper-canvas/nimblerailbook/internal/models"
	"github.com/apper-canvas/nimblerailbook/internal/store"
	"github.com/google/uuid"
)

// Rand is the randomness source behind illustrative seat layouts,
// routes, and live statuses. Inject a seeded *rand.Rand in tests to
// pin outcomes.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// defaultRand draws from the process-wide math/rand source, which is
// safe for concurrent use
type defaultRand struct{}

func (defaultRand) Intn(n int) int   { return rand.Intn(n) }
func (defaultRand) Float64() float64 { return rand.Float64() }

// Catalog provides search and lookup over train records plus the
// derived per-class fare, seat-layout, and route views
type Catalog interface {
	Search(ctx context.Context, req models.SearchRequest) []models.Train
	GetByID(ctx context.Context, id uuid.UUID) *models.Train
	GetByTrainNumber(ctx context.Context, trainNumber string) *models.Train
	GetFareBreakdown(ctx context.Context, trainID uuid.UUID, class models.ClassCode, passengers int) *models.FareBreakdown
	RefreshAvailability(ctx context.Context, trainID uuid.UUID) map[models.ClassCode]int
	GetSeatLayout(ctx context.Context, trainID uuid.UUID, class models.ClassCode) *models.SeatLayout
	GetRouteDetails(ctx context.Context, trainID uuid.UUID) *models.RouteDetails
	GetTrainStatus(ctx context.Context, trainNumber string) *models.TrainStatus
}

type catalog struct {
	store store.RecordStore
	rng   Rand
}

// NewCatalog creates a train catalog backed by the record store. A nil
// rng falls back to the process-wide source.
func NewCatalog(rs store.RecordStore, rng Rand) Catalog {
	if rng == nil {
		rng = defaultRand{}
	}
	return &catalog{store: rs, rng: rng}
}

// Search filters trains by exact origin and destination. An empty
// origin or destination yields an empty list without contacting the
// store. JourneyDate and Class are accepted but not applied: train
// records are schedule templates, not date-specific instances.
func (c *catalog) Search(ctx context.Context, req models.SearchRequest) []models.Train {
	if req.Origin == "" || req.Destination == "" {
		return []models.Train{}
	}

	q := &store.Query{
		Where: []store.Condition{
			{Field: "origin", Op: store.OpEqualTo, Value: req.Origin},
			{Field: "destination", Op: store.OpEqualTo, Value: req.Destination},
		},
	}

	records, err := c.store.FetchMany(ctx, store.CollectionTrain, q)
	if err != nil {
		log.Printf("TrainCatalog: search %s -> %s failed: %v", req.Origin, req.Destination, err)
		return []models.Train{}
	}

	trains := make([]models.Train, 0, len(records))
	for _, rec := range records {
		trains = append(trains, transformTrainRecord(rec))
	}
	return trains
}

func (c *catalog) GetByID(ctx context.Context, id uuid.UUID) *models.Train {
	rec, err := c.store.FetchOne(ctx, store.CollectionTrain, id)
	if err != nil {
		return nil
	}
	t := transformTrainRecord(rec)
	return &t
}

func (c *catalog) GetByTrainNumber(ctx context.Context, trainNumber string) *models.Train {
	q := &store.Query{
		Where: []store.Condition{
			{Field: "train_number", Op: store.OpEqualTo, Value: trainNumber},
		},
	}

	records, err := c.store.FetchMany(ctx, store.CollectionTrain, q)
	if err != nil || len(records) == 0 {
		return nil
	}
	t := transformTrainRecord(records[0])
	return &t
}

// RefreshAvailability re-reads only the per-class seat counts for a
// train, so callers can detect search-time availability going stale.
// It does not reserve seats; there is no atomic decrement anywhere in
// the booking path.
func (c *catalog) RefreshAvailability(ctx context.Context, trainID uuid.UUID) map[models.ClassCode]int {
	rec, err := c.store.FetchOne(ctx, store.CollectionTrain, trainID)
	if err != nil {
		return nil
	}

	seats := make(map[models.ClassCode]int, len(models.AllClasses))
	for _, class := range models.AllClasses {
		seats[class] = rec.Int(seatField(class))
	}
	return seats
}

// transformTrainRecord maps a raw train record into the domain shape.
// Seat and fare maps are zero-filled for all six classes; Classes
// holds only those with a positive seat count.
func transformTrainRecord(rec store.Record) models.Train {
	seats := make(map[models.ClassCode]int, len(models.AllClasses))
	fares := make(map[models.ClassCode]int, len(models.AllClasses))
	var classes []models.ClassCode

	for _, class := range models.AllClasses {
		count := rec.Int(seatField(class))
		seats[class] = count
		fares[class] = rec.Int(fareField(class))
		if count > 0 {
			classes = append(classes, class)
		}
	}

	return models.Train{
		ID:             rec.ID(),
		TrainNumber:    rec.Str("train_number"),
		TrainName:      rec.Str("train_name"),
		Origin:         rec.Str("origin"),
		Destination:    rec.Str("destination"),
		DepartureTime:  rec.Str("departure_time"),
		ArrivalTime:    rec.Str("arrival_time"),
		Duration:       rec.Str("duration"),
		AvailableSeats: seats,
		Fare:           fares,
		Classes:        classes,
	}
}

func seatField(class models.ClassCode) string {
	switch class {
	case models.Class1A:
		return "available_seats_1a"
	case models.Class2A:
		return "available_seats_2a"
	case models.Class3A:
		return "available_seats_3a"
	case models.ClassSL:
		return "available_seats_sl"
	case models.ClassCC:
		return "available_seats_cc"
	default:
		return "available_seats_ec"
	}
}

func fareField(class models.ClassCode) string {
	switch class {
	case models.Class1A:
		return "fare_1a"
	case models.Class2A:
		return "fare_2a"
	case models.Class3A:
		return "fare_3a"
	case models.ClassSL:
		return "fare_sl"
	case models.ClassCC:
		return "fare_cc"
	default:
		return "fare_ec"
	}
}
