package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/apper-canvas/nimblerailbook/internal/models"
	"github.com/apper-canvas/nimblerailbook/internal/store"
	"github.com/go-playground/validator/v10"
)

var ErrBookingNotFound = errors.New("booking not found")

// Rand draws the PNR digits; inject a seeded *rand.Rand in tests
type Rand interface {
	Intn(n int) int
}

type defaultRand struct{}

func (defaultRand) Intn(n int) int { return rand.Intn(n) }

// Ledger owns the booking lifecycle: PNR issuance, creation,
// lookup, and cancellation with refund
type Ledger interface {
	GetAll(ctx context.Context) []models.Booking
	GetByPNR(ctx context.Context, pnr string) *models.Booking
	Create(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error)
	Cancel(ctx context.Context, pnr string) (*models.CancellationResult, error)
	DownloadTicket(ctx context.Context, pnr string) (*FunctionResult, error)
}

type ledger struct {
	store            store.RecordStore
	invoker          FunctionInvoker
	ticketFunctionID string
	validate         *validator.Validate
	rng              Rand
	now              func() time.Time
}

// NewLedger creates a booking ledger backed by the record store. A nil
// rng falls back to the process-wide source; a nil now falls back to
// time.Now.
func NewLedger(rs store.RecordStore, invoker FunctionInvoker, ticketFunctionID string, rng Rand, now func() time.Time) Ledger {
	if rng == nil {
		rng = defaultRand{}
	}
	if now == nil {
		now = time.Now
	}
	return &ledger{
		store:            rs,
		invoker:          invoker,
		ticketFunctionID: ticketFunctionID,
		validate:         validator.New(),
		rng:              rng,
		now:              now,
	}
}

// GeneratePNR draws a 10-digit numeric string uniformly from
// [1000000000, 9999999999]. Collisions are not checked here; the
// store's unique index on pnr rejects duplicates and the create
// surfaces that as a write error.
func GeneratePNR(rng Rand) string {
	return fmt.Sprintf("%d", 1000000000+rng.Intn(9000000000))
}

// GetAll returns every booking; read failures degrade to empty
func (l *ledger) GetAll(ctx context.Context) []models.Booking {
	records, err := l.store.FetchMany(ctx, store.CollectionBooking, nil)
	if err != nil {
		log.Printf("BookingLedger: failed to fetch bookings: %v", err)
		return []models.Booking{}
	}

	bookings := make([]models.Booking, 0, len(records))
	for _, rec := range records {
		bookings = append(bookings, transformBookingRecord(rec))
	}
	return bookings
}

// GetByPNR returns the booking with the exact PNR, or nil
func (l *ledger) GetByPNR(ctx context.Context, pnr string) *models.Booking {
	q := &store.Query{
		Where: []store.Condition{
			{Field: "pnr", Op: store.OpEqualTo, Value: pnr},
		},
	}

	records, err := l.store.FetchMany(ctx, store.CollectionBooking, q)
	if err != nil || len(records) == 0 {
		return nil
	}
	b := transformBookingRecord(records[0])
	return &b
}

// Create issues a PNR, stamps today's booking date and Confirmed
// status, and persists the booking. The write is a single-record
// store operation; on error the caller must not assume the booking
// exists. Seat availability is not decremented here — two concurrent
// creates against the same train and class can both succeed.
func (l *ledger) Create(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	if err := l.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid booking request: %w", err)
	}

	pnr := GeneratePNR(l.rng)
	bookingDate := l.now().Format(dateLayout)

	rec := store.Record{
		"pnr":            pnr,
		"train_number":   req.TrainNumber,
		"train_name":     req.TrainName,
		"origin":         req.Origin,
		"destination":    req.Destination,
		"departure_time": req.DepartureTime,
		"arrival_time":   req.ArrivalTime,
		"journey_date":   req.JourneyDate,
		"booking_date":   bookingDate,
		"status":         string(models.BookingStatusConfirmed),
		"class":          string(req.Class),
		"fare":           req.Fare,
		"passengers":     passengersToRecord(req.Passengers),
		"seat_numbers":   stringsToRecord(req.SeatNumbers),
	}

	created, err := l.store.Create(ctx, store.CollectionBooking, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	booking := transformBookingRecord(created)
	log.Printf("BookingLedger: created booking %s (PNR %s)", booking.ID, booking.PNR)
	return &booking, nil
}

// Cancel transitions a booking to Cancelled and computes the refund
// from the pre-cancellation fare and journey date. The transition is
// one-way; bookings are never deleted. Cancelling an already
// cancelled booking recomputes the refund again — callers that need
// idempotent cancellation must guard against double-cancel.
func (l *ledger) Cancel(ctx context.Context, pnr string) (*models.CancellationResult, error) {
	booking := l.GetByPNR(ctx, pnr)
	if booking == nil {
		return nil, fmt.Errorf("%w: pnr %s", ErrBookingNotFound, pnr)
	}

	patch := store.Record{"status": string(models.BookingStatusCancelled)}
	if err := l.store.Update(ctx, store.CollectionBooking, booking.ID, patch); err != nil {
		return nil, fmt.Errorf("failed to cancel booking %s: %w", pnr, err)
	}

	refund := CalculateRefund(booking.Fare, booking.JourneyDate, l.now())
	booking.Status = models.BookingStatusCancelled

	log.Printf("BookingLedger: cancelled booking PNR %s, refund %d", pnr, refund)
	return &models.CancellationResult{Booking: booking, RefundAmount: refund}, nil
}

// transformBookingRecord maps a raw booking record into the domain
// shape exactly once at the store boundary
func transformBookingRecord(rec store.Record) models.Booking {
	return models.Booking{
		ID:            rec.ID(),
		PNR:           rec.Str("pnr"),
		TrainNumber:   rec.Str("train_number"),
		TrainName:     rec.Str("train_name"),
		Origin:        rec.Str("origin"),
		Destination:   rec.Str("destination"),
		DepartureTime: rec.Str("departure_time"),
		ArrivalTime:   rec.Str("arrival_time"),
		JourneyDate:   rec.Str("journey_date"),
		BookingDate:   rec.Str("booking_date"),
		Status:        models.BookingStatus(rec.Str("status")),
		Class:         models.ClassCode(rec.Str("class")),
		Fare:          rec.Int("fare"),
		Passengers:    recordToPassengers(rec["passengers"]),
		SeatNumbers:   recordToStrings(rec["seat_numbers"]),
	}
}

func passengersToRecord(passengers []models.Passenger) []any {
	out := make([]any, 0, len(passengers))
	for _, p := range passengers {
		out = append(out, map[string]any{
			"name":   p.Name,
			"age":    p.Age,
			"gender": p.Gender,
		})
	}
	return out
}

func recordToPassengers(v any) []models.Passenger {
	items, ok := v.([]any)
	if !ok {
		return []models.Passenger{}
	}

	passengers := make([]models.Passenger, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p := models.Passenger{
			Gender: store.Record(fields).Str("gender"),
			Name:   store.Record(fields).Str("name"),
			Age:    store.Record(fields).Int("age"),
		}
		passengers = append(passengers, p)
	}
	return passengers
}

func stringsToRecord(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func recordToStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
