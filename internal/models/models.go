package models

import (
	"time"

	"github.com/google/uuid"
)

// ClassCode identifies a travel class on a train
type ClassCode string

const (
	Class1A ClassCode = "1A"
	Class2A ClassCode = "2A"
	Class3A ClassCode = "3A"
	ClassSL ClassCode = "SL"
	ClassCC ClassCode = "CC"
	ClassEC ClassCode = "EC"
)

// AllClasses lists every travel class in descending comfort order
var AllClasses = []ClassCode{Class1A, Class2A, Class3A, ClassSL, ClassCC, ClassEC}

// Station represents a station in the catalog
type Station struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	City string    `json:"city"`
	Code string    `json:"code"`
}

// Train represents a train schedule template between two stations.
// Fares are integer currency units.
type Train struct {
	ID             uuid.UUID         `json:"id"`
	TrainNumber    string            `json:"trainNumber"`
	TrainName      string            `json:"trainName"`
	Origin         string            `json:"origin"`
	Destination    string            `json:"destination"`
	DepartureTime  string            `json:"departureTime"` // HH:MM
	ArrivalTime    string            `json:"arrivalTime"`   // HH:MM
	Duration       string            `json:"duration"`
	AvailableSeats map[ClassCode]int `json:"availableSeats"`
	Fare           map[ClassCode]int `json:"fare"`
	Classes        []ClassCode       `json:"classes"`
}

// SeatStatus represents the displayed status of a seat
type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusOccupied  SeatStatus = "occupied"
)

// Seat represents a single seat or berth in a coach
type Seat struct {
	SeatNumber string     `json:"seatNumber"`
	Status     SeatStatus `json:"status"`
	Type       string     `json:"type"`
}

// Coach represents one coach of a seat layout
type Coach struct {
	CoachName string `json:"coachName"`
	Seats     []Seat `json:"seats"`
}

// SeatLayout is an illustrative coach/seat matrix for one travel class.
// It is regenerated per request and is never an availability authority.
type SeatLayout struct {
	TrainID uuid.UUID `json:"trainId"`
	Class   ClassCode `json:"class"`
	Coaches []Coach   `json:"coaches"`
}

// FareBreakdown decomposes the payable amount for a class
type FareBreakdown struct {
	BaseFare          int `json:"baseFare"`
	ReservationFee    int `json:"reservationFee"`
	ServiceTax        int `json:"serviceTax"`
	TotalPerPassenger int `json:"totalPerPassenger"`
	Passengers        int `json:"passengers"`
	TotalAmount       int `json:"totalAmount"`
}

// Stoppage is one intermediate halt along a route
type Stoppage struct {
	StationName   string `json:"stationName"`
	StationCode   string `json:"stationCode"`
	ArrivalTime   string `json:"arrivalTime"`
	DepartureTime string `json:"departureTime"`
	StopDuration  string `json:"stopDuration"`
	Distance      int    `json:"distance"`
	Platform      int    `json:"platform"`
}

// RouteDetails describes a train's journey with its stoppages
type RouteDetails struct {
	TrainID       uuid.UUID  `json:"trainId"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	TotalDistance int        `json:"totalDistance"`
	TotalDuration string     `json:"totalDuration"`
	Stoppages     []Stoppage `json:"stoppages"`
}

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// Passenger represents one traveller on a booking
type Passenger struct {
	Name   string `json:"name" validate:"required"`
	Age    int    `json:"age" validate:"required,min=1,max=120"`
	Gender string `json:"gender" validate:"required,oneof=male female other"`
}

// Booking represents a persisted reservation identified by its PNR
type Booking struct {
	ID            uuid.UUID     `json:"id"`
	PNR           string        `json:"pnr"`
	TrainNumber   string        `json:"trainNumber"`
	TrainName     string        `json:"trainName"`
	Origin        string        `json:"origin"`
	Destination   string        `json:"destination"`
	DepartureTime string        `json:"departureTime"`
	ArrivalTime   string        `json:"arrivalTime"`
	JourneyDate   string        `json:"journeyDate"` // YYYY-MM-DD
	BookingDate   string        `json:"bookingDate"` // YYYY-MM-DD
	Status        BookingStatus `json:"status"`
	Class         ClassCode     `json:"class"`
	Fare          int           `json:"fare"`
	Passengers    []Passenger   `json:"passengers"`
	SeatNumbers   []string      `json:"seatNumbers"`
}

// SearchRequest carries train search parameters. JourneyDate and Class
// are accepted but not applied as filters: trains are schedule
// templates, not date-specific instances.
type SearchRequest struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	JourneyDate string    `json:"journeyDate,omitempty"`
	Class       ClassCode `json:"class,omitempty"`
}

// CreateBookingRequest represents a request to create a new booking
type CreateBookingRequest struct {
	TrainNumber   string      `json:"trainNumber" validate:"required"`
	TrainName     string      `json:"trainName" validate:"required"`
	Origin        string      `json:"origin" validate:"required"`
	Destination   string      `json:"destination" validate:"required"`
	DepartureTime string      `json:"departureTime" validate:"required"`
	ArrivalTime   string      `json:"arrivalTime" validate:"required"`
	JourneyDate   string      `json:"journeyDate" validate:"required,datetime=2006-01-02"`
	Class         ClassCode   `json:"class" validate:"required,oneof=1A 2A 3A SL CC EC"`
	Fare          int         `json:"fare" validate:"required,min=1"`
	Passengers    []Passenger `json:"passengers" validate:"required,min=1,dive"`
	SeatNumbers   []string    `json:"seatNumbers" validate:"required,min=1"`
}

// CancellationResult is returned by a successful cancellation
type CancellationResult struct {
	Booking      *Booking `json:"booking"`
	RefundAmount int      `json:"refundAmount"`
}

// TrainStatus represents a simulated live running status
type TrainStatus struct {
	Train         *Train    `json:"train"`
	CurrentStatus string    `json:"currentStatus"`
	NextStation   string    `json:"nextStation"`
	Platform      int       `json:"platform"`
	LastUpdated   time.Time `json:"lastUpdated"`
}
