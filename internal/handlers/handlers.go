package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/apper-canvas/nimblerailbook/internal/booking"
	"github.com/apper-canvas/nimblerailbook/internal/catalog"
	"github.com/apper-canvas/nimblerailbook/internal/models"
	"github.com/apper-canvas/nimblerailbook/internal/station"
	"github.com/apper-canvas/nimblerailbook/internal/websocket"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	stations station.Directory
	catalog  catalog.Catalog
	ledger   booking.Ledger
	hub      *websocket.Hub
}

// NewHandler creates a new Handler instance. The hub may be nil when
// WebSocket push is disabled.
func NewHandler(stations station.Directory, cat catalog.Catalog, ledger booking.Ledger, hub *websocket.Hub) *Handler {
	return &Handler{
		stations: stations,
		catalog:  cat,
		ledger:   ledger,
		hub:      hub,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// SearchStations handles GET /api/stations?q=
func (h *Handler) SearchStations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondJSON(w, http.StatusOK, h.stations.GetAll(r.Context()))
		return
	}
	respondJSON(w, http.StatusOK, h.stations.Search(r.Context(), query))
}

// GetStation handles GET /api/stations/{code}
func (h *Handler) GetStation(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	s := h.stations.GetByCode(r.Context(), code)
	if s == nil {
		respondError(w, http.StatusNotFound, "Station not found")
		return
	}
	respondJSON(w, http.StatusOK, s)
}

// SearchTrains handles GET /api/trains?origin=&destination=&date=&class=
func (h *Handler) SearchTrains(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	req := models.SearchRequest{
		Origin:      params.Get("origin"),
		Destination: params.Get("destination"),
		JourneyDate: params.Get("date"),
		Class:       models.ClassCode(params.Get("class")),
	}
	respondJSON(w, http.StatusOK, h.catalog.Search(r.Context(), req))
}

// GetTrain handles GET /api/trains/{id}
func (h *Handler) GetTrain(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid train ID")
		return
	}

	train := h.catalog.GetByID(r.Context(), id)
	if train == nil {
		respondError(w, http.StatusNotFound, "Train not found")
		return
	}
	respondJSON(w, http.StatusOK, train)
}

// GetFareBreakdown handles GET /api/trains/{id}/fare?class=&passengers=
func (h *Handler) GetFareBreakdown(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid train ID")
		return
	}

	class := models.ClassCode(r.URL.Query().Get("class"))
	if class == "" {
		respondError(w, http.StatusBadRequest, "Travel class is required")
		return
	}

	passengers := 1
	if p := r.URL.Query().Get("passengers"); p != "" {
		passengers, err = strconv.Atoi(p)
		if err != nil || passengers < 1 {
			respondError(w, http.StatusBadRequest, "Passenger count must be at least 1")
			return
		}
	}

	breakdown := h.catalog.GetFareBreakdown(r.Context(), id, class, passengers)
	if breakdown == nil {
		respondError(w, http.StatusNotFound, "Fare not available for this train and class")
		return
	}
	respondJSON(w, http.StatusOK, breakdown)
}

// GetSeatLayout handles GET /api/trains/{id}/seatmap?class=
func (h *Handler) GetSeatLayout(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid train ID")
		return
	}

	class := models.ClassCode(r.URL.Query().Get("class"))
	if class == "" {
		respondError(w, http.StatusBadRequest, "Travel class is required")
		return
	}

	layout := h.catalog.GetSeatLayout(r.Context(), id, class)
	if layout == nil {
		respondError(w, http.StatusNotFound, "Seat layout not available for this train and class")
		return
	}
	respondJSON(w, http.StatusOK, layout)
}

// GetRouteDetails handles GET /api/trains/{id}/route
func (h *Handler) GetRouteDetails(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid train ID")
		return
	}

	route := h.catalog.GetRouteDetails(r.Context(), id)
	if route == nil {
		respondError(w, http.StatusNotFound, "Train not found")
		return
	}
	respondJSON(w, http.StatusOK, route)
}

// GetAvailability handles GET /api/trains/{id}/availability
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid train ID")
		return
	}

	seats := h.catalog.RefreshAvailability(r.Context(), id)
	if seats == nil {
		respondError(w, http.StatusNotFound, "Train not found")
		return
	}
	respondJSON(w, http.StatusOK, seats)
}

// GetTrainStatus handles GET /api/trains/status/{trainNumber}
func (h *Handler) GetTrainStatus(w http.ResponseWriter, r *http.Request) {
	trainNumber := mux.Vars(r)["trainNumber"]
	status := h.catalog.GetTrainStatus(r.Context(), trainNumber)
	if status == nil {
		respondError(w, http.StatusNotFound, "Train not found")
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// CreateBooking handles POST /api/bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.ledger.Create(r.Context(), req)
	if err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.notifyTrain(r, created.TrainNumber, func(trainID string, seats map[models.ClassCode]int) {
		h.hub.BroadcastBookingCreated(trainID, created.PNR, created.Class)
		h.hub.BroadcastAvailability(trainID, seats)
	})

	respondJSON(w, http.StatusCreated, created)
}

// ListBookings handles GET /api/bookings
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.ledger.GetAll(r.Context()))
}

// GetBooking handles GET /api/bookings/{pnr}
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	pnr := mux.Vars(r)["pnr"]
	b := h.ledger.GetByPNR(r.Context(), pnr)
	if b == nil {
		respondError(w, http.StatusNotFound, "Booking not found")
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// CancelBooking handles DELETE /api/bookings/{pnr}
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	pnr := mux.Vars(r)["pnr"]

	result, err := h.ledger.Cancel(r.Context(), pnr)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			respondError(w, http.StatusNotFound, "Booking not found")
			return
		}
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.notifyTrain(r, result.Booking.TrainNumber, func(trainID string, seats map[models.ClassCode]int) {
		h.hub.BroadcastBookingCancelled(trainID, pnr, result.Booking.Class)
	})

	respondJSON(w, http.StatusOK, result)
}

// DownloadTicket handles POST /api/bookings/{pnr}/ticket
func (h *Handler) DownloadTicket(w http.ResponseWriter, r *http.Request) {
	pnr := mux.Vars(r)["pnr"]

	result, err := h.ledger.DownloadTicket(r.Context(), pnr)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			respondError(w, http.StatusNotFound, "Booking not found")
			return
		}
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// WatchTrain handles GET /api/trains/{id}/ws
func (h *Handler) WatchTrain(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, http.StatusNotFound, "WebSocket push is disabled")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid train ID")
		return
	}

	h.hub.ServeWS(w, r, id)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// notifyTrain resolves the train for a booking event and runs the
// broadcast callback with its refreshed availability. Best effort: a
// missing hub or unknown train number drops the notification.
func (h *Handler) notifyTrain(r *http.Request, trainNumber string, fn func(trainID string, seats map[models.ClassCode]int)) {
	if h.hub == nil {
		return
	}
	train := h.catalog.GetByTrainNumber(r.Context(), trainNumber)
	if train == nil {
		return
	}
	fn(train.ID.String(), h.catalog.RefreshAvailability(r.Context(), train.ID))
}
