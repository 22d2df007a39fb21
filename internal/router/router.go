package router

import (
	"net/http"

	"github.com/apper-canvas/nimblerailbook/internal/handlers"
	"github.com/gorilla/mux"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Stations
	api.HandleFunc("/stations", h.SearchStations).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/stations/{code}", h.GetStation).Methods(http.MethodGet, http.MethodOptions)

	// Trains
	api.HandleFunc("/trains", h.SearchTrains).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/trains/status/{trainNumber}", h.GetTrainStatus).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/trains/{id}", h.GetTrain).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/trains/{id}/fare", h.GetFareBreakdown).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/trains/{id}/seatmap", h.GetSeatLayout).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/trains/{id}/route", h.GetRouteDetails).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/trains/{id}/availability", h.GetAvailability).Methods(http.MethodGet, http.MethodOptions)

	// Bookings
	api.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/bookings", h.ListBookings).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{pnr}", h.GetBooking).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/bookings/{pnr}", h.CancelBooking).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/{pnr}/ticket", h.DownloadTicket).Methods(http.MethodPost, http.MethodOptions)

	// WebSocket for availability refresh hints
	api.HandleFunc("/trains/{id}/ws", h.WatchTrain)

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
