package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apper-canvas/nimblerailbook/internal/booking"
	"github.com/apper-canvas/nimblerailbook/internal/handlers/mocks"
	"github.com/apper-canvas/nimblerailbook/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stations", h.SearchStations).Methods(http.MethodGet)
	api.HandleFunc("/stations/{code}", h.GetStation).Methods(http.MethodGet)
	api.HandleFunc("/trains", h.SearchTrains).Methods(http.MethodGet)
	api.HandleFunc("/trains/status/{trainNumber}", h.GetTrainStatus).Methods(http.MethodGet)
	api.HandleFunc("/trains/{id}", h.GetTrain).Methods(http.MethodGet)
	api.HandleFunc("/trains/{id}/fare", h.GetFareBreakdown).Methods(http.MethodGet)
	api.HandleFunc("/trains/{id}/seatmap", h.GetSeatLayout).Methods(http.MethodGet)
	api.HandleFunc("/trains/{id}/route", h.GetRouteDetails).Methods(http.MethodGet)
	api.HandleFunc("/trains/{id}/availability", h.GetAvailability).Methods(http.MethodGet)
	api.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings", h.ListBookings).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{pnr}", h.GetBooking).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{pnr}", h.CancelBooking).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/{pnr}/ticket", h.DownloadTicket).Methods(http.MethodPost)
	return r
}

type testMocks struct {
	stations *mocks.MockDirectory
	catalog  *mocks.MockCatalog
	ledger   *mocks.MockLedger
}

func newTestHandler() (*Handler, *testMocks) {
	m := &testMocks{
		stations: new(mocks.MockDirectory),
		catalog:  new(mocks.MockCatalog),
		ledger:   new(mocks.MockLedger),
	}
	// hub is nil: WebSocket push is exercised in the websocket package
	return NewHandler(m.stations, m.catalog, m.ledger, nil), m
}

func TestHandler_SearchStations(t *testing.T) {
	handler, m := newTestHandler()
	router := setupTestRouter(handler)

	expected := []models.Station{{ID: uuid.New(), Name: "New Delhi", City: "Delhi", Code: "NDLS"}}
	m.stations.On("Search", mock.Anything, "delhi").Return(expected)

	req := httptest.NewRequest(http.MethodGet, "/api/stations?q=delhi", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []models.Station
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Len(t, response, 1)
	assert.Equal(t, "NDLS", response[0].Code)

	m.stations.AssertExpectations(t)
}

func TestHandler_GetStation(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		mockReturn     *models.Station
		expectedStatus int
	}{
		{
			name:           "station found",
			code:           "NDLS",
			mockReturn:     &models.Station{ID: uuid.New(), Name: "New Delhi", Code: "NDLS"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "station not found",
			code:           "XXXX",
			mockReturn:     nil,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := newTestHandler()
			router := setupTestRouter(handler)

			m.stations.On("GetByCode", mock.Anything, tt.code).Return(tt.mockReturn)

			req := httptest.NewRequest(http.MethodGet, "/api/stations/"+tt.code, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			m.stations.AssertExpectations(t)
		})
	}
}

func TestHandler_SearchTrains(t *testing.T) {
	handler, m := newTestHandler()
	router := setupTestRouter(handler)

	expected := []models.Train{{ID: uuid.New(), TrainNumber: "12951"}}
	m.catalog.On("Search", mock.Anything, models.SearchRequest{
		Origin:      "NDLS",
		Destination: "BCT",
		JourneyDate: "2026-03-15",
		Class:       models.Class2A,
	}).Return(expected)

	req := httptest.NewRequest(http.MethodGet, "/api/trains?origin=NDLS&destination=BCT&date=2026-03-15&class=2A", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	m.catalog.AssertExpectations(t)
}

func TestHandler_GetTrain(t *testing.T) {
	trainID := uuid.New()

	tests := []struct {
		name           string
		trainID        string
		mockReturn     *models.Train
		expectMockCall bool
		expectedStatus int
	}{
		{
			name:           "train found",
			trainID:        trainID.String(),
			mockReturn:     &models.Train{ID: trainID, TrainNumber: "12951"},
			expectMockCall: true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "train not found",
			trainID:        uuid.New().String(),
			mockReturn:     nil,
			expectMockCall: true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid train id",
			trainID:        "not-a-uuid",
			expectMockCall: false,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := newTestHandler()
			router := setupTestRouter(handler)

			if tt.expectMockCall {
				id := uuid.MustParse(tt.trainID)
				m.catalog.On("GetByID", mock.Anything, id).Return(tt.mockReturn)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/trains/"+tt.trainID, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			m.catalog.AssertExpectations(t)
		})
	}
}

func TestHandler_GetFareBreakdown(t *testing.T) {
	trainID := uuid.New()

	tests := []struct {
		name           string
		url            string
		mockReturn     *models.FareBreakdown
		expectMockCall bool
		passengers     int
		expectedStatus int
	}{
		{
			name:           "fare found with default passenger count",
			url:            "/api/trains/" + trainID.String() + "/fare?class=SL",
			mockReturn:     &models.FareBreakdown{BaseFare: 600, TotalAmount: 650},
			expectMockCall: true,
			passengers:     1,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "fare found with explicit passengers",
			url:            "/api/trains/" + trainID.String() + "/fare?class=SL&passengers=3",
			mockReturn:     &models.FareBreakdown{BaseFare: 600, TotalAmount: 1950},
			expectMockCall: true,
			passengers:     3,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing class",
			url:            "/api/trains/" + trainID.String() + "/fare",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero passengers rejected",
			url:            "/api/trains/" + trainID.String() + "/fare?class=SL&passengers=0",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative passengers rejected",
			url:            "/api/trains/" + trainID.String() + "/fare?class=SL&passengers=-2",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "class not offered",
			url:            "/api/trains/" + trainID.String() + "/fare?class=EC",
			mockReturn:     nil,
			expectMockCall: true,
			passengers:     1,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := newTestHandler()
			router := setupTestRouter(handler)

			if tt.expectMockCall {
				m.catalog.On("GetFareBreakdown", mock.Anything, trainID, mock.AnythingOfType("models.ClassCode"), tt.passengers).Return(tt.mockReturn)
			}

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			m.catalog.AssertExpectations(t)
		})
	}
}

func TestHandler_GetSeatLayout(t *testing.T) {
	trainID := uuid.New()

	handler, m := newTestHandler()
	router := setupTestRouter(handler)

	layout := &models.SeatLayout{TrainID: trainID, Class: models.ClassSL}
	m.catalog.On("GetSeatLayout", mock.Anything, trainID, models.ClassSL).Return(layout)

	req := httptest.NewRequest(http.MethodGet, "/api/trains/"+trainID.String()+"/seatmap?class=SL", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	m.catalog.AssertExpectations(t)
}

func TestHandler_GetSeatLayoutMissingClass(t *testing.T) {
	handler, _ := newTestHandler()
	router := setupTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/trains/"+uuid.New().String()+"/seatmap", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetAvailability(t *testing.T) {
	trainID := uuid.New()

	handler, m := newTestHandler()
	router := setupTestRouter(handler)

	seats := map[models.ClassCode]int{models.Class1A: 4, models.ClassSL: 0}
	m.catalog.On("RefreshAvailability", mock.Anything, trainID).Return(seats)

	req := httptest.NewRequest(http.MethodGet, "/api/trains/"+trainID.String()+"/availability", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[models.ClassCode]int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, 4, response[models.Class1A])

	m.catalog.AssertExpectations(t)
}

func TestHandler_CreateBooking(t *testing.T) {
	pnr := "4837261905"

	tests := []struct {
		name           string
		requestBody    interface{}
		mockReturn     *models.Booking
		mockError      error
		expectMockCall bool
		expectedStatus int
	}{
		{
			name: "valid booking",
			requestBody: models.CreateBookingRequest{
				TrainNumber:   "12951",
				TrainName:     "Rajdhani Express",
				Origin:        "NDLS",
				Destination:   "BCT",
				DepartureTime: "16:25",
				ArrivalTime:   "08:15",
				JourneyDate:   "2026-03-15",
				Class:         models.Class2A,
				Fare:          2600,
				Passengers:    []models.Passenger{{Name: "Asha Verma", Age: 34, Gender: "female"}},
				SeatNumbers:   []string{"A1-4"},
			},
			mockReturn: &models.Booking{
				ID:     uuid.New(),
				PNR:    pnr,
				Status: models.BookingStatusConfirmed,
			},
			expectMockCall: true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "malformed body",
			requestBody:    "not-json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := newTestHandler()
			router := setupTestRouter(handler)

			var body []byte
			if s, ok := tt.requestBody.(string); ok {
				body = []byte(s)
			} else {
				body, _ = json.Marshal(tt.requestBody)
			}

			if tt.expectMockCall {
				m.ledger.On("Create", mock.Anything, mock.AnythingOfType("models.CreateBookingRequest")).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			m.ledger.AssertExpectations(t)
		})
	}
}

func TestHandler_GetBooking(t *testing.T) {
	tests := []struct {
		name           string
		pnr            string
		mockReturn     *models.Booking
		expectedStatus int
	}{
		{
			name:           "booking found",
			pnr:            "4837261905",
			mockReturn:     &models.Booking{PNR: "4837261905", Status: models.BookingStatusConfirmed},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "booking not found",
			pnr:            "0000000000",
			mockReturn:     nil,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := newTestHandler()
			router := setupTestRouter(handler)

			m.ledger.On("GetByPNR", mock.Anything, tt.pnr).Return(tt.mockReturn)

			req := httptest.NewRequest(http.MethodGet, "/api/bookings/"+tt.pnr, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			m.ledger.AssertExpectations(t)
		})
	}
}

func TestHandler_CancelBooking(t *testing.T) {
	pnr := "4837261905"

	tests := []struct {
		name           string
		mockResult     *models.CancellationResult
		mockError      error
		expectedStatus int
	}{
		{
			name: "successful cancellation",
			mockResult: &models.CancellationResult{
				Booking:      &models.Booking{PNR: pnr, TrainNumber: "12951", Status: models.BookingStatusCancelled},
				RefundAmount: 2340,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "booking not found",
			mockError:      booking.ErrBookingNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := newTestHandler()
			router := setupTestRouter(handler)

			m.ledger.On("Cancel", mock.Anything, pnr).Return(tt.mockResult, tt.mockError)

			req := httptest.NewRequest(http.MethodDelete, "/api/bookings/"+pnr, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.mockResult != nil {
				var response models.CancellationResult
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, 2340, response.RefundAmount)
				assert.Equal(t, models.BookingStatusCancelled, response.Booking.Status)
			}

			m.ledger.AssertExpectations(t)
		})
	}
}

func TestHandler_DownloadTicket(t *testing.T) {
	pnr := "4837261905"

	tests := []struct {
		name           string
		mockResult     *booking.FunctionResult
		mockError      error
		expectedStatus int
	}{
		{
			name:           "ticket generated",
			mockResult:     &booking.FunctionResult{Success: true, PDFData: "JVBERi0xLjQ=", Filename: "ticket.pdf"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "booking not found",
			mockError:      booking.ErrBookingNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "downstream failure",
			mockError:      assert.AnError,
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := newTestHandler()
			router := setupTestRouter(handler)

			m.ledger.On("DownloadTicket", mock.Anything, pnr).Return(tt.mockResult, tt.mockError)

			req := httptest.NewRequest(http.MethodPost, "/api/bookings/"+pnr+"/ticket", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			m.ledger.AssertExpectations(t)
		})
	}
}
