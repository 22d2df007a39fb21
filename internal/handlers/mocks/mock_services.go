package mocks

import (
	"context"

	"github.com/apper-canvas/nimblerailbook/internal/booking"
	"github.com/apper-canvas/nimblerailbook/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDirectory is a mock implementation of station.Directory
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) GetAll(ctx context.Context) []models.Station {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Station)
}

func (m *MockDirectory) Search(ctx context.Context, query string) []models.Station {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Station)
}

func (m *MockDirectory) GetByID(ctx context.Context, id uuid.UUID) *models.Station {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.Station)
}

func (m *MockDirectory) GetByCode(ctx context.Context, code string) *models.Station {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.Station)
}

// MockCatalog is a mock implementation of catalog.Catalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Search(ctx context.Context, req models.SearchRequest) []models.Train {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Train)
}

func (m *MockCatalog) GetByID(ctx context.Context, id uuid.UUID) *models.Train {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.Train)
}

func (m *MockCatalog) GetByTrainNumber(ctx context.Context, trainNumber string) *models.Train {
	args := m.Called(ctx, trainNumber)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.Train)
}

func (m *MockCatalog) GetFareBreakdown(ctx context.Context, trainID uuid.UUID, class models.ClassCode, passengers int) *models.FareBreakdown {
	args := m.Called(ctx, trainID, class, passengers)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.FareBreakdown)
}

func (m *MockCatalog) RefreshAvailability(ctx context.Context, trainID uuid.UUID) map[models.ClassCode]int {
	args := m.Called(ctx, trainID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[models.ClassCode]int)
}

func (m *MockCatalog) GetSeatLayout(ctx context.Context, trainID uuid.UUID, class models.ClassCode) *models.SeatLayout {
	args := m.Called(ctx, trainID, class)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.SeatLayout)
}

func (m *MockCatalog) GetRouteDetails(ctx context.Context, trainID uuid.UUID) *models.RouteDetails {
	args := m.Called(ctx, trainID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.RouteDetails)
}

func (m *MockCatalog) GetTrainStatus(ctx context.Context, trainNumber string) *models.TrainStatus {
	args := m.Called(ctx, trainNumber)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.TrainStatus)
}

// MockLedger is a mock implementation of booking.Ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) GetAll(ctx context.Context) []models.Booking {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Booking)
}

func (m *MockLedger) GetByPNR(ctx context.Context, pnr string) *models.Booking {
	args := m.Called(ctx, pnr)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.Booking)
}

func (m *MockLedger) Create(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockLedger) Cancel(ctx context.Context, pnr string) (*models.CancellationResult, error) {
	args := m.Called(ctx, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CancellationResult), args.Error(1)
}

func (m *MockLedger) DownloadTicket(ctx context.Context, pnr string) (*booking.FunctionResult, error) {
	args := m.Called(ctx, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.FunctionResult), args.Error(1)
}
