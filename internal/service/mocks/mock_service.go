package mocks

import (
	"context"

	"github.com/aerovia/flightdeck/internal/domain"
	"github.com/aerovia/flightdeck/internal/seatmap"
	"github.com/aerovia/flightdeck/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockBookingService is a mock implementation of service.BookingService.
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockBookingService) SearchFlights(ctx context.Context, origin, destination, day string) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockBookingService) GetFlight(ctx context.Context, flightID uuid.UUID) (*domain.Flight, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockBookingService) CreateFlight(ctx context.Context, in service.CreateFlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockBookingService) UpdateFlight(ctx context.Context, flightID uuid.UUID, in service.CreateFlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, flightID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockBookingService) DeleteFlight(ctx context.Context, flightID uuid.UUID) error {
	args := m.Called(ctx, flightID)
	return args.Error(0)
}

func (m *MockBookingService) GetSeatMap(ctx context.Context, flightID uuid.UUID) ([]seatmap.Row, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]seatmap.Row), args.Error(1)
}

func (m *MockBookingService) ListOccupiedSeats(ctx context.Context, flightID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingService) CreateReservation(ctx context.Context, in service.CreateReservationInput) (*domain.Reservation, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockBookingService) GetReservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockBookingService) ListReservations(ctx context.Context, email string) ([]domain.Reservation, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockBookingService) EditReservation(ctx context.Context, id uuid.UUID, in service.EditReservationInput) (*domain.Reservation, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockBookingService) CancelReservation(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingService) CheckIn(ctx context.Context, id uuid.UUID) (*service.BoardingPass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BoardingPass), args.Error(1)
}

func (m *MockBookingService) GetSummary(ctx context.Context, id uuid.UUID) (*service.Summary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Summary), args.Error(1)
}
