package service

import (
	"context"
	"fmt"

	"github.com/aerovia/flightdeck/internal/clock"
	"github.com/aerovia/flightdeck/internal/codes"
	"github.com/aerovia/flightdeck/internal/domain"
	"github.com/aerovia/flightdeck/internal/fare"
	"github.com/aerovia/flightdeck/internal/metrics"
	"github.com/aerovia/flightdeck/internal/seatmap"
	"github.com/google/uuid"
)

// FlightStore is the flight lookup and admin persistence interface.
type FlightStore interface {
	GetFlight(ctx context.Context, id uuid.UUID) (*domain.Flight, error)
	// GetFlightForUpdate locks the flight row for the duration of the
	// surrounding transaction, serializing reservation writes per flight.
	GetFlightForUpdate(ctx context.Context, id uuid.UUID) (*domain.Flight, error)
	ListFlights(ctx context.Context) ([]domain.Flight, error)
	SearchFlights(ctx context.Context, origin, destination, day string) ([]domain.Flight, error)
	CreateFlight(ctx context.Context, f *domain.Flight) error
	UpdateFlight(ctx context.Context, f *domain.Flight) error
	DeleteFlight(ctx context.Context, id uuid.UUID) error
}

// ReservationStore is the reservation persistence interface.
type ReservationStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetReservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	GetReservationForUpdate(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	// CreateReservation returns domain.ErrSeatConflict when another active
	// reservation already holds the seat, and domain.ErrCodeExhausted when
	// the PNR collides with an existing one.
	CreateReservation(ctx context.Context, r *domain.Reservation) error
	UpdateReservation(ctx context.Context, r *domain.Reservation) error
	CountActiveByFlight(ctx context.Context, flightID uuid.UUID) (int, error)
	FindActiveSeatsByFlight(ctx context.Context, flightID uuid.UUID) ([]string, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Reservation, error)
	PNRExists(ctx context.Context, pnr string) (bool, error)
}

// BoardingPass is returned by check-in for display to the passenger.
type BoardingPass struct {
	Code         string `json:"code"`
	PNR          string `json:"pnr"`
	FlightNumber string `json:"flightNumber"`
	Seat         string `json:"seat"`
}

// Summary is the reservation detail plus its fare breakdown.
type Summary struct {
	Reservation *domain.Reservation `json:"reservation"`
	Flight      *domain.Flight      `json:"flight"`
	Fare        fare.Breakdown      `json:"fare"`
}

// CreateReservationInput carries a validated booking request.
type CreateReservationInput struct {
	FlightID      uuid.UUID
	Seat          string
	PassengerName string
	ContactEmail  string
	PassportNo    string
	Meal          domain.MealTier
	Baggage       domain.BaggageTier
}

// EditReservationInput carries a validated change request. Nil fields
// are left untouched.
type EditReservationInput struct {
	Seat    *string
	Meal    *domain.MealTier
	Baggage *domain.BaggageTier
}

// CreateFlightInput carries a validated flight record from the admin API.
type CreateFlightInput struct {
	FlightNumber string
	Origin       string
	Destination  string
	DaysOfWeek   []string
	Departure    string
	Arrival      string
	Aircraft     string
	Capacity     int
	BasePrice    int
}

// BookingService is the application-facing API of the reservation core.
type BookingService interface {
	ListFlights(ctx context.Context) ([]domain.Flight, error)
	SearchFlights(ctx context.Context, origin, destination, day string) ([]domain.Flight, error)
	GetFlight(ctx context.Context, flightID uuid.UUID) (*domain.Flight, error)
	CreateFlight(ctx context.Context, in CreateFlightInput) (*domain.Flight, error)
	UpdateFlight(ctx context.Context, flightID uuid.UUID, in CreateFlightInput) (*domain.Flight, error)
	DeleteFlight(ctx context.Context, flightID uuid.UUID) error

	GetSeatMap(ctx context.Context, flightID uuid.UUID) ([]seatmap.Row, error)
	ListOccupiedSeats(ctx context.Context, flightID uuid.UUID) ([]string, error)

	CreateReservation(ctx context.Context, in CreateReservationInput) (*domain.Reservation, error)
	GetReservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	ListReservations(ctx context.Context, email string) ([]domain.Reservation, error)
	EditReservation(ctx context.Context, id uuid.UUID, in EditReservationInput) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, id uuid.UUID) error
	CheckIn(ctx context.Context, id uuid.UUID) (*BoardingPass, error)
	GetSummary(ctx context.Context, id uuid.UUID) (*Summary, error)
}

type bookingServiceImpl struct {
	flights      FlightStore
	reservations ReservationStore
	clock        clock.Clock
}

// NewBookingService creates a new BookingService.
func NewBookingService(flights FlightStore, reservations ReservationStore, clk clock.Clock) BookingService {
	return &bookingServiceImpl{
		flights:      flights,
		reservations: reservations,
		clock:        clk,
	}
}

// --- Flights ---

func (s *bookingServiceImpl) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	return s.flights.ListFlights(ctx)
}

func (s *bookingServiceImpl) SearchFlights(ctx context.Context, origin, destination, day string) ([]domain.Flight, error) {
	return s.flights.SearchFlights(ctx, origin, destination, day)
}

func (s *bookingServiceImpl) GetFlight(ctx context.Context, flightID uuid.UUID) (*domain.Flight, error) {
	return s.flights.GetFlight(ctx, flightID)
}

func (s *bookingServiceImpl) CreateFlight(ctx context.Context, in CreateFlightInput) (*domain.Flight, error) {
	if in.Capacity <= 0 {
		return nil, domain.ErrInvalidCapacity
	}

	now := s.clock.Now()
	flight := &domain.Flight{
		ID:           uuid.New(),
		FlightNumber: in.FlightNumber,
		Origin:       in.Origin,
		Destination:  in.Destination,
		DaysOfWeek:   in.DaysOfWeek,
		Departure:    in.Departure,
		Arrival:      in.Arrival,
		Aircraft:     in.Aircraft,
		Capacity:     in.Capacity,
		BasePrice:    in.BasePrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.flights.CreateFlight(ctx, flight); err != nil {
		return nil, err
	}
	return flight, nil
}

// UpdateFlight replaces a flight record. Flights with active reservations
// are frozen: capacity or schedule changes would invalidate issued seats.
func (s *bookingServiceImpl) UpdateFlight(ctx context.Context, flightID uuid.UUID, in CreateFlightInput) (*domain.Flight, error) {
	if in.Capacity <= 0 {
		return nil, domain.ErrInvalidCapacity
	}

	var updated *domain.Flight
	err := s.reservations.WithTx(ctx, func(txCtx context.Context) error {
		flight, err := s.flights.GetFlightForUpdate(txCtx, flightID)
		if err != nil {
			return err
		}

		active, err := s.reservations.CountActiveByFlight(txCtx, flightID)
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrFlightInUse
		}

		flight.FlightNumber = in.FlightNumber
		flight.Origin = in.Origin
		flight.Destination = in.Destination
		flight.DaysOfWeek = in.DaysOfWeek
		flight.Departure = in.Departure
		flight.Arrival = in.Arrival
		flight.Aircraft = in.Aircraft
		flight.Capacity = in.Capacity
		flight.BasePrice = in.BasePrice
		flight.UpdatedAt = s.clock.Now()

		if err := s.flights.UpdateFlight(txCtx, flight); err != nil {
			return err
		}
		updated = flight
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *bookingServiceImpl) DeleteFlight(ctx context.Context, flightID uuid.UUID) error {
	return s.reservations.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.flights.GetFlightForUpdate(txCtx, flightID); err != nil {
			return err
		}

		active, err := s.reservations.CountActiveByFlight(txCtx, flightID)
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrFlightInUse
		}

		return s.flights.DeleteFlight(txCtx, flightID)
	})
}

// --- Seat map ---

func (s *bookingServiceImpl) ListOccupiedSeats(ctx context.Context, flightID uuid.UUID) ([]string, error) {
	if _, err := s.flights.GetFlight(ctx, flightID); err != nil {
		return nil, err
	}
	return s.reservations.FindActiveSeatsByFlight(ctx, flightID)
}

func (s *bookingServiceImpl) GetSeatMap(ctx context.Context, flightID uuid.UUID) ([]seatmap.Row, error) {
	flight, err := s.flights.GetFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}

	occupied, err := s.reservations.FindActiveSeatsByFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}

	return seatmap.Generate(flight.Capacity, occupied, "")
}

// --- Reservations ---

// CreateReservation books a seat. The seat-uniqueness and capacity checks
// run inside one transaction holding the flight row lock, so two requests
// racing for the same seat cannot both commit; the partial unique index
// on (flight_id, seat) backs this up at the storage layer.
func (s *bookingServiceImpl) CreateReservation(ctx context.Context, in CreateReservationInput) (*domain.Reservation, error) {
	var created *domain.Reservation

	err := s.reservations.WithTx(ctx, func(txCtx context.Context) error {
		flight, err := s.flights.GetFlightForUpdate(txCtx, in.FlightID)
		if err != nil {
			return err
		}

		occupied, err := s.reservations.FindActiveSeatsByFlight(txCtx, in.FlightID)
		if err != nil {
			return err
		}
		for _, seat := range occupied {
			if seat == in.Seat {
				return domain.ErrSeatConflict
			}
		}

		active, err := s.reservations.CountActiveByFlight(txCtx, in.FlightID)
		if err != nil {
			return err
		}
		if active >= flight.Capacity {
			return domain.ErrCapacityExceeded
		}

		if !seatmap.ValidSeat(flight.Capacity, in.Seat) {
			return domain.ErrInvalidSeat
		}

		pnr, err := s.freshPNR(txCtx)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		reservation := &domain.Reservation{
			ID:            uuid.New(),
			FlightID:      in.FlightID,
			PassengerName: in.PassengerName,
			ContactEmail:  in.ContactEmail,
			PassportNo:    in.PassportNo,
			Seat:          in.Seat,
			Baggage:       in.Baggage,
			Meal:          in.Meal,
			Status:        domain.StatusConfirmed,
			PNR:           pnr,
			BoardingPass:  "",
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := s.reservations.CreateReservation(txCtx, reservation); err != nil {
			return err
		}
		created = reservation
		return nil
	})
	if err != nil {
		metrics.ReservationFailures.WithLabelValues(failureLabel(err)).Inc()
		return nil, err
	}

	metrics.ReservationsCreated.Inc()
	return created, nil
}

// freshPNR draws PNR candidates until one is unused, bounded by
// codes.MaxAttempts.
func (s *bookingServiceImpl) freshPNR(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codes.MaxAttempts; attempt++ {
		pnr, err := codes.NewPNR()
		if err != nil {
			return "", fmt.Errorf("generate pnr: %w", err)
		}

		exists, err := s.reservations.PNRExists(ctx, pnr)
		if err != nil {
			return "", err
		}
		if !exists {
			return pnr, nil
		}
	}
	return "", domain.ErrCodeExhausted
}

func (s *bookingServiceImpl) GetReservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	return s.reservations.GetReservation(ctx, id)
}

func (s *bookingServiceImpl) ListReservations(ctx context.Context, email string) ([]domain.Reservation, error) {
	return s.reservations.ListByEmail(ctx, email)
}

// EditReservation changes seat, meal, or baggage while the reservation is
// still confirmed. A seat change re-runs the conflict check, ignoring the
// reservation's own current seat.
func (s *bookingServiceImpl) EditReservation(ctx context.Context, id uuid.UUID, in EditReservationInput) (*domain.Reservation, error) {
	var edited *domain.Reservation

	err := s.reservations.WithTx(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservations.GetReservationForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if !reservation.Editable() {
			return domain.ErrInvalidState
		}

		if in.Seat != nil && *in.Seat != reservation.Seat {
			flight, err := s.flights.GetFlightForUpdate(txCtx, reservation.FlightID)
			if err != nil {
				return err
			}
			if !seatmap.ValidSeat(flight.Capacity, *in.Seat) {
				return domain.ErrInvalidSeat
			}

			occupied, err := s.reservations.FindActiveSeatsByFlight(txCtx, reservation.FlightID)
			if err != nil {
				return err
			}
			for _, seat := range occupied {
				if seat == *in.Seat {
					return domain.ErrSeatConflict
				}
			}
			reservation.Seat = *in.Seat
		}
		if in.Meal != nil {
			reservation.Meal = *in.Meal
		}
		if in.Baggage != nil {
			reservation.Baggage = *in.Baggage
		}
		reservation.UpdatedAt = s.clock.Now()

		if err := s.reservations.UpdateReservation(txCtx, reservation); err != nil {
			return err
		}
		edited = reservation
		return nil
	})
	if err != nil {
		metrics.ReservationFailures.WithLabelValues(failureLabel(err)).Inc()
		return nil, err
	}
	return edited, nil
}

// CancelReservation releases the seat. Canceling an already-canceled
// reservation is a no-op success; canceling a checked-in one is an error.
func (s *bookingServiceImpl) CancelReservation(ctx context.Context, id uuid.UUID) error {
	err := s.reservations.WithTx(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservations.GetReservationForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if reservation.Status == domain.StatusCanceled {
			return nil
		}
		if !reservation.Status.CanTransitionTo(domain.StatusCanceled) {
			return domain.ErrInvalidState
		}

		reservation.Status = domain.StatusCanceled
		reservation.UpdatedAt = s.clock.Now()
		return s.reservations.UpdateReservation(txCtx, reservation)
	})
	if err != nil {
		metrics.ReservationFailures.WithLabelValues(failureLabel(err)).Inc()
		return err
	}

	metrics.ReservationsCanceled.Inc()
	return nil
}

// CheckIn moves a confirmed reservation to checked_in and issues the
// boarding pass code. The code never changes once assigned.
func (s *bookingServiceImpl) CheckIn(ctx context.Context, id uuid.UUID) (*BoardingPass, error) {
	var pass *BoardingPass

	err := s.reservations.WithTx(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservations.GetReservationForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if !reservation.Status.CanTransitionTo(domain.StatusCheckedIn) {
			return domain.ErrInvalidState
		}

		flight, err := s.flights.GetFlight(txCtx, reservation.FlightID)
		if err != nil {
			return err
		}

		code, err := codes.NewBoardingPass()
		if err != nil {
			return fmt.Errorf("generate boarding pass: %w", err)
		}

		reservation.Status = domain.StatusCheckedIn
		reservation.BoardingPass = code
		reservation.UpdatedAt = s.clock.Now()
		if err := s.reservations.UpdateReservation(txCtx, reservation); err != nil {
			return err
		}

		pass = &BoardingPass{
			Code:         code,
			PNR:          reservation.PNR,
			FlightNumber: flight.FlightNumber,
			Seat:         reservation.Seat,
		}
		return nil
	})
	if err != nil {
		metrics.ReservationFailures.WithLabelValues(failureLabel(err)).Inc()
		return nil, err
	}

	metrics.CheckIns.Inc()
	return pass, nil
}

func (s *bookingServiceImpl) GetSummary(ctx context.Context, id uuid.UUID) (*Summary, error) {
	reservation, err := s.reservations.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	flight, err := s.flights.GetFlight(ctx, reservation.FlightID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Reservation: reservation,
		Flight:      flight,
		Fare:        fare.Compute(reservation.Baggage, reservation.Meal),
	}, nil
}

func failureLabel(err error) string {
	switch err {
	case nil:
		return "none"
	case domain.ErrSeatConflict:
		return "seat_conflict"
	case domain.ErrCapacityExceeded:
		return "capacity_exceeded"
	case domain.ErrInvalidSeat:
		return "invalid_seat"
	case domain.ErrInvalidState:
		return "invalid_state"
	case domain.ErrCodeExhausted:
		return "code_exhausted"
	case domain.ErrFlightNotFound, domain.ErrReservationNotFound:
		return "not_found"
	default:
		return "internal"
	}
}
