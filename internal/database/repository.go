package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/aerovia/flightdeck/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Constraint names from the migrations; unique violations on these are
// translated into domain errors.
const (
	constraintActiveSeat = "reservations_active_seat_key"
	constraintPNR        = "reservations_pnr_key"
)

// Repository handles all database operations. It implements both
// service.FlightStore and service.ReservationStore.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// q returns the transaction bound to ctx when there is one, otherwise the
// pool itself.
func (r *Repository) q(ctx context.Context) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// WithTx runs fn inside a single transaction. Nested calls reuse the
// transaction already bound to the context.
func (r *Repository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// --- Flight operations ---

const flightColumns = `id, flight_number, origin, destination, days_of_week,
       departure, arrival, aircraft, capacity, base_price, created_at, updated_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	err := row.Scan(
		&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DaysOfWeek,
		&f.Departure, &f.Arrival, &f.Aircraft, &f.Capacity, &f.BasePrice,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, fmt.Errorf("scan flight: %w", err)
	}
	return &f, nil
}

// GetFlight returns a flight by ID.
func (r *Repository) GetFlight(ctx context.Context, id uuid.UUID) (*domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE id = $1`
	return scanFlight(r.q(ctx).QueryRow(ctx, query, id))
}

// GetFlightForUpdate returns a flight and locks its row until the
// surrounding transaction ends. Concurrent reservation writes for the
// same flight serialize on this lock.
func (r *Repository) GetFlightForUpdate(ctx context.Context, id uuid.UUID) (*domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE id = $1 FOR UPDATE`
	return scanFlight(r.q(ctx).QueryRow(ctx, query, id))
}

// ListFlights returns all flights ordered by flight number.
func (r *Repository) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights ORDER BY flight_number`
	return r.queryFlights(ctx, query)
}

// SearchFlights returns flights matching origin, destination, and a day
// of the week ("Monday" .. "Sunday").
func (r *Repository) SearchFlights(ctx context.Context, origin, destination, day string) ([]domain.Flight, error) {
	query := `
		SELECT ` + flightColumns + `
		FROM flights
		WHERE origin = $1 AND destination = $2 AND $3 = ANY(days_of_week)
		ORDER BY departure
	`
	return r.queryFlights(ctx, query, origin, destination, day)
}

func (r *Repository) queryFlights(ctx context.Context, query string, args ...any) ([]domain.Flight, error) {
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query flights: %w", err)
	}
	defer rows.Close()

	var flights []domain.Flight
	for rows.Next() {
		var f domain.Flight
		err := rows.Scan(
			&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DaysOfWeek,
			&f.Departure, &f.Arrival, &f.Aircraft, &f.Capacity, &f.BasePrice,
			&f.CreatedAt, &f.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// CreateFlight inserts a flight record.
func (r *Repository) CreateFlight(ctx context.Context, f *domain.Flight) error {
	stmt := `
		INSERT INTO flights (id, flight_number, origin, destination, days_of_week,
		                     departure, arrival, aircraft, capacity, base_price,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.q(ctx).Exec(ctx, stmt,
		f.ID, f.FlightNumber, f.Origin, f.Destination, f.DaysOfWeek,
		f.Departure, f.Arrival, f.Aircraft, f.Capacity, f.BasePrice,
		f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create flight: %w", err)
	}
	return nil
}

// UpdateFlight replaces all mutable columns of a flight.
func (r *Repository) UpdateFlight(ctx context.Context, f *domain.Flight) error {
	stmt := `
		UPDATE flights
		SET flight_number = $2, origin = $3, destination = $4, days_of_week = $5,
		    departure = $6, arrival = $7, aircraft = $8, capacity = $9,
		    base_price = $10, updated_at = $11
		WHERE id = $1
	`
	tag, err := r.q(ctx).Exec(ctx, stmt,
		f.ID, f.FlightNumber, f.Origin, f.Destination, f.DaysOfWeek,
		f.Departure, f.Arrival, f.Aircraft, f.Capacity, f.BasePrice, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update flight: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

// DeleteFlight removes a flight record.
func (r *Repository) DeleteFlight(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete flight: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

// --- Reservation operations ---

const reservationColumns = `id, flight_id, passenger_name, contact_email, passport_no,
       seat, baggage, meal, status, pnr, boarding_pass, created_at, updated_at`

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	err := row.Scan(
		&res.ID, &res.FlightID, &res.PassengerName, &res.ContactEmail, &res.PassportNo,
		&res.Seat, &res.Baggage, &res.Meal, &res.Status, &res.PNR, &res.BoardingPass,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("scan reservation: %w", err)
	}
	return &res, nil
}

// GetReservation returns a reservation by ID.
func (r *Repository) GetReservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	return scanReservation(r.q(ctx).QueryRow(ctx, query, id))
}

// GetReservationForUpdate returns a reservation and locks its row until
// the surrounding transaction ends.
func (r *Repository) GetReservationForUpdate(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`
	return scanReservation(r.q(ctx).QueryRow(ctx, query, id))
}

// CreateReservation inserts a reservation. The partial unique index on
// (flight_id, seat) over active statuses rejects double-booking even if
// two transactions slip past the advisory checks.
func (r *Repository) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	stmt := `
		INSERT INTO reservations (id, flight_id, passenger_name, contact_email, passport_no,
		                          seat, baggage, meal, status, pnr, boarding_pass,
		                          created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.q(ctx).Exec(ctx, stmt,
		res.ID, res.FlightID, res.PassengerName, res.ContactEmail, res.PassportNo,
		res.Seat, res.Baggage, res.Meal, res.Status, res.PNR, res.BoardingPass,
		res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			switch constraint {
			case constraintActiveSeat:
				return domain.ErrSeatConflict
			case constraintPNR:
				return domain.ErrCodeExhausted
			}
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// UpdateReservation replaces the mutable columns of a reservation.
func (r *Repository) UpdateReservation(ctx context.Context, res *domain.Reservation) error {
	stmt := `
		UPDATE reservations
		SET seat = $2, baggage = $3, meal = $4, status = $5, boarding_pass = $6, updated_at = $7
		WHERE id = $1
	`
	tag, err := r.q(ctx).Exec(ctx, stmt,
		res.ID, res.Seat, res.Baggage, res.Meal, res.Status, res.BoardingPass, res.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == constraintActiveSeat {
			return domain.ErrSeatConflict
		}
		return fmt.Errorf("update reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

// CountActiveByFlight counts confirmed and checked-in reservations for a
// flight.
func (r *Repository) CountActiveByFlight(ctx context.Context, flightID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*) FROM reservations
		WHERE flight_id = $1 AND status IN ('confirmed', 'checked_in')
	`
	var count int
	if err := r.q(ctx).QueryRow(ctx, query, flightID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active reservations: %w", err)
	}
	return count, nil
}

// FindActiveSeatsByFlight returns the seat ids held by confirmed and
// checked-in reservations for a flight.
func (r *Repository) FindActiveSeatsByFlight(ctx context.Context, flightID uuid.UUID) ([]string, error) {
	query := `
		SELECT seat FROM reservations
		WHERE flight_id = $1 AND status IN ('confirmed', 'checked_in')
		ORDER BY seat
	`
	rows, err := r.q(ctx).Query(ctx, query, flightID)
	if err != nil {
		return nil, fmt.Errorf("query active seats: %w", err)
	}
	defer rows.Close()

	var seats []string
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		seats = append(seats, seat)
	}
	return seats, rows.Err()
}

// ListByEmail returns all reservations booked under a contact email,
// newest first.
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE contact_email = $1 ORDER BY created_at DESC`
	rows, err := r.q(ctx).Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("query reservations by email: %w", err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		err := rows.Scan(
			&res.ID, &res.FlightID, &res.PassengerName, &res.ContactEmail, &res.PassportNo,
			&res.Seat, &res.Baggage, &res.Meal, &res.Status, &res.PNR, &res.BoardingPass,
			&res.CreatedAt, &res.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

// PNRExists reports whether any reservation already carries the code.
// PNR uniqueness is global, not per flight.
func (r *Repository) PNRExists(ctx context.Context, pnr string) (bool, error) {
	var exists bool
	err := r.q(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reservations WHERE pnr = $1)`, pnr,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check pnr: %w", err)
	}
	return exists, nil
}
