package service

import (
	"context"
	"sync"

	"github.com/aerovia/flightdeck/internal/domain"
	"github.com/google/uuid"
)

// fakeStore is an in-memory FlightStore and ReservationStore. WithTx
// takes a single mutex for the whole callback, standing in for the
// row locks the real repository acquires; that makes check-then-insert
// sequences atomic, same as in production.
type fakeStore struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	flights      map[uuid.UUID]domain.Flight
	reservations map[uuid.UUID]domain.Reservation

	// pnrAlwaysTaken makes every PNR candidate collide, to exercise the
	// bounded retry.
	pnrAlwaysTaken bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		flights:      make(map[uuid.UUID]domain.Flight),
		reservations: make(map[uuid.UUID]domain.Reservation),
	}
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()
	return fn(ctx)
}

// --- FlightStore ---

func (f *fakeStore) GetFlight(ctx context.Context, id uuid.UUID) (*domain.Flight, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	flight, ok := f.flights[id]
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	return &flight, nil
}

func (f *fakeStore) GetFlightForUpdate(ctx context.Context, id uuid.UUID) (*domain.Flight, error) {
	return f.GetFlight(ctx, id)
}

func (f *fakeStore) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []domain.Flight
	for _, flight := range f.flights {
		out = append(out, flight)
	}
	return out, nil
}

func (f *fakeStore) SearchFlights(ctx context.Context, origin, destination, day string) ([]domain.Flight, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []domain.Flight
	for _, flight := range f.flights {
		if flight.Origin == origin && flight.Destination == destination && flight.OperatesOn(day) {
			out = append(out, flight)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateFlight(ctx context.Context, flight *domain.Flight) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flights[flight.ID] = *flight
	return nil
}

func (f *fakeStore) UpdateFlight(ctx context.Context, flight *domain.Flight) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.flights[flight.ID]; !ok {
		return domain.ErrFlightNotFound
	}
	f.flights[flight.ID] = *flight
	return nil
}

func (f *fakeStore) DeleteFlight(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.flights[id]; !ok {
		return domain.ErrFlightNotFound
	}
	delete(f.flights, id)
	return nil
}

// --- ReservationStore ---

func (f *fakeStore) GetReservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	res, ok := f.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	return &res, nil
}

func (f *fakeStore) GetReservationForUpdate(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	return f.GetReservation(ctx, id)
}

func (f *fakeStore) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.reservations {
		if existing.FlightID == res.FlightID && existing.Seat == res.Seat && existing.Status.Active() {
			return domain.ErrSeatConflict
		}
		if existing.PNR == res.PNR {
			return domain.ErrCodeExhausted
		}
	}
	f.reservations[res.ID] = *res
	return nil
}

func (f *fakeStore) UpdateReservation(ctx context.Context, res *domain.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reservations[res.ID]; !ok {
		return domain.ErrReservationNotFound
	}
	if res.Status.Active() {
		for id, existing := range f.reservations {
			if id != res.ID && existing.FlightID == res.FlightID && existing.Seat == res.Seat && existing.Status.Active() {
				return domain.ErrSeatConflict
			}
		}
	}
	f.reservations[res.ID] = *res
	return nil
}

func (f *fakeStore) CountActiveByFlight(ctx context.Context, flightID uuid.UUID) (int, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	count := 0
	for _, res := range f.reservations {
		if res.FlightID == flightID && res.Status.Active() {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) FindActiveSeatsByFlight(ctx context.Context, flightID uuid.UUID) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var seats []string
	for _, res := range f.reservations {
		if res.FlightID == flightID && res.Status.Active() {
			seats = append(seats, res.Seat)
		}
	}
	return seats, nil
}

func (f *fakeStore) ListByEmail(ctx context.Context, email string) ([]domain.Reservation, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []domain.Reservation
	for _, res := range f.reservations {
		if res.ContactEmail == email {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeStore) PNRExists(ctx context.Context, pnr string) (bool, error) {
	if f.pnrAlwaysTaken {
		return true, nil
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, res := range f.reservations {
		if res.PNR == pnr {
			return true, nil
		}
	}
	return false, nil
}
