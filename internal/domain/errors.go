package domain

import "errors"

var (
	ErrFlightNotFound      = errors.New("flight not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrSeatConflict        = errors.New("seat already taken")
	ErrCapacityExceeded    = errors.New("flight is at capacity")
	ErrInvalidSeat         = errors.New("seat is not part of the flight's seat map")
	ErrInvalidState        = errors.New("invalid reservation state for this operation")
	ErrCodeExhausted       = errors.New("code generation retries exhausted")
	ErrFlightInUse         = errors.New("flight has active reservations")
	ErrInvalidCapacity     = errors.New("capacity must not be negative")
)
