package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus is the closed set of reservation lifecycle states.
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCanceled  ReservationStatus = "canceled"
	StatusCheckedIn ReservationStatus = "checked_in"
)

// Valid reports whether s is a known status value.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCanceled, StatusCheckedIn:
		return true
	}
	return false
}

// Active reports whether the reservation counts against seat occupancy
// and flight capacity. Canceled reservations release their seat.
func (s ReservationStatus) Active() bool {
	return s == StatusConfirmed || s == StatusCheckedIn
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// The only legal transitions are confirmed -> canceled and
// confirmed -> checked_in; both targets are terminal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	if s != StatusConfirmed {
		return false
	}
	return next == StatusCanceled || next == StatusCheckedIn
}

// BaggageTier is the checked baggage option on a reservation.
type BaggageTier string

const (
	BaggageNone   BaggageTier = "none"
	BaggageSmall  BaggageTier = "small"
	BaggageMedium BaggageTier = "medium"
	BaggageLarge  BaggageTier = "large"
)

func (b BaggageTier) Valid() bool {
	switch b {
	case BaggageNone, BaggageSmall, BaggageMedium, BaggageLarge:
		return true
	}
	return false
}

// MealTier is the in-flight meal option on a reservation.
type MealTier string

const (
	MealStandard   MealTier = "standard"
	MealVegetarian MealTier = "vegetarian"
	MealKosher     MealTier = "kosher"
	MealOther      MealTier = "other"
)

func (m MealTier) Valid() bool {
	switch m {
	case MealStandard, MealVegetarian, MealKosher, MealOther:
		return true
	}
	return false
}

// Reservation is a passenger's booking on a single flight.
//
// PNR is assigned at creation and never changes. BoardingPass is empty
// until check-in and never changes afterwards.
type Reservation struct {
	ID            uuid.UUID         `json:"id"`
	FlightID      uuid.UUID         `json:"flightId"`
	PassengerName string            `json:"passengerName"`
	ContactEmail  string            `json:"contactEmail"`
	PassportNo    string            `json:"passportNo"`
	Seat          string            `json:"seat"`
	Baggage       BaggageTier       `json:"baggage"`
	Meal          MealTier          `json:"meal"`
	Status        ReservationStatus `json:"status"`
	PNR           string            `json:"pnr"`
	BoardingPass  string            `json:"boardingPass,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// Editable reports whether seat/meal/baggage changes are still allowed.
func (r *Reservation) Editable() bool {
	return r.Status == StatusConfirmed
}
