package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{StatusConfirmed, StatusCanceled, true},
		{StatusConfirmed, StatusCheckedIn, true},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCanceled, StatusConfirmed, false},
		{StatusCanceled, StatusCheckedIn, false},
		{StatusCanceled, StatusCanceled, false},
		{StatusCheckedIn, StatusConfirmed, false},
		{StatusCheckedIn, StatusCanceled, false},
		{StatusCheckedIn, StatusCheckedIn, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestReservationStatus_Active(t *testing.T) {
	assert.True(t, StatusConfirmed.Active())
	assert.True(t, StatusCheckedIn.Active())
	assert.False(t, StatusCanceled.Active())
}

func TestReservation_Editable(t *testing.T) {
	r := Reservation{Status: StatusConfirmed}
	assert.True(t, r.Editable())

	r.Status = StatusCanceled
	assert.False(t, r.Editable())

	r.Status = StatusCheckedIn
	assert.False(t, r.Editable())
}

func TestTierValidation(t *testing.T) {
	assert.True(t, BaggageNone.Valid())
	assert.True(t, BaggageLarge.Valid())
	assert.False(t, BaggageTier("huge").Valid())

	assert.True(t, MealStandard.Valid())
	assert.True(t, MealKosher.Valid())
	assert.False(t, MealTier("spicy").Valid())
}

func TestFlight_OperatesOn(t *testing.T) {
	f := Flight{DaysOfWeek: []string{"Monday", "Friday"}}
	assert.True(t, f.OperatesOn("Monday"))
	assert.False(t, f.OperatesOn("Tuesday"))
}
