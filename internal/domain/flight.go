package domain

import (
	"time"

	"github.com/google/uuid"
)

// Flight is a scheduled route operating on a weekly pattern. Departure
// and arrival are time-of-day strings in 24-hour "HH:MM" form, as entered
// by flight administrators.
type Flight struct {
	ID           uuid.UUID `json:"id"`
	FlightNumber string    `json:"flightNumber"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	DaysOfWeek   []string  `json:"daysOfWeek"`
	Departure    string    `json:"departure"`
	Arrival      string    `json:"arrival"`
	Aircraft     string    `json:"aircraft"`
	Capacity     int       `json:"capacity"`
	BasePrice    int       `json:"basePrice"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// OperatesOn reports whether the flight runs on the given weekday,
// e.g. "Monday".
func (f *Flight) OperatesOn(day string) bool {
	for _, d := range f.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}
