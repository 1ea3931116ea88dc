// Package metrics exposes Prometheus counters for booking outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReservationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightdeck_reservations_created_total",
		Help: "Number of reservations successfully created.",
	})

	ReservationsCanceled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightdeck_reservations_canceled_total",
		Help: "Number of reservations canceled.",
	})

	CheckIns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightdeck_checkins_total",
		Help: "Number of successful check-ins.",
	})

	ReservationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flightdeck_reservation_failures_total",
		Help: "Failed reservation operations by reason.",
	}, []string{"reason"})
)
