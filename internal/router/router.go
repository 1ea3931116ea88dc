package router

import (
	"net/http"

	"github.com/aerovia/flightdeck/internal/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter creates and configures the HTTP router.
func SetupRouter(h *handlers.Handler) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Flights
	api.HandleFunc("/flights", h.ListFlights).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights", h.CreateFlight).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flights/{id}", h.GetFlight).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights/{id}", h.UpdateFlight).Methods(http.MethodPut, http.MethodOptions)
	api.HandleFunc("/flights/{id}", h.DeleteFlight).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/flights/{id}/seatmap", h.GetSeatMap).Methods(http.MethodGet, http.MethodOptions)

	// Reservations
	api.HandleFunc("/reservations", h.CreateReservation).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/reservations", h.ListReservations).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/reservations/{id}", h.GetReservation).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/reservations/{id}", h.EditReservation).Methods(http.MethodPatch, http.MethodOptions)
	api.HandleFunc("/reservations/{id}/cancel", h.CancelReservation).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/reservations/{id}/checkin", h.CheckIn).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/reservations/{id}/summary", h.GetSummary).Methods(http.MethodGet, http.MethodOptions)

	// WebSocket for real-time seat updates
	api.HandleFunc("/flights/{id}/ws", h.FlightUpdates)

	// Operational endpoints
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
