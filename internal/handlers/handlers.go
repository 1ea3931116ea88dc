package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aerovia/flightdeck/internal/domain"
	"github.com/aerovia/flightdeck/internal/service"
	"github.com/aerovia/flightdeck/internal/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Handler contains HTTP handlers for the API.
type Handler struct {
	booking service.BookingService
	hub     *websocket.Hub
}

// NewHandler creates a new Handler instance. hub may be nil when no
// live seat updates are wanted (tests).
func NewHandler(booking service.BookingService, hub *websocket.Hub) *Handler {
	return &Handler{
		booking: booking,
		hub:     hub,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps domain failures onto HTTP status codes.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrReservationNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSeatConflict),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrFlightInUse):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidSeat),
		errors.Is(err, domain.ErrInvalidCapacity):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	return id, err == nil
}

// --- Flights ---

// ListFlights handles GET /api/flights. With origin, destination, and
// date query parameters it performs a search; otherwise it lists all
// flights.
func (h *Handler) ListFlights(w http.ResponseWriter, r *http.Request) {
	origin := r.URL.Query().Get("origin")
	destination := r.URL.Query().Get("destination")
	date := r.URL.Query().Get("date")

	if origin == "" && destination == "" && date == "" {
		flights, err := h.booking.ListFlights(r.Context())
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, flights)
		return
	}

	if origin == "" || destination == "" || date == "" {
		respondError(w, http.StatusBadRequest, "origin, destination, and date are all required for a search")
		return
	}

	travelDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	flights, err := h.booking.SearchFlights(r.Context(), origin, destination, travelDate.Weekday().String())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, flights)
}

// GetFlight handles GET /api/flights/{id}.
func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid flight id")
		return
	}

	flight, err := h.booking.GetFlight(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, flight)
}

// FlightRequest is the admin payload for creating or updating a flight.
type FlightRequest struct {
	FlightNumber string   `json:"flightNumber"`
	Origin       string   `json:"origin"`
	Destination  string   `json:"destination"`
	DaysOfWeek   []string `json:"daysOfWeek"`
	Departure    string   `json:"departure"`
	Arrival      string   `json:"arrival"`
	Aircraft     string   `json:"aircraft"`
	Capacity     int      `json:"capacity"`
	BasePrice    int      `json:"basePrice"`
}

func (req *FlightRequest) validate() string {
	switch {
	case req.FlightNumber == "":
		return "flight number is required"
	case req.Origin == "":
		return "origin is required"
	case req.Destination == "":
		return "destination is required"
	case len(req.DaysOfWeek) == 0:
		return "at least one day of week is required"
	case req.Capacity <= 0:
		return "capacity must be positive"
	}
	return ""
}

func (req *FlightRequest) toInput() service.CreateFlightInput {
	return service.CreateFlightInput{
		FlightNumber: req.FlightNumber,
		Origin:       req.Origin,
		Destination:  req.Destination,
		DaysOfWeek:   req.DaysOfWeek,
		Departure:    req.Departure,
		Arrival:      req.Arrival,
		Aircraft:     req.Aircraft,
		Capacity:     req.Capacity,
		BasePrice:    req.BasePrice,
	}
}

// CreateFlight handles POST /api/flights.
func (h *Handler) CreateFlight(w http.ResponseWriter, r *http.Request) {
	var req FlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	flight, err := h.booking.CreateFlight(r.Context(), req.toInput())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, flight)
}

// UpdateFlight handles PUT /api/flights/{id}.
func (h *Handler) UpdateFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid flight id")
		return
	}

	var req FlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	flight, err := h.booking.UpdateFlight(r.Context(), id, req.toInput())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, flight)
}

// DeleteFlight handles DELETE /api/flights/{id}.
func (h *Handler) DeleteFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid flight id")
		return
	}

	if err := h.booking.DeleteFlight(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "flight deleted"})
}

// GetSeatMap handles GET /api/flights/{id}/seatmap.
func (h *Handler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid flight id")
		return
	}

	rows, err := h.booking.GetSeatMap(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"rows": rows})
}

// FlightUpdates handles GET /api/flights/{id}/ws.
func (h *Handler) FlightUpdates(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid flight id")
		return
	}
	if h.hub == nil {
		respondError(w, http.StatusNotFound, "live updates not enabled")
		return
	}

	if _, err := h.booking.GetFlight(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}
	h.hub.Serve(w, r, id)
}

// --- Reservations ---

// CreateReservationRequest is the booking payload.
type CreateReservationRequest struct {
	FlightID      string `json:"flightId"`
	Seat          string `json:"seat"`
	PassengerName string `json:"passengerName"`
	ContactEmail  string `json:"contactEmail"`
	PassportNo    string `json:"passportNo"`
	Meal          string `json:"meal"`
	Baggage       string `json:"baggage"`
}

// CreateReservation handles POST /api/reservations.
func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	flightID, err := uuid.Parse(req.FlightID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid flight id")
		return
	}
	if req.Seat == "" {
		respondError(w, http.StatusBadRequest, "seat is required")
		return
	}
	if req.PassengerName == "" {
		respondError(w, http.StatusBadRequest, "passenger name is required")
		return
	}
	if req.ContactEmail == "" {
		respondError(w, http.StatusBadRequest, "contact email is required")
		return
	}
	if req.PassportNo == "" {
		respondError(w, http.StatusBadRequest, "passport number is required")
		return
	}

	meal := domain.MealTier(req.Meal)
	if req.Meal == "" {
		meal = domain.MealStandard
	}
	if !meal.Valid() {
		respondError(w, http.StatusBadRequest, "unknown meal option")
		return
	}

	baggage := domain.BaggageTier(req.Baggage)
	if req.Baggage == "" {
		baggage = domain.BaggageNone
	}
	if !baggage.Valid() {
		respondError(w, http.StatusBadRequest, "unknown baggage option")
		return
	}

	reservation, err := h.booking.CreateReservation(r.Context(), service.CreateReservationInput{
		FlightID:      flightID,
		Seat:          req.Seat,
		PassengerName: req.PassengerName,
		ContactEmail:  req.ContactEmail,
		PassportNo:    req.PassportNo,
		Meal:          meal,
		Baggage:       baggage,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if h.hub != nil {
		h.hub.SeatTaken(reservation.FlightID.String(), reservation.Seat)
	}
	respondJSON(w, http.StatusCreated, reservation)
}

// ListReservations handles GET /api/reservations?email=...
func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	reservations, err := h.booking.ListReservations(r.Context(), email)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reservations)
}

// GetReservation handles GET /api/reservations/{id}.
func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	reservation, err := h.booking.GetReservation(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reservation)
}

// EditReservationRequest is the change payload; absent fields are left
// untouched.
type EditReservationRequest struct {
	Seat    *string `json:"seat,omitempty"`
	Meal    *string `json:"meal,omitempty"`
	Baggage *string `json:"baggage,omitempty"`
}

// EditReservation handles PATCH /api/reservations/{id}.
func (h *Handler) EditReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	var req EditReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Seat == nil && req.Meal == nil && req.Baggage == nil {
		respondError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	input := service.EditReservationInput{Seat: req.Seat}
	if req.Meal != nil {
		meal := domain.MealTier(*req.Meal)
		if !meal.Valid() {
			respondError(w, http.StatusBadRequest, "unknown meal option")
			return
		}
		input.Meal = &meal
	}
	if req.Baggage != nil {
		baggage := domain.BaggageTier(*req.Baggage)
		if !baggage.Valid() {
			respondError(w, http.StatusBadRequest, "unknown baggage option")
			return
		}
		input.Baggage = &baggage
	}

	var prevSeat string
	if h.hub != nil && req.Seat != nil {
		if current, err := h.booking.GetReservation(r.Context(), id); err == nil {
			prevSeat = current.Seat
		}
	}

	reservation, err := h.booking.EditReservation(r.Context(), id, input)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if h.hub != nil && prevSeat != "" && prevSeat != reservation.Seat {
		h.hub.SeatMoved(reservation.FlightID.String(), prevSeat, reservation.Seat)
	}
	respondJSON(w, http.StatusOK, reservation)
}

// CancelReservation handles POST /api/reservations/{id}/cancel.
func (h *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	var prev *domain.Reservation
	if h.hub != nil {
		prev, _ = h.booking.GetReservation(r.Context(), id)
	}

	if err := h.booking.CancelReservation(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}

	if h.hub != nil && prev != nil && prev.Status.Active() {
		h.hub.SeatReleased(prev.FlightID.String(), prev.Seat)
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "reservation canceled"})
}

// CheckIn handles POST /api/reservations/{id}/checkin.
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	pass, err := h.booking.CheckIn(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pass)
}

// GetSummary handles GET /api/reservations/{id}/summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	summary, err := h.booking.GetSummary(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
