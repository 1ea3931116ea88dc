// Package websocket streams per-flight seat status changes to browsers
// holding a booking form open, so a seat taken by another passenger is
// greyed out before the form is submitted.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// MessageType represents the type of WebSocket message.
type MessageType string

const (
	MessageTypeSeatTaken    MessageType = "seat_taken"
	MessageTypeSeatReleased MessageType = "seat_released"
	MessageTypeSeatMoved    MessageType = "seat_moved"
)

// Message represents a seat status change on a flight.
type Message struct {
	Type      MessageType `json:"type"`
	FlightID  string      `json:"flightId"`
	Seat      string      `json:"seat,omitempty"`
	PrevSeat  string      `json:"prevSeat,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// Client represents a WebSocket client connection watching one flight.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	flightID uuid.UUID
}

// Hub manages WebSocket connections per flight.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	mu         sync.RWMutex
}

// NewHub creates a new Hub. Call Run in a goroutine to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.flightID] == nil {
				h.clients[client.flightID] = make(map[*Client]bool)
			}
			h.clients[client.flightID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.flightID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.flightID)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			flightID, err := uuid.Parse(message.FlightID)
			if err != nil {
				slog.Warn("websocket: invalid flight id in broadcast", "flightId", message.FlightID)
				continue
			}

			data, err := json.Marshal(message)
			if err != nil {
				slog.Error("websocket: marshal message", "error", err)
				continue
			}

			h.mu.RLock()
			clients := h.clients[flightID]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.send <- data:
				default:
					h.mu.Lock()
					delete(h.clients[flightID], client)
					close(client.send)
					h.mu.Unlock()
				}
			}
		}
	}
}

// SeatTaken announces that a seat is now held by an active reservation.
func (h *Hub) SeatTaken(flightID, seat string) {
	h.broadcast <- &Message{
		Type:      MessageTypeSeatTaken,
		FlightID:  flightID,
		Seat:      seat,
		Timestamp: time.Now().UnixMilli(),
	}
}

// SeatReleased announces that a cancellation freed a seat.
func (h *Hub) SeatReleased(flightID, seat string) {
	h.broadcast <- &Message{
		Type:      MessageTypeSeatReleased,
		FlightID:  flightID,
		Seat:      seat,
		Timestamp: time.Now().UnixMilli(),
	}
}

// SeatMoved announces that an edit moved a reservation between seats.
func (h *Hub) SeatMoved(flightID, prevSeat, newSeat string) {
	h.broadcast <- &Message{
		Type:      MessageTypeSeatMoved,
		FlightID:  flightID,
		Seat:      newSeat,
		PrevSeat:  prevSeat,
		Timestamp: time.Now().UnixMilli(),
	}
}

// ClientCount returns the number of clients watching a flight.
func (h *Hub) ClientCount(flightID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[flightID])
}
