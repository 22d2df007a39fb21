package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/apper-canvas/nimblerailbook/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeAvailabilityChanged MessageType = "availability_changed"
	MessageTypeBookingCreated      MessageType = "booking_created"
	MessageTypeBookingCancelled    MessageType = "booking_cancelled"
)

// Message represents a WebSocket message pushed to clients watching a
// train. Availability payloads are refresh hints for the UI, not a
// live inventory ledger.
type Message struct {
	Type           MessageType              `json:"type"`
	TrainID        string                   `json:"trainId"`
	AvailableSeats map[models.ClassCode]int `json:"availableSeats,omitempty"`
	PNR            string                   `json:"pnr,omitempty"`
	Class          models.ClassCode         `json:"class,omitempty"`
	Message        string                   `json:"message,omitempty"`
	Timestamp      int64                    `json:"timestamp"`
}

// Client represents a WebSocket client connection
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	trainID uuid.UUID
}

// Hub manages WebSocket connections per train
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.trainID] == nil {
				h.clients[client.trainID] = make(map[*Client]bool)
			}
			h.clients[client.trainID][client] = true
			log.Printf("WebSocket: Client registered for train %s (total: %d)", client.trainID, len(h.clients[client.trainID]))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.trainID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					log.Printf("WebSocket: Client unregistered from train %s (remaining: %d)", client.trainID, len(clients))
					if len(clients) == 0 {
						delete(h.clients, client.trainID)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			trainID, err := uuid.Parse(message.TrainID)
			if err != nil {
				log.Printf("WebSocket: Invalid train ID in broadcast: %s", message.TrainID)
				continue
			}

			data, err := json.Marshal(message)
			if err != nil {
				log.Printf("WebSocket: Failed to marshal message: %v", err)
				continue
			}

			h.mu.RLock()
			clients := h.clients[trainID]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.send <- data:
				default:
					h.mu.Lock()
					delete(h.clients[trainID], client)
					close(client.send)
					h.mu.Unlock()
				}
			}
		}
	}
}

// BroadcastAvailability pushes the refreshed class→seats map to every
// client watching a train
func (h *Hub) BroadcastAvailability(trainID string, seats map[models.ClassCode]int) {
	h.broadcast <- &Message{
		Type:           MessageTypeAvailabilityChanged,
		TrainID:        trainID,
		AvailableSeats: seats,
		Timestamp:      time.Now().UnixMilli(),
	}
}

// BroadcastBookingCreated notifies watchers that seats on a train were
// just booked
func (h *Hub) BroadcastBookingCreated(trainID string, pnr string, class models.ClassCode) {
	h.broadcast <- &Message{
		Type:      MessageTypeBookingCreated,
		TrainID:   trainID,
		PNR:       pnr,
		Class:     class,
		Message:   "A booking was confirmed on this train",
		Timestamp: time.Now().UnixMilli(),
	}
}

// BroadcastBookingCancelled notifies watchers that a booking on a
// train was cancelled. Cancellation never returns seats to the
// availability map.
func (h *Hub) BroadcastBookingCancelled(trainID string, pnr string, class models.ClassCode) {
	h.broadcast <- &Message{
		Type:      MessageTypeBookingCancelled,
		TrainID:   trainID,
		PNR:       pnr,
		Class:     class,
		Message:   "A booking on this train was cancelled",
		Timestamp: time.Now().UnixMilli(),
	}
}

// GetClientCount returns the number of clients watching a train
func (h *Hub) GetClientCount(trainID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[trainID])
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades an HTTP request to a WebSocket subscription for one
// train
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, trainID uuid.UUID) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket: Upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, 64),
		trainID: trainID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
