package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/rfc-dinner/api/internal/store"
)

// EventOrders is the single event type on the admin feed: the complete
// current order list. Full snapshots are deliberately broadcast instead
// of diffs; order volume is small.
const EventOrders = "orders.snapshot"

// Event is a message sent to connected admin dashboards.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Snapshot produces the current full order list. Satisfied by
// (*store.Store).List.
type Snapshot func() []store.Order

// Hub maintains the set of connected admin dashboards and fans order
// list snapshots out to them. It holds no order state of its own; every
// payload is derived from the store at send time.
type Hub struct {
	snapshot Snapshot

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	// Connected clients, guarded for inspection from tests
	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub creates a new Hub. snapshot is used to serve the initial
// order list to each newly connected dashboard.
func NewHub(snapshot Snapshot) *Hub {
	return &Hub{
		snapshot:   snapshot,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
	}
}

// Run starts the hub's main loop.
// This should be called as a goroutine: go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

			// A fresh dashboard gets the current state immediately
			// instead of waiting for the next mutation.
			if msg, err := marshalOrders(h.snapshot()); err == nil {
				select {
				case client.send <- msg:
				default:
				}
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, close and drop it
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// OrdersChanged broadcasts the given order list to every connected
// dashboard. Called by the order service after each committed mutation.
func (h *Hub) OrdersChanged(orders []store.Order) {
	msg, err := marshalOrders(orders)
	if err != nil {
		log.Printf("ERROR: marshal orders event: %v", err)
		return
	}
	h.broadcast <- msg
}

func marshalOrders(orders []store.Order) ([]byte, error) {
	payload, err := json.Marshal(orders)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Type: EventOrders, Payload: payload})
}
