package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfc-dinner/api/internal/store"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub) *Client {
	return &Client{
		hub:  hub,
		id:   uuid.New(),
		send: make(chan []byte, 256),
	}
}

func testOrders() []store.Order {
	return []store.Order{
		{
			ID:      "1700000000000",
			Name:    "Asha",
			Phone:   "9999999999",
			Address: "12 Park Street",
			Items: []store.LineItem{
				{DishID: 1, Name: "Biryani", Price: decimal.NewFromInt(180)},
			},
			Total:  decimal.NewFromInt(180),
			Status: store.StatusPending,
		},
	}
}

func receiveEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case msg := <-c.send:
		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		return ev
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestRegisterSendsInitialSnapshot(t *testing.T) {
	hub := NewHub(func() []store.Order { return testOrders() })
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client

	ev := receiveEvent(t, client)
	if ev.Type != EventOrders {
		t.Errorf("type: got %s, want %s", ev.Type, EventOrders)
	}

	var orders []store.Order
	if err := json.Unmarshal(ev.Payload, &orders); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != "1700000000000" {
		t.Errorf("unexpected snapshot payload: %+v", orders)
	}
}

func TestOrdersChangedBroadcastsToAllClients(t *testing.T) {
	hub := NewHub(func() []store.Order { return nil })
	go hub.Run()

	client1 := mockClient(hub)
	client2 := mockClient(hub)
	hub.register <- client1
	hub.register <- client2

	// Drain the initial (empty) snapshots.
	receiveEvent(t, client1)
	receiveEvent(t, client2)

	hub.OrdersChanged(testOrders())

	for i, c := range []*Client{client1, client2} {
		ev := receiveEvent(t, c)
		if ev.Type != EventOrders {
			t.Errorf("client%d: type: got %s, want %s", i+1, ev.Type, EventOrders)
		}
		var orders []store.Order
		if err := json.Unmarshal(ev.Payload, &orders); err != nil {
			t.Fatalf("client%d: unmarshal payload: %v", i+1, err)
		}
		if len(orders) != 1 {
			t.Errorf("client%d: expected 1 order, got %d", i+1, len(orders))
		}
	}
}

func TestUnregisterRemovesClient(t *testing.T) {
	hub := NewHub(func() []store.Order { return nil })
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client
	receiveEvent(t, client)

	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	if hub.clients[client] {
		t.Fatal("client still registered after unregister")
	}

	// The hub closes the send channel on unregister.
	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatal("expected closed send channel")
		}
	default:
		t.Fatal("send channel not closed")
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := NewHub(func() []store.Order { return nil })
	go hub.Run()

	slow := &Client{hub: hub, id: uuid.New(), send: make(chan []byte)} // no buffer, never read
	hub.register <- slow
	time.Sleep(10 * time.Millisecond)

	hub.OrdersChanged(testOrders())
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	if hub.clients[slow] {
		t.Fatal("slow client should have been dropped")
	}
}

func TestBroadcastAfterAllClientsGone(t *testing.T) {
	hub := NewHub(func() []store.Order { return nil })
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client
	receiveEvent(t, client)
	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	// Must not panic or block with nobody connected.
	hub.OrdersChanged(testOrders())
	time.Sleep(10 * time.Millisecond)
}
