package store

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no order exists for the given id.
var ErrNotFound = errors.New("order not found")

// Status is an order's lifecycle state.
type Status string

const (
	StatusPending        Status = "pending"
	StatusPaymentPending Status = "payment_pending"
	StatusDeclined       Status = "declined"
	StatusPaid           Status = "paid"
)

// LineItem is a priced dish snapshot copied from the catalog when the
// order is placed. Later catalog changes never alter placed orders.
type LineItem struct {
	DishID int             `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// Order is a customer's priced selection plus delivery details and
// lifecycle status. Orders are owned by the Store; all access goes
// through lookup by id.
type Order struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	Items     []LineItem      `json:"dishes"`
	Total     decimal.Decimal `json:"total"`
	Status    Status          `json:"status"`
	Paid      bool            `json:"paid"`
	CreatedAt time.Time       `json:"created_at"`
}

// clone returns a deep copy so no caller ever holds a reference into
// store-owned state.
func (o *Order) clone() Order {
	c := *o
	c.Items = make([]LineItem, len(o.Items))
	copy(c.Items, o.Items)
	return c
}

// Store is the authoritative in-memory order collection. A single
// mutex serializes all mutations; reads return deep-copied snapshots.
type Store struct {
	mu     sync.RWMutex
	orders map[string]*Order
	ids    []string
	lastID int64
}

// New creates an empty store.
func New() *Store {
	return &Store{orders: make(map[string]*Order)}
}

// Insert assigns the order a unique monotonic id and adds it to the
// store, returning the stored snapshot. Ids are millisecond timestamps
// bumped past the previous id on collision, so they stay unique even
// for orders created in the same millisecond.
func (s *Store) Insert(o Order) Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	o.ID = formatID(id)
	stored := o.clone()
	s.orders[o.ID] = &stored
	s.ids = append(s.ids, o.ID)
	return stored.clone()
}

// Get returns a snapshot of the order with the given id.
func (s *Store) Get(id string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o.clone(), nil
}

// Update applies mutate to the order with the given id as a single
// atomic read-modify-write. The mutator receives a working copy; the
// copy is committed only if the mutator returns nil, so a failed
// transition leaves the order untouched. At most one mutation applies
// at a time per order.
func (s *Store) Update(id string, mutate func(*Order) error) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}

	working := o.clone()
	if err := mutate(&working); err != nil {
		return Order{}, err
	}
	working.ID = id // the mutator cannot rekey an order
	committed := working.clone()
	s.orders[id] = &committed
	return committed.clone(), nil
}

// List returns snapshots of all orders in insertion order.
func (s *Store) List() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.orders[id].clone())
	}
	return out
}

// Len reports the number of stored orders.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
