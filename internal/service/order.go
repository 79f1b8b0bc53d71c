package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rfc-dinner/api/internal/catalog"
	"github.com/rfc-dinner/api/internal/store"
)

// Errors returned by the order service.
var (
	ErrNameRequired      = errors.New("name is required")
	ErrPhoneRequired     = errors.New("phone is required")
	ErrAddressRequired   = errors.New("address is required")
	ErrNoDishesSelected  = errors.New("no dishes selected")
	ErrInvalidDecision   = errors.New("decision must be accept or decline")
	ErrInvalidTransition = errors.New("order status does not permit this action")
)

// IsValidationError reports whether err is a placement validation
// failure that should surface as a rejected submission.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrPhoneRequired) ||
		errors.Is(err, ErrAddressRequired) ||
		errors.Is(err, ErrNoDishesSelected)
}

// Decision is an admin's verdict on a pending order.
type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

// allowedTransitions defines valid status transitions. Key is current
// status, value is the set of statuses it can transition to. declined
// and paid are terminal.
var allowedTransitions = map[store.Status][]store.Status{
	store.StatusPending:        {store.StatusPaymentPending, store.StatusDeclined},
	store.StatusPaymentPending: {store.StatusPaid, store.StatusDeclined},
}

func canTransition(current, next store.Status) bool {
	for _, s := range allowedTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Notifier receives the full order list after every committed mutation.
// Satisfied by *ws.Hub; narrow interface for testability.
type Notifier interface {
	OrdersChanged(orders []store.Order)
}

// OrderStore defines the store methods the lifecycle engine needs.
// Satisfied by *store.Store.
type OrderStore interface {
	Insert(o store.Order) store.Order
	Get(id string) (store.Order, error)
	Update(id string, mutate func(*store.Order) error) (store.Order, error)
	List() []store.Order
}

// PlaceOrderRequest is the input for creating an order.
type PlaceOrderRequest struct {
	Name    string
	Phone   string
	Address string
	DishIDs []int
}

// OrderService validates and applies order lifecycle transitions.
type OrderService struct {
	menu     *catalog.Catalog
	store    OrderStore
	notifier Notifier
}

// NewOrderService creates a new OrderService. notifier may be nil.
func NewOrderService(menu *catalog.Catalog, st OrderStore, notifier Notifier) *OrderService {
	return &OrderService{menu: menu, store: st, notifier: notifier}
}

// PlaceOrder validates the submission, snapshots the selected dishes
// from the catalog, and inserts a new pending order. Unknown dish ids
// are dropped, not rejected; placement fails only when nothing on the
// menu matches the selection.
func (s *OrderService) PlaceOrder(req PlaceOrderRequest) (store.Order, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	address := strings.TrimSpace(req.Address)

	if name == "" {
		return store.Order{}, ErrNameRequired
	}
	if phone == "" {
		return store.Order{}, ErrPhoneRequired
	}
	if address == "" {
		return store.Order{}, ErrAddressRequired
	}

	selected := make(map[int]bool, len(req.DishIDs))
	for _, id := range req.DishIDs {
		selected[id] = true
	}

	// Walk the menu in catalog order so line items always render in a
	// stable order regardless of how the selection arrived.
	var items []store.LineItem
	total := decimal.Zero
	for _, d := range s.menu.List() {
		if !selected[d.ID] {
			continue
		}
		items = append(items, store.LineItem{DishID: d.ID, Name: d.Name, Price: d.Price})
		total = total.Add(d.Price)
	}
	if len(items) == 0 {
		return store.Order{}, ErrNoDishesSelected
	}

	order := s.store.Insert(store.Order{
		Name:      name,
		Phone:     phone,
		Address:   address,
		Items:     items,
		Total:     total,
		Status:    store.StatusPending,
		Paid:      false,
		CreatedAt: time.Now().UTC(),
	})

	s.notifyChanged()
	return order, nil
}

// Decide applies an admin accept/decline verdict. accept is valid only
// from pending; decline is valid from pending or payment_pending. Any
// other source state fails with ErrInvalidTransition and the order is
// left unchanged.
func (s *OrderService) Decide(orderID string, decision Decision) (store.Order, error) {
	var target store.Status
	switch decision {
	case DecisionAccept:
		target = store.StatusPaymentPending
	case DecisionDecline:
		target = store.StatusDeclined
	default:
		return store.Order{}, fmt.Errorf("%w: %q", ErrInvalidDecision, decision)
	}

	order, err := s.store.Update(orderID, func(o *store.Order) error {
		if !canTransition(o.Status, target) {
			return fmt.Errorf("%w: cannot %s order in status %s", ErrInvalidTransition, decision, o.Status)
		}
		o.Status = target
		return nil
	})
	if err != nil {
		return store.Order{}, err
	}

	s.notifyChanged()
	return order, nil
}

// MarkPaid records the admin's out-of-band payment confirmation.
// Valid only from payment_pending.
func (s *OrderService) MarkPaid(orderID string) (store.Order, error) {
	order, err := s.store.Update(orderID, func(o *store.Order) error {
		if !canTransition(o.Status, store.StatusPaid) {
			return fmt.Errorf("%w: cannot mark order in status %s as paid", ErrInvalidTransition, o.Status)
		}
		o.Status = store.StatusPaid
		o.Paid = true
		return nil
	})
	if err != nil {
		return store.Order{}, err
	}

	s.notifyChanged()
	return order, nil
}

func (s *OrderService) notifyChanged() {
	if s.notifier != nil {
		s.notifier.OrdersChanged(s.store.List())
	}
}
