package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rfc-dinner/api/internal/service"
	"github.com/rfc-dinner/api/internal/store"
)

// OrderPlacer defines the service methods needed by customer order
// handlers. Satisfied by *service.OrderService; narrow interface for
// testability.
type OrderPlacer interface {
	PlaceOrder(req service.PlaceOrderRequest) (store.Order, error)
}

// OrderReader defines the store methods needed by the read endpoints.
// Satisfied by *store.Store.
type OrderReader interface {
	Get(id string) (store.Order, error)
}

// OrderHandler handles the customer-facing order endpoints.
type OrderHandler struct {
	svc   OrderPlacer
	store OrderReader
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderPlacer, store OrderReader) *OrderHandler {
	return &OrderHandler{svc: svc, store: store}
}

// RegisterRoutes registers customer order endpoints on the given Chi router.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.Place)
	r.Get("/orders/{id}", h.Get)
	r.Get("/orders/{id}/status", h.Status)
}

// --- Request / Response types ---

type placeOrderRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	DishIDs []int  `json:"dish_ids"`
}

type lineItemResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type orderResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	Address   string             `json:"address"`
	Dishes    []lineItemResponse `json:"dishes"`
	Total     string             `json:"total"`
	Status    string             `json:"status"`
	Paid      bool               `json:"paid"`
	CreatedAt time.Time          `json:"created_at"`
}

type statusResponse struct {
	Status string `json:"status"`
	Paid   bool   `json:"paid"`
}

// --- Handlers ---

// Place handles POST /orders.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	order, err := h.svc.PlaceOrder(service.PlaceOrderRequest{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		DishIDs: req.DishIDs,
	})
	if err != nil {
		if service.IsValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: place order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// Status handles GET /orders/{id}/status, the endpoint customer pages
// poll while waiting for the admin.
func (h *OrderHandler) Status(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status: string(order.Status),
		Paid:   order.Paid,
	})
}

// --- Helpers ---

func toOrderResponse(o store.Order) orderResponse {
	items := make([]lineItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = lineItemResponse{
			ID:    it.DishID,
			Name:  it.Name,
			Price: it.Price.StringFixed(2),
		}
	}
	return orderResponse{
		ID:        o.ID,
		Name:      o.Name,
		Phone:     o.Phone,
		Address:   o.Address,
		Dishes:    items,
		Total:     o.Total.StringFixed(2),
		Status:    string(o.Status),
		Paid:      o.Paid,
		CreatedAt: o.CreatedAt,
	}
}
