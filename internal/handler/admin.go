package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rfc-dinner/api/internal/service"
	"github.com/rfc-dinner/api/internal/store"
)

// OrderDecider defines the service methods needed by admin handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderDecider interface {
	Decide(orderID string, decision service.Decision) (store.Order, error)
	MarkPaid(orderID string) (store.Order, error)
}

// OrderLister defines the store method backing the admin list endpoint.
// Satisfied by *store.Store.
type OrderLister interface {
	List() []store.Order
}

// AdminHandler handles admin order actions. All routes are mounted
// behind the authentication middleware.
type AdminHandler struct {
	svc   OrderDecider
	store OrderLister
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc OrderDecider, store OrderLister) *AdminHandler {
	return &AdminHandler{svc: svc, store: store}
}

// RegisterRoutes registers admin endpoints on the given Chi router.
// Expected to be mounted inside the authenticated subrouter: /admin
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/orders", h.List)
	r.Post("/orders/{id}/decision", h.Decide)
	r.Post("/orders/{id}/paid", h.MarkPaid)
}

type decisionRequest struct {
	Decision string `json:"decision"`
}

// List handles GET /admin/orders, a point-in-time snapshot for
// dashboards that prefer polling over the websocket feed.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	orders := h.store.List()
	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Decide handles POST /admin/orders/{id}/decision.
func (h *AdminHandler) Decide(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	order, err := h.svc.Decide(chi.URLParam(r, "id"), service.Decision(req.Decision))
	if err != nil {
		h.writeActionError(w, err, "decide order")
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// MarkPaid handles POST /admin/orders/{id}/paid, recording that the
// admin saw the payment arrive in their UPI app.
func (h *AdminHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.MarkPaid(chi.URLParam(r, "id"))
	if err != nil {
		h.writeActionError(w, err, "mark order paid")
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// writeActionError maps lifecycle errors to HTTP statuses: unknown id
// is 404, a disallowed transition is 409 with the state left untouched,
// a malformed decision is 400.
func (h *AdminHandler) writeActionError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
	case errors.Is(err, service.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidDecision):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: %s: %v", action, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
