package handler

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/rfc-dinner/api/internal/store"
)

// PaymentHandler serves the payment details a customer needs once the
// admin has accepted their order: the UPI deep link and a QR image URL.
// Payment confirmation itself is out of band; the admin verifies the
// transfer and marks the order paid.
type PaymentHandler struct {
	store     OrderReader
	payeeID   string
	payeeName string
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(store OrderReader, payeeID, payeeName string) *PaymentHandler {
	return &PaymentHandler{store: store, payeeID: payeeID, payeeName: payeeName}
}

// RegisterRoutes registers payment endpoints on the given Chi router.
func (h *PaymentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/orders/{id}/payment", h.Get)
}

type paymentResponse struct {
	OrderID string `json:"order_id"`
	Amount  string `json:"amount"`
	UPILink string `json:"upi_link"`
	QRURL   string `json:"qr_url"`
	Status  string `json:"status"`
	Paid    bool   `json:"paid"`
}

// Get handles GET /orders/{id}/payment. Payment details exist only once
// the order has been accepted; earlier or declined orders get a
// conflict so the customer page can explain instead of showing a QR.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order for payment: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	switch order.Status {
	case store.StatusPending:
		writeJSON(w, http.StatusConflict, map[string]string{"error": "order has not been accepted yet"})
		return
	case store.StatusDeclined:
		writeJSON(w, http.StatusConflict, map[string]string{"error": "order was declined"})
		return
	}

	link := h.upiLink(order)
	writeJSON(w, http.StatusOK, paymentResponse{
		OrderID: order.ID,
		Amount:  order.Total.StringFixed(2),
		UPILink: link,
		QRURL:   qrURL(link),
		Status:  string(order.Status),
		Paid:    order.Paid,
	})
}

// upiLink builds the upi://pay deep link the customer scans.
func (h *PaymentHandler) upiLink(o store.Order) string {
	params := url.Values{}
	params.Set("pa", h.payeeID)
	params.Set("pn", h.payeeName)
	params.Set("am", o.Total.StringFixed(2))
	params.Set("cu", "INR")
	params.Set("tn", "Order"+o.ID)
	return "upi://pay?" + params.Encode()
}

func qrURL(link string) string {
	return "https://api.qrserver.com/v1/create-qr-code/?data=" + url.QueryEscape(link) + "&size=300x300"
}
