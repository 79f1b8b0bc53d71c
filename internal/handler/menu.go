package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rfc-dinner/api/internal/catalog"
)

// MenuHandler serves the fixed dish catalog.
type MenuHandler struct {
	menu *catalog.Catalog
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(menu *catalog.Catalog) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// RegisterRoutes registers menu endpoints on the given Chi router.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/menu", h.List)
}

type dishResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// List handles GET /menu. Dishes come back in configured menu order.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	dishes := h.menu.List()
	resp := make([]dishResponse, len(dishes))
	for i, d := range dishes {
		resp[i] = dishResponse{
			ID:    d.ID,
			Name:  d.Name,
			Price: d.Price.StringFixed(2),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
