package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rfc-dinner/api/internal/catalog"
	"github.com/rfc-dinner/api/internal/config"
	"github.com/rfc-dinner/api/internal/handler"
	mw "github.com/rfc-dinner/api/internal/middleware"
	"github.com/rfc-dinner/api/internal/service"
	"github.com/rfc-dinner/api/internal/store"
	"github.com/rfc-dinner/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Customer routes are public; admin routes sit behind JWT auth.
func New(cfg *config.Config, menu *catalog.Catalog, st *store.Store, svc *service.OrderService, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	menuHandler := handler.NewMenuHandler(menu)
	menuHandler.RegisterRoutes(r)

	orderHandler := handler.NewOrderHandler(svc, st)
	orderHandler.RegisterRoutes(r)

	paymentHandler := handler.NewPaymentHandler(st, cfg.UPIPayeeID, cfg.UPIPayeeName)
	paymentHandler.RegisterRoutes(r)

	authHandler := handler.NewAuthHandler(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Admin routes (require authentication)
	r.Route("/admin", func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))
		r.Use(mw.RequireAdmin)

		adminHandler := handler.NewAdminHandler(svc, st)
		adminHandler.RegisterRoutes(r)
	})

	return r
}
