package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/rfc-dinner/api/internal/catalog"
	"github.com/rfc-dinner/api/internal/config"
	"github.com/rfc-dinner/api/internal/router"
	"github.com/rfc-dinner/api/internal/service"
	"github.com/rfc-dinner/api/internal/store"
	"github.com/rfc-dinner/api/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	menu := catalog.Default()
	orders := store.New()

	hub := ws.NewHub(orders.List)
	go hub.Run()

	svc := service.NewOrderService(menu, orders, hub)

	r := router.New(cfg, menu, orders, svc, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
