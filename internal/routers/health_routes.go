package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/handlers"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/monitoring"
)

func HealthRoutes(router *chi.Mux, healthHandler *handlers.HealthHandler) {
	router.Get("/healthz", healthHandler.HealthzHandler)
	router.Get("/readyz", healthHandler.ReadyzHandler)
	router.Handle("/metrics", monitoring.Handler())
}
