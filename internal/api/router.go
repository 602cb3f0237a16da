package api

import (
	"load-ranking-service/internal/adapters/geo"
	"load-ranking-service/internal/adapters/snapshot"
	"load-ranking-service/internal/api/handlers"
	"load-ranking-service/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(board ports.LoadBoard, registry ports.CarrierRegistry, cities *geo.CityDB, snapshots *snapshot.Store) http.Handler {
	mux := http.NewServeMux()

	loadsHandler := &handlers.LoadsHandler{Board: board, Registry: registry, Cities: cities}
	driversHandler := &handlers.DriversHandler{Board: board, Registry: registry, Cities: cities, Snapshots: snapshots}
	geoHandler := &handlers.GeoHandler{Cities: cities}
	authHandler := &handlers.AuthHandler{Board: board}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/get-loads-for-driver", loadsHandler.GetLoadsForDriver)
	mux.HandleFunc("/api/search-drivers", driversHandler.SearchDrivers)
	mux.HandleFunc("/api/states", geoHandler.States)
	mux.HandleFunc("/api/cities/", geoHandler.ListCities)
	mux.HandleFunc("/api/authenticate", authHandler.Authenticate)

	return loggingMiddleware(mux)
}
