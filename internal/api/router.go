package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Provider       ports.DirectionsProvider
	Geocoder       ports.Geocoder
	Sequencer      *services.Sequencer
	MaxPasses      int
	AllowedOrigins []string
	Logger         *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	routeHandler := &handlers.RouteHandler{
		Provider:  d.Provider,
		Geocoder:  d.Geocoder,
		Sequencer: d.Sequencer,
		MaxPasses: d.MaxPasses,
		Logger:    logger,
	}
	geocodeHandler := &handlers.GeocodeHandler{Geocoder: d.Geocoder, Logger: logger}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader, handlers.SessionHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"error":"method not allowed","code":"` + handlers.CodeMethodNotAllowed + `"}` + "\n"))
	})

	r.Get("/health", handlers.Health)
	r.Get("/geocode", geocodeHandler.Geocode)

	r.Route("/routes", func(r chi.Router) {
		r.Post("/order", routeHandler.Order)
		r.Post("/optimize", routeHandler.Optimize)
		r.Post("/alternatives", routeHandler.Alternatives)
	})

	return r
}
