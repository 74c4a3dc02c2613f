package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	"apartment-eval-service/internal/api/handlers"
	"apartment-eval-service/internal/ports"
	"apartment-eval-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc *services.EvaluationService, evalCache ports.EvaluationCache) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(100, 1*time.Minute)) // protect upstream quota
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Use(corsMiddleware)

	evalHandler := &handlers.EvaluateHandler{Service: svc}
	cacheHandler := &handlers.CacheHandler{Cache: evalCache}

	r.Get("/", handlers.Root)
	r.Get("/health", handlers.Health)
	r.Post("/evaluate", evalHandler.Evaluate)
	r.Delete("/cache", cacheHandler.Clear)
	r.Get("/cache/stats", cacheHandler.Stats)

	return loggingMiddleware(r)
}
