package handlers

import (
	"net/http"
)

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Root describes the API for clients probing the base URL.
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"name":    "NYC Apartment Evaluator API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"POST /evaluate":   "Evaluate an apartment address",
			"GET /health":      "Health check endpoint",
			"DELETE /cache":    "Clear the evaluation cache",
			"GET /cache/stats": "Evaluation cache occupancy",
		},
	})
}
