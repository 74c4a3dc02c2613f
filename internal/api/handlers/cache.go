package handlers

import (
	"log"
	"net/http"

	"apartment-eval-service/internal/api/dto"
	"apartment-eval-service/internal/ports"
)

type CacheHandler struct {
	Cache ports.EvaluationCache
}

// Clear drops every cached evaluation.
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Cache.Clear(r.Context()); err != nil {
		log.Printf("cache clear failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"message": "cache cleared"})
}

// Stats reports cache occupancy.
func (h *CacheHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Cache.Stats(r.Context())
	if err != nil {
		log.Printf("cache stats failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.CacheStatsResponse{CachedAddresses: stats.Entries, Addresses: stats.Keys}
	if res.Addresses == nil {
		res.Addresses = []string{}
	}
	writeJSON(w, r, http.StatusOK, res)
}
