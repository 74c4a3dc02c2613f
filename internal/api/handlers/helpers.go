package handlers

import (
	"net/http"

	"github.com/go-chi/render"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// writeError emits the {"detail": ...} shape the browser extension
// renders verbatim in its status area.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"detail": msg})
}
