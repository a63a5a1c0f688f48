package api

import (
	"encoding/json"
	"net/http"

	"github.com/intentional-app/waitlist-service/internal/service/waitlist"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	waitlist *waitlist.Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(waitlistSvc *waitlist.Service) *Handlers {
	return &Handlers{waitlist: waitlistSvc}
}

// Request/response helpers

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
