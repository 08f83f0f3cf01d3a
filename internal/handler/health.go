package handler

import (
	"encoding/json"
	"net/http"

	"github.com/contactdesk/backend/internal/repository"
)

type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
	Message string `json:"message,omitempty"`
}

// Live handles GET /health. It never touches the store.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok"})
}

// Health handles GET /api/health and reports whether the store is reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if db, ok := h.store.(repository.DB); ok {
		if err := db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(healthResponse{
				Status:  "unhealthy",
				Message: err.Error(),
			})
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:  "ok",
		Backend: h.storeInfo().Backend,
	})
}

func (h *Handler) storeInfo() repository.StoreInfo {
	if d, ok := h.store.(repository.Describer); ok {
		return d.Describe()
	}
	return repository.StoreInfo{}
}
