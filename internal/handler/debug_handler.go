package handler

import (
	"encoding/json"
	"net/http"
)

type debugResponse struct {
	Backend       string `json:"backend"`
	EnvProject    string `json:"env_project"`
	ClientProject string `json:"client_project"`
}

// Debug handles GET /api/debug. It is only routed when DEBUG_ENDPOINT=true.
func (h *Handler) Debug(w http.ResponseWriter, r *http.Request) {
	info := h.storeInfo()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(debugResponse{
		Backend:       info.Backend,
		EnvProject:    h.envProject,
		ClientProject: info.Project,
	})
}
