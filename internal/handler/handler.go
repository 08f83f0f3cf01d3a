package handler

import (
	"net/http"
	"strings"

	"github.com/contactdesk/backend/internal/repository"
)

// Handler serves the store-level endpoints (health, debug) and owns the
// CORS policy.
type Handler struct {
	store          repository.ContactStore
	allowedOrigins []string
	envProject     string
}

// New creates a Handler. allowedOrigins entries ending in ":*" match any
// port; a single "*" allows every origin.
func New(store repository.ContactStore, allowedOrigins []string, envProject string) *Handler {
	return &Handler{store: store, allowedOrigins: allowedOrigins, envProject: envProject}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Add("Vary", "Origin")
			if allowed, ok := h.allowOrigin(origin); ok {
				w.Header().Set("Access-Control-Allow-Origin", allowed)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin.
func (h *Handler) allowOrigin(origin string) (string, bool) {
	for _, pattern := range h.allowedOrigins {
		if pattern == "*" {
			return "*", true
		}
		if originMatches(pattern, origin) {
			return origin, true
		}
	}
	return "", false
}

func originMatches(pattern, origin string) bool {
	base, anyPort := strings.CutSuffix(pattern, ":*")
	if !anyPort {
		return strings.EqualFold(pattern, origin)
	}
	if strings.EqualFold(base, origin) {
		return true
	}
	if len(origin) <= len(base) || !strings.EqualFold(origin[:len(base)], base) || origin[len(base)] != ':' {
		return false
	}
	port := origin[len(base)+1:]
	if port == "" {
		return false
	}
	for _, c := range port {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
