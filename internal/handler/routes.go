package handler

import "net/http"

// RouteOptions toggles the optional endpoints.
type RouteOptions struct {
	DebugEndpoint  bool
	MetricsEnabled bool
}

// Routes builds the API mux wrapped in the middleware chain:
// RequestLogger, Metrics, SecurityHeaders, CORS.
func (h *Handler) Routes(contacts *ContactHandler, opts RouteOptions) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Live)
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("POST /api/contact", contacts.Submit)
	mux.HandleFunc("GET /api/contacts", contacts.List)
	if opts.DebugEndpoint {
		mux.HandleFunc("GET /api/debug", h.Debug)
	}
	if opts.MetricsEnabled {
		mux.Handle("GET /metrics", MetricsHandler())
	}

	var handler http.Handler = h.CORS(mux)
	handler = SecurityHeaders(handler)
	if opts.MetricsEnabled {
		handler = Metrics(handler)
	}
	return RequestLogger(handler)
}
