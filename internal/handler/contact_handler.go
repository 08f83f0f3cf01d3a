package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/contactdesk/backend/internal/model"
	"github.com/contactdesk/backend/internal/service"
)

// ContactHandler handles contact form submission and listing.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Submit handles POST /api/contact.
// The body must be a JSON object with truthy name, email, type and consent.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var payload any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		writeSubmitError(w, service.ErrInvalidJSON)
		return
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeSubmitError(w, service.ErrInvalidJSON)
		return
	}

	_, err := h.contactService.Submit(r.Context(), payload, clientMeta(r))
	if err != nil {
		writeSubmitError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

func writeSubmitError(w http.ResponseWriter, err error) {
	var missing *service.MissingFieldsError
	var failure *service.StoreFailure
	switch {
	case errors.Is(err, service.ErrInvalidJSON):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
	case errors.Is(err, service.ErrMalformedPayload):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Payload must be an object"})
	case errors.As(err, &missing):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "Missing fields: " + strings.Join(missing.Fields, ", "),
		})
	case errors.As(err, &failure):
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to persist data",
			Details: failure.Cause.Error(),
		})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to persist data",
			Details: err.Error(),
		})
	}
}

// List handles GET /api/contacts. The response is always a JSON array.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.contactService.List(r.Context())
	if err != nil {
		details := err.Error()
		var failure *service.StoreFailure
		if errors.As(err, &failure) {
			details = failure.Cause.Error()
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to retrieve data",
			Details: details,
		})
		return
	}

	if records == nil {
		records = []*model.ContactRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
