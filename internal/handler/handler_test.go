package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contactdesk/backend/internal/model"
	"github.com/contactdesk/backend/internal/repository"
)

// mockStore is a func-field ContactStore that also implements DB and Describer.
type mockStore struct {
	pingFunc func(ctx context.Context) error
	info     repository.StoreInfo
}

func (m *mockStore) Init(ctx context.Context) error { return nil }
func (m *mockStore) Append(ctx context.Context, rec *model.ContactRecord) error { return nil }
func (m *mockStore) ListAll(ctx context.Context) ([]*model.ContactRecord, error) {
	return nil, nil
}
func (m *mockStore) Close() error { return nil }

func (m *mockStore) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

func (m *mockStore) Describe() repository.StoreInfo { return m.info }

var defaultOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}

func TestCORS_AllowsMatchingOrigin(t *testing.T) {
	h := New(&mockStore{}, defaultOrigins, "")

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, origin := range []string{"http://localhost:3000", "http://127.0.0.1:8080", "http://localhost"} {
		req := httptest.NewRequest("GET", "/api/contacts", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		h.CORS(inner).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", origin, rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != origin {
			t.Errorf("%s: expected origin echoed, got %q", origin, got)
		}
		if got := rec.Header().Get("Vary"); got != "Origin" {
			t.Errorf("%s: expected Vary: Origin, got %q", origin, got)
		}
	}
}

func TestCORS_RejectsOtherOrigins(t *testing.T) {
	h := New(&mockStore{}, defaultOrigins, "")
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	for _, origin := range []string{
		"https://evil.example",
		"http://localhost.evil.example",
		"http://localhost:abc",
		"https://localhost:3000",
	} {
		req := httptest.NewRequest("GET", "/api/contacts", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		h.CORS(inner).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("%s: expected no CORS header, got %q", origin, got)
		}
	}
}

func TestCORS_ExactAndWildcard(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	exact := New(&mockStore{}, []string{"https://example.com"}, "")
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	exact.CORS(inner).ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("exact: got %q", got)
	}

	all := New(&mockStore{}, []string{"*"}, "")
	rec = httptest.NewRecorder()
	all.CORS(inner).ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("wildcard: got %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	h := New(&mockStore{}, defaultOrigins, "")

	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("OPTIONS", "/api/contact", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.CORS(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for OPTIONS, got %d", rec.Code)
	}
	if called {
		t.Error("inner handler should not be called for OPTIONS preflight")
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
		t.Errorf("unexpected allow-methods %q", got)
	}
}
