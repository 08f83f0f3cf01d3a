package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSecurityHeaders_SetsAllHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	SecurityHeaders(inner).ServeHTTP(rec, req)

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"X-XSS-Protection":       "0",
		"Permissions-Policy":     "camera=(), microphone=(), geolocation=()",
	}
	for name, want := range headers {
		got := rec.Header().Get(name)
		if got != want {
			t.Errorf("%s: want %q, got %q", name, want, got)
		}
	}
	if csp := rec.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "frame-ancestors 'none'") {
		t.Errorf("CSP missing frame-ancestors: %q", csp)
	}
}

func TestClientMeta(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		xff    string
		ua     string
		wantIP string
	}{
		{"peer address", "192.0.2.10:54321", "", "curl/8.0", "192.0.2.10"},
		{"forwarded header verbatim", "10.0.0.1:80", " 203.0.113.5, 10.0.0.2 ", "", "203.0.113.5, 10.0.0.2"},
		{"ipv6 peer", "[2001:db8::1]:443", "", "", "2001:db8::1"},
		{"unparseable remote", "pipe", "", "", "pipe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/contact", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.ua != "" {
				req.Header.Set("User-Agent", tt.ua)
			} else {
				req.Header.Del("User-Agent")
			}

			meta := clientMeta(req)
			if meta.IP != tt.wantIP {
				t.Errorf("ip: want %q, got %q", tt.wantIP, meta.IP)
			}
			if meta.UserAgent != tt.ua {
				t.Errorf("userAgent: want %q, got %q", tt.ua, meta.UserAgent)
			}
		})
	}
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	for status, level := range map[int]string{200: `"level":"INFO"`, 400: `"level":"WARN"`, 500: `"level":"ERROR"`} {
		buf.Reset()
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("abc"))
		})
		RequestLogger(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/contacts", nil))

		out := buf.String()
		if !strings.Contains(out, level) {
			t.Errorf("status %d: expected %s in %s", status, level, out)
		}
		if !strings.Contains(out, `"bytes":3`) {
			t.Errorf("status %d: expected bytes=3 in %s", status, out)
		}
	}
}

func TestMetrics_CountsNormalizedPaths(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := Metrics(inner)

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "other", "418"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/random/abc", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/random/def", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "other", "418"))

	if after-before != 2 {
		t.Errorf("expected 2 requests counted under path=other, got %v", after-before)
	}
	if got := normalizePath("/api/contacts"); got != "/api/contacts" {
		t.Errorf("known path should be kept, got %q", got)
	}
}
