package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRequestIDGeneratesAndEchoes(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" {
		t.Fatal("expected generated request id")
	}
	if rec.Header().Get(HeaderRequestID) != seen {
		t.Fatalf("header = %q, context = %q", rec.Header().Get(HeaderRequestID), seen)
	}
}

func TestRequestIDInboundHeader(t *testing.T) {
	tests := []struct {
		name    string
		inbound string
		reuse   bool
	}{
		{name: "valid id reused", inbound: "abc-123_x.y", reuse: true},
		{name: "spaces rejected", inbound: "abc 123", reuse: false},
		{name: "too long rejected", inbound: strings.Repeat("a", 200), reuse: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(HeaderRequestID, tc.inbound)
			h.ServeHTTP(httptest.NewRecorder(), req)
			if (seen == tc.inbound) != tc.reuse {
				t.Fatalf("seen = %q, inbound = %q, reuse = %v", seen, tc.inbound, tc.reuse)
			}
		})
	}
}

func TestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	h := RequestID(Logger(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("nope"))
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/tryon", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if entry["level"] != "warn" || entry["status"] != float64(400) || entry["path"] != "/api/tryon" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
	if entry["bytes"] != float64(4) || entry["request_id"] == "" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := CORS([]string{"https://lookbook.example.com"})(next)

	req := httptest.NewRequest(http.MethodPost, "/api/tryon", nil)
	req.Header.Set("Origin", "https://lookbook.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://lookbook.example.com" {
		t.Fatalf("allow origin = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}

	pre := httptest.NewRequest(http.MethodOptions, "/api/tryon", nil)
	pre.Header.Set("Origin", "https://evil.example.com")
	pre.Header.Set("Access-Control-Request-Method", "POST")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, pre)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("preflight status = %d, want 403", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unexpected allow origin for foreign origin")
	}
}

func TestCORSWildcard(t *testing.T) {
	h := CORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	pre := httptest.NewRequest(http.MethodOptions, "/api/tryon", nil)
	pre.Header.Set("Origin", "http://localhost:5173")
	pre.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, pre)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", rec.Code)
	}
}
