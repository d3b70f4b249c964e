package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ziadkadry99/craftburger/internal/db"
	"github.com/ziadkadry99/craftburger/internal/logging"
)

func TestHealthCheck(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	srv := New(Config{Port: 0}, database, logging.Nop())

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestHealthCheckClosedDatabase(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	database.Close()

	srv := New(Config{}, database, logging.Nop())

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := New(Config{Port: 0, AllowAll: true}, nil, logging.Nop())

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestImmutableAssets(t *testing.T) {
	srv := New(Config{ImmutableAssets: []string{"/static/**"}}, nil, logging.Nop())
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
	srv.Router().Get("/static/style.css", ok)
	srv.Router().Get("/menu", ok)

	tests := map[string]bool{
		"/static/style.css": true,
		"/menu":             false,
	}
	for path, immutable := range tests {
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		got := w.Header().Get("Cache-Control") != ""
		if got != immutable {
			t.Errorf("GET %s: Cache-Control = %q", path, w.Header().Get("Cache-Control"))
		}
	}
}

func TestAddr(t *testing.T) {
	srv := New(Config{Host: "127.0.0.1", Port: 8080}, nil, logging.Nop())
	if got := srv.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr = %q", got)
	}
}
