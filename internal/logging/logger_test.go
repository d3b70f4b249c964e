package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "shouting"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn entry missing: %s", out)
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.WithFields(map[string]any{"component": "contact"}).Error(errors.New("boom"), "submit failed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v (%s)", err, buf.String())
	}
	if entry["component"] != "contact" {
		t.Errorf("component field = %v", entry["component"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error field = %v", entry["error"])
	}
	if entry["message"] != "submit failed" {
		t.Errorf("message field = %v", entry["message"])
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("ignored")
	l.Error(errors.New("x"), "ignored")
	if l.WithFields(map[string]any{"a": 1}) != nil {
		t.Error("expected nil derived logger")
	}
	if l.Zerolog() == nil {
		t.Error("expected a usable nop zerolog")
	}
}

func TestMiddlewareLogsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	h := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/menu?category=Burgers", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v (%s)", err, buf.String())
	}
	if entry["path"] != "/menu" {
		t.Errorf("path = %v", entry["path"])
	}
	if entry["status"] != float64(http.StatusTeapot) {
		t.Errorf("status = %v", entry["status"])
	}
	if entry["bytes"] != float64(len("short and stout")) {
		t.Errorf("bytes = %v", entry["bytes"])
	}
}
