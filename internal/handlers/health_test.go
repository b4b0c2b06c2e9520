package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthCheckBasic(t *testing.T) {
	t.Parallel()

	h := NewHealthChecker()
	w := httptest.NewRecorder()
	h.HealthCheck(w, httptest.NewRequest("GET", "/api/v1/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Checks != nil {
		t.Error("basic mode should not run checks")
	}
}

func TestHealthCheckExtended(t *testing.T) {
	t.Parallel()

	h := NewHealthChecker()
	h.RegisterCheck("model", func(context.Context) error { return nil })
	h.RegisterCheck("calendar", func(context.Context) error { return errors.New("token expired") })

	w := httptest.NewRecorder()
	h.HealthCheck(w, httptest.NewRequest("GET", "/api/v1/health?mode=extended", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 with a failing check", w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Checks["model"] != "healthy" {
		t.Errorf("model check = %q", resp.Checks["model"])
	}
}
