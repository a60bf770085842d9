package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	if err := NewHealthHandler().Liveness(newEcho().NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadinessHandler(t *testing.T) {
	ok := func(ctx context.Context) error { return nil }
	down := func(ctx context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name     string
		deps     map[string]Pinger
		wantCode int
		wantDown string
	}{
		{name: "all up", deps: map[string]Pinger{"portal": ok, "redis": ok}, wantCode: http.StatusOK},
		{name: "portal down", deps: map[string]Pinger{"portal": down, "redis": ok}, wantCode: http.StatusServiceUnavailable, wantDown: "portal"},
		{name: "no deps", deps: nil, wantCode: http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
			rec := httptest.NewRecorder()
			if err := NewReadinessHandler(tc.deps).Readiness(newEcho().NewContext(req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if tc.wantDown != "" && resp.Dependencies[tc.wantDown].Status != "unhealthy" {
				t.Errorf("expected %s unhealthy, got %+v", tc.wantDown, resp.Dependencies)
			}
		})
	}
}
