package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rbeaumont/questtrail/internal/storage"
)

func TestHealthHandler_Healthy(t *testing.T) {
	mock := storage.NewMockStorage()
	handler := NewHealthHandler(mock, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Expected healthy status, got %q", resp.Status)
	}
	if resp.Service != "questtrail" {
		t.Errorf("Expected questtrail service, got %q", resp.Service)
	}
	if resp.Components["storage"] != "healthy" {
		t.Errorf("Expected healthy storage component, got %v", resp.Components["storage"])
	}
}

func TestHealthHandler_Degraded(t *testing.T) {
	mock := storage.NewMockStorage()
	mock.SetPingError(errors.New("connection refused"))
	handler := NewHealthHandler(mock, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("Expected degraded status, got %q", resp.Status)
	}
	if resp.Components["storage"] != "unhealthy" {
		t.Errorf("Expected unhealthy storage component, got %v", resp.Components["storage"])
	}
}
