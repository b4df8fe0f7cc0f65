package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rbeaumont/questtrail/internal/storage"
	"github.com/rbeaumont/questtrail/pkg/progress"
	"github.com/rbeaumont/questtrail/pkg/queue"
)

func newProgressHandler(t *testing.T) (*ProgressHandler, *progress.Store, *fakeEnqueuer) {
	t.Helper()
	mock := storage.NewMockStorage()
	store := progress.NewStore(mock, testLogger())
	enq := &fakeEnqueuer{}
	return NewProgressHandler(store, enq, testLogger()), store, enq
}

func TestProgressHandler_GetFreshRecord(t *testing.T) {
	handler, _, _ := newProgressHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/progress", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var rec progress.Record
	if err := json.NewDecoder(w.Body).Decode(&rec); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if rec.CurrentLevel != 1 {
		t.Errorf("Expected fresh record on level 1, got %d", rec.CurrentLevel)
	}
	if len(rec.CompletedLevels) != 0 {
		t.Errorf("Expected no completed levels, got %v", rec.CompletedLevels)
	}
}

func TestProgressHandler_GetAfterCompletion(t *testing.T) {
	handler, store, _ := newProgressHandler(t)
	ctx := context.Background()

	if _, err := store.CompleteLevel(ctx, 1); err != nil {
		t.Fatalf("Failed to complete level: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/progress", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var rec progress.Record
	if err := json.NewDecoder(w.Body).Decode(&rec); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if rec.CurrentLevel != 2 || !rec.IsCompleted(1) {
		t.Errorf("Expected level 1 completed, got %+v", rec)
	}
}

func TestProgressHandler_Photos(t *testing.T) {
	handler, store, _ := newProgressHandler(t)
	ctx := context.Background()

	if err := store.SavePhotos(ctx, 2, []string{"bridge.jpg"}); err != nil {
		t.Fatalf("Failed to save photos: %v", err)
	}
	if err := store.SavePhotos(ctx, 1, []string{"clue.jpg"}); err != nil {
		t.Fatalf("Failed to save photos: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/progress/photos", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string][]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	photos := resp["photos"]
	if len(photos) != 2 || photos[0] != "clue.jpg" || photos[1] != "bridge.jpg" {
		t.Errorf("Expected photos in level order, got %v", photos)
	}
}

func TestProgressHandler_Reset(t *testing.T) {
	handler, store, enq := newProgressHandler(t)
	ctx := context.Background()

	if _, err := store.CompleteLevel(ctx, 1); err != nil {
		t.Fatalf("Failed to complete level: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/v1/progress", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}

	if rec := store.Load(ctx); rec.CurrentLevel != 1 {
		t.Errorf("Expected fresh record after reset, got %+v", rec)
	}

	if len(enq.requests) != 1 || enq.requests[0].Type != queue.RequestTypeReset {
		t.Errorf("Expected reset request enqueued, got %+v", enq.requests)
	}
}

func TestProgressHandler_MethodNotAllowed(t *testing.T) {
	handler, _, _ := newProgressHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/progress", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}
