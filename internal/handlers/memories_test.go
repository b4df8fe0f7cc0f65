package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rbeaumont/questtrail/internal/storage"
	"github.com/rbeaumont/questtrail/pkg/memory"
)

func TestMemoriesHandler_Empty(t *testing.T) {
	handler := NewMemoriesHandler(storage.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/memories", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("Expected empty JSON array, got %q", body)
	}
}

func TestMemoriesHandler_Timeline(t *testing.T) {
	mock := storage.NewMockStorage()
	ctx := context.Background()
	if err := mock.AppendMemory(ctx, memory.Entry{
		LevelID:     1,
		Title:       "The First Clue",
		StoryPoint:  "It began with a riddle.",
		CompletedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("Failed to append memory: %v", err)
	}

	handler := NewMemoriesHandler(mock, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/memories", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var entries []memory.Entry
	if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "The First Clue" {
		t.Errorf("Unexpected timeline %+v", entries)
	}
}
