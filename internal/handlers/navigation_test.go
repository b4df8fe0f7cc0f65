package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rbeaumont/questtrail/internal/storage"
	"github.com/rbeaumont/questtrail/pkg/navigation"
	"github.com/rbeaumont/questtrail/pkg/quest"
)

func createSession(t *testing.T, handler *NavigationHandler, body CreateSessionRequest) navigation.Snapshot {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/navigation", bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var snap navigation.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("Failed to decode snapshot: %v", err)
	}
	return snap
}

func postPosition(t *testing.T, handler *NavigationHandler, id string, body PositionRequest) navigation.Snapshot {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/navigation/"+id+"/position", bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var snap navigation.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("Failed to decode snapshot: %v", err)
	}
	return snap
}

func TestNavigationHandler_InlineDestinationLifecycle(t *testing.T) {
	handler := NewNavigationHandler(storage.NewMockStorage(), testLogger())

	snap := createSession(t, handler, CreateSessionRequest{
		Destination: &navigation.Destination{Lat: 52.5163, Lng: 13.3777},
	})
	if snap.State != navigation.StateTracking {
		t.Errorf("Expected tracking state, got %q", snap.State)
	}

	// Roughly 10km south of the destination
	snap = postPosition(t, handler, snap.ID.String(), PositionRequest{Lat: 52.4264, Lng: 13.3777})
	if snap.DistanceMeters == nil || *snap.DistanceMeters < 9000 || *snap.DistanceMeters > 11000 {
		t.Errorf("Expected roughly 10km distance, got %+v", snap.DistanceMeters)
	}
	if snap.Cardinal != "North" {
		t.Errorf("Expected North, got %q", snap.Cardinal)
	}
	if snap.Arrived {
		t.Error("Should not be arrived at 10km")
	}

	// At the destination
	snap = postPosition(t, handler, snap.ID.String(), PositionRequest{Lat: 52.5163, Lng: 13.3777})
	if !snap.Arrived || snap.State != navigation.StateArrived {
		t.Errorf("Expected arrival at destination, got %+v", snap)
	}

	// Stop and verify the session is gone
	req := httptest.NewRequest(http.MethodDelete, "/v1/navigation/"+snap.ID.String(), nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/navigation/"+snap.ID.String(), nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after stop, got %d", w.Code)
	}
}

func TestNavigationHandler_QuestLevelDestination(t *testing.T) {
	mock := storage.NewMockStorage()
	mock.AddQuest("winter_adventure.json", &quest.Quest{
		Name: "winter adventure",
		Levels: []quest.Level{
			{
				ID:          1,
				Title:       "The First Clue",
				Destination: &navigation.Destination{Lat: 52.5163, Lng: 13.3777, ArrivalMessage: "You found it!"},
			},
		},
	})
	handler := NewNavigationHandler(mock, testLogger())

	snap := createSession(t, handler, CreateSessionRequest{Quest: "winter_adventure.json", LevelID: 1})
	if snap.Destination.ArrivalMessage != "You found it!" {
		t.Errorf("Expected level destination, got %+v", snap.Destination)
	}
}

func TestNavigationHandler_LevelWithoutDestination(t *testing.T) {
	mock := storage.NewMockStorage()
	mock.AddQuest("winter_adventure.json", &quest.Quest{
		Name:   "winter adventure",
		Levels: []quest.Level{{ID: 1, Title: "The First Clue"}},
	})
	handler := NewNavigationHandler(mock, testLogger())

	data, _ := json.Marshal(CreateSessionRequest{Quest: "winter_adventure.json", LevelID: 1})
	req := httptest.NewRequest(http.MethodPost, "/v1/navigation", bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for level without destination, got %d", w.Code)
	}
}

func TestNavigationHandler_PositionErrorIsNonFatal(t *testing.T) {
	handler := NewNavigationHandler(storage.NewMockStorage(), testLogger())

	snap := createSession(t, handler, CreateSessionRequest{
		Destination: &navigation.Destination{Lat: 52.5163, Lng: 13.3777},
	})

	snap = postPosition(t, handler, snap.ID.String(), PositionRequest{Error: "GPS signal lost"})
	if snap.LastError != "GPS signal lost" {
		t.Errorf("Expected recorded error, got %q", snap.LastError)
	}
	if snap.State != navigation.StateTracking {
		t.Errorf("Position error must not end tracking, got %q", snap.State)
	}

	// A good fix clears the error
	snap = postPosition(t, handler, snap.ID.String(), PositionRequest{Lat: 52.5, Lng: 13.37})
	if snap.LastError != "" {
		t.Errorf("Expected error cleared, got %q", snap.LastError)
	}
}

func TestNavigationHandler_ManualCheckIn(t *testing.T) {
	handler := NewNavigationHandler(storage.NewMockStorage(), testLogger())

	snap := createSession(t, handler, CreateSessionRequest{
		Destination: &navigation.Destination{Lat: 52.5163, Lng: 13.3777},
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/navigation/"+snap.ID.String()+"/checkin", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("Failed to decode snapshot: %v", err)
	}
	if !snap.Arrived {
		t.Error("Expected arrival after manual check-in")
	}
}

func TestNavigationHandler_InvalidSessionID(t *testing.T) {
	handler := NewNavigationHandler(storage.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/navigation/not-a-uuid", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}
