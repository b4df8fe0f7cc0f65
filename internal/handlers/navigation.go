package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/rbeaumont/questtrail/internal/storage"
	"github.com/rbeaumont/questtrail/pkg/navigation"
)

// CreateSessionRequest defines the request body for starting a navigation
// session. Either name a quest level with a destination, or provide the
// destination inline.
type CreateSessionRequest struct {
	Quest       string                  `json:"quest,omitempty"`
	LevelID     int                     `json:"level_id,omitempty"`
	Destination *navigation.Destination `json:"destination,omitempty"`
}

// PositionRequest defines the request body for a position update
type PositionRequest struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Error string  `json:"error,omitempty"`
}

// NavigationHandler owns live navigation sessions keyed by session ID.
// Clients push position fixes over HTTP and poll the computed state.
// Routes:
// POST /v1/navigation                - Create a session and begin tracking
// GET /v1/navigation/{id}            - Read the live session snapshot
// POST /v1/navigation/{id}/position  - Push a position fix or error
// POST /v1/navigation/{id}/checkin   - Manual check-in (forces arrival)
// DELETE /v1/navigation/{id}         - Stop and discard the session
type NavigationHandler struct {
	storage  storage.Storage
	logger   *slog.Logger
	mu       sync.Mutex
	sessions map[uuid.UUID]*navigation.Session
}

func NewNavigationHandler(s storage.Storage, logger *slog.Logger) *NavigationHandler {
	return &NavigationHandler{
		storage:  s,
		logger:   logger,
		sessions: make(map[uuid.UUID]*navigation.Session),
	}
}

func (h *NavigationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/navigation"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			h.methodNotAllowed(w, "Method not allowed. Use POST to create a session.")
			return
		}
		h.handleCreate(w, r)
		return
	}

	parts := strings.Split(path, "/")
	sessionID, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", parts[0], "error", err)
		w.WriteHeader(http.StatusBadRequest)
		response := ErrorResponse{
			Error: "Invalid session ID format",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	session := h.lookup(sessionID)
	if session == nil {
		w.WriteHeader(http.StatusNotFound)
		response := ErrorResponse{
			Error: "Navigation session not found",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.writeSnapshot(w, session)

	case len(parts) == 1 && r.Method == http.MethodDelete:
		h.handleStop(w, session)

	case len(parts) == 2 && parts[1] == "position" && r.Method == http.MethodPost:
		h.handlePosition(w, r, session)

	case len(parts) == 2 && parts[1] == "checkin" && r.Method == http.MethodPost:
		session.ManualCheckIn()
		h.writeSnapshot(w, session)

	default:
		h.methodNotAllowed(w, "Unsupported method or path for navigation session")
	}
}

func (h *NavigationHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		response := ErrorResponse{
			Error: "Invalid JSON in request body",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	dest, err := h.resolveDestination(r, req)
	if err != nil {
		h.logger.Warn("Failed to resolve destination", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		response := ErrorResponse{
			Error: err.Error(),
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	session := navigation.NewSession(*dest, h.logger)
	session.BeginTracking()

	h.mu.Lock()
	h.sessions[session.ID()] = session
	h.mu.Unlock()

	h.logger.Info("Navigation session created",
		"session_id", session.ID().String(),
		"lat", dest.Lat,
		"lng", dest.Lng,
	)

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(session.Snapshot()); err != nil {
		h.logger.Error("Failed to encode session response", "error", err)
	}
}

// resolveDestination picks the inline destination, or looks one up from
// the named quest level.
func (h *NavigationHandler) resolveDestination(r *http.Request, req CreateSessionRequest) (*navigation.Destination, error) {
	if req.Destination != nil {
		return req.Destination, nil
	}
	if req.Quest == "" {
		return nil, errors.New("destination or quest level is required")
	}

	q, err := h.storage.GetQuest(r.Context(), req.Quest)
	if err != nil {
		return nil, errors.New("failed to load quest: " + err.Error())
	}
	level := q.Level(req.LevelID)
	if level == nil {
		return nil, errors.New("level not found in quest")
	}
	if level.Destination == nil {
		return nil, errors.New("level has no destination")
	}
	return level.Destination, nil
}

func (h *NavigationHandler) handlePosition(w http.ResponseWriter, r *http.Request, session *navigation.Session) {
	var req PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		response := ErrorResponse{
			Error: "Invalid JSON in request body",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	if req.Error != "" {
		session.RecordError(errors.New(req.Error))
	} else {
		session.HandleUpdate(navigation.Position{Lat: req.Lat, Lng: req.Lng})
	}

	h.writeSnapshot(w, session)
}

func (h *NavigationHandler) handleStop(w http.ResponseWriter, session *navigation.Session) {
	session.Stop()

	h.mu.Lock()
	delete(h.sessions, session.ID())
	h.mu.Unlock()

	h.logger.Debug("Navigation session stopped", "session_id", session.ID().String())
	w.WriteHeader(http.StatusNoContent)
}

func (h *NavigationHandler) lookup(id uuid.UUID) *navigation.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[id]
}

func (h *NavigationHandler) writeSnapshot(w http.ResponseWriter, session *navigation.Session) {
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(session.Snapshot()); err != nil {
		h.logger.Error("Failed to encode session response", "error", err)
	}
}

func (h *NavigationHandler) methodNotAllowed(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusMethodNotAllowed)
	response := ErrorResponse{
		Error: msg,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}
