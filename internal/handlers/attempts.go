package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rbeaumont/questtrail/internal/storage"
	"github.com/rbeaumont/questtrail/pkg/journey"
	"github.com/rbeaumont/questtrail/pkg/minigame"
	"github.com/rbeaumont/questtrail/pkg/queue"
)

// AttemptRequest defines the request body for submitting a level attempt
type AttemptRequest struct {
	Quest   string          `json:"quest"` // Required: quest filename
	LevelID int             `json:"level_id"`
	Result  minigame.Result `json:"result"`
}

// AttemptsHandler evaluates level attempts and records progress.
// Routes:
// POST /v1/attempts - Submit a mini-game result for a level
type AttemptsHandler struct {
	storage      storage.Storage
	orchestrator *journey.Orchestrator
	enqueuer     CompletionEnqueuer
	logger       *slog.Logger
}

func NewAttemptsHandler(s storage.Storage, orchestrator *journey.Orchestrator, enqueuer CompletionEnqueuer, logger *slog.Logger) *AttemptsHandler {
	return &AttemptsHandler{
		storage:      s,
		orchestrator: orchestrator,
		enqueuer:     enqueuer,
		logger:       logger,
	}
}

func (h *AttemptsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for attempts endpoint", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		response := ErrorResponse{
			Error: "Method not allowed. Only POST is supported.",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	var req AttemptRequest
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

	if req.Quest == "" {
		w.WriteHeader(http.StatusBadRequest)
		response := ErrorResponse{
			Error: "quest field is required",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	q, err := h.storage.GetQuest(r.Context(), req.Quest)
	if err != nil {
		h.logger.Warn("Failed to load quest", "quest", req.Quest, "error", err)
		w.WriteHeader(http.StatusBadRequest)
		response := ErrorResponse{
			Error: "Failed to load quest: " + err.Error(),
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	level := q.Level(req.LevelID)
	if level == nil {
		w.WriteHeader(http.StatusNotFound)
		response := ErrorResponse{
			Error: "Level not found in quest",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	outcome, err := h.orchestrator.CompleteAttempt(r.Context(), q, level, req.Result)
	if err != nil {
		if errors.Is(err, journey.ErrLevelLocked) {
			h.logger.Warn("Attempt on locked level", "level_id", req.LevelID)
			w.WriteHeader(http.StatusConflict)
			response := ErrorResponse{
				Error: "Level is locked. Complete the previous level first.",
			}
			if err := json.NewEncoder(w).Encode(response); err != nil {
				h.logger.Error("Failed to encode error response", "error", err)
			}
			return
		}

		h.logger.Error("Failed to record attempt", "error", err, "level_id", req.LevelID)
		w.WriteHeader(http.StatusInternalServerError)
		response := ErrorResponse{
			Error: "Failed to record attempt",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	if outcome.Passed {
		h.enqueueCompletion(r, req, level.Title, outcome)
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(outcome); err != nil {
		h.logger.Error("Failed to encode attempt response", "error", err)
	}
}

// enqueueCompletion publishes the completion for the memory worker.
// Best effort: progress is already saved, so a queue failure only
// costs a timeline entry.
func (h *AttemptsHandler) enqueueCompletion(r *http.Request, req AttemptRequest, title string, outcome journey.Outcome) {
	qr := &queue.Request{
		RequestID:  uuid.New().String(),
		Type:       queue.RequestTypeCompletion,
		LevelID:    req.LevelID,
		LevelTitle: title,
		StoryPoint: req.Result.Story,
		Photos:     req.Result.Photos,
		Final:      outcome.NextScreen == journey.ScreenSummary,
		EnqueuedAt: time.Now().UTC(),
	}
	if err := h.enqueuer.Enqueue(r.Context(), qr); err != nil {
		h.logger.Error("Failed to enqueue completion request", "error", err, "level_id", req.LevelID)
		return
	}

	h.logger.Info("Completion enqueued",
		"request_id", qr.RequestID,
		"level_id", qr.LevelID,
		"final", qr.Final,
	)
}
