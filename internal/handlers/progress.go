package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rbeaumont/questtrail/pkg/progress"
	"github.com/rbeaumont/questtrail/pkg/queue"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// CompletionEnqueuer publishes requests to the completions queue.
// Satisfied by services/queue.CompletionQueue.
type CompletionEnqueuer interface {
	Enqueue(ctx context.Context, req *queue.Request) error
}

// ProgressHandler exposes the adventure progress record.
// Routes:
// GET /v1/progress           - Read the current progress record
// GET /v1/progress/photos    - All uploaded photos in level order
// DELETE /v1/progress        - Discard all progress
type ProgressHandler struct {
	store    *progress.Store
	enqueuer CompletionEnqueuer
	logger   *slog.Logger
}

func NewProgressHandler(store *progress.Store, enqueuer CompletionEnqueuer, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{
		store:    store,
		enqueuer: enqueuer,
		logger:   logger,
	}
}

func (h *ProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/v1/progress/photos":
		h.handlePhotos(w, r)

	case r.Method == http.MethodGet:
		h.handleRead(w, r)

	case r.Method == http.MethodDelete:
		h.handleReset(w, r)

	default:
		h.logger.Warn("Method not allowed for progress endpoint", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		response := ErrorResponse{
			Error: "Method not allowed. Supported methods: GET, DELETE",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
	}
}

func (h *ProgressHandler) handleRead(w http.ResponseWriter, r *http.Request) {
	rec := h.store.Load(r.Context())

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		h.logger.Error("Failed to encode progress response", "error", err)
	}
}

func (h *ProgressHandler) handlePhotos(w http.ResponseWriter, r *http.Request) {
	photos := h.store.AllPhotos(r.Context())
	if photos == nil {
		photos = []string{}
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string][]string{"photos": photos}); err != nil {
		h.logger.Error("Failed to encode photos response", "error", err)
	}
}

func (h *ProgressHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Reset(r.Context()); err != nil {
		h.logger.Error("Failed to reset progress", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		response := ErrorResponse{
			Error: "Failed to reset progress",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	req := &queue.Request{
		RequestID:  uuid.New().String(),
		Type:       queue.RequestTypeReset,
		EnqueuedAt: time.Now().UTC(),
	}
	if err := h.enqueuer.Enqueue(r.Context(), req); err != nil {
		// Progress is already gone; the memory timeline will clear on
		// the next successful reset
		h.logger.Error("Failed to enqueue reset request", "error", err)
	}

	h.logger.Info("Progress reset", "request_id", req.RequestID)
	w.WriteHeader(http.StatusNoContent)
}
