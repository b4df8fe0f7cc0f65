package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rbeaumont/questtrail/internal/storage"
	"github.com/rbeaumont/questtrail/pkg/memory"
)

// MemoriesHandler serves the memory timeline written by the worker.
// Routes:
// GET /v1/memories - Read the timeline in completion order
type MemoriesHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewMemoriesHandler(s storage.Storage, logger *slog.Logger) *MemoriesHandler {
	return &MemoriesHandler{
		storage: s,
		logger:  logger,
	}
}

func (h *MemoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		h.logger.Warn("Method not allowed for memories endpoint", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		response := ErrorResponse{
			Error: "Method not allowed. Only GET is supported.",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	memories, err := h.storage.ListMemories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list memories", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		response := ErrorResponse{
			Error: "Failed to list memories",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}
	if memories == nil {
		memories = []memory.Entry{}
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(memories); err != nil {
		h.logger.Error("Failed to encode memories response", "error", err)
	}
}
