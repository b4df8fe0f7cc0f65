package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rbeaumont/questtrail/internal/storage"
)

// QuestsHandler serves the quest catalog.
// Routes:
// GET /v1/quests            - List available quests (name -> filename)
// GET /v1/quests/{filename} - Read a full quest definition
type QuestsHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewQuestsHandler(s storage.Storage, logger *slog.Logger) *QuestsHandler {
	return &QuestsHandler{
		storage: s,
		logger:  logger,
	}
}

func (h *QuestsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		h.logger.Warn("Method not allowed for quests endpoint", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		response := ErrorResponse{
			Error: "Method not allowed. Only GET is supported.",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/quests"), "/")
	if path == "" {
		h.handleList(w, r)
		return
	}
	h.handleGet(w, r, path)
}

func (h *QuestsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	quests, err := h.storage.ListQuests(r.Context())
	if err != nil {
		h.logger.Error("Failed to list quests", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		response := ErrorResponse{
			Error: "Failed to list quests",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(quests); err != nil {
		h.logger.Error("Failed to encode quests response", "error", err)
	}
}

func (h *QuestsHandler) handleGet(w http.ResponseWriter, r *http.Request, filename string) {
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	q, err := h.storage.GetQuest(r.Context(), filename)
	if err != nil {
		h.logger.Warn("Quest not found", "filename", filename, "error", err)
		w.WriteHeader(http.StatusNotFound)
		response := ErrorResponse{
			Error: "Quest not found: " + filename,
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(q); err != nil {
		h.logger.Error("Failed to encode quest response", "error", err)
	}
}
