package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rbeaumont/questtrail/internal/services/events"
	"github.com/rbeaumont/questtrail/internal/storage"
	"github.com/rbeaumont/questtrail/pkg/memory"
	"github.com/rbeaumont/questtrail/pkg/queue"
)

// MemoryProcessor turns completion requests into memory timeline entries.
// The API records progress synchronously; the worker builds the keepsake
// timeline out of band so a slow write never delays the player.
type MemoryProcessor struct {
	storage     storage.Storage
	broadcaster *events.Broadcaster
	log         *slog.Logger
}

// NewMemoryProcessor creates a processor backed by the given storage
func NewMemoryProcessor(s storage.Storage, broadcaster *events.Broadcaster, log *slog.Logger) *MemoryProcessor {
	return &MemoryProcessor{
		storage:     s,
		broadcaster: broadcaster,
		log:         log,
	}
}

// Process handles a single queued request
func (p *MemoryProcessor) Process(ctx context.Context, req *queue.Request) error {
	switch req.Type {
	case queue.RequestTypeCompletion:
		return p.processCompletion(ctx, req)
	case queue.RequestTypeReset:
		return p.processReset(ctx, req)
	default:
		return fmt.Errorf("unknown request type: %s", req.Type)
	}
}

func (p *MemoryProcessor) processCompletion(ctx context.Context, req *queue.Request) error {
	completedAt := req.EnqueuedAt
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}

	entry := memory.Entry{
		LevelID:     req.LevelID,
		Title:       req.LevelTitle,
		StoryPoint:  req.StoryPoint,
		Photos:      req.Photos,
		CompletedAt: completedAt,
	}

	if err := p.storage.AppendMemory(ctx, entry); err != nil {
		return fmt.Errorf("failed to append memory: %w", err)
	}

	if err := p.broadcaster.PublishLevelCompleted(ctx, req.RequestID, req.LevelID, req.LevelTitle); err != nil {
		p.log.Error("Failed to publish level completion event", "error", err, "request_id", req.RequestID)
	}

	if err := p.broadcaster.PublishMemorySaved(ctx, req.RequestID, req.LevelID, req.StoryPoint); err != nil {
		p.log.Error("Failed to publish memory event", "error", err, "request_id", req.RequestID)
		// The timeline write succeeded; event delivery is best effort
	}

	if req.Final {
		if err := p.broadcaster.PublishAdventureCompleted(ctx, req.RequestID, req.LevelID); err != nil {
			p.log.Error("Failed to publish adventure completion event", "error", err, "request_id", req.RequestID)
		}
	}

	return nil
}

func (p *MemoryProcessor) processReset(ctx context.Context, req *queue.Request) error {
	if err := p.storage.ClearMemories(ctx); err != nil {
		return fmt.Errorf("failed to clear memories: %w", err)
	}

	if err := p.broadcaster.PublishProgressReset(ctx, req.RequestID); err != nil {
		p.log.Error("Failed to publish reset event", "error", err, "request_id", req.RequestID)
	}

	return nil
}
