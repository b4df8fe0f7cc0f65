package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Channel is the Redis Pub/Sub channel carrying adventure events for SSE distribution.
const Channel = "adventure-events"

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeLevelCompleted     EventType = "level.completed"
	EventTypeAdventureCompleted EventType = "adventure.completed"
	EventTypeProgressReset      EventType = "progress.reset"
	EventTypeMemorySaved        EventType = "memory.saved"
)

// Event represents a generic event structure
type Event struct {
	Type      EventType              `json:"type"`
	RequestID string                 `json:"request_id,omitempty"`
	LevelID   int                    `json:"level_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Broadcaster publishes events to Redis Pub/Sub for SSE distribution
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBroadcaster creates a new event broadcaster
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// PublishLevelCompleted publishes a level.completed event
func (b *Broadcaster) PublishLevelCompleted(ctx context.Context, requestID string, levelID int, title string) error {
	event := Event{
		Type:      EventTypeLevelCompleted,
		RequestID: requestID,
		LevelID:   levelID,
		Data: map[string]interface{}{
			"title": title,
		},
	}
	return b.publish(ctx, event)
}

// PublishAdventureCompleted publishes an adventure.completed event for the final level
func (b *Broadcaster) PublishAdventureCompleted(ctx context.Context, requestID string, levelID int) error {
	event := Event{
		Type:      EventTypeAdventureCompleted,
		RequestID: requestID,
		LevelID:   levelID,
	}
	return b.publish(ctx, event)
}

// PublishProgressReset publishes a progress.reset event
func (b *Broadcaster) PublishProgressReset(ctx context.Context, requestID string) error {
	event := Event{
		Type:      EventTypeProgressReset,
		RequestID: requestID,
	}
	return b.publish(ctx, event)
}

// PublishMemorySaved publishes a memory.saved event after the worker
// writes a timeline entry
func (b *Broadcaster) PublishMemorySaved(ctx context.Context, requestID string, levelID int, storyPoint string) error {
	event := Event{
		Type:      EventTypeMemorySaved,
		RequestID: requestID,
		LevelID:   levelID,
		Data: map[string]interface{}{
			"story_point": storyPoint,
		},
	}
	return b.publish(ctx, event)
}

// publish publishes an event to the shared adventure channel
func (b *Broadcaster) publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event", event)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, Channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", Channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", Channel,
		"event_type", event.Type,
		"request_id", event.RequestID,
	)

	return nil
}
