package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rbeaumont/questtrail/pkg/memory"
)

// memoriesKey holds the memory timeline as a Redis list, one JSON entry
// per completed level, in completion order.
const memoriesKey = "memories:adventure"

// Memory timeline operations (Redis-backed)

func (r *RedisStorage) AppendMemory(ctx context.Context, entry memory.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		r.logger.Error("Failed to marshal memory entry", "level", entry.LevelID, "error", err)
		return fmt.Errorf("failed to marshal memory entry: %w", err)
	}

	if err := r.client.RPush(ctx, memoriesKey, string(data)).Err(); err != nil {
		r.logger.Error("Failed to append memory entry", "level", entry.LevelID, "error", err)
		return fmt.Errorf("failed to append memory entry: %w", err)
	}
	return nil
}

func (r *RedisStorage) ListMemories(ctx context.Context) ([]memory.Entry, error) {
	items, err := r.client.LRange(ctx, memoriesKey, 0, -1).Result()
	if err != nil && err != redis.Nil {
		r.logger.Error("Failed to list memories", "error", err)
		return nil, fmt.Errorf("failed to list memories: %w", err)
	}

	entries := make([]memory.Entry, 0, len(items))
	for _, item := range items {
		var entry memory.Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			// A bad entry should not hide the rest of the timeline.
			r.logger.Warn("Skipping unreadable memory entry", "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *RedisStorage) ClearMemories(ctx context.Context) error {
	if err := r.client.Del(ctx, memoriesKey).Err(); err != nil {
		r.logger.Error("Failed to clear memories", "error", err)
		return fmt.Errorf("failed to clear memories: %w", err)
	}
	return nil
}
