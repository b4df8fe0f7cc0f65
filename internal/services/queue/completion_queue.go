package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rbeaumont/questtrail/pkg/queue"
)

// completionsKey is the Redis list holding pending completion requests.
const completionsKey = "completions"

// CompletionQueue manages the queue of level completion and reset requests
// consumed by the memory worker.
type CompletionQueue struct {
	client *Client
}

func NewCompletionQueue(client *Client) *CompletionQueue {
	return &CompletionQueue{
		client: client,
	}
}

// Enqueue adds a request to the end of the completions queue
func (cq *CompletionQueue) Enqueue(ctx context.Context, req *queue.Request) error {
	if req.EnqueuedAt.IsZero() {
		req.EnqueuedAt = time.Now().UTC()
	}
	data, err := req.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize request: %w", err)
	}

	if err := cq.client.rdb.RPush(ctx, completionsKey, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue request: %w", err)
	}
	return nil
}

// Dequeue removes and returns the next request from the queue.
// Returns nil if the queue is empty.
func (cq *CompletionQueue) Dequeue(ctx context.Context) (*queue.Request, error) {
	result, err := cq.client.rdb.LPop(ctx, completionsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Queue is empty
		}
		return nil, fmt.Errorf("failed to dequeue request: %w", err)
	}

	req, err := queue.FromJSON([]byte(result))
	if err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}

	return req, nil
}

// BlockingDequeue blocks until a request is available, then returns it.
// A zero timeout waits forever.
func (cq *CompletionQueue) BlockingDequeue(ctx context.Context, timeout time.Duration) (*queue.Request, error) {
	result, err := cq.client.rdb.BLPop(ctx, timeout, completionsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Timed out with nothing queued
		}
		return nil, fmt.Errorf("failed to dequeue request: %w", err)
	}

	// BLPop returns [key, value]
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BLPop result: %v", result)
	}

	req, err := queue.FromJSON([]byte(result[1]))
	if err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}

	return req, nil
}

// Depth returns the number of pending requests
func (cq *CompletionQueue) Depth(ctx context.Context) (int, error) {
	count, err := cq.client.rdb.LLen(ctx, completionsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue depth: %w", err)
	}
	return int(count), nil
}

// Clear removes all pending requests
func (cq *CompletionQueue) Clear(ctx context.Context) error {
	if err := cq.client.rdb.Del(ctx, completionsKey).Err(); err != nil {
		return fmt.Errorf("failed to clear completions queue: %w", err)
	}
	return nil
}
