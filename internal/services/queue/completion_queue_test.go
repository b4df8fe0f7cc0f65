package queue

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/rbeaumont/questtrail/pkg/queue"
)

func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()

	// Start miniredis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	// Create queue client
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	redisURL := "redis://" + mr.Addr()

	client, err := NewClient(redisURL, logger)
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create queue client: %v", err)
	}

	return client, mr
}

func TestCompletionQueue_EnqueueAndDequeue(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	cq := NewCompletionQueue(client)
	ctx := context.Background()

	requests := []*queue.Request{
		{RequestID: "r1", Type: queue.RequestTypeCompletion, LevelID: 1, LevelTitle: "The First Clue", StoryPoint: "It began with a riddle."},
		{RequestID: "r2", Type: queue.RequestTypeCompletion, LevelID: 2, LevelTitle: "Memory Lane", Photos: []string{"market.jpg"}},
		{RequestID: "r3", Type: queue.RequestTypeReset},
	}
	for _, req := range requests {
		if err := cq.Enqueue(ctx, req); err != nil {
			t.Fatalf("Failed to enqueue request: %v", err)
		}
	}

	depth, err := cq.Depth(ctx)
	if err != nil {
		t.Fatalf("Failed to get depth: %v", err)
	}
	if depth != 3 {
		t.Errorf("Expected depth 3, got %d", depth)
	}

	// FIFO order
	for i, want := range requests {
		got, err := cq.Dequeue(ctx)
		if err != nil {
			t.Fatalf("Failed to dequeue request %d: %v", i, err)
		}
		if got == nil {
			t.Fatalf("Expected request %d, got nil", i)
		}
		if got.RequestID != want.RequestID || got.Type != want.Type {
			t.Errorf("Request %d: expected %s/%s, got %s/%s", i, want.RequestID, want.Type, got.RequestID, got.Type)
		}
		if got.EnqueuedAt.IsZero() {
			t.Errorf("Request %d: expected EnqueuedAt to be stamped", i)
		}
	}

	got, err := cq.Dequeue(ctx)
	if err != nil {
		t.Fatalf("Dequeue from empty queue should not error: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil from empty queue, got %+v", got)
	}
}

func TestCompletionQueue_FieldsSurviveRoundTrip(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	cq := NewCompletionQueue(client)
	ctx := context.Background()

	req := &queue.Request{
		RequestID:  "final",
		Type:       queue.RequestTypeCompletion,
		LevelID:    8,
		LevelTitle: "The Grand Finale",
		StoryPoint: "And so the adventure ended where it began.",
		Photos:     []string{"finale-1.jpg", "finale-2.jpg"},
		Final:      true,
		EnqueuedAt: time.Date(2026, 1, 2, 10, 30, 0, 0, time.UTC),
	}
	if err := cq.Enqueue(ctx, req); err != nil {
		t.Fatalf("Failed to enqueue: %v", err)
	}

	got, err := cq.Dequeue(ctx)
	if err != nil {
		t.Fatalf("Failed to dequeue: %v", err)
	}
	if got == nil {
		t.Fatal("Expected request, got nil")
	}
	if !got.Final {
		t.Error("Expected Final flag preserved")
	}
	if got.LevelID != 8 || len(got.Photos) != 2 {
		t.Errorf("Unexpected request %+v", got)
	}
	if !got.EnqueuedAt.Equal(req.EnqueuedAt) {
		t.Errorf("Expected EnqueuedAt %v preserved, got %v", req.EnqueuedAt, got.EnqueuedAt)
	}
}

func TestCompletionQueue_BlockingDequeue(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	cq := NewCompletionQueue(client)
	ctx := context.Background()

	if err := cq.Enqueue(ctx, &queue.Request{RequestID: "queued", Type: queue.RequestTypeCompletion, LevelID: 1}); err != nil {
		t.Fatalf("Failed to enqueue: %v", err)
	}

	got, err := cq.BlockingDequeue(ctx, time.Second)
	if err != nil {
		t.Fatalf("Failed to blocking dequeue: %v", err)
	}
	if got == nil || got.RequestID != "queued" {
		t.Errorf("Expected queued request, got %+v", got)
	}
}

func TestCompletionQueue_Clear(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	cq := NewCompletionQueue(client)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := cq.Enqueue(ctx, &queue.Request{Type: queue.RequestTypeCompletion, LevelID: i}); err != nil {
			t.Fatalf("Failed to enqueue: %v", err)
		}
	}

	if err := cq.Clear(ctx); err != nil {
		t.Fatalf("Failed to clear: %v", err)
	}

	depth, err := cq.Depth(ctx)
	if err != nil {
		t.Fatalf("Failed to get depth: %v", err)
	}
	if depth != 0 {
		t.Errorf("Expected empty queue after clear, got depth %d", depth)
	}
}
