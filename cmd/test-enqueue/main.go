package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	queueSvc "github.com/rbeaumont/questtrail/internal/services/queue"
	"github.com/rbeaumont/questtrail/pkg/queue"
)

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	client, err := queueSvc.NewClient("redis://"+redisURL, logger)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer client.Close()

	fmt.Println("Connected to Redis successfully!")

	completions := queueSvc.NewCompletionQueue(client)
	ctx := context.Background()

	// Enqueue a test completion request
	completionReq := &queue.Request{
		RequestID:  uuid.New().String(),
		Type:       queue.RequestTypeCompletion,
		LevelID:    1,
		LevelTitle: "The First Clue",
		StoryPoint: "It began with a riddle taped under the kitchen table.",
		Photos:     []string{"clue.jpg"},
		EnqueuedAt: time.Now().UTC(),
	}
	if err := completions.Enqueue(ctx, completionReq); err != nil {
		log.Fatal("Failed to enqueue request:", err)
	}
	fmt.Printf("✅ Enqueued completion request: %s\n", completionReq.RequestID)

	// Enqueue a final-level completion
	finalReq := &queue.Request{
		RequestID:  uuid.New().String(),
		Type:       queue.RequestTypeCompletion,
		LevelID:    8,
		LevelTitle: "The Grand Finale",
		StoryPoint: "And so the adventure ended where it began.",
		Final:      true,
		EnqueuedAt: time.Now().UTC(),
	}
	if err := completions.Enqueue(ctx, finalReq); err != nil {
		log.Fatal("Failed to enqueue request:", err)
	}
	fmt.Printf("✅ Enqueued final completion request: %s\n", finalReq.RequestID)

	// Check queue depth
	depth, err := completions.Depth(ctx)
	if err != nil {
		log.Fatal("Failed to get queue depth:", err)
	}

	fmt.Printf("\n📊 Queue depth: %d requests\n", depth)
	fmt.Println("\n💡 Now start the worker to see it process these requests!")
	fmt.Println("   Run: go run cmd/worker/main.go")
}
