package handlers

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/rbeaumont/questtrail/internal/storage"
	"github.com/rbeaumont/questtrail/pkg/minigame"
	"github.com/rbeaumont/questtrail/pkg/quest"
	"github.com/rbeaumont/questtrail/pkg/queue"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeEnqueuer records enqueued requests for assertions
type fakeEnqueuer struct {
	requests []*queue.Request
	err      error
}

func (f *fakeEnqueuer) Enqueue(ctx context.Context, req *queue.Request) error {
	if f.err != nil {
		return f.err
	}
	f.requests = append(f.requests, req)
	return nil
}

func testQuestFixture() *quest.Quest {
	return &quest.Quest{
		Name:     "winter adventure",
		FileName: "winter_adventure.json",
		Levels: []quest.Level{
			{
				ID:    1,
				Title: "The First Clue",
				MiniGame: &quest.MiniGame{
					Type: minigame.TypeWordScramble,
				},
			},
			{
				ID:    2,
				Title: "Memory Lane",
				MiniGame: &quest.MiniGame{
					Type: minigame.TypeMemoryMatch,
				},
			},
			{
				ID:    3,
				Title: "The Grand Finale",
			},
		},
	}
}

func testStorageWithQuest(t *testing.T) *storage.MockStorage {
	t.Helper()
	mock := storage.NewMockStorage()
	mock.AddQuest("winter_adventure.json", testQuestFixture())
	return mock
}
