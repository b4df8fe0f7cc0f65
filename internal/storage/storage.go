package storage

import (
	"context"

	"github.com/rbeaumont/questtrail/pkg/memory"
	"github.com/rbeaumont/questtrail/pkg/quest"
)

// Storage defines a unified interface for all storage operations.
// It combines blob persistence (Redis) with quest catalog loading
// (filesystem) and the memory timeline.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error
	WaitForConnection(ctx context.Context) error

	// Blob persistence, the capability behind progress.Store.
	// Get returns the empty string when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error

	// Quest catalog operations (filesystem-backed)
	ListQuests(ctx context.Context) (map[string]string, error)
	GetQuest(ctx context.Context, filename string) (*quest.Quest, error)

	// Memory timeline operations (Redis-backed)
	AppendMemory(ctx context.Context, entry memory.Entry) error
	ListMemories(ctx context.Context) ([]memory.Entry, error)
	ClearMemories(ctx context.Context) error
}
