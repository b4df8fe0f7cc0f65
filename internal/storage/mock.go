package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/rbeaumont/questtrail/pkg/memory"
	"github.com/rbeaumont/questtrail/pkg/quest"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu        sync.RWMutex
	blobs     map[string]string
	quests    map[string]*quest.Quest
	memories  []memory.Entry
	pingError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		blobs:  make(map[string]string),
		quests: make(map[string]*quest.Quest),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// AddQuest registers a quest under a filename for GetQuest/ListQuests
func (m *MockStorage) AddQuest(filename string, q *quest.Quest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quests[filename] = q
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) WaitForConnection(ctx context.Context) error {
	return m.Ping(ctx)
}

func (m *MockStorage) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.blobs[key], nil
}

func (m *MockStorage) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = value
	return nil
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *MockStorage) ListQuests(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	quests := make(map[string]string, len(m.quests))
	for filename, q := range m.quests {
		quests[q.Name] = filename
	}
	return quests, nil
}

func (m *MockStorage) GetQuest(ctx context.Context, filename string) (*quest.Quest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quests[filename]
	if !ok {
		return nil, fmt.Errorf("quest not found: %s", filename)
	}
	return q, nil
}

func (m *MockStorage) AppendMemory(ctx context.Context, entry memory.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memories = append(m.memories, entry)
	return nil
}

func (m *MockStorage) ListMemories(ctx context.Context) ([]memory.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]memory.Entry, len(m.memories))
	copy(entries, m.memories)
	return entries, nil
}

func (m *MockStorage) ClearMemories(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memories = nil
	return nil
}
