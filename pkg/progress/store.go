package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// StorageKey is the single fixed key the whole progress record lives under.
const StorageKey = "progress:adventure"

// Persistence is the capability the store needs from its backing storage:
// a blob per key. Get returns the empty string when the key is absent.
type Persistence interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// Store owns the canonical progress record. Every operation is a full
// read-modify-write of the record through the persistence capability, so
// callers never hold a stale copy across mutations.
type Store struct {
	persistence Persistence
	logger      *slog.Logger
}

// NewStore creates a progress store backed by the given persistence.
func NewStore(p Persistence, logger *slog.Logger) *Store {
	return &Store{
		persistence: p,
		logger:      logger,
	}
}

// Load returns the persisted record, or a fresh default record when none
// is stored or the stored blob does not parse. Corruption is recovered
// locally and never surfaced to the caller; the default is not persisted
// until the first mutation.
func (s *Store) Load(ctx context.Context) *Record {
	data, err := s.persistence.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Error("Failed to read progress, starting fresh", "error", err)
		return NewRecord()
	}
	if data == "" {
		return NewRecord()
	}

	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		s.logger.Warn("Stored progress is unreadable, starting fresh", "error", err)
		return NewRecord()
	}

	// Maps stay non-nil so mutation paths never need to check.
	if rec.UploadedPhotos == nil {
		rec.UploadedPhotos = make(map[int][]string)
	}
	if rec.GameProgress == nil {
		rec.GameProgress = make(map[int]json.RawMessage)
	}
	return &rec
}

func (s *Store) save(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := s.persistence.Set(ctx, StorageKey, string(data)); err != nil {
		s.logger.Error("Failed to save progress", "error", err)
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// CompleteLevel marks the level finished and persists the record. Calling
// it again for the same level re-saves the unchanged record, which is
// harmless.
func (s *Store) CompleteLevel(ctx context.Context, levelID int) (*Record, error) {
	rec := s.Load(ctx)
	rec.CompleteLevel(levelID)
	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Info("Level completed", "level", levelID, "current_level", rec.CurrentLevel)
	return rec, nil
}

// IsUnlocked reports whether the level may be attempted.
func (s *Store) IsUnlocked(ctx context.Context, levelID int) bool {
	return s.Load(ctx).IsUnlocked(levelID)
}

// SaveGameScore records the last score payload for a level, overwriting
// any previous attempt.
func (s *Store) SaveGameScore(ctx context.Context, levelID int, score json.RawMessage) error {
	rec := s.Load(ctx)
	rec.GameProgress[levelID] = score
	return s.save(ctx, rec)
}

// SavePhotos replaces the photo list for a level. Retrying a level
// overwrites its photos rather than appending.
func (s *Store) SavePhotos(ctx context.Context, levelID int, photos []string) error {
	rec := s.Load(ctx)
	rec.UploadedPhotos[levelID] = photos
	return s.save(ctx, rec)
}

// SaveStoryPoint appends a narrative fragment unless an identical one is
// already stored.
func (s *Store) SaveStoryPoint(ctx context.Context, text string) error {
	rec := s.Load(ctx)
	if !rec.AddStoryPoint(text) {
		return nil
	}
	return s.save(ctx, rec)
}

// AllPhotos returns every uploaded photo in ascending level order.
func (s *Store) AllPhotos(ctx context.Context) []string {
	return s.Load(ctx).AllPhotos()
}

// Reset discards all persisted progress. The next Load returns defaults.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.persistence.Delete(ctx, StorageKey); err != nil {
		s.logger.Error("Failed to reset progress", "error", err)
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	s.logger.Info("Progress reset")
	return nil
}
