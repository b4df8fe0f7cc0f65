// Package progress owns the persisted adventure progress record and the
// store that mediates every mutation of it.
package progress

import (
	"encoding/json"
	"slices"
	"time"
)

// Record is the single persisted progress document for an adventure.
// All mutation goes through Store operations; the invariants below are
// never enforced by raw field edits.
//
// Invariants:
//   - CurrentLevel is max(CompletedLevels)+1, or 1 when none are complete.
//   - CompletedLevels only grows; the sole removal path is a full reset.
//   - StoryPoints never holds duplicate entries.
type Record struct {
	CurrentLevel    int                     `json:"current_level"`
	CompletedLevels []int                   `json:"completed_levels"`
	UploadedPhotos  map[int][]string        `json:"uploaded_photos"`
	GameProgress    map[int]json.RawMessage `json:"game_progress"`
	StoryPoints     []string                `json:"story_points"`
	StartTime       time.Time               `json:"start_time"`
}

// NewRecord returns a fresh record positioned at level 1. StartTime is set
// once here and never mutated afterwards.
func NewRecord() *Record {
	return &Record{
		CurrentLevel:    1,
		CompletedLevels: make([]int, 0),
		UploadedPhotos:  make(map[int][]string),
		GameProgress:    make(map[int]json.RawMessage),
		StoryPoints:     make([]string, 0),
		StartTime:       time.Now().UTC(),
	}
}

// IsCompleted reports whether the level has been finished.
func (r *Record) IsCompleted(levelID int) bool {
	return slices.Contains(r.CompletedLevels, levelID)
}

// IsUnlocked reports whether the level may be attempted. Level 1 is always
// open; every other level requires its predecessor to be complete.
func (r *Record) IsUnlocked(levelID int) bool {
	if levelID == 1 {
		return true
	}
	return r.IsCompleted(levelID - 1)
}

// CompleteLevel marks the level finished and advances CurrentLevel.
// Completing the same level twice is a no-op.
func (r *Record) CompleteLevel(levelID int) {
	if r.IsCompleted(levelID) {
		return
	}
	r.CompletedLevels = append(r.CompletedLevels, levelID)
	r.CurrentLevel = levelID + 1
}

// AddStoryPoint appends a narrative fragment unless an identical one is
// already recorded. Returns true when the fragment was added.
func (r *Record) AddStoryPoint(text string) bool {
	if slices.Contains(r.StoryPoints, text) {
		return false
	}
	r.StoryPoints = append(r.StoryPoints, text)
	return true
}

// AllPhotos returns every uploaded photo reference in ascending level-id
// order, so replay output is deterministic.
func (r *Record) AllPhotos() []string {
	levels := make([]int, 0, len(r.UploadedPhotos))
	for id := range r.UploadedPhotos {
		levels = append(levels, id)
	}
	slices.Sort(levels)

	photos := make([]string, 0)
	for _, id := range levels {
		photos = append(photos, r.UploadedPhotos[id]...)
	}
	return photos
}
