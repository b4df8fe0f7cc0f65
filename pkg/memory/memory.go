// Package memory defines the replayable memory timeline built up as an
// adventure is completed.
package memory

import "time"

// Entry is one moment in the memory timeline: a completed level with the
// narrative and photos it contributed.
type Entry struct {
	LevelID     int       `json:"level_id"`
	Title       string    `json:"title"`
	StoryPoint  string    `json:"story_point,omitempty"`
	Photos      []string  `json:"photos,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}
