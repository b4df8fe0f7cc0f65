package queue

import (
	"encoding/json"
	"time"
)

// RequestType identifies the type of request in the queue
type RequestType string

const (
	// RequestTypeCompletion is emitted when a level is completed
	RequestTypeCompletion RequestType = "completion"

	// RequestTypeReset is emitted when all progress is discarded
	RequestTypeReset RequestType = "reset"
)

// Request represents a unified request in the queue
type Request struct {
	RequestID string      `json:"request_id"`
	Type      RequestType `json:"type"`

	// Completion-specific fields
	LevelID    int      `json:"level_id,omitempty"`
	LevelTitle string   `json:"level_title,omitempty"`
	StoryPoint string   `json:"story_point,omitempty"`
	Photos     []string `json:"photos,omitempty"`
	Final      bool     `json:"final,omitempty"`

	EnqueuedAt time.Time `json:"enqueued_at"`
}

// ToJSON converts the request to JSON bytes for Redis
func (r *Request) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

// FromJSON parses a request from JSON bytes
func FromJSON(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
