package quest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rbeaumont/questtrail/pkg/minigame"
	"github.com/rbeaumont/questtrail/pkg/navigation"
)

func testQuest() *Quest {
	return &Quest{
		Name: "winter adventure",
		Levels: []Level{
			{ID: 1, Title: "The First Clue", MiniGame: &MiniGame{Type: minigame.TypeWordScramble}},
			{ID: 2, Title: "Scavenger Walk", MiniGame: &MiniGame{Type: minigame.TypePhotoHunt},
				Destination: &navigation.Destination{Lat: 52.5163, Lng: 13.3777}},
			{ID: 3, Title: "The Finale"},
		},
	}
}

func TestQuest_Level(t *testing.T) {
	q := testQuest()

	if l := q.Level(2); l == nil || l.Title != "Scavenger Walk" {
		t.Errorf("Expected level 2 'Scavenger Walk', got %+v", l)
	}
	if l := q.Level(99); l != nil {
		t.Errorf("Expected nil for missing level, got %+v", l)
	}
}

func TestQuest_FinalDefaultsToLastLevel(t *testing.T) {
	q := testQuest()
	if got := q.Final(); got != 3 {
		t.Errorf("Expected final level 3, got %d", got)
	}

	q.FinalLevel = 2
	if got := q.Final(); got != 2 {
		t.Errorf("Expected explicit final level 2, got %d", got)
	}
}

func TestLevel_GameType(t *testing.T) {
	q := testQuest()

	if gt := q.Level(1).GameType(); gt != minigame.TypeWordScramble {
		t.Errorf("Expected word-scramble, got %q", gt)
	}
	if gt := q.Level(3).GameType(); gt != minigame.TypeNone {
		t.Errorf("Expected empty game type for level without mini-game, got %q", gt)
	}
}

func TestQuest_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Quest)
		expectError bool
	}{
		{
			name:        "valid quest",
			mutate:      func(q *Quest) {},
			expectError: false,
		},
		{
			name:        "missing name",
			mutate:      func(q *Quest) { q.Name = "" },
			expectError: true,
		},
		{
			name:        "no levels",
			mutate:      func(q *Quest) { q.Levels = nil },
			expectError: true,
		},
		{
			name:        "non-sequential ids",
			mutate:      func(q *Quest) { q.Levels[1].ID = 5 },
			expectError: true,
		},
		{
			name:        "unknown game type",
			mutate:      func(q *Quest) { q.Levels[0].MiniGame.Type = "speed-chess" },
			expectError: true,
		},
		{
			name:        "latitude out of range",
			mutate:      func(q *Quest) { q.Levels[1].Destination.Lat = 91 },
			expectError: true,
		},
		{
			name:        "final level not in catalog",
			mutate:      func(q *Quest) { q.FinalLevel = 9 },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := testQuest()
			tt.mutate(q)
			err := q.Validate()
			if tt.expectError && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected valid quest, got error: %v", err)
			}
		})
	}
}

func TestQuest_UnmarshalLevel(t *testing.T) {
	data := `{
		"id": 1,
		"title": "The First Clue",
		"story_text": "It all began here.",
		"mini_game": {"type": "trivia", "data": {"passing_score": 3}},
		"destination": {"lat": 52.5163, "lng": 13.3777, "arrival_radius": 30},
		"rewards": {"message": "You found it!"}
	}`

	var l Level
	if err := json.Unmarshal([]byte(data), &l); err != nil {
		t.Fatalf("Failed to unmarshal level: %v", err)
	}
	if l.GameType() != minigame.TypeTrivia {
		t.Errorf("Expected trivia, got %q", l.GameType())
	}
	if l.Destination.Radius() != 30 {
		t.Errorf("Expected radius 30, got %v", l.Destination.Radius())
	}
	if l.Rewards.Message != "You found it!" {
		t.Errorf("Unexpected reward message %q", l.Rewards.Message)
	}
}

func TestTimeUntil(t *testing.T) {
	now := time.Date(2024, 12, 24, 9, 0, 0, 0, time.UTC)

	c, ok := TimeUntil("10:30 AM", now)
	if !ok {
		t.Fatal("Expected parseable target")
	}
	if c.Passed {
		t.Error("Target should not have passed")
	}
	if c.Formatted() != "1h 30m" {
		t.Errorf("Expected '1h 30m', got %q", c.Formatted())
	}

	c, ok = TimeUntil("8:00 AM", now)
	if !ok || !c.Passed {
		t.Errorf("Expected passed countdown, got %+v ok=%v", c, ok)
	}

	if _, ok := TimeUntil("", now); ok {
		t.Error("Empty target should not parse")
	}
	if _, ok := TimeUntil("not a time", now); ok {
		t.Error("Garbage target should not parse")
	}
}

func TestCongratulations(t *testing.T) {
	if msg := Congratulations(8); msg != "You completed our entire adventure! 💖" {
		t.Errorf("Unexpected final level message %q", msg)
	}
	if msg := Congratulations(42); msg != "Great job! 🎊" {
		t.Errorf("Expected fallback message, got %q", msg)
	}
}
