// Package quest defines the level catalog: the ordered, gated units of
// content that make up an adventure.
package quest

import (
	"encoding/json"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rbeaumont/questtrail/pkg/minigame"
	"github.com/rbeaumont/questtrail/pkg/navigation"
)

// MiniGame attaches a bounded challenge to a level. Data is opaque to the
// core; each game's UI interprets its own payload.
type MiniGame struct {
	Type minigame.GameType `json:"type"`
	Data json.RawMessage   `json:"data,omitempty"`
}

// Rewards describes what finishing a level unlocks.
type Rewards struct {
	Message string `json:"message,omitempty"`
	Photo   string `json:"photo,omitempty"`
}

// Level is one gated unit of content.
type Level struct {
	ID          int                     `json:"id"`
	Title       string                  `json:"title"`
	StoryText   string                  `json:"story_text,omitempty"`
	UnlockTime  string                  `json:"unlock_time,omitempty"` // e.g. "10:30 AM"
	MiniGame    *MiniGame               `json:"mini_game,omitempty"`
	Destination *navigation.Destination `json:"destination,omitempty"`
	Rewards     *Rewards                `json:"rewards,omitempty"`
}

// GameType returns the level's mini-game type, or the empty type when the
// level has no mini-game.
func (l *Level) GameType() minigame.GameType {
	if l.MiniGame == nil {
		return minigame.TypeNone
	}
	return l.MiniGame.Type
}

// Quest is an adventure: an ordered sequence of levels plus presentation
// metadata.
type Quest struct {
	Name        string  `json:"name"`
	FileName    string  `json:"file_name,omitempty"`
	Description string  `json:"description,omitempty"`
	PartnerName string  `json:"partner_name,omitempty"`
	FinalLevel  int     `json:"final_level,omitempty"`
	Levels      []Level `json:"levels"`
}

// Level returns the level with the given id, or nil.
func (q *Quest) Level(id int) *Level {
	for i := range q.Levels {
		if q.Levels[i].ID == id {
			return &q.Levels[i]
		}
	}
	return nil
}

// Final returns the terminal level id: the single level that routes
// straight to the adventure summary instead of a reward screen. Defaults
// to the last level in the catalog.
func (q *Quest) Final() int {
	if q.FinalLevel != 0 {
		return q.FinalLevel
	}
	if len(q.Levels) == 0 {
		return 0
	}
	return q.Levels[len(q.Levels)-1].ID
}

var titleCaser = cases.Title(language.English)

// DisplayName returns the quest name title-cased for UI surfaces.
func (q *Quest) DisplayName() string {
	return titleCaser.String(q.Name)
}

// Validate checks catalog structure: ids start at 1 and increase by one,
// game types are recognized, and destinations carry sane coordinates.
func (q *Quest) Validate() error {
	if q.Name == "" {
		return fmt.Errorf("quest name is required")
	}
	if len(q.Levels) == 0 {
		return fmt.Errorf("quest must contain at least one level")
	}

	for i := range q.Levels {
		l := &q.Levels[i]
		if l.ID != i+1 {
			return fmt.Errorf("level %d: expected id %d (ids must be sequential from 1)", l.ID, i+1)
		}
		if l.Title == "" {
			return fmt.Errorf("level %d: title is required", l.ID)
		}
		if l.MiniGame != nil && !minigame.Known(l.MiniGame.Type) {
			return fmt.Errorf("level %d: unknown mini-game type %q", l.ID, l.MiniGame.Type)
		}
		if d := l.Destination; d != nil {
			if d.Lat < -90 || d.Lat > 90 {
				return fmt.Errorf("level %d: latitude %v out of range", l.ID, d.Lat)
			}
			if d.Lng < -180 || d.Lng > 180 {
				return fmt.Errorf("level %d: longitude %v out of range", l.ID, d.Lng)
			}
			if d.ArrivalRadius < 0 {
				return fmt.Errorf("level %d: negative arrival radius", l.ID)
			}
		}
	}

	if q.FinalLevel != 0 && q.Level(q.FinalLevel) == nil {
		return fmt.Errorf("final level %d is not in the catalog", q.FinalLevel)
	}
	return nil
}

// congratulations holds the per-level completion messages, with a generic
// fallback for levels past the scripted set.
var congratulations = map[int]string{
	1: "Amazing! Ready for the next adventure? 💕",
	2: "You did it! The journey continues... 🌟",
	3: "Perfect! You're doing great! 📸",
	4: "Wonderful! Keep going! 🎨",
	5: "Fantastic! Almost there! ✨",
	6: "Beautiful! The best is yet to come! 🌅",
	7: "Incredible! One more to go! 🎉",
	8: "You completed our entire adventure! 💖",
}

// Congratulations returns the completion message for a level.
func Congratulations(levelID int) string {
	if msg, ok := congratulations[levelID]; ok {
		return msg
	}
	return "Great job! 🎊"
}
