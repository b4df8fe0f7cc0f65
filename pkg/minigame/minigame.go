// Package minigame defines the mini-game result payload and the rules that
// decide whether a result counts as a pass.
package minigame

import "encoding/json"

// GameType identifies a mini-game variant. The empty type marks level
// content with no mini-game attached.
type GameType string

const (
	TypeNone         GameType = ""
	TypeWordScramble GameType = "word-scramble"
	TypePhotoHunt    GameType = "photo-hunt"
	TypeMemoryMatch  GameType = "memory-match"
	TypeTrivia       GameType = "trivia"
	TypeMadLibs      GameType = "madlibs"
	TypeColorMatch   GameType = "color-match"
)

// DefaultPassingScore is the trivia pass threshold used when a result does
// not carry its own.
const DefaultPassingScore = 4

// Result is the outcome payload a mini-game reports when the player
// finishes an attempt. Only the fields relevant to the game type are set;
// the rest stay at their zero values.
type Result struct {
	Completed    bool     `json:"completed,omitempty"`
	Correct      bool     `json:"correct,omitempty"`
	AllMatched   bool     `json:"all_matched,omitempty"`
	ItemsFound   []bool   `json:"items_found,omitempty"`
	Score        int      `json:"score,omitempty"`
	PassingScore *int     `json:"passing_score,omitempty"`
	Photos       []string `json:"photos,omitempty"`
	Story        string   `json:"story,omitempty"`
}

// RawScore returns the result as an opaque score payload for persistence.
func (r Result) RawScore() json.RawMessage {
	data, _ := json.Marshal(r)
	return data
}

// rules maps each known game type to its pass predicate. Dispatch through
// the table keeps the set of recognized types in one place; anything not in
// the table fails closed.
var rules = map[GameType]func(Result) bool{
	TypeNone:         func(r Result) bool { return r.Completed },
	TypeWordScramble: func(r Result) bool { return r.Correct },
	TypePhotoHunt:    passPhotoHunt,
	TypeMemoryMatch:  func(r Result) bool { return r.AllMatched },
	TypeTrivia:       passTrivia,
	TypeMadLibs:      func(r Result) bool { return r.Completed },
	TypeColorMatch:   func(r Result) bool { return r.AllMatched },
}

func passPhotoHunt(r Result) bool {
	// Vacuously true on an empty checklist.
	for _, found := range r.ItemsFound {
		if !found {
			return false
		}
	}
	return true
}

func passTrivia(r Result) bool {
	passing := DefaultPassingScore
	if r.PassingScore != nil {
		passing = *r.PassingScore
	}
	return r.Score >= passing
}

// Known reports whether the game type has a completion rule. The empty
// type is known: it covers levels without a mini-game.
func Known(gameType GameType) bool {
	_, ok := rules[gameType]
	return ok
}

// IsCompleted reports whether a mini-game result satisfies the pass rule
// for its game type. Unrecognized types fail closed.
func IsCompleted(gameType GameType, result Result) bool {
	rule, ok := rules[gameType]
	if !ok {
		return false
	}
	return rule(result)
}
