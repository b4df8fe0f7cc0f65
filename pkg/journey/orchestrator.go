// Package journey drives a level attempt: it routes a mini-game result
// through the completion rules and, on success, advances progress and
// picks the next screen.
package journey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rbeaumont/questtrail/pkg/minigame"
	"github.com/rbeaumont/questtrail/pkg/progress"
	"github.com/rbeaumont/questtrail/pkg/quest"
)

// ErrLevelLocked is returned when an attempt targets a level whose
// predecessor has not been completed.
var ErrLevelLocked = errors.New("level is locked")

// Screen names the view the UI should transition to after an attempt.
type Screen string

const (
	// ScreenLevel keeps the player on the level for another try.
	ScreenLevel Screen = "level"
	// ScreenReward shows the level's reward before returning home.
	ScreenReward Screen = "reward"
	// ScreenSummary is the adventure summary, reached only from the
	// terminal level.
	ScreenSummary Screen = "summary"
)

// Outcome reports what an attempt produced.
type Outcome struct {
	LevelID         int              `json:"level_id"`
	Passed          bool             `json:"passed"`
	NextScreen      Screen           `json:"next_screen"`
	Congratulations string           `json:"congratulations,omitempty"`
	Record          *progress.Record `json:"record,omitempty"`
}

// Orchestrator owns the control flow for level attempts.
type Orchestrator struct {
	store  *progress.Store
	logger *slog.Logger
}

// New creates an orchestrator over the given progress store.
func New(store *progress.Store, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		store:  store,
		logger: logger,
	}
}

// CompleteAttempt evaluates a mini-game result for a level. A failed
// result leaves the level open with no progress mutation. A passing
// result completes the level, accumulates photos and story points, and
// names the next screen: the reward view, or the summary view when the
// level is the quest's terminal one.
func (o *Orchestrator) CompleteAttempt(ctx context.Context, q *quest.Quest, level *quest.Level, result minigame.Result) (Outcome, error) {
	if !o.store.IsUnlocked(ctx, level.ID) {
		return Outcome{}, fmt.Errorf("level %d: %w", level.ID, ErrLevelLocked)
	}

	if !minigame.IsCompleted(level.GameType(), result) {
		o.logger.Debug("Attempt did not pass, level stays open",
			"level", level.ID, "game_type", level.GameType())
		return Outcome{LevelID: level.ID, NextScreen: ScreenLevel}, nil
	}

	if len(result.Photos) > 0 {
		if err := o.store.SavePhotos(ctx, level.ID, result.Photos); err != nil {
			return Outcome{}, err
		}
	}
	if result.Story != "" {
		if err := o.store.SaveStoryPoint(ctx, result.Story); err != nil {
			return Outcome{}, err
		}
	}
	if err := o.store.SaveGameScore(ctx, level.ID, result.RawScore()); err != nil {
		return Outcome{}, err
	}

	rec, err := o.store.CompleteLevel(ctx, level.ID)
	if err != nil {
		return Outcome{}, err
	}

	if level.Rewards != nil && level.Rewards.Message != "" {
		if err := o.store.SaveStoryPoint(ctx, level.Rewards.Message); err != nil {
			return Outcome{}, err
		}
		rec = o.store.Load(ctx)
	}

	// The terminal level skips the reward view and goes straight to the
	// adventure summary. Single fixed id from the catalog, not a rule.
	next := ScreenReward
	if level.ID == q.Final() {
		next = ScreenSummary
	}

	return Outcome{
		LevelID:         level.ID,
		Passed:          true,
		NextScreen:      next,
		Congratulations: quest.Congratulations(level.ID),
		Record:          rec,
	}, nil
}
