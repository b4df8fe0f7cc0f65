package quest

import (
	"fmt"
	"strings"
	"time"
)

// Countdown describes how long remains until a level's scheduled unlock
// time today.
type Countdown struct {
	Passed    bool
	Remaining time.Duration
}

// Formatted renders the remaining time as "2h 5m" or "45m".
func (c Countdown) Formatted() string {
	mins := int(c.Remaining.Minutes())
	if mins >= 60 {
		return fmt.Sprintf("%dh %dm", mins/60, mins%60)
	}
	return fmt.Sprintf("%dm", mins)
}

// TimeUntil parses a clock time like "10:30 AM" and returns the countdown
// from now until that time today. Returns false when the target is empty
// or unparseable.
func TimeUntil(target string, now time.Time) (Countdown, bool) {
	if target == "" {
		return Countdown{}, false
	}

	parsed, err := time.Parse("3:04 PM", strings.ToUpper(strings.TrimSpace(target)))
	if err != nil {
		return Countdown{}, false
	}

	unlock := time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location())

	if !unlock.After(now) {
		return Countdown{Passed: true}, true
	}
	return Countdown{Remaining: unlock.Sub(now)}, true
}
