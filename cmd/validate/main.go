package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rbeaumont/questtrail/pkg/quest"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <quest.json>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &QuestValidator{}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Quest file is valid!")
}

type QuestValidator struct {
	errors []string
}

func (v *QuestValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	// Validate filename format
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("quest file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidQuestFilename(nameWithoutExt) {
		return fmt.Errorf("quest filename '%s' must be lowercase snake_case (e.g., winter_adventure.json, not WinterAdventure.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var q quest.Quest
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&q); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.validateQuest(&q)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *QuestValidator) validateQuest(q *quest.Quest) {
	if err := q.Validate(); err != nil {
		v.addError(err.Error())
	}

	for i := range q.Levels {
		v.validateLevel(&q.Levels[i])
	}
}

func (v *QuestValidator) validateLevel(l *quest.Level) {
	if l.UnlockTime != "" {
		if !isValidClockTime(l.UnlockTime) {
			v.addError(fmt.Sprintf("level %d has unparseable unlock_time '%s' - expected a time like '10:30 AM'", l.ID, l.UnlockTime))
		}
	}

	if l.MiniGame != nil && len(l.MiniGame.Data) > 0 && !json.Valid(l.MiniGame.Data) {
		v.addError(fmt.Sprintf("level %d has invalid mini_game data payload", l.ID))
	}

	if l.Destination != nil && l.Destination.ArrivalMessage == "" {
		v.addError(fmt.Sprintf("level %d destination has no arrival_message", l.ID))
	}
}

func (v *QuestValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidQuestFilename(name string) bool {
	// Allow 'x.' prefix for experimental quests
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}

func isValidClockTime(s string) bool {
	_, ok := quest.TimeUntil(s, time.Now())
	return ok
}
