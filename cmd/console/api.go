package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/google/uuid"

	"github.com/rbeaumont/questtrail/pkg/journey"
	"github.com/rbeaumont/questtrail/pkg/memory"
	"github.com/rbeaumont/questtrail/pkg/minigame"
	"github.com/rbeaumont/questtrail/pkg/navigation"
	"github.com/rbeaumont/questtrail/pkg/progress"
	"github.com/rbeaumont/questtrail/pkg/quest"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func readBody(resp *http.Response, action string) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to %s: %s", action, errorResp.Error)
	}
	return body, nil
}

func listQuests(client *http.Client, baseURL string) ([]string, map[string]string, error) {
	resp, err := client.Get(baseURL + "/v1/quests")
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := readBody(resp, "list quests")
	if err != nil {
		return nil, nil, err
	}

	var questMap map[string]string
	if err := json.Unmarshal(body, &questMap); err != nil {
		return nil, nil, err
	}

	var names []string
	for name := range questMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, questMap, nil
}

func getQuest(client *http.Client, baseURL string, questFile string) (*quest.Quest, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/quests/%s", baseURL, questFile))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := readBody(resp, "get quest")
	if err != nil {
		return nil, err
	}

	var q quest.Quest
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, fmt.Errorf("failed to parse quest response: %w", err)
	}
	return &q, nil
}

func getProgress(client *http.Client, baseURL string) (*progress.Record, error) {
	resp, err := client.Get(baseURL + "/v1/progress")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := readBody(resp, "get progress")
	if err != nil {
		return nil, err
	}

	var rec progress.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse progress response: %w", err)
	}
	return &rec, nil
}

func resetProgress(client *http.Client, baseURL string) error {
	req, err := http.NewRequest(http.MethodDelete, baseURL+"/v1/progress", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if _, err := readBody(resp, "reset progress"); err != nil {
		return err
	}
	return nil
}

func getMemories(client *http.Client, baseURL string) ([]memory.Entry, error) {
	resp, err := client.Get(baseURL + "/v1/memories")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := readBody(resp, "get memories")
	if err != nil {
		return nil, err
	}

	var entries []memory.Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse memories response: %w", err)
	}
	return entries, nil
}

// AttemptRequest matches the API request structure
type AttemptRequest struct {
	Quest   string          `json:"quest"`
	LevelID int             `json:"level_id"`
	Result  minigame.Result `json:"result"`
}

func submitAttempt(client *http.Client, baseURL string, questFile string, levelID int, result minigame.Result) (*journey.Outcome, error) {
	req := AttemptRequest{
		Quest:   questFile,
		LevelID: levelID,
		Result:  result,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/attempts",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := readBody(resp, "submit attempt")
	if err != nil {
		return nil, err
	}

	var outcome journey.Outcome
	if err := json.Unmarshal(body, &outcome); err != nil {
		return nil, fmt.Errorf("failed to parse attempt response: %w", err)
	}
	return &outcome, nil
}

// CreateSessionRequest matches the API request structure
type CreateSessionRequest struct {
	Quest   string `json:"quest,omitempty"`
	LevelID int    `json:"level_id,omitempty"`
}

func createNavigationSession(client *http.Client, baseURL string, questFile string, levelID int) (*navigation.Snapshot, error) {
	req := CreateSessionRequest{
		Quest:   questFile,
		LevelID: levelID,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/navigation",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := readBody(resp, "create navigation session")
	if err != nil {
		return nil, err
	}

	var snap navigation.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	return &snap, nil
}

func postPosition(client *http.Client, baseURL string, sessionID uuid.UUID, lat, lng float64) (*navigation.Snapshot, error) {
	jsonData, err := json.Marshal(map[string]float64{"lat": lat, "lng": lng})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/navigation/%s/position", baseURL, sessionID),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := readBody(resp, "post position")
	if err != nil {
		return nil, err
	}

	var snap navigation.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	return &snap, nil
}

func manualCheckIn(client *http.Client, baseURL string, sessionID uuid.UUID) (*navigation.Snapshot, error) {
	resp, err := client.Post(
		fmt.Sprintf("%s/v1/navigation/%s/checkin", baseURL, sessionID),
		"application/json",
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := readBody(resp, "check in")
	if err != nil {
		return nil, err
	}

	var snap navigation.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	return &snap, nil
}
