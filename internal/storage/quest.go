package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rbeaumont/questtrail/pkg/quest"
)

// Quest catalog operations (filesystem-backed)

func (r *RedisStorage) ListQuests(ctx context.Context) (map[string]string, error) {
	questsDir := filepath.Join(r.dataDir, "quests")
	quests := make(map[string]string)

	err := filepath.WalkDir(questsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		file, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("Failed to read quest file", "path", path, "error", err)
			return nil
		}

		var q quest.Quest
		if err := json.Unmarshal(file, &q); err != nil {
			r.logger.Warn("Failed to unmarshal quest file", "path", path, "error", err)
			return nil
		}

		filename := filepath.Base(path)
		quests[q.Name] = filename
		return nil
	})

	if err != nil {
		r.logger.Error("Failed to walk quests directory", "error", err)
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}

	return quests, nil
}

func (r *RedisStorage) GetQuest(ctx context.Context, filename string) (*quest.Quest, error) {
	path := filepath.Join(r.dataDir, "quests", filename)
	r.logger.Debug("Loading quest", "filename", filename, "full_path", path)

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Error("Quest file not found", "path", path, "error", err)
			return nil, fmt.Errorf("quest not found: %s", filename)
		}
		return nil, fmt.Errorf("failed to read quest file: %w", err)
	}

	var q quest.Quest
	if err := json.Unmarshal(file, &q); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quest: %w", err)
	}
	q.FileName = filename

	return &q, nil
}
