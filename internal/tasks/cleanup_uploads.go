package tasks

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mikestefanello/backlite"
)

// CleanupUploadDirsTask removes upload scratch directories that were left
// behind by interrupted imports. A directory is considered stale once its
// modification time is older than MaxAgeMinutes.
type CleanupUploadDirsTask struct {
	UploadDir     string `json:"upload_dir"`
	MaxAgeMinutes int    `json:"max_age_minutes"`
}

// Config returns the queue configuration for upload directory cleanup tasks.
func (t CleanupUploadDirsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_upload_dirs",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupUploadDirsProcessor creates a processor function for CleanupUploadDirsTask.
func CleanupUploadDirsProcessor() backlite.QueueProcessor[CleanupUploadDirsTask] {
	return func(ctx context.Context, task CleanupUploadDirsTask) error {
		if task.UploadDir == "" {
			return fmt.Errorf("upload directory not configured")
		}

		maxAge := time.Duration(task.MaxAgeMinutes) * time.Minute
		if maxAge <= 0 {
			maxAge = 6 * time.Hour
		}
		cutoff := time.Now().Add(-maxAge)

		entries, err := os.ReadDir(task.UploadDir)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read upload directory: %w", err)
		}

		var removed int
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil || info.ModTime().After(cutoff) {
				continue
			}
			if err := os.RemoveAll(filepath.Join(task.UploadDir, entry.Name())); err == nil {
				removed++
			}
		}

		log.Printf("[TASK] Removed %d stale upload directories from %s", removed, task.UploadDir)
		return nil
	}
}

// NewCleanupUploadDirsQueue creates a backlite queue for upload directory cleanup tasks.
func NewCleanupUploadDirsQueue() backlite.Queue {
	return backlite.NewQueue(CleanupUploadDirsProcessor())
}
