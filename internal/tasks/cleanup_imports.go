package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// ImportRecordCleaner provides the ability to delete old import records.
type ImportRecordCleaner interface {
	DeleteOldRecords(retention time.Duration) (int64, error)
}

// CleanupImportRecordsTask removes finished import records older than the
// configured retention period.
type CleanupImportRecordsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for import record cleanup tasks.
func (t CleanupImportRecordsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_import_records",
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

// CleanupImportRecordsProcessor creates a processor function for CleanupImportRecordsTask.
func CleanupImportRecordsProcessor(cleaner ImportRecordCleaner) backlite.QueueProcessor[CleanupImportRecordsTask] {
	return func(ctx context.Context, task CleanupImportRecordsTask) error {
		if cleaner == nil {
			return fmt.Errorf("import record cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = 90
		}
		retention := time.Duration(retentionDays) * 24 * time.Hour

		deleted, err := cleaner.DeleteOldRecords(retention)
		if err != nil {
			return fmt.Errorf("cleanup import records: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d import records older than %d days", deleted, retentionDays)
		return nil
	}
}

// NewCleanupImportRecordsQueue creates a backlite queue for import record cleanup tasks.
func NewCleanupImportRecordsQueue(cleaner ImportRecordCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupImportRecordsProcessor(cleaner))
}
