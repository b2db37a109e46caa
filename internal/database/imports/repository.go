// Package imports provides database operations for import records.
package imports

import (
	"time"

	"gorm.io/gorm"

	"github.com/notehive/notehive/internal/entities"
)

// Repository handles import record database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new import records repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new pending import record.
func (r *Repository) Create(record *entities.ImportRecord) error {
	if record.StartedAt.IsZero() {
		record.StartedAt = time.Now()
	}
	if record.Status == "" {
		record.Status = entities.ImportStatusPending
	}
	return r.db.Create(record).Error
}

// Complete marks a record as finished and stores the final counts.
func (r *Repository) Complete(record *entities.ImportRecord) error {
	now := time.Now()
	record.CompletedAt = &now
	return r.db.Save(record).Error
}

// ListForUser returns the most recent import records for a user.
func (r *Repository) ListForUser(userID uint, limit int) ([]entities.ImportRecord, error) {
	var records []entities.ImportRecord
	query := r.db.Where("user_id = ?", userID).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}

// DeleteOldRecords removes completed records older than the retention
// period. Returns the number of rows deleted.
func (r *Repository) DeleteOldRecords(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	result := r.db.Where("started_at < ? AND status <> ?", cutoff, entities.ImportStatusPending).
		Delete(&entities.ImportRecord{})
	return result.RowsAffected, result.Error
}
