package imports

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/notehive/notehive/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_imports_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.ImportRecord{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func TestRepository_CreateDefaults(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	record := &entities.ImportRecord{UserID: 1}
	require.NoError(t, repo.Create(record))

	assert.NotZero(t, record.ID)
	assert.Equal(t, entities.ImportStatusPending, record.Status)
	assert.False(t, record.StartedAt.IsZero())
	assert.Nil(t, record.CompletedAt)
}

func TestRepository_Complete(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	record := &entities.ImportRecord{UserID: 1}
	require.NoError(t, repo.Create(record))

	record.Status = entities.ImportStatusCompleted
	record.NotesImported = 12
	record.AttachmentsImported = 3
	require.NoError(t, repo.Complete(record))

	records, err := repo.ListForUser(1, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, entities.ImportStatusCompleted, records[0].Status)
	assert.Equal(t, 12, records[0].NotesImported)
	assert.Equal(t, 3, records[0].AttachmentsImported)
	assert.NotNil(t, records[0].CompletedAt)
}

func TestRepository_ListForUser(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&entities.ImportRecord{UserID: 1}))
	}
	require.NoError(t, repo.Create(&entities.ImportRecord{UserID: 2}))

	records, err := repo.ListForUser(1, 0)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	limited, err := repo.ListForUser(1, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRepository_DeleteOldRecords(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	old := &entities.ImportRecord{
		UserID:    1,
		Status:    entities.ImportStatusCompleted,
		StartedAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, db.Create(old).Error)

	oldPending := &entities.ImportRecord{
		UserID:    1,
		Status:    entities.ImportStatusPending,
		StartedAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, db.Create(oldPending).Error)

	recent := &entities.ImportRecord{
		UserID:    1,
		Status:    entities.ImportStatusCompleted,
		StartedAt: time.Now(),
	}
	require.NoError(t, db.Create(recent).Error)

	deleted, err := repo.DeleteOldRecords(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	records, err := repo.ListForUser(1, 0)
	require.NoError(t, err)
	// Pending records survive retention regardless of age
	assert.Len(t, records, 2)
}
