package notes

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/notehive/notehive/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_notes_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Note{},
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

func createTestNote(t *testing.T, repo *Repository, userID uint, parentID *uint, title string, sortOrder int) *entities.Note {
	note := &entities.Note{
		UserID:    userID,
		ParentID:  parentID,
		Title:     title,
		Content:   "<p>" + title + "</p>",
		SortOrder: sortOrder,
	}
	require.NoError(t, repo.CreateNote(note))
	return note
}

func TestRepository_CreateNote(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	note := createTestNote(t, repo, 1, nil, "First", 1)
	assert.NotZero(t, note.ID)

	fetched, err := repo.GetNoteByID(note.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", fetched.Title)
	assert.Equal(t, 1, fetched.SortOrder)
}

func TestRepository_MaxSiblingSortOrder(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	// Empty level
	max, err := repo.MaxSiblingSortOrder(1, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, max)

	createTestNote(t, repo, 1, nil, "A", 1)
	createTestNote(t, repo, 1, nil, "B", 4)

	max, err = repo.MaxSiblingSortOrder(1, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, max)

	// Children of A are a separate sibling set
	a, err := repo.GetNoteByID(1)
	require.NoError(t, err)
	createTestNote(t, repo, 1, &a.ID, "A1", 2)

	max, err = repo.MaxSiblingSortOrder(1, &a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, max)

	// Another user's notes never count
	max, err = repo.MaxSiblingSortOrder(2, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, max)
}

func TestRepository_ListChildrenOrdered(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestNote(t, repo, 1, nil, "Third", 3)
	createTestNote(t, repo, 1, nil, "First", 1)
	createTestNote(t, repo, 1, nil, "Second", 2)

	children, err := repo.ListChildren(1, nil)
	require.NoError(t, err)
	require.Len(t, children, 3)
	assert.Equal(t, "First", children[0].Title)
	assert.Equal(t, "Second", children[1].Title)
	assert.Equal(t, "Third", children[2].Title)
}

func TestRepository_GetNoteForUserScoping(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	note := createTestNote(t, repo, 1, nil, "Mine", 1)

	fetched, err := repo.GetNoteForUser(note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Mine", fetched.Title)

	_, err = repo.GetNoteForUser(note.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_UpdateNote(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	note := createTestNote(t, repo, 1, nil, "Before", 1)
	note.Title = "After"
	note.Content = "<p>changed</p>"
	require.NoError(t, repo.UpdateNote(note))

	fetched, err := repo.GetNoteByID(note.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", fetched.Title)
	assert.Equal(t, "<p>changed</p>", fetched.Content)
}

func TestRepository_DeleteSubtree(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	root := createTestNote(t, repo, 1, nil, "Root", 1)
	child := createTestNote(t, repo, 1, &root.ID, "Child", 1)
	createTestNote(t, repo, 1, &child.ID, "Grandchild", 1)
	other := createTestNote(t, repo, 1, nil, "Other", 2)

	require.NoError(t, repo.DeleteSubtree(root.ID, 1))

	_, err := repo.GetNoteByID(root.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.GetNoteByID(child.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := repo.CountNotesForUser(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	remaining, err := repo.GetNoteByID(other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Other", remaining.Title)
}

func TestRepository_DeleteSubtreeScopedToUser(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	note := createTestNote(t, repo, 1, nil, "Protected", 1)

	require.NoError(t, repo.DeleteSubtree(note.ID, 2))

	// Wrong user deletes nothing
	fetched, err := repo.GetNoteByID(note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Protected", fetched.Title)
}
