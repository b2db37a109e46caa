// Package notes provides database operations for the note tree.
//
// This package implements the NoteStore interfaces defined in
// internal/importers and internal/http.
//
// # Interface Implementation
//
//	var _ importers.NoteStore = (*Repository)(nil)
//
// # Usage
//
//	repo := notes.NewRepository(db)
//	err := repo.CreateNote(&entities.Note{UserID: userID, Title: "Inbox"})
package notes

import (
	"gorm.io/gorm"

	"github.com/notehive/notehive/internal/entities"
)

// Repository handles all note database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new notes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateNote inserts a note row. The caller is responsible for assigning
// SortOrder; after return note.ID is populated.
func (r *Repository) CreateNote(note *entities.Note) error {
	return r.db.Create(note).Error
}

// MaxSiblingSortOrder returns the highest sort order among the children of
// parentID for the given user, or 0 when there are none. A nil parentID
// means the top level.
func (r *Repository) MaxSiblingSortOrder(userID uint, parentID *uint) (int, error) {
	var max int
	query := r.db.Model(&entities.Note{}).
		Select("COALESCE(MAX(sort_order), 0)").
		Where("user_id = ?", userID)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.Scan(&max).Error
	return max, err
}

// GetNoteByID retrieves a note by ID.
func (r *Repository) GetNoteByID(id uint) (*entities.Note, error) {
	var note entities.Note
	err := r.db.First(&note, id).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// GetNoteForUser retrieves a note by ID scoped to its owner.
func (r *Repository) GetNoteForUser(id, userID uint) (*entities.Note, error) {
	var note entities.Note
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListChildren returns the immediate children of parentID for a user,
// ordered by sort order. A nil parentID lists the top level.
func (r *Repository) ListChildren(userID uint, parentID *uint) ([]entities.Note, error) {
	var children []entities.Note
	query := r.db.Where("user_id = ?", userID)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.Order("sort_order ASC").Find(&children).Error
	return children, err
}

// UpdateNote saves changes to an existing note.
func (r *Repository) UpdateNote(note *entities.Note) error {
	return r.db.Save(note).Error
}

// DeleteSubtree removes a note and all of its descendants. Children are
// collected level by level first so the traversal never recurses.
func (r *Repository) DeleteSubtree(id, userID uint) error {
	ids := []uint{id}
	frontier := []uint{id}

	for len(frontier) > 0 {
		var childIDs []uint
		err := r.db.Model(&entities.Note{}).
			Where("user_id = ? AND parent_id IN ?", userID, frontier).
			Pluck("id", &childIDs).Error
		if err != nil {
			return err
		}
		ids = append(ids, childIDs...)
		frontier = childIDs
	}

	return r.db.Where("user_id = ?", userID).Delete(&entities.Note{}, ids).Error
}

// CountNotesForUser returns the number of notes owned by a user.
func (r *Repository) CountNotesForUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Note{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
