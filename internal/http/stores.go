package http

import (
	"github.com/notehive/notehive/internal/entities"
	"github.com/notehive/notehive/internal/importers"
)

// This file consolidates the store interface definitions used by HTTP
// controllers. Each controller depends only on the methods it actually uses.

// NoteStore provides the note tree operations the notes controller needs.
type NoteStore interface {
	CreateNote(note *entities.Note) error
	MaxSiblingSortOrder(userID uint, parentID *uint) (int, error)
	GetNoteForUser(id, userID uint) (*entities.Note, error)
	ListChildren(userID uint, parentID *uint) ([]entities.Note, error)
	UpdateNote(note *entities.Note) error
	DeleteSubtree(id, userID uint) error
	CountNotesForUser(userID uint) (int64, error)
}

// ParentChecker validates that an import target note exists and belongs to
// the requesting user.
type ParentChecker interface {
	GetNoteForUser(id, userID uint) (*entities.Note, error)
}

// ImportRecordStore persists import invocation history.
type ImportRecordStore interface {
	Create(record *entities.ImportRecord) error
	Complete(record *entities.ImportRecord) error
	ListForUser(userID uint, limit int) ([]entities.ImportRecord, error)
}

// ImportService runs the import pipeline to completion.
type ImportService interface {
	ProcessImport(files []importers.UploadedFile, opts importers.Options) importers.Result
}
