package importers

import (
	"github.com/notehive/notehive/internal/entities"
)

// UploadedFile is one file the transport layer has already persisted to
// ephemeral disk for us.
type UploadedFile struct {
	OriginalName string
	StoredPath   string
}

// Options controls a single import invocation. ParentID, when set, must
// reference a note owned by OwnerID; that is validated by the caller, not
// the pipeline.
type Options struct {
	OwnerID           uint
	ParentID          *uint
	PreserveStructure bool
}

// FileEntry is one item discovered while walking an extracted archive or a
// loose-upload batch. RelativePath always uses forward slashes and is the
// sole key used for structural inference.
type FileEntry struct {
	RelativePath string
	AbsolutePath string
	IsDirectory  bool
}

// FileError reports a single failed file, keyed by its relative path (or
// the archive name for bundle-level failures).
type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// Counts aggregates how much an import created.
type Counts struct {
	Notes       int `json:"notes"`
	Attachments int `json:"attachments"`
}

// Result is the sole contract surfaced to callers. Success is true iff
// Errors is empty; partial success is an expected, reported outcome.
type Result struct {
	Success     bool        `json:"success"`
	Imported    Counts      `json:"imported"`
	Errors      []FileError `json:"errors"`
	RootNoteIDs []uint      `json:"root_note_ids"`
}

func (r *Result) addError(file string, err error) {
	r.Errors = append(r.Errors, FileError{File: file, Error: err.Error()})
}

// NoteStore is the slice of the note store the persistence writer needs.
type NoteStore interface {
	// MaxSiblingSortOrder returns the highest sort order among the
	// children of parentID (nil = top level), or 0 when there are none.
	MaxSiblingSortOrder(userID uint, parentID *uint) (int, error)

	// CreateNote inserts a note row and populates note.ID.
	CreateNote(note *entities.Note) error
}

// BlobStore copies attachment bytes into durable storage and returns a
// stable, publicly dereferenceable locator distinct from any previously
// issued one.
type BlobStore interface {
	StoreBlob(sourcePath, originalName string) (string, error)
}

// noteData is one node of the transient forest assembled by the tree
// builder and consumed depth-first by the persistence writer.
type noteData struct {
	title        string
	titleEmoji   string
	content      string
	relativePath string
	children     []*noteData
}
