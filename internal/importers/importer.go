package importers

import (
	"fmt"
	"log"
	"os"

	"github.com/notehive/notehive/internal/entities"
	"github.com/notehive/notehive/internal/utils"
)

// Importer runs the import pipeline against a note store and a blob store.
type Importer struct {
	notes NoteStore
	blobs BlobStore
}

// NewImporter creates an import pipeline with the given collaborators.
func NewImporter(notes NoteStore, blobs BlobStore) *Importer {
	return &Importer{notes: notes, blobs: blobs}
}

// ProcessImport runs one import to completion. It always returns a
// well-formed Result: per-item failures land in Errors, an unexpected
// failure is recovered at this boundary and reported as a single generic
// error, and scratch directories are removed on every exit path.
func (imp *Importer) ProcessImport(files []UploadedFile, opts Options) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Import pipeline recovered from panic: %v", r)
			result.addError("import", fmt.Errorf("unexpected failure: %v", r))
		}
		result.Success = len(result.Errors) == 0
	}()

	var scratchDirs []string
	defer func() {
		for _, dir := range scratchDirs {
			os.RemoveAll(dir)
		}
	}()

	// Archives expand into scratch directories; everything else joins the
	// walk as a loose entry under its normalized upload name.
	var entries []FileEntry
	for _, file := range files {
		if IsArchive(file.OriginalName) {
			scratchDir, archiveEntries, err := extractArchive(file.StoredPath)
			if err != nil {
				result.addError(file.OriginalName, err)
				continue
			}
			scratchDirs = append(scratchDirs, scratchDir)
			entries = append(entries, archiveEntries...)
			continue
		}
		entries = append(entries, FileEntry{
			RelativePath: utils.NormalizeRelPath(file.OriginalName),
			AbsolutePath: file.StoredPath,
		})
	}

	// Attachments must all be resolved before any content file that might
	// reference them is rewritten.
	attachments := imp.resolveAttachments(entries, &result)

	var forest []*noteData
	if opts.PreserveStructure {
		forest = imp.buildForest(entries, attachments, &result)
	} else {
		forest = imp.buildFlat(entries, attachments, &result)
	}

	for _, node := range forest {
		imp.persistNode(node, opts.OwnerID, opts.ParentID, &result, true)
	}

	return result
}

// persistNode writes one node and its descendants depth-first. Each insert
// recomputes the target parent's max sibling sort order so notes created in
// the same pass still receive strictly increasing values. A failed insert
// orphans the node's own children but never blocks siblings or unrelated
// branches.
func (imp *Importer) persistNode(node *noteData, ownerID uint, parentID *uint, result *Result, isRoot bool) {
	maxOrder, err := imp.notes.MaxSiblingSortOrder(ownerID, parentID)
	if err != nil {
		result.addError(node.relativePath, err)
		return
	}

	note := &entities.Note{
		UserID:     ownerID,
		ParentID:   parentID,
		Title:      node.title,
		TitleEmoji: node.titleEmoji,
		Content:    node.content,
		SortOrder:  maxOrder + 1,
	}
	if err := imp.notes.CreateNote(note); err != nil {
		result.addError(node.relativePath, err)
		return
	}

	result.Imported.Notes++
	if isRoot {
		result.RootNoteIDs = append(result.RootNoteIDs, note.ID)
	}

	for _, child := range node.children {
		imp.persistNode(child, ownerID, &note.ID, result, false)
	}
}
