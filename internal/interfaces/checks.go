package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/notehive/notehive/internal/audit"
	"github.com/notehive/notehive/internal/database/imports"
	"github.com/notehive/notehive/internal/database/notes"
	"github.com/notehive/notehive/internal/http"
	"github.com/notehive/notehive/internal/importers"
	"github.com/notehive/notehive/internal/storage"
	"github.com/notehive/notehive/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// NoteStore implementations
var _ http.NoteStore = (*notes.Repository)(nil)
var _ http.ParentChecker = (*notes.Repository)(nil)
var _ importers.NoteStore = (*notes.Repository)(nil)

// ImportRecordStore implementations
var _ http.ImportRecordStore = (*imports.Repository)(nil)

// =============================================================================
// Import Pipeline
// =============================================================================

// ImportService implementations
var _ http.ImportService = (*importers.Importer)(nil)

// BlobStore implementations
var _ importers.BlobStore = (*storage.LocalStore)(nil)

// =============================================================================
// Maintenance
// =============================================================================

// Cleaner implementations
var _ tasks.ImportRecordCleaner = (*imports.Repository)(nil)
var _ tasks.AuditFileCleaner = (*audit.Auditor)(nil)
