package http

import (
	"github.com/notehive/notehive/internal/audit"
	"github.com/notehive/notehive/internal/auth"
	"github.com/notehive/notehive/internal/config"
	"github.com/notehive/notehive/internal/database"
	"github.com/notehive/notehive/internal/storage"
)

// RouterConfig carries every dependency the router needs. A single struct
// keeps the constructor signature stable as collaborators are added.
type RouterConfig struct {
	Database *database.Database
	Version  string

	NoteStore     NoteStore
	ImportService ImportService
	ImportRecords ImportRecordStore

	Auditor   *audit.Auditor
	BlobStore *storage.LocalStore

	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	AuthConfig     config.Auth

	ImportConfig config.Import
	UploadDir    string
}
