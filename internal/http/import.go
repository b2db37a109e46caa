package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/notehive/notehive/internal/audit"
	"github.com/notehive/notehive/internal/auth"
	"github.com/notehive/notehive/internal/config"
	"github.com/notehive/notehive/internal/entities"
	"github.com/notehive/notehive/internal/importers"
	"github.com/notehive/notehive/internal/utils"
)

// ImportResponse is the response for a document import request.
type ImportResponse struct {
	ImportID    uint                  `json:"import_id"`
	Success     bool                  `json:"success"`
	Imported    importers.Counts      `json:"imported"`
	Errors      []importers.FileError `json:"errors,omitempty"`
	RootNoteIDs []uint                `json:"root_note_ids,omitempty"`
}

// importAuditEntry is the snapshot written to the audit log per invocation.
type importAuditEntry struct {
	UserID    uint             `json:"user_id"`
	ParentID  *uint            `json:"parent_id,omitempty"`
	FileNames []string         `json:"file_names"`
	Result    importers.Result `json:"result"`
}

// ImportController handles document imports.
type ImportController struct {
	Importer  ImportService
	Records   ImportRecordStore
	Parents   ParentChecker
	Auditor   *audit.Auditor
	Config    config.Import
	UploadDir string
}

// NewImportController creates a new ImportController.
func NewImportController(importer ImportService, records ImportRecordStore, parents ParentChecker, auditor *audit.Auditor, cfg config.Import, uploadDir string) *ImportController {
	return &ImportController{
		Importer:  importer,
		Records:   records,
		Parents:   parents,
		Auditor:   auditor,
		Config:    cfg,
		UploadDir: uploadDir,
	}
}

// Import handles POST /api/import. It accepts a multipart form with one or
// more "files" parts plus optional "parent_id" and "preserve_structure"
// values, saves the parts to a scratch directory and runs the pipeline.
func (controller *ImportController) Import(c *gin.Context) {
	if controller.Config.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, controller.Config.MaxUploadBytes)
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form: " + err.Error()})
		return
	}

	parts := form.File["files"]
	if len(parts) == 0 {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}
	if controller.Config.MaxFiles > 0 && len(parts) > controller.Config.MaxFiles {
		c.IndentedJSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("too many files: %d exceeds limit of %d", len(parts), controller.Config.MaxFiles),
		})
		return
	}

	userID := auth.GetUserID(c)

	opts := importers.Options{
		OwnerID:           userID,
		PreserveStructure: true,
	}
	if v := c.PostForm("preserve_structure"); v == "false" || v == "0" {
		opts.PreserveStructure = false
	}
	if v := c.PostForm("parent_id"); v != "" {
		var parentID uint
		if _, err := fmt.Sscanf(v, "%d", &parentID); err != nil {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid parent_id"})
			return
		}
		if _, err := controller.Parents.GetNoteForUser(parentID, userID); err != nil {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "parent note not found"})
			return
		}
		opts.ParentID = &parentID
	}

	if err := os.MkdirAll(controller.UploadDir, 0755); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare upload directory"})
		return
	}
	scratchDir, err := os.MkdirTemp(controller.UploadDir, "upload-*")
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to create scratch directory"})
		return
	}
	defer os.RemoveAll(scratchDir)

	// Save parts under sanitized names; the original name travels alongside
	// so relative paths from folder uploads survive intact.
	files := make([]importers.UploadedFile, 0, len(parts))
	for i, part := range parts {
		storedName := fmt.Sprintf("%04d_%s", i, utils.SanitizeFilename(filepath.Base(part.Filename)))
		storedPath := filepath.Join(scratchDir, storedName)
		if err := c.SaveUploadedFile(part, storedPath); err != nil {
			c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded file: " + err.Error()})
			return
		}
		files = append(files, importers.UploadedFile{
			OriginalName: part.Filename,
			StoredPath:   storedPath,
		})
	}

	record := &entities.ImportRecord{
		UserID: userID,
		Status: entities.ImportStatusPending,
	}
	if err := controller.Records.Create(record); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to create import record"})
		return
	}

	result := controller.Importer.ProcessImport(files, opts)

	record.NotesImported = result.Imported.Notes
	record.AttachmentsImported = result.Imported.Attachments
	record.Status = entities.ImportStatusCompleted
	if !result.Success && result.Imported.Notes == 0 {
		record.Status = entities.ImportStatusFailed
	}
	if len(result.Errors) > 0 {
		if errJSON, err := json.Marshal(result.Errors); err == nil {
			record.Errors = string(errJSON)
		}
	}
	if err := controller.Records.Complete(record); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to update import record"})
		return
	}

	if controller.Auditor != nil {
		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, f.OriginalName)
		}
		entry := importAuditEntry{
			UserID:    userID,
			ParentID:  opts.ParentID,
			FileNames: names,
			Result:    result,
		}
		if _, err := controller.Auditor.SaveJSON(entry); err != nil {
			// Log but don't fail the request
			c.Writer.Header().Set("X-Audit-Warning", "Failed to save audit log")
		}
	}

	c.IndentedJSON(http.StatusOK, ImportResponse{
		ImportID:    record.ID,
		Success:     result.Success,
		Imported:    result.Imported,
		Errors:      result.Errors,
		RootNoteIDs: result.RootNoteIDs,
	})
}

// History handles GET /api/imports.
func (controller *ImportController) History(c *gin.Context) {
	userID := auth.GetUserID(c)

	records, err := controller.Records.ListForUser(userID, 50)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to list import records"})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"imports": records, "count": len(records)})
}
