package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/notehive/notehive/internal/auth"
	"github.com/notehive/notehive/internal/entities"
)

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Title      string `json:"title" binding:"required"`
	TitleEmoji string `json:"title_emoji"`
	Content    string `json:"content"`
	ParentID   *uint  `json:"parent_id"`
}

// UpdateNoteRequest is the request body for updating a note. Pointer fields
// distinguish "not provided" from "set to empty".
type UpdateNoteRequest struct {
	Title      *string `json:"title"`
	TitleEmoji *string `json:"title_emoji"`
	Content    *string `json:"content"`
}

// NotesController handles note tree CRUD.
type NotesController struct {
	Store NoteStore
}

// NewNotesController creates a new NotesController.
func NewNotesController(store NoteStore) *NotesController {
	return &NotesController{Store: store}
}

// List handles GET /api/notes. Without a parent_id query parameter it
// returns the top-level notes; with one it returns that note's children,
// in sort order.
func (controller *NotesController) List(c *gin.Context) {
	userID := auth.GetUserID(c)

	var parentID *uint
	if v := c.Query("parent_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid parent_id"})
			return
		}
		pid := uint(id)
		if _, err := controller.Store.GetNoteForUser(pid, userID); err != nil {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "parent note not found"})
			return
		}
		parentID = &pid
	}

	notes, err := controller.Store.ListChildren(userID, parentID)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to list notes"})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"notes": notes, "count": len(notes)})
}

// Get handles GET /api/notes/:id.
func (controller *NotesController) Get(c *gin.Context) {
	userID := auth.GetUserID(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	note, err := controller.Store.GetNoteForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to get note"})
		return
	}

	c.IndentedJSON(http.StatusOK, note)
}

// Create handles POST /api/notes. New notes are appended after their
// siblings, never inserted between them.
func (controller *NotesController) Create(c *gin.Context) {
	userID := auth.GetUserID(c)

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ParentID != nil {
		if _, err := controller.Store.GetNoteForUser(*req.ParentID, userID); err != nil {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "parent note not found"})
			return
		}
	}

	maxOrder, err := controller.Store.MaxSiblingSortOrder(userID, req.ParentID)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to compute sort order"})
		return
	}

	note := &entities.Note{
		UserID:     userID,
		ParentID:   req.ParentID,
		Title:      req.Title,
		TitleEmoji: req.TitleEmoji,
		Content:    req.Content,
		SortOrder:  maxOrder + 1,
	}
	if err := controller.Store.CreateNote(note); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to create note"})
		return
	}

	c.IndentedJSON(http.StatusCreated, note)
}

// Update handles PATCH /api/notes/:id.
func (controller *NotesController) Update(c *gin.Context) {
	userID := auth.GetUserID(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := controller.Store.GetNoteForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to get note"})
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "title cannot be empty"})
			return
		}
		note.Title = *req.Title
	}
	if req.TitleEmoji != nil {
		note.TitleEmoji = *req.TitleEmoji
	}
	if req.Content != nil {
		note.Content = *req.Content
	}

	if err := controller.Store.UpdateNote(note); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to update note"})
		return
	}

	c.IndentedJSON(http.StatusOK, note)
}

// Delete handles DELETE /api/notes/:id. The note and its whole subtree are
// removed.
func (controller *NotesController) Delete(c *gin.Context) {
	userID := auth.GetUserID(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	if _, err := controller.Store.GetNoteForUser(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to get note"})
		return
	}

	if err := controller.Store.DeleteSubtree(id, userID); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to delete note"})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"message": "note deleted"})
}

// Stats handles GET /api/notes/stats.
func (controller *NotesController) Stats(c *gin.Context) {
	userID := auth.GetUserID(c)

	total, err := controller.Store.CountNotesForUser(userID)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to count notes"})
		return
	}

	roots, err := controller.Store.ListChildren(userID, nil)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to list notes"})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"total_notes":     total,
		"top_level_notes": len(roots),
	})
}

func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
