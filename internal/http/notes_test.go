package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/notehive/notehive/internal/auth"
	"github.com/notehive/notehive/internal/entities"
)

// stubNoteStore implements NoteStore in memory for controller tests.
type stubNoteStore struct {
	notes  map[uint]*entities.Note
	nextID uint
}

func newStubNoteStore() *stubNoteStore {
	return &stubNoteStore{notes: make(map[uint]*entities.Note)}
}

func (s *stubNoteStore) CreateNote(note *entities.Note) error {
	s.nextID++
	note.ID = s.nextID
	s.notes[note.ID] = note
	return nil
}

func (s *stubNoteStore) MaxSiblingSortOrder(userID uint, parentID *uint) (int, error) {
	max := 0
	for _, n := range s.notes {
		if n.UserID != userID {
			continue
		}
		if (n.ParentID == nil) != (parentID == nil) {
			continue
		}
		if parentID != nil && *n.ParentID != *parentID {
			continue
		}
		if n.SortOrder > max {
			max = n.SortOrder
		}
	}
	return max, nil
}

func (s *stubNoteStore) GetNoteForUser(id, userID uint) (*entities.Note, error) {
	note, ok := s.notes[id]
	if !ok || note.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return note, nil
}

func (s *stubNoteStore) ListChildren(userID uint, parentID *uint) ([]entities.Note, error) {
	var out []entities.Note
	for _, n := range s.notes {
		if n.UserID != userID {
			continue
		}
		if (n.ParentID == nil) != (parentID == nil) {
			continue
		}
		if parentID != nil && *n.ParentID != *parentID {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (s *stubNoteStore) UpdateNote(note *entities.Note) error {
	s.notes[note.ID] = note
	return nil
}

func (s *stubNoteStore) DeleteSubtree(id, userID uint) error {
	frontier := []uint{id}
	for len(frontier) > 0 {
		var next []uint
		for _, fid := range frontier {
			for childID, n := range s.notes {
				if n.ParentID != nil && *n.ParentID == fid {
					next = append(next, childID)
				}
			}
			delete(s.notes, fid)
		}
		frontier = next
	}
	return nil
}

func (s *stubNoteStore) CountNotesForUser(userID uint) (int64, error) {
	var count int64
	for _, n := range s.notes {
		if n.UserID == userID {
			count++
		}
	}
	return count, nil
}

func setupNotesRouter(store NoteStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, uint(1))
		c.Next()
	})

	controller := NewNotesController(store)
	router.GET("/api/notes", controller.List)
	router.GET("/api/notes/stats", controller.Stats)
	router.POST("/api/notes", controller.Create)
	router.GET("/api/notes/:id", controller.Get)
	router.PATCH("/api/notes/:id", controller.Update)
	router.DELETE("/api/notes/:id", controller.Delete)
	return router
}

func TestNotesCreate(t *testing.T) {
	store := newStubNoteStore()
	router := setupNotesRouter(store)

	body, _ := json.Marshal(CreateNoteRequest{Title: "Inbox", Content: "<p>x</p>"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/notes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created entities.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Inbox", created.Title)
	assert.Equal(t, 1, created.SortOrder)
	assert.Equal(t, uint(1), created.UserID)
}

func TestNotesCreateAppendsAfterSiblings(t *testing.T) {
	store := newStubNoteStore()
	require.NoError(t, store.CreateNote(&entities.Note{UserID: 1, Title: "Existing", SortOrder: 3}))
	router := setupNotesRouter(store)

	body, _ := json.Marshal(CreateNoteRequest{Title: "Next"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/notes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var created entities.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 4, created.SortOrder)
}

func TestNotesCreateMissingTitle(t *testing.T) {
	router := setupNotesRouter(newStubNoteStore())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/notes", bytes.NewReader([]byte(`{"content":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotesCreateUnknownParent(t *testing.T) {
	router := setupNotesRouter(newStubNoteStore())

	parentID := uint(42)
	body, _ := json.Marshal(CreateNoteRequest{Title: "Orphan", ParentID: &parentID})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/notes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotesGetScopedToUser(t *testing.T) {
	store := newStubNoteStore()
	require.NoError(t, store.CreateNote(&entities.Note{UserID: 2, Title: "Other user's"}))
	router := setupNotesRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/notes/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotesUpdate(t *testing.T) {
	store := newStubNoteStore()
	require.NoError(t, store.CreateNote(&entities.Note{UserID: 1, Title: "Old", Content: "<p>a</p>"}))
	router := setupNotesRouter(store)

	newTitle := "New"
	body, _ := json.Marshal(UpdateNoteRequest{Title: &newTitle})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/api/notes/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "New", store.notes[1].Title)
	// Content untouched when not provided
	assert.Equal(t, "<p>a</p>", store.notes[1].Content)
}

func TestNotesUpdateEmptyTitleRejected(t *testing.T) {
	store := newStubNoteStore()
	require.NoError(t, store.CreateNote(&entities.Note{UserID: 1, Title: "Keep"}))
	router := setupNotesRouter(store)

	empty := ""
	body, _ := json.Marshal(UpdateNoteRequest{Title: &empty})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/api/notes/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Keep", store.notes[1].Title)
}

func TestNotesDeleteSubtree(t *testing.T) {
	store := newStubNoteStore()
	require.NoError(t, store.CreateNote(&entities.Note{UserID: 1, Title: "Root"}))
	rootID := uint(1)
	require.NoError(t, store.CreateNote(&entities.Note{UserID: 1, Title: "Child", ParentID: &rootID}))
	router := setupNotesRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/notes/1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.notes)
}

func TestNotesList(t *testing.T) {
	store := newStubNoteStore()
	require.NoError(t, store.CreateNote(&entities.Note{UserID: 1, Title: "A", SortOrder: 1}))
	require.NoError(t, store.CreateNote(&entities.Note{UserID: 2, Title: "B", SortOrder: 1}))
	router := setupNotesRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/notes", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestNotesStats(t *testing.T) {
	store := newStubNoteStore()
	require.NoError(t, store.CreateNote(&entities.Note{UserID: 1, Title: "Root"}))
	rootID := uint(1)
	require.NoError(t, store.CreateNote(&entities.Note{UserID: 1, Title: "Child", ParentID: &rootID}))
	require.NoError(t, store.CreateNote(&entities.Note{UserID: 2, Title: "Other"}))
	router := setupNotesRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/notes/stats", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalNotes    int64 `json:"total_notes"`
		TopLevelNotes int   `json:"top_level_notes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.TotalNotes)
	assert.Equal(t, 1, resp.TopLevelNotes)
}
