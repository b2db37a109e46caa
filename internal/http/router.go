package http

import (
	"github.com/gin-gonic/gin"

	"github.com/notehive/notehive/internal/auth"
	"github.com/notehive/notehive/internal/storage"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply auth middleware if enabled
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	} else {
		// No auth - inject default user ID
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextKeyUserID, auth.DefaultUserID)
			c.Next()
		})
	}

	// Serve attachment blobs
	if cfg.BlobStore != nil {
		router.Static(storage.PublicPrefix, cfg.BlobStore.BlobDir())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	importController := NewImportController(
		cfg.ImportService,
		cfg.ImportRecords,
		cfg.NoteStore,
		cfg.Auditor,
		cfg.ImportConfig,
		cfg.UploadDir,
	)
	notesController := NewNotesController(cfg.NoteStore)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Import endpoints
	router.POST("/api/import", importController.Import)
	router.GET("/api/imports", importController.History)

	// Notes API endpoints
	router.GET("/api/notes", notesController.List)
	router.GET("/api/notes/stats", notesController.Stats)
	router.POST("/api/notes", notesController.Create)
	router.GET("/api/notes/:id", notesController.Get)
	router.PATCH("/api/notes/:id", notesController.Update)
	router.DELETE("/api/notes/:id", notesController.Delete)

	// API token management endpoints
	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		tokenController := NewTokenController(cfg.AuthService)
		router.POST("/api/auth/token", tokenController.Generate)
		router.DELETE("/api/auth/token", tokenController.Revoke)
	}

	return router
}
