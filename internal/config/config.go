package config

import (
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // No authentication required (default)
	AuthModeLocal AuthMode = "local" // Local user database with API tokens
)

type (
	Config struct {
		HTTP
		Database
		Storage
		Import
		Audit
		Tasks
		Cleanup
		Auth
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Storage struct {
		BlobDir   string // Directory holding copied attachment blobs
		UploadDir string // Scratch directory for in-flight uploads
	}
	Import struct {
		MaxFiles       int   // Max files per import request
		MaxUploadBytes int64 // Max total multipart size per request
	}
	Audit struct {
		Dir           string
		RetentionDays int // Days to keep audit files (default: 30)
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Cleanup struct {
		Schedule            string // Cron format: "0 * * * *" = hourly
		ImportRetentionDays int    // Days to keep import records
		UploadMaxAge        time.Duration
	}
	Auth struct {
		Mode       AuthMode
		BcryptCost int
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8288)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("blob_dir", "./data/files")
	v.SetDefault("upload_dir", "./data/uploads")
	v.SetDefault("import_max_files", 500)
	v.SetDefault("import_max_upload_mb", 256)
	v.SetDefault("audit_dir", "./audit")
	v.SetDefault("audit_retention_days", 30)

	// Auth defaults
	v.SetDefault("auth_mode", "none")
	v.SetDefault("auth_bcrypt_cost", 12)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	// Maintenance defaults
	v.SetDefault("cleanup_schedule", "0 * * * *") // Hourly at :00
	v.SetDefault("import_retention_days", 90)
	v.SetDefault("upload_max_age", "24h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Storage: Storage{
			BlobDir:   v.GetString("BLOB_DIR"),
			UploadDir: v.GetString("UPLOAD_DIR"),
		},
		Import: Import{
			MaxFiles:       v.GetInt("IMPORT_MAX_FILES"),
			MaxUploadBytes: v.GetInt64("IMPORT_MAX_UPLOAD_MB") << 20,
		},
		Audit: Audit{
			Dir:           v.GetString("AUDIT_DIR"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Cleanup: Cleanup{
			Schedule:            v.GetString("CLEANUP_SCHEDULE"),
			ImportRetentionDays: v.GetInt("IMPORT_RETENTION_DAYS"),
			UploadMaxAge:        v.GetDuration("UPLOAD_MAX_AGE"),
		},
		Auth: Auth{
			Mode:       AuthMode(v.GetString("AUTH_MODE")),
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
