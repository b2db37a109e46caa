package config

// Default paths for local data
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./notehive.db"
)
