package entities

import (
	"time"

	"gorm.io/gorm"
)

type ImportStatus string

const (
	ImportStatusPending   ImportStatus = "pending"
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:100" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string         `gorm:"size:128" json:"-"`
	Token        string         `gorm:"uniqueIndex;size:64" json:"-"` // API token, hidden from JSON
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// Note is one node of a user's note tree. ParentID is nil for top-level
// notes. Siblings of the same (UserID, ParentID) pair form an ordered set
// keyed by SortOrder; sort orders are assigned strictly increasing and are
// never renumbered.
type Note struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"index" json:"user_id"`
	ParentID   *uint          `gorm:"index" json:"parent_id,omitempty"`
	Title      string         `gorm:"size:512" json:"title"`
	TitleEmoji string         `gorm:"size:16" json:"title_emoji,omitempty"`
	Content    string         `gorm:"type:text" json:"content,omitempty"`
	SortOrder  int            `gorm:"index" json:"sort_order"`
	User       User           `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// ImportRecord tracks one import invocation for a user: what was counted,
// what failed, and when it ran. Errors holds the per-file error list as a
// JSON array.
type ImportRecord struct {
	ID                  uint         `gorm:"primaryKey" json:"id"`
	UserID              uint         `gorm:"index" json:"user_id"`
	Status              ImportStatus `gorm:"size:20;default:'pending'" json:"status"`
	NotesImported       int          `json:"notes_imported"`
	AttachmentsImported int          `json:"attachments_imported"`
	Errors              string       `gorm:"type:text" json:"errors,omitempty"`
	StartedAt           time.Time    `json:"started_at"`
	CompletedAt         *time.Time   `json:"completed_at,omitempty"`
	User                User         `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (Note) TableName() string {
	return "notes"
}

func (ImportRecord) TableName() string {
	return "import_records"
}
