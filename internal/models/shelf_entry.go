package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Reading status values. The set is closed; any status may move to any
// other status directly.
const (
	StatusWantToRead       = "want_to_read"
	StatusCurrentlyReading = "currently_reading"
	StatusRead             = "read"
)

// ValidStatuses lists every accepted shelf status.
var ValidStatuses = []string{StatusWantToRead, StatusCurrentlyReading, StatusRead}

// IsValidStatus reports whether s is one of the three reading statuses.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ShelfEntry is one shelved book: a (user, Google Books volume) pair with
// cached volume metadata and a mutable reading status. A user cannot shelve
// the same volume twice.
type ShelfEntry struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_shelf_user_volume" json:"user_id"`
	GoogleBooksID string         `gorm:"size:255;not null;uniqueIndex:idx_shelf_user_volume" json:"google_books_id"`
	Title         string         `gorm:"size:500;not null" json:"title"`
	Author        string         `gorm:"size:500" json:"author"`
	ImageURL      string         `gorm:"type:text" json:"image_url"`
	Description   string         `gorm:"type:text" json:"description"`
	PublishedDate string         `gorm:"size:50" json:"published_date"`
	PageCount     int            `json:"page_count"`
	Categories    datatypes.JSON `json:"categories"`
	Status        string         `gorm:"size:50;not null;default:'want_to_read';index" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	User          User           `gorm:"foreignKey:UserID" json:"-"`
}
