package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth provider values stored in users.auth_provider.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
	ProviderDemo   = "demo"
)

// DemoUserID is the fixed id of the baseline user created by provisioning.
var DemoUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

const DemoUserEmail = "demo@bookshelf.com"

// User maps an external identity (unique email) to an internal account.
// Password is empty for google and demo accounts.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name         string         `gorm:"size:255" json:"name"`
	AvatarURL    string         `gorm:"type:text" json:"avatar_url"`
	Password     string         `gorm:"not null;default:''" json:"-"`
	GoogleUserID *string        `gorm:"size:255;index" json:"-"`
	AuthProvider string         `gorm:"size:50;default:'email'" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
