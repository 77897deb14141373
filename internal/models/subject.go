package models

import (
	"time"

	"github.com/google/uuid"
)

// Subject is one person going through onboarding. The optional profile
// columns are filled in page by page, so they stay nullable until the
// page that owns them is submitted.
type Subject struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email         string     `gorm:"not null;size:255;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash  string     `gorm:"not null" json:"-"`
	AboutMe       *string    `gorm:"type:text" json:"about_me"`
	StreetAddress *string    `gorm:"size:255" json:"street_address"`
	City          *string    `gorm:"size:100" json:"city"`
	State         *string    `gorm:"size:100" json:"state"`
	Zip           *string    `gorm:"size:20" json:"zip"`
	Birthdate     *time.Time `gorm:"type:date" json:"birthdate"`
	CurrentStep   int        `gorm:"not null;default:1" json:"current_step"`
	Completed     bool       `gorm:"not null;default:false" json:"completed"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Subject) TableName() string {
	return "users"
}
