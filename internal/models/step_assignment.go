package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StepAssignment maps one form component to the wizard page it renders on.
// component_type is the natural key: at most one row per component. Rows are
// seeded once and only ever reassigned, never deleted.
type StepAssignment struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ComponentType string    `gorm:"size:50;not null;uniqueIndex:idx_step_config_component" json:"component_type"`
	PageNumber    int       `gorm:"not null" json:"page_number"`
	CreatedAt     time.Time `json:"created_at"`
}

func (sa *StepAssignment) BeforeCreate(tx *gorm.DB) error {
	if sa.ID == uuid.Nil {
		sa.ID = uuid.New()
	}
	return nil
}

func (StepAssignment) TableName() string {
	return "step_config"
}
